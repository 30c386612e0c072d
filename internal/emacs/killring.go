package emacs

// KillRingCapacity bounds the number of entries a KillRing retains.
const KillRingCapacity = 50

// KillRing is a bounded stack of killed text. The tail is the most recent
// kill. Pushing past capacity evicts the oldest entry.
type KillRing struct {
	entries []string
}

// NewKillRing returns an empty ring.
func NewKillRing() *KillRing {
	return &KillRing{entries: make([]string, 0, KillRingCapacity)}
}

// Push appends text as the newest entry.
func (r *KillRing) Push(text string) {
	if len(r.entries) == KillRingCapacity {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:KillRingCapacity-1]
	}
	r.entries = append(r.entries, text)
}

// GrowTop appends text to the newest entry, or pushes it when the ring is
// empty.
func (r *KillRing) GrowTop(text string) {
	if len(r.entries) == 0 {
		r.Push(text)
		return
	}
	r.entries[len(r.entries)-1] += text
}

// Peek returns the entry n positions back from the tail without removing it.
// n of 0 or 1 means the tail; values past the oldest entry clamp to it.
// An empty ring yields "".
func (r *KillRing) Peek(n int) string {
	if len(r.entries) == 0 {
		return ""
	}
	n = max(1, min(n, len(r.entries)))
	return r.entries[len(r.entries)-n]
}

// PopTop discards the newest entry, unless it is the only one, and returns
// the new tail.
func (r *KillRing) PopTop() string {
	if len(r.entries) > 1 {
		r.entries = r.entries[:len(r.entries)-1]
	}
	return r.Peek(0)
}

// Len returns the number of entries.
func (r *KillRing) Len() int { return len(r.entries) }

// Entries returns a copy of the ring, oldest first.
func (r *KillRing) Entries() []string {
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

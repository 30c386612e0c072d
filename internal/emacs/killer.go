package emacs

import (
	"sync"

	"github.com/zjrosen/emacskeys/internal/log"
)

// lastKill remembers where the previous mergeable kill happened.
type lastKill struct {
	bufferID string
	pos      Position
	gen      uint64
}

// Killer owns the process-wide kill ring and the merge bookkeeping shared by
// every attached buffer. All methods are safe for concurrent use; mutation
// is reserved to commands run by an Editor.
type Killer struct {
	mu   sync.Mutex
	ring *KillRing
	last *lastKill
}

// NewKiller returns a Killer with an empty ring.
func NewKiller() *Killer {
	return &Killer{ring: NewKillRing()}
}

// Len returns the number of ring entries.
func (k *Killer) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ring.Len()
}

// Peek returns the ring entry n back from the newest without changing it.
func (k *Killer) Peek(n int) string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ring.Peek(n)
}

// Entries returns a copy of the ring, oldest first.
func (k *Killer) Entries() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ring.Entries()
}

// kill removes [from, to) from buf and records the text.
func (k *Killer) kill(buf TextBuffer, from, to Position, mayMerge bool) string {
	r := NewRange(from, to)
	return k.killText(buf, from, to, mayMerge, buf.Range(r.From, r.To))
}

// killText removes [from, to) from buf and records text in the ring.
//
// The text grows the newest entry instead of pushing a new one when mayMerge
// is set and the previous mergeable kill happened in the same buffer, started
// at from, and the buffer has not changed since. Merged kills always append,
// so a backward kill following a forward kill is stored after it.
func (k *Killer) killText(buf TextBuffer, from, to Position, mayMerge bool, text string) string {
	k.mu.Lock()
	merged := mayMerge && k.last != nil &&
		k.last.bufferID == buf.ID() &&
		k.last.pos == from &&
		buf.IsClean(k.last.gen)
	if merged {
		k.ring.GrowTop(text)
	} else {
		k.ring.Push(text)
	}
	k.mu.Unlock()

	r := NewRange(from, to)
	buf.ReplaceRange("", r.From, r.To, OriginDelete)

	k.mu.Lock()
	if mayMerge {
		k.last = &lastKill{bufferID: buf.ID(), pos: from, gen: buf.ChangeGeneration()}
	} else {
		k.last = nil
	}
	k.mu.Unlock()

	log.Debug(log.CatKill, "kill", "buffer", buf.ID(), "from", from, "to", to, "merged", merged, "len", len(text))
	return text
}

// save pushes text without touching any buffer or merge state.
func (k *Killer) save(text string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.ring.Push(text)
	log.Debug(log.CatKill, "save", "len", len(text))
}

// yank returns the entry n back from the newest.
func (k *Killer) yank(n int) string {
	return k.Peek(n)
}

// yankPop drops the newest entry and returns the new newest.
func (k *Killer) yankPop() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ring.PopTop()
}

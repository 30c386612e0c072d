package emacs

import "fmt"

// Position is a zero-based (line, column) location. Columns count grapheme
// clusters.
type Position struct {
	Line int
	Ch   int
}

// Pos is shorthand for Position{Line: line, Ch: ch}.
func Pos(line, ch int) Position {
	return Position{Line: line, Ch: ch}
}

// Compare returns -1, 0 or +1 when p sorts before, equal to or after o.
func (p Position) Compare(o Position) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Ch < o.Ch:
		return -1
	case p.Ch > o.Ch:
		return 1
	}
	return 0
}

// Before reports whether p sorts strictly before o.
func (p Position) Before(o Position) bool { return p.Compare(o) < 0 }

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Ch)
}

// MinPos returns the earlier of a and b.
func MinPos(a, b Position) Position {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxPos returns the later of a and b.
func MaxPos(a, b Position) Position {
	if a.Before(b) {
		return b
	}
	return a
}

// Range is an ordered span with From <= To.
type Range struct {
	From Position
	To   Position
}

// NewRange orders a and b into a Range.
func NewRange(a, b Position) Range {
	return Range{From: MinPos(a, b), To: MaxPos(a, b)}
}

// Empty reports whether the range covers no text.
func (r Range) Empty() bool { return r.From == r.To }

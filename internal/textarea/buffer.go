// Package textarea is an in-memory multi-line text buffer with a selection,
// an undo history, syntax tokens and bracket matching. It implements the
// emacs.TextBuffer capability set and backs the terminal editor and the
// replay command.
package textarea

import (
	"strings"

	"github.com/google/uuid"

	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/grapheme"
)

// DefaultPageSize is the number of lines a page motion covers.
const DefaultPageSize = 20

// Buffer holds the text as a slice of lines. Columns are grapheme indexes.
type Buffer struct {
	id        string
	lines     []string
	anchor    emacs.Position
	head      emacs.Position
	extending bool
	goalCol   int
	gen       uint64
	pageSize  int
	history   *History
	tokens    *tokenizer
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithID sets the buffer identity instead of a random UUID.
func WithID(id string) Option {
	return func(b *Buffer) { b.id = id }
}

// WithPageSize sets how many lines a page motion moves.
func WithPageSize(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.pageSize = n
		}
	}
}

// New creates a buffer holding text with the cursor at the start.
func New(text string, opts ...Option) *Buffer {
	b := &Buffer{
		id:       uuid.NewString(),
		goalCol:  -1,
		pageSize: DefaultPageSize,
		history:  NewHistory(),
		tokens:   sharedTokenizer,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lines = splitLines(text)
	return b
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// ID returns the buffer identity.
func (b *Buffer) ID() string { return b.id }

// Text returns the whole buffer joined with "\n".
func (b *Buffer) Text() string { return strings.Join(b.lines, "\n") }

// SetText replaces the content, clears history and moves the cursor to the
// start.
func (b *Buffer) SetText(text string) {
	b.lines = splitLines(text)
	b.anchor, b.head = emacs.Position{}, emacs.Position{}
	b.extending = false
	b.goalCol = -1
	b.history.Clear()
	b.gen++
}

// Lines returns a copy of the lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// PageSize returns the page motion height.
func (b *Buffer) PageSize() int { return b.pageSize }

// SetPageSize changes the page motion height; the view calls this on resize.
func (b *Buffer) SetPageSize(n int) {
	if n > 0 {
		b.pageSize = n
	}
}

// ============================================================================
// Selection
// ============================================================================

// Cursor returns the selection head.
func (b *Buffer) Cursor() emacs.Position { return b.head }

// Anchor returns the selection anchor.
func (b *Buffer) Anchor() emacs.Position { return b.anchor }

// SetSelection places anchor and head, clipped to the text.
func (b *Buffer) SetSelection(anchor, head emacs.Position) {
	b.anchor = b.ClipPos(anchor)
	b.head = b.ClipPos(head)
}

// ExtendSelection moves the head, dragging the anchor along unless
// extending.
func (b *Buffer) ExtendSelection(head emacs.Position) {
	b.head = b.ClipPos(head)
	if !b.extending {
		b.anchor = b.head
	}
}

// Extending reports whether motions extend the selection.
func (b *Buffer) Extending() bool { return b.extending }

// SetExtending toggles selection extension.
func (b *Buffer) SetExtending(on bool) { b.extending = on }

// GoalColumn returns the sticky column, -1 when unset.
func (b *Buffer) GoalColumn() int { return b.goalCol }

// SetGoalColumn sets the sticky column.
func (b *Buffer) SetGoalColumn(col int) { b.goalCol = col }

// Selection returns the selected text.
func (b *Buffer) Selection() string {
	r := emacs.NewRange(b.anchor, b.head)
	return b.Range(r.From, r.To)
}

// ============================================================================
// Text access
// ============================================================================

// FirstLine is always 0.
func (b *Buffer) FirstLine() int { return 0 }

// LastLine returns the index of the final line.
func (b *Buffer) LastLine() int { return len(b.lines) - 1 }

// Line returns line n, or "" when out of range.
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

// LineLength returns the grapheme count of line n.
func (b *Buffer) LineLength(n int) int {
	return grapheme.Count(b.Line(n))
}

// ClipPos clamps pos into the text.
func (b *Buffer) ClipPos(pos emacs.Position) emacs.Position {
	if pos.Line < 0 {
		return emacs.Pos(0, 0)
	}
	if pos.Line > b.LastLine() {
		last := b.LastLine()
		return emacs.Pos(last, b.LineLength(last))
	}
	return emacs.Pos(pos.Line, max(0, min(pos.Ch, b.LineLength(pos.Line))))
}

// Range returns the text between two positions in either order.
func (b *Buffer) Range(from, to emacs.Position) string {
	r := emacs.NewRange(b.ClipPos(from), b.ClipPos(to))
	from, to = r.From, r.To
	if from.Line == to.Line {
		return grapheme.Slice(b.lines[from.Line], from.Ch, to.Ch)
	}
	var sb strings.Builder
	first := b.lines[from.Line]
	sb.WriteString(grapheme.Slice(first, from.Ch, grapheme.Count(first)))
	for n := from.Line + 1; n < to.Line; n++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[n])
	}
	sb.WriteByte('\n')
	sb.WriteString(grapheme.Slice(b.lines[to.Line], 0, to.Ch))
	return sb.String()
}

// ============================================================================
// Changes
// ============================================================================

// ChangeGeneration returns a counter bumped by every text change.
func (b *Buffer) ChangeGeneration() uint64 { return b.gen }

// IsClean reports whether the text is unchanged since gen.
func (b *Buffer) IsClean(gen uint64) bool { return b.gen == gen }

// ReplaceRange swaps [from, to) for text and records the change for undo.
func (b *Buffer) ReplaceRange(text string, from, to emacs.Position, origin emacs.Origin) {
	r := emacs.NewRange(b.ClipPos(from), b.ClipPos(to))
	if r.Empty() && text == "" {
		return
	}
	anchor, head := b.anchor, b.head
	removed, end := b.apply(text, r.From, r.To)
	b.history.Push(Edit{
		From:         r.From,
		Removed:      removed,
		Inserted:     text,
		End:          end,
		Origin:       origin,
		AnchorBefore: anchor,
		HeadBefore:   head,
	})
}

// apply performs a change without touching history and returns the removed
// text and the end of the inserted text.
func (b *Buffer) apply(text string, from, to emacs.Position) (string, emacs.Position) {
	removed := b.Range(from, to)

	prefix := grapheme.Slice(b.lines[from.Line], 0, from.Ch)
	last := b.lines[to.Line]
	suffix := grapheme.Slice(last, to.Ch, grapheme.Count(last))

	inserted := splitLines(text)
	inserted[0] = prefix + inserted[0]
	n := len(inserted) - 1
	end := emacs.Pos(from.Line+n, grapheme.Count(inserted[n]))
	inserted[n] += suffix

	lines := make([]string, 0, len(b.lines)-(to.Line-from.Line)+n)
	lines = append(lines, b.lines[:from.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[to.Line+1:]...)
	b.lines = lines

	b.anchor = mapPos(b.anchor, from, to, end)
	b.head = mapPos(b.head, from, to, end)
	b.gen++
	return removed, end
}

// mapPos moves a position across a change of [from, to) into text ending
// at end. Positions inside the replaced span land at end.
func mapPos(p, from, to, end emacs.Position) emacs.Position {
	if p.Before(from) {
		return p
	}
	if !to.Before(p) {
		return end
	}
	if p.Line == to.Line {
		return emacs.Pos(end.Line, end.Ch+p.Ch-to.Ch)
	}
	return emacs.Pos(p.Line+end.Line-to.Line, p.Ch)
}

// Undo reverts the most recent change group. Reports false when there is
// nothing to undo.
func (b *Buffer) Undo() bool {
	group, ok := b.history.Undo()
	if !ok {
		return false
	}
	for i := len(group) - 1; i >= 0; i-- {
		e := group[i]
		b.apply(e.Removed, e.From, e.End)
	}
	first := group[0]
	b.anchor = b.ClipPos(first.AnchorBefore)
	b.head = b.ClipPos(first.HeadBefore)
	return true
}

// Redo reapplies the most recently undone change group.
func (b *Buffer) Redo() bool {
	group, ok := b.history.Redo()
	if !ok {
		return false
	}
	for _, e := range group {
		removedEnd := endOf(e.From, e.Removed)
		b.apply(e.Inserted, e.From, removedEnd)
	}
	last := group[len(group)-1]
	b.anchor, b.head = last.End, last.End
	return true
}

// endOf returns the position after text when inserted at from.
func endOf(from emacs.Position, text string) emacs.Position {
	lines := splitLines(text)
	n := len(lines) - 1
	if n == 0 {
		return emacs.Pos(from.Line, from.Ch+grapheme.Count(lines[0]))
	}
	return emacs.Pos(from.Line+n, grapheme.Count(lines[n]))
}

var _ emacs.TextBuffer = (*Buffer)(nil)
var _ emacs.Undoer = (*Buffer)(nil)

package emacs

import (
	"strings"

	"github.com/zjrosen/emacskeys/internal/grapheme"
)

// ============================================================================
// Edit Commands
// ============================================================================

// OpenLineCommand inserts a line break after the cursor without moving it.
type OpenLineCommand struct{}

// Execute replaces the selection with count line breaks.
func (c *OpenLineCommand) Execute(e *Editor) ExecuteResult {
	e.repeat(func() bool {
		r := NewRange(e.buf.Anchor(), e.buf.Cursor())
		e.buf.ReplaceRange("\n", r.From, r.To, OriginInput)
		e.buf.SetSelection(r.From, r.From)
		return true
	})
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *OpenLineCommand) ID() string { return "edit.open_line" }

// Description returns the key reference text.
func (c *OpenLineCommand) Description() string { return "Open a line after the cursor" }

// TransposeCharsCommand swaps the characters around the cursor and moves
// past them. At the end of a line it swaps the last two characters; at the
// start of a line it swaps the line break with the previous character.
type TransposeCharsCommand struct{}

// Execute transposes count times.
func (c *TransposeCharsCommand) Execute(e *Editor) ExecuteResult {
	done := false
	e.repeat(func() bool {
		if !transposeChars(e.buf) {
			return false
		}
		done = true
		return true
	})
	if !done {
		return Skipped
	}
	return Executed
}

func transposeChars(buf TextBuffer) bool {
	cur := buf.Cursor()
	clusters := grapheme.Split(buf.Line(cur.Line))
	if cur.Ch == len(clusters) && cur.Ch > 0 {
		cur.Ch--
	}
	if cur.Ch > 0 && cur.Ch < len(clusters) {
		from, to := Pos(cur.Line, cur.Ch-1), Pos(cur.Line, cur.Ch+1)
		buf.ReplaceRange(clusters[cur.Ch]+clusters[cur.Ch-1], from, to, OriginTranspose)
		buf.SetSelection(to, to)
		return true
	}
	if cur.Ch == 0 && len(clusters) > 0 && cur.Line > buf.FirstLine() {
		prev := grapheme.Split(buf.Line(cur.Line - 1))
		if len(prev) == 0 {
			return false
		}
		from, to := Pos(cur.Line-1, len(prev)-1), Pos(cur.Line, 1)
		buf.ReplaceRange(clusters[0]+"\n"+prev[len(prev)-1], from, to, OriginTranspose)
		buf.SetSelection(to, to)
		return true
	}
	return false
}

// ID returns the hierarchical identifier for this command.
func (c *TransposeCharsCommand) ID() string { return "edit.transpose_chars" }

// Description returns the key reference text.
func (c *TransposeCharsCommand) Description() string { return "Transpose characters" }

// TransposeExprsCommand swaps the balanced expressions around the cursor.
type TransposeExprsCommand struct{}

// Execute swaps the expression before the cursor with the one after it.
func (c *TransposeExprsCommand) Execute(e *Editor) ExecuteResult {
	e.prefix.Clear()
	buf := e.buf
	leftStart := ByExpr(buf, buf.Cursor(), -1)
	leftEnd := ByExpr(buf, leftStart, 1)
	rightEnd := ByExpr(buf, leftEnd, 1)
	rightStart := ByExpr(buf, rightEnd, -1)
	if rightEnd == leftEnd || rightStart.Before(leftEnd) || leftEnd == leftStart {
		return Skipped
	}
	text := buf.Range(rightStart, rightEnd) + buf.Range(leftEnd, rightStart) + buf.Range(leftStart, leftEnd)
	buf.SetSelection(leftStart, leftStart)
	buf.ReplaceRange(text, leftStart, rightEnd, OriginTranspose)
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *TransposeExprsCommand) ID() string { return "edit.transpose_exprs" }

// Description returns the key reference text.
func (c *TransposeExprsCommand) Description() string { return "Transpose balanced expressions" }

// WordCaseCommand rewrites the next word through a case function and moves
// past it.
type WordCaseCommand struct {
	id   string
	desc string
	op   func(string) string
}

// Execute applies the case function to count words.
func (c *WordCaseCommand) Execute(e *Editor) ExecuteResult {
	done := false
	e.repeat(func() bool {
		start := e.buf.Cursor()
		end := e.buf.FindPosH(start, 1, UnitWord)
		if end == start {
			return false
		}
		e.buf.SetSelection(start, start)
		e.buf.ReplaceRange(c.op(e.buf.Range(start, end)), start, end, OriginEdit)
		cur := e.buf.Cursor()
		e.buf.SetSelection(cur, cur)
		done = true
		return true
	})
	if !done {
		return Skipped
	}
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *WordCaseCommand) ID() string { return c.id }

// Description returns the key reference text.
func (c *WordCaseCommand) Description() string { return c.desc }

// capitalize upper-cases the first word character and lower-cases the rest.
func capitalize(s string) string {
	clusters := grapheme.Split(s)
	for i, cl := range clusters {
		if grapheme.IsWordChar(cl) {
			return strings.Join(clusters[:i], "") + strings.ToUpper(cl) + strings.ToLower(strings.Join(clusters[i+1:], ""))
		}
	}
	return s
}

// JustOneSpaceCommand collapses the whitespace around the cursor to a
// single space.
type JustOneSpaceCommand struct{}

// Execute replaces the surrounding whitespace run with one space.
func (c *JustOneSpaceCommand) Execute(e *Editor) ExecuteResult {
	e.prefix.Clear()
	cur := e.buf.Cursor()
	clusters := grapheme.Split(e.buf.Line(cur.Line))
	from, to := cur.Ch, cur.Ch
	for from > 0 && grapheme.IsSpace(clusters[from-1]) {
		from--
	}
	for to < len(clusters) && grapheme.IsSpace(clusters[to]) {
		to++
	}
	e.buf.SetSelection(cur, cur)
	e.buf.ReplaceRange(" ", Pos(cur.Line, from), Pos(cur.Line, to), OriginInput)
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *JustOneSpaceCommand) ID() string { return "edit.just_one_space" }

// Description returns the key reference text.
func (c *JustOneSpaceCommand) Description() string { return "Collapse whitespace to one space" }

// NewlineIndentCommand breaks the line and copies the current indentation.
type NewlineIndentCommand struct{}

// Execute replaces the selection with a line break plus indentation.
func (c *NewlineIndentCommand) Execute(e *Editor) ExecuteResult {
	e.repeat(func() bool {
		r := NewRange(e.buf.Anchor(), e.buf.Cursor())
		indent := leadingSpace(e.buf.Line(r.From.Line))
		e.buf.SetSelection(r.From, r.From)
		e.buf.ReplaceRange("\n"+indent, r.From, r.To, OriginInput)
		cur := e.buf.Cursor()
		e.buf.SetSelection(cur, cur)
		return true
	})
	return Executed
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// ID returns the hierarchical identifier for this command.
func (c *NewlineIndentCommand) ID() string { return "edit.newline_indent" }

// Description returns the key reference text.
func (c *NewlineIndentCommand) Description() string { return "Newline and indent" }

// IndentRigidlyCommand shifts every line touched by the selection by the
// prefix (or the keymap's indent unit) columns. Negative amounts dedent.
type IndentRigidlyCommand struct{}

// Execute indents the selected lines.
func (c *IndentRigidlyCommand) Execute(e *Editor) ExecuteResult {
	n, ok := e.prefix.Precise()
	if !ok {
		n = e.keymap.indentUnit
	}
	if n == 0 {
		return Skipped
	}
	r := NewRange(e.buf.Anchor(), e.buf.Cursor())
	for line := r.From.Line; line <= r.To.Line; line++ {
		if n > 0 {
			e.buf.ReplaceRange(strings.Repeat(" ", n), Pos(line, 0), Pos(line, 0), OriginEdit)
			continue
		}
		lead := grapheme.Count(leadingSpace(e.buf.Line(line)))
		if cut := min(-n, lead); cut > 0 {
			e.buf.ReplaceRange("", Pos(line, 0), Pos(line, cut), OriginEdit)
		}
	}
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *IndentRigidlyCommand) ID() string { return "edit.indent_rigidly" }

// Description returns the key reference text.
func (c *IndentRigidlyCommand) Description() string { return "Indent region by prefix columns" }

// InsertTabCommand inserts a literal tab.
type InsertTabCommand struct{}

// Execute replaces the selection with count tabs.
func (c *InsertTabCommand) Execute(e *Editor) ExecuteResult {
	e.repeat(func() bool {
		r := NewRange(e.buf.Anchor(), e.buf.Cursor())
		e.buf.SetSelection(r.From, r.From)
		e.buf.ReplaceRange("\t", r.From, r.To, OriginInput)
		return true
	})
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *InsertTabCommand) ID() string { return "edit.insert_tab" }

// Description returns the key reference text.
func (c *InsertTabCommand) Description() string { return "Insert a literal tab" }

// UndoCommand steps the buffer's undo history back count times.
type UndoCommand struct{}

// Execute undoes; buffers without history pass the gesture through.
func (c *UndoCommand) Execute(e *Editor) ExecuteResult {
	u, ok := e.buf.(Undoer)
	if !ok {
		e.prefix.Clear()
		return PassThrough
	}
	undone := false
	e.repeat(func() bool {
		if !u.Undo() {
			return false
		}
		undone = true
		return true
	})
	if !undone {
		return Skipped
	}
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *UndoCommand) ID() string { return "edit.undo" }

// Description returns the key reference text.
func (c *UndoCommand) Description() string { return "Undo" }

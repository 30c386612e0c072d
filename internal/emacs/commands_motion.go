package emacs

import (
	"strconv"
	"strings"
)

// ============================================================================
// Motion Commands
// ============================================================================
//
// Motions consume the prefix as a repeat count and extend the selection, so
// they select when the mark is active and simply move otherwise.

// MoveCommand moves by a unit boundary.
type MoveCommand struct {
	MotionBase
	id   string
	desc string
	by   Boundary
	dir  int
}

// Execute moves the cursor count boundaries in the command's direction.
func (c *MoveCommand) Execute(e *Editor) ExecuteResult {
	e.buf.ExtendSelection(e.findEnd(e.buf.Cursor(), c.by, c.dir))
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *MoveCommand) ID() string { return c.id }

// Description returns the key reference text.
func (c *MoveCommand) Description() string { return c.desc }

// VerticalMoveCommand moves by lines or pages and keeps the goal column
// between consecutive vertical moves.
type VerticalMoveCommand struct {
	VerticalBase
	MoveCommand
}

// Execute pins the goal column on the first vertical move, then moves.
func (c *VerticalMoveCommand) Execute(e *Editor) ExecuteResult {
	if e.buf.GoalColumn() < 0 {
		e.buf.SetGoalColumn(e.buf.Cursor().Ch)
	}
	return c.MoveCommand.Execute(e)
}

// LineEdgeCommand moves to the start or end of the current line.
type LineEdgeCommand struct {
	MotionBase
	end bool
}

// Execute moves to the line edge. The prefix is consumed and ignored.
func (c *LineEdgeCommand) Execute(e *Editor) ExecuteResult {
	e.prefix.Clear()
	cur := e.buf.Cursor()
	if c.end {
		e.buf.ExtendSelection(lineEnd(e.buf, cur.Line))
	} else {
		e.buf.ExtendSelection(Pos(cur.Line, 0))
	}
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *LineEdgeCommand) ID() string {
	if c.end {
		return "move.line_end"
	}
	return "move.line_start"
}

// Description returns the key reference text.
func (c *LineEdgeCommand) Description() string {
	if c.end {
		return "Move to end of line"
	}
	return "Move to start of line"
}

// DocEdgeCommand moves to the start or end of the buffer.
type DocEdgeCommand struct {
	MotionBase
	end bool
}

// Execute moves to the document edge.
func (c *DocEdgeCommand) Execute(e *Editor) ExecuteResult {
	e.prefix.Clear()
	if c.end {
		e.buf.ExtendSelection(docEnd(e.buf))
	} else {
		e.buf.ExtendSelection(docStart(e.buf))
	}
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *DocEdgeCommand) ID() string {
	if c.end {
		return "move.doc_end"
	}
	return "move.doc_start"
}

// Description returns the key reference text.
func (c *DocEdgeCommand) Description() string {
	if c.end {
		return "Move to end of buffer"
	}
	return "Move to start of buffer"
}

// GotoLineCommand jumps to a 1-based line number taken from the prefix, or
// asks the host for one.
type GotoLineCommand struct {
	MotionBase
}

// Execute jumps immediately when a positive prefix is present. Otherwise it
// prompts; without a Prompter the command is skipped.
func (c *GotoLineCommand) Execute(e *Editor) ExecuteResult {
	if n, ok := e.prefix.Precise(); ok && n > 0 {
		gotoLine(e.buf, n)
		return Executed
	}
	p := e.prompter()
	if p == nil {
		return Skipped
	}
	buf := e.buf
	p.Prompt("Goto line", func(answer string) {
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil || n <= 0 {
			return
		}
		gotoLine(buf, n)
	})
	return Executed
}

func gotoLine(buf TextBuffer, n int) {
	pos := buf.ClipPos(Pos(buf.FirstLine()+n-1, 0))
	buf.SetSelection(pos, pos)
}

// ID returns the hierarchical identifier for this command.
func (c *GotoLineCommand) ID() string { return "move.goto_line" }

// Description returns the key reference text.
func (c *GotoLineCommand) Description() string { return "Go to line (prefix or prompt)" }

// UpListCommand moves to the opening bracket enclosing the cursor.
type UpListCommand struct {
	MotionBase
}

// Execute repeats count times, stopping at the outermost level.
func (c *UpListCommand) Execute(e *Editor) ExecuteResult {
	moved := false
	e.repeat(func() bool {
		pos, ok := enclosingOpen(e.buf, e.buf.Cursor())
		if !ok {
			return false
		}
		e.buf.ExtendSelection(pos)
		moved = true
		return true
	})
	if !moved {
		return Skipped
	}
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *UpListCommand) ID() string { return "move.up_list" }

// Description returns the key reference text.
func (c *UpListCommand) Description() string { return "Move to enclosing opening bracket" }

package emacs

import "github.com/zjrosen/emacskeys/internal/grapheme"

// ============================================================================
// Kill Commands
// ============================================================================

// KillToCommand kills from the cursor to a unit boundary.
type KillToCommand struct {
	KillBase
	id    string
	desc  string
	by    Boundary
	dir   int
	merge bool
}

// Execute kills to the boundary count units away. Nothing is recorded when
// the boundary does not move.
func (c *KillToCommand) Execute(e *Editor) ExecuteResult {
	cur := e.buf.Cursor()
	end := e.findEnd(cur, c.by, c.dir)
	if end == cur {
		return Skipped
	}
	e.kill(cur, end, c.merge)
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *KillToCommand) ID() string { return c.id }

// Description returns the key reference text.
func (c *KillToCommand) Description() string { return c.desc }

// KillLineCommand kills to the end of the line. When only whitespace
// remains it also takes the line break.
type KillLineCommand struct {
	KillBase
}

// Execute repeats count times; consecutive runs merge into one ring entry.
func (c *KillLineCommand) Execute(e *Editor) ExecuteResult {
	killed := false
	e.repeat(func() bool {
		start := e.buf.Cursor()
		end := lineEnd(e.buf, start.Line)
		text := e.buf.Range(start, end)
		if !grapheme.HasText(text) && start.Line < e.buf.LastLine() {
			text += "\n"
			end = Pos(start.Line+1, 0)
		}
		if end == start {
			return false
		}
		e.killText(start, end, true, text)
		killed = true
		return true
	})
	if !killed {
		return Skipped
	}
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *KillLineCommand) ID() string { return "kill.line" }

// Description returns the key reference text.
func (c *KillLineCommand) Description() string { return "Kill to end of line" }

// KillRegionCommand kills the selection, or the word before the cursor when
// nothing is selected.
type KillRegionCommand struct {
	KillBase
}

// Execute kills the selected region into a fresh ring entry.
func (c *KillRegionCommand) Execute(e *Editor) ExecuteResult {
	anchor, head := e.buf.Anchor(), e.buf.Cursor()
	if anchor != head {
		e.prefix.Clear()
		e.kill(anchor, head, false)
		return Executed
	}
	end := e.findEnd(head, ByWord, -1)
	if end == head {
		return Skipped
	}
	e.kill(head, end, true)
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *KillRegionCommand) ID() string { return "kill.region" }

// Description returns the key reference text.
func (c *KillRegionCommand) Description() string { return "Kill region (or previous word)" }

// CopyRegionCommand saves the selection to the ring without removing it and
// clears the mark.
type CopyRegionCommand struct {
	KillBase
}

// Execute copies the region.
func (c *CopyRegionCommand) Execute(e *Editor) ExecuteResult {
	r := NewRange(e.buf.Anchor(), e.buf.Cursor())
	if r.Empty() {
		return Skipped
	}
	text := e.buf.Range(r.From, r.To)
	e.killer().save(text)
	e.publishKill(text)
	e.clearMark()
	return Executed
}

// ChangesContent reports that copying leaves the text alone.
func (c *CopyRegionCommand) ChangesContent() bool { return false }

// ID returns the hierarchical identifier for this command.
func (c *CopyRegionCommand) ID() string { return "kill.copy_region" }

// Description returns the key reference text.
func (c *CopyRegionCommand) Description() string { return "Copy region to kill ring" }

// ============================================================================
// Yank Commands
// ============================================================================

// YankCommand inserts a kill ring entry at the cursor and leaves the cursor
// after it with nothing selected.
type YankCommand struct {
	YankBase
}

// Execute inserts the entry count back from the newest.
func (c *YankCommand) Execute(e *Editor) ExecuteResult {
	text := e.killer().yank(e.prefix.Count())
	if text == "" {
		return Skipped
	}
	start := e.buf.Cursor()
	e.buf.ReplaceRange(text, start, start, OriginPaste)
	end := e.buf.Cursor()
	e.buf.SetSelection(end, end)
	e.recordYank(start, end)
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *YankCommand) ID() string { return "yank.at_cursor" }

// Description returns the key reference text.
func (c *YankCommand) Description() string { return "Yank most recent kill" }

// YankPopCommand rotates the ring. Directly after a yank it replaces the
// yanked text with the next older entry; otherwise it replaces the selection.
type YankPopCommand struct {
	YankBase
}

// Execute drops the newest ring entry and inserts the new newest.
func (c *YankPopCommand) Execute(e *Editor) ExecuteResult {
	e.prefix.Clear()
	if e.killer().Len() == 0 {
		return Skipped
	}
	var r Range
	if y := e.lastYank; y != nil && e.buf.IsClean(y.gen) {
		r = Range{From: y.from, To: y.to}
	} else {
		r = NewRange(e.buf.Anchor(), e.buf.Cursor())
	}
	text := e.killer().yankPop()
	e.buf.SetSelection(r.From, r.From)
	e.buf.ReplaceRange(text, r.From, r.To, OriginPaste)
	end := e.buf.Cursor()
	e.buf.SetSelection(end, end)
	e.recordYank(r.From, end)
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *YankPopCommand) ID() string { return "yank.pop" }

// Description returns the key reference text.
func (c *YankPopCommand) Description() string { return "Replace yank with older kill" }

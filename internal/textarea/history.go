package textarea

import (
	"strings"

	"github.com/zjrosen/emacskeys/internal/emacs"
)

// DefaultHistoryLimit bounds the number of undo groups kept.
const DefaultHistoryLimit = 1000

// Edit is one recorded text change.
type Edit struct {
	From     emacs.Position
	Removed  string
	Inserted string
	// End is where the inserted text ends after the change.
	End    emacs.Position
	Origin emacs.Origin

	AnchorBefore emacs.Position
	HeadBefore   emacs.Position
}

// History manages undo groups. Consecutive typing or deleting at adjacent
// positions collapses into one group so a single undo reverts a word, not a
// keystroke.
//
// The undoIndex works as follows:
//   - -1 means we're at the base state (nothing to undo)
//   - 0 to len(groups)-1 points to the last applied group
//   - Undo returns groups[undoIndex] and decrements
//   - Redo increments and returns groups[undoIndex]
//
// Pushing after an undo discards the redo branch.
type History struct {
	groups    [][]Edit
	undoIndex int
	limit     int
	sealed    bool // set by Undo/Redo so the next Push starts a group
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{undoIndex: -1, limit: DefaultHistoryLimit}
}

// Push records an applied edit, merging it into the newest group when it
// continues the same kind of change.
func (h *History) Push(e Edit) {
	h.groups = h.groups[:h.undoIndex+1]
	sealed := h.sealed
	h.sealed = false
	if n := len(h.groups); n > 0 && !sealed {
		group := h.groups[n-1]
		if continues(group[len(group)-1], e) {
			h.groups[n-1] = append(group, e)
			return
		}
	}
	h.groups = append(h.groups, []Edit{e})
	if len(h.groups) > h.limit {
		h.groups = h.groups[len(h.groups)-h.limit:]
	}
	h.undoIndex = len(h.groups) - 1
}

func continues(prev, next Edit) bool {
	if prev.Origin != next.Origin {
		return false
	}
	switch next.Origin {
	case emacs.OriginInput:
		return next.Removed == "" && prev.Removed == "" &&
			next.From == prev.End && !strings.Contains(next.Inserted, "\n")
	case emacs.OriginDelete:
		return next.Inserted == "" && prev.Inserted == "" &&
			(next.From == prev.From || next.End == prev.From)
	}
	return false
}

// Undo returns the group to revert and steps back. ok is false at the base
// state.
func (h *History) Undo() (group []Edit, ok bool) {
	if h.undoIndex < 0 {
		return nil, false
	}
	group = h.groups[h.undoIndex]
	h.undoIndex--
	h.sealed = true
	return group, true
}

// Redo returns the next undone group and steps forward.
func (h *History) Redo() (group []Edit, ok bool) {
	if h.undoIndex >= len(h.groups)-1 {
		return nil, false
	}
	h.undoIndex++
	h.sealed = true
	return h.groups[h.undoIndex], true
}

// CanUndo returns true if there are groups to undo.
func (h *History) CanUndo() bool { return h.undoIndex >= 0 }

// CanRedo returns true if there are groups to redo.
func (h *History) CanRedo() bool { return h.undoIndex < len(h.groups)-1 }

// Len returns the number of groups, including undone ones.
func (h *History) Len() int { return len(h.groups) }

// Clear resets the history to the base state.
func (h *History) Clear() {
	h.groups = h.groups[:0]
	h.undoIndex = -1
	h.sealed = false
}

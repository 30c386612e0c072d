package textarea

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/emacskeys/internal/emacs"
)

func pos(line, ch int) emacs.Position { return emacs.Pos(line, ch) }

func TestNew_SplitsLines(t *testing.T) {
	b := New("one\r\ntwo\nthree")
	require.Equal(t, []string{"one", "two", "three"}, b.Lines())
	require.Equal(t, 2, b.LastLine())
	require.Equal(t, "one\ntwo\nthree", b.Text())
	require.NotEmpty(t, b.ID())
	require.Equal(t, -1, b.GoalColumn())
}

func TestNew_WithOptions(t *testing.T) {
	b := New("", WithID("scratch"), WithPageSize(5))
	require.Equal(t, "scratch", b.ID())
	require.Equal(t, 5, b.PageSize())
	require.Equal(t, []string{""}, b.Lines())
}

func TestClipPos(t *testing.T) {
	b := New("ab\ncde")
	require.Equal(t, pos(0, 0), b.ClipPos(pos(-1, 5)))
	require.Equal(t, pos(1, 3), b.ClipPos(pos(9, 0)))
	require.Equal(t, pos(0, 2), b.ClipPos(pos(0, 10)))
	require.Equal(t, pos(1, 0), b.ClipPos(pos(1, -4)))
}

func TestRange(t *testing.T) {
	b := New("hello\nbig\nworld")
	require.Equal(t, "llo\nbig\nwo", b.Range(pos(0, 2), pos(2, 2)))
	require.Equal(t, "llo\nbig\nwo", b.Range(pos(2, 2), pos(0, 2)), "order does not matter")
	require.Equal(t, "ig", b.Range(pos(1, 1), pos(1, 3)))
	require.Equal(t, "\n", b.Range(pos(0, 5), pos(1, 0)))
}

func TestReplaceRange_SingleLine(t *testing.T) {
	b := New("hello world")
	b.SetSelection(pos(0, 11), pos(0, 11))
	b.ReplaceRange("there", pos(0, 6), pos(0, 11), emacs.OriginInput)
	require.Equal(t, "hello there", b.Text())
	require.Equal(t, pos(0, 11), b.Cursor(), "cursor at end of replaced span lands at end of insertion")
}

func TestReplaceRange_MultiLine(t *testing.T) {
	b := New("abc\ndef\nghi")
	b.SetSelection(pos(2, 2), pos(2, 2))
	b.ReplaceRange("X\nY", pos(0, 1), pos(1, 2), emacs.OriginInput)
	require.Equal(t, "aX\nYf\nghi", b.Text())
	require.Equal(t, pos(2, 2), b.Cursor(), "later lines keep their columns")
}

func TestReplaceRange_BumpsGeneration(t *testing.T) {
	b := New("abc")
	gen := b.ChangeGeneration()
	require.True(t, b.IsClean(gen))

	b.ReplaceRange("", pos(0, 0), pos(0, 1), emacs.OriginDelete)
	require.False(t, b.IsClean(gen))

	gen = b.ChangeGeneration()
	b.ReplaceRange("", pos(0, 1), pos(0, 1), emacs.OriginDelete)
	require.True(t, b.IsClean(gen), "empty no-op change leaves the generation alone")
}

func TestMapPos(t *testing.T) {
	from, to, end := pos(1, 2), pos(1, 5), pos(1, 3)
	require.Equal(t, pos(1, 1), mapPos(pos(1, 1), from, to, end), "before the change")
	require.Equal(t, end, mapPos(pos(1, 2), from, to, end), "at from")
	require.Equal(t, end, mapPos(pos(1, 4), from, to, end), "inside")
	require.Equal(t, pos(1, 5), mapPos(pos(1, 7), from, to, end), "after on the same line")
	require.Equal(t, pos(3, 7), mapPos(pos(3, 7), from, to, end), "later line")
}

func TestExtendSelection(t *testing.T) {
	b := New("hello")
	b.ExtendSelection(pos(0, 2))
	require.Equal(t, pos(0, 2), b.Anchor())

	b.SetExtending(true)
	b.ExtendSelection(pos(0, 4))
	require.Equal(t, pos(0, 2), b.Anchor())
	require.Equal(t, pos(0, 4), b.Cursor())
	require.Equal(t, "ll", b.Selection())
}

func TestUndoRedo(t *testing.T) {
	b := New("abc")
	b.SetSelection(pos(0, 3), pos(0, 3))
	b.ReplaceRange("d", pos(0, 3), pos(0, 3), emacs.OriginInput)
	b.ReplaceRange("e", pos(0, 4), pos(0, 4), emacs.OriginInput)
	b.ReplaceRange("", pos(0, 0), pos(0, 1), emacs.OriginDelete)
	require.Equal(t, "bcde", b.Text())

	require.True(t, b.Undo())
	require.Equal(t, "abcde", b.Text())

	require.True(t, b.Undo(), "adjacent typing undoes as one group")
	require.Equal(t, "abc", b.Text())
	require.Equal(t, pos(0, 3), b.Cursor())
	require.False(t, b.Undo())

	require.True(t, b.Redo())
	require.Equal(t, "abcde", b.Text())
	require.True(t, b.Redo())
	require.Equal(t, "bcde", b.Text())
	require.False(t, b.Redo())
}

func TestUndo_MultiLine(t *testing.T) {
	b := New("one\ntwo")
	b.ReplaceRange("", pos(0, 2), pos(1, 1), emacs.OriginDelete)
	require.Equal(t, "onwo", b.Text())
	require.True(t, b.Undo())
	require.Equal(t, "one\ntwo", b.Text())
}

func TestSetText_ResetsState(t *testing.T) {
	b := New("abc")
	b.SetSelection(pos(0, 1), pos(0, 2))
	b.SetExtending(true)
	b.ReplaceRange("x", pos(0, 0), pos(0, 0), emacs.OriginInput)

	b.SetText("new\ntext")
	require.Equal(t, pos(0, 0), b.Cursor())
	require.False(t, b.Extending())
	require.False(t, b.Undo())
}

// Undoing every change restores the original text.
func TestUndo_Property_RestoresOriginal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		original := rapid.StringMatching(`[a-c\n ]{0,12}`).Draw(t, "text")
		b := New(original)
		steps := rapid.IntRange(1, 8).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			a := b.ClipPos(pos(rapid.IntRange(0, 4).Draw(t, "l1"), rapid.IntRange(0, 6).Draw(t, "c1")))
			c := b.ClipPos(pos(rapid.IntRange(0, 4).Draw(t, "l2"), rapid.IntRange(0, 6).Draw(t, "c2")))
			ins := rapid.StringMatching(`[xy\n]{0,3}`).Draw(t, "ins")
			b.ReplaceRange(ins, a, c, emacs.OriginEdit)
		}
		for b.Undo() {
		}
		if b.Text() != original {
			t.Fatalf("after undo got %q, want %q", b.Text(), original)
		}
	})
}

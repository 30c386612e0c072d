package textarea

import (
	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/grapheme"
)

// FindPosH steps |dir| units horizontally from pos. Char steps cross line
// breaks. A word step skips non-word characters (line breaks included) and
// then the following run of word characters. Steps stop early at the
// document edges.
func (b *Buffer) FindPosH(pos emacs.Position, dir int, unit emacs.Unit) emacs.Position {
	pos = b.ClipPos(pos)
	sign := 1
	if dir < 0 {
		sign, dir = -1, -dir
	}
	for i := 0; i < dir; i++ {
		var next emacs.Position
		switch unit {
		case emacs.UnitWord:
			next = b.wordStep(pos, sign)
		default:
			next = b.charStep(pos, sign)
		}
		if next == pos {
			break
		}
		pos = next
	}
	return pos
}

func (b *Buffer) charStep(pos emacs.Position, dir int) emacs.Position {
	if dir > 0 {
		if pos.Ch < b.LineLength(pos.Line) {
			return emacs.Pos(pos.Line, pos.Ch+1)
		}
		if pos.Line < b.LastLine() {
			return emacs.Pos(pos.Line+1, 0)
		}
		return pos
	}
	if pos.Ch > 0 {
		return emacs.Pos(pos.Line, pos.Ch-1)
	}
	if pos.Line > b.FirstLine() {
		return emacs.Pos(pos.Line-1, b.LineLength(pos.Line-1))
	}
	return pos
}

// charAt returns the cluster after pos, "\n" at a line end.
func (b *Buffer) charAt(pos emacs.Position) string {
	if c := grapheme.At(b.Line(pos.Line), pos.Ch); c != "" {
		return c
	}
	return "\n"
}

func (b *Buffer) wordStep(pos emacs.Position, dir int) emacs.Position {
	sawWord := false
	if dir > 0 {
		for {
			isWord := grapheme.IsWordChar(b.charAt(pos))
			if sawWord && !isWord {
				return pos
			}
			sawWord = sawWord || isWord
			next := b.charStep(pos, 1)
			if next == pos {
				return pos
			}
			pos = next
		}
	}
	for {
		next := b.charStep(pos, -1)
		if next == pos {
			return pos
		}
		isWord := grapheme.IsWordChar(b.charAt(next))
		if sawWord && !isWord {
			return pos
		}
		sawWord = sawWord || isWord
		pos = next
	}
}

// FindPosV steps |dir| lines (or pages) vertically, aiming for goalCol.
// A step that overshoots the document lands on the edge line; from the edge
// line itself pos comes back unchanged.
func (b *Buffer) FindPosV(pos emacs.Position, dir int, unit emacs.Unit, goalCol int) emacs.Position {
	pos = b.ClipPos(pos)
	if goalCol < 0 {
		goalCol = pos.Ch
	}
	step := dir
	if unit == emacs.UnitPage {
		step = dir * b.pageSize
	}
	target := pos.Line + step
	switch {
	case step == 0:
		return pos
	case target < b.FirstLine():
		if pos.Line == b.FirstLine() {
			return pos
		}
		target = b.FirstLine()
	case target > b.LastLine():
		if pos.Line == b.LastLine() {
			return pos
		}
		target = b.LastLine()
	}
	return emacs.Pos(target, min(goalCol, b.LineLength(target)))
}

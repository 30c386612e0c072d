package emacs

import "github.com/zjrosen/emacskeys/internal/grapheme"

// Boundary computes the next unit boundary from pos in direction dir (+1 or
// -1). A result equal to pos means no further movement is possible.
type Boundary func(buf TextBuffer, pos Position, dir int) Position

// ============================================================================
// Host-backed units
// ============================================================================

// ByChar steps one grapheme, crossing line breaks.
func ByChar(buf TextBuffer, pos Position, dir int) Position {
	return buf.FindPosH(pos, dir, UnitChar)
}

// ByWord steps to the next word edge using the host's word rules.
func ByWord(buf TextBuffer, pos Position, dir int) Position {
	return buf.FindPosH(pos, dir, UnitWord)
}

// ByLine steps one line vertically, honouring the buffer's goal column.
func ByLine(buf TextBuffer, pos Position, dir int) Position {
	return buf.FindPosV(pos, dir, UnitLine, buf.GoalColumn())
}

// ByPage steps one screenful vertically, honouring the goal column.
func ByPage(buf TextBuffer, pos Position, dir int) Position {
	return buf.FindPosV(pos, dir, UnitPage, buf.GoalColumn())
}

// ============================================================================
// Paragraphs
// ============================================================================

// ByParagraph moves to the first blank line after a run of text in dir.
// Text after (or, backwards, before) pos on its own line counts toward the
// run. Reaching the document edge returns the edge position.
func ByParagraph(buf TextBuffer, pos Position, dir int) Position {
	no := pos.Line
	line := buf.Line(no)
	var rest string
	if dir < 0 {
		rest = grapheme.Slice(line, 0, pos.Ch)
	} else {
		rest = grapheme.Slice(line, pos.Ch, grapheme.Count(line))
	}
	sawText := grapheme.HasText(rest)

	first, last := buf.FirstLine(), buf.LastLine()
	for {
		no += dir
		if no < first || no > last {
			edge := no - dir
			if dir < 0 {
				return Pos(edge, 0)
			}
			return lineEnd(buf, edge)
		}
		if grapheme.HasText(buf.Line(no)) {
			sawText = true
		} else if sawText {
			return Pos(no, 0)
		}
	}
}

// ============================================================================
// Sentences
// ============================================================================

func isSentenceEnd(cluster string) bool {
	return cluster == "." || cluster == "?" || cluster == "!"
}

// BySentence scans for a sentence terminator preceded, in scan order, by at
// least one word character. Forward results land just after the terminator;
// backward results land just after the previous sentence's terminator. The
// scan crosses line breaks but stops at a whitespace-only line or the
// document edge.
func BySentence(buf TextBuffer, pos Position, dir int) Position {
	line, ch := pos.Line, pos.Ch
	clusters := grapheme.Split(buf.Line(line))
	sawWord := false

	for {
		idx := ch
		if dir < 0 {
			idx = ch - 1
		}
		if idx < 0 || idx >= len(clusters) {
			edge := buf.LastLine()
			if dir < 0 {
				edge = buf.FirstLine()
			}
			if line == edge {
				return Pos(line, ch)
			}
			text := buf.Line(line + dir)
			if !grapheme.HasText(text) {
				return Pos(line, ch)
			}
			line += dir
			clusters = grapheme.Split(text)
			if dir < 0 {
				ch = len(clusters)
			} else {
				ch = 0
			}
			continue
		}

		next := clusters[idx]
		if sawWord && isSentenceEnd(next) {
			if dir > 0 {
				return Pos(line, ch+1)
			}
			return Pos(line, ch)
		}
		if !sawWord {
			sawWord = grapheme.IsWordChar(next)
		}
		ch += dir
	}
}

// ============================================================================
// Balanced expressions
// ============================================================================

// ByExpr jumps over a balanced bracket pair when one sits on the leading
// side of pos, otherwise to the far edge of the next token that contains a
// word character. Tokens without word characters are skipped.
func ByExpr(buf TextBuffer, pos Position, dir int) Position {
	if m, ok := buf.MatchingBracket(pos); ok && m.Matched && m.Dir() == dir {
		if dir > 0 {
			return Pos(m.To.Line, m.To.Ch+1)
		}
		return m.To
	}

	for first := true; ; first = false {
		tok := buf.TokenAt(pos)
		after := Pos(pos.Line, tok.End)
		if dir < 0 {
			after = Pos(pos.Line, tok.Start)
		}
		if (first && dir > 0 && tok.End == pos.Ch) || !grapheme.ContainsWordChar(tok.String) {
			if dir < 0 && after.Ch < pos.Ch {
				// TokenAt(after) already yields the preceding token
				pos = after
				continue
			}
			next := buf.FindPosH(after, dir, UnitChar)
			if next == after {
				return pos
			}
			pos = next
			continue
		}
		return after
	}
}

// enclosingOpen finds the nearest unmatched opening bracket before pos.
func enclosingOpen(buf TextBuffer, pos Position) (Position, bool) {
	depth := 0
	for line := pos.Line; line >= buf.FirstLine(); line-- {
		clusters := grapheme.Split(buf.Line(line))
		end := len(clusters)
		if line == pos.Line {
			end = min(pos.Ch, end)
		}
		for i := end - 1; i >= 0; i-- {
			switch clusters[i] {
			case ")", "]", "}":
				depth++
			case "(", "[", "{":
				if depth == 0 {
					return Pos(line, i), true
				}
				depth--
			}
		}
	}
	return pos, false
}

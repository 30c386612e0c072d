package textarea

import (
	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/grapheme"
)

// maxScanLines bounds how far bracket matching searches.
const maxScanLines = 1000

var partners = map[string]string{
	"(": ")", "[": "]", "{": "}",
	")": "(", "]": "[", "}": "{",
}

func isOpen(c string) bool  { return c == "(" || c == "[" || c == "{" }
func isClose(c string) bool { return c == ")" || c == "]" || c == "}" }

// MatchingBracket inspects the closing bracket just before pos, or failing
// that the opening bracket just after it, and finds its partner. Nesting is
// strict: a mismatched bracket ends the scan with Matched false.
func (b *Buffer) MatchingBracket(pos emacs.Position) (emacs.BracketMatch, bool) {
	pos = b.ClipPos(pos)
	clusters := grapheme.Split(b.Line(pos.Line))

	var from emacs.Position
	var forward bool
	switch {
	case pos.Ch > 0 && isClose(clusters[pos.Ch-1]):
		from = emacs.Pos(pos.Line, pos.Ch-1)
	case pos.Ch < len(clusters) && isOpen(clusters[pos.Ch]):
		from, forward = pos, true
	default:
		return emacs.BracketMatch{}, false
	}

	to, matched := b.scanPartner(from, clusters[from.Ch], forward)
	return emacs.BracketMatch{From: from, To: to, Matched: matched, Forward: forward}, true
}

func (b *Buffer) scanPartner(from emacs.Position, bracket string, forward bool) (emacs.Position, bool) {
	stack := []string{partners[bracket]}
	dir := -1
	if forward {
		dir = 1
	}
	for line, scanned := from.Line, 0; line >= b.FirstLine() && line <= b.LastLine() && scanned < maxScanLines; line, scanned = line+dir, scanned+1 {
		clusters := grapheme.Split(b.Line(line))
		i := len(clusters) - 1
		if forward {
			i = 0
		}
		if line == from.Line {
			i = from.Ch + dir
		}
		for ; i >= 0 && i < len(clusters); i += dir {
			c := clusters[i]
			opens, closes := isOpen(c), isClose(c)
			if !opens && !closes {
				continue
			}
			if opens == forward {
				stack = append(stack, partners[c])
				continue
			}
			want := stack[len(stack)-1]
			if c != want {
				return emacs.Pos(line, i), false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return emacs.Pos(line, i), true
			}
		}
	}
	return from, false
}

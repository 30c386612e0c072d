package emacs

import (
	"errors"
	"strconv"
	"strings"

	"github.com/zjrosen/emacskeys/internal/log"
)

// prefixPreserving lists the gestures that leave an accumulated prefix in
// place when they complete.
var prefixPreserving = map[string]bool{
	"Alt-G":  true,
	"Ctrl-X": true,
	"Ctrl-Q": true,
	"Ctrl-U": true,
	"Ctrl--": true,
	"Ctrl-0": true, "Ctrl-1": true, "Ctrl-2": true, "Ctrl-3": true, "Ctrl-4": true,
	"Ctrl-5": true, "Ctrl-6": true, "Ctrl-7": true, "Ctrl-8": true, "Ctrl-9": true,
}

// maxPrefix bounds the magnitude of a numeric argument. Commands that always
// make progress repeat this many times at most.
const maxPrefix = 10000

// Prefix accumulates a numeric argument typed before a command. The zero
// value is idle.
//
// Digits append to the accumulated string. A leading "-" negates the value,
// and "-" typed after any digit is ignored.
type Prefix struct {
	active bool
	text   string
}

// Active reports whether a prefix is being accumulated.
func (p *Prefix) Active() bool { return p.active }

// Add feeds one prefix token: a single digit or "-".
func (p *Prefix) Add(token string) {
	if !p.active {
		p.active = true
		p.text = token
		log.Debug(log.CatPrefix, "start", "token", token)
		return
	}
	if token == "-" {
		return
	}
	p.text += token
}

// Count consumes the prefix and returns its value, or 1 when idle.
func (p *Prefix) Count() int {
	n, ok := p.Precise()
	if !ok {
		return 1
	}
	return n
}

// Precise consumes the prefix and returns its value and whether one was
// present. A lone "-" reads as -1; magnitudes past maxPrefix are clamped.
func (p *Prefix) Precise() (int, bool) {
	if !p.active {
		return 0, false
	}
	text := p.text
	p.Clear()
	if text == "-" {
		return -1, true
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			log.Warn(log.CatPrefix, "unreadable prefix", "text", text, "error", err)
			return 0, false
		}
		// Atoi saturates at the int limits on overflow; the clamp below applies.
		log.Debug(log.CatPrefix, "prefix overflow", "digits", len(text))
	}
	return clampPrefix(n), true
}

func clampPrefix(n int) int {
	return max(-maxPrefix, min(n, maxPrefix))
}

// Clear drops any accumulated prefix.
func (p *Prefix) Clear() {
	p.active = false
	p.text = ""
}

// String renders the accumulated prefix for a status line, e.g. "C-u -12".
func (p *Prefix) String() string {
	if !p.active {
		return ""
	}
	return "C-u " + p.text
}

// gestureHandled clears the prefix after any gesture that is not
// prefix-preserving, unless the prefix map is engaged.
func (p *Prefix) gestureHandled(gesture string, prefixMap bool) {
	if !p.active || prefixMap || prefixPreserving[gesture] {
		return
	}
	p.Clear()
}

// duplicate consumes the prefix and returns the extra copies of text to
// insert after an input of text, or "" when no duplication applies.
func (p *Prefix) duplicate(text string) string {
	if !p.active {
		return ""
	}
	dup := p.Count()
	if dup <= 1 {
		return ""
	}
	return strings.Repeat(text, dup-1)
}

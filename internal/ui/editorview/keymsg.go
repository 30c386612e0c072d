package editorview

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/emacskeys/internal/emacs"
)

// teaAliases maps Bubble Tea key names whose control codes have an Emacs
// spelling that differs from the literal name.
var teaAliases = map[string]string{
	"ctrl+@": "Ctrl-Space", // NUL, sent for C-SPC
	"ctrl+_": "Ctrl-/",     // US, sent for C-/
}

// KeystrokeFromKey translates a Bubble Tea key event into an emacs
// keystroke. Printable keys carry their text so an unbound key inserts
// itself; a paste is text only.
func KeystrokeFromKey(msg tea.KeyMsg) emacs.Keystroke {
	switch msg.Type {
	case tea.KeyRunes:
		text := string(msg.Runes)
		if msg.Paste || utf8.RuneCountInString(text) != 1 {
			return emacs.Keystroke{Text: text}
		}
		if msg.Alt {
			return emacs.Keystroke{Gesture: emacs.NormalizeGesture("Alt-" + text)}
		}
		return emacs.Keystroke{Gesture: emacs.NormalizeGesture(text), Text: text}
	case tea.KeySpace:
		if msg.Alt {
			return emacs.Keystroke{Gesture: "Alt-Space"}
		}
		return emacs.Keystroke{Gesture: "Space", Text: " "}
	}

	name := msg.String()
	if name == "" {
		return emacs.Keystroke{}
	}
	alt := strings.HasPrefix(name, "alt+")
	name = strings.TrimPrefix(name, "alt+")

	gesture, ok := teaAliases[name]
	if !ok {
		gesture = emacs.NormalizeGesture(strings.ReplaceAll(name, "+", "-"))
	}
	if alt {
		return emacs.Keystroke{Gesture: emacs.NormalizeGesture("Alt-" + gesture)}
	}

	ks := emacs.Keystroke{Gesture: gesture}
	switch gesture {
	case "Enter":
		ks.Text = "\n"
	case "Tab":
		ks.Text = "\t"
	}
	return ks
}

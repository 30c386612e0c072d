package emacs

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var namedKeys = map[string]string{
	"space":     "Space",
	"spc":       "Space",
	"enter":     "Enter",
	"return":    "Enter",
	"ret":       "Enter",
	"tab":       "Tab",
	"esc":       "Esc",
	"escape":    "Esc",
	"backspace": "Backspace",
	"bs":        "Backspace",
	"delete":    "Delete",
	"del":       "Delete",
	"insert":    "Insert",
	"ins":       "Insert",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pgup":      "PageUp",
	"prior":     "PageUp",
	"pagedown":  "PageDown",
	"pgdown":    "PageDown",
	"pgdn":      "PageDown",
	"next":      "PageDown",
}

// NormalizeGesture canonicalizes a gesture name. Modifiers are reordered to
// Shift-Cmd-Ctrl-Alt-Key, modifier and key aliases are resolved (C-, M-,
// RET, SPC and friends) and letters are upper-cased. Space separated
// sequences normalize each chord.
func NormalizeGesture(name string) string {
	fields := strings.Fields(name)
	for i, f := range fields {
		fields[i] = normalizeChord(f)
	}
	return strings.Join(fields, " ")
}

func normalizeChord(chord string) string {
	parts := splitChord(chord)
	key := parts[len(parts)-1]
	var alt, ctrl, cmd, shift bool
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "alt", "a", "meta", "m", "option", "opt":
			alt = true
		case "ctrl", "c", "control":
			ctrl = true
		case "cmd", "command", "super":
			cmd = true
		case "shift", "s":
			shift = true
		}
	}

	key = canonicalKey(key)
	if alt {
		key = "Alt-" + key
	}
	if ctrl {
		key = "Ctrl-" + key
	}
	if cmd {
		key = "Cmd-" + key
	}
	if shift {
		key = "Shift-" + key
	}
	return key
}

// splitChord splits on every "-" that is not the final character, so
// "Ctrl--" yields ["Ctrl", "-"].
func splitChord(chord string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(chord)-1; i++ {
		if chord[i] == '-' {
			parts = append(parts, chord[start:i])
			start = i + 1
		}
	}
	return append(parts, chord[start:])
}

func canonicalKey(key string) string {
	// Emacs spells backspace DEL; the lower-case forms mean the Delete key.
	if key == "DEL" {
		return "Backspace"
	}
	if named, ok := namedKeys[strings.ToLower(key)]; ok {
		return named
	}
	if utf8.RuneCountInString(key) == 1 {
		return strings.ToUpper(key)
	}
	if len(key) >= 2 && (key[0] == 'f' || key[0] == 'F') && strings.Trim(key[1:], "0123456789") == "" {
		return "F" + key[1:]
	}
	return key
}

// Keystroke is one step of a key script: a gesture to dispatch, literal text
// to insert, or both (a printable key that inserts itself when unbound).
type Keystroke struct {
	Gesture string
	Text    string
}

// ParseKeys reads a key script: whitespace separated chords in either
// notation ("C-x C-s", "Ctrl-K", "M-f") and double-quoted literal text
// ("hello \"world\""). A bare printable character both dispatches and
// carries its text. Lines starting with # are comments.
func ParseKeys(script string) ([]Keystroke, error) {
	var out []Keystroke
	for lineNo, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		i := 0
		for i < len(line) {
			switch c := line[i]; {
			case c == ' ' || c == '\t' || c == '\r':
				i++
			case c == '"':
				text, n, err := readQuoted(line[i:])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
				}
				out = append(out, Keystroke{Text: text})
				i += n
			default:
				j := i
				for j < len(line) && line[j] != ' ' && line[j] != '\t' && line[j] != '\r' {
					j++
				}
				out = append(out, chordKeystroke(line[i:j]))
				i = j
			}
		}
	}
	return out, nil
}

func chordKeystroke(tok string) Keystroke {
	ks := Keystroke{Gesture: NormalizeGesture(tok)}
	switch {
	case utf8.RuneCountInString(tok) == 1:
		ks.Text = tok
	case ks.Gesture == "Space":
		ks.Text = " "
	case ks.Gesture == "Enter":
		ks.Text = "\n"
	case ks.Gesture == "Tab":
		ks.Text = "\t"
	}
	return ks
}

// readQuoted parses a double-quoted string starting at s[0] and returns
// the unescaped text and the number of bytes consumed.
func readQuoted(s string) (string, int, error) {
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '"':
			return b.String(), i + 1, nil
		case '\\':
			if i+1 >= len(s) {
				return "", 0, fmt.Errorf("unterminated escape in %s", s)
			}
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return "", 0, fmt.Errorf("unterminated quote in %s", s)
}

package emacs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGesture(t *testing.T) {
	cases := map[string]string{
		"Ctrl-K":           "Ctrl-K",
		"ctrl-k":           "Ctrl-K",
		"C-k":              "Ctrl-K",
		"M-f":              "Alt-F",
		"Meta-f":           "Alt-F",
		"Alt-Ctrl-k":       "Ctrl-Alt-K",
		"C-M-k":            "Ctrl-Alt-K",
		"Ctrl-Shift-2":     "Shift-Ctrl-2",
		"Alt-Shift-Ctrl-2": "Shift-Ctrl-Alt-2",
		"Cmd-z":            "Cmd-Z",
		"Ctrl--":           "Ctrl--",
		"-":                "-",
		"C-x C-s":          "Ctrl-X Ctrl-S",
		"  C-x   h ":       "Ctrl-X H",
		"RET":              "Enter",
		"SPC":              "Space",
		"DEL":              "Backspace",
		"del":              "Delete",
		"M-DEL":            "Alt-Backspace",
		"pgdown":           "PageDown",
		"f5":               "F5",
		"M-<":              "Alt-<",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeGesture(in), "input %q", in)
	}
}

func TestNormalizeGesture_Idempotent(t *testing.T) {
	for g := range DefaultBindings() {
		require.Equal(t, g, NormalizeGesture(g), "default binding %q is not normalized", g)
	}
}

func TestParseKeys(t *testing.T) {
	keys, err := ParseKeys("C-u 3 \"ab\\\"c\" M-f\n# comment line\nx SPC RET")
	require.NoError(t, err)
	require.Equal(t, []Keystroke{
		{Gesture: "Ctrl-U"},
		{Gesture: "3", Text: "3"},
		{Text: "ab\"c"},
		{Gesture: "Alt-F"},
		{Gesture: "X", Text: "x"},
		{Gesture: "Space", Text: " "},
		{Gesture: "Enter", Text: "\n"},
	}, keys)
}

func TestParseKeys_Escapes(t *testing.T) {
	keys, err := ParseKeys(`"a\nb\tc\\"`)
	require.NoError(t, err)
	require.Equal(t, []Keystroke{{Text: "a\nb\tc\\"}}, keys)
}

func TestParseKeys_Unterminated(t *testing.T) {
	_, err := ParseKeys("C-a\n\"oops")
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

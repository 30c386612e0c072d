package emacs_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/grapheme"
	"github.com/zjrosen/emacskeys/internal/textarea"
)

// newBuffer builds a buffer from text where "|" marks the cursor.
func newBuffer(t *testing.T, text string, opts ...textarea.Option) *textarea.Buffer {
	t.Helper()
	cursor := emacs.Pos(0, 0)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "|"); idx >= 0 {
			cursor = emacs.Pos(i, grapheme.Count(line[:idx]))
			lines[i] = line[:idx] + line[idx+1:]
			break
		}
	}
	buf := textarea.New(strings.Join(lines, "\n"), opts...)
	buf.SetSelection(cursor, cursor)
	return buf
}

// newTestEditor attaches a buffer built by newBuffer to a fresh keymap.
func newTestEditor(t *testing.T, text string, opts ...emacs.Option) (*emacs.Editor, *textarea.Buffer) {
	t.Helper()
	buf := newBuffer(t, text)
	return emacs.NewKeymap(nil, opts...).Attach(buf), buf
}

// press dispatches gestures in order.
func press(ed *emacs.Editor, gestures ...string) {
	for _, g := range gestures {
		ed.Dispatch(g)
	}
}

// play runs a key script through the editor.
func play(t *testing.T, ed *emacs.Editor, script string) {
	t.Helper()
	keys, err := emacs.ParseKeys(script)
	require.NoError(t, err)
	ed.Play(keys)
}

// render returns the buffer text with "|" at the cursor.
func render(buf *textarea.Buffer) string {
	lines := buf.Lines()
	cur := buf.Cursor()
	line := lines[cur.Line]
	off := grapheme.ToByteOffset(line, cur.Ch)
	lines[cur.Line] = line[:off] + "|" + line[off:]
	return strings.Join(lines, "\n")
}

type fakeHost struct {
	ran     []string
	known   map[string]bool
	answer  string
	prompts []string
}

func (h *fakeHost) ExecHost(name string) bool {
	h.ran = append(h.ran, name)
	return h.known[name]
}

func (h *fakeHost) Prompt(label string, done func(string)) {
	h.prompts = append(h.prompts, label)
	done(h.answer)
}

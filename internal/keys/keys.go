// Package keys contains the terminal view's own keybindings and adapts the
// emacs gesture table into bubbles help entries.
package keys

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// EditorKeyMap holds the keys the editor view intercepts before they reach
// the emacs keymap.
type EditorKeyMap struct {
	Help      key.Binding
	KillRing  key.Binding
	ForceQuit key.Binding

	// Bindings lists the emacs gestures shown in full help. Display only.
	Bindings []key.Binding
}

// Editor is the default editor view keymap.
var Editor = EditorKeyMap{
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "toggle help"),
	),
	KillRing: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("f2", "kill ring"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit without saving"),
	),
}

// ShortHelp returns keybindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.KillRing, k.ForceQuit}
}

// FullHelp returns the view keys followed by the emacs bindings in columns.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{k.ShortHelp()}
	const perColumn = 12
	for i := 0; i < len(k.Bindings); i += perColumn {
		groups = append(groups, k.Bindings[i:min(i+perColumn, len(k.Bindings))])
	}
	return groups
}

// WithBindings returns a copy of k whose full help lists bindings.
func (k EditorKeyMap) WithBindings(bindings []key.Binding) EditorKeyMap {
	k.Bindings = bindings
	return k
}

// MinibufferKeyMap holds the keys that finish a minibuffer prompt.
type MinibufferKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// Minibuffer is the default minibuffer keymap.
var Minibuffer = MinibufferKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+g"),
		key.WithHelp("esc/C-g", "cancel"),
	),
}

// FromGestures builds display-only help entries from a gesture table
// (gesture → command ID). Gestures sharing a command collapse into one
// entry, ordered by command ID. describe maps an ID to its help text and
// may return "" to fall back to the ID.
func FromGestures(table map[string]string, describe func(id string) string) []key.Binding {
	byID := make(map[string][]string)
	for gesture, id := range table {
		byID[id] = append(byID[id], gesture)
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]key.Binding, 0, len(ids))
	for _, id := range ids {
		gestures := byID[id]
		sort.Strings(gestures)
		desc := ""
		if describe != nil {
			desc = describe(id)
		}
		if desc == "" {
			desc = id
		}
		out = append(out, key.NewBinding(
			key.WithKeys(gestures...),
			key.WithHelp(strings.Join(gestures, "/"), desc),
		))
	}
	return out
}

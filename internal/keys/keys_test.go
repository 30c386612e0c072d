package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestEditor_KeyAssignments(t *testing.T) {
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{
			name:     "Help uses f1",
			binding:  Editor.Help,
			expected: []string{"f1"},
		},
		{
			name:     "KillRing uses f2",
			binding:  Editor.KillRing,
			expected: []string{"f2"},
		},
		{
			name:     "ForceQuit uses ctrl+c (C-x C-c is the emacs quit)",
			binding:  Editor.ForceQuit,
			expected: []string{"ctrl+c"},
		},
		{
			name:     "Minibuffer cancel accepts esc and ctrl+g",
			binding:  Minibuffer.Cancel,
			expected: []string{"esc", "ctrl+g"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestEditor_HelpTextNotEmpty(t *testing.T) {
	for _, b := range Editor.ShortHelp() {
		require.NotEmpty(t, b.Help().Key)
		require.NotEmpty(t, b.Help().Desc)
	}
}

func TestFromGestures_GroupsByCommand(t *testing.T) {
	table := map[string]string{
		"Ctrl-F": "move.char_forward",
		"Right":  "move.char_forward",
		"Ctrl-K": "kill.line",
	}
	describe := func(id string) string {
		if id == "kill.line" {
			return "Kill to end of line"
		}
		return ""
	}

	got := FromGestures(table, describe)
	require.Len(t, got, 2)

	require.Equal(t, []string{"Ctrl-K"}, got[0].Keys())
	require.Equal(t, "Kill to end of line", got[0].Help().Desc)

	require.Equal(t, []string{"Ctrl-F", "Right"}, got[1].Keys())
	require.Equal(t, "Ctrl-F/Right", got[1].Help().Key)
	require.Equal(t, "move.char_forward", got[1].Help().Desc, "falls back to the ID")
}

func TestFullHelp_ColumnsBindings(t *testing.T) {
	var bindings []key.Binding
	for i := 0; i < 25; i++ {
		bindings = append(bindings, key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "x")))
	}
	groups := Editor.WithBindings(bindings).FullHelp()

	require.Len(t, groups, 4, "view keys plus three columns of twelve")
	require.Len(t, groups[0], 3)
	require.Len(t, groups[3], 1)
	require.Empty(t, Editor.Bindings, "WithBindings copies")
}

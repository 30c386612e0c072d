package markdown

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	got := Table("Bindings", []Row{
		{Gestures: []string{"Ctrl-K"}, Command: "kill.line", Description: "Kill to end of line"},
		{Gestures: []string{"Alt-|", "F9"}, Command: "host.pipe", Description: "Pipe | filter"},
	})

	want := "# Bindings\n\n" +
		"| Keys | Command | Description |\n" +
		"|------|---------|-------------|\n" +
		"| `Ctrl-K` | `kill.line` | Kill to end of line |\n" +
		"| `Alt-\\|`, `F9` | `host.pipe` | Pipe \\| filter |\n"
	require.Equal(t, want, got)
}

func TestTable_NoTitle(t *testing.T) {
	got := Table("", nil)
	require.Equal(t, "| Keys | Command | Description |\n|------|---------|-------------|\n", got)
}

func TestRenderer_RendersTable(t *testing.T) {
	r, err := New(80, "notty")
	require.NoError(t, err)
	require.Equal(t, 80, r.Width())

	out, err := r.Render(Table("Bindings", []Row{
		{Gestures: []string{"Ctrl-Y"}, Command: "yank.at_cursor", Description: "Yank"},
	}))
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "Bindings")
	require.Contains(t, plain, "yank.at_cursor")
	require.Contains(t, plain, "Ctrl-Y")
}

func TestNew_DefaultsToDark(t *testing.T) {
	r, err := New(40, "")
	require.NoError(t, err)
	require.NotNil(t, r)
}

package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/emacskeys/internal/config"
	"github.com/zjrosen/emacskeys/internal/emacs"
)

func TestKeys_ListsBindings(t *testing.T) {
	out, err := execute(t, writeConfig(t, ""), "keys")
	require.NoError(t, err)

	var killLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "kill.line ") {
			killLine = line
		}
	}
	require.NotEmpty(t, killLine, out)
	require.Contains(t, killLine, "Ctrl-K")
}

func TestKeys_ReflectsOverrides(t *testing.T) {
	cfgFilePath := writeConfig(t, `keys:
  - gesture: "C-c k"
    command: "kill.line"
  - gesture: "Ctrl-K"
    command: ""
`)
	out, err := execute(t, cfgFilePath, "keys")
	require.NoError(t, err)
	require.Contains(t, out, "Ctrl-C K")
	require.NotContains(t, out, "Ctrl-K")
}

func TestKeys_MarkdownRaw(t *testing.T) {
	out, err := execute(t, writeConfig(t, ""), "keys", "--markdown", "--raw")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "# Key bindings\n"), out)
	require.Contains(t, out, "| `Ctrl-K` | `kill.line` | Kill to end of line |")
}

func TestKeys_MarkdownRendered(t *testing.T) {
	out, err := execute(t, writeConfig(t, ""), "keys", "--markdown")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "Key bindings")
	require.Contains(t, plain, "kill.line")
	require.NotContains(t, plain, "|------|", "table syntax is rendered, not echoed")
}

func TestKeysBind_SavesOverride(t *testing.T) {
	cfgFilePath := writeConfig(t, "")

	out, err := execute(t, cfgFilePath, "keys", "bind", "C-x C-t", "edit.transpose_chars")
	require.NoError(t, err)
	require.Equal(t, "Bound Ctrl-X Ctrl-T to edit.transpose_chars in "+cfgFilePath+"\n", out)

	loaded, err := config.Load(cfgFilePath)
	require.NoError(t, err)
	require.Equal(t, []config.KeyBinding{{Gesture: "Ctrl-X Ctrl-T", Command: "edit.transpose_chars"}}, loaded.Keys)

	out, err = execute(t, cfgFilePath, "keys", "bind", "M-g g", "")
	require.NoError(t, err)
	require.Equal(t, "Unbound Alt-G G in "+cfgFilePath+"\n", out)

	loaded, err = config.Load(cfgFilePath)
	require.NoError(t, err)
	require.Len(t, loaded.Keys, 2)
	km := emacs.NewKeymap(nil)
	require.NoError(t, km.Override(loaded.KeyOverrides()))
	require.Equal(t, "edit.transpose_chars", km.Bindings()["Ctrl-X Ctrl-T"])
	require.NotContains(t, km.Bindings(), "Alt-G G")
	require.Equal(t, "move.goto_line", km.Bindings()["Alt-G Alt-G"])

	data, err := os.ReadFile(cfgFilePath)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Gesture tracing", "comments in other sections survive")
}

func TestKeysBind_RejectsUnknownCommand(t *testing.T) {
	cfgFilePath := writeConfig(t, "")

	_, err := execute(t, cfgFilePath, "keys", "bind", "C-t", "edit.nonsense")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command in key overrides")

	loaded, err := config.Load(cfgFilePath)
	require.NoError(t, err)
	require.Empty(t, loaded.Keys)
}

func TestBindingRows(t *testing.T) {
	km := emacs.NewKeymap(nil)
	rows := bindingRows(km)
	require.NotEmpty(t, rows)
	for i := 1; i < len(rows); i++ {
		require.Less(t, rows[i-1].Command, rows[i].Command)
	}
	for _, row := range rows {
		if row.Command == "yank.pop" {
			require.Equal(t, []string{"Alt-Y"}, row.Gestures)
			require.NotEmpty(t, row.Description)
		}
	}
}

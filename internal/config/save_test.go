package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSaveKeyOverrides_CreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	keys := []KeyBinding{{Gesture: "-", Command: "prefix.negative"}}

	require.NoError(t, SaveKeyOverrides(path, keys))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, keys, cfg.Keys, "quoted gestures survive as strings")
}

func TestSaveKeyOverrides_PreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	keys := []KeyBinding{
		{Gesture: "C-c k", Command: "kill.line"},
		{Gesture: "Ctrl-Z", Command: ""},
	}
	require.NoError(t, SaveKeyOverrides(path, keys))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Editing behaviour", "comments are kept")
	require.Contains(t, string(data), "indent_unit: 2")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, keys, cfg.Keys)
}

func TestSaveKeyOverrides_ReplacesExistingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveKeyOverrides(path, []KeyBinding{{Gesture: "Ctrl-A", Command: "move.doc_start"}}))
	require.NoError(t, SaveKeyOverrides(path, []KeyBinding{{Gesture: "Ctrl-B", Command: "move.doc_end"}}))

	var raw map[string]any
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &raw))
	require.Len(t, raw["keys"], 1)
}

func TestSaveKeyOverrides_EmptyListWritesSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveKeyOverrides(path, nil))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, cfg.Keys)
}

func TestSaveKeyOverrides_RejectsNonMappingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a list\n"), 0o600))

	err := SaveKeyOverrides(path, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a mapping")
}

func TestSaveKeyOverrides_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, SaveKeyOverrides(path, []KeyBinding{{Gesture: "Ctrl-K", Command: "kill.line"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "config.yaml", entries[0].Name())
}

func TestSetKeyOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	keys, err := SetKeyOverride(path, nil, "C-c k", "kill.line")
	require.NoError(t, err)
	require.Equal(t, []KeyBinding{{Gesture: "C-c k", Command: "kill.line"}}, keys)

	keys, err = SetKeyOverride(path, keys, "C-c k", "kill.region")
	require.NoError(t, err)
	require.Equal(t, []KeyBinding{{Gesture: "C-c k", Command: "kill.region"}}, keys, "rebinding replaces in place")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, keys, cfg.Keys)

	_, err = SetKeyOverride(path, keys, "", "kill.line")
	require.Error(t, err)
}

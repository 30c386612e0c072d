package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/emacskeys/internal/config"
)

// execute runs the root command with args against a config file in a temp
// directory and returns everything written to stdout and stderr.
func execute(t *testing.T, cfgFilePath string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(resetCommandState)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgFilePath}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func resetCommandState() {
	cfgFile, debug, traceWith = "", false, ""
	cfg, cfgPath = config.Config{}, ""
	watchConfig = false
	replayKeys, replayScript = "", ""
	replayDiff, replayKillRing, replayWrite = false, false, false
	keysMarkdown, keysRaw = false, false
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	clearChanged(rootCmd)
}

// clearChanged forgets which flags were set so mutually exclusive groups
// don't trip on a previous run.
func clearChanged(c *cobra.Command) {
	reset := func(f *pflag.Flag) { f.Changed = false }
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		clearChanged(sub)
	}
}

// writeConfig writes body to config.yaml in a fresh temp directory.
// An empty body leaves the file absent so the default template is written.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if body != "" {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return path
}

func writeDocument(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoadConfig_WritesDefaultTemplate(t *testing.T) {
	cfgFilePath := writeConfig(t, "")
	doc := writeDocument(t, "abc")

	_, err := execute(t, cfgFilePath, "replay", doc, "--keys", "C-e")
	require.NoError(t, err)

	data, err := os.ReadFile(cfgFilePath)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfigTemplate(), string(data))
}

func TestLoadConfig_InvalidConfigFails(t *testing.T) {
	cfgFilePath := writeConfig(t, "editor:\n  page_lines: -3\n")
	doc := writeDocument(t, "abc")

	_, err := execute(t, cfgFilePath, "replay", doc, "--keys", "C-e")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestReadDocument(t *testing.T) {
	text, err := readDocument(filepath.Join(t.TempDir(), "missing.txt"))
	require.NoError(t, err)
	require.Equal(t, "", text)

	path := writeDocument(t, "one\ntwo")
	text, err = readDocument(path)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo", text)

	_, err = readDocument(t.TempDir())
	require.Error(t, err, "a directory is not a document")
}

func TestSetVersion(t *testing.T) {
	old := rootCmd.Version
	t.Cleanup(func() { SetVersion(old) })

	SetVersion("1.2.3 (commit: abc, built: today)")
	require.Equal(t, "1.2.3 (commit: abc, built: today)", rootCmd.Version)
}

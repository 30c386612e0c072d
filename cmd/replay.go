package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/log"
	"github.com/zjrosen/emacskeys/internal/textarea"
	"github.com/zjrosen/emacskeys/internal/tracing"
)

var (
	replayKeys     string
	replayScript   string
	replayDiff     bool
	replayKillRing bool
	replayWrite    bool
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Run a key script against a file without a terminal",
	Long: `Load FILE into a buffer, play a key script through the keymap and print
the resulting text.

Scripts are whitespace separated chords in either notation ("C-u 3 C-k",
"Ctrl-K", "M-f") and double-quoted text that is typed as-is. Lines
starting with # are comments.

Examples:
  emacskeys replay notes.txt --keys 'M-f C-k'
  emacskeys replay notes.txt --keys 'C-u 2 C-k C-y C-y' --diff
  emacskeys replay notes.txt --script edits.keys --kill-ring
  emacskeys replay notes.txt --keys 'M-> "done"' --write`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayKeys, "keys", "k", "", "key script to play")
	replayCmd.Flags().StringVarP(&replayScript, "script", "s", "", "read the key script from this file")
	replayCmd.Flags().BoolVar(&replayDiff, "diff", false, "print a line diff instead of the resulting text")
	replayCmd.Flags().BoolVar(&replayKillRing, "kill-ring", false, "print the kill ring after the text")
	replayCmd.Flags().BoolVarP(&replayWrite, "write", "w", false, "write the result back to FILE")
	replayCmd.MarkFlagsMutuallyExclusive("keys", "script")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging(false)
	if err != nil {
		return err
	}
	defer cleanup()

	path := args[0]
	before, err := readDocument(path)
	if err != nil {
		return err
	}
	script, err := loadScript()
	if err != nil {
		return err
	}
	strokes, err := emacs.ParseKeys(script)
	if err != nil {
		return fmt.Errorf("parsing key script: %w", err)
	}

	provider, err := newTracing()
	if err != nil {
		return err
	}
	defer shutdownTracing(provider)

	ctx, span := tracing.StartSession(cmd.Context(), provider.Tracer(), "replay", path)
	km, err := newKeymap(ctx, provider.Tracer())
	if err != nil {
		span.End()
		return err
	}
	after := replay(km, before, strokes)
	span.End()
	log.Info(log.CatCmd, "Replayed key script", "path", path, "keystrokes", len(strokes), "changed", after != before)

	out := cmd.OutOrStdout()
	if replayDiff {
		fmt.Fprint(out, documentDiff(before, after))
	} else {
		fmt.Fprint(out, withTrailingNewline(after))
	}
	if replayKillRing {
		printKillRing(out, km.Killer())
	}
	if replayWrite && after != before {
		if err := os.WriteFile(path, []byte(after), 0o644); err != nil { //nolint:gosec // G306: user document
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func loadScript() (string, error) {
	switch {
	case replayScript != "":
		data, err := os.ReadFile(replayScript)
		if err != nil {
			return "", fmt.Errorf("reading key script: %w", err)
		}
		return string(data), nil
	case replayKeys != "":
		return replayKeys, nil
	default:
		return "", errors.New("one of --keys or --script is required")
	}
}

// replay plays strokes over a fresh buffer holding text and returns the
// final text. No host is attached, so host commands and prompts are no-ops.
func replay(km *emacs.Keymap, text string, strokes []emacs.Keystroke) string {
	buf := textarea.New(text)
	ed := km.Attach(buf)
	defer km.Detach(buf)
	ed.Play(strokes)
	return buf.Text()
}

// documentDiff renders a line diff: " " for kept lines, "-" and "+" for
// removed and added ones.
func documentDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		mark := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			mark = "+"
		case diffmatchpatch.DiffDelete:
			mark = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(mark + withTrailingNewline(line))
		}
	}
	return sb.String()
}

func printKillRing(w io.Writer, killer *emacs.Killer) {
	entries := killer.Entries()
	fmt.Fprintf(w, "--- kill ring (%d) ---\n", len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "%d: %q\n", len(entries)-1-i, entries[i])
	}
}

func withTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

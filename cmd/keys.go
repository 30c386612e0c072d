package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/emacskeys/internal/config"
	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/log"
	"github.com/zjrosen/emacskeys/internal/ui/markdown"
)

const keysMarkdownWidth = 100

var (
	keysMarkdown bool
	keysRaw      bool
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the effective key bindings",
	Long: `List every command with the gestures bound to it, after the overrides from
the config file are applied.

Examples:
  emacskeys keys
  emacskeys keys --markdown          # rendered table
  emacskeys keys --markdown --raw    # markdown source, for docs`,
	Args: cobra.NoArgs,
	RunE: runKeys,
}

var keysBindCmd = &cobra.Command{
	Use:   "bind GESTURE COMMAND",
	Short: "Bind a gesture to a command in the config file",
	Long: `Save a key override to the config file. GESTURE may use either notation
("C-x C-t", "Ctrl-X Ctrl-T"); an empty COMMAND unbinds the gesture.

Examples:
  emacskeys keys bind 'C-x C-t' edit.transpose_chars
  emacskeys keys bind 'M-g g' ''`,
	Args: cobra.ExactArgs(2),
	RunE: runKeysBind,
}

func init() {
	keysCmd.Flags().BoolVarP(&keysMarkdown, "markdown", "m", false, "render the table as markdown")
	keysCmd.Flags().BoolVar(&keysRaw, "raw", false, "with --markdown, print the markdown source unrendered")
	keysCmd.AddCommand(keysBindCmd)
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, _ []string) error {
	km := emacs.NewKeymap(nil)
	if err := km.Override(cfg.KeyOverrides()); err != nil {
		return fmt.Errorf("applying key overrides from %s: %w", cfgPath, err)
	}
	rows := bindingRows(km)
	out := cmd.OutOrStdout()

	if !keysMarkdown {
		printBindings(out, rows)
		return nil
	}
	table := markdown.Table("Key bindings", rows)
	if keysRaw {
		fmt.Fprint(out, table)
		return nil
	}
	r, err := markdown.New(keysMarkdownWidth, cfg.UI.MarkdownStyle)
	if err != nil {
		return err
	}
	rendered, err := r.Render(table)
	if err != nil {
		return fmt.Errorf("rendering key table: %w", err)
	}
	fmt.Fprint(out, rendered)
	return nil
}

func runKeysBind(cmd *cobra.Command, args []string) error {
	gesture := emacs.NormalizeGesture(args[0])
	command := strings.TrimSpace(args[1])
	if gesture == "" {
		return fmt.Errorf("invalid gesture %q", args[0])
	}

	// Check the whole override set against a scratch keymap first so a typo
	// never reaches the file.
	km := emacs.NewKeymap(nil)
	overrides := cfg.KeyOverrides()
	overrides[gesture] = command
	if err := km.Override(overrides); err != nil {
		return err
	}

	keys, err := config.SetKeyOverride(cfgPath, cfg.Keys, gesture, command)
	if err != nil {
		return fmt.Errorf("saving key override: %w", err)
	}
	cfg.Keys = keys
	log.Info(log.CatCmd, "Bound key", "gesture", gesture, "command", command, "path", cfgPath)

	if command == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Unbound %s in %s\n", gesture, cfgPath)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Bound %s to %s in %s\n", gesture, command, cfgPath)
	}
	return nil
}

// bindingRows groups the keymap's gestures by command, ordered by ID.
func bindingRows(km *emacs.Keymap) []markdown.Row {
	reg := km.Registry()
	byID := make(map[string][]string)
	for gesture, id := range km.Bindings() {
		byID[id] = append(byID[id], gesture)
	}
	rows := make([]markdown.Row, 0, len(byID))
	for id, gestures := range byID {
		sort.Strings(gestures)
		rows = append(rows, markdown.Row{Gestures: gestures, Command: id, Description: reg.Describe(id)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Command < rows[j].Command })
	return rows
}

func printBindings(w io.Writer, rows []markdown.Row) {
	width := 0
	for _, row := range rows {
		width = max(width, len(row.Command))
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-*s  %s\n", width, row.Command, strings.Join(row.Gestures, ", "))
	}
}

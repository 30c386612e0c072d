package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/emacskeys/internal/config"
	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/flags"
	"github.com/zjrosen/emacskeys/internal/log"
	"github.com/zjrosen/emacskeys/internal/pubsub"
	"github.com/zjrosen/emacskeys/internal/tracing"
	"github.com/zjrosen/emacskeys/internal/ui/editorview"
	"github.com/zjrosen/emacskeys/internal/watcher"
)

var watchConfig bool

var editCmd = &cobra.Command{
	Use:   "edit [FILE]",
	Short: "Edit a file with Emacs keybindings",
	Long: `Open FILE in the terminal editor. A missing FILE is created on the first
save; without FILE the buffer is a scratch buffer that asks for a name.

  C-x C-s   save          C-x C-w   save as
  C-x C-c   quit          F1        key reference
  F2        kill ring     ctrl+c    quit without saving

Examples:
  emacskeys edit notes.txt
  emacskeys edit --watch notes.txt    # pick up key overrides as you edit the config`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().BoolVarP(&watchConfig, "watch", "w", false,
		"reload key overrides when the config file changes")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging(true)
	if err != nil {
		return err
	}
	defer cleanup()

	var path, text string
	if len(args) == 1 {
		path = args[0]
		if text, err = readDocument(path); err != nil {
			return err
		}
	}

	provider, err := newTracing()
	if err != nil {
		return err
	}
	defer shutdownTracing(provider)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	ctx, span := tracing.StartSession(ctx, provider.Tracer(), "edit", path)
	defer span.End()

	km, err := newKeymap(ctx, provider.Tracer())
	if err != nil {
		return err
	}

	opts := editorview.Options{
		Path:   path,
		Text:   text,
		Keymap: km,
		Config: cfg,
		Flags:  flags.New(cfg.Flags),
		Logs:   log.NewListener(ctx),
	}
	if watchConfig {
		reloads, stop, err := watchConfigFile(ctx)
		if err != nil {
			return err
		}
		defer stop()
		opts.Reloads = reloads
		opts.Reload = reloadKeys(km)
	}

	model := editorview.New(opts)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// watchConfigFile publishes a reload event each time the config file
// settles after a change.
func watchConfigFile(ctx context.Context) (*pubsub.Listener[string], func(), error) {
	broker := pubsub.NewBroker[string]()
	wcfg := watcher.DefaultConfig(cfgPath)
	wcfg.Publisher = broker

	w, err := watcher.New(wcfg)
	if err != nil {
		return nil, nil, err
	}
	if _, err := w.Start(); err != nil {
		_ = w.Stop()
		return nil, nil, err
	}

	stop := func() {
		if err := w.Stop(); err != nil {
			log.ErrorErr(log.CatWatcher, "Stopping config watcher failed", err)
		}
		broker.Close()
	}
	return pubsub.NewListener(ctx, broker), stop, nil
}

// reloadKeys re-reads the config file and swaps the keymap's overrides for
// the ones found there, starting from the default table.
func reloadKeys(km *emacs.Keymap) func() error {
	return func() error {
		fresh, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := km.Reset(fresh.KeyOverrides()); err != nil {
			return fmt.Errorf("applying key overrides: %w", err)
		}
		cfg.Keys = fresh.Keys
		log.Info(log.CatConfig, "Reloaded key overrides", "path", cfgPath, "count", len(fresh.Keys))
		return nil
	}
}

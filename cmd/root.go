package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/emacskeys/internal/config"
	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/log"
	"github.com/zjrosen/emacskeys/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the minibuffer.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	debugLogFile = "emacskeys-debug.log"
	debugEnv     = "EMACSKEYS_DEBUG"
)

var (
	version   = "dev"
	cfgFile   string
	debug     bool
	traceWith string

	// cfg and cfgPath are set by loadConfig before any command runs.
	cfg     config.Config
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "emacskeys [FILE]",
	Short: "Emacs keybindings for terminal text editing",
	Long: `A terminal editor driven by an Emacs-style keymap: kill ring, numeric
prefix arguments, word/sentence/paragraph/expression motion and multi-key
sequences. With no subcommand FILE is opened for editing.`,
	Version:           version,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runEdit,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .emacskeys/config.yaml, then ~/.config/emacskeys/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write a debug log to "+debugLogFile+" (also enabled by "+debugEnv+")")
	rootCmd.PersistentFlags().StringVar(&traceWith, "trace", "",
		"export dispatch spans with this exporter: file, stdout or otlp")
	rootCmd.Flags().BoolVarP(&watchConfig, "watch", "w", false,
		"reload key overrides when the config file changes")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	cfgPath = config.ResolvePath(cfgFile)
	loaded, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// initLogging starts the debug log when --debug or EMACSKEYS_DEBUG asks for
// it. Interactive commands route Bubble Tea's own log into the same file.
func initLogging(interactive bool) (func(), error) {
	if !debug && os.Getenv(debugEnv) == "" {
		return func() {}, nil
	}
	var (
		cleanup func()
		err     error
	)
	if interactive {
		cleanup, err = log.InitWithTeaLog(debugLogFile, "emacskeys")
	} else {
		cleanup, err = log.Init(debugLogFile)
	}
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	log.Info(log.CatConfig, "Loaded config", "path", cfgPath, "overrides", len(cfg.Keys))
	return cleanup, nil
}

// newTracing builds the trace provider from the tracing section, with
// --trace switching it on and picking the exporter.
func newTracing() (*tracing.Provider, error) {
	tc := tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	}
	if traceWith != "" {
		tc.Enabled = true
		tc.Exporter = traceWith
	}
	if tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(tc)
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}
	return provider, nil
}

func shutdownTracing(provider *tracing.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := provider.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
	}
}

// newKeymap builds the shared keymap with the configured overrides applied
// and every command wrapped in logging and tracing middleware.
func newKeymap(ctx context.Context, tracer trace.Tracer) (*emacs.Keymap, error) {
	km := emacs.NewKeymap(emacs.NewKiller(),
		emacs.WithIndentUnit(cfg.Editor.IndentUnit),
		emacs.WithMiddleware(
			emacs.LoggingMiddleware(),
			tracing.NewDispatchMiddleware(ctx, tracer),
		),
	)
	if err := km.Override(cfg.KeyOverrides()); err != nil {
		return nil, fmt.Errorf("applying key overrides from %s: %w", cfgPath, err)
	}
	return km, nil
}

// readDocument returns the contents of path; a file that does not exist yet
// reads as empty.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's document
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Package config provides configuration types and defaults for emacskeys.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjrosen/emacskeys/internal/log"
)

// Config holds all configuration options for emacskeys.
type Config struct {
	Editor  EditorConfig    `mapstructure:"editor"`
	UI      UIConfig        `mapstructure:"ui"`
	Keys    []KeyBinding    `mapstructure:"keys"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// EditorConfig holds the options applied to every attached buffer.
type EditorConfig struct {
	LineWrapping bool `mapstructure:"line_wrapping"` // Soft-wrap long lines in the view
	PageLines    int  `mapstructure:"page_lines"`    // Lines per C-v / M-v; 0 follows the view height
	IndentUnit   int  `mapstructure:"indent_unit"`   // Columns for C-x TAB without a prefix
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// KeyBinding overrides one gesture. An empty Command unbinds the gesture.
//
// Overrides are a list rather than a map because gesture names such as
// "Shift-Alt-." contain characters the config loader treats as key paths.
type KeyBinding struct {
	Gesture string `mapstructure:"gesture" yaml:"gesture"`
	Command string `mapstructure:"command" yaml:"command"`
}

// TracingConfig holds dispatch tracing configuration.
type TracingConfig struct {
	// Enabled controls whether gesture spans are recorded.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/emacskeys/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// KeyOverrides returns the key list as a gesture to command map. Later
// entries win when a gesture repeats.
func (c Config) KeyOverrides() map[string]string {
	out := make(map[string]string, len(c.Keys))
	for _, kb := range c.Keys {
		out[kb.Gesture] = kb.Command
	}
	return out
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/emacskeys/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "emacskeys", "traces", "traces.jsonl")
}

// ValidateEditor checks editor configuration for errors.
func ValidateEditor(ed EditorConfig) error {
	if ed.PageLines < 0 {
		return fmt.Errorf("editor.page_lines must not be negative, got %d", ed.PageLines)
	}
	if ed.IndentUnit < 1 || ed.IndentUnit > 16 {
		return fmt.Errorf("editor.indent_unit must be between 1 and 16, got %d", ed.IndentUnit)
	}
	return nil
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
}

// ValidateKeys checks key overrides for errors. Command IDs are checked
// later, when the overrides are applied to a keymap.
func ValidateKeys(keys []KeyBinding) error {
	for i, kb := range keys {
		if strings.TrimSpace(kb.Gesture) == "" {
			return fmt.Errorf("keys[%d]: gesture is required", i)
		}
		if strings.ContainsAny(kb.Command, " \t") {
			return fmt.Errorf("keys[%d] (%s): command %q must not contain whitespace", i, kb.Gesture, kb.Command)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Path requirements only matter once tracing is on
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate runs every section validator.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateKeys(c.Keys); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			LineWrapping: true,
			PageLines:    0, // Follows the view height
			IndentUnit:   2,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "dark",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# emacskeys configuration

# Editing behaviour
editor:
  line_wrapping: true   # Soft-wrap long lines
  page_lines: 0         # Lines moved by C-v / M-v (0 = view height)
  indent_unit: 2        # Columns added by C-x TAB without a prefix

# UI settings
ui:
  show_status_bar: true  # Show prefix, pending keys and kill ring size
  markdown_style: dark   # "dark" or "light" for 'emacskeys keys --markdown'

# Key overrides, applied on top of the built-in Emacs table.
# An empty command unbinds the gesture. Run 'emacskeys keys' for command IDs.
# keys:
#   - gesture: "C-c k"
#     command: kill.line
#   - gesture: "Ctrl-Z"
#     command: ""

# Gesture tracing
tracing:
  enabled: false
  exporter: file         # "none", "file", "stdout" or "otlp"
  # file_path: ~/.config/emacskeys/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

# Feature flags
# flags:
#   kill-ring-panel: true   # Show the kill ring beside the buffer
#   echo-keys: true         # Echo pending key sequences in the status bar
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/zjrosen/emacskeys/internal/log"
)

// LocalConfigPath is the project-local config location, checked first.
const LocalConfigPath = ".emacskeys/config.yaml"

// UserConfigPath returns ~/.config/emacskeys/config.yaml, or "" when the
// home directory is unknown.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "emacskeys", "config.yaml")
}

// ResolvePath picks the config file to use. An explicit path wins; then the
// project-local file; then the user file. When none exists the user path is
// returned (or the local one without a home directory) so a default can be
// written there.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(LocalConfigPath); err == nil {
		return LocalConfigPath
	}
	if user := UserConfigPath(); user != "" {
		return user
	}
	return LocalConfigPath
}

// setDefaults registers Defaults() with v so missing keys unmarshal to them.
func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("editor.line_wrapping", d.Editor.LineWrapping)
	v.SetDefault("editor.page_lines", d.Editor.PageLines)
	v.SetDefault("editor.indent_unit", d.Editor.IndentUnit)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// Load reads configPath on top of the defaults and validates the result.
// A missing file is not an error; it yields Defaults().
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			log.ErrorErr(log.CatConfig, "Failed to read config", err, "path", configPath)
			return Config{}, fmt.Errorf("reading config %s: %w", configPath, err)
		}
		log.Debug(log.CatConfig, "No config file, using defaults", "path", configPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadOrCreate loads configPath, writing the commented default template
// first when the file does not exist yet.
func LoadOrCreate(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if writeErr := WriteDefaultConfig(configPath); writeErr != nil {
			// Continue with defaults when the directory is read-only
			log.Warn(log.CatConfig, "Could not write default config", "path", configPath, "error", writeErr)
		}
	}
	return Load(configPath)
}

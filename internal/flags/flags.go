// Package flags holds the optional terminal view features toggled from the
// config file's flags section.
package flags

import (
	"maps"
	"sort"

	"github.com/zjrosen/emacskeys/internal/log"
)

const (
	// FlagKillRingPanel shows the kill ring entries beside the buffer.
	FlagKillRingPanel = "kill-ring-panel"

	// FlagEchoKeys echoes each dispatched gesture and its command in the
	// status line.
	FlagEchoKeys = "echo-keys"
)

// known maps every recognised flag to its default.
var known = map[string]bool{
	FlagKillRingPanel: false,
	FlagEchoKeys:      true,
}

// Registry holds feature flag state loaded from configuration.
// Flags are read-only after initialization.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. Known flags absent from the map
// take their defaults.
func New(flags map[string]bool) *Registry {
	merged := make(map[string]bool, len(known)+len(flags))
	maps.Copy(merged, known)
	for name, on := range flags {
		if _, ok := known[name]; !ok {
			log.Warn(log.CatConfig, "Unknown feature flag in config", "flag", name)
		}
		merged[name] = on
	}
	r := &Registry{flags: merged}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(merged), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled. Unknown flags and a
// nil registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.flags[name]
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return make(map[string]bool)
	}
	result := make(map[string]bool, len(r.flags))
	maps.Copy(result, r.flags)
	return result
}

// Known returns the recognised flag names, sorted.
func Known() []string {
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

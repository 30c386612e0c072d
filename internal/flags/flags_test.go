package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{
			name:     "explicit true wins over default",
			registry: New(map[string]bool{FlagKillRingPanel: true}),
			flag:     FlagKillRingPanel,
			expected: true,
		},
		{
			name:     "explicit false wins over default",
			registry: New(map[string]bool{FlagEchoKeys: false}),
			flag:     FlagEchoKeys,
			expected: false,
		},
		{
			name:     "missing known flag takes default",
			registry: New(nil),
			flag:     FlagEchoKeys,
			expected: true,
		},
		{
			name:     "missing known flag defaulting off",
			registry: New(map[string]bool{}),
			flag:     FlagKillRingPanel,
			expected: false,
		},
		{
			name:     "unknown flag returns false",
			registry: New(map[string]bool{FlagEchoKeys: true}),
			flag:     "unknown-flag",
			expected: false,
		},
		{
			name:     "unknown flag from config is kept",
			registry: New(map[string]bool{"experimental": true}),
			flag:     "experimental",
			expected: true,
		},
		{
			name:     "nil registry returns false",
			registry: nil,
			flag:     FlagEchoKeys,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_All(t *testing.T) {
	r := New(map[string]bool{FlagKillRingPanel: true})
	all := r.All()
	require.Equal(t, map[string]bool{FlagKillRingPanel: true, FlagEchoKeys: true}, all)

	// Mutating the copy leaves the registry alone
	all[FlagKillRingPanel] = false
	require.True(t, r.Enabled(FlagKillRingPanel))
}

func TestRegistry_All_NilRegistry(t *testing.T) {
	var r *Registry
	require.NotNil(t, r.All())
	require.Empty(t, r.All())
}

func TestKnown(t *testing.T) {
	require.Equal(t, []string{FlagEchoKeys, FlagKillRingPanel}, Known())
}

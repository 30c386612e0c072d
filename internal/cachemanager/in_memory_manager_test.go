package cachemanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

type exampleStruct struct {
	ID   int
	Name string
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[exampleStruct]("tokens", DefaultExpiration, DefaultCleanupInterval)
	example := exampleStruct{Name: "apple"}
	cache.Set("ex:1", example, DefaultExpiration)

	got, ok := cache.Get("ex:1")
	require.True(t, ok)
	require.Equal(t, example, got)
}

func TestInMemoryCacheManager_GetMissingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string]("tokens", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get("missing")
	require.False(t, ok)
	require.Empty(t, got)

	hits, misses := cache.Stats()
	require.Zero(t, hits)
	require.Equal(t, int64(1), misses)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := NewInMemoryCacheManager[string]("tokens", DefaultExpiration, DefaultCleanupInterval)
	cache.Set("short", "lived", time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get("short")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	cache := NewInMemoryCacheManager[int]("tokens", DefaultExpiration, DefaultCleanupInterval)
	cache.Set("a", 1, DefaultExpiration)
	cache.Set("b", 2, DefaultExpiration)
	cache.Set("c", 3, DefaultExpiration)
	require.Equal(t, 3, cache.Len())

	cache.Delete("a", "b")
	require.Equal(t, 1, cache.Len())

	cache.Flush()
	require.Zero(t, cache.Len())
}

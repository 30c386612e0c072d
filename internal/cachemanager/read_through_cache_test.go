package cachemanager

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCacheManager[V any] struct {
	mock.Mock
}

func (m *mockCacheManager[V]) Get(key string) (V, bool) {
	args := m.Called(key)
	v, _ := args.Get(0).(V)
	return v, args.Bool(1)
}

func (m *mockCacheManager[V]) Set(key string, value V, ttl time.Duration) {
	m.Called(key, value, ttl)
}

func (m *mockCacheManager[V]) Delete(keys ...string) { m.Called(keys) }
func (m *mockCacheManager[V]) Flush()                { m.Called() }
func (m *mockCacheManager[V]) Len() int              { return m.Called().Int(0) }

func lengthOf(input string) (int, error) {
	return len(input), nil
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	manager := &mockCacheManager[int]{}
	rt := NewReadThroughCache[int, string](manager, lengthOf, true)

	got, err := rt.Get("k", "hello", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 5, got)
	manager.AssertNotCalled(t, "Get", mock.Anything)
}

func TestReadThroughCache_Get_Hit(t *testing.T) {
	manager := &mockCacheManager[int]{}
	manager.On("Get", "k").Return(42, true)
	rt := NewReadThroughCache[int, string](manager, lengthOf, false)

	got, err := rt.Get("k", "hello", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 42, got)
	manager.AssertExpectations(t)
	manager.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_Get_MissStores(t *testing.T) {
	manager := &mockCacheManager[int]{}
	manager.On("Get", "k").Return(0, false)
	manager.On("Set", "k", 5, time.Minute).Return()
	rt := NewReadThroughCache[int, string](manager, lengthOf, false)

	got, err := rt.Get("k", "hello", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 5, got)
	manager.AssertExpectations(t)
}

func TestReadThroughCache_Get_LoaderError(t *testing.T) {
	manager := &mockCacheManager[int]{}
	manager.On("Get", "k").Return(0, false)
	rt := NewReadThroughCache[int, string](manager, func(string) (int, error) {
		return 0, errors.New("boom")
	}, false)

	_, err := rt.Get("k", "hello", time.Minute)
	require.EqualError(t, err, "boom")
	manager.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_WithInMemoryManager(t *testing.T) {
	calls := 0
	rt := NewReadThroughCache[int, string](
		NewInMemoryCacheManager[int]("tokens", DefaultExpiration, DefaultCleanupInterval),
		func(s string) (int, error) {
			calls++
			return len(s), nil
		},
		false,
	)

	for i := 0; i < 3; i++ {
		got, err := rt.Get("abc", "abc", DefaultExpiration)
		require.NoError(t, err)
		require.Equal(t, 3, got)
	}
	require.Equal(t, 1, calls)
}

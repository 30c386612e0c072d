package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/emacskeys/internal/pubsub"
	"github.com/zjrosen/emacskeys/internal/watcher"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  indent_unit: 2\n"), 0o600))
	return path
}

func startWatcher(t *testing.T, cfg watcher.Config) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(cfg)
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	path := writeConfig(t, t.TempDir())
	onChange := startWatcher(t, watcher.Config{Path: path, DebounceDur: 50 * time.Millisecond})

	// Rapid writes should coalesce into single notification
	for i := 0; i < 10; i++ {
		err := os.WriteFile(path, []byte(fmt.Sprintf("editor:\n  indent_unit: %d\n", i+1)), 0o600)
		require.NoError(t, err, "failed to write file")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir)
	otherPath := filepath.Join(dir, "other.txt")
	// Pre-create the other file so writes to it are just Write events
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0o600))

	onChange := startWatcher(t, watcher.Config{Path: path, DebounceDur: 50 * time.Millisecond})

	require.NoError(t, os.WriteFile(otherPath, []byte("other content"), 0o600))

	select {
	case <-onChange:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_SeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir)
	onChange := startWatcher(t, watcher.Config{Path: path, DebounceDur: 50 * time.Millisecond})

	tmp := filepath.Join(dir, ".config.yaml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("editor:\n  indent_unit: 4\n"), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for rename over the watched file")
	}
}

func TestWatcher_PublishesReloadEvent(t *testing.T) {
	path := writeConfig(t, t.TempDir())
	broker := pubsub.NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := broker.Subscribe(ctx)

	startWatcher(t, watcher.Config{Path: path, DebounceDur: 20 * time.Millisecond, Publisher: broker})
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  show_status_bar: false\n"), 0o600))

	select {
	case ev := <-events:
		assert.Equal(t, pubsub.ReloadEvent, ev.Type)
		assert.Equal(t, path, ev.Payload)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected reload event")
	}
}

func TestWatcher_Stop(t *testing.T) {
	path := writeConfig(t, t.TempDir())

	w, err := watcher.New(watcher.Config{Path: path, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err, "failed to create watcher")

	_, err = w.Start()
	require.NoError(t, err, "failed to start watcher")

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop(), "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "config.yaml")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
	require.Contains(t, err.Error(), "watching directory")
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/home/me/.config/emacskeys/config.yaml")

	assert.Equal(t, "/home/me/.config/emacskeys/config.yaml", cfg.Path)
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceDur)
	assert.Nil(t, cfg.Publisher)
}

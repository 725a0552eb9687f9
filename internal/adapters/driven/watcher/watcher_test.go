package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redliner/internal/core/ports/driven"
)

const testSettle = 50 * time.Millisecond

func waitEvent(t *testing.T, events <-chan driven.FileEvent) driven.FileEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for file event")
		return driven.FileEvent{}
	}
}

func TestNew_DefaultSettle(t *testing.T) {
	assert.Equal(t, DefaultSettleDelay, New(0).settle)
	assert.Equal(t, time.Second, New(time.Second).settle)
}

func TestWatcher_ReportsModification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.pdf")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := New(testSettle).Watch(ctx, []string{path})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("v3"), 0o600))

	ev := waitEvent(t, events)
	assert.Equal(t, driven.FileEvent{Path: path, Kind: driven.FileModified}, ev)
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.pdf")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := New(testSettle).Watch(ctx, []string{path})
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	ev := waitEvent(t, events)
	assert.Equal(t, driven.FileRemoved, ev.Kind)
	assert.Equal(t, path, ev.Path)
}

func TestWatcher_IgnoresUntrackedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.pdf")
	other := filepath.Join(dir, "other.pdf")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := New(testSettle).Watch(ctx, []string{path})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))

	ev := waitEvent(t, events)
	assert.Equal(t, path, ev.Path)
}

func TestWatcher_ClosesChannelsOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.pdf")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	events, errs, err := New(testSettle).Watch(ctx, []string{path})
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
	select {
	case _, ok := <-errs:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("errors channel not closed")
	}
}

func TestWatcher_MissingDirectoryIsNotFatal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, _, err := New(testSettle).Watch(ctx, []string{filepath.Join(t.TempDir(), "gone", "a.pdf")})
	assert.NoError(t, err)
}

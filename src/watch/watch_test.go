package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"confsync/src/errdefs"
	"confsync/src/watch"
)

func TestWatcherRequiresFiles(t *testing.T) {
	_, err := watch.New(nil, watch.Options{})
	require.ErrorIs(t, err, errdefs.ErrNotFound)
}

func TestBurstOfWritesYieldsOneBatch(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "app.conf")
	require.NoError(t, os.WriteFile(tracked, []byte("v0"), 0o644))

	w, err := watch.New(map[string]string{"app": tracked}, watch.Options{Debounce: 150 * time.Millisecond})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(aliases []string) { batches <- aliases })
	}()

	// A few rapid writes, then silence long enough for the window to close.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(tracked, []byte("v1"), 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case batch := <-batches:
		require.Equal(t, []string{"app"}, batch)
	case <-time.After(5 * time.Second):
		t.Fatal("no batch before timeout")
	}

	cancel()
	require.NoError(t, <-done)

	select {
	case extra := <-batches:
		t.Fatalf("unexpected second batch %v", extra)
	default:
	}
}

func TestUntrackedNeighboursAreIgnored(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "app.conf")
	noise := filepath.Join(dir, "noise.txt")
	require.NoError(t, os.WriteFile(tracked, []byte("v0"), 0o644))

	w, err := watch.New(map[string]string{"app": tracked}, watch.Options{Debounce: 100 * time.Millisecond})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(aliases []string) { batches <- aliases })
	}()

	require.NoError(t, os.WriteFile(noise, []byte("ignored"), 0o644))

	select {
	case batch := <-batches:
		t.Fatalf("unexpected batch %v for untracked file", batch)
	case <-time.After(500 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestRenameOverTrackedFileIsDetected(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "app.conf")
	staging := filepath.Join(dir, ".app.conf.swp")
	require.NoError(t, os.WriteFile(tracked, []byte("v0"), 0o644))

	w, err := watch.New(map[string]string{"app": tracked}, watch.Options{Debounce: 100 * time.Millisecond})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	go func() { _ = w.Run(ctx, func(aliases []string) { batches <- aliases }) }()

	// Editor-style save: write a staging file, rename it over the original.
	require.NoError(t, os.WriteFile(staging, []byte("v1"), 0o644))
	require.NoError(t, os.Rename(staging, tracked))

	select {
	case batch := <-batches:
		require.Equal(t, []string{"app"}, batch)
	case <-time.After(5 * time.Second):
		t.Fatal("rename-over save not detected")
	}
}

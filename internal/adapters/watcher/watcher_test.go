package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/watcher"
)

func waitForDrain(t *testing.T, w *watcher.Watcher, want string) []string {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		if got := w.Drain(); len(got) > 0 {
			return got
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for change event for %s", want)
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestWatcher_ReportsSourceChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.c"), []byte("int main(){}"), 0o644))

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, root))

	require.NoError(t, os.WriteFile(filepath.Join(root, "main.c"), []byte("int main(){return 1;}"), 0o644))

	got := waitForDrain(t, w, "main.c")
	require.Contains(t, got, "main.c")

	// Drained once, the set resets.
	require.Empty(t, w.Drain())
}

func TestWatcher_IgnoresUnrecognizedFiles(t *testing.T) {
	root := t.TempDir()

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, root))

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	time.Sleep(100 * time.Millisecond)
	require.Empty(t, w.Drain())
}

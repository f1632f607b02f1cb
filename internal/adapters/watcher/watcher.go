// Package watcher implements file system watching using fsnotify.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

// shouldSkipDirectories are directories that should not be watched.
var shouldSkipDirectories = map[string]bool{
	".git":               true,
	".jj":                true,
	domain.TargetDirName: true,
}

// Watcher accumulates filesystem change events between Drain calls. The
// daemon loop drains it before each prompt to report how much changed since
// the last build; staleness detection itself still goes through
// reconciliation.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string

	mu      sync.Mutex
	changed map[string]struct{}
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsw,
		changed:   make(map[string]struct{}),
	}, nil
}

// Start begins watching the given root directory recursively.
func (w *Watcher) Start(ctx context.Context, root string) error {
	w.root = root

	for dir := range w.watchableDirs(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	go w.collect(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Drain returns the project-relative paths of recognized source files that
// changed since the previous Drain call, sorted, and resets the set.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.changed) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.changed))
	for p := range w.changed {
		out = append(out, p)
	}
	w.changed = make(map[string]struct{})
	sort.Strings(out)
	return out
}

func (w *Watcher) watchableDirs(root string) map[string]struct{} {
	dirs := make(map[string]struct{})
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are simply not watched.
			return nil //nolint:nilerr // intentional
		}
		if d.IsDir() {
			if shouldSkipDirectories[d.Name()] {
				return fs.SkipDir
			}
			dirs[path] = struct{}{}
		}
		return nil
	})
	return dirs
}

func (w *Watcher) collect(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.record(event)
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not actionable for a hint feed.
		}
	}
}

func (w *Watcher) record(event fsnotify.Event) {
	// New directories need to be added to the watch set as they appear.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !shouldSkipDirectories[filepath.Base(event.Name)] {
				_ = w.fsWatcher.Add(event.Name)
			}
			return
		}
	}

	if _, ok := domain.KindForPath(event.Name); !ok {
		return
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	w.changed[filepath.ToSlash(rel)] = struct{}{}
	w.mu.Unlock()
}

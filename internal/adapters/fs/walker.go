// Package fs provides file system adapters for walking, enumerating and
// fingerprinting project files.
package fs

import (
	iofs "io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// alwaysSkipDirectories are directories never worth descending into.
var alwaysSkipDirectories = map[string]bool{
	".git":               true,
	".jj":                true,
	domain.TargetDirName: true,
}

// WalkFiles yields every file under root together with its DirEntry,
// skipping .git, the target output directory and the configured ignore
// directories.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, iofs.DirEntry] {
	return func(yield func(string, iofs.DirEntry) bool) {
		_ = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped, not fatal.
				return nil //nolint:nilerr // intentional, walk past problematic entries
			}

			if d.IsDir() {
				if w.shouldSkip(d.Name(), ignores) {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(path, d) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) shouldSkip(name string, ignores []string) bool {
	if alwaysSkipDirectories[name] {
		return true
	}
	for _, ignore := range ignores {
		matched, _ := filepath.Match(ignore, name)
		if matched {
			return true
		}
	}
	return false
}

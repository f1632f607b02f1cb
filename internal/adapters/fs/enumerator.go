package fs

import (
	"path/filepath"
	"sort"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceEnumerator = (*Enumerator)(nil)

// Enumerator lists project C/C++ files by extension class. Paths are
// canonicalized to slash-separated, root-relative form so they can serve as
// cache keys that survive workspace relocation.
type Enumerator struct {
	walker  *Walker
	ignores []string
}

// NewEnumerator creates an Enumerator walking with the given ignore
// directory patterns.
func NewEnumerator(walker *Walker, ignores []string) *Enumerator {
	return &Enumerator{walker: walker, ignores: ignores}
}

// Enumerate returns every recognized source and header file under root,
// sorted by canonical path.
func (e *Enumerator) Enumerate(root string) ([]ports.SourceEntry, error) {
	var entries []ports.SourceEntry

	for path, d := range e.walker.WalkFiles(root, e.ignores) {
		kind, ok := domain.KindForPath(path)
		if !ok {
			continue
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve relative path"), "path", path)
		}

		info, err := d.Info()
		if err != nil {
			// The file vanished mid-walk; the next reconciliation sees
			// the deletion.
			continue
		}

		entries = append(entries, ports.SourceEntry{
			Path:    filepath.ToSlash(rel),
			Kind:    kind,
			ModTime: info.ModTime().UnixNano(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

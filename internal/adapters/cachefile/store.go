// Package cachefile persists the build cache as a JSON dotfile in the
// project root.
package cachefile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore using a flat JSON file per project root.
type Store struct{}

// NewStore creates a new cache store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the cache file for a project root. A missing file yields an
// empty cache. An unreadable or corrupt file is recovered by discarding it
// (the next reconciliation rescans everything), reported via recovered.
func (s *Store) Load(root string) (*domain.BuildCache, bool, error) {
	path := domain.CachePath(root)

	data, err := os.ReadFile(path) //nolint:gosec // Path derives from the project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewBuildCache(root), false, nil
		}
		return domain.NewBuildCache(root), true, nil
	}

	var cache domain.BuildCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return domain.NewBuildCache(root), true, nil
	}

	if cache.Files == nil {
		cache.Files = make(map[string]*domain.TrackedFile)
	}
	// The map key is the identity; restore it on each entry after decode.
	for path, t := range cache.Files {
		if t == nil {
			delete(cache.Files, path)
			continue
		}
		t.Path = path
	}
	cache.Root = root

	return &cache, false, nil
}

// Save persists the cache for a project root.
func (s *Store) Save(root string, cache *domain.BuildCache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache")
	}

	if err := os.WriteFile(domain.CachePath(root), data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheSave.Error())
	}
	return nil
}

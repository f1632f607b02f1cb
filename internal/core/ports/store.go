package ports

import "go.trai.ch/forge/internal/core/domain"

// CacheStore persists the build cache across daemon restarts.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Load reads the cache for a project root. A missing, unreadable or
	// corrupt cache file is never an error: implementations return an
	// empty cache and report recovery through the second return value.
	Load(root string) (cache *domain.BuildCache, recovered bool, err error)

	// Save persists the cache for a project root.
	Save(root string, cache *domain.BuildCache) error
}

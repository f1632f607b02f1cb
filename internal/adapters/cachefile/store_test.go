package cachefile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/cachefile"
	"go.trai.ch/forge/internal/core/domain"
)

func sampleCache(root string) *domain.BuildCache {
	cache := domain.NewBuildCache(root)
	cache.LastBuild = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.ConfigFingerprint = "0011223344556677"
	cache.Track(&domain.TrackedFile{
		Path:         "src/main.c",
		Kind:         domain.KindUnit,
		Fingerprint:  "abc123",
		LastModified: 1717243200000000000,
		DependsOn:    []string{"include/app.h"},
	})
	cache.Track(&domain.TrackedFile{
		Path:         "include/app.h",
		Kind:         domain.KindHeader,
		Fingerprint:  "def456",
		LastModified: 1717243100000000000,
	})
	return cache
}

func TestStore_RoundTrip(t *testing.T) {
	root := t.TempDir()
	store := cachefile.NewStore()

	require.NoError(t, store.Save(root, sampleCache(root)))

	loaded, recovered, err := store.Load(root)
	require.NoError(t, err)
	require.False(t, recovered)

	require.Equal(t, root, loaded.Root)
	require.Equal(t, "0011223344556677", loaded.ConfigFingerprint)
	require.Len(t, loaded.Files, 2)

	unit := loaded.Lookup("src/main.c")
	require.NotNil(t, unit)
	require.Equal(t, "src/main.c", unit.Path, "identity key restored after decode")
	require.Equal(t, domain.KindUnit, unit.Kind)
	require.Equal(t, "abc123", unit.Fingerprint)
	require.Equal(t, []string{"include/app.h"}, unit.DependsOn)

	// The derived graph must match the pre-persistence one.
	g := loaded.Graph()
	require.Equal(t, []string{"src/main.c"}, g.TransitiveUnits([]string{"include/app.h"}))
}

func TestStore_MissingFileIsEmptyCache(t *testing.T) {
	store := cachefile.NewStore()
	cache, recovered, err := store.Load(t.TempDir())
	require.NoError(t, err)
	require.False(t, recovered)
	require.Empty(t, cache.Files)
}

func TestStore_CorruptFileRecovered(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(domain.CachePath(root), []byte("{truncated"), 0o644))

	store := cachefile.NewStore()
	cache, recovered, err := store.Load(root)
	require.NoError(t, err)
	require.True(t, recovered)
	require.Empty(t, cache.Files)
}

func TestStore_GoldenFormat(t *testing.T) {
	root := t.TempDir()
	store := cachefile.NewStore()
	cache := sampleCache(root)
	cache.Root = "/proj/demo" // stable root for the golden file
	require.NoError(t, store.Save(root, cache))

	data, err := os.ReadFile(filepath.Join(root, domain.CacheFileName))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "cache_file", data)
}

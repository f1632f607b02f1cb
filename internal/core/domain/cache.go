package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// BuildCache is the persisted aggregate: every tracked file keyed by its
// canonical path, plus project metadata. It is owned exclusively by the
// cache manager; the in-memory Graph is derived from it at load time and
// re-serialized into it at save time.
type BuildCache struct {
	// Root is the project root the cache was built for.
	Root string `json:"root"`
	// LastBuild is the timestamp of the last successful build.
	LastBuild time.Time `json:"lastBuild,omitzero"`
	// ConfigFingerprint identifies the compiler/flags/profile combination
	// the cached fingerprints were produced with. A mismatch invalidates
	// every entry.
	ConfigFingerprint string `json:"configFingerprint,omitempty"`
	// Files maps canonical project-relative paths to their snapshots.
	Files map[string]*TrackedFile `json:"files"`
}

// NewBuildCache creates an empty cache for the given project root.
func NewBuildCache(root string) *BuildCache {
	return &BuildCache{
		Root:  root,
		Files: make(map[string]*TrackedFile),
	}
}

// Lookup returns the tracked file for a path, or nil.
func (c *BuildCache) Lookup(path string) *TrackedFile {
	return c.Files[path]
}

// Track inserts or replaces a tracked file.
func (c *BuildCache) Track(t *TrackedFile) {
	c.Files[t.Path] = t
}

// Forget removes a path from the cache.
func (c *BuildCache) Forget(path string) {
	delete(c.Files, path)
}

// Graph derives the in-memory dependency graph from the cached edges.
func (c *BuildCache) Graph() *Graph {
	g := NewGraph()
	for path, t := range c.Files {
		g.AddNode(path, t.Kind)
	}
	for path, t := range c.Files {
		g.SetEdges(path, t.DependsOn)
	}
	return g
}

// ConfigFingerprintFor computes the fingerprint of a compiler configuration.
// Content fingerprints are only comparable between builds that used the same
// compilers, flags and profile; anything else must invalidate the cache.
// xxhash is sufficient here, this is an identity check, not a correctness
// mechanism for skipping work.
func ConfigFingerprintFor(cfg *Config, profile Profile) string {
	d := xxhash.New()
	_, _ = d.WriteString(cfg.CC)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(cfg.CXX)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strings.Join(cfg.Flags, "\x00"))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(string(profile))
	return fmt.Sprintf("%016x", d.Sum64())
}

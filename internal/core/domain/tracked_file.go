// Package domain contains the core domain models for the incremental build
// engine: tracked files, the dependency graph, the persisted build cache and
// the per-build result types.
package domain

import (
	"path/filepath"
	"strings"
)

// FileKind distinguishes translation units from headers.
type FileKind string

const (
	// KindUnit marks a translation unit, compiled directly into an object file.
	KindUnit FileKind = "unit"
	// KindHeader marks a header, which only participates in dependency edges.
	KindHeader FileKind = "header"
)

// unitExtensions are the extensions recognized as translation units.
var unitExtensions = map[string]bool{
	".c":   true,
	".cpp": true,
	".cc":  true,
	".cxx": true,
}

// headerExtensions are the extensions recognized as headers.
var headerExtensions = map[string]bool{
	".h":   true,
	".hpp": true,
	".hh":  true,
	".hxx": true,
}

// KindForPath classifies a path by extension.
// It returns the kind and false if the extension is not a recognized C/C++
// source or header extension.
func KindForPath(path string) (FileKind, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case unitExtensions[ext]:
		return KindUnit, true
	case headerExtensions[ext]:
		return KindHeader, true
	default:
		return "", false
	}
}

// IsCxx reports whether a translation unit requires the C++ compiler.
// Plain .c files compile with the C compiler, everything else with C++.
func IsCxx(path string) bool {
	return strings.ToLower(filepath.Ext(path)) != ".c"
}

// TrackedFile is one cache entry per project source or header file.
// Paths are canonical: slash-separated and relative to the project root.
type TrackedFile struct {
	// Path is the canonical project-relative path, the identity key.
	Path string `json:"-"`
	// Kind is either KindUnit or KindHeader.
	Kind FileKind `json:"kind"`
	// Fingerprint is the content hash recorded at the last successful
	// compile of this file (for headers, the last fully successful build
	// that covered it). It is the ground truth for dirtiness.
	Fingerprint string `json:"fingerprint"`
	// LastModified is the mtime observed at the last scan, in UnixNano.
	// It is a cheap pre-check only; a differing mtime forces a rehash.
	LastModified int64 `json:"lastModified"`
	// DependsOn lists the project-local headers this file directly
	// includes. System headers never appear here.
	DependsOn []string `json:"dependsOn,omitempty"`
}

// Clone returns a deep copy of the tracked file.
func (t *TrackedFile) Clone() *TrackedFile {
	c := *t
	if t.DependsOn != nil {
		c.DependsOn = make([]string, len(t.DependsOn))
		copy(c.DependsOn, t.DependsOn)
	}
	return &c
}

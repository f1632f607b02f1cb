package ports

import "go.trai.ch/forge/internal/core/domain"

// SourceEntry is one enumerated project file.
type SourceEntry struct {
	// Path is the canonical project-relative path.
	Path string
	// Kind is the extension-derived file kind.
	Kind domain.FileKind
	// ModTime is the observed mtime in UnixNano.
	ModTime int64
}

// SourceEnumerator lists the project files with recognized C/C++ source and
// header extensions. It is the thin filesystem-traversal collaborator used
// by cache reconciliation.
//
//go:generate mockgen -source=fs.go -destination=mocks/mock_fs.go -package=mocks
type SourceEnumerator interface {
	// Enumerate returns every recognized file under root, sorted by path.
	Enumerate(root string) ([]SourceEntry, error)
}

// Fingerprinter computes content fingerprints. The fingerprint is the sole
// correctness mechanism for skipping recompilation, so implementations must
// use a collision-resistant cryptographic hash.
type Fingerprinter interface {
	// Fingerprint returns the deterministic content hash of the file at
	// the given absolute path.
	Fingerprint(path string) (string, error)
}

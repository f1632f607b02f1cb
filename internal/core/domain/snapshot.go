package domain

// FileState is the content fingerprint and modification time of a file as
// observed at reconciliation time. Dirty files keep their stale cache entry
// until a build succeeds; the observed state is what gets committed then.
type FileState struct {
	Fingerprint  string
	LastModified int64
}

package ports

import "context"

// Watcher reports filesystem changes under the project root while the
// daemon is alive. Events are advisory hints for the command loop;
// reconciliation against fingerprints remains the source of truth for
// staleness.
type Watcher interface {
	// Start begins watching the given root directory recursively.
	Start(ctx context.Context, root string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Drain returns the paths that changed since the previous Drain call.
	Drain() []string
}

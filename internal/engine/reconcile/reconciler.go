package reconcile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Outcome is what one reconciliation pass hands to the scheduler.
type Outcome struct {
	// Dirty is the sorted set of directly dirty canonical paths: new files,
	// content changes, units with a missing object file, and files whose
	// dependency edges lost their target.
	Dirty []string
	// Observed maps every enumerated path to its state as seen during this
	// pass. The scheduler commits these values to the cache after the
	// corresponding work succeeds.
	Observed map[string]domain.FileState
	// ScanFailures lists files whose dependency scan or fingerprint read
	// failed. They stay dirty until a later pass resolves them.
	ScanFailures []domain.ScanFailure
	// Added, Removed and Changed count the tree differences against the
	// cache, for reporting.
	Added, Removed, Changed int
}

// Reconciler diffs the project tree against the build cache. It owns every
// cache mutation outside the scheduler's post-build fingerprint commits:
// tracking additions, forgetting deletions, refreshing include edges and
// invalidating everything when the compiler configuration changes.
type Reconciler struct {
	root    string
	profile domain.Profile

	enum    ports.SourceEnumerator
	fp      ports.Fingerprinter
	scanner *Scanner
	store   ports.CacheStore
	log     ports.Logger
	tracer  ports.Tracer
}

// New creates a reconciler for the project at root.
func New(
	root string,
	profile domain.Profile,
	enum ports.SourceEnumerator,
	fp ports.Fingerprinter,
	scanner *Scanner,
	store ports.CacheStore,
	log ports.Logger,
	tracer ports.Tracer,
) *Reconciler {
	return &Reconciler{
		root:    root,
		profile: profile,
		enum:    enum,
		fp:      fp,
		scanner: scanner,
		store:   store,
		log:     log,
		tracer:  tracer,
	}
}

// Reconcile brings cache and graph up to date with the tree and returns the
// dirty set. The cache is persisted before returning so structural updates
// survive even if the subsequent build crashes; content fingerprints of
// dirty files are deliberately not touched here, they are committed by the
// scheduler after the corresponding compile succeeds.
func (r *Reconciler) Reconcile(ctx context.Context, cache *domain.BuildCache, graph *domain.Graph, cfg *domain.Config) (*Outcome, error) {
	ctx, span := r.tracer.Start(ctx, "reconcile")
	defer span.End()

	entries, err := r.enum.Enumerate(r.root)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, domain.ErrEnumerateFailed.Error())
	}

	out := &Outcome{Observed: make(map[string]domain.FileState, len(entries))}
	dirty := make(map[string]struct{})

	if fp := domain.ConfigFingerprintFor(cfg, r.profile); cache.ConfigFingerprint != fp {
		if cache.ConfigFingerprint != "" {
			r.log.Warn("compiler configuration changed, rebuilding everything")
		}
		// Clearing the fingerprints makes every survivor fail the dirtiness
		// check below regardless of mtime.
		for _, t := range cache.Files {
			t.Fingerprint = ""
		}
		cache.ConfigFingerprint = fp
	}

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		seen[entry.Path] = struct{}{}

		tracked := cache.Lookup(entry.Path)
		if tracked == nil {
			r.admit(ctx, cache, graph, entry, out, dirty)
			continue
		}
		r.refresh(ctx, graph, tracked, entry, out, dirty)
	}

	r.evict(ctx, cache, graph, seen, out, dirty)

	out.Dirty = make([]string, 0, len(dirty))
	for path := range dirty {
		out.Dirty = append(out.Dirty, path)
	}
	sort.Strings(out.Dirty)
	span.SetAttribute("dirty", len(out.Dirty))

	if err := r.store.Save(r.root, cache); err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, domain.ErrCacheSave.Error())
	}

	if len(out.Dirty) > 0 || out.Removed > 0 {
		r.log.Info(fmt.Sprintf("reconciled: %d dirty, %d added, %d removed", len(out.Dirty), out.Added, out.Removed))
	}
	return out, nil
}

// admit tracks a file seen for the first time. New files are always dirty;
// their fingerprint stays empty in the cache until a build succeeds.
func (r *Reconciler) admit(ctx context.Context, cache *domain.BuildCache, graph *domain.Graph, entry ports.SourceEntry, out *Outcome, dirty map[string]struct{}) {
	tracked := &domain.TrackedFile{
		Path:         entry.Path,
		Kind:         entry.Kind,
		LastModified: entry.ModTime,
	}
	cache.Track(tracked)
	graph.AddNode(entry.Path, entry.Kind)
	out.Added++
	dirty[entry.Path] = struct{}{}

	state := domain.FileState{LastModified: entry.ModTime}
	if hash, err := r.fp.Fingerprint(filepath.Join(r.root, filepath.FromSlash(entry.Path))); err != nil {
		out.ScanFailures = append(out.ScanFailures, domain.ScanFailure{Path: entry.Path, Err: err})
	} else {
		state.Fingerprint = hash
	}
	out.Observed[entry.Path] = state

	if entry.Kind == domain.KindUnit {
		r.rescan(ctx, graph, cache.Lookup(entry.Path), out)
	}
}

// refresh runs the dirtiness check for a file that is both on disk and in
// the cache: mtime fast path first, content hash only on a mismatch. Units
// are additionally dirty when their object file is gone.
func (r *Reconciler) refresh(ctx context.Context, graph *domain.Graph, tracked *domain.TrackedFile, entry ports.SourceEntry, out *Outcome, dirty map[string]struct{}) {
	state, isDirty := r.observe(tracked, entry, out)
	out.Observed[entry.Path] = state

	if !isDirty && tracked.Kind == domain.KindUnit {
		if _, err := os.Stat(domain.ObjectPath(r.root, r.profile, entry.Path)); err != nil {
			isDirty = true
		}
	}
	if !isDirty {
		return
	}

	dirty[entry.Path] = struct{}{}
	out.Changed++
	if tracked.Kind == domain.KindUnit {
		r.rescan(ctx, graph, tracked, out)
	}
}

// observe captures the file's current state and decides dirtiness. A clean
// verdict from a content hash also refreshes the cached mtime so the next
// pass takes the fast path again.
func (r *Reconciler) observe(tracked *domain.TrackedFile, entry ports.SourceEntry, out *Outcome) (domain.FileState, bool) {
	state := domain.FileState{LastModified: entry.ModTime}

	// An empty fingerprint means the file never made it through a
	// successful build; mtime equality proves nothing then.
	if tracked.Fingerprint != "" && entry.ModTime == tracked.LastModified {
		state.Fingerprint = tracked.Fingerprint
		return state, false
	}

	hash, err := r.fp.Fingerprint(filepath.Join(r.root, filepath.FromSlash(entry.Path)))
	if err != nil {
		out.ScanFailures = append(out.ScanFailures, domain.ScanFailure{Path: entry.Path, Err: err})
		return state, true
	}
	state.Fingerprint = hash

	if hash == tracked.Fingerprint {
		tracked.LastModified = entry.ModTime
		return state, false
	}
	return state, true
}

// rescan refreshes a unit's include edges. On failure the previous edges are
// kept, the unit stays dirty, and the error is reported; the compile step
// will surface the underlying diagnostics.
func (r *Reconciler) rescan(ctx context.Context, graph *domain.Graph, tracked *domain.TrackedFile, out *Outcome) {
	deps, err := r.scanner.Scan(ctx, tracked.Path)
	if err != nil {
		out.ScanFailures = append(out.ScanFailures, domain.ScanFailure{Path: tracked.Path, Err: err})
		return
	}
	tracked.DependsOn = deps
	graph.SetEdges(tracked.Path, deps)
}

// evict forgets cached files that vanished from the tree. Their dependents
// become dirty: the edge target is gone, so their include sets have to be
// re-derived and their compiles re-attempted.
func (r *Reconciler) evict(ctx context.Context, cache *domain.BuildCache, graph *domain.Graph, seen map[string]struct{}, out *Outcome, dirty map[string]struct{}) {
	var gone []string
	for path := range cache.Files {
		if _, ok := seen[path]; !ok {
			gone = append(gone, path)
		}
	}
	sort.Strings(gone)

	for _, path := range gone {
		orphans := graph.Dependents(path)
		graph.RemoveNode(path)
		cache.Forget(path)
		delete(dirty, path)
		out.Removed++

		for _, orphan := range orphans {
			if _, onDisk := seen[orphan]; !onDisk {
				continue
			}
			if _, already := dirty[orphan]; already {
				continue
			}
			dirty[orphan] = struct{}{}
			if tracked := cache.Lookup(orphan); tracked != nil && tracked.Kind == domain.KindUnit {
				r.rescan(ctx, graph, tracked, out)
			}
		}
	}
}

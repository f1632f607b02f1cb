// Package scheduler turns a dirty set into compiler work: it expands the
// transitive closure over the dependency graph, compiles the affected
// translation units on a bounded worker pool, commits fingerprints for the
// work that succeeded and finishes with the link barrier.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Request is one build cycle's input, produced by reconciliation. The
// scheduler treats Dirty and Observed as immutable; Cache is mutated through
// fingerprint commits only.
type Request struct {
	Cache        *domain.BuildCache
	Graph        *domain.Graph
	Dirty        []string
	Observed     map[string]domain.FileState
	ScanFailures []domain.ScanFailure
}

// Scheduler executes build cycles for one project and profile.
type Scheduler struct {
	root    string
	profile domain.Profile

	tc     ports.Toolchain
	store  ports.CacheStore
	log    ports.Logger
	tracer ports.Tracer

	parallelism int
}

// New creates a scheduler. A parallelism below one falls back to the number
// of CPUs.
func New(
	root string,
	profile domain.Profile,
	tc ports.Toolchain,
	store ports.CacheStore,
	log ports.Logger,
	tracer ports.Tracer,
	parallelism int,
) *Scheduler {
	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}
	return &Scheduler{
		root:        root,
		profile:     profile,
		tc:          tc,
		store:       store,
		log:         log,
		tracer:      tracer,
		parallelism: parallelism,
	}
}

type slot struct {
	output string
	err    error
}

// Build runs one cycle: closure expansion, parallel compiles, fingerprint
// commits, link. Compile failures are isolated into the result, not
// returned; the error return is reserved for infrastructure problems such
// as an unwritable cache file.
func (s *Scheduler) Build(ctx context.Context, req *Request) (*domain.BuildResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "build")
	defer span.End()

	res := &domain.BuildResult{ScanFailures: req.ScanFailures}

	targets := req.Graph.TransitiveUnits(req.Dirty)
	res.Skipped = countUnits(req.Cache) - len(targets)
	span.SetAttribute("targets", len(targets))

	jobs := make([]domain.CompileJob, len(targets))
	for i, unit := range targets {
		jobs[i] = domain.CompileJob{
			Unit:        unit,
			Object:      domain.ObjectPath(s.root, s.profile, unit),
			Fingerprint: req.Observed[unit].Fingerprint,
		}
	}

	slots := s.compileAll(ctx, jobs)

	failed := make(map[string]struct{})
	for i, sl := range slots {
		if sl.err != nil {
			failed[jobs[i].Unit] = struct{}{}
			res.Failed++
			res.Failures = append(res.Failures, domain.CompileFailure{
				Unit:   jobs[i].Unit,
				Output: sl.output,
				Err:    sl.err,
			})
			continue
		}
		res.Compiled++
		s.commit(req, jobs[i].Unit)
	}
	s.commitHeaders(req, failed)

	s.link(ctx, req, res, span)

	// Commits are persisted even after a partial failure, so units that
	// did compile are not redone on the next cycle.
	if err := s.store.Save(s.root, req.Cache); err != nil {
		span.RecordError(err)
		return res, zerr.Wrap(err, domain.ErrCacheSave.Error())
	}

	res.Duration = time.Since(start)
	s.log.Info(fmt.Sprintf("build finished: %d compiled, %d up to date, %d failed", res.Compiled, res.Skipped, res.Failed))
	return res, nil
}

// compileAll runs the jobs on a worker pool bounded by the configured
// parallelism. Results land in the slot matching the job index, so no
// locking is needed and the output order is deterministic. A failing unit
// never cancels its siblings.
func (s *Scheduler) compileAll(ctx context.Context, jobs []domain.CompileJob) []slot {
	slots := make([]slot, len(jobs))

	g := new(errgroup.Group)
	g.SetLimit(s.parallelism)
	for i, job := range jobs {
		g.Go(func() error {
			_, jobSpan := s.tracer.Start(ctx, "compile "+job.Unit)
			defer jobSpan.End()

			out, err := s.tc.Compile(ctx, job.Unit, job.Object)
			if err != nil {
				jobSpan.RecordError(err)
			}
			slots[i] = slot{output: out, err: err}
			return nil
		})
	}
	_ = g.Wait() // workers never error, Wait is the join barrier

	return slots
}

// commit stores the observed state of path in the cache. Called only after
// the work proving that state valid has succeeded.
func (s *Scheduler) commit(req *Request, path string) {
	tracked := req.Cache.Lookup(path)
	state, ok := req.Observed[path]
	if tracked == nil || !ok || state.Fingerprint == "" {
		return
	}
	tracked.Fingerprint = state.Fingerprint
	tracked.LastModified = state.LastModified
}

// commitHeaders commits dirty headers whose entire transitive closure
// compiled. A header above a failed unit keeps its stale fingerprint so the
// unit is retried on the next cycle.
func (s *Scheduler) commitHeaders(req *Request, failed map[string]struct{}) {
	for _, path := range req.Dirty {
		tracked := req.Cache.Lookup(path)
		if tracked == nil || tracked.Kind != domain.KindHeader {
			continue
		}

		clean := true
		for _, unit := range req.Graph.TransitiveUnits([]string{path}) {
			if _, ok := failed[unit]; ok {
				clean = false
				break
			}
		}
		if clean {
			s.commit(req, path)
		}
	}
}

// link runs the link barrier. It is skipped entirely when any compile
// failed. With nothing recompiled it still runs when the executable is
// missing, which covers a deleted target directory with a warm cache.
func (s *Scheduler) link(ctx context.Context, req *Request, res *domain.BuildResult, span ports.Span) {
	if res.Failed > 0 {
		return
	}

	objects := objectList(s.root, s.profile, req.Cache)
	if len(objects) == 0 {
		return
	}
	binary := domain.BinaryPath(s.root, s.profile)

	if res.Compiled == 0 {
		if _, err := os.Stat(binary); err == nil {
			res.Binary = binary
			return
		}
	}

	out, err := s.tc.Link(ctx, objects, binary)
	if err != nil {
		span.RecordError(err)
		res.LinkErr = zerr.Wrap(err, domain.ErrLinkFailed.Error())
		res.LinkOutput = out
		return
	}

	res.Linked = true
	res.Binary = binary
	req.Cache.LastBuild = time.Now()
}

func countUnits(cache *domain.BuildCache) int {
	n := 0
	for _, t := range cache.Files {
		if t.Kind == domain.KindUnit {
			n++
		}
	}
	return n
}

// objectList returns the object paths of every tracked unit in path order,
// keeping link command lines stable between runs.
func objectList(root string, profile domain.Profile, cache *domain.BuildCache) []string {
	var units []string
	for path, t := range cache.Files {
		if t.Kind == domain.KindUnit {
			units = append(units, path)
		}
	}
	sort.Strings(units)

	objects := make([]string, len(units))
	for i, unit := range units {
		objects[i] = domain.ObjectPath(root, profile, unit)
	}
	return objects
}

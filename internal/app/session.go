package app

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/reconcile"
	"go.trai.ch/forge/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// Session is one opened project: cache, graph and engines bound to a root
// and profile. The daemon keeps a session alive across builds so the graph
// and cache state persist between commands; one-shot commands open, use and
// close one immediately.
type Session struct {
	root    string
	profile domain.Profile
	cfg     *domain.Config

	cache *domain.BuildCache
	graph *domain.Graph

	rec   *reconcile.Reconciler
	sched *scheduler.Scheduler
	store ports.CacheStore
	log   ports.Logger

	stdout io.Writer
	stderr io.Writer
}

// Build runs one incremental build cycle: reconcile the cache against the
// tree, then compile and link whatever came out dirty.
func (s *Session) Build(ctx context.Context) (*domain.BuildResult, error) {
	out, err := s.rec.Reconcile(ctx, s.cache, s.graph, s.cfg)
	if err != nil {
		return nil, err
	}

	return s.sched.Build(ctx, &scheduler.Request{
		Cache:        s.cache,
		Graph:        s.graph,
		Dirty:        out.Dirty,
		Observed:     out.Observed,
		ScanFailures: out.ScanFailures,
	})
}

// RunBinary executes the project's binary with the session's stdio attached,
// working directory set to the project root. Fails with ErrNoBinary when no
// successful build has produced one yet.
func (s *Session) RunBinary(ctx context.Context) error {
	binary := domain.BinaryPath(s.root, s.profile)
	if _, err := os.Stat(binary); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrNoBinary, "no successful build has produced a binary"), "binary", binary)
	}

	cmd := exec.CommandContext(ctx, binary) //nolint:gosec // path is derived from the project root
	cmd.Dir = s.root
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRunFailed.Error()), "binary", filepath.Base(binary))
	}
	return nil
}

// Close persists the cache.
func (s *Session) Close() error {
	if err := s.store.Save(s.root, s.cache); err != nil {
		return zerr.Wrap(err, domain.ErrCacheSave.Error())
	}
	return nil
}

// Root returns the absolute project root the session is bound to.
func (s *Session) Root() string {
	return s.root
}

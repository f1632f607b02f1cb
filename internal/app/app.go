// Package app implements the application layer for forge: opening project
// sessions and exposing the one-shot and daemon entry points the CLI calls.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/adapters/toolchain"
	"go.trai.ch/forge/internal/adapters/watcher"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/reconcile"
	"go.trai.ch/forge/internal/engine/scheduler"
	"go.trai.ch/forge/internal/repl"
	"go.trai.ch/forge/internal/ui/output"
	"go.trai.ch/zerr"
)

// App wires the process-wide collaborators into per-project sessions.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.CacheStore
	fingerprint  ports.Fingerprinter
	walker       *fs.Walker
	logger       ports.Logger
	tracer       ports.Tracer

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	parallelism int
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.CacheStore,
	fingerprint ports.Fingerprinter,
	walker *fs.Walker,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	output.ApplyProfile()

	return &App{
		configLoader: loader,
		store:        store,
		fingerprint:  fingerprint,
		walker:       walker,
		logger:       log,
		tracer:       tracer,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithStdio redirects the app's standard streams.
// This is primarily used for testing.
func (a *App) WithStdio(in io.Reader, out, errw io.Writer) *App {
	a.stdin = in
	a.stdout = out
	a.stderr = errw
	return a
}

// WithParallelism overrides the compile worker count.
func (a *App) WithParallelism(n int) *App {
	a.parallelism = n
	return a
}

// Open loads the project at root and returns a live session. A corrupt or
// unreadable cache file is recovered by starting from an empty cache.
func (a *App) Open(ctx context.Context, root string, profile domain.Profile) (*Session, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project root")
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, zerr.With(zerr.New("project root is not a directory"), "root", root)
	}

	cfg, err := a.configLoader.Load(root)
	if err != nil {
		return nil, err
	}

	cache, recovered, err := a.store.Load(root)
	if err != nil {
		return nil, err
	}
	if recovered {
		a.logger.Warn(domain.ErrCacheLoad.Error())
	}

	tc := toolchain.NewGCC(root, cfg, profile)
	return &Session{
		root:    root,
		profile: profile,
		cfg:     cfg,
		cache:   cache,
		graph:   cache.Graph(),
		rec: reconcile.New(
			root,
			profile,
			fs.NewEnumerator(a.walker, cfg.Ignore),
			a.fingerprint,
			reconcile.NewScanner(root, tc),
			a.store,
			a.logger,
			a.tracer,
		),
		sched:  scheduler.New(root, profile, tc, a.store, a.logger, a.tracer, a.parallelism),
		store:  a.store,
		log:    a.logger,
		stdout: a.stdout,
		stderr: a.stderr,
	}, nil
}

// Build runs one build cycle for the project at root and renders the
// summary. Returns ErrBuildFailed when any unit or the link failed.
func (a *App) Build(ctx context.Context, root string, profile domain.Profile) error {
	sess, err := a.Open(ctx, root, profile)
	if err != nil {
		return err
	}
	defer sess.Close() //nolint:errcheck // cache was already persisted by the build

	res, err := sess.Build(ctx)
	if err != nil {
		return err
	}

	output.WriteSummary(a.stdout, res)
	if !res.Succeeded() {
		return domain.ErrBuildFailed
	}
	return nil
}

// Run builds the project and, on success, executes the produced binary with
// the caller's stdio attached.
func (a *App) Run(ctx context.Context, root string, profile domain.Profile) error {
	sess, err := a.Open(ctx, root, profile)
	if err != nil {
		return err
	}
	defer sess.Close() //nolint:errcheck // cache was already persisted by the build

	res, err := sess.Build(ctx)
	if err != nil {
		return err
	}
	output.WriteSummary(a.stderr, res)
	if !res.Succeeded() {
		return domain.ErrBuildFailed
	}

	return sess.RunBinary(ctx)
}

// Daemon opens a long-lived session and hands control to the command loop.
// A filesystem watcher runs alongside to hint at pending changes; losing it
// degrades the prompt, never the build.
func (a *App) Daemon(ctx context.Context, root string, profile domain.Profile) error {
	sess, err := a.Open(ctx, root, profile)
	if err != nil {
		return err
	}
	defer sess.Close() //nolint:errcheck // close persists best-effort on the way out

	var w ports.Watcher
	if fw, err := watcher.NewWatcher(); err != nil {
		a.logger.Warn("file watcher unavailable: " + err.Error())
	} else if err := fw.Start(ctx, sess.Root()); err != nil {
		a.logger.Warn("file watcher failed to start: " + err.Error())
	} else {
		w = fw
		defer fw.Stop() //nolint:errcheck // nothing to do about a failed stop on shutdown
	}

	return repl.New(sess, w, a.logger, a.stdin, a.stdout).Run(ctx)
}

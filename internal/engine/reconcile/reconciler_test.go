package reconcile_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/cachefile"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/adapters/logger"
	"go.trai.ch/forge/internal/adapters/telemetry"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/reconcile"
	"go.uber.org/mock/gomock"
)

// harness wires a reconciler against a real temp project tree, with only
// the toolchain mocked: dependency reports come straight from the files'
// #include lines.
type harness struct {
	t       *testing.T
	root    string
	cache   *domain.BuildCache
	graph   *domain.Graph
	rec     *reconcile.Reconciler
	profile domain.Profile
}

func newHarness(t *testing.T, cfg *domain.Config) *harness {
	t.Helper()
	root := t.TempDir()

	ctrl := gomock.NewController(t)
	tc := mocks.NewMockToolchain(ctrl)
	tc.EXPECT().DepReport(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, path string) (string, error) {
			return fakeDepReport(t, root, path)
		},
	).AnyTimes()

	h := &harness{t: t, root: root, profile: domain.ProfileDebug}
	h.cache = domain.NewBuildCache(root)
	h.graph = h.cache.Graph()
	h.rec = reconcile.New(
		root,
		h.profile,
		fs.NewEnumerator(fs.NewWalker(), cfg.Ignore),
		fs.NewFingerprinter(),
		reconcile.NewScanner(root, tc),
		cachefile.NewStore(),
		logger.NewWithWriter(io.Discard),
		telemetry.NewNoop(),
	)
	return h
}

// fakeDepReport emulates a -MM run by listing the file's quoted includes.
func fakeDepReport(t *testing.T, root, path string) (string, error) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil {
		return "", err
	}

	deps := []string{path}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, `#include "`) {
			deps = append(deps, strings.Trim(strings.TrimPrefix(line, "#include "), `"`))
		}
	}
	return fmt.Sprintf("%s.o: %s\n", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), strings.Join(deps, " ")), nil
}

func (h *harness) write(path, content string) {
	h.t.Helper()
	abs := filepath.Join(h.root, filepath.FromSlash(path))
	require.NoError(h.t, os.MkdirAll(filepath.Dir(abs), 0o750))
	require.NoError(h.t, os.WriteFile(abs, []byte(content), 0o644))
}

func (h *harness) touch(path string, at time.Time) {
	h.t.Helper()
	abs := filepath.Join(h.root, filepath.FromSlash(path))
	require.NoError(h.t, os.Chtimes(abs, at, at))
}

func (h *harness) remove(path string) {
	h.t.Helper()
	require.NoError(h.t, os.Remove(filepath.Join(h.root, filepath.FromSlash(path))))
}

func (h *harness) reconcile(cfg *domain.Config) *reconcile.Outcome {
	h.t.Helper()
	out, err := h.rec.Reconcile(context.Background(), h.cache, h.graph, cfg)
	require.NoError(h.t, err)
	return out
}

// settle simulates a fully successful build: observed states are committed
// and object files materialized, so the next pass starts clean.
func (h *harness) settle(out *reconcile.Outcome) {
	h.t.Helper()
	for path, state := range out.Observed {
		tracked := h.cache.Lookup(path)
		require.NotNil(h.t, tracked)
		tracked.Fingerprint = state.Fingerprint
		tracked.LastModified = state.LastModified
		if tracked.Kind == domain.KindUnit {
			obj := domain.ObjectPath(h.root, h.profile, path)
			require.NoError(h.t, os.MkdirAll(filepath.Dir(obj), 0o750))
			require.NoError(h.t, os.WriteFile(obj, []byte("o"), 0o644))
		}
	}
}

func TestReconcile_FreshProjectIsAllDirty(t *testing.T) {
	cfg := domain.DefaultConfig()
	h := newHarness(t, cfg)
	h.write("main.c", "#include \"include/app.h\"\nint main(void) { return 0; }\n")
	h.write("app.c", "#include \"include/app.h\"\n")
	h.write("include/app.h", "#pragma once\n")

	out := h.reconcile(cfg)

	require.Equal(t, []string{"app.c", "include/app.h", "main.c"}, out.Dirty)
	require.Equal(t, 3, out.Added)
	require.Empty(t, out.ScanFailures)
	require.Equal(t, []string{"app.c", "main.c"}, h.graph.Dependents("include/app.h"))
	require.NotEmpty(t, out.Observed["main.c"].Fingerprint)
	require.FileExists(t, domain.CachePath(h.root))
}

func TestReconcile_SettledTreeIsClean(t *testing.T) {
	cfg := domain.DefaultConfig()
	h := newHarness(t, cfg)
	h.write("main.c", "int main(void) { return 0; }\n")
	h.write("include/app.h", "#pragma once\n")
	h.settle(h.reconcile(cfg))

	out := h.reconcile(cfg)

	require.Empty(t, out.Dirty)
	require.Zero(t, out.Added)
	require.Zero(t, out.Removed)
}

func TestReconcile_ContentChangeMarksFileDirty(t *testing.T) {
	cfg := domain.DefaultConfig()
	h := newHarness(t, cfg)
	h.write("main.c", "int main(void) { return 0; }\n")
	h.write("include/app.h", "#pragma once\n")
	h.settle(h.reconcile(cfg))

	h.write("include/app.h", "#pragma once\n#define APP 1\n")
	h.touch("include/app.h", time.Now().Add(time.Second))

	out := h.reconcile(cfg)
	require.Equal(t, []string{"include/app.h"}, out.Dirty)
}

func TestReconcile_TouchWithoutChangeStaysClean(t *testing.T) {
	cfg := domain.DefaultConfig()
	h := newHarness(t, cfg)
	h.write("main.c", "int main(void) { return 0; }\n")
	h.settle(h.reconcile(cfg))

	h.touch("main.c", time.Now().Add(time.Hour))
	out := h.reconcile(cfg)
	require.Empty(t, out.Dirty)

	// The rehash refreshed the cached mtime, so the next pass takes the
	// fast path again with the same clean verdict.
	out = h.reconcile(cfg)
	require.Empty(t, out.Dirty)
}

func TestReconcile_MissingObjectMarksUnitDirty(t *testing.T) {
	cfg := domain.DefaultConfig()
	h := newHarness(t, cfg)
	h.write("main.c", "int main(void) { return 0; }\n")
	h.settle(h.reconcile(cfg))

	require.NoError(t, os.Remove(domain.ObjectPath(h.root, h.profile, "main.c")))

	out := h.reconcile(cfg)
	require.Equal(t, []string{"main.c"}, out.Dirty)
}

func TestReconcile_DeletionDirtiesDependents(t *testing.T) {
	cfg := domain.DefaultConfig()
	h := newHarness(t, cfg)
	h.write("main.c", "#include \"include/app.h\"\nint main(void) { return 0; }\n")
	h.write("include/app.h", "#pragma once\n")
	h.settle(h.reconcile(cfg))

	h.remove("include/app.h")
	h.write("main.c", "#include \"include/app.h\"\nint main(void) { return 0; }\n")

	out := h.reconcile(cfg)
	require.Equal(t, 1, out.Removed)
	require.Contains(t, out.Dirty, "main.c")
	require.Nil(t, h.cache.Lookup("include/app.h"))
}

func TestReconcile_RenameIsDeletePlusAdd(t *testing.T) {
	cfg := domain.DefaultConfig()
	h := newHarness(t, cfg)
	h.write("util.c", "int util(void) { return 1; }\n")
	h.settle(h.reconcile(cfg))

	h.remove("util.c")
	h.write("helper.c", "int util(void) { return 1; }\n")

	out := h.reconcile(cfg)
	require.Equal(t, 1, out.Added)
	require.Equal(t, 1, out.Removed)
	require.Equal(t, []string{"helper.c"}, out.Dirty)
}

func TestReconcile_ConfigChangeInvalidatesEverything(t *testing.T) {
	cfg := domain.DefaultConfig()
	h := newHarness(t, cfg)
	h.write("main.c", "int main(void) { return 0; }\n")
	h.write("include/app.h", "#pragma once\n")
	h.settle(h.reconcile(cfg))

	changed := domain.DefaultConfig()
	changed.Flags = append(changed.Flags, "-Wall")

	out := h.reconcile(changed)
	require.Equal(t, []string{"include/app.h", "main.c"}, out.Dirty)
}

func TestReconcile_ScanFailureKeepsUnitDirty(t *testing.T) {
	cfg := domain.DefaultConfig()
	root := t.TempDir()

	ctrl := gomock.NewController(t)
	tc := mocks.NewMockToolchain(ctrl)
	tc.EXPECT().DepReport(gomock.Any(), "main.c").Return("", os.ErrPermission).AnyTimes()

	cache := domain.NewBuildCache(root)
	rec := reconcile.New(
		root,
		domain.ProfileDebug,
		fs.NewEnumerator(fs.NewWalker(), nil),
		fs.NewFingerprinter(),
		reconcile.NewScanner(root, tc),
		cachefile.NewStore(),
		logger.NewWithWriter(io.Discard),
		telemetry.NewNoop(),
	)

	require.NoError(t, os.WriteFile(filepath.Join(root, "main.c"), []byte("int main(void){}\n"), 0o644))

	out, err := rec.Reconcile(context.Background(), cache, cache.Graph(), cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"main.c"}, out.Dirty)
	require.Len(t, out.ScanFailures, 1)
	require.Equal(t, "main.c", out.ScanFailures[0].Path)
}

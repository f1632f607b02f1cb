// Package toolchain provides the gcc/g++ compiler collaborator adapter.
package toolchain

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Toolchain = (*GCC)(nil)

// GCC implements ports.Toolchain with the system gcc/g++ binaries. Plain C
// sources go through the C compiler, everything else through the C++ one.
// The compiler is treated as a black box: every invocation returns its
// captured combined output and exit status.
//
// Every command runs with the project root as working directory, so source
// paths stay root-relative on the command line and in diagnostics.
type GCC struct {
	root    string
	cfg     *domain.Config
	profile domain.Profile
}

// NewGCC creates a toolchain for the project at root with the given
// configuration and profile.
func NewGCC(root string, cfg *domain.Config, profile domain.Profile) *GCC {
	return &GCC{root: root, cfg: cfg, profile: profile}
}

func (g *GCC) compilerFor(path string) string {
	if domain.IsCxx(path) {
		return g.cfg.CXX
	}
	return g.cfg.CC
}

// DepReport runs the preprocessor in -MM mode and returns its raw output:
// a make-style rule listing every header the unit transitively includes,
// with system headers already excluded by the preprocessor.
func (g *GCC) DepReport(ctx context.Context, path string) (string, error) {
	args := append([]string{"-MM"}, g.cfg.Flags...)
	args = append(args, path)

	out, err := g.run(ctx, g.compilerFor(path), args)
	if err != nil {
		return "", zerr.With(zerr.With(zerr.Wrap(err, "dependency report failed"), "file", path), "output", out)
	}
	return out, nil
}

// Compile compiles src into the object file obj, creating the object
// directory as needed. The captured output is returned on success and
// failure alike so diagnostics always reach the build result.
func (g *GCC) Compile(ctx context.Context, src, obj string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(obj), domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, "failed to create object directory")
	}

	args := append([]string{}, g.cfg.Flags...)
	args = append(args, g.profile.ProfileFlags()...)
	args = append(args, "-c", src, "-o", obj)

	out, err := g.run(ctx, g.compilerFor(src), args)
	if err != nil {
		return out, zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "file", src)
	}
	return out, nil
}

// Link combines the object files into the executable at binary. The C++
// driver is used when any object was produced from a C++ unit, so the
// standard library gets linked in.
func (g *GCC) Link(ctx context.Context, objects []string, binary string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(binary), domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, "failed to create output directory")
	}

	linker := g.cfg.CC
	for _, obj := range objects {
		if domain.IsCxx(strings.TrimSuffix(obj, ".o")) {
			linker = g.cfg.CXX
			break
		}
	}

	args := append([]string{}, objects...)
	args = append(args, g.cfg.Flags...)
	args = append(args, g.profile.ProfileFlags()...)
	args = append(args, "-o", binary)

	out, err := g.run(ctx, linker, args)
	if err != nil {
		return out, zerr.With(zerr.Wrap(err, "linker returned non-zero status"), "binary", binary)
	}
	return out, nil
}

func (g *GCC) run(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // compiler and flags come from project config
	cmd.Dir = g.root

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitCode int
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1 // not started or killed by signal
		}
		return string(out), zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "command", name), "exit_code", exitCode)
	}
	return string(out), nil
}

// Package reconcile keeps the build cache in sync with the project tree.
// It enumerates sources, detects additions, deletions and content changes,
// refreshes include edges through the preprocessor, and hands the scheduler
// the exact set of dirty files together with their observed state.
package reconcile

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scanner extracts project-local include dependencies from the
// preprocessor's make-rule dependency report.
type Scanner struct {
	root string
	tc   ports.Toolchain
}

// NewScanner creates a scanner for the project at root.
func NewScanner(root string, tc ports.Toolchain) *Scanner {
	return &Scanner{root: root, tc: tc}
}

// Scan returns the root-relative header paths the translation unit at path
// (itself root-relative) transitively includes. System headers are already
// excluded by the preprocessor; anything that still resolves outside the
// project root is dropped here.
func (s *Scanner) Scan(ctx context.Context, path string) ([]string, error) {
	report, err := s.tc.DepReport(ctx, path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrScanFailed.Error()), "file", path)
	}
	return ParseDepReport(report, s.root, path), nil
}

// ParseDepReport parses the output of a -MM preprocessor run into the set of
// root-relative dependency paths. The report has the shape
//
//	main.o: main.c include/app.h \
//	 include/util.h
//
// The rule target and the unit itself are skipped, line continuations are
// ignored, and every remaining token is resolved against root. Tokens that
// land outside the project are discarded. The result is sorted and free of
// duplicates.
func ParseDepReport(report, root, unit string) []string {
	seen := make(map[string]struct{})

	for _, token := range strings.Fields(report) {
		if token == "\\" || strings.HasSuffix(token, ":") {
			continue
		}

		rel, ok := resolveWithin(root, token)
		if !ok || rel == unit {
			continue
		}
		seen[rel] = struct{}{}
	}

	deps := make([]string, 0, len(seen))
	for dep := range seen {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

// resolveWithin normalizes token to a slash-separated path relative to root.
// Relative tokens are interpreted against root, matching the toolchain's
// working directory. Returns false for paths escaping the project.
func resolveWithin(root, token string) (string, bool) {
	abs := filepath.FromSlash(token)
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

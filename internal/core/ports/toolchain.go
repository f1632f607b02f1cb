// Package ports defines the core interfaces for the application.
package ports

import "context"

// Toolchain is the external compiler collaborator. It answers three request
// shapes: a dependency report for one translation unit, a compile request,
// and a link request. Implementations capture combined stdout/stderr and
// return it alongside the invocation error.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// DepReport runs the preprocessor in dependency-report mode (-MM) for
	// the unit at the given root-relative path and returns the raw listing
	// of transitively included headers. Implementations resolve the path
	// against the project root.
	DepReport(ctx context.Context, path string) (string, error)

	// Compile compiles one translation unit into its object file. The
	// returned string is the captured compiler output, populated on both
	// success and failure.
	Compile(ctx context.Context, src, obj string) (string, error)

	// Link combines the object files into the executable at binary.
	Link(ctx context.Context, objects []string, binary string) (string, error)
}

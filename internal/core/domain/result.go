package domain

import "time"

// CompileJob is one ephemeral unit of scheduler work: a translation unit,
// its object file output path, and the unit's content fingerprint captured
// at dispatch time so workers never re-check shared state mid-flight.
type CompileJob struct {
	// Unit is the canonical project-relative path of the translation unit.
	Unit string
	// Object is the absolute path of the object file to produce.
	Object string
	// Fingerprint is the unit's content hash at dispatch; it is committed
	// to the cache only after this job succeeds.
	Fingerprint string
}

// CompileFailure records one failed compile with its captured diagnostics.
type CompileFailure struct {
	// Unit is the translation unit that failed.
	Unit string
	// Output is the captured compiler stdout/stderr.
	Output string
	// Err is the underlying invocation error.
	Err error
}

// BuildResult is the outcome of one build cycle, consumed by the caller for
// reporting. It is never persisted.
type BuildResult struct {
	// Compiled is the number of translation units recompiled.
	Compiled int
	// Skipped is the number of up-to-date translation units.
	Skipped int
	// Failed is the number of translation units that failed to compile.
	Failed int
	// Failures lists the failed units in unit-path order.
	Failures []CompileFailure
	// ScanFailures lists units whose dependency scan failed during
	// reconciliation. They stay dirty; their real error surfaces here.
	ScanFailures []ScanFailure
	// Linked reports whether the link step ran and succeeded.
	Linked bool
	// LinkErr is the link step failure, if any.
	LinkErr error
	// LinkOutput is the captured linker output when the link step failed.
	LinkOutput string
	// Binary is the path of the produced executable when Linked is true.
	Binary string
	// Duration is the wall time of the whole cycle.
	Duration time.Duration
}

// ScanFailure records one failed dependency scan.
type ScanFailure struct {
	// Path is the file whose scan failed.
	Path string
	// Err is the underlying scanner error.
	Err error
}

// Succeeded reports whether the cycle finished without compile or link
// failures.
func (r *BuildResult) Succeeded() bool {
	return r.Failed == 0 && r.LinkErr == nil
}

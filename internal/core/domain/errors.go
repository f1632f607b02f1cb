package domain

import "go.trai.ch/zerr"

var (
	// ErrScanFailed is returned when the dependency scan for a file fails.
	// The file stays dirty; a later build surfaces the real compiler error.
	ErrScanFailed = zerr.New("dependency scan failed")

	// ErrCompileFailed is returned when a translation unit fails to compile.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrLinkFailed is returned when the link step fails after all compiles
	// succeeded.
	ErrLinkFailed = zerr.New("link failed")

	// ErrCacheLoad is returned when the cache file is unreadable or corrupt.
	// It is always recovered by treating the cache as empty.
	ErrCacheLoad = zerr.New("cache file unreadable, starting from an empty cache")

	// ErrCacheSave is returned when the cache file cannot be written.
	ErrCacheSave = zerr.New("failed to write cache file")

	// ErrNoBinary is returned for a run command before any successful build.
	ErrNoBinary = zerr.New("no binary available, run a successful build first")

	// ErrUnknownCommand is returned for unrecognized daemon input.
	ErrUnknownCommand = zerr.New("unknown command")

	// ErrBuildFailed is returned when a build cycle finished with compile
	// or link failures.
	ErrBuildFailed = zerr.New("build failed")

	// ErrEnumerateFailed is returned when the project files cannot be listed.
	ErrEnumerateFailed = zerr.New("failed to enumerate project files")

	// ErrConfigParseFailed is returned when forge.yaml cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrRunFailed is returned when the built binary exits with an error.
	ErrRunFailed = zerr.New("binary exited with an error")
)

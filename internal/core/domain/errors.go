package domain

import "go.trai.ch/zerr"

var (
	// ErrLaunchFailure is returned when the external compiler binary
	// cannot be started at all (missing binary, permissions).
	ErrLaunchFailure = zerr.New("failed to launch compiler")

	// ErrCompileFailure is returned when the external compiler ran but
	// exited with a nonzero code. The message carries the numeric code.
	ErrCompileFailure = zerr.New("compiler exited with error")

	// ErrExtractionFailure is returned when a dependency archive cannot
	// be read during unpacking. It aborts the build step before
	// compilation begins.
	ErrExtractionFailure = zerr.New("failed to extract dependency archive")

	// ErrNoSources is returned when the configuration names no schema
	// source directories.
	ErrNoSources = zerr.New("no schema source directories configured")
)

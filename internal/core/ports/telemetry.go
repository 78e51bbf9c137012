package ports

import "context"

// Tracer is the entry point for recording pipeline stages.
type Tracer interface {
	// Start begins a new span for a named stage.
	Start(ctx context.Context, name string) (context.Context, Span)
	// Close flushes and closes the recording session.
	Close() error
}

// Span represents one unit of pipeline work.
type Span interface {
	// End completes the span; a non-nil err marks it failed.
	End(err error)
	// Cached marks the stage as skipped because a valid cache was found.
	Cached()
}

package ports

import "go.trai.ch/sgen/internal/core/domain"

// RecordStore persists the build record between invocations.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Get returns the record persisted under cacheDir. An absent,
	// unreadable, or malformed store yields nil, nil: cache corruption
	// is never fatal, it just forces a recompute.
	Get(cacheDir string) (*domain.BuildRecord, error)

	// Put persists the record under cacheDir, creating the directory if
	// needed.
	Put(cacheDir string, record domain.BuildRecord) error
}

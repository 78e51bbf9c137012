// Package cache persists build records as a flat JSON file under the
// cache directory.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/sgen/internal/core/domain"
	"go.trai.ch/sgen/internal/core/ports"
	"go.trai.ch/zerr"
)

// stateFile is the record filename inside the cache directory. The
// format is internal; deleting the file (or the whole directory) forces
// a full recompilation and is always safe.
const stateFile = "sgen_state.json"

var _ ports.RecordStore = (*Store)(nil)

// Store implements ports.RecordStore using a flat JSON file.
type Store struct {
	logger ports.Logger
	mu     sync.Mutex
}

// NewStore creates a new Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Get returns the record persisted under cacheDir. A missing,
// unreadable, or malformed state file is treated as a cache miss and
// never as an error; corruption only costs a recompilation.
func (s *Store) Get(cacheDir string) (*domain.BuildRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(cacheDir, stateFile)

	//nolint:gosec // Path is rooted in the configured cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn(fmt.Sprintf("cache state unreadable, forcing recompile: %v", err))
		}
		return nil, nil
	}

	if len(data) == 0 {
		return nil, nil
	}

	var record domain.BuildRecord
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.Warn(fmt.Sprintf("cache state corrupt, forcing recompile: %v", err))
		return nil, nil
	}

	return &record, nil
}

// Put persists the record under cacheDir, creating the directory if
// needed.
func (s *Store) Put(cacheDir string, record domain.BuildRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal build record")
	}

	if err := os.MkdirAll(cacheDir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache directory"), "dir", cacheDir)
	}

	path := filepath.Join(cacheDir, stateFile)
	//nolint:gosec // Path is rooted in the configured cache directory
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write build record"), "path", path)
	}

	return nil
}

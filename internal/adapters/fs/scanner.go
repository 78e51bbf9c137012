package fs

import (
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/sgen/internal/core/domain"
	"go.trai.ch/sgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Scanner = (*Scanner)(nil)

// Scanner discovers schema files by walking source directories.
type Scanner struct {
	walker *Walker
}

// NewScanner creates a new Scanner.
func NewScanner(walker *Walker) *Scanner {
	return &Scanner{walker: walker}
}

// Scan walks each directory in order and returns the deduplicated,
// sorted set of absolute schema file paths. Order of dirs does not
// affect the result set; downstream consumers treat it as a set.
func (s *Scanner) Scan(dirs []string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				// First build without unpacked dependencies, or an optional
				// source dir that was never created.
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat source directory"), "dir", dir)
		}

		for path := range s.walker.WalkFiles(dir) {
			if filepath.Ext(path) != domain.SchemaExt {
				continue
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to resolve schema path"), "path", path)
			}
			seen[abs] = struct{}{}
		}
	}

	result := make([]string, 0, len(seen))
	for path := range seen {
		result = append(result, path)
	}
	sort.Strings(result)

	return result, nil
}

package fs

import (
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/sgen/internal/core/domain"
	"go.trai.ch/sgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Collector = (*Collector)(nil)

// Collector gathers generated files by globbing target directories.
type Collector struct {
	walker *Walker
}

// NewCollector creates a new Collector.
func NewCollector(walker *Walker) *Collector {
	return &Collector{walker: walker}
}

// Collect walks each target directory recursively and matches base
// filenames against the target's pattern. The union of all matches is
// returned sorted. Files already present before the compiler ran are
// matched too; correctness relies on the target directories being owned
// by this pipeline alone.
func (c *Collector) Collect(targets []domain.GeneratedTarget) ([]string, error) {
	seen := make(map[string]struct{})

	for _, target := range targets {
		if _, err := os.Stat(target.Dir); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat output directory"), "dir", target.Dir)
		}

		for path := range c.walker.WalkFiles(target.Dir) {
			matched, err := filepath.Match(target.Pattern, filepath.Base(path))
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "bad output pattern"), "pattern", target.Pattern)
			}
			if !matched {
				continue
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to resolve output path"), "path", path)
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

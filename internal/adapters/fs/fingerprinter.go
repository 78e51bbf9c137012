package fs

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/sgen/internal/core/domain"
	"go.trai.ch/sgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter observes schema file state for the cache freshness check.
type Fingerprinter struct{}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// Fingerprint stats every file and returns fingerprints sorted by path.
// In mtime mode the fingerprint is the last-modification time; in
// content mode it is an XXHash of the file's content. A missing file is
// an error since the input set was just discovered on disk.
func (f *Fingerprinter) Fingerprint(files []string, mode domain.FingerprintMode) ([]domain.Fingerprint, error) {
	sorted := slices.Clone(files)
	slices.Sort(sorted)

	fingerprints := make([]domain.Fingerprint, 0, len(sorted))
	for _, path := range sorted {
		info, err := os.Stat(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to stat schema file"), "path", path)
		}

		fp := domain.Fingerprint{Path: path}
		if mode == domain.FingerprintContent {
			sum, err := hashFile(path)
			if err != nil {
				return nil, err
			}
			fp.Hash = fmt.Sprintf("%016x", sum)
		} else {
			fp.MTime = info.ModTime().UnixNano()
		}

		fingerprints = append(fingerprints, fp)
	}

	return fingerprints, nil
}

// hashFile computes the XXHash of a file's content.
func hashFile(path string) (uint64, error) {
	file, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

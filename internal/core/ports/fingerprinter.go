package ports

import "go.trai.ch/sgen/internal/core/domain"

// Fingerprinter observes the current on-disk state of schema files.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint stats (and in content mode hashes) every file and
	// returns fingerprints sorted by path. A missing file is an error:
	// the discovered input set must exist at fingerprinting time.
	Fingerprint(files []string, mode domain.FingerprintMode) ([]domain.Fingerprint, error)
}

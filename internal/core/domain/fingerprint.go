package domain

// FingerprintMode selects how schema files are fingerprinted for the
// cache freshness check.
type FingerprintMode string

const (
	// FingerprintMTime fingerprints by last-modification time. Cheap, but
	// bounded by the filesystem's timestamp granularity: two builds within
	// the same tick after a content change can falsely report fresh.
	FingerprintMTime FingerprintMode = "mtime"

	// FingerprintContent fingerprints by content hash. Stricter, immune
	// to timestamp granularity, at the cost of reading every schema file.
	FingerprintContent FingerprintMode = "content"
)

// Fingerprint records the observed state of a single schema file. Which
// of MTime and Hash is populated depends on the FingerprintMode; a mode
// switch therefore invalidates the cache on its own.
type Fingerprint struct {
	Path  string `json:"path"`
	MTime int64  `json:"mtime,omitzero"` // unix nanoseconds
	Hash  string `json:"hash,omitzero"`
}

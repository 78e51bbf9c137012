package domain

// Config is the explicit build configuration handed to the pipeline
// entry point. The pipeline never reads ambient global state; everything
// it needs is carried here.
type Config struct {
	// CompilerPath is the external schema compiler binary.
	CompilerPath string

	// Sources are the schema source directories, scanned recursively.
	Sources []string

	// Includes are include directories passed to the compiler as -I
	// flags. Order matters for the compiler's resolution precedence.
	Includes []string

	// Options are opaque arguments passed through to the compiler
	// verbatim, in order.
	Options []string

	// Targets describe where generated output lands and how to
	// recognize it.
	Targets []GeneratedTarget

	// Archives are dependency archives whose embedded schema files are
	// unpacked before compilation.
	Archives []string

	// IncludeOutDir is the external include directory populated from
	// Archives. It is scanned as a source directory and passed as an
	// include path.
	IncludeOutDir string

	// CacheDir holds the persisted build record. Deleting it forces a
	// full recompilation.
	CacheDir string

	// Fingerprint selects the freshness check mode.
	Fingerprint FingerprintMode
}

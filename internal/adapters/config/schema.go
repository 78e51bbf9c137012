package config

// File represents the structure of the sgen.yaml configuration file.
type File struct {
	Version string `yaml:"version"`

	// Compiler is the path to the external schema compiler binary.
	Compiler string `yaml:"compiler"`

	// Sources are schema source directories, scanned recursively.
	Sources []string `yaml:"sources"`

	// Includes are extra include directories, passed in order.
	Includes []string `yaml:"includes"`

	// Options are passed through to the compiler verbatim.
	Options []string `yaml:"options"`

	// Targets describe generated output locations.
	Targets []TargetDTO `yaml:"targets"`

	// Archives are dependency archives to unpack schema files from.
	Archives []string `yaml:"archives"`

	// IncludeOut is the external include directory populated from
	// Archives. Defaults to <cacheDir>/extracted-include.
	IncludeOut string `yaml:"includeOut"`

	// CacheDir holds the build record. Defaults to .sgen.
	CacheDir string `yaml:"cacheDir"`

	// Fingerprint is "mtime" (default) or "content".
	Fingerprint string `yaml:"fingerprint"`
}

// TargetDTO represents a generated-output target in the configuration.
type TargetDTO struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
	Kind    string `yaml:"kind"`
}

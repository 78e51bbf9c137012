// Package domain holds the core types of the schema compilation pipeline.
package domain

// SchemaExt is the file extension that identifies schema files, both
// when scanning source directories and when extracting from archives.
const SchemaExt = ".proto"

// GeneratedTarget describes one category of generated output: the
// directory the external compiler writes into and the filename pattern
// that identifies the generated files afterwards.
type GeneratedTarget struct {
	// Dir is the output directory. It is created before compilation if missing.
	Dir string `json:"dir" yaml:"dir"`

	// Pattern is a glob matched against base filenames under Dir.
	Pattern string `json:"pattern" yaml:"pattern"`

	// Kind names the compiler output plugin (e.g. "go", "cpp"). A target
	// with a non-empty Kind contributes a corresponding emit flag to the
	// compiler invocation. An empty Kind marks a collection-only target.
	Kind string `json:"kind,omitzero" yaml:"kind"`
}

// EmitFlag returns the compiler flag contributed by this target, or the
// empty string for a collection-only target.
func (t GeneratedTarget) EmitFlag() string {
	if t.Kind == "" {
		return ""
	}
	return "--" + t.Kind + "_out=" + t.Dir
}

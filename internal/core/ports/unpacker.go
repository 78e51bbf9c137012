package ports

// Unpacker extracts schema files embedded in dependency archives into
// the external include directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=unpacker.go -destination=mocks/mock_unpacker.go -package=mocks
type Unpacker interface {
	// Unpack ensures destDir exists, then extracts every schema entry of
	// each archive into it, preserving archive-internal relative paths.
	// Same-path files are overwritten; orphans from removed dependencies
	// are not cleaned up. It returns the absolute paths of the extracted
	// files. An unreadable archive aborts the whole operation.
	Unpack(archives []string, destDir string) ([]string, error)
}

package ports

// Scanner discovers schema files under the configured source directories.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type Scanner interface {
	// Scan walks dirs recursively and returns the deduplicated, sorted
	// set of absolute schema file paths. Directories that do not exist
	// are skipped, so a first build without unpacked dependencies is not
	// an error.
	Scan(dirs []string) ([]string, error)
}

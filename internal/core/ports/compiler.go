package ports

import "context"

// Compiler invokes the external schema compiler as a subprocess.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Run executes the compiler binary over the given schema files,
	// blocking until the subprocess exits. The argument vector is built
	// as: one include flag per include path in input order, then the
	// pass-through options in order, then the schema paths in
	// lexicographic order.
	//
	// It returns the subprocess exit code; a nonzero code is surfaced as
	// a value, not an error, so the caller decides policy. The error
	// return is reserved for failing to launch the process at all.
	Run(ctx context.Context, binary string, includes, options, schemas []string) (int, error)
}

// Package protoc adapts the external schema compiler as a subprocess.
package protoc

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"strings"

	"go.trai.ch/sgen/internal/core/domain"
	"go.trai.ch/sgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Invoker)(nil)

// Invoker implements ports.Compiler using os/exec.
type Invoker struct {
	logger ports.Logger
}

// NewInvoker creates a new Invoker.
func NewInvoker(logger ports.Logger) *Invoker {
	return &Invoker{logger: logger}
}

// Args builds the compiler argument vector: one -I flag per include
// path in input order, then the pass-through options in order, then the
// schema paths. Schema paths are sorted so repeated invocations over
// the same set present the compiler with an identical command line.
func Args(includes, options, schemas []string) []string {
	args := make([]string, 0, len(includes)+len(options)+len(schemas))
	for _, include := range includes {
		args = append(args, "-I"+include)
	}
	args = append(args, options...)

	sorted := slices.Clone(schemas)
	slices.Sort(sorted)
	return append(args, sorted...)
}

// Run executes the compiler and blocks until it exits. Stdout is
// streamed to the build log at info level and stderr at error level, so
// a failure is diagnosable from the log alone. The exit code is
// returned as a value; only a failure to launch the process at all is
// an error.
func (i *Invoker) Run(ctx context.Context, binary string, includes, options, schemas []string) (int, error) {
	args := Args(includes, options, schemas)
	i.logger.Debug("compiler argv: " + binary + " " + strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec // Binary path comes from the build configuration
	cmd.Stdout = &logWriter{logger: i.logger}
	cmd.Stderr = &logWriter{logger: i.logger, errs: true}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, zerr.With(
			zerr.Wrap(domain.ErrLaunchFailure, err.Error()),
			"binary", binary,
		)
	}

	return 0, nil
}

// logWriter splits subprocess output into lines and forwards them to
// the logger, stdout at info level and stderr at error level. Write may
// be called with partial lines; for build logs the occasional split
// line is acceptable over buffering.
type logWriter struct {
	logger ports.Logger
	errs   bool
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	if msg == "" {
		return len(p), nil
	}
	for _, line := range strings.Split(msg, "\n") {
		if w.errs {
			w.logger.Error(zerr.New(line))
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}

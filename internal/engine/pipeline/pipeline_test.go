package pipeline_test

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"go.trai.ch/sgen/internal/adapters/archive"
	"go.trai.ch/sgen/internal/adapters/cache"
	"go.trai.ch/sgen/internal/adapters/fs"
	"go.trai.ch/sgen/internal/adapters/logger"
	"go.trai.ch/sgen/internal/adapters/protoc"
	"go.trai.ch/sgen/internal/adapters/telemetry"
	"go.trai.ch/sgen/internal/core/domain"
	"go.trai.ch/sgen/internal/engine/pipeline"
)

// fixture wires a pipeline from real adapters around a stub compiler
// script. The script bumps a counter file on every invocation, so tests
// can assert exactly how often the external compiler ran.
type fixture struct {
	srcDir   string
	genDir   string
	cacheDir string
	counter  string
	argsFile string
	cfg      *domain.Config
	pipe     *pipeline.Pipeline
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub compiler scripts require a POSIX shell")
	}

	tmp := t.TempDir()
	f := &fixture{
		srcDir:   filepath.Join(tmp, "schemas"),
		genDir:   filepath.Join(tmp, "gen"),
		cacheDir: filepath.Join(tmp, ".sgen"),
		counter:  filepath.Join(tmp, "invocations"),
		argsFile: filepath.Join(tmp, "argv"),
	}
	if err := os.MkdirAll(f.srcDir, 0o750); err != nil {
		t.Fatal(err)
	}

	script := filepath.Join(tmp, "compiler")
	body := fmt.Sprintf("#!/bin/sh\necho run >> %s\necho \"$@\" > %s\necho generated > %s/out.pb.go\n",
		f.counter, f.argsFile, f.genDir)
	if err := os.WriteFile(script, []byte(body), 0o700); err != nil { //nolint:gosec // Test script must be executable
		t.Fatal(err)
	}

	f.cfg = &domain.Config{
		CompilerPath: script,
		Sources:      []string{f.srcDir},
		Targets: []domain.GeneratedTarget{
			{Dir: f.genDir, Pattern: "*.pb.go", Kind: "go"},
		},
		IncludeOutDir: filepath.Join(f.cacheDir, "extracted-include"),
		CacheDir:      f.cacheDir,
		Fingerprint:   domain.FingerprintMTime,
	}

	log := logger.New()
	log.SetOutput(io.Discard)
	walker := fs.NewWalker()
	f.pipe = pipeline.New(
		archive.NewUnpacker(log),
		fs.NewScanner(walker),
		fs.NewFingerprinter(),
		protoc.NewInvoker(log),
		fs.NewCollector(walker),
		cache.NewStore(log),
		telemetry.NewNoOpTracer(),
		log,
	)
	return f
}

func (f *fixture) writeSchema(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.srcDir, name)
	if err := os.WriteFile(path, []byte("syntax = \"proto3\";"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func (f *fixture) invocations(t *testing.T) int {
	t.Helper()
	data, err := os.ReadFile(f.counter)
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Count(string(data), "run")
}

func (f *fixture) run(t *testing.T, force bool) []string {
	t.Helper()
	outputs, err := f.pipe.Run(context.Background(), f.cfg, force)
	if err != nil {
		t.Fatalf("pipeline run failed: %v", err)
	}
	return outputs
}

func TestRun_GeneratesAndCollects(t *testing.T) {
	f := newFixture(t)
	f.writeSchema(t, "user.proto")

	outputs := f.run(t, false)

	if len(outputs) != 1 || filepath.Base(outputs[0]) != "out.pb.go" {
		t.Fatalf("unexpected outputs: %v", outputs)
	}
	if got := f.invocations(t); got != 1 {
		t.Errorf("expected 1 compiler invocation, got %d", got)
	}
}

func TestRun_Idempotence(t *testing.T) {
	f := newFixture(t)
	f.writeSchema(t, "user.proto")

	first := f.run(t, false)
	second := f.run(t, false)

	if got := f.invocations(t); got != 1 {
		t.Errorf("expected the second run to be a cache hit, got %d invocations", got)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical output sets, got %v vs %v", first, second)
	}
}

func TestRun_ChangeSensitivity(t *testing.T) {
	f := newFixture(t)
	path := f.writeSchema(t, "user.proto")
	f.run(t, false)

	// A bare touch, no content change, must invalidate the cache.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	f.run(t, false)

	if got := f.invocations(t); got != 2 {
		t.Errorf("expected recompilation after touch, got %d invocations", got)
	}
}

func TestRun_InputSetSensitivity(t *testing.T) {
	f := newFixture(t)
	f.writeSchema(t, "user.proto")
	f.run(t, false)

	f.writeSchema(t, "order.proto")
	f.run(t, false)

	if got := f.invocations(t); got != 2 {
		t.Errorf("expected recompilation after adding a schema, got %d invocations", got)
	}
}

func TestRun_RemovalSensitivity(t *testing.T) {
	f := newFixture(t)
	f.writeSchema(t, "user.proto")
	removed := f.writeSchema(t, "order.proto")
	f.run(t, false)

	if err := os.Remove(removed); err != nil {
		t.Fatal(err)
	}
	f.run(t, false)

	if got := f.invocations(t); got != 2 {
		t.Errorf("expected recompilation after removing a schema, got %d invocations", got)
	}
}

func TestRun_OutputLossSensitivity(t *testing.T) {
	f := newFixture(t)
	f.writeSchema(t, "user.proto")
	outputs := f.run(t, false)

	if err := os.Remove(outputs[0]); err != nil {
		t.Fatal(err)
	}
	f.run(t, false)

	if got := f.invocations(t); got != 2 {
		t.Errorf("expected recompilation after deleting an output, got %d invocations", got)
	}
}

func TestRun_Force(t *testing.T) {
	f := newFixture(t)
	f.writeSchema(t, "user.proto")

	f.run(t, false)
	f.run(t, true)

	if got := f.invocations(t); got != 2 {
		t.Errorf("expected force to bypass the cache, got %d invocations", got)
	}
}

func TestRun_CompileFailure(t *testing.T) {
	f := newFixture(t)
	f.writeSchema(t, "user.proto")

	// Swap the stub for one that fails.
	if err := os.WriteFile(f.cfg.CompilerPath, []byte("#!/bin/sh\nexit 7\n"), 0o700); err != nil { //nolint:gosec // Test script must be executable
		t.Fatal(err)
	}

	_, err := f.pipe.Run(context.Background(), f.cfg, false)
	if err == nil {
		t.Fatal("expected compile failure")
	}
	if !errors.Is(err, domain.ErrCompileFailure) {
		t.Errorf("expected ErrCompileFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "7") {
		t.Errorf("expected exit code in message, got %q", err.Error())
	}

	// No cache update on failure.
	if _, statErr := os.Stat(filepath.Join(f.cacheDir, "sgen_state.json")); !os.IsNotExist(statErr) {
		t.Error("expected no build record after a failed compile")
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	f := newFixture(t)
	f.writeSchema(t, "user.proto")
	f.cfg.CompilerPath = filepath.Join(f.srcDir, "no-such-compiler")

	_, err := f.pipe.Run(context.Background(), f.cfg, false)
	if err == nil {
		t.Fatal("expected launch failure")
	}
	if !errors.Is(err, domain.ErrLaunchFailure) {
		t.Errorf("expected ErrLaunchFailure, got %v", err)
	}
}

func TestRun_UnpackedDependenciesAreInputs(t *testing.T) {
	f := newFixture(t)
	f.writeSchema(t, "user.proto")

	// Build a dependency jar carrying a schema.
	jarPath := filepath.Join(filepath.Dir(f.srcDir), "models.jar")
	jarFile, err := os.Create(jarPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(jarFile)
	entry, err := zw.Create("com/example/base.proto")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte("syntax = \"proto3\";")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := jarFile.Close(); err != nil {
		t.Fatal(err)
	}

	f.cfg.Archives = []string{jarPath}
	f.run(t, false)

	// The extracted schema must land on the compiler command line, and
	// the external include dir must be passed as an include path.
	argv, err := os.ReadFile(f.argsFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(argv), "-I"+f.cfg.IncludeOutDir) {
		t.Errorf("expected include flag for the external include dir, got %q", argv)
	}
	if !strings.Contains(string(argv), filepath.Join("com", "example", "base.proto")) {
		t.Errorf("expected extracted schema in argv, got %q", argv)
	}

	// Re-running without changes is still a cache hit.
	f.run(t, false)
	if got := f.invocations(t); got != 1 {
		t.Errorf("expected cache hit with unpacked dependencies, got %d invocations", got)
	}
}

func TestRun_EmitFlagsAndOrdering(t *testing.T) {
	f := newFixture(t)
	f.writeSchema(t, "b.proto")
	f.writeSchema(t, "a.proto")
	f.cfg.Includes = []string{filepath.Join(f.srcDir, "..", "extra")}
	f.cfg.Options = []string{"--x"}

	f.run(t, false)

	argv, err := os.ReadFile(f.argsFile)
	if err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(string(argv))

	emit := "--go_out=" + f.genDir
	if !strings.Contains(line, emit) {
		t.Errorf("expected emit flag %q in argv %q", emit, line)
	}
	if !strings.Contains(line, "--x") {
		t.Errorf("expected pass-through option in argv %q", line)
	}

	// Includes before options before schema files, schemas sorted.
	optIdx := strings.Index(line, "--x")
	incIdx := strings.Index(line, "-I")
	aIdx := strings.Index(line, "a.proto")
	bIdx := strings.Index(line, "b.proto")
	if !(incIdx < optIdx && optIdx < aIdx && aIdx < bIdx) {
		t.Errorf("unexpected argv ordering: %q", line)
	}
}

func TestRun_StrayOutputAdopted(t *testing.T) {
	f := newFixture(t)
	f.writeSchema(t, "user.proto")

	if err := os.MkdirAll(f.genDir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(f.genDir, "stray.pb.go"), []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}

	outputs := f.run(t, false)
	if len(outputs) != 2 {
		t.Errorf("expected stray file to be adopted into the result set, got %v", outputs)
	}
}

func TestRun_ContentModeSurvivesTouch(t *testing.T) {
	f := newFixture(t)
	f.cfg.Fingerprint = domain.FingerprintContent
	path := f.writeSchema(t, "user.proto")

	f.run(t, false)

	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	f.run(t, false)

	if got := f.invocations(t); got != 1 {
		t.Errorf("expected content mode to ignore a bare touch, got %d invocations", got)
	}
}

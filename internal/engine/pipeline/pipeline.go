// Package pipeline implements the incremental schema compilation
// pipeline: unpack dependency archives, discover schema files, check
// cache freshness, and invoke the external compiler only when needed.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/sgen/internal/core/domain"
	"go.trai.ch/sgen/internal/core/ports"
)

// Stage names recorded as telemetry vertexes.
const (
	stageUnpack   = "unpack dependencies"
	stageDiscover = "discover schemas"
	stageCompile  = "compile schemas"
	stageCollect  = "collect outputs"
)

// Pipeline wires the adapters into one synchronous build step. Stages
// run strictly in sequence; the only blocking external work is the
// compiler subprocess, which inherits the caller's context.
type Pipeline struct {
	unpacker      ports.Unpacker
	scanner       ports.Scanner
	fingerprinter ports.Fingerprinter
	compiler      ports.Compiler
	collector     ports.Collector
	store         ports.RecordStore
	tracer        ports.Tracer
	logger        ports.Logger
}

// New creates a new Pipeline.
func New(
	unpacker ports.Unpacker,
	scanner ports.Scanner,
	fingerprinter ports.Fingerprinter,
	compiler ports.Compiler,
	collector ports.Collector,
	store ports.RecordStore,
	tracer ports.Tracer,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		unpacker:      unpacker,
		scanner:       scanner,
		fingerprinter: fingerprinter,
		compiler:      compiler,
		collector:     collector,
		store:         store,
		tracer:        tracer,
		logger:        logger,
	}
}

// Run executes one build step and returns the authoritative list of
// generated files. With an unchanged input set and intact outputs the
// compiler is not invoked at all and the persisted list is returned.
// force bypasses the freshness check but still updates the record.
func (p *Pipeline) Run(ctx context.Context, cfg *domain.Config, force bool) ([]string, error) {
	if err := p.unpack(ctx, cfg); err != nil {
		return nil, err
	}

	schemas, fingerprints, err := p.discover(ctx, cfg)
	if err != nil {
		return nil, err
	}

	record, err := p.store.Get(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	if !force && p.fresh(record, fingerprints) {
		_, span := p.tracer.Start(ctx, stageCompile)
		span.Cached()
		span.End(nil)
		p.logger.Info(fmt.Sprintf("schemas unchanged, reusing %d generated files", len(record.Outputs)))
		return record.Outputs, nil
	}

	outputs, err := p.compile(ctx, cfg, schemas)
	if err != nil {
		return nil, err
	}

	if err := p.store.Put(cfg.CacheDir, domain.NewBuildRecord(fingerprints, outputs)); err != nil {
		return nil, err
	}

	return outputs, nil
}

func (p *Pipeline) unpack(ctx context.Context, cfg *domain.Config) error {
	if len(cfg.Archives) == 0 {
		return nil
	}

	_, span := p.tracer.Start(ctx, stageUnpack)
	extracted, err := p.unpacker.Unpack(cfg.Archives, cfg.IncludeOutDir)
	span.End(err)
	if err != nil {
		return err
	}

	p.logger.Info(fmt.Sprintf("unpacked %d schema files from %d dependency archives", len(extracted), len(cfg.Archives)))
	return nil
}

// discover scans all source directories, including the external include
// directory, so unpacked dependency schemas are first-class inputs.
func (p *Pipeline) discover(ctx context.Context, cfg *domain.Config) ([]string, []domain.Fingerprint, error) {
	_, span := p.tracer.Start(ctx, stageDiscover)

	dirs := slices.Clone(cfg.Sources)
	if cfg.IncludeOutDir != "" {
		dirs = append(dirs, cfg.IncludeOutDir)
	}

	schemas, err := p.scanner.Scan(dirs)
	if err != nil {
		span.End(err)
		return nil, nil, err
	}

	fingerprints, err := p.fingerprinter.Fingerprint(schemas, cfg.Fingerprint)
	span.End(err)
	if err != nil {
		return nil, nil, err
	}

	return schemas, fingerprints, nil
}

// fresh reports whether the persisted record still matches the
// discovered input set and every recorded output exists on disk.
func (p *Pipeline) fresh(record *domain.BuildRecord, current []domain.Fingerprint) bool {
	if record == nil {
		return false
	}
	if !slices.Equal(record.Inputs, current) {
		return false
	}
	for _, output := range record.Outputs {
		if _, err := os.Stat(output); err != nil {
			return false
		}
	}
	return true
}

func (p *Pipeline) compile(ctx context.Context, cfg *domain.Config, schemas []string) ([]string, error) {
	dests := make([]string, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		if err := os.MkdirAll(target.Dir, 0o750); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", target.Dir)
		}
		dests = append(dests, target.Dir)
	}

	p.logger.Info(fmt.Sprintf("compiling %d schema files into [%s]", len(schemas), strings.Join(dests, ", ")))

	_, span := p.tracer.Start(ctx, stageCompile)
	code, err := p.compiler.Run(ctx, cfg.CompilerPath, p.includePaths(cfg), p.options(cfg), schemas)
	if err != nil {
		span.End(err)
		return nil, err
	}
	if code != 0 {
		failure := zerr.With(
			zerr.Wrap(domain.ErrCompileFailure, fmt.Sprintf("compiler exited with code %d", code)),
			"exit_code", code,
		)
		span.End(failure)
		return nil, failure
	}
	span.End(nil)

	_, collectSpan := p.tracer.Start(ctx, stageCollect)
	outputs, err := p.collector.Collect(cfg.Targets)
	collectSpan.End(err)
	if err != nil {
		return nil, err
	}

	return outputs, nil
}

// includePaths builds the compiler's include list: source roots first
// so sibling imports resolve, then configured includes in order, then
// the external include directory.
func (p *Pipeline) includePaths(cfg *domain.Config) []string {
	includes := make([]string, 0, len(cfg.Sources)+len(cfg.Includes)+1)
	includes = append(includes, cfg.Sources...)
	includes = append(includes, cfg.Includes...)
	if cfg.IncludeOutDir != "" {
		includes = append(includes, cfg.IncludeOutDir)
	}
	return includes
}

// options appends one emit flag per known-kind target to the
// pass-through options.
func (p *Pipeline) options(cfg *domain.Config) []string {
	options := slices.Clone(cfg.Options)
	for _, target := range cfg.Targets {
		if flag := target.EmitFlag(); flag != "" {
			options = append(options, flag)
		}
	}
	return options
}

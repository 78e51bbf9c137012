// Package app implements the application layer for sgen.
package app

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/sgen/internal/core/ports"
	"go.trai.ch/sgen/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *pipeline.Pipeline
	logger       ports.Logger
}

// RunOptions controls a single generation run.
type RunOptions struct {
	// Force bypasses the freshness check and always invokes the compiler.
	Force bool
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, pipe *pipeline.Pipeline, logger ports.Logger) *App {
	return &App{
		configLoader: loader,
		pipeline:     pipe,
		logger:       logger,
	}
}

// Run executes one generation step against the configuration in the
// current directory and returns the generated file paths.
func (a *App) Run(ctx context.Context, opts RunOptions) ([]string, error) {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	outputs, err := a.pipeline.Run(ctx, cfg, opts.Force)
	if err != nil {
		return nil, zerr.Wrap(err, "generation failed")
	}

	return outputs, nil
}

// Clean removes the cache directory and the external include directory
// so the next run starts from a blank slate. Generated files under the
// configured targets are left alone, the compiler owns those.
func (a *App) Clean() error {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	for _, dir := range []string{cfg.IncludeOutDir, cfg.CacheDir} {
		if dir == "" {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove directory"), "dir", dir)
		}
		a.logger.Debug(fmt.Sprintf("removed %s", dir))
	}

	return nil
}

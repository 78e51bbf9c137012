// Package config provides the configuration loader for sgen.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/sgen/internal/core/domain"
	"go.trai.ch/sgen/internal/core/ports"
)

const (
	defaultCacheDir   = ".sgen"
	defaultIncludeOut = "extracted-include"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the configuration from the given working directory. An
// absolute Filename is used as-is.
func (l *FileConfigLoader) Load(cwd string) (*domain.Config, error) {
	path := l.Filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return Load(path)
}

// SetPath points the loader at a different configuration file. The CLI
// wires its --config flag here before any command runs.
func (l *FileConfigLoader) SetPath(path string) {
	l.Filename = path
}

// Load reads a configuration file and returns the resolved pipeline
// configuration. Relative paths are resolved against the config file's
// directory so the build behaves the same regardless of the process cwd.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is provided by the user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	root := filepath.Dir(path)
	cfg, err := resolve(&file, root)
	if err != nil {
		return nil, zerr.With(err, "config", path)
	}
	return cfg, nil
}

func resolve(file *File, root string) (*domain.Config, error) {
	if file.Compiler == "" {
		return nil, zerr.New("no compiler binary configured")
	}
	if len(file.Sources) == 0 {
		return nil, domain.ErrNoSources
	}

	mode := domain.FingerprintMode(file.Fingerprint)
	switch mode {
	case "", domain.FingerprintMTime:
		mode = domain.FingerprintMTime
	case domain.FingerprintContent:
	default:
		return nil, zerr.With(zerr.New("unknown fingerprint mode"), "mode", file.Fingerprint)
	}

	cacheDir := file.CacheDir
	if cacheDir == "" {
		cacheDir = defaultCacheDir
	}
	cacheDir = resolvePath(root, cacheDir)

	includeOut := file.IncludeOut
	if includeOut == "" {
		includeOut = filepath.Join(cacheDir, defaultIncludeOut)
	} else {
		includeOut = resolvePath(root, includeOut)
	}

	targets := make([]domain.GeneratedTarget, 0, len(file.Targets))
	for _, dto := range file.Targets {
		if dto.Dir == "" || dto.Pattern == "" {
			return nil, zerr.With(zerr.New("target requires dir and pattern"), "target", dto)
		}
		targets = append(targets, domain.GeneratedTarget{
			Dir:     resolvePath(root, dto.Dir),
			Pattern: dto.Pattern,
			Kind:    dto.Kind,
		})
	}

	return &domain.Config{
		CompilerPath:  file.Compiler,
		Sources:       resolvePaths(root, file.Sources),
		Includes:      resolvePaths(root, file.Includes),
		Options:       file.Options,
		Targets:       targets,
		Archives:      resolvePaths(root, file.Archives),
		IncludeOutDir: includeOut,
		CacheDir:      cacheDir,
		Fingerprint:   mode,
	}, nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func resolvePaths(root string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	resolved := make([]string, len(paths))
	for i, p := range paths {
		resolved[i] = resolvePath(root, p)
	}
	return resolved
}

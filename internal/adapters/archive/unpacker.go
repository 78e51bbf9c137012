// Package archive implements schema extraction from dependency archives.
//
// Dependency archives are zip-format containers (jars included) that may
// carry schema files alongside compiled code. Only schema entries are
// extracted, into the external include directory, so cross-archive
// schema references resolve during compilation.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/sgen/internal/core/domain"
	"go.trai.ch/sgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Unpacker = (*Unpacker)(nil)

// Unpacker extracts schema files from zip archives.
type Unpacker struct {
	logger ports.Logger
}

// NewUnpacker creates a new Unpacker.
func NewUnpacker(logger ports.Logger) *Unpacker {
	return &Unpacker{logger: logger}
}

// Unpack extracts every schema entry of each archive into destDir,
// preserving archive-internal relative paths. Files already present at
// the same path are overwritten; files left behind by a removed
// dependency are not cleaned up here, the host's clean lifecycle owns
// that. An unreadable archive aborts the whole operation.
func (u *Unpacker) Unpack(archives []string, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create include directory"), "dir", destDir)
	}

	var extracted []string
	for _, archivePath := range archives {
		files, err := u.unpackOne(archivePath, destDir)
		if err != nil {
			return nil, err
		}
		extracted = append(extracted, files...)
	}

	if len(extracted) > 0 {
		u.logger.Debug(fmt.Sprintf("extracted %d schema files from %d archives", len(extracted), len(archives)))
	}

	return extracted, nil
}

func (u *Unpacker) unpackOne(archivePath, destDir string) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrExtractionFailure, err.Error()),
			"archive", archivePath,
		)
	}
	defer reader.Close() //nolint:errcheck // Best effort close in defer

	var extracted []string
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if filepath.Ext(entry.Name) != domain.SchemaExt {
			continue
		}

		dest, err := entryDest(destDir, entry.Name)
		if err != nil {
			return nil, zerr.With(err, "archive", archivePath)
		}

		if err := extractEntry(entry, dest); err != nil {
			return nil, zerr.With(err, "archive", archivePath)
		}
		extracted = append(extracted, dest)
	}

	return extracted, nil
}

// entryDest resolves an archive-internal path under destDir, rejecting
// entries that would escape it.
func entryDest(destDir, name string) (string, error) {
	dest := filepath.Join(destDir, filepath.FromSlash(name))

	rel, err := filepath.Rel(destDir, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", zerr.With(
			zerr.Wrap(domain.ErrExtractionFailure, "archive entry escapes include directory"),
			"entry", name,
		)
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve extraction path"), "entry", name)
	}
	return abs, nil
}

func extractEntry(entry *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create extraction directory"), "path", dest)
	}

	src, err := entry.Open()
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrExtractionFailure, err.Error()), "entry", entry.Name)
	}
	defer src.Close() //nolint:errcheck // Best effort close in defer

	out, err := os.Create(dest) //nolint:gosec // Destination is validated against the include dir
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create extracted file"), "path", dest)
	}

	//nolint:gosec // Archive sizes are bounded by trusted build dependencies
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(domain.ErrExtractionFailure, err.Error()), "entry", entry.Name)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close extracted file"), "path", dest)
	}

	// Carry the archive's recorded mtime so re-extraction of an
	// unchanged dependency does not invalidate mtime fingerprints.
	if err := os.Chtimes(dest, entry.Modified, entry.Modified); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to restore entry mtime"), "path", dest)
	}

	return nil
}

// Package fs provides file system adapters for discovering schema files
// and collecting generated output.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides recursive file walking.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file under root as yielded by filepath.WalkDir,
// skipping version-control directories. Walk errors on individual
// entries are swallowed; a missing root simply yields nothing.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// A root that vanished mid-walk or an unreadable subdir is
				// treated as empty rather than fatal.
				return nil
			}

			if d.IsDir() {
				name := d.Name()
				if name == ".git" || name == ".jj" {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

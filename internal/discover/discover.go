package discover

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aliGhadyani/loupe/internal/ignore"
)

// FileRecord identifies one discovered regular file. Rel is always
// slash-separated, relative to the walk root.
type FileRecord struct {
	Path string
	Rel  string
}

// Walker walks a root directory and yields the regular files that are
// neither hidden nor matched by the ignore set.
type Walker struct {
	root     string
	ignores  ignore.Set
	warnings []string
}

// New creates a Walker over root with the given ignore set.
func New(root string, ignores ignore.Set) *Walker {
	return &Walker{root: root, ignores: ignores}
}

// WalkFunc receives each discovered file in traversal order. Returning a
// non-nil error stops the walk and propagates the error to the caller.
type WalkFunc func(rec FileRecord) error

// Walk traverses the root in deterministic lexicographic order and calls fn
// for every non-hidden, non-ignored regular file. Ignored and hidden
// directories are pruned without descending. Directories that cannot be
// listed are recorded as warnings and skipped; they never abort the walk.
//
// A missing or unreadable root is fatal and reported before any file is
// yielded. Each call re-walks from scratch; warnings from a previous walk
// are discarded. The context is checked between entries so a run can be
// cancelled without stopping mid-file.
func (w *Walker) Walk(ctx context.Context, fn WalkFunc) error {
	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("walk root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("walk root %s is not a directory", w.root)
	}
	w.warnings = nil

	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			w.warnings = append(w.warnings, fmt.Sprintf("%s: %v", path, walkErr))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			w.warnings = append(w.warnings, fmt.Sprintf("%s: %v", path, err))
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			// Pruning ignored directories avoids walking into version
			// control internals and large excluded trees.
			if ignore.Hidden(rel) || w.ignores.Match(rel+"/") {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ignore.Hidden(rel) || w.ignores.Match(rel) {
			return nil
		}

		return fn(FileRecord{Path: path, Rel: rel})
	})
}

// Warnings returns the non-fatal problems encountered by the last Walk.
func (w *Walker) Warnings() []string {
	return w.warnings
}

// Root returns the walk root.
func (w *Walker) Root() string { return w.root }

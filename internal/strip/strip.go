// Package strip removes version-control metadata and documentation files
// from a checked-out working tree.
package strip

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Options controls which entries are removed
type Options struct {
	Patterns       []string          // glob patterns matched against base names
	PreserveReadme bool              // keep files named exactly README.md
	OnRemove       func(path string) // called after each successful removal
}

const readme = "README.md"

// ErrBadPattern is returned when a pattern is not a valid glob
var ErrBadPattern = doublestar.ErrBadPattern

// Match reports whether name matches any of the patterns
func Match(patterns []string, name string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Strip walks root and removes every entry whose name matches a pattern.
// Matched directories are removed with their contents and not descended
// into. root itself is never removed. The removed paths are returned in walk
// order; removal failures are collected and the walk continues.
func Strip(root string, opts Options) ([]string, error) {
	for _, pattern := range opts.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("pattern %q: %w", pattern, ErrBadPattern)
		}
	}

	var removed []string
	var errs []error
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			errs = append(errs, err)
			return nil
		}
		if path == root {
			return nil
		}

		name := d.Name()
		matched, _ := Match(opts.Patterns, name)
		if !matched {
			return nil
		}
		if opts.PreserveReadme && !d.IsDir() && name == readme {
			return nil
		}

		if d.IsDir() {
			if err := os.RemoveAll(path); err != nil {
				errs = append(errs, err)
				return filepath.SkipDir
			}
			removed = append(removed, path)
			if opts.OnRemove != nil {
				opts.OnRemove(path)
			}
			return filepath.SkipDir
		}

		if err := os.Remove(path); err != nil {
			errs = append(errs, err)
			return nil
		}
		removed = append(removed, path)
		if opts.OnRemove != nil {
			opts.OnRemove(path)
		}
		return nil
	})
	if walkErr != nil {
		return removed, fmt.Errorf("failed to walk %s: %w", root, walkErr)
	}
	return removed, errors.Join(errs...)
}

// Package discovery enumerates candidate files under a scan root.
package discovery

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// skipDirs are directory names excluded from traversal entirely (not just
// from results): version-control metadata and dependency caches. Pruning
// them bounds walk cost on large trees.
var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"target":       {},
	"vendor":       {},
}

// Options configures file discovery behavior.
type Options struct {
	// ExcludePatterns are glob patterns to exclude from results.
	// Supports doublestar patterns like "**/*.lock".
	ExcludePatterns []string
}

// Walk enumerates regular files under root, depth-first, in lexical order.
//
// A fresh call re-walks; traversal state is not shared. If the root itself
// is unreadable, Walk returns a nil slice and the error. An unreadable
// subtree is skipped but its error is still surfaced: Walk returns the
// paths it could discover together with the joined subtree errors, so
// callers can log and continue.
func Walk(root string, opts Options) ([]string, error) {
	var paths []string
	var walkErrs []error

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable subtree: record and move on.
			walkErrs = append(walkErrs, err)
			return nil
		}

		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if isExcluded(rel, opts.ExcludePatterns) {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, errors.Join(walkErrs...)
}

// isExcluded checks a root-relative path against the exclusion patterns,
// matching both the full relative path and the base name so simple patterns
// like "*.bak" work without a "**/" prefix.
//
// Note: doublestar.Match expects forward slashes as path separators even on
// Windows, so paths are normalized before matching.
func isExcluded(relPath string, excludePatterns []string) bool {
	relSlash := filepath.ToSlash(relPath)
	base := filepath.Base(relPath)

	for _, pattern := range excludePatterns {
		pattern = filepath.ToSlash(pattern)

		if matched, err := doublestar.Match(pattern, relSlash); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

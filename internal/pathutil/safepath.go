// Package pathutil resolves user-supplied file paths against a base directory.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEscapesBase is returned when a path resolves outside its base directory.
var ErrEscapesBase = errors.New("path escapes base directory")

// ResolveSafePath joins userPath onto baseDir (unless it is absolute), resolves
// symlinks, and verifies the result is still inside baseDir.
//
// The target file does not need to exist; the deepest existing ancestor is
// resolved and the remaining components are appended unchanged.
func ResolveSafePath(baseDir, userPath string) (string, error) {
	if strings.TrimSpace(userPath) == "" {
		return "", fmt.Errorf("path is empty or whitespace-only")
	}
	if strings.ContainsRune(userPath, 0) {
		return "", fmt.Errorf("path contains null byte")
	}

	candidate := userPath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}

	resolved, err := resolvePartial(filepath.Clean(candidate))
	if err != nil {
		return "", err
	}

	base, err := filepath.EvalSymlinks(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	rel, err := filepath.Rel(base, resolved)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrEscapesBase, userPath)
	}

	return resolved, nil
}

// resolvePartial evaluates symlinks on the longest existing prefix of path.
func resolvePartial(path string) (string, error) {
	var tail []string
	current := path
	for {
		if _, err := os.Lstat(current); err == nil {
			resolved, err := filepath.EvalSymlinks(current)
			if err != nil {
				return "", fmt.Errorf("failed to resolve symlinks: %w", err)
			}
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved, nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat %s: %w", current, err)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing parent directory found")
		}
		tail = append(tail, filepath.Base(current))
		current = parent
	}
}

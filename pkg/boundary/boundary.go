// Package boundary establishes and enforces the filesystem safety boundary.
//
// Resolve canonicalizes a candidate path once at session start; IsWithin is
// the single gate used both when selecting the working directory and again
// before dispatching every action.
package boundary

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve canonicalizes a path: expands a leading "~", makes it absolute,
// lexically cleans it, and resolves symlinks for the longest existing
// ancestor so a link inside the path cannot smuggle a target outside the
// boundary. Paths that do not exist yet resolve lexically.
func Resolve(path string) (string, error) {
	if path == "" {
		return "", os.ErrInvalid
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return resolveSymlinks(filepath.Clean(abs)), nil
}

// resolveSymlinks applies EvalSymlinks to the longest existing prefix of the
// path and re-joins the non-existing remainder lexically.
func resolveSymlinks(abs string) string {
	prefix := abs
	var rest []string
	for {
		if resolved, err := filepath.EvalSymlinks(prefix); err == nil {
			for i := len(rest) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, rest[i])
			}
			return resolved
		}
		parent := filepath.Dir(prefix)
		if parent == prefix {
			return abs
		}
		rest = append(rest, filepath.Base(prefix))
		prefix = parent
	}
}

// IsWithin reports whether candidate lies inside root (equal paths count as
// within). Both arguments are canonicalized with Resolve first. Malformed
// input, cross-volume paths, and resolution failures all yield false; this
// function never returns an error.
func IsWithin(candidate, root string) bool {
	absRoot, err := Resolve(root)
	if err != nil {
		return false
	}
	absCand, err := Resolve(candidate)
	if err != nil {
		return false
	}

	if absCand == absRoot {
		return true
	}

	sep := string(filepath.Separator)
	if !strings.HasSuffix(absRoot, sep) {
		absRoot += sep
	}
	return strings.HasPrefix(absCand, absRoot)
}

// Package pathutil provides the pure path-string operations the graph
// engine uses for node identity and scope checks.
package pathutil

import (
	"path/filepath"
	"strings"
)

// IsAbsolute reports whether p is an absolute path.
func IsAbsolute(p string) bool {
	return filepath.IsAbs(p)
}

// Canonicalize returns the canonical form of p: cleaned and
// slash-separated. It is idempotent, which matters because the result is
// used as a node identity key.
func Canonicalize(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// IsInside reports whether p lies under dir.
func IsInside(p, dir string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

// RelativeTo rewrites p relative to dir. If the relation cannot be
// computed, p is returned canonicalized but otherwise unchanged.
func RelativeTo(p, dir string) string {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return Canonicalize(p)
	}
	return filepath.ToSlash(rel)
}

// ExtensionOf returns the file extension of p, including the dot.
func ExtensionOf(p string) string {
	return filepath.Ext(p)
}

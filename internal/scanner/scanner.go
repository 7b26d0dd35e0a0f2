// Package scanner enumerates project source files by walking a directory
// tree and filtering with include/exclude globs.
package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Scan walks dir and returns the dir-relative slash paths of every file
// matching at least one include glob and no exclude glob, sorted.
//
// Patterns are doublestar globs matched against the dir-relative path. A
// pattern without a separator is matched at any depth, so "*.tl" finds
// sources in subdirectories too. Exclude always wins over include. An
// empty include list matches every file.
func Scan(dir string, include, exclude []string) ([]string, error) {
	inc := normalize(include)
	exc := normalize(exclude)

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if len(inc) > 0 && !matchAny(inc, rel) {
			return nil
		}
		if matchAny(exc, rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// normalize anchors separator-free patterns at every depth.
func normalize(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if !strings.Contains(p, "/") {
			p = "**/" + p
		}
		out = append(out, p)
	}
	return out
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

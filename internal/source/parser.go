// Package source extracts module references from source files. It is a
// lexical pass, not a full parse: the compiler owns syntax diagnostics,
// the graph only needs to know what a file requires.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// requirePattern matches the require forms the language accepts:
// require "a.b", require('a.b') and require("a.b").
var requirePattern = regexp.MustCompile(`require\s*\(?\s*["']([^"']+)["']`)

// Parser reads source files and returns the module references they
// declare. Root, when set, is joined in front of relative paths so the
// graph can work with project-relative identities.
type Parser struct {
	Root string
}

// Parse returns the module references declared in the file at path, in
// the order first written, without duplicates. An unreadable file is an
// error; the graph treats that as "not part of the buildable set".
func (p Parser) Parse(path string) ([]string, error) {
	if p.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(p.Root, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var refs []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		for _, m := range requirePattern.FindAllStringSubmatch(line, -1) {
			ref := m[1]
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

// Package resolver maps module references, as written in source, to
// concrete file paths using the project's search directories.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the resolution cache. A project rarely has more
// distinct requires than this; beyond it, LRU eviction is fine.
const cacheSize = 512

type cacheKey struct {
	ref          string
	preferSource bool
}

type cacheEntry struct {
	path string
	ok   bool
}

// Resolver probes a list of module directories for files matching a
// dotted module reference. Every file mentioning a module triggers its
// own lookup, so both hits and misses are cached.
type Resolver struct {
	dirs      []string
	sourceExt string
	outputExt string
	cache     *lru.Cache[cacheKey, cacheEntry]
}

// New creates a resolver that probes dirs in order, using sourceExt for
// source files and outputExt for compiled ones.
func New(dirs []string, sourceExt, outputExt string) *Resolver {
	cache, err := lru.New[cacheKey, cacheEntry](cacheSize)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Resolver{
		dirs:      dirs,
		sourceExt: sourceExt,
		outputExt: outputExt,
		cache:     cache,
	}
}

// Resolve maps ref (e.g. "json.decode") to a concrete file path (e.g.
// "src/json/decode.tl"). When preferSource is true the source extension
// is probed before the compiled one, otherwise the other way round.
// Absence is not an error; the second return is false when no candidate
// exists.
func (r *Resolver) Resolve(ref string, preferSource bool) (string, bool) {
	key := cacheKey{ref: ref, preferSource: preferSource}
	if e, ok := r.cache.Get(key); ok {
		return e.path, e.ok
	}

	exts := []string{r.sourceExt, r.outputExt}
	if !preferSource {
		exts[0], exts[1] = exts[1], exts[0]
	}

	base := strings.ReplaceAll(ref, ".", "/")
	for _, ext := range exts {
		for _, dir := range r.dirs {
			candidate := filepath.Join(dir, base+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				path := filepath.ToSlash(candidate)
				r.cache.Add(key, cacheEntry{path: path, ok: true})
				return path, true
			}
		}
	}

	r.cache.Add(key, cacheEntry{})
	return "", false
}

package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	return path
}

func TestResolvePrefersSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.tl")
	writeFile(t, dir, "util.lua")

	r := New([]string{dir}, ".tl", ".lua")

	path, ok := r.Resolve("util", true)
	require.True(t, ok)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "util.tl")), path)

	path, ok = r.Resolve("util", false)
	require.True(t, ok)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "util.lua")), path)
}

func TestResolveFallsBackToCompiled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "only.lua")

	r := New([]string{dir}, ".tl", ".lua")

	path, ok := r.Resolve("only", true)
	require.True(t, ok)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "only.lua")), path)
}

func TestResolveDottedRef(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "json/decode.tl")

	r := New([]string{dir}, ".tl", ".lua")

	path, ok := r.Resolve("json.decode", true)
	require.True(t, ok)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "json/decode.tl")), path)
}

func TestResolveProbesDirsInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, second, "mod.tl")
	writeFile(t, first, "mod.tl")

	r := New([]string{first, second}, ".tl", ".lua")

	path, ok := r.Resolve("mod", true)
	require.True(t, ok)
	assert.Equal(t, filepath.ToSlash(filepath.Join(first, "mod.tl")), path)
}

func TestResolveAbsenceIsNotAnError(t *testing.T) {
	r := New([]string{t.TempDir()}, ".tl", ".lua")

	path, ok := r.Resolve("missing", true)
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestResolveCachesLookups(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "cached.tl")

	r := New([]string{dir}, ".tl", ".lua")

	first, ok := r.Resolve("cached", true)
	require.True(t, ok)

	// A second lookup is served from the cache even after the file is
	// gone: resolution is per-build and the file set is fixed.
	require.NoError(t, os.Remove(target))
	second, ok := r.Resolve("cached", true)
	require.True(t, ok)
	assert.Equal(t, first, second)
}

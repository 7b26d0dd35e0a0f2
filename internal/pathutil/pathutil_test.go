package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeIsIdempotent(t *testing.T) {
	cases := []string{"./a.tl", "a/../b.tl", "sub//x.tl", "a.tl", "."}
	for _, in := range cases {
		once := Canonicalize(in)
		assert.Equal(t, once, Canonicalize(once), "input %q", in)
	}
}

func TestCanonicalize(t *testing.T) {
	assert.Equal(t, "a.tl", Canonicalize("./a.tl"))
	assert.Equal(t, "b.tl", Canonicalize("a/../b.tl"))
	assert.Equal(t, "sub/x.tl", Canonicalize("sub//x.tl"))
}

func TestIsInside(t *testing.T) {
	assert.True(t, IsInside("src/a.tl", "src"))
	assert.True(t, IsInside("src/sub/a.tl", "src"))
	assert.True(t, IsInside("a.tl", "."))
	assert.False(t, IsInside("lib/a.tl", "src"))
	assert.False(t, IsInside("srcother/a.tl", "src"))
	assert.False(t, IsInside("/abs/a.tl", "src"))
}

func TestRelativeTo(t *testing.T) {
	assert.Equal(t, "a.tl", RelativeTo("src/a.tl", "src"))
	assert.Equal(t, "sub/a.tl", RelativeTo("src/sub/a.tl", "src"))
	// Uncomputable relations fall back to the canonical input.
	assert.Equal(t, "a.tl", RelativeTo("a.tl", "/abs"))
}

func TestExtensionOf(t *testing.T) {
	assert.Equal(t, ".tl", ExtensionOf("a.tl"))
	assert.Equal(t, ".lua", ExtensionOf("sub/b.lua"))
	assert.Equal(t, "", ExtensionOf("Makefile"))
}

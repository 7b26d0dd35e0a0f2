package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkCompileIsIdempotent(t *testing.T) {
	g := chainGraph(t)
	c, _ := g.Find("c.tl")

	g.MarkCompile(c)
	a, _ := g.Find("a.tl")
	b, _ := g.Find("b.tl")
	require.Equal(t, MarkCompile, c.Mark())
	require.Equal(t, MarkTypecheck, b.Mark())
	require.Equal(t, MarkTypecheck, a.Mark())

	g.MarkCompile(c)
	assert.Equal(t, MarkCompile, c.Mark())
	assert.Equal(t, MarkTypecheck, b.Mark())
	assert.Equal(t, MarkTypecheck, a.Mark())
}

func TestMarkTypecheckNeverDowngrades(t *testing.T) {
	g := chainGraph(t)
	b, _ := g.Find("b.tl")

	g.MarkCompile(b)
	require.Equal(t, MarkCompile, b.Mark())

	g.MarkTypecheck(b)
	assert.Equal(t, MarkCompile, b.Mark())
}

func TestMarkCompileEscalatesTypecheck(t *testing.T) {
	g := chainGraph(t)
	b, _ := g.Find("b.tl")

	g.MarkTypecheck(b)
	require.Equal(t, MarkTypecheck, b.Mark())

	g.MarkCompile(b)
	assert.Equal(t, MarkCompile, b.Mark())
}

func TestMarkTypecheckStopsAtMarkedSubtree(t *testing.T) {
	g := chainGraph(t)
	a, _ := g.Find("a.tl")
	b, _ := g.Find("b.tl")
	c, _ := g.Find("c.tl")

	g.MarkTypecheck(a)
	require.Equal(t, MarkTypecheck, a.Mark())

	// Walking from c must not touch a's existing mark and still reaches b.
	g.MarkTypecheck(c)
	assert.Equal(t, MarkTypecheck, c.Mark())
	assert.Equal(t, MarkTypecheck, b.Mark())
	assert.Equal(t, MarkTypecheck, a.Mark())
}

func TestMarkCompileOnlyTypechecksDependents(t *testing.T) {
	// A node's own change forces its recompilation but only
	// re-verification of everything depending on it.
	g := New(
		stubParser{refs: map[string][]string{
			"main.tl": {"util"},
			"util.tl": nil,
		}},
		stubResolver{"util": "util.tl"},
	)
	ok, _ := g.Insert("main.tl", "")
	require.True(t, ok)

	g.MarkEach(func(path string) bool { return path == "util.tl" })

	compile := g.Marked(MarkCompile)
	require.Len(t, compile, 1)
	assert.Equal(t, "util.tl", compile[0].Input)

	typecheck := g.Marked(MarkTypecheck)
	require.Len(t, typecheck, 1)
	assert.Equal(t, "main.tl", typecheck[0].Input)
}

func TestMarkEachEscalatesAlongTheWay(t *testing.T) {
	g := chainGraph(t)

	// c is visited first (most dependents); marking it compiles c and
	// typechecks a and b. The predicate then matches a too, escalating it.
	g.MarkEach(func(path string) bool {
		return path == "c.tl" || path == "a.tl"
	})

	c, _ := g.Find("c.tl")
	b, _ := g.Find("b.tl")
	a, _ := g.Find("a.tl")
	assert.Equal(t, MarkCompile, c.Mark())
	assert.Equal(t, MarkTypecheck, b.Mark())
	assert.Equal(t, MarkCompile, a.Mark())
}

func TestMarkDiamondVisitsLinearly(t *testing.T) {
	// The closed dependents sets reach the same nodes through several
	// entry points; the no-op guard keeps the walk linear and the final
	// state single-valued.
	g := New(
		stubParser{refs: map[string][]string{
			"a.tl": {"b", "c"},
			"b.tl": {"d"},
			"c.tl": {"d"},
		}},
		stubResolver{"b": "b.tl", "c": "c.tl", "d": "d.tl"},
	)
	ok, _ := g.Insert("a.tl", "")
	require.True(t, ok)

	d, _ := g.Find("d.tl")
	g.MarkCompile(d)

	for _, path := range []string{"a.tl", "b.tl", "c.tl"} {
		n, _ := g.Find(path)
		assert.Equal(t, MarkTypecheck, n.Mark(), path)
	}
	assert.Equal(t, MarkCompile, d.Mark())
}

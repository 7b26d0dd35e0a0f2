package depgraph

import "sort"

// Mark is the per-node build decision for one planning pass. It only ever
// escalates: a node marked for compilation is never downgraded back to a
// type-check, and a marked node is never unmarked.
type Mark int

const (
	// MarkNone means the node needs no work this build.
	MarkNone Mark = iota
	// MarkTypecheck means the node's types must be re-verified but its
	// artifact is still valid.
	MarkTypecheck
	// MarkCompile means the node's artifact must be regenerated.
	MarkCompile
)

// String implements fmt.Stringer.
func (m Mark) String() string {
	switch m {
	case MarkTypecheck:
		return "typecheck"
	case MarkCompile:
		return "compile"
	default:
		return "none"
	}
}

// Node represents one source file in the dependency graph. Its identity
// is the canonical Input path; the graph stores nodes in a flat map keyed
// by it, so the inherently cyclic dependents relation is a set of keys
// rather than a structural object cycle.
type Node struct {
	// Input is the canonical path of the source file.
	Input string
	// Output is the file's eventual build artifact location. The graph
	// carries it for the driver; it plays no part in graph semantics.
	Output string
	// Modules maps each module reference, as written in the source, to
	// the resolved path of that dependency. Unresolved references have no
	// entry.
	Modules map[string]string

	mark Mark
	// dependents is the transitively closed set of nodes that depend on
	// this one, directly or indirectly. Maintained by RebuildDependents.
	dependents map[string]*Node
}

// Mark returns the node's current build decision.
func (n *Node) Mark() Mark {
	return n.mark
}

// Dependents returns the canonical paths of every node that transitively
// depends on this one, sorted.
func (n *Node) Dependents() []string {
	paths := make([]string, 0, len(n.dependents))
	for p := range n.dependents {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

package depgraph

import "sort"

// DetectCycles returns the canonical paths of every node involved in a
// circular dependency, sorted for reproducibility. Because the dependents
// relation is maintained as a transitive closure, a node is on a cycle of
// any length exactly when it appears in its own dependents set, so a
// single membership test per node suffices.
//
// Cycles are detected, never repaired: the graph stays populated and it
// is the caller's responsibility to refuse to build from it.
func (g *Graph) DetectCycles() []string {
	var cycles []string
	for key, n := range g.nodes {
		if _, ok := n.dependents[key]; ok {
			cycles = append(cycles, key)
		}
	}
	sort.Strings(cycles)
	return cycles
}

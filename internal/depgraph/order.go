package depgraph

import "sort"

// dependentCount weighs a node by summing 1 + the weight of every direct
// entry in its dependents set. The set is already a transitive closure,
// so on diamond shapes a node reachable through several chains is counted
// once per chain: the result is an impact weight over dependency paths,
// not a distinct-node count, and in general exceeds len(dependents).
// Known quirk, kept on purpose — the planner has always ordered output by
// this weight and swapping in a set-size count would reshuffle plans.
func (g *Graph) dependentCount(n *Node, memo map[*Node]int) int {
	if c, ok := memo[n]; ok {
		return c
	}
	// Pre-seeding terminates the walk if a cycle slipped past detection.
	memo[n] = 0
	total := 0
	for _, d := range n.dependents {
		total += 1 + g.dependentCount(d, memo)
	}
	memo[n] = total
	return total
}

// Ordered returns every node in the graph exactly once, most-depended-on
// first. Counts are strictly non-increasing across the sequence; ties
// break on canonical path ascending so plans are reproducible.
func (g *Graph) Ordered() []*Node {
	memo := make(map[*Node]int, len(g.nodes))
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
		g.dependentCount(n, memo)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if memo[nodes[i]] != memo[nodes[j]] {
			return memo[nodes[i]] > memo[nodes[j]]
		}
		return nodes[i].Input < nodes[j].Input
	})
	return nodes
}

// Marked returns the nodes whose mark equals m exactly, in the same order
// Ordered produces.
func (g *Graph) Marked(m Mark) []*Node {
	var out []*Node
	for _, n := range g.Ordered() {
		if n.mark == m {
			out = append(out, n)
		}
	}
	return out
}

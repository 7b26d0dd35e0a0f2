package depgraph

// MarkTypecheck marks n for re-type-checking and propagates the same mark
// through its dependents. A node with any existing mark is left alone:
// compile never downgrades, and an already-typecheck node's subtree has
// already been walked. That early return is load-bearing — dependents
// sets are transitively closed, so the walk reaches the same nodes
// through many entry points and would otherwise revisit most of the
// graph.
//
// Marking assumes the graph has passed cycle detection; the visited set
// merely bounds the walk if it has not.
func (g *Graph) MarkTypecheck(n *Node) {
	g.markTypecheck(n, make(map[*Node]struct{}))
}

func (g *Graph) markTypecheck(n *Node, seen map[*Node]struct{}) {
	if n.mark != MarkNone {
		return
	}
	if _, ok := seen[n]; ok {
		return
	}
	seen[n] = struct{}{}
	n.mark = MarkTypecheck
	for _, d := range n.dependents {
		g.markTypecheck(d, seen)
	}
}

// MarkCompile marks n for full recompilation. A node's own change forces
// regeneration of its artifact but only re-verification of everything
// depending on it, so dependents receive the weaker typecheck mark. An
// existing typecheck mark on n is escalated; only an existing compile
// mark makes this a no-op.
func (g *Graph) MarkCompile(n *Node) {
	if n.mark == MarkCompile {
		return
	}
	n.mark = MarkCompile
	seen := make(map[*Node]struct{})
	for _, d := range n.dependents {
		g.markTypecheck(d, seen)
	}
}

// MarkEach walks the graph in traversal order and calls MarkCompile on
// every node whose input path satisfies pred. pred must be pure; it is
// evaluated once per node.
func (g *Graph) MarkEach(pred func(path string) bool) {
	for _, n := range g.Ordered() {
		if pred(n.Input) {
			g.MarkCompile(n)
		}
	}
}

package depgraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/tlbuild/internal/ctxlog"
	"github.com/vk/tlbuild/internal/pathutil"
	"github.com/vk/tlbuild/internal/scanner"
)

// Parser extracts the module references a source file declares, in the
// order written. A parse failure is not fatal to the graph: the file is
// simply excluded, and the failure detail is the compiler pipeline's
// concern.
type Parser interface {
	Parse(path string) ([]string, error)
}

// Resolver maps a module reference string to a concrete file path using
// the project's search rules. Absence is not an error.
type Resolver interface {
	Resolve(ref string, preferSource bool) (string, bool)
}

// Option configures a Graph at construction time.
type Option func(*Graph)

// WithSourceExtension sets the file extension that identifies a source
// file. Files with any other extension never become nodes. Defaults to
// ".tl".
func WithSourceExtension(ext string) Option {
	return func(g *Graph) { g.srcExt = ext }
}

// WithOutputMapper sets how a node's artifact path derives from its input
// path. The default swaps the source extension for ".lua" in place.
func WithOutputMapper(fn func(input string) string) Option {
	return func(g *Graph) { g.outputFor = fn }
}

// Graph is the dependency graph for one build run. It is created empty,
// populated by insertions, queried, and discarded; it is never shared
// across builds or goroutines, so it carries no locking.
type Graph struct {
	nodes     map[string]*Node
	parser    Parser
	resolver  Resolver
	srcExt    string
	outputFor func(string) string
}

// New creates an empty graph that discovers dependencies through p and r.
func New(p Parser, r Resolver, opts ...Option) *Graph {
	g := &Graph{
		nodes:    make(map[string]*Node),
		parser:   p,
		resolver: r,
		srcExt:   ".tl",
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.outputFor == nil {
		g.outputFor = func(input string) string {
			return strings.TrimSuffix(input, g.srcExt) + ".lua"
		}
	}
	return g
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Find looks up the node for path, canonicalizing first.
func (g *Graph) Find(path string) (*Node, bool) {
	n, ok := g.nodes[pathutil.Canonicalize(path)]
	return n, ok
}

// Insert adds path and its transitive module dependencies to the graph,
// rebuilds the dependents closure, and reruns cycle detection. It returns
// ok=false together with the involved files when any cycle exists; the
// graph stays populated either way and the caller decides whether to
// proceed.
//
// scopeDir, when non-empty, bounds recursive expansion: resolved
// dependencies inside it are recorded and recursed on scope-relative,
// dependencies outside it are recorded but not expanded. Callers using a
// scope directory should pass path relative to it so node identities stay
// uniform.
func (g *Graph) Insert(path, scopeDir string) (bool, []string) {
	g.insert(path, scopeDir)
	g.RebuildDependents()
	cycles := g.DetectCycles()
	return len(cycles) == 0, cycles
}

// insert is the recursive discovery step. Every skip is silent: absolute
// paths are outside the project's concern, known paths are already
// processed, foreign extensions are not buildable, and unparseable files
// are reported by a later compiler stage rather than here. A failure deep
// in the recursion therefore cancels only that one branch.
func (g *Graph) insert(path, scopeDir string) {
	if pathutil.IsAbsolute(path) {
		return
	}
	path = pathutil.Canonicalize(path)
	if _, ok := g.nodes[path]; ok {
		return
	}
	if pathutil.ExtensionOf(path) != g.srcExt {
		return
	}
	refs, err := g.parser.Parse(path)
	if err != nil {
		return
	}

	n := &Node{
		Input:      path,
		Output:     g.outputFor(path),
		Modules:    make(map[string]string),
		dependents: make(map[string]*Node),
	}
	// Register before recursing so self-referential and mutually
	// referential requires terminate on the existence check above.
	g.nodes[path] = n

	for _, ref := range refs {
		resolved, ok := g.resolver.Resolve(ref, true)
		if !ok {
			continue
		}
		if scopeDir != "" {
			if !pathutil.IsInside(resolved, scopeDir) {
				// Referenced but out of scope for this build: keep the
				// reference for diagnostics, don't expand it.
				n.Modules[ref] = pathutil.Canonicalize(resolved)
				continue
			}
			resolved = pathutil.RelativeTo(resolved, scopeDir)
		}
		resolved = pathutil.Canonicalize(resolved)
		n.Modules[ref] = resolved
		g.insert(resolved, scopeDir)
	}
}

// RebuildDependents re-derives the transitive dependents relation for the
// entire graph: for every node N and every resolved module path M it
// records, N and N's own dependents are merged into the owner of M's set.
// The pass is idempotent and only ever grows the sets, so it is repeated
// until a full sweep adds nothing, at which point the relation is the
// full transitive closure regardless of map iteration order.
func (g *Graph) RebuildDependents() {
	for changed := true; changed; {
		changed = false
		for _, n := range g.nodes {
			for _, dep := range n.Modules {
				owner, ok := g.nodes[dep]
				if !ok {
					continue
				}
				if _, ok := owner.dependents[n.Input]; !ok {
					owner.dependents[n.Input] = n
					changed = true
				}
				for key, d := range n.dependents {
					if _, ok := owner.dependents[key]; !ok {
						owner.dependents[key] = d
						changed = true
					}
				}
			}
		}
	}
}

// FromDir builds a fresh graph from every file under dir matching the
// include globs and not matching the exclude globs, inserting each with
// dir as the scope directory. Node identities are dir-relative. The
// returned cycle list is non-nil whenever any inserted file participates
// in a cycle; err reports scanner I/O failure only, in which case no
// graph is returned.
func FromDir(ctx context.Context, p Parser, r Resolver, dir string, include, exclude []string, opts ...Option) (*Graph, []string, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := scanner.Scan(dir, include, exclude)
	if err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	logger.Debug("Source scan complete.", "dir", dir, "file_count", len(files))

	g := New(p, r, opts...)
	for _, f := range files {
		g.insert(f, dir)
	}
	g.RebuildDependents()
	logger.Debug("Dependents closure rebuilt.", "node_count", g.Len())
	return g, g.DetectCycles(), nil
}

// Package depgraph is the dependency-graph engine behind the build
// planner. It discovers a project's module dependencies through Parser
// and Resolver collaborators, maintains the dependents relation as a
// transitive closure, detects circular dependencies, and computes an
// incremental build's work set through a two-level typecheck/compile
// marking pass.
//
// A Graph belongs to exactly one build run: construct it, insert files
// (individually or through FromDir), check the cycle report, mark, read
// the plan back with Ordered and Marked, and throw it away. Nothing here
// is safe for concurrent use and nothing here performs I/O beyond what
// the collaborators do.
package depgraph

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/tlbuild/internal/ctxlog"
	"github.com/vk/tlbuild/internal/depgraph"
	"github.com/vk/tlbuild/internal/pathutil"
	"github.com/vk/tlbuild/internal/resolver"
	"github.com/vk/tlbuild/internal/source"
)

// Run executes one planning pass: build the dependency graph, refuse on
// cycles, mark the work set, and print the plan.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	srcDir := filepath.Join(a.config.ProjectDir, a.project.SourceDir)
	outDir := filepath.Join(a.config.ProjectDir, a.project.OutputDir)

	moduleDirs := []string{srcDir}
	for _, d := range a.project.ModuleDirs {
		moduleDirs = append(moduleDirs, filepath.Join(a.config.ProjectDir, d))
	}

	parser := source.Parser{Root: srcDir}
	res := resolver.New(moduleDirs, a.project.SourceExtension, a.project.OutputExtension)

	outputFor := func(input string) string {
		rel := strings.TrimSuffix(input, a.project.SourceExtension) + a.project.OutputExtension
		return filepath.ToSlash(filepath.Join(outDir, rel))
	}

	a.logger.Debug("Building dependency graph from project sources...", "source_dir", srcDir)
	g, cycles, err := depgraph.FromDir(ctx, parser, res, srcDir, a.project.Include, a.project.Exclude,
		depgraph.WithSourceExtension(a.project.SourceExtension),
		depgraph.WithOutputMapper(outputFor),
	)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.logger.Debug("Dependency graph built.", "node_count", g.Len())

	if len(cycles) > 0 {
		return fmt.Errorf("circular dependency between: %s", strings.Join(cycles, ", "))
	}

	g.MarkEach(a.selector(g, srcDir))

	compile := g.Marked(depgraph.MarkCompile)
	typecheck := g.Marked(depgraph.MarkTypecheck)
	a.logger.Info("Plan computed.", "compile", len(compile), "typecheck", len(typecheck))

	a.printPlan(compile, typecheck)
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) printPlan(compile, typecheck []*depgraph.Node) {
	if len(compile) == 0 && len(typecheck) == 0 {
		fmt.Fprintln(a.outW, "nothing to do")
		return
	}
	if len(compile) > 0 {
		fmt.Fprintf(a.outW, "compile (%d):\n", len(compile))
		for _, n := range compile {
			fmt.Fprintf(a.outW, "  %s -> %s\n", n.Input, n.Output)
		}
	}
	if len(typecheck) > 0 {
		fmt.Fprintf(a.outW, "typecheck (%d):\n", len(typecheck))
		for _, n := range typecheck {
			fmt.Fprintf(a.outW, "  %s\n", n.Input)
		}
	}
}

// selector picks the predicate that decides which files count as changed:
// everything with -all, the explicit target list when files were named on
// the command line, otherwise artifact staleness.
func (a *App) selector(g *depgraph.Graph, srcDir string) func(string) bool {
	if a.config.All {
		return func(string) bool { return true }
	}
	if len(a.config.Targets) > 0 {
		targets := make(map[string]struct{}, len(a.config.Targets))
		for _, t := range a.config.Targets {
			targets[pathutil.Canonicalize(t)] = struct{}{}
		}
		return func(path string) bool {
			_, ok := targets[path]
			return ok
		}
	}
	return func(path string) bool {
		return a.stale(g, srcDir, path)
	}
}

// stale reports whether path's artifact is missing or older than its
// source file.
func (a *App) stale(g *depgraph.Graph, srcDir, path string) bool {
	n, ok := g.Find(path)
	if !ok {
		return false
	}
	srcInfo, err := os.Stat(filepath.Join(srcDir, path))
	if err != nil {
		return false
	}
	outInfo, err := os.Stat(n.Output)
	if err != nil {
		return true
	}
	return srcInfo.ModTime().After(outInfo.ModTime())
}

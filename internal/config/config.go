package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tlbuild/internal/ctxlog"
)

// Project is the decoded project file. All attributes are optional;
// anything left blank falls back to Default values.
type Project struct {
	SourceDir       string   `hcl:"source_dir,optional"`
	OutputDir       string   `hcl:"output_dir,optional"`
	ModuleDirs      []string `hcl:"module_dirs,optional"`
	Include         []string `hcl:"include,optional"`
	Exclude         []string `hcl:"exclude,optional"`
	SourceExtension string   `hcl:"source_extension,optional"`
	OutputExtension string   `hcl:"output_extension,optional"`
}

// Default returns the project settings used when no project file exists.
func Default() *Project {
	return &Project{
		SourceDir:       ".",
		OutputDir:       ".",
		Include:         []string{"**/*.tl"},
		SourceExtension: ".tl",
		OutputExtension: ".lua",
	}
}

// Load reads and decodes the project file at path. Attribute expressions
// may reference environment variables as env.NAME.
func Load(ctx context.Context, path string) (*Project, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, diags)
	}

	var project Project
	diags = gohcl.DecodeBody(file.Body, evalContext(), &project)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode project file %s: %w", path, diags)
	}

	applyDefaults(&project)
	logger.Debug("Project file loaded.",
		"path", path,
		"source_dir", project.SourceDir,
		"output_dir", project.OutputDir,
		"include", project.Include,
		"exclude", project.Exclude,
	)
	return &project, nil
}

// evalContext exposes the process environment to project expressions.
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = cty.StringVal(v)
		}
	}
	vars := make(map[string]cty.Value)
	if len(env) > 0 {
		vars["env"] = cty.ObjectVal(env)
	}
	return &hcl.EvalContext{Variables: vars}
}

func applyDefaults(p *Project) {
	defaults := Default()
	if p.SourceDir == "" {
		p.SourceDir = defaults.SourceDir
	}
	if p.OutputDir == "" {
		p.OutputDir = defaults.OutputDir
	}
	if p.SourceExtension == "" {
		p.SourceExtension = defaults.SourceExtension
	}
	if p.OutputExtension == "" {
		p.OutputExtension = defaults.OutputExtension
	}
	if len(p.Include) == 0 {
		p.Include = []string{"**/*" + p.SourceExtension}
	}
}

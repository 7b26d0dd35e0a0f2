package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectDir  string   // directory holding the project file and sources
	ProjectFile string   // explicit project file path; empty means ProjectDir/tlbuild.hcl
	Targets     []string // source files to rebuild explicitly; empty means "whatever is stale"
	All         bool     // plan a full rebuild regardless of staleness

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectDir == "" {
		return nil, errors.New("ProjectDir is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}

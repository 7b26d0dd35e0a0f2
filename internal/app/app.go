package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vk/tlbuild/internal/config"
	"github.com/vk/tlbuild/internal/ctxlog"
)

// App encapsulates one planner run: configuration, project settings,
// logger, and output sink.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	project *config.Project
}

// NewApp is the constructor for the main application. It configures an
// isolated logger and loads the project file, falling back to defaults
// when the project directory has none.
func NewApp(outW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	projectPath := appConfig.ProjectFile
	if projectPath == "" {
		projectPath = filepath.Join(appConfig.ProjectDir, "tlbuild.hcl")
	}

	var project *config.Project
	if _, err := os.Stat(projectPath); err == nil {
		project, err = config.Load(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	} else if appConfig.ProjectFile != "" {
		// An explicitly named project file must exist.
		return nil, fmt.Errorf("project file %s: %w", projectPath, err)
	} else {
		logger.Debug("No project file found, using defaults.", "path", projectPath)
		project = config.Default()
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		project: project,
	}, nil
}

// Project returns the loaded project settings. This is primarily for testing.
func (a *App) Project() *config.Project {
	return a.project
}

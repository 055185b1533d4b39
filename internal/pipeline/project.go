package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/ctxlog"
)

// Project is everything a task needs to know about the package it builds.
type Project struct {
	Dir     string
	Config  *config.BuildConfig
	Package *config.PackageMetadata
	// Babel is the project babel configuration, nil when there is none.
	Babel *config.BabelConfig
	// Typescript is the installed compiler, nil when it is not installed.
	Typescript *config.Dependency
}

// LoadProject reads the build configuration, package data and compiler
// setup of the project in dir.
func LoadProject(ctx context.Context, dir string, sources ...config.Source) (*Project, error) {
	logger := ctxlog.FromContext(ctx)

	cfg, err := config.ReadPackerConfig(ctx, dir, sources...)
	if err != nil {
		return nil, err
	}
	pkg, err := config.ReadPackageData(dir)
	if err != nil {
		return nil, err
	}

	p := &Project{Dir: dir, Config: cfg, Package: pkg}

	switch cfg.Compiler.ScriptPreprocessor {
	case config.ScriptTypescript:
		ts, err := config.RequireDependency(dir, "typescript")
		var missing *config.DependencyMissingError
		switch {
		case errors.As(err, &missing):
			logger.Debug("typescript is not installed in the project", "dir", dir)
		case err != nil:
			return nil, fmt.Errorf("resolving typescript: %w", err)
		default:
			p.Typescript = ts
		}
	case config.ScriptBabel:
		babel, found, err := config.ReadBabelConfig(dir)
		if err != nil {
			return nil, err
		}
		if found {
			p.Babel = babel
		}
	}

	logger.Debug("project loaded", "config", cfg.Path, "package", pkg.Name, "version", pkg.Version)
	return p, nil
}

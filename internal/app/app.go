package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/pipeline"
	"github.com/specialistvlad/packer/internal/registry"
	"github.com/specialistvlad/packer/internal/rollup"
	"github.com/specialistvlad/packer/internal/shell"
	"github.com/specialistvlad/packer/internal/sources"
)

// Deps are the external collaborators of an App. Zero fields get the real
// implementations.
type Deps struct {
	Runner  shell.Runner
	Bundler pipeline.WatchBundler
	Modules []registry.Module
}

// App encapsulates the application's dependencies, options, and lifecycle.
type App struct {
	logger   *slog.Logger
	registry *registry.Registry
	env      *registry.Env
}

// NewApp is the constructor for the main application. Logs go to logW and
// command output such as the config task to outW.
func NewApp(outW, logW io.Writer, opts *Options, deps Deps) (*App, error) {
	logger := newLogger(opts.LogLevel, opts.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if deps.Runner == nil {
		deps.Runner = shell.NewExec()
	}
	if deps.Bundler == nil {
		deps.Bundler = rollup.NewCLI(opts.Dir, deps.Runner)
	}
	if len(deps.Modules) == 0 {
		deps.Modules = coreModules
	}

	reg := registry.New()
	for _, mod := range deps.Modules {
		mod.Register(reg)
	}
	logger.Debug("All task modules registered.", "count", len(deps.Modules))

	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}

	return &App{
		logger:   logger,
		registry: reg,
		env: &registry.Env{
			Dir:      opts.Dir,
			Sources:  sources.Default(),
			Coverage: opts.Coverage,
			Watch:    opts.Watch,
			Bundler:  deps.Bundler,
			Runner:   deps.Runner,
			Out:      outW,
		},
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Run executes the named task.
func (a *App) Run(ctx context.Context, task string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "task", task, "dir", a.env.Dir)

	if err := a.registry.Run(ctx, task, a.env); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.", "task", task)
	return nil
}

// Package watch registers the development task: a live reloading dev server
// restarted whenever the project configuration changes.
package watch

import (
	"context"
	"errors"
	"slices"

	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/pipeline"
	"github.com/specialistvlad/packer/internal/registry"
	cfgwatch "github.com/specialistvlad/packer/internal/watch"
	"golang.org/x/sync/errgroup"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the "watch" task.
func (m *Module) Register(r *registry.Registry) {
	r.Register("watch", Watch)
}

var (
	// errRestart cancels a rollup run because the configuration changed.
	errRestart     = errors.New("configuration changed")
	errWatchExited = errors.New("rollup watch exited")
)

// Watch serves the development bundle until ctx is cancelled. Edits of the
// packer config or package.json re-read the project and restart rollup.
func Watch(ctx context.Context, env *registry.Env) error {
	logger := ctxlog.FromContext(ctx)

	var names []string
	for _, s := range env.Sources {
		names = append(names, s.File)
	}
	names = append(names, "package.json")
	watcher, err := cfgwatch.New(env.Dir, slices.Compact(names), cfgwatch.DefaultDebounce)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return watcher.Run(ctx) })
	g.Go(func() error {
		for first := true; ; first = false {
			project, b, err := load(ctx, env)
			if err != nil {
				if first {
					return err
				}
				logger.Error("configuration rejected, waiting for the next change", "error", err)
				select {
				case <-watcher.Changes():
					logger.Info("configuration changed, restarting")
					continue
				case <-ctx.Done():
					return nil
				}
			}
			err = serve(ctx, env, project, b, watcher.Changes())
			if !errors.Is(err, errRestart) {
				return err
			}
			logger.Info("configuration changed, restarting")
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// load reads the project and assembles its watch bundle.
func load(ctx context.Context, env *registry.Env) (*pipeline.Project, *pipeline.Bundle, error) {
	project, err := pipeline.LoadProject(ctx, env.Dir, env.Sources...)
	if err != nil {
		return nil, nil, err
	}
	b, err := pipeline.AssembleWatch(project, ctxlog.FromContext(ctx))
	if err != nil {
		return nil, nil, err
	}
	return project, b, nil
}

// serve runs one rollup watch session. It returns errRestart when a
// configuration change arrives and nil when ctx is cancelled.
func serve(ctx context.Context, env *registry.Env, project *pipeline.Project, b *pipeline.Bundle, changes <-chan string) error {
	logger := ctxlog.FromContext(ctx)
	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	done := make(chan error, 1)
	go func() { done <- env.Bundler.Watch(runCtx, b) }()

	logger.Info("dev server starting", "port", project.Config.Watch.Port, "output", b.Outputs[0].File)
	select {
	case name := <-changes:
		logger.Debug("watched file changed", "file", name)
		cancel(errRestart)
		<-done
		return errRestart
	case err := <-done:
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			err = errWatchExited
		}
		return err
	case <-ctx.Done():
		<-done
		return nil
	}
}

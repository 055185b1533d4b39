// Package test registers the task running the project test suites in
// karma.
package test

import (
	"context"
	"path/filepath"

	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/fsutil"
	"github.com/specialistvlad/packer/internal/karma"
	"github.com/specialistvlad/packer/internal/pipeline"
	"github.com/specialistvlad/packer/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the "test" task.
func (m *Module) Register(r *registry.Registry) {
	r.Register("test", Test)
}

// Test runs the spec files of the project through karma.
func Test(ctx context.Context, env *registry.Env) error {
	logger := ctxlog.FromContext(ctx)
	project, err := pipeline.LoadProject(ctx, env.Dir, env.Sources...)
	if err != nil {
		return err
	}

	cfg := project.Config
	suites, err := fsutil.FindFilesByExtension(filepath.Join(env.Dir, cfg.Source), ".spec."+cfg.Compiler.ScriptExtension())
	if err != nil {
		return err
	}
	if len(suites) == 0 {
		logger.Warn("no test suites found", "source", cfg.Source)
	}

	plan, err := karma.NewPlan(ctx, project, karma.Options{Coverage: env.Coverage, Watch: env.Watch})
	if err != nil {
		return err
	}
	logger.Debug("test plan ready", "suites", len(suites), "plugins", len(plan.Plugins))
	return karma.Run(ctx, env.Runner, env.Dir, plan)
}

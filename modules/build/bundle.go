package build

import (
	"context"

	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/meta"
	"github.com/specialistvlad/packer/internal/pipeline"
	"github.com/specialistvlad/packer/internal/registry"
	"github.com/specialistvlad/packer/internal/variant"
	"golang.org/x/sync/errgroup"
)

// Bundle builds every requested variant. With concurrentBuild the variants
// are bundled at the same time and all of them settle before the first
// failure is reported; otherwise they run in order and stop at the first
// failure.
func Bundle(ctx context.Context, env *registry.Env) error {
	logger := ctxlog.FromContext(ctx)
	project, err := pipeline.LoadProject(ctx, env.Dir, env.Sources...)
	if err != nil {
		return err
	}
	banner := meta.Banner(project.Config, project.Package)

	var bundles []*pipeline.Bundle
	for _, v := range variant.Requested(project.Config) {
		b, err := pipeline.Assemble(project, v, banner, logger)
		if err != nil {
			return err
		}
		bundles = append(bundles, b)
	}

	if !project.Config.Compiler.ConcurrentBuild {
		for _, b := range bundles {
			if err := pipeline.BundleBuild(ctx, env.Bundler, b, logger); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	for _, b := range bundles {
		g.Go(func() error {
			return pipeline.BundleBuild(ctx, env.Bundler, b, logger)
		})
	}
	return g.Wait()
}

package build

import (
	"context"
	"path/filepath"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/fsutil"
	"github.com/specialistvlad/packer/internal/registry"
)

// Clean removes the dist and tmp directories of the project.
func Clean(ctx context.Context, env *registry.Env) error {
	logger := ctxlog.FromContext(ctx)
	cfg, err := config.ReadPackerConfig(ctx, env.Dir, env.Sources...)
	if err != nil {
		return err
	}
	for _, dir := range []string{cfg.Dist, cfg.Tmp} {
		target := filepath.Join(env.Dir, dir)
		if err := fsutil.Clean(env.Dir, target); err != nil {
			return err
		}
		logger.Debug("removed", "dir", target)
	}
	return nil
}

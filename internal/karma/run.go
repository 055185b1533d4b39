package karma

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/fsutil"
	"github.com/specialistvlad/packer/internal/rollup"
	"github.com/specialistvlad/packer/internal/shell"
)

// Run writes the karma configuration of plan into the project in dir and
// starts karma. A failing suite is reported as the runner error.
func Run(ctx context.Context, runner shell.Runner, dir string, plan *Plan) error {
	src, err := RenderConfig(plan)
	if err != nil {
		return err
	}
	rel := filepath.Join(rollup.ConfigDir, ConfigName)
	if err := fsutil.WriteFileMode(filepath.Join(dir, rel), src, 0o644); err != nil {
		return fmt.Errorf("writing karma config: %w", err)
	}

	args := []string{"start", rel}
	if !plan.Options.Watch {
		args = append(args, "--single-run")
	}
	ctxlog.FromContext(ctx).Debug("starting karma", "config", rel, "framework", plan.Framework, "coverage", plan.Options.Coverage)
	return runner.Run(ctx, dir, "karma", args...)
}

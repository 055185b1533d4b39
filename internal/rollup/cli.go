package rollup

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/fsutil"
	"github.com/specialistvlad/packer/internal/pipeline"
	"github.com/specialistvlad/packer/internal/shell"
)

// ConfigDir is the project directory holding generated configurations.
const ConfigDir = ".packer"

// CLI bundles by running the rollup command of the project.
type CLI struct {
	dir    string
	runner shell.Runner
}

// NewCLI returns a bundler for the project in dir.
func NewCLI(dir string, runner shell.Runner) *CLI {
	return &CLI{dir: dir, runner: runner}
}

// WriteConfig renders b into the project config directory and returns the
// path of the generated file relative to the project.
func (c *CLI) WriteConfig(b *pipeline.Bundle) (string, error) {
	src, err := Render(b)
	if err != nil {
		return "", err
	}
	rel := filepath.Join(ConfigDir, ConfigName(b))
	if err := fsutil.WriteFileMode(filepath.Join(c.dir, rel), src, 0o644); err != nil {
		return "", fmt.Errorf("writing rollup config: %w", err)
	}
	return rel, nil
}

// Bundle runs a single rollup build of b.
func (c *CLI) Bundle(ctx context.Context, b *pipeline.Bundle) error {
	file, err := c.WriteConfig(b)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("rollup config written", "variant", b.Variant, "file", file)
	return c.runner.Run(ctx, c.dir, "rollup", "-c", file)
}

// Watch runs rollup in watch mode until ctx is cancelled or rollup exits.
func (c *CLI) Watch(ctx context.Context, b *pipeline.Bundle) error {
	file, err := c.WriteConfig(b)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("rollup watch config written", "file", file)
	return c.runner.Run(ctx, c.dir, "rollup", "-c", file, "-w")
}

package build

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aymerick/raymond"
	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/fsutil"
	"github.com/specialistvlad/packer/internal/registry"
	"github.com/specialistvlad/packer/internal/rollup"
)

//go:embed templates/bin.hbs
var defaultBinTemplate string

// BinTemplate is the project launcher template, relative to the project.
var BinTemplate = filepath.Join(rollup.ConfigDir, "bin.hbs")

// CopyBin renders the CLI launcher into dist/bin for node-cli projects.
// Other build modes have no launcher and the task does nothing.
func CopyBin(ctx context.Context, env *registry.Env) error {
	logger := ctxlog.FromContext(ctx)
	cfg, err := config.ReadPackerConfig(ctx, env.Dir, env.Sources...)
	if err != nil {
		return err
	}
	if cfg.Compiler.BuildMode != config.BuildModeNodeCLI {
		logger.Debug("not a cli project: bin copy abort")
		return nil
	}
	pkg, err := config.ReadPackageData(env.Dir)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(filepath.Join(env.Dir, BinTemplate))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("using the built-in launcher template")
		source = []byte(defaultBinTemplate)
	case err != nil:
		return fmt.Errorf("reading launcher template: %w", err)
	}

	out, err := RenderBin(string(source), pkg.Name, cfg.Output.Format)
	if err != nil {
		return err
	}

	target := filepath.Join(env.Dir, cfg.Dist, "bin", pkg.Name+".js")
	if err := fsutil.WriteFileMode(target, []byte(out), 0o755); err != nil {
		return err
	}
	logger.Debug("launcher written", "file", target)
	return nil
}

// RenderBin renders a handlebars launcher template.
func RenderBin(source, packageName, format string) (string, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return "", fmt.Errorf("parsing launcher template: %w", err)
	}
	out, err := tpl.Exec(map[string]string{
		"packageName": packageName,
		"format":      format,
	})
	if err != nil {
		return "", fmt.Errorf("rendering launcher template: %w", err)
	}
	return out, nil
}

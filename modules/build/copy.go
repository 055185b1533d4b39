package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/fsutil"
	"github.com/specialistvlad/packer/internal/meta"
	"github.com/specialistvlad/packer/internal/registry"
)

// CopySourceMissingError reports a copy entry that matches no file.
type CopySourceMissingError struct {
	Entry string
}

func (e *CopySourceMissingError) Error() string {
	return fmt.Sprintf("copy source missing: %s", e.Entry)
}

// CopyEssentials writes the distributed package.json and copies the files
// listed in copy into dist.
func CopyEssentials(ctx context.Context, env *registry.Env) error {
	logger := ctxlog.FromContext(ctx)
	cfg, err := config.ReadPackerConfig(ctx, env.Dir, env.Sources...)
	if err != nil {
		return err
	}
	pkg, err := config.ReadPackageData(env.Dir)
	if err != nil {
		return err
	}

	dist := filepath.Join(env.Dir, cfg.Dist)
	data, err := meta.MarshalTargetPackage(meta.BuildTargetPackage(cfg, pkg))
	if err != nil {
		return fmt.Errorf("encoding target package: %w", err)
	}
	if err := fsutil.WriteFileMode(filepath.Join(dist, "package.json"), data, 0o644); err != nil {
		return err
	}
	logger.Debug("package.json written", "dir", dist, "mode", cfg.Output.DependencyMapMode)

	for _, entry := range cfg.Copy {
		if err := copyEntry(env.Dir, dist, entry); err != nil {
			return err
		}
		logger.Debug("copied", "entry", entry)
	}
	return nil
}

// copyEntry copies every match of entry, a path or glob relative to the
// project, into dist under its base name.
func copyEntry(dir, dist, entry string) error {
	matches, err := filepath.Glob(filepath.Join(dir, filepath.FromSlash(entry)))
	if err != nil {
		return fmt.Errorf("copy entry %q: %w", entry, err)
	}
	if len(matches) == 0 {
		return &CopySourceMissingError{Entry: entry}
	}
	for _, src := range matches {
		if err := fsutil.Copy(src, filepath.Join(dist, filepath.Base(src))); err != nil {
			if os.IsNotExist(err) {
				return &CopySourceMissingError{Entry: entry}
			}
			return err
		}
	}
	return nil
}

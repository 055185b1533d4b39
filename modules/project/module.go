// Package project registers the tasks that create and inspect the packer
// configuration of a project.
package project

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/fsutil"
	"github.com/specialistvlad/packer/internal/hcl_adapter"
	"github.com/specialistvlad/packer/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the "init" and "config" tasks.
func (m *Module) Register(r *registry.Registry) {
	r.Register("init", Init)
	r.Register("config", PrintConfig)
}

// InitFile is the configuration file written by Init.
const InitFile = ".packerrc.hcl"

// Init writes a commented default configuration. An existing configuration
// of any supported format is left alone.
func Init(ctx context.Context, env *registry.Env) error {
	logger := ctxlog.FromContext(ctx)
	for _, s := range env.Sources {
		if _, err := os.Stat(filepath.Join(env.Dir, s.File)); err == nil {
			return fmt.Errorf("project already has a configuration: %s", s.File)
		}
	}

	cfg := &config.BuildConfig{Copy: []string{"README.md", "LICENSE"}}
	config.ApplyDefaults(cfg)

	var buf bytes.Buffer
	if err := hcl_adapter.WriteDefault(&buf, cfg); err != nil {
		return err
	}
	target := filepath.Join(env.Dir, InitFile)
	if err := fsutil.WriteFileMode(target, buf.Bytes(), 0o644); err != nil {
		return err
	}
	logger.Info("configuration created", "file", target)
	return nil
}

// PrintConfig writes the normalized configuration as JSON to env.Out.
func PrintConfig(ctx context.Context, env *registry.Env) error {
	cfg, err := config.ReadPackerConfig(ctx, env.Dir, env.Sources...)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(env.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

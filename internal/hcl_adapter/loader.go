package hcl_adapter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
// It reads both native HCL (.hcl) and HCL's JSON syntax (.json).
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses and decodes a single configuration file into the raw model.
func (l *Loader) Load(ctx context.Context, path string) (*config.BuildConfig, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if filepath.Ext(path) == ".json" {
		file, diags = parser.ParseJSONFile(path)
	} else {
		file, diags = parser.ParseHCLFile(path)
	}
	if diags.HasErrors() {
		return nil, &config.ConfigInvalidError{Path: path, Reason: "syntax error", Err: diags}
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, &config.ConfigInvalidError{Path: path, Reason: "schema error", Err: diags}
	}

	cfg, err := translate(&root)
	if err != nil {
		return nil, &config.ConfigInvalidError{Path: path, Reason: "unsupported value", Err: err}
	}

	logger.Debug("HCL loading complete.", "plugins", len(cfg.Plugins), "replacePatterns", len(cfg.ReplacePatterns))
	return cfg, nil
}

// translate converts the decoded HCL schema into the format-agnostic model.
func translate(root *fileRoot) (*config.BuildConfig, error) {
	cfg := &config.BuildConfig{
		Entry:  deref(root.Entry),
		Source: deref(root.Source),
		Dist:   deref(root.Dist),
		Tmp:    deref(root.Tmp),
		Ignore: root.Ignore,
		Copy:   root.Copy,
	}

	if c := root.Compiler; c != nil {
		cfg.Compiler = config.Compiler{
			BuildMode:          deref(c.BuildMode),
			ScriptPreprocessor: deref(c.ScriptPreprocessor),
			StylePreprocessor:  deref(c.StylePreprocessor),
			ConcurrentBuild:    derefBool(c.ConcurrentBuild),
			Check:              c.Check,
		}
	}

	if o := root.Output; o != nil {
		cfg.Output = config.Output{
			Format:            deref(o.Format),
			Namespace:         deref(o.Namespace),
			ES5:               derefBool(o.ES5),
			ESNext:            derefBool(o.ESNext),
			DependencyMapMode: deref(o.DependencyMapMode),
			Sourcemap:         o.Sourcemap,
		}
		if o.AMD != nil {
			cfg.Output.AMD.ID = deref(o.AMD.ID)
		}
	}

	if b := root.Bundle; b != nil {
		cfg.Bundle = config.Bundle{
			Externals:    b.Externals,
			Globals:      b.Globals,
			MapExternals: b.MapExternals,
		}
	}

	if t := root.Test; t != nil {
		cfg.Test = config.Test{Framework: deref(t.Framework), Browsers: t.Browsers}
	}

	if w := root.Watch; w != nil {
		cfg.Watch = config.Watch{
			Open:     w.Open,
			ServeDir: deref(w.ServeDir),
			DemoDir:  deref(w.DemoDir),
		}
		if w.Port != nil {
			cfg.Watch.Port = *w.Port
		}
	}

	if root.License != nil {
		cfg.License.Banner = root.License.Banner
	}

	for _, r := range root.ReplacePatterns {
		cfg.ReplacePatterns = append(cfg.ReplacePatterns, config.ReplacePattern{
			Test:    r.Test,
			Replace: r.Replace,
			Include: r.Include,
			Exclude: r.Exclude,
		})
	}

	for _, p := range root.Plugins {
		options, err := FromCtyValue(p.Options)
		if err != nil {
			return nil, fmt.Errorf("options of plugin %q: %w", p.Module, err)
		}
		cfg.Plugins = append(cfg.Plugins, config.CustomPlugin{
			Module:  p.Module,
			Import:  deref(p.Import),
			Phases:  p.Phases,
			Options: options,
		})
	}

	return cfg, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBool(b *bool) bool {
	return b != nil && *b
}

// Package yaml_adapter provides the YAML implementation of config.Loader.
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader reads .packerrc.yaml files.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

type fileRoot struct {
	Entry           string           `yaml:"entry"`
	Source          string           `yaml:"source"`
	Dist            string           `yaml:"dist"`
	Tmp             string           `yaml:"tmp"`
	Ignore          []string         `yaml:"ignore"`
	Copy            []string         `yaml:"copy"`
	Compiler        compiler         `yaml:"compiler"`
	Output          output           `yaml:"output"`
	Bundle          bundle           `yaml:"bundle"`
	Test            config.Test      `yaml:"test"`
	Watch           watch            `yaml:"watch"`
	License         config.License   `yaml:"license"`
	ReplacePatterns []replacePattern `yaml:"replacePatterns"`
	Plugins         []plugin         `yaml:"plugins"`
}

type compiler struct {
	BuildMode          string `yaml:"buildMode"`
	ScriptPreprocessor string `yaml:"scriptPreprocessor"`
	StylePreprocessor  string `yaml:"stylePreprocessor"`
	ConcurrentBuild    bool   `yaml:"concurrentBuild"`
	Check              *bool  `yaml:"check"`
}

type output struct {
	Format            string `yaml:"format"`
	Namespace         string `yaml:"namespace"`
	ES5               bool   `yaml:"es5"`
	ESNext            bool   `yaml:"esnext"`
	DependencyMapMode string `yaml:"dependencyMapMode"`
	Sourcemap         *bool  `yaml:"sourcemap"`
	AMD               struct {
		ID string `yaml:"id"`
	} `yaml:"amd"`
}

type bundle struct {
	Externals    []string          `yaml:"externals"`
	Globals      map[string]string `yaml:"globals"`
	MapExternals *bool             `yaml:"mapExternals"`
}

type watch struct {
	Port     int    `yaml:"port"`
	Open     *bool  `yaml:"open"`
	ServeDir string `yaml:"serveDir"`
	DemoDir  string `yaml:"demoDir"`
}

// replacePattern mirrors config.ReplacePattern field for field so the two
// convert directly.
type replacePattern struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Test    string   `yaml:"test"`
	Replace string   `yaml:"replace"`
}

type plugin struct {
	Module  string   `yaml:"module"`
	Import  string   `yaml:"import"`
	Phases  []string `yaml:"phases"`
	Options any      `yaml:"options"`
}

// Load parses a YAML configuration file into the raw model. Unknown keys
// are rejected so typos surface as ConfigInvalidError.
func (l *Loader) Load(ctx context.Context, path string) (*config.BuildConfig, error) {
	ctxlog.FromContext(ctx).Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, &config.ConfigInvalidError{Path: path, Reason: "yaml error", Err: err}
	}

	cfg := &config.BuildConfig{
		Entry:  root.Entry,
		Source: root.Source,
		Dist:   root.Dist,
		Tmp:    root.Tmp,
		Ignore: root.Ignore,
		Copy:   root.Copy,
		Compiler: config.Compiler{
			BuildMode:          root.Compiler.BuildMode,
			ScriptPreprocessor: root.Compiler.ScriptPreprocessor,
			StylePreprocessor:  root.Compiler.StylePreprocessor,
			ConcurrentBuild:    root.Compiler.ConcurrentBuild,
			Check:              root.Compiler.Check,
		},
		Output: config.Output{
			Format:            root.Output.Format,
			Namespace:         root.Output.Namespace,
			AMD:               config.AMD{ID: root.Output.AMD.ID},
			ES5:               root.Output.ES5,
			ESNext:            root.Output.ESNext,
			DependencyMapMode: root.Output.DependencyMapMode,
			Sourcemap:         root.Output.Sourcemap,
		},
		Bundle: config.Bundle{
			Externals:    root.Bundle.Externals,
			Globals:      root.Bundle.Globals,
			MapExternals: root.Bundle.MapExternals,
		},
		Test: root.Test,
		Watch: config.Watch{
			Port:     root.Watch.Port,
			Open:     root.Watch.Open,
			ServeDir: root.Watch.ServeDir,
			DemoDir:  root.Watch.DemoDir,
		},
		License: root.License,
	}
	for _, r := range root.ReplacePatterns {
		cfg.ReplacePatterns = append(cfg.ReplacePatterns, config.ReplacePattern(r))
	}
	for _, p := range root.Plugins {
		cfg.Plugins = append(cfg.Plugins, config.CustomPlugin{
			Module:  p.Module,
			Import:  p.Import,
			Phases:  p.Phases,
			Options: p.Options,
		})
	}
	return cfg, nil
}

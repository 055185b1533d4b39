// Package karma prepares and runs the Karma test runner with a rollup
// preprocessor built from the project configuration.
package karma

import (
	"context"
	"maps"
	"path"
	"strings"

	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/pipeline"
	"github.com/specialistvlad/packer/internal/plugin"
	"github.com/specialistvlad/packer/internal/selector"
	"github.com/specialistvlad/packer/internal/variant"
)

// Options are the invocation flags of a test run.
type Options struct {
	// Coverage instruments sources and adds the coverage reporter.
	Coverage bool
	// Watch keeps karma running and re-runs on change.
	Watch bool
}

// Plan is everything karma needs to run the project test suites.
type Plan struct {
	TestGlob string
	// Preprocess maps the test glob to the karma preprocessors applied.
	Preprocess map[string][]string
	External   selector.Externals
	Output     pipeline.Output
	Plugins    plugin.Pipeline
	Framework  string
	Browsers   []string
	Options    Options
}

// NewPlan builds the test plan of a project. Every test file goes through
// the same rollup pipeline; coverage instrumentation runs last.
func NewPlan(ctx context.Context, p *pipeline.Project, opts Options) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := p.Config

	testGlob := path.Join(cfg.Source, "**", "*.spec."+cfg.Compiler.ScriptExtension())
	logger.Debug("test glob", "glob", testGlob)

	script, err := selector.ScriptBuildPlugins(variant.Flat, false, false, cfg, p.Babel, p.Typescript, logger)
	if err != nil {
		return nil, err
	}

	plugins := selector.StyleBuildPlugins(cfg, nil, selector.StyleOptions{Extract: true}).
		Append(selector.PreBundlePlugins(cfg)...).
		Append(selector.DependencyResolvePlugins(cfg)...).
		Append(script...).
		Append(selector.CustomRollupPlugins(cfg, variant.Flat.Phase())...)
	if opts.Coverage {
		logger.Debug("coverage instrumentation enabled")
		plugins = plugins.Append(selector.CoveragePlugins(testGlob)...)
	}
	if err := plugins.Validate(); err != nil {
		return nil, err
	}

	return &Plan{
		TestGlob:   testGlob,
		Preprocess: map[string][]string{testGlob: {"rollup"}},
		External:   selector.ExtractBundleExternals(cfg, p.Package),
		Output: pipeline.Output{
			Format:    "iife",
			Name:      "test",
			Sourcemap: "inline",
			Globals:   maps.Clone(cfg.Bundle.Globals),
		},
		Plugins:   plugins,
		Framework: strings.ToLower(cfg.Test.Framework),
		Browsers:  cfg.Test.Browsers,
		Options:   opts,
	}, nil
}

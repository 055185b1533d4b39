package selector

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/plugin"
	"github.com/specialistvlad/packer/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T, mutate func(cfg *config.BuildConfig)) *config.BuildConfig {
	t.Helper()
	cfg := &config.BuildConfig{}
	if mutate != nil {
		mutate(cfg)
	}
	config.ApplyDefaults(cfg)
	return cfg
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtractBundleExternals(t *testing.T) {
	t.Parallel()

	pkg := &config.PackageMetadata{
		Name:             "lib",
		Dependencies:     map[string]string{"lodash": "^4.0.0", "tslib": "^2.0.0"},
		PeerDependencies: map[string]string{"react": "^18.0.0"},
	}

	testCases := []struct {
		name     string
		mutate   func(cfg *config.BuildConfig)
		expected []string
	}{
		{
			name:     "default mode maps dependencies as peers",
			mutate:   func(cfg *config.BuildConfig) { cfg.Bundle.Externals = []string{"rxjs", "lodash"} },
			expected: []string{"lodash", "rxjs", "tslib"},
		},
		{
			name:     "all mode includes peers",
			mutate:   func(cfg *config.BuildConfig) { cfg.Output.DependencyMapMode = config.MapAll },
			expected: []string{"lodash", "react", "tslib"},
		},
		{
			name: "mapping disabled keeps declared externals only",
			mutate: func(cfg *config.BuildConfig) {
				off := false
				cfg.Bundle.MapExternals = &off
				cfg.Bundle.Externals = []string{"rxjs"}
			},
			expected: []string{"rxjs"},
		},
		{
			name:     "none mode maps nothing",
			mutate:   func(cfg *config.BuildConfig) { cfg.Output.DependencyMapMode = config.MapNone },
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractBundleExternals(newConfig(t, tc.mutate), pkg)
			if diff := cmp.Diff(tc.expected, got.Names()); diff != "" {
				t.Errorf("externals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExternals_Match(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, func(cfg *config.BuildConfig) { cfg.Bundle.Externals = []string{"lodash"} })
	list := ExtractBundleExternals(cfg, nil)

	assert.True(t, list.Match("lodash"))
	assert.False(t, list.Match("lodash/merge"), "list form only matches exact names")

	filter := list.Filter()
	assert.True(t, filter.Match("lodash/merge"))
	assert.False(t, filter.Match("lodash-es"))
}

func TestStyleBuildPlugins(t *testing.T) {
	t.Parallel()

	pkg := &config.PackageMetadata{Name: "lib"}

	t.Run("none ignores style imports", func(t *testing.T) {
		t.Parallel()
		cfg := newConfig(t, func(cfg *config.BuildConfig) { cfg.Compiler.StylePreprocessor = config.StyleNone })
		p := StyleBuildPlugins(cfg, pkg, StyleOptions{Extract: true})
		require.Len(t, p, 1)
		assert.Equal(t, plugin.KindIgnoreImport, p[0].Kind)
		opts := p[0].Options.(plugin.IgnoreImportOptions)
		assert.Equal(t, []string{".css", ".scss", ".sass", ".less", ".styl"}, opts.Extensions)
	})

	t.Run("scss extracts next to dist", func(t *testing.T) {
		t.Parallel()
		p := StyleBuildPlugins(newConfig(t, nil), pkg, StyleOptions{Extract: true})
		require.Len(t, p, 1)
		opts := p[0].Options.(plugin.PostCSSOptions)
		assert.Equal(t, "dist/styles/lib.min.css", opts.Extract)
		assert.Equal(t, []string{"sass"}, opts.Use)
		require.Len(t, p[0].Bindings, 1)
		assert.Equal(t, plugin.KindImageInliner, p[0].Bindings[0].Plugins[0].Kind)
	})

	t.Run("extract without package data", func(t *testing.T) {
		t.Parallel()
		p := StyleBuildPlugins(newConfig(t, nil), nil, StyleOptions{Extract: true})
		assert.Equal(t, true, p[0].Options.(plugin.PostCSSOptions).Extract)
	})

	t.Run("inject keeps styles in the bundle", func(t *testing.T) {
		t.Parallel()
		p := StyleBuildPlugins(newConfig(t, nil), pkg, StyleOptions{Inject: true})
		opts := p[0].Options.(plugin.PostCSSOptions)
		assert.Equal(t, false, opts.Extract)
		assert.True(t, opts.Inject)
	})
}

func TestPreBundlePlugins(t *testing.T) {
	t.Parallel()

	plain := PreBundlePlugins(newConfig(t, nil))
	assert.Equal(t, []plugin.Kind{plugin.KindHandlebars, plugin.KindImage}, plain.Kinds())

	withReplace := PreBundlePlugins(newConfig(t, func(cfg *config.BuildConfig) {
		cfg.ReplacePatterns = []config.ReplacePattern{{Test: "__VERSION__", Replace: "1.0.0"}}
	}))
	assert.Equal(t, []plugin.Kind{plugin.KindReplace, plugin.KindHandlebars, plugin.KindImage}, withReplace.Kinds())
}

func TestDependencyResolvePlugins(t *testing.T) {
	t.Parallel()

	browser := DependencyResolvePlugins(newConfig(t, nil))
	assert.Equal(t, []plugin.Kind{plugin.KindNodeResolve, plugin.KindCommonJS, plugin.KindJSON, plugin.KindNodeGlobals}, browser.Kinds())
	resolve := browser[0].Options.(plugin.NodeResolveOptions)
	assert.True(t, resolve.Browser)
	assert.False(t, resolve.PreferBuiltins)
	assert.Equal(t, []string{".ts", ".js", ".json"}, resolve.Extensions)

	node := DependencyResolvePlugins(newConfig(t, func(cfg *config.BuildConfig) {
		cfg.Compiler.BuildMode = config.BuildModeNode
		cfg.Compiler.ScriptPreprocessor = config.ScriptBabel
		cfg.Ignore = []string{"fs"}
	}))
	assert.Equal(t, []plugin.Kind{plugin.KindIgnore, plugin.KindNodeResolve, plugin.KindCommonJS, plugin.KindJSON}, node.Kinds())
	assert.True(t, node[1].Options.(plugin.NodeResolveOptions).PreferBuiltins)
}

func TestScriptBuildPlugins_Typescript(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, nil)
	ts := &config.Dependency{Name: "typescript", Version: "5.4.0"}

	testCases := []struct {
		variant variant.Variant
		target  string
		check   bool
	}{
		{variant.Flat, "es5", true},
		{variant.ES5, "es5", false},
		{variant.ESNext, "esnext", false},
	}
	for _, tc := range testCases {
		t.Run(string(tc.variant), func(t *testing.T) {
			t.Parallel()
			p, err := ScriptBuildPlugins(tc.variant, false, tc.variant == variant.Flat, cfg, nil, ts, discard())
			require.NoError(t, err)
			require.Len(t, p, 1)
			opts := p[0].Options.(plugin.TypescriptOptions)
			assert.Equal(t, tc.target, opts.TsconfigOverride.CompilerOptions.Target)
			assert.Equal(t, tc.check, opts.Check)
			assert.Equal(t, tc.variant == variant.Flat, opts.TsconfigOverride.CompilerOptions.Declaration)
			require.Len(t, p[0].Bindings, 1)
			assert.Equal(t, "typescript", p[0].Bindings[0].Module.Module)
		})
	}
}

func TestScriptBuildPlugins_MissingTypescript(t *testing.T) {
	t.Parallel()

	_, err := ScriptBuildPlugins(variant.Flat, true, true, newConfig(t, nil), nil, nil, discard())
	var missing *config.DependencyMissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "typescript", missing.Name)
}

func TestScriptBuildPlugins_Babel(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, func(cfg *config.BuildConfig) { cfg.Compiler.ScriptPreprocessor = config.ScriptBabel })

	p, err := ScriptBuildPlugins(variant.ESNext, true, false, cfg, nil, nil, discard())
	require.NoError(t, err)
	opts := p[0].Options.(plugin.BabelOptions)
	assert.True(t, opts.Compact)
	require.Len(t, opts.Presets, 1)
	assert.JSONEq(t, `["@babel/preset-env",{"targets":{"esmodules":true}}]`, string(opts.Presets[0]))

	own := &config.BabelConfig{Presets: []json.RawMessage{json.RawMessage(`"@babel/preset-react"`)}}
	p, err = ScriptBuildPlugins(variant.Flat, false, false, cfg, own, nil, discard())
	require.NoError(t, err)
	assert.Equal(t, own.Presets, p[0].Options.(plugin.BabelOptions).Presets)
}

func TestScriptBuildPlugins_None(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, func(cfg *config.BuildConfig) { cfg.Compiler.ScriptPreprocessor = config.ScriptNone })
	p, err := ScriptBuildPlugins(variant.Flat, true, true, cfg, nil, nil, discard())
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestCustomRollupPlugins(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, func(cfg *config.BuildConfig) {
		cfg.Plugins = []config.CustomPlugin{
			{Module: "rollup-plugin-everywhere"},
			{Module: "rollup-plugin-modern", Phases: []string{"esnext"}},
			{Module: "rollup-plugin-legacy", Phases: []string{"bundle", "es5"}},
		}
	})

	labels := func(p plugin.Pipeline) []string {
		var out []string
		for _, d := range p {
			out = append(out, d.Label)
		}
		return out
	}

	assert.Equal(t, []string{"rollup-plugin-everywhere", "rollup-plugin-legacy"}, labels(CustomRollupPlugins(cfg, "bundle")))
	assert.Equal(t, []string{"rollup-plugin-everywhere", "rollup-plugin-modern"}, labels(CustomRollupPlugins(cfg, "esnext")))
	assert.Equal(t, "everywhere", CustomRollupPlugins(cfg, "es5")[0].Import.Ident)
}

func TestPhaseOrdering(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, func(cfg *config.BuildConfig) {
		cfg.Plugins = []config.CustomPlugin{{Module: "rollup-plugin-visualizer"}}
	})
	pkg := &config.PackageMetadata{Name: "lib"}
	script, err := ScriptBuildPlugins(variant.Flat, true, true, cfg, nil, &config.Dependency{Name: "typescript"}, discard())
	require.NoError(t, err)

	p := StyleBuildPlugins(cfg, pkg, StyleOptions{Inject: true}).
		Append(PreBundlePlugins(cfg)...).
		Append(DependencyResolvePlugins(cfg)...).
		Append(script...).
		Append(CustomRollupPlugins(cfg, "bundle")...).
		Append(PostBundlePlugins("build:bundle", variant.Flat)...).
		Append(DevServerPlugins(cfg)...).
		Append(CoveragePlugins("**/*.spec.ts")...)
	require.NoError(t, p.Validate())

	reversed := CoveragePlugins("**/*.spec.ts").Append(PreBundlePlugins(cfg)...)
	var orderErr *plugin.OrderError
	require.ErrorAs(t, reversed.Validate(), &orderErr)
	assert.Equal(t, plugin.KindHandlebars, orderErr.Kind)
}

func TestPostBundlePlugins(t *testing.T) {
	t.Parallel()

	p := PostBundlePlugins("build:bundle", variant.ES5)
	assert.Equal(t, []plugin.Kind{plugin.KindTerser, plugin.KindFileSize}, p.Kinds())
	assert.True(t, p[0].Output)
	assert.False(t, p[1].Output)
	assert.Equal(t, "some", p[0].Options.(plugin.TerserOptions).Output.Comments)
}

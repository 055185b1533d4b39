package pipeline

import (
	"log/slog"
	"maps"
	"path"
	"strings"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/plugin"
	"github.com/specialistvlad/packer/internal/selector"
	"github.com/specialistvlad/packer/internal/variant"
)

// Base holds the options shared by every variant of a build.
type Base struct {
	Input  string
	Banner string
}

// BaseConfig returns the options shared by all variants.
func BaseConfig(cfg *config.BuildConfig, pkg *config.PackageMetadata, banner string) Base {
	return Base{
		Input:  path.Join(cfg.Source, cfg.Entry),
		Banner: banner,
	}
}

// Output is one file written by a bundle.
type Output struct {
	File    string            `json:"file"`
	Format  string            `json:"format"`
	Name    string            `json:"name,omitempty"`
	AMD     *config.AMD       `json:"amd,omitempty"`
	Globals map[string]string `json:"globals,omitempty"`
	// Sourcemap is true, false or "inline".
	Sourcemap any    `json:"sourcemap"`
	Banner    string `json:"banner,omitempty"`
	// Plugins are output-stage plugins applied to this file only.
	Plugins plugin.Pipeline `json:"-"`
}

// Bundle is a complete bundler invocation.
type Bundle struct {
	Variant  variant.Variant
	Input    string
	External selector.Externals
	Plugins  plugin.Pipeline
	Outputs  []Output
	// Watch lists the paths the bundler watches in watch mode.
	Watch []string
}

// minified returns the .min.js sibling of a bundle file.
func minified(file string) string {
	return strings.TrimSuffix(file, ".js") + ".min.js"
}

// outputFile returns the non-minified bundle path of a variant.
func outputFile(cfg *config.BuildConfig, pkg *config.PackageMetadata, v variant.Variant) string {
	if v == variant.Flat {
		return path.Join(cfg.Dist, v.Dir(), pkg.Name+"."+cfg.Output.Format+".js")
	}
	return path.Join(cfg.Dist, v.Dir(), pkg.Name+".esm.js")
}

// Assemble builds the bundle of one variant. The plugin list follows the
// phase order style, pre-bundle, resolve, script, custom and post-bundle;
// output-stage plugins are moved onto the minified output.
func Assemble(p *Project, v variant.Variant, banner string, log *slog.Logger) (*Bundle, error) {
	flat := v == variant.Flat
	return assemble(p, v, banner, flat, flat, log)
}

// AssembleWatch builds the development bundle served by watch: the flat
// variant written to tmp, without declarations or a minified output, with
// the dev server plugins appended.
func AssembleWatch(p *Project, log *slog.Logger) (*Bundle, error) {
	cfg, pkg := p.Config, p.Package
	b, err := assemble(p, variant.Flat, "", false, false, log)
	if err != nil {
		return nil, err
	}
	plugins := b.Plugins.Append(selector.DevServerPlugins(cfg)...)
	if err := plugins.Validate(); err != nil {
		return nil, err
	}
	out := b.Outputs[0]
	out.File = path.Join(cfg.Tmp, pkg.Name+"."+cfg.Output.Format+".js")
	b.Plugins = plugins
	b.Outputs = []Output{out}
	return b, nil
}

func assemble(p *Project, v variant.Variant, banner string, minify, declaration bool, log *slog.Logger) (*Bundle, error) {
	cfg, pkg := p.Config, p.Package
	base := BaseConfig(cfg, pkg, banner)

	style := selector.StyleOptions{Inject: true}
	external := selector.ExtractBundleExternals(cfg, pkg)
	if v != variant.Flat {
		style = selector.StyleOptions{Extract: true, ExtractDir: path.Join(cfg.Dist, v.Dir(), "styles")}
		external = external.Filter()
	}

	flat := v == variant.Flat
	script, err := selector.ScriptBuildPlugins(v, minify, declaration, cfg, p.Babel, p.Typescript, log)
	if err != nil {
		return nil, err
	}

	plugins := selector.StyleBuildPlugins(cfg, pkg, style).
		Append(selector.PreBundlePlugins(cfg)...).
		Append(selector.DependencyResolvePlugins(cfg)...).
		Append(script...).
		Append(selector.CustomRollupPlugins(cfg, v.Phase())...).
		Append(selector.PostBundlePlugins("build:bundle", v)...)
	if err := plugins.Validate(); err != nil {
		return nil, err
	}
	graph, stage := plugins.Split()

	out := Output{
		File:      outputFile(cfg, pkg, v),
		Format:    "esm",
		Sourcemap: cfg.Output.SourcemapEnabled(),
		Banner:    base.Banner,
	}
	if flat {
		out.Format = cfg.Output.Format
		out.Name = namespace(cfg, pkg)
		out.Globals = maps.Clone(cfg.Bundle.Globals)
		if cfg.Output.AMD.ID != "" {
			amd := cfg.Output.AMD
			out.AMD = &amd
		}
	}
	minOut := out
	minOut.File = minified(out.File)
	minOut.Plugins = stage

	return &Bundle{
		Variant:  v,
		Input:    base.Input,
		External: external,
		Plugins:  graph,
		Outputs:  []Output{out, minOut},
		Watch:    []string{path.Join(cfg.Source, "**")},
	}, nil
}

// namespace returns the global name of UMD and IIFE bundles.
func namespace(cfg *config.BuildConfig, pkg *config.PackageMetadata) string {
	if cfg.Output.Namespace != "" {
		return cfg.Output.Namespace
	}
	return config.ImportName(pkg.Name)
}

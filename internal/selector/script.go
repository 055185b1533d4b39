package selector

import (
	"encoding/json"
	"log/slog"
	"path"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/plugin"
	"github.com/specialistvlad/packer/internal/variant"
)

var (
	presetEnv        = json.RawMessage(`"@babel/preset-env"`)
	presetEnvModules = json.RawMessage(`["@babel/preset-env",{"targets":{"esmodules":true}}]`)
)

// ScriptBuildPlugins selects the script compiler of a variant. The babel
// config is the one found in the project, nil when there is none; ts is the
// resolved typescript compiler, required for typescript projects only.
func ScriptBuildPlugins(
	v variant.Variant,
	minify, declaration bool,
	cfg *config.BuildConfig,
	babel *config.BabelConfig,
	ts *config.Dependency,
	log *slog.Logger,
) (plugin.Pipeline, error) {
	switch cfg.Compiler.ScriptPreprocessor {
	case config.ScriptTypescript:
		if ts == nil {
			return nil, &config.DependencyMissingError{Name: "typescript"}
		}
		target := "es5"
		if v == variant.ESNext {
			target = "esnext"
		}
		opts := plugin.TypescriptOptions{
			Tsconfig:  "tsconfig.json",
			Check:     v == variant.Flat && cfg.Compiler.TypeCheck(),
			Clean:     true,
			CacheRoot: path.Join(cfg.Tmp, ".rts2_cache", string(v)),
			TsconfigOverride: plugin.TsconfigOverride{
				CompilerOptions: plugin.CompilerOptions{
					Target:         target,
					Module:         "esnext",
					Declaration:    declaration,
					SourceMap:      cfg.Output.SourcemapEnabled(),
					RemoveComments: minify,
				},
			},
		}
		if declaration {
			opts.UseTsconfigDeclarationDir = true
			opts.TsconfigOverride.CompilerOptions.DeclarationDir = cfg.Dist
		}
		log.Debug("typescript compiler selected", "variant", v, "target", target, "version", ts.Version)
		return plugin.Pipeline{
			plugin.New(plugin.KindTypescript, opts, plugin.ModuleBinding("typescript", ts.Name, "typescript")),
		}, nil

	case config.ScriptBabel:
		opts := plugin.BabelOptions{
			Babelrc:    false,
			Exclude:    []string{"node_modules/**"},
			Extensions: []string{".js", ".mjs"},
			Compact:    minify,
			Comments:   !minify,
		}
		switch {
		case babel != nil && len(babel.Presets) > 0:
			opts.Presets = babel.Presets
		case v == variant.ESNext:
			opts.Presets = []json.RawMessage{presetEnvModules}
		default:
			opts.Presets = []json.RawMessage{presetEnv}
		}
		if babel != nil {
			opts.Plugins = babel.Plugins
		}
		log.Debug("babel compiler selected", "variant", v, "presets", len(opts.Presets))
		return plugin.Pipeline{plugin.New(plugin.KindBabel, opts)}, nil
	}
	return nil, nil
}

package selector

import (
	"slices"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/plugin"
)

// scriptExtensions returns the resolvable source extensions.
func scriptExtensions(cfg *config.BuildConfig) []string {
	if cfg.Compiler.ScriptPreprocessor == config.ScriptTypescript {
		return []string{".ts", ".js", ".json"}
	}
	return []string{".js", ".mjs", ".json"}
}

// DependencyResolvePlugins selects module resolution and CommonJS interop.
// Node globals are only polyfilled for browser builds.
func DependencyResolvePlugins(cfg *config.BuildConfig) plugin.Pipeline {
	browser := cfg.Compiler.BuildMode == config.BuildModeBrowser
	var p plugin.Pipeline

	if len(cfg.Ignore) > 0 {
		p = append(p, plugin.New(plugin.KindIgnore, slices.Clone(cfg.Ignore)))
	}

	p = append(p,
		plugin.New(plugin.KindNodeResolve, plugin.NodeResolveOptions{
			Module:         true,
			JSNext:         true,
			Main:           true,
			Browser:        browser,
			PreferBuiltins: !browser,
			Extensions:     scriptExtensions(cfg),
		}),
		plugin.New(plugin.KindCommonJS, plugin.CommonJSOptions{
			Include:    []string{"node_modules/**"},
			Extensions: scriptExtensions(cfg),
		}),
		plugin.New(plugin.KindJSON, plugin.JSONOptions{PreferConst: true}),
	)

	if browser {
		p = append(p, plugin.New(plugin.KindNodeGlobals, plugin.NodeGlobalsOptions{
			Process: true,
			Global:  true,
			Buffer:  true,
		}))
	}
	return p
}

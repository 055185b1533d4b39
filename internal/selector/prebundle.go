package selector

import (
	"path"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/plugin"
)

// PreBundlePlugins selects the transforms that run before module resolution:
// source replacements, handlebars templates and image imports.
func PreBundlePlugins(cfg *config.BuildConfig) plugin.Pipeline {
	var p plugin.Pipeline

	if len(cfg.ReplacePatterns) > 0 {
		patterns := make([]plugin.ReplacePattern, len(cfg.ReplacePatterns))
		for i, r := range cfg.ReplacePatterns {
			patterns[i] = plugin.ReplacePattern(r)
		}
		p = append(p, plugin.New(plugin.KindReplace, plugin.ReplaceOptions{Patterns: patterns}))
	}

	p = append(p,
		plugin.New(plugin.KindHandlebars, plugin.HandlebarsOptions{TemplateExtension: ".hbs"}),
		plugin.New(plugin.KindImage, plugin.ImageOptions{
			Limit:  8192,
			Output: path.Join(cfg.Dist, "images"),
		}),
	)
	return p
}

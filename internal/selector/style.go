package selector

import (
	"path"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/plugin"
)

// StyleOptions selects how stylesheets end up in the output.
type StyleOptions struct {
	Minify bool
	// Extract writes styles into a separate file instead of the bundle.
	Extract bool
	// ExtractDir is the directory of the extracted file, <dist>/styles when
	// empty. Without package data the plugin picks the file name itself.
	ExtractDir string
	// Inject adds styles to the document head at runtime.
	Inject bool
}

var styleExtensions = map[string][]string{
	config.StyleCSS:    {".css"},
	config.StyleSCSS:   {".css", ".scss"},
	config.StyleSass:   {".css", ".sass", ".scss"},
	config.StyleLess:   {".css", ".less"},
	config.StyleStylus: {".css", ".styl"},
}

var styleLoaders = map[string][]string{
	config.StyleSCSS:   {"sass"},
	config.StyleSass:   {"sass"},
	config.StyleLess:   {"less"},
	config.StyleStylus: {"stylus"},
}

// StyleBuildPlugins selects the style phase. Without a style preprocessor
// every stylesheet import is dropped.
func StyleBuildPlugins(cfg *config.BuildConfig, pkg *config.PackageMetadata, opts StyleOptions) plugin.Pipeline {
	if cfg.Compiler.StylePreprocessor == config.StyleNone {
		return plugin.Pipeline{
			plugin.New(plugin.KindIgnoreImport, plugin.IgnoreImportOptions{
				Extensions: []string{".css", ".scss", ".sass", ".less", ".styl"},
			}),
		}
	}

	var extract any = false
	if opts.Extract {
		extract = true
		if pkg != nil {
			dir := opts.ExtractDir
			if dir == "" {
				dir = path.Join(cfg.Dist, "styles")
			}
			extract = path.Join(dir, pkg.Name+".min.css")
		}
	}

	inliner := plugin.New(plugin.KindImageInliner, plugin.ImageInlinerOptions{
		AssetPaths:  []string{path.Join(cfg.Source, "assets")},
		MaxFileSize: 10000,
	})

	return plugin.Pipeline{
		plugin.New(plugin.KindPostCSS, plugin.PostCSSOptions{
			Extensions: styleExtensions[cfg.Compiler.StylePreprocessor],
			Extract:    extract,
			Inject:     opts.Inject,
			Minimize:   opts.Minify,
			SourceMap:  cfg.Output.SourcemapEnabled(),
			Use:        styleLoaders[cfg.Compiler.StylePreprocessor],
		}, plugin.PluginsBinding("plugins", inliner)),
	}
}

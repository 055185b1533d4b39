package config

// Build modes.
const (
	BuildModeBrowser = "browser"
	BuildModeNode    = "node"
	BuildModeNodeCLI = "node-cli"
)

// Script preprocessors.
const (
	ScriptTypescript = "typescript"
	ScriptBabel      = "babel"
	ScriptNone       = "none"
)

// Style preprocessors.
const (
	StyleNone   = "none"
	StyleCSS    = "css"
	StyleSCSS   = "scss"
	StyleSass   = "sass"
	StyleLess   = "less"
	StyleStylus = "stylus"
)

// Dependency map modes control how package.json dependencies are carried
// over into the distributed package descriptor.
const (
	MapCrossPeer = "cross-map-peer-dependency"
	MapCross     = "cross-map-dependency"
	MapDirect    = "map-dependency"
	MapPeer      = "map-peer-dependency"
	MapAll       = "all"
	MapNone      = "none"
)

// BuildConfig is the normalized project configuration.
type BuildConfig struct {
	Entry  string `json:"entry"`
	Source string `json:"source"`
	Dist   string `json:"dist"`
	Tmp    string `json:"tmp"`

	Compiler Compiler `json:"compiler"`
	Output   Output   `json:"output"`
	Bundle   Bundle   `json:"bundle"`
	Test     Test     `json:"test"`
	Watch    Watch    `json:"watch"`
	License  License  `json:"license"`

	Ignore          []string         `json:"ignore,omitempty"`
	ReplacePatterns []ReplacePattern `json:"replacePatterns,omitempty"`
	Copy            []string         `json:"copy,omitempty"`
	Plugins         []CustomPlugin   `json:"plugins,omitempty"`

	// Path is the file the configuration was read from. It is not part of
	// the serialized model.
	Path string `json:"-"`
}

// Compiler selects how sources are compiled.
type Compiler struct {
	BuildMode          string `json:"buildMode"`
	ScriptPreprocessor string `json:"scriptPreprocessor"`
	StylePreprocessor  string `json:"stylePreprocessor"`
	ConcurrentBuild    bool   `json:"concurrentBuild"`
	// Check enables type checking in the typescript plugin.
	Check *bool `json:"check,omitempty"`
}

// Output describes the generated artifacts.
type Output struct {
	Format            string `json:"format"`
	Namespace         string `json:"namespace"`
	AMD               AMD    `json:"amd"`
	ES5               bool   `json:"es5"`
	ESNext            bool   `json:"esnext"`
	DependencyMapMode string `json:"dependencyMapMode"`
	Sourcemap         *bool  `json:"sourcemap,omitempty"`
}

// AMD holds AMD module options of the flat bundle.
type AMD struct {
	ID string `json:"id,omitempty"`
}

// Bundle controls bundling of third party modules.
type Bundle struct {
	Externals    []string          `json:"externals,omitempty"`
	Globals      map[string]string `json:"globals,omitempty"`
	MapExternals *bool             `json:"mapExternals,omitempty"`
}

// Test configures the karma test run.
type Test struct {
	Framework string   `json:"framework"`
	Browsers  []string `json:"browsers,omitempty"`
}

// Watch configures the development server used by the watch task.
type Watch struct {
	Port     int    `json:"port"`
	Open     *bool  `json:"open,omitempty"`
	ServeDir string `json:"serveDir"`
	DemoDir  string `json:"demoDir"`
}

// License controls the banner comment prepended to every bundle.
type License struct {
	Banner *bool `json:"banner,omitempty"`
}

// ReplacePattern is a source replacement applied before module resolution.
type ReplacePattern struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
	Test    string   `json:"test"`
	Replace string   `json:"replace"`
}

// CustomPlugin is a user declared rollup plugin. Options hold plain
// JSON-compatible Go values (maps, slices, strings, float64, bool, nil).
type CustomPlugin struct {
	Module  string   `json:"module"`
	Import  string   `json:"import,omitempty"`
	Phases  []string `json:"phases,omitempty"`
	Options any      `json:"options,omitempty"`
}

// SourcemapEnabled reports whether bundles carry source maps.
func (o Output) SourcemapEnabled() bool {
	return o.Sourcemap == nil || *o.Sourcemap
}

// MapsExternals reports whether declared dependencies are treated as externals.
func (b Bundle) MapsExternals() bool {
	return b.MapExternals == nil || *b.MapExternals
}

// TypeCheck reports whether the typescript plugin runs the type checker.
func (c Compiler) TypeCheck() bool {
	return c.Check == nil || *c.Check
}

// OpenBrowser reports whether the dev server opens a browser tab.
func (w Watch) OpenBrowser() bool {
	return w.Open == nil || *w.Open
}

// BannerEnabled reports whether bundles get a license banner.
func (l License) BannerEnabled() bool {
	return l.Banner == nil || *l.Banner
}

// ScriptExtension returns the file extension of script sources.
func (c Compiler) ScriptExtension() string {
	if c.ScriptPreprocessor == ScriptTypescript {
		return "ts"
	}
	return "js"
}

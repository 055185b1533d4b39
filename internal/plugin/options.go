package plugin

import "encoding/json"

// IgnoreImportOptions configures rollup-plugin-ignore-import.
type IgnoreImportOptions struct {
	Extensions []string `json:"extensions"`
}

// PostCSSOptions configures rollup-plugin-postcss. Extract is either a bool
// or the output path of the extracted stylesheet.
type PostCSSOptions struct {
	Extensions []string `json:"extensions"`
	Extract    any      `json:"extract"`
	Inject     bool     `json:"inject"`
	Minimize   bool     `json:"minimize"`
	SourceMap  bool     `json:"sourceMap"`
	Use        []string `json:"use,omitempty"`
}

// ImageInlinerOptions configures postcss-image-inliner.
type ImageInlinerOptions struct {
	AssetPaths  []string `json:"assetPaths"`
	MaxFileSize int      `json:"maxFileSize"`
}

// ReplacePattern is a single rollup-plugin-re pattern.
type ReplacePattern struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
	Test    string   `json:"test"`
	Replace string   `json:"replace"`
}

// ReplaceOptions configures rollup-plugin-re.
type ReplaceOptions struct {
	Patterns []ReplacePattern `json:"patterns"`
}

// HandlebarsOptions configures rollup-plugin-hbs.
type HandlebarsOptions struct {
	TemplateExtension string `json:"templateExtension"`
}

// ImageOptions configures rollup-plugin-img.
type ImageOptions struct {
	Limit   int      `json:"limit"`
	Output  string   `json:"output"`
	Include []string `json:"include,omitempty"`
}

// NodeResolveOptions configures rollup-plugin-node-resolve.
type NodeResolveOptions struct {
	Module         bool     `json:"module"`
	JSNext         bool     `json:"jsnext"`
	Main           bool     `json:"main"`
	Browser        bool     `json:"browser"`
	PreferBuiltins bool     `json:"preferBuiltins"`
	Extensions     []string `json:"extensions"`
}

// CommonJSOptions configures rollup-plugin-commonjs.
type CommonJSOptions struct {
	Include    []string `json:"include"`
	Extensions []string `json:"extensions"`
}

// JSONOptions configures rollup-plugin-json.
type JSONOptions struct {
	PreferConst bool `json:"preferConst"`
	Compact     bool `json:"compact"`
}

// NodeGlobalsOptions configures rollup-plugin-node-globals.
type NodeGlobalsOptions struct {
	Process bool `json:"process"`
	Global  bool `json:"global"`
	Buffer  bool `json:"buffer"`
}

// CompilerOptions are the tsconfig compilerOptions overridden per variant.
type CompilerOptions struct {
	Target         string `json:"target"`
	Module         string `json:"module"`
	Declaration    bool   `json:"declaration"`
	DeclarationDir string `json:"declarationDir,omitempty"`
	SourceMap      bool   `json:"sourceMap"`
	RemoveComments bool   `json:"removeComments"`
}

// TsconfigOverride wraps CompilerOptions the way rollup-plugin-typescript2 expects.
type TsconfigOverride struct {
	CompilerOptions CompilerOptions `json:"compilerOptions"`
}

// TypescriptOptions configures rollup-plugin-typescript2.
type TypescriptOptions struct {
	Tsconfig                  string           `json:"tsconfig"`
	Check                     bool             `json:"check"`
	Clean                     bool             `json:"clean"`
	CacheRoot                 string           `json:"cacheRoot"`
	UseTsconfigDeclarationDir bool             `json:"useTsconfigDeclarationDir"`
	TsconfigOverride          TsconfigOverride `json:"tsconfigOverride"`
}

// BabelOptions configures rollup-plugin-babel.
type BabelOptions struct {
	Babelrc    bool              `json:"babelrc"`
	Exclude    []string          `json:"exclude"`
	Extensions []string          `json:"extensions"`
	Presets    []json.RawMessage `json:"presets,omitempty"`
	Plugins    []json.RawMessage `json:"plugins,omitempty"`
	Compact    bool              `json:"compact"`
	Comments   bool              `json:"comments"`
}

// TerserOutput holds terser output options.
type TerserOutput struct {
	Comments string `json:"comments"`
}

// TerserOptions configures rollup-plugin-terser.
type TerserOptions struct {
	Output TerserOutput `json:"output"`
}

// FileSizeOptions configures rollup-plugin-filesize.
type FileSizeOptions struct {
	ShowMinifiedSize bool `json:"showMinifiedSize"`
	ShowGzippedSize  bool `json:"showGzippedSize"`
	ShowBrotliSize   bool `json:"showBrotliSize"`
}

// ServeOptions configures rollup-plugin-serve.
type ServeOptions struct {
	ContentBase        []string `json:"contentBase"`
	Port               int      `json:"port"`
	Open               bool     `json:"open"`
	HistoryAPIFallback bool     `json:"historyApiFallback"`
	Verbose            bool     `json:"verbose"`
}

// LiveReloadOptions configures rollup-plugin-livereload.
type LiveReloadOptions struct {
	Watch   []string `json:"watch"`
	Verbose bool     `json:"verbose"`
}

// IstanbulOptions configures rollup-plugin-istanbul.
type IstanbulOptions struct {
	Exclude []string `json:"exclude"`
}

package plugin

import "fmt"

// Kind identifies one known plugin.
type Kind string

const (
	KindIgnoreImport Kind = "ignore-import"
	KindPostCSS      Kind = "postcss"
	KindImageInliner Kind = "image-inliner"
	KindReplace      Kind = "replace"
	KindHandlebars   Kind = "hbs"
	KindImage        Kind = "image"
	KindIgnore       Kind = "ignore"
	KindNodeResolve  Kind = "node-resolve"
	KindCommonJS     Kind = "commonjs"
	KindJSON         Kind = "json"
	KindNodeGlobals  Kind = "node-globals"
	KindTypescript   Kind = "typescript"
	KindBabel        Kind = "babel"
	KindCustom       Kind = "custom"
	KindTerser       Kind = "terser"
	KindFileSize     Kind = "filesize"
	KindServe        Kind = "serve"
	KindLiveReload   Kind = "livereload"
	KindIstanbul     Kind = "istanbul"
)

// kindInfo is the static description of a kind: the npm module providing it,
// the identifier it is imported as and the phase it belongs to.
type kindInfo struct {
	module string
	ident  string
	named  bool
	phase  Phase
}

var kindTable = map[Kind]kindInfo{
	KindIgnoreImport: {module: "rollup-plugin-ignore-import", ident: "ignoreImport", phase: PhaseStyle},
	KindPostCSS:      {module: "rollup-plugin-postcss", ident: "postcss", phase: PhaseStyle},
	KindImageInliner: {module: "postcss-image-inliner", ident: "imageInliner", phase: PhaseStyle},
	KindReplace:      {module: "rollup-plugin-re", ident: "replace", phase: PhasePreBundle},
	KindHandlebars:   {module: "rollup-plugin-hbs", ident: "handlebars", phase: PhasePreBundle},
	KindImage:        {module: "rollup-plugin-img", ident: "image", phase: PhasePreBundle},
	KindIgnore:       {module: "rollup-plugin-ignore", ident: "ignore", phase: PhaseResolve},
	KindNodeResolve:  {module: "rollup-plugin-node-resolve", ident: "resolve", phase: PhaseResolve},
	KindCommonJS:     {module: "rollup-plugin-commonjs", ident: "commonjs", phase: PhaseResolve},
	KindJSON:         {module: "rollup-plugin-json", ident: "json", phase: PhaseResolve},
	KindNodeGlobals:  {module: "rollup-plugin-node-globals", ident: "globals", phase: PhaseResolve},
	KindTypescript:   {module: "rollup-plugin-typescript2", ident: "typescript2", phase: PhaseScript},
	KindBabel:        {module: "rollup-plugin-babel", ident: "babel", phase: PhaseScript},
	KindTerser:       {module: "rollup-plugin-terser", ident: "terser", named: true, phase: PhasePostBundle},
	KindFileSize:     {module: "rollup-plugin-filesize", ident: "filesize", phase: PhasePostBundle},
	KindServe:        {module: "rollup-plugin-serve", ident: "serve", phase: PhaseDevServer},
	KindLiveReload:   {module: "rollup-plugin-livereload", ident: "livereload", phase: PhaseDevServer},
	KindIstanbul:     {module: "rollup-plugin-istanbul", ident: "istanbul", phase: PhaseCoverage},
}

// Import is a module import of the generated configuration.
type Import struct {
	Module string
	Ident  string
	// Named selects `import { ident } from 'module'` over a default import.
	Named bool
}

// Binding is an option value that cannot be expressed as JSON: either a
// list of nested plugin invocations or a reference to an imported module.
type Binding struct {
	Key     string
	Plugins []Descriptor
	Module  *Import
}

// Descriptor is one plugin invocation of a pipeline.
type Descriptor struct {
	Kind   Kind
	Phase  Phase
	Import Import
	// Options is the typed options value of the kind. It is encoded as JSON
	// and passed as the single argument of the plugin factory.
	Options  any
	Bindings []Binding
	// Output marks plugins that run on the generated chunk of the minified
	// output rather than on the module graph.
	Output bool
	// Label is a human readable tag used in logs.
	Label string
}

// New creates a descriptor of a known kind.
func New(kind Kind, options any, bindings ...Binding) Descriptor {
	s, ok := kindTable[kind]
	if !ok {
		panic(fmt.Sprintf("plugin: unknown kind %q", kind))
	}
	return Descriptor{
		Kind:     kind,
		Phase:    s.phase,
		Import:   Import{Module: s.module, Ident: s.ident, Named: s.named},
		Options:  options,
		Bindings: bindings,
		Output:   kind == KindTerser,
		Label:    string(kind),
	}
}

// NewCustom creates a descriptor of a user declared plugin.
func NewCustom(module, ident string, options any) Descriptor {
	return Descriptor{
		Kind:    KindCustom,
		Phase:   PhaseCustom,
		Import:  Import{Module: module, Ident: ident},
		Options: options,
		Label:   module,
	}
}

// ModuleBinding binds key to the default export of an imported module.
func ModuleBinding(key, module, ident string) Binding {
	return Binding{Key: key, Module: &Import{Module: module, Ident: ident}}
}

// PluginsBinding binds key to a list of nested plugin invocations.
func PluginsBinding(key string, plugins ...Descriptor) Binding {
	return Binding{Key: key, Plugins: plugins}
}

// WithLabel returns a copy of d with the given log label.
func (d Descriptor) WithLabel(label string) Descriptor {
	d.Label = label
	return d
}

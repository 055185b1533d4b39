package hcl_adapter

import "github.com/zclconf/go-cty/cty"

// fileRoot decodes every top-level attribute and block of a packer
// configuration file. The same schema serves the native HCL syntax and the
// JSON syntax, where nested objects are read as blocks.
type fileRoot struct {
	Entry  *string `hcl:"entry,optional"`
	Source *string `hcl:"source,optional"`
	Dist   *string `hcl:"dist,optional"`
	Tmp    *string `hcl:"tmp,optional"`

	Ignore []string `hcl:"ignore,optional"`
	Copy   []string `hcl:"copy,optional"`

	Compiler        *compilerBlock  `hcl:"compiler,block"`
	Output          *outputBlock    `hcl:"output,block"`
	Bundle          *bundleBlock    `hcl:"bundle,block"`
	Test            *testBlock      `hcl:"test,block"`
	Watch           *watchBlock     `hcl:"watch,block"`
	License         *licenseBlock   `hcl:"license,block"`
	ReplacePatterns []*replaceBlock `hcl:"replacePatterns,block"`
	Plugins         []*pluginBlock  `hcl:"plugins,block"`
}

type compilerBlock struct {
	BuildMode          *string `hcl:"buildMode,optional"`
	ScriptPreprocessor *string `hcl:"scriptPreprocessor,optional"`
	StylePreprocessor  *string `hcl:"stylePreprocessor,optional"`
	ConcurrentBuild    *bool   `hcl:"concurrentBuild,optional"`
	Check              *bool   `hcl:"check,optional"`
}

type outputBlock struct {
	Format            *string   `hcl:"format,optional"`
	Namespace         *string   `hcl:"namespace,optional"`
	ES5               *bool     `hcl:"es5,optional"`
	ESNext            *bool     `hcl:"esnext,optional"`
	DependencyMapMode *string   `hcl:"dependencyMapMode,optional"`
	Sourcemap         *bool     `hcl:"sourcemap,optional"`
	AMD               *amdBlock `hcl:"amd,block"`
}

type amdBlock struct {
	ID *string `hcl:"id,optional"`
}

type bundleBlock struct {
	Externals    []string          `hcl:"externals,optional"`
	Globals      map[string]string `hcl:"globals,optional"`
	MapExternals *bool             `hcl:"mapExternals,optional"`
}

type testBlock struct {
	Framework *string  `hcl:"framework,optional"`
	Browsers  []string `hcl:"browsers,optional"`
}

type watchBlock struct {
	Port     *int    `hcl:"port,optional"`
	Open     *bool   `hcl:"open,optional"`
	ServeDir *string `hcl:"serveDir,optional"`
	DemoDir  *string `hcl:"demoDir,optional"`
}

type licenseBlock struct {
	Banner *bool `hcl:"banner,optional"`
}

type replaceBlock struct {
	Test    string   `hcl:"test"`
	Replace string   `hcl:"replace"`
	Include []string `hcl:"include,optional"`
	Exclude []string `hcl:"exclude,optional"`
}

// pluginBlock declares a user rollup plugin. Options stay a raw cty value
// because their shape is defined by the third party plugin.
type pluginBlock struct {
	Module  string    `hcl:"module"`
	Import  *string   `hcl:"import,optional"`
	Phases  []string  `hcl:"phases,optional"`
	Options cty.Value `hcl:"options,optional"`
}

package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

var (
	buildModes   = []string{BuildModeBrowser, BuildModeNode, BuildModeNodeCLI}
	scripts      = []string{ScriptTypescript, ScriptBabel, ScriptNone}
	styles       = []string{StyleNone, StyleCSS, StyleSCSS, StyleSass, StyleLess, StyleStylus}
	formats      = []string{"umd", "amd", "cjs", "iife", "system", "esm"}
	mapModes     = []string{MapCrossPeer, MapCross, MapDirect, MapPeer, MapAll, MapNone}
	mapModeAlias = map[string]string{
		"cross-map-peer": MapCrossPeer,
		"cross-map":      MapCross,
		"map":            MapDirect,
		"map-peer":       MapPeer,
	}
	phaseNames = []string{"bundle", "es5", "esnext"}
)

// ApplyDefaults fills every unset field of a raw configuration in place.
func ApplyDefaults(cfg *BuildConfig) {
	setDefault(&cfg.Compiler.BuildMode, BuildModeBrowser)
	setDefault(&cfg.Compiler.ScriptPreprocessor, ScriptTypescript)
	setDefault(&cfg.Compiler.StylePreprocessor, StyleSCSS)

	if cfg.Entry == "" {
		cfg.Entry = "index." + cfg.Compiler.ScriptExtension()
	}
	setDefault(&cfg.Source, "src")
	setDefault(&cfg.Dist, "dist")
	setDefault(&cfg.Tmp, ".tmp")

	setDefault(&cfg.Output.Format, "umd")
	if mode, ok := mapModeAlias[cfg.Output.DependencyMapMode]; ok {
		cfg.Output.DependencyMapMode = mode
	}
	setDefault(&cfg.Output.DependencyMapMode, MapCrossPeer)

	setDefault(&cfg.Test.Framework, "jasmine")
	if len(cfg.Test.Browsers) == 0 {
		cfg.Test.Browsers = []string{"ChromeHeadless"}
	}

	if cfg.Watch.Port == 0 {
		cfg.Watch.Port = 4000
	}
	setDefault(&cfg.Watch.ServeDir, cfg.Tmp)
	setDefault(&cfg.Watch.DemoDir, "demo")

	for i := range cfg.Plugins {
		if cfg.Plugins[i].Import == "" {
			cfg.Plugins[i].Import = ImportName(cfg.Plugins[i].Module)
		}
	}
}

// Validate checks enumerated fields and required values of a defaulted
// configuration. It returns a descriptive reason, or "" when valid.
func Validate(cfg *BuildConfig) string {
	var problems []string
	check := func(field, value string, allowed []string) {
		if !slices.Contains(allowed, value) {
			problems = append(problems, fmt.Sprintf("%s %q is not one of %s", field, value, strings.Join(allowed, ", ")))
		}
	}
	check("compiler.buildMode", cfg.Compiler.BuildMode, buildModes)
	check("compiler.scriptPreprocessor", cfg.Compiler.ScriptPreprocessor, scripts)
	check("compiler.stylePreprocessor", cfg.Compiler.StylePreprocessor, styles)
	check("output.format", cfg.Output.Format, formats)
	check("output.dependencyMapMode", cfg.Output.DependencyMapMode, mapModes)

	inside := func(field, dir string) {
		if !isProjectSubdir(dir) {
			problems = append(problems, fmt.Sprintf("%s %q must be a directory inside the project", field, dir))
		}
	}
	inside("dist", cfg.Dist)
	inside("tmp", cfg.Tmp)

	for i, p := range cfg.Plugins {
		if p.Module == "" {
			problems = append(problems, fmt.Sprintf("plugins[%d].module is required", i))
		}
		for _, phase := range p.Phases {
			check(fmt.Sprintf("plugins[%d].phases", i), phase, phaseNames)
		}
	}
	for i, r := range cfg.ReplacePatterns {
		if r.Test == "" {
			problems = append(problems, fmt.Sprintf("replacePatterns[%d].test is required", i))
		}
	}
	return strings.Join(problems, "; ")
}

// isProjectSubdir reports whether dir is a relative path naming something
// strictly below the project directory.
func isProjectSubdir(dir string) bool {
	if dir == "" || filepath.IsAbs(dir) {
		return false
	}
	clean := filepath.Clean(dir)
	return clean != "." && clean != ".." && !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// ImportName derives a JavaScript identifier from an npm module name, e.g.
// "@rollup/plugin-visualizer" becomes "pluginVisualizer".
func ImportName(module string) string {
	name := module
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimPrefix(name, "rollup-plugin-")
	var b strings.Builder
	upper := false
	for _, r := range name {
		switch {
		case r == '-' || r == '.' || r == '_':
			upper = b.Len() > 0
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9' && b.Len() > 0):
			if upper && r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			upper = false
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "customPlugin"
	}
	return b.String()
}

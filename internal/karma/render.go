package karma

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/packer/internal/rollup"
)

// ConfigName is the file name of the generated karma configuration.
const ConfigName = "karma.conf.cjs"

type filePattern struct {
	Pattern string `json:"pattern"`
	Watched bool   `json:"watched"`
}

type reporter struct {
	Type string `json:"type"`
}

type coverageReporter struct {
	Dir       string     `json:"dir"`
	Reporters []reporter `json:"reporters"`
}

type property struct {
	key   string
	value any
}

// outputOptions is the rollup output of the preprocessor; karma sets file.
type outputOptions struct {
	Format    string            `json:"format"`
	Name      string            `json:"name"`
	Sourcemap any               `json:"sourcemap"`
	Globals   map[string]string `json:"globals,omitempty"`
}

// RenderConfig generates the karma configuration of plan. The file lives in
// the project config directory, so basePath points back at the project.
func RenderConfig(plan *Plan) ([]byte, error) {
	s := rollup.NewScript(true, "config")

	plugins, err := s.Plugins(plan.Plugins, "      ")
	if err != nil {
		return nil, &rollup.RenderError{File: ConfigName, Err: err}
	}

	reporters := []string{"progress"}
	if plan.Options.Coverage {
		reporters = append(reporters, "coverage")
	}

	literals := []property{
		{"basePath", ".."},
		{"frameworks", []string{plan.Framework}},
		{"files", []filePattern{{Pattern: plan.TestGlob}}},
		{"preprocessors", plan.Preprocess},
		{"reporters", reporters},
		{"browsers", plan.Browsers},
		{"singleRun", !plan.Options.Watch},
	}
	if plan.Options.Coverage {
		literals = append(literals, property{"coverageReporter", coverageReporter{
			Dir:       "coverage",
			Reporters: []reporter{{Type: "html"}, {Type: "lcovonly"}, {Type: "text-summary"}},
		}})
	}

	var props []string
	for _, l := range literals {
		v, err := rollup.Literal(l.value, "    ")
		if err != nil {
			return nil, &rollup.RenderError{File: ConfigName, Err: fmt.Errorf("%s: %w", l.key, err)}
		}
		props = append(props, fmt.Sprintf("    %s: %s", l.key, v))
	}

	output, err := rollup.Literal(outputOptions{
		Format:    plan.Output.Format,
		Name:      plan.Output.Name,
		Sourcemap: plan.Output.Sourcemap,
		Globals:   plan.Output.Globals,
	}, "      ")
	if err != nil {
		return nil, &rollup.RenderError{File: ConfigName, Err: err}
	}
	externals, err := rollup.Literal(plan.External.Names(), "      ")
	if err != nil {
		return nil, &rollup.RenderError{File: ConfigName, Err: err}
	}
	props = append(props, fmt.Sprintf("    rollupPreprocessor: {\n      external: %s,\n      output: %s,\n      plugins: %s\n    }", externals, output, plugins))

	var src strings.Builder
	src.WriteString("// Generated by packer. Do not edit.\n")
	src.WriteString(s.Imports())
	src.WriteString("\nmodule.exports = function (config) {\n  config.set({\n")
	src.WriteString(strings.Join(props, ",\n"))
	src.WriteString("\n  });\n};\n")

	out := []byte(src.String())
	if err := rollup.Check(ConfigName, out); err != nil {
		return nil, err
	}
	return out, nil
}

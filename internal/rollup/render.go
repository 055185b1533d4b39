package rollup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/packer/internal/pipeline"
	"github.com/specialistvlad/packer/internal/plugin"
)

const externalPredicate = `(id) => externals.some((name) => id === name || id.startsWith(name + "/"))`

type watchOptions struct {
	Include     []string `json:"include"`
	ClearScreen bool     `json:"clearScreen"`
}

// ConfigName returns the file name of the generated config of b.
func ConfigName(b *pipeline.Bundle) string {
	return "rollup." + string(b.Variant) + ".config.mjs"
}

// Render generates the rollup configuration module of b and checks that it
// is valid JavaScript.
func Render(b *pipeline.Bundle) ([]byte, error) {
	name := ConfigName(b)
	s := NewScript(false, "externals")

	plugins, err := s.Plugins(b.Plugins, "  ")
	if err != nil {
		return nil, &RenderError{File: name, Err: err}
	}

	outputs := make([]string, len(b.Outputs))
	for i, out := range b.Outputs {
		var bindings []plugin.Binding
		if len(out.Plugins) > 0 {
			bindings = append(bindings, plugin.PluginsBinding("plugins", out.Plugins...))
		}
		obj, err := s.Object(out, bindings, "    ")
		if err != nil {
			return nil, &RenderError{File: name, Err: fmt.Errorf("output %s: %w", out.File, err)}
		}
		outputs[i] = "    " + obj
	}

	names, err := Literal(b.External.Names(), "")
	if err != nil {
		return nil, &RenderError{File: name, Err: err}
	}

	external := "externals"
	if b.External.Predicate {
		external = externalPredicate
	}

	var src strings.Builder
	src.WriteString("// Generated by packer. Do not edit.\n")
	src.WriteString(s.Imports())
	fmt.Fprintf(&src, "\nconst externals = %s;\n\n", names)
	src.WriteString("export default {\n")
	fmt.Fprintf(&src, "  input: %s,\n", strconv.Quote(b.Input))
	fmt.Fprintf(&src, "  external: %s,\n", external)
	fmt.Fprintf(&src, "  plugins: %s,\n", plugins)
	fmt.Fprintf(&src, "  output: [\n%s\n  ],\n", strings.Join(outputs, ",\n"))
	if len(b.Watch) > 0 {
		watch, err := Literal(watchOptions{Include: b.Watch}, "  ")
		if err != nil {
			return nil, &RenderError{File: name, Err: err}
		}
		fmt.Fprintf(&src, "  watch: %s,\n", watch)
	}
	src.WriteString("};\n")

	out := []byte(src.String())
	if err := Check(name, out); err != nil {
		return nil, err
	}
	return out, nil
}

package rollup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/packer/internal/plugin"
)

type importDecl struct {
	module string
	name   string
	local  string
	named  bool
}

// Script collects the imports of a generated JavaScript configuration and
// renders plugin invocations against them. Each distinct module export is
// imported once; colliding identifiers get a numeric suffix.
type Script struct {
	commonJS bool
	imports  []importDecl
	locals   map[string]string
	used     map[string]bool
}

// NewScript returns a script emitting ES module imports, or require calls
// when commonJS is set. Reserved identifiers are never used for imports.
func NewScript(commonJS bool, reserved ...string) *Script {
	s := &Script{
		commonJS: commonJS,
		locals:   make(map[string]string),
		used:     make(map[string]bool),
	}
	for _, r := range reserved {
		s.used[r] = true
	}
	return s
}

// Bind imports imp and returns its local identifier.
func (s *Script) Bind(imp plugin.Import) string {
	key := imp.Module
	if imp.Named {
		key += "#" + imp.Ident
	}
	if local, ok := s.locals[key]; ok {
		return local
	}

	local := imp.Ident
	for n := 2; s.used[local]; n++ {
		local = imp.Ident + strconv.Itoa(n)
	}
	s.used[local] = true
	s.locals[key] = local
	s.imports = append(s.imports, importDecl{module: imp.Module, name: imp.Ident, local: local, named: imp.Named})
	return local
}

// Imports renders the import statements collected so far.
func (s *Script) Imports() string {
	var b strings.Builder
	for _, imp := range s.imports {
		module := strconv.Quote(imp.module)
		switch {
		case s.commonJS && imp.named:
			fmt.Fprintf(&b, "const { %s } = require(%s);\n", aliased(imp, ": "), module)
		case s.commonJS:
			fmt.Fprintf(&b, "const %s = require(%s);\n", imp.local, module)
		case imp.named:
			fmt.Fprintf(&b, "import { %s } from %s;\n", aliased(imp, " as "), module)
		default:
			fmt.Fprintf(&b, "import %s from %s;\n", imp.local, module)
		}
	}
	return b.String()
}

func aliased(imp importDecl, sep string) string {
	if imp.name == imp.local {
		return imp.name
	}
	return imp.name + sep + imp.local
}

// Plugin renders a single plugin factory call.
func (s *Script) Plugin(d plugin.Descriptor, indent string) (string, error) {
	callee := s.Bind(d.Import)
	args, err := s.Object(d.Options, d.Bindings, indent)
	if err != nil {
		return "", fmt.Errorf("plugin %s: %w", d.Label, err)
	}
	return callee + "(" + args + ")", nil
}

// Plugins renders a pipeline as an array literal.
func (s *Script) Plugins(p plugin.Pipeline, indent string) (string, error) {
	if len(p) == 0 {
		return "[]", nil
	}
	inner := indent + "  "
	calls := make([]string, len(p))
	for i, d := range p {
		call, err := s.Plugin(d, inner)
		if err != nil {
			return "", err
		}
		calls[i] = inner + call
	}
	return "[\n" + strings.Join(calls, ",\n") + "\n" + indent + "]", nil
}

// Object renders v as a JSON literal with the bindings added as extra
// properties. A nil v without bindings renders as the empty string.
func (s *Script) Object(v any, bindings []plugin.Binding, indent string) (string, error) {
	raw, err := Literal(v, indent)
	if err != nil {
		return "", err
	}
	if len(bindings) == 0 {
		if raw == "null" {
			return "", nil
		}
		return raw, nil
	}
	if raw == "null" {
		raw = "{}"
	}
	if !strings.HasPrefix(raw, "{") {
		return "", fmt.Errorf("options %s cannot carry bindings", raw)
	}

	inner := indent + "  "
	entries := make([]string, 0, len(bindings))
	for _, b := range bindings {
		var expr string
		switch {
		case b.Module != nil:
			expr = s.Bind(*b.Module)
		default:
			expr, err = s.Plugins(b.Plugins, inner)
			if err != nil {
				return "", err
			}
		}
		entries = append(entries, inner+strconv.Quote(b.Key)+": "+expr)
	}

	body := strings.TrimRight(strings.TrimSuffix(raw, "}"), " \n")
	if body == "{" {
		return "{\n" + strings.Join(entries, ",\n") + "\n" + indent + "}", nil
	}
	return body + ",\n" + strings.Join(entries, ",\n") + "\n" + indent + "}", nil
}

// Literal encodes v as indented JSON usable as a JavaScript expression.
func Literal(v any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(indent, "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

package hcl_adapter

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func load(t *testing.T, name, content string) (*config.BuildConfig, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return NewLoader().Load(testContext(), path)
}

func TestLoad_HCL(t *testing.T) {
	t.Parallel()

	cfg, err := load(t, ".packerrc.hcl", `
entry = "main.ts"
copy  = ["README.md"]

compiler {
  buildMode         = "node-cli"
  stylePreprocessor = "less"
  check             = false
}

output {
  format = "cjs"
  es5    = true
  amd {
    id = "my-lib"
  }
}

bundle {
  externals = ["rxjs"]
  globals   = { rxjs = "rx" }
}

replacePatterns {
  test    = "__VERSION__"
  replace = "1.0.0"
}

plugins {
  module = "rollup-plugin-visualizer"
  phases = ["bundle"]
  options = {
    filename = "stats.html"
    open     = false
    depth    = 2
  }
}
`)
	require.NoError(t, err)

	assert.Equal(t, "main.ts", cfg.Entry)
	assert.Equal(t, []string{"README.md"}, cfg.Copy)
	assert.Equal(t, config.BuildModeNodeCLI, cfg.Compiler.BuildMode)
	assert.Equal(t, config.StyleLess, cfg.Compiler.StylePreprocessor)
	assert.False(t, cfg.Compiler.TypeCheck())
	assert.Equal(t, "cjs", cfg.Output.Format)
	assert.True(t, cfg.Output.ES5)
	assert.Equal(t, "my-lib", cfg.Output.AMD.ID)
	assert.Equal(t, map[string]string{"rxjs": "rx"}, cfg.Bundle.Globals)
	assert.Equal(t, []config.ReplacePattern{{Test: "__VERSION__", Replace: "1.0.0"}}, cfg.ReplacePatterns)

	require.Len(t, cfg.Plugins, 1)
	want := map[string]any{"filename": "stats.html", "open": false, "depth": float64(2)}
	if diff := cmp.Diff(want, cfg.Plugins[0].Options); diff != "" {
		t.Errorf("plugin options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_JSONSyntax(t *testing.T) {
	t.Parallel()

	cfg, err := load(t, ".packerrc.json", `{
  "source": "lib",
  "compiler": {"scriptPreprocessor": "babel", "concurrentBuild": true},
  "output": {"esnext": true, "dependencyMapMode": "all"},
  "watch": {"port": 8080, "open": false}
}`)
	require.NoError(t, err)

	assert.Equal(t, "lib", cfg.Source)
	assert.Equal(t, config.ScriptBabel, cfg.Compiler.ScriptPreprocessor)
	assert.True(t, cfg.Compiler.ConcurrentBuild)
	assert.True(t, cfg.Output.ESNext)
	assert.Equal(t, config.MapAll, cfg.Output.DependencyMapMode)
	assert.Equal(t, 8080, cfg.Watch.Port)
	assert.False(t, cfg.Watch.OpenBrowser())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		reason  string
	}{
		{"syntax", "compiler {", "syntax error"},
		{"unknown attribute", `colour = "red"`, "schema error"},
		{"wrong type", "output {\n  es5 = \"yes please\"\n}\n", "schema error"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := load(t, ".packerrc.hcl", tc.content)
			var invalid *config.ConfigInvalidError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.reason, invalid.Reason)
		})
	}
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := &config.BuildConfig{
		Copy: []string{"README.md", "LICENSE"},
		Plugins: []config.CustomPlugin{{
			Module:  "rollup-plugin-visualizer",
			Phases:  []string{"es5"},
			Options: map[string]any{"filename": "stats.html", "sourcemap": true},
		}},
	}
	config.ApplyDefaults(cfg)

	var buf bytes.Buffer
	require.NoError(t, WriteDefault(&buf, cfg))
	assert.Contains(t, buf.String(), "# packer build configuration")

	loaded, err := load(t, ".packerrc.hcl", buf.String())
	require.NoError(t, err)
	config.ApplyDefaults(loaded)

	assert.Equal(t, cfg.Copy, loaded.Copy)
	assert.Equal(t, cfg.Compiler, loaded.Compiler)
	assert.Equal(t, cfg.Output.DependencyMapMode, loaded.Output.DependencyMapMode)
	assert.Equal(t, cfg.Watch.Port, loaded.Watch.Port)
	assert.Equal(t, cfg.Test, loaded.Test)
	if diff := cmp.Diff(cfg.Plugins, loaded.Plugins); diff != "" {
		t.Errorf("plugins mismatch (-want +got):\n%s", diff)
	}
}

func TestToCtyValue(t *testing.T) {
	t.Parallel()

	v, err := ToCtyValue(map[string]any{"name": "x", "n": 1.5, "tags": []any{"a", true}})
	require.NoError(t, err)
	assert.True(t, v.Type().IsObjectType())

	v, err = ToCtyValue("plain")
	require.NoError(t, err)
	assert.Equal(t, cty.StringVal("plain"), v)

	v, err = ToCtyValue(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	back, err := FromCtyValue(cty.ObjectVal(map[string]cty.Value{"a": cty.NumberIntVal(3)}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(3)}, back)
}

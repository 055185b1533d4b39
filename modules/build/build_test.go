package build_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/pipeline"
	"github.com/specialistvlad/packer/internal/registry"
	"github.com/specialistvlad/packer/internal/testutil"
	"github.com/specialistvlad/packer/internal/variant"
	"github.com/specialistvlad/packer/modules/build"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(t *testing.T, packerrc string, extra map[string]string) string {
	t.Helper()
	files := map[string]string{
		".packerrc.hcl":                        packerrc,
		"package.json":                         testutil.PackageJSON,
		"node_modules/typescript/package.json": testutil.TypescriptPackage,
	}
	for name, content := range extra {
		files[name] = content
	}
	return testutil.WriteProject(t, files)
}

func newRegistry() *registry.Registry {
	r := registry.New()
	(&build.Module{}).Register(r)
	return r
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

func TestCopyEssentials_WritesTargetPackage(t *testing.T) {
	t.Parallel()

	dir := project(t, `copy = ["README.md"]`, map[string]string{"README.md": "# my-lib\n"})
	ctx, _ := testutil.Context(t)

	require.NoError(t, build.CopyEssentials(ctx, testutil.NewEnv(dir, &testutil.FakeBundler{}, &testutil.FakeRunner{})))

	expected := `{
  "name": "my-lib",
  "version": "1.2.3",
  "description": "a test library",
  "author": "Jane Doe",
  "license": "MIT",
  "main": "bundle/my-lib.umd.min.js",
  "typings": "index.d.ts",
  "peerDependencies": {
    "lodash": "^4.17.21"
  }
}
`
	assert.Equal(t, expected, readFile(t, dir, "dist/package.json"))
	assert.Equal(t, "# my-lib\n", readFile(t, dir, "dist/README.md"))
}

func TestCopyEssentials_MissingSource(t *testing.T) {
	t.Parallel()

	dir := project(t, `copy = ["LICENSE"]`, nil)
	ctx, _ := testutil.Context(t)

	err := build.CopyEssentials(ctx, testutil.NewEnv(dir, &testutil.FakeBundler{}, &testutil.FakeRunner{}))
	var missing *build.CopySourceMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "LICENSE", missing.Entry)
}

func TestCopyBin(t *testing.T) {
	t.Parallel()

	t.Run("node-cli project gets an executable launcher", func(t *testing.T) {
		t.Parallel()
		dir := project(t, "compiler {\n  buildMode = \"node-cli\"\n}\n", nil)
		ctx, _ := testutil.Context(t)

		require.NoError(t, build.CopyBin(ctx, testutil.NewEnv(dir, &testutil.FakeBundler{}, &testutil.FakeRunner{})))

		target := filepath.Join(dir, "dist", "bin", "my-lib.js")
		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
		assert.Contains(t, readFile(t, dir, "dist/bin/my-lib.js"), "require('../bundle/my-lib.umd.js');")
	})

	t.Run("project template overrides the built-in one", func(t *testing.T) {
		t.Parallel()
		dir := project(t, "compiler {\n  buildMode = \"node-cli\"\n}\n", map[string]string{
			".packer/bin.hbs": "#!/usr/bin/env node\nrequire('../bundle/{{packageName}}.{{format}}.js').main();\n",
		})
		ctx, _ := testutil.Context(t)

		require.NoError(t, build.CopyBin(ctx, testutil.NewEnv(dir, &testutil.FakeBundler{}, &testutil.FakeRunner{})))
		assert.Equal(t, "#!/usr/bin/env node\nrequire('../bundle/my-lib.umd.js').main();\n", readFile(t, dir, "dist/bin/my-lib.js"))
	})

	t.Run("browser project has no launcher", func(t *testing.T) {
		t.Parallel()
		dir := project(t, "", nil)
		ctx, _ := testutil.Context(t)

		require.NoError(t, build.CopyBin(ctx, testutil.NewEnv(dir, &testutil.FakeBundler{}, &testutil.FakeRunner{})))
		_, err := os.Stat(filepath.Join(dir, "dist", "bin"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestRenderBin(t *testing.T) {
	t.Parallel()

	out, err := build.RenderBin("{{packageName}}-{{format}}", "tool", "cjs")
	require.NoError(t, err)
	assert.Equal(t, "tool-cjs", out)

	_, err = build.RenderBin("{{#if}}", "tool", "cjs")
	assert.Error(t, err)
}

func TestClean(t *testing.T) {
	t.Parallel()

	dir := project(t, "", map[string]string{
		"dist/stale.js":   "x",
		".tmp/cache.json": "{}",
		"src/index.ts":    "export {}",
	})
	ctx, _ := testutil.Context(t)

	require.NoError(t, build.Clean(ctx, testutil.NewEnv(dir, &testutil.FakeBundler{}, &testutil.FakeRunner{})))
	for _, gone := range []string{"dist", ".tmp"} {
		_, err := os.Stat(filepath.Join(dir, gone))
		assert.True(t, os.IsNotExist(err), gone)
	}
	assert.FileExists(t, filepath.Join(dir, "src", "index.ts"))
}

func TestClean_RefusesProjectAndParent(t *testing.T) {
	t.Parallel()

	for _, dist := range []string{".", "..", "/", "src/../.."} {
		t.Run(dist, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			dir := filepath.Join(root, "proj")
			require.NoError(t, os.MkdirAll(dir, 0o755))
			for name, content := range map[string]string{
				".packerrc.hcl": fmt.Sprintf("dist = %q\n", dist),
				"package.json":  testutil.PackageJSON,
				"src/index.ts":  "export {}",
			} {
				path := filepath.Join(dir, filepath.FromSlash(name))
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			}
			require.NoError(t, os.WriteFile(filepath.Join(root, "keep.txt"), nil, 0o644))
			ctx, _ := testutil.Context(t)

			err := build.Clean(ctx, testutil.NewEnv(dir, &testutil.FakeBundler{}, &testutil.FakeRunner{}))
			var invalid *config.ConfigInvalidError
			require.ErrorAs(t, err, &invalid)
			assert.FileExists(t, filepath.Join(dir, "src", "index.ts"))
			assert.FileExists(t, filepath.Join(root, "keep.txt"))
		})
	}
}

func TestBundle_ConcurrentBuildStartsAllVariants(t *testing.T) {
	t.Parallel()

	dir := project(t, "compiler {\n  concurrentBuild = true\n}\noutput {\n  es5 = true\n}\n", nil)
	ctx, _ := testutil.Context(t)
	bundler := &testutil.FakeBundler{
		Gate:    make(chan struct{}),
		Started: make(chan variant.Variant, 2),
	}

	done := make(chan error, 1)
	go func() {
		done <- build.Bundle(ctx, testutil.NewEnv(dir, bundler, &testutil.FakeRunner{}))
	}()

	started := map[variant.Variant]bool{}
	for range 2 {
		select {
		case v := <-bundler.Started:
			started[v] = true
		case <-time.After(5 * time.Second):
			t.Fatal("variants were not bundled concurrently")
		}
	}
	assert.Equal(t, map[variant.Variant]bool{variant.Flat: true, variant.ES5: true}, started)

	close(bundler.Gate)
	require.NoError(t, <-done)
	assert.Len(t, bundler.Bundles(), 2)
}

func TestBundle_ConcurrentBuildSettlesBeforeFailing(t *testing.T) {
	t.Parallel()

	dir := project(t, "compiler {\n  concurrentBuild = true\n}\noutput {\n  es5 = true\n  esnext = true\n}\n", nil)
	ctx, _ := testutil.Context(t)
	cause := errors.New("rollup failed")
	bundler := &testutil.FakeBundler{Fail: map[variant.Variant]error{variant.ES5: cause}}

	err := build.Bundle(ctx, testutil.NewEnv(dir, bundler, &testutil.FakeRunner{}))
	var bundleErr *pipeline.BundleError
	require.ErrorAs(t, err, &bundleErr)
	assert.Equal(t, variant.ES5, bundleErr.Variant)
	assert.Len(t, bundler.Bundles(), 3)
}

func TestBundle_SequentialStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	dir := project(t, "output {\n  es5 = true\n  esnext = true\n}\n", nil)
	ctx, _ := testutil.Context(t)
	cause := errors.New("rollup failed")
	bundler := &testutil.FakeBundler{Fail: map[variant.Variant]error{variant.Flat: cause}}

	err := build.Bundle(ctx, testutil.NewEnv(dir, bundler, &testutil.FakeRunner{}))
	require.ErrorIs(t, err, cause)

	bundles := bundler.Bundles()
	require.Len(t, bundles, 1)
	assert.Equal(t, variant.Flat, bundles[0].Variant)
	assert.Contains(t, bundles[0].Outputs[0].Banner, "my-lib v1.2.3")
}

func TestBuild_RunsEveryStage(t *testing.T) {
	t.Parallel()

	dir := project(t, "", map[string]string{"dist/stale.js": "x"})
	ctx, logs := testutil.Context(t)
	bundler := &testutil.FakeBundler{}
	env := testutil.NewEnv(dir, bundler, &testutil.FakeRunner{})

	r := newRegistry()
	require.NoError(t, r.ValidateRegistry(ctx))
	require.NoError(t, r.Run(ctx, "build", env))

	assert.NoFileExists(t, filepath.Join(dir, "dist", "stale.js"))
	assert.FileExists(t, filepath.Join(dir, "dist", "package.json"))
	assert.Len(t, bundler.Bundles(), 1)
	for _, task := range []string{"build:clean", "build:copy:essentials", "build:copy:bin", "build:bundle", "build"} {
		testutil.AssertTaskRan(t, logs, task)
	}
}

func TestBuild_ConfigNotFound(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteProject(t, map[string]string{"package.json": testutil.PackageJSON})
	ctx, _ := testutil.Context(t)

	err := newRegistry().Run(ctx, "build:clean", testutil.NewEnv(dir, &testutil.FakeBundler{}, &testutil.FakeRunner{}))
	var taskErr *registry.TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, "build:clean", taskErr.Task)
}

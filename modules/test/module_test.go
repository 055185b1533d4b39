package test_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/packer/internal/testutil"
	"github.com/specialistvlad/packer/modules/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(t *testing.T, extra map[string]string) string {
	t.Helper()
	files := map[string]string{
		".packerrc.hcl":                        "",
		"package.json":                         testutil.PackageJSON,
		"node_modules/typescript/package.json": testutil.TypescriptPackage,
		"src/index.ts":                         "export const answer = 42;\n",
		"src/index.spec.ts":                    "describe('answer', () => {});\n",
	}
	for name, content := range extra {
		files[name] = content
	}
	return testutil.WriteProject(t, files)
}

func TestTest_RunsKarmaOnce(t *testing.T) {
	t.Parallel()

	dir := project(t, nil)
	ctx, _ := testutil.Context(t)
	runner := &testutil.FakeRunner{}

	require.NoError(t, test.Test(ctx, testutil.NewEnv(dir, &testutil.FakeBundler{}, runner)))

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, testutil.Call{
		Dir:     dir,
		Command: "karma",
		Args:    []string{"start", filepath.Join(".packer", "karma.conf.cjs"), "--single-run"},
	}, calls[0])

	conf, err := os.ReadFile(filepath.Join(dir, ".packer", "karma.conf.cjs"))
	require.NoError(t, err)
	assert.Contains(t, string(conf), `"src/**/*.spec.ts"`)
	assert.NotContains(t, string(conf), "istanbul")
}

func TestTest_CoverageAndWatch(t *testing.T) {
	t.Parallel()

	dir := project(t, nil)
	ctx, _ := testutil.Context(t)
	runner := &testutil.FakeRunner{}
	env := testutil.NewEnv(dir, &testutil.FakeBundler{}, runner)
	env.Coverage = true
	env.Watch = true

	require.NoError(t, test.Test(ctx, env))

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0].Args, "--single-run")

	conf, err := os.ReadFile(filepath.Join(dir, ".packer", "karma.conf.cjs"))
	require.NoError(t, err)
	assert.Contains(t, string(conf), "istanbul")
	assert.Contains(t, string(conf), "coverageReporter")
}

func TestTest_WarnsWithoutSuites(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteProject(t, map[string]string{
		".packerrc.hcl": "compiler {\n  scriptPreprocessor = \"none\"\n}\n",
		"package.json":  testutil.PackageJSON,
	})
	ctx, logs := testutil.Context(t)
	runner := &testutil.FakeRunner{}

	require.NoError(t, test.Test(ctx, testutil.NewEnv(dir, &testutil.FakeBundler{}, runner)))
	assert.Contains(t, logs.String(), "no test suites found")
	assert.Len(t, runner.Calls(), 1)
}

func TestTest_ReportsKarmaFailure(t *testing.T) {
	t.Parallel()

	dir := project(t, nil)
	ctx, _ := testutil.Context(t)
	cause := errors.New("karma exited with status 1")

	err := test.Test(ctx, testutil.NewEnv(dir, &testutil.FakeBundler{}, &testutil.FakeRunner{Err: cause}))
	assert.ErrorIs(t, err, cause)
}

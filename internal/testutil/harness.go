// Package testutil holds the shared harness of the task tests: a temporary
// project on disk, a captured logger and fakes for the bundler and shell.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/specialistvlad/packer/internal/registry"
	"github.com/specialistvlad/packer/internal/sources"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// PackageJSON is a minimal package.json used by most task tests.
const PackageJSON = `{
  "name": "my-lib",
  "version": "1.2.3",
  "description": "a test library",
  "author": "Jane Doe",
  "license": "MIT",
  "dependencies": {"lodash": "^4.17.21"},
  "peerDependencies": {"react": "^18.0.0"}
}`

// TypescriptPackage fakes an installed typescript compiler.
const TypescriptPackage = `{"name": "typescript", "version": "5.4.5"}`

// WriteProject writes files, keyed by slash separated relative path, into a
// fresh temporary directory and returns it.
func WriteProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// Context returns a context carrying a debug text logger writing to the
// returned buffer. Set PACKER_TEST_LOGS=true to print it after the test.
func Context(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()
	logs := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("PACKER_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger), logs
}

// NewEnv returns a task environment for the project in dir using the fakes.
func NewEnv(dir string, bundler *FakeBundler, runner *FakeRunner) *registry.Env {
	return &registry.Env{
		Dir:     dir,
		Sources: sources.Default(),
		Bundler: bundler,
		Runner:  runner,
		Out:     &SafeBuffer{},
	}
}

package registry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/specialistvlad/packer/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(buf *bytes.Buffer) context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func noop(context.Context, *Env) error { return nil }

func TestRegister_DuplicatePanics(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("build", noop)
	assert.PanicsWithValue(t, "task with name 'build' already registered", func() {
		r.Register("build", noop)
	})
}

func TestValidateRegistry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := New()
	r.Register("build", Series(r.Ref("build:clean"), r.Ref("build:bundle")))
	r.Register("build:clean", noop)

	err := r.ValidateRegistry(testContext(&buf))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build:bundle")

	r.Register("build:bundle", noop)
	require.NoError(t, r.ValidateRegistry(testContext(&buf)))
	assert.Equal(t, []string{"build", "build:bundle", "build:clean"}, r.Names())
}

func TestRun_UnknownTask(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := New().Run(testContext(&buf), "nope", &Env{})
	var unknown *UnknownTaskError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Name)
}

func TestRun_LogsFailureOnce(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	boom := errors.New("boom")
	r := New()
	r.Register("inner", func(context.Context, *Env) error { return boom })
	r.Register("outer", Series(r.Ref("inner")))

	err := r.Run(testContext(&buf), "outer", &Env{})
	require.ErrorIs(t, err, boom)

	var taskErr *TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, "inner", taskErr.Task)
	assert.Equal(t, 1, strings.Count(buf.String(), "msg=failure"))
	assert.Contains(t, buf.String(), "msg=failure task=inner")
}

func TestRun_RecoversPanic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := New()
	r.Register("explode", func(context.Context, *Env) error { panic("kaboom") })

	err := r.Run(testContext(&buf), "explode", &Env{})
	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "kaboom", panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
	assert.Contains(t, buf.String(), "task panicked")
}

func TestSeries_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	var ran []string
	step := func(name string, err error) Task {
		return func(context.Context, *Env) error {
			ran = append(ran, name)
			return err
		}
	}
	boom := errors.New("boom")

	err := Series(step("a", nil), step("b", boom), step("c", nil))(context.Background(), &Env{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestParallel_RunsConcurrentlyAndSettles(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 2)
	release := make(chan struct{})
	var finished atomic.Int32
	boom := errors.New("boom")

	wait := func(err error) Task {
		return func(context.Context, *Env) error {
			started <- struct{}{}
			<-release
			finished.Add(1)
			return err
		}
	}

	done := make(chan error, 1)
	go func() { done <- Parallel(wait(boom), wait(nil))(context.Background(), &Env{}) }()

	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(5 * time.Second):
			t.Fatal("parallel tasks did not start together")
		}
	}
	close(release)

	require.ErrorIs(t, <-done, boom)
	assert.Equal(t, int32(2), finished.Load(), "every task settles before the error is reported")
}

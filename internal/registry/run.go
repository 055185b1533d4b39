package registry

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/specialistvlad/packer/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// UnknownTaskError reports a task name nobody registered.
type UnknownTaskError struct {
	Name string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task %q", e.Name)
}

// TaskError is a failure that has been logged at the boundary of Task.
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s failed: %v", e.Task, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// PanicError is a panic recovered at the task boundary.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Run runs the named task. Failures are logged once, at the innermost task
// that produced them, and returned as a *TaskError.
func (r *Registry) Run(ctx context.Context, name string, env *Env) (err error) {
	task, ok := r.tasks[name]
	if !ok {
		return &UnknownTaskError{Name: name}
	}

	ctx, logger := ctxlog.ForTask(ctx, name)
	start := time.Now()
	logger.Debug("start")

	defer func() {
		if p := recover(); p != nil {
			stack := debug.Stack()
			logger.Error("task panicked", "panic", p, "stack", string(stack))
			err = &TaskError{Task: name, Err: &PanicError{Value: p, Stack: stack}}
		}
	}()

	if err := task(ctx, env); err != nil {
		var taskErr *TaskError
		if errors.As(err, &taskErr) {
			return err
		}
		logger.Error("failure", "error", err)
		return &TaskError{Task: name, Err: err}
	}

	logger.Debug("end", "elapsed", time.Since(start))
	return nil
}

// Series runs tasks one after another and stops at the first failure.
func Series(tasks ...Task) Task {
	return func(ctx context.Context, env *Env) error {
		for _, task := range tasks {
			if err := task(ctx, env); err != nil {
				return err
			}
		}
		return nil
	}
}

// Parallel runs tasks concurrently and waits for all of them. The first
// failure is returned; running siblings are not cancelled.
func Parallel(tasks ...Task) Task {
	return func(ctx context.Context, env *Env) error {
		var g errgroup.Group
		for _, task := range tasks {
			g.Go(func() error { return task(ctx, env) })
		}
		return g.Wait()
	}
}

package registry

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/pipeline"
	"github.com/specialistvlad/packer/internal/shell"
)

// Module is the interface that all task modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Task is one unit of work. Tasks read the project afresh on every call.
type Task func(ctx context.Context, env *Env) error

// Env is what tasks get from the application. It is shared by all tasks of
// a process and never modified once created.
type Env struct {
	// Dir is the project directory.
	Dir     string
	Sources []config.Source
	// Coverage and Watch are the flags of the test task.
	Coverage bool
	Watch    bool
	Bundler  pipeline.WatchBundler
	Runner   shell.Runner
	// Out receives user facing output such as the config command.
	Out io.Writer
}

// Registry holds the registered tasks of a single application instance.
type Registry struct {
	tasks map[string]Task
	refs  []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{tasks: make(map[string]Task)}
}

// Register adds a named task. Registering a name twice is a programming
// error and panics.
func (r *Registry) Register(name string, task Task) {
	if _, exists := r.tasks[name]; exists {
		panic(fmt.Sprintf("task with name '%s' already registered", name))
	}
	r.tasks[name] = task
}

// Has reports whether a task is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tasks[name]
	return ok
}

// Names returns the registered task names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Ref returns a task running the named task through the task boundary. The
// name is resolved when the task runs, so modules may reference tasks
// registered after them.
func (r *Registry) Ref(name string) Task {
	r.refs = append(r.refs, name)
	return func(ctx context.Context, env *Env) error {
		return r.Run(ctx, name, env)
	}
}

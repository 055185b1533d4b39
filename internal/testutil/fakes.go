package testutil

import (
	"context"
	"sync"

	"github.com/specialistvlad/packer/internal/pipeline"
	"github.com/specialistvlad/packer/internal/variant"
)

// FakeBundler records bundles instead of running rollup.
type FakeBundler struct {
	mu      sync.Mutex
	bundles []*pipeline.Bundle
	watched []*pipeline.Bundle

	// Fail makes the bundle of a variant fail with the given error.
	Fail map[variant.Variant]error
	// Gate, when set, blocks every Bundle call until it is closed.
	Gate chan struct{}
	// Started, when set, receives the variant of every Bundle call as soon
	// as it starts.
	Started chan variant.Variant
	// WatchFn runs for Watch calls; by default Watch blocks until ctx is done.
	WatchFn func(ctx context.Context, b *pipeline.Bundle) error
}

// Bundle implements pipeline.Bundler.
func (f *FakeBundler) Bundle(ctx context.Context, b *pipeline.Bundle) error {
	f.mu.Lock()
	f.bundles = append(f.bundles, b)
	f.mu.Unlock()

	if f.Started != nil {
		f.Started <- b.Variant
	}
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.Fail[b.Variant]
}

// Watch implements pipeline.WatchBundler.
func (f *FakeBundler) Watch(ctx context.Context, b *pipeline.Bundle) error {
	f.mu.Lock()
	f.watched = append(f.watched, b)
	f.mu.Unlock()

	if f.WatchFn != nil {
		return f.WatchFn(ctx, b)
	}
	<-ctx.Done()
	return nil
}

// Bundles returns the bundles built so far.
func (f *FakeBundler) Bundles() []*pipeline.Bundle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*pipeline.Bundle(nil), f.bundles...)
}

// Watched returns the bundles passed to Watch so far.
func (f *FakeBundler) Watched() []*pipeline.Bundle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*pipeline.Bundle(nil), f.watched...)
}

// Call is one recorded command of a FakeRunner.
type Call struct {
	Dir     string
	Command string
	Args    []string
}

// FakeRunner records commands instead of running them.
type FakeRunner struct {
	mu    sync.Mutex
	calls []Call
	// Err is returned from every Run.
	Err error
}

// Run implements shell.Runner.
func (f *FakeRunner) Run(_ context.Context, dir, command string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Dir: dir, Command: command, Args: args})
	return f.Err
}

// Calls returns the commands run so far.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

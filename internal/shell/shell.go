// Package shell runs the node tools a build delegates to.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/specialistvlad/packer/internal/ctxlog"
)

// Runner runs a command to completion in a working directory.
type Runner interface {
	Run(ctx context.Context, dir, command string, args ...string) error
}

// CommandError reports a command that could not start or exited non-zero.
type CommandError struct {
	Command  string
	Args     []string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	line := strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
	if e.ExitCode > 0 {
		return fmt.Sprintf("command %q exited with status %d", line, e.ExitCode)
	}
	return fmt.Sprintf("command %q failed: %v", line, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Exec runs commands as child processes sharing the standard streams of the
// current process unless Stdout or Stderr are set.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
	// GOOS overrides runtime.GOOS; used by tests.
	GOOS string
}

// NewExec returns a Runner inheriting the process stdio.
func NewExec() *Exec {
	return &Exec{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Resolve returns the executable for command, preferring the project local
// node_modules/.bin. On Windows node tools are .cmd shims.
func (e *Exec) Resolve(dir, command string) string {
	goos := e.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	if goos == "windows" {
		command += ".cmd"
	}
	local := filepath.Join(dir, "node_modules", ".bin", command)
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return local
	}
	return command
}

// Run starts command in dir and waits for it. Cancelling ctx kills the
// process.
func (e *Exec) Run(ctx context.Context, dir, command string, args ...string) error {
	logger := ctxlog.FromContext(ctx)
	name := e.Resolve(dir, command)
	logger.Debug("running command", "command", name, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		cmdErr := &CommandError{Command: command, Args: args, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		return cmdErr
	}
	return nil
}

package app

import (
	"errors"
	"fmt"
	"slices"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Options holds the process arguments of one invocation. They are parsed
// once and never modified afterwards.
type Options struct {
	// Dir is the project directory.
	Dir       string
	LogFormat string
	LogLevel  string
	// Coverage and Watch are flags of the test task.
	Coverage bool
	Watch    bool
}

// NewOptions validates opts and returns a copy.
func NewOptions(opts Options) (*Options, error) {
	if opts.Dir == "" {
		return nil, errors.New("project directory is required")
	}
	if !slices.Contains(logLevels, opts.LogLevel) {
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", opts.LogLevel)
	}
	if !slices.Contains(logFormats, opts.LogFormat) {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", opts.LogFormat)
	}
	return &opts, nil
}

package cli

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/packer/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// buildTasks are the build tasks exposed as subcommands, with their help.
var buildTasks = []struct {
	name  string
	short string
}{
	{"build", "Clean, then copy package files and bundle every variant"},
	{"build:clean", "Remove the dist and tmp directories"},
	{"build:copy", "Copy package.json, extra files and the CLI launcher"},
	{"build:copy:essentials", "Write the distributed package.json and copy extra files"},
	{"build:copy:bin", "Render the CLI launcher of node-cli projects"},
	{"build:bundle", "Bundle the flat, es5 and esnext variants"},
}

// Parse processes command-line arguments. It returns the parsed options and
// the task to run, a boolean indicating if the program should exit cleanly,
// or an ExitError.
func Parse(args []string, output io.Writer) (*app.Options, string, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		opts = app.Options{}
		task string
	)
	choose := func(name string) func(*cobra.Command, []string) error {
		return func(*cobra.Command, []string) error {
			task = name
			return nil
		}
	}

	root := &cobra.Command{
		Use:   "packer",
		Short: "packer - bundle and test JavaScript libraries from one configuration",
		Long: `packer reads the .packerrc configuration of a project and drives rollup and
karma with correctly ordered plugin pipelines.

Configuration files are probed in this order:
  .packerrc.json, .packerrc.hcl, .packerrc.yaml, .packerrc.yml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.Dir, "dir", "d", ".", "Project directory.")
	flags.StringVar(&opts.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&opts.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	for _, t := range buildTasks {
		root.AddCommand(&cobra.Command{
			Use:   t.name,
			Short: t.short,
			Args:  cobra.NoArgs,
			RunE:  choose(t.name),
		})
	}

	testCmd := &cobra.Command{
		Use:   "test",
		Short: "Run the spec files of the project in karma",
		Args:  cobra.NoArgs,
		RunE:  choose("test"),
	}
	testCmd.Flags().BoolVarP(&opts.Coverage, "coverage", "C", false, "Instrument sources and report coverage.")
	testCmd.Flags().BoolVar(&opts.Watch, "watch", false, "Keep karma running and re-run on change.")

	root.AddCommand(
		testCmd,
		&cobra.Command{
			Use:   "watch",
			Short: "Serve a live reloading development build",
			Args:  cobra.NoArgs,
			RunE:  choose("watch"),
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write a default .packerrc.hcl",
			Args:  cobra.NoArgs,
			RunE:  choose("init"),
		},
		&cobra.Command{
			Use:   "config",
			Short: "Print the normalized configuration as JSON",
			Args:  cobra.NoArgs,
			RunE:  choose("config"),
		},
	)

	if err := root.Execute(); err != nil {
		return nil, "", false, &ExitError{Code: 2, Message: err.Error()}
	}
	if task == "" {
		slog.Debug("No task selected, exiting.")
		return nil, "", true, nil
	}
	slog.Debug("Arguments parsed successfully.", "task", task)

	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, "", false, &ExitError{Code: 2, Message: err.Error()}
	}
	opts.Dir = dir
	opts.LogLevel = strings.ToLower(opts.LogLevel)
	opts.LogFormat = strings.ToLower(opts.LogFormat)

	parsed, err := app.NewOptions(opts)
	if err != nil {
		return nil, "", false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "options", parsed)
	return parsed, task, false, nil
}

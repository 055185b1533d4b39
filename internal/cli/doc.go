// Package cli turns the process arguments into app.Options and the name of
// the task to run. Usage errors are reported as ExitError with status 2.
package cli

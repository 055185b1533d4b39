// Package registry provides the central "glue" for the task system.
//
// Modules register named tasks ("build", "build:copy:bin", ...) on a
// Registry at startup. Composite tasks reference other tasks by name through
// Ref and combine them with Series and Parallel; Validate checks that every
// referenced name is registered, so wiring mistakes fail at startup instead
// of in the middle of a build.
//
// Run is the task boundary: it tags the logger with the task name, logs
// start and end, recovers panics and logs every failure exactly once.
package registry

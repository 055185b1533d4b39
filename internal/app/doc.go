// Package app wires a packer process together: it builds the logger,
// registers the task modules against one registry and runs a task with the
// shared environment. It knows nothing about command-line parsing.
package app

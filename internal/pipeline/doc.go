// Package pipeline assembles complete bundle configurations from the plugin
// selectors and hands them to a Bundler.
//
// A Project is read fresh for every task invocation, so edits to the
// project configuration between runs are always picked up. Assembled
// bundles are plain data; rendering them for a concrete bundler is the job
// of the rollup package.
package pipeline

// Package rollup drives the Rollup bundler. Bundles are rendered into a
// generated rollup.config.mjs, syntax checked with esbuild and run through
// the rollup command line.
package rollup

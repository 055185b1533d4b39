// Package build registers the tasks producing the distributable package:
// cleaning, copying package metadata and the CLI launcher, and bundling.
package build

import "github.com/specialistvlad/packer/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the build tasks. "build" cleans first, then copies and
// bundles concurrently.
func (m *Module) Register(r *registry.Registry) {
	r.Register("build:clean", Clean)
	r.Register("build:copy:essentials", CopyEssentials)
	r.Register("build:copy:bin", CopyBin)
	r.Register("build:copy", registry.Parallel(r.Ref("build:copy:essentials"), r.Ref("build:copy:bin")))
	r.Register("build:bundle", Bundle)
	r.Register("build", registry.Series(
		r.Ref("build:clean"),
		registry.Parallel(r.Ref("build:copy"), r.Ref("build:bundle")),
	))
}

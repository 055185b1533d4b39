package selector

import (
	"slices"
	"strings"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/meta"
)

// Externals is the set of module specifiers left out of the bundle.
type Externals struct {
	names []string
	// Predicate selects the function form in generated configs, which also
	// matches deep imports such as "lodash/merge".
	Predicate bool
}

// ExtractBundleExternals collects the externals of a project: the declared
// bundle.externals plus, unless disabled, every dependency the distributed
// package declares under the current dependency map mode.
func ExtractBundleExternals(cfg *config.BuildConfig, pkg *config.PackageMetadata) Externals {
	names := slices.Clone(cfg.Bundle.Externals)
	if cfg.Bundle.MapsExternals() && pkg != nil {
		deps, peers := meta.MapDependencies(cfg.Output.DependencyMapMode, pkg)
		for name := range deps {
			names = append(names, name)
		}
		for name := range peers {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return Externals{names: slices.Compact(names)}
}

// Filter returns the predicate form of the same set.
func (e Externals) Filter() Externals {
	e.Predicate = true
	return e
}

// Names returns the sorted external module names.
func (e Externals) Names() []string {
	return slices.Clone(e.names)
}

// Match reports whether an import specifier is external. In list form only
// exact names match; the predicate form also matches sub-paths.
func (e Externals) Match(id string) bool {
	for _, name := range e.names {
		if id == name {
			return true
		}
		if e.Predicate && strings.HasPrefix(id, name+"/") {
			return true
		}
	}
	return false
}

package selector

import (
	"slices"

	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/plugin"
)

// CustomRollupPlugins returns the user declared plugins active in phase, in
// declaration order. A plugin without phases is active everywhere.
func CustomRollupPlugins(cfg *config.BuildConfig, phase string) plugin.Pipeline {
	var p plugin.Pipeline
	for _, c := range cfg.Plugins {
		if len(c.Phases) > 0 && !slices.Contains(c.Phases, phase) {
			continue
		}
		p = append(p, plugin.NewCustom(c.Module, c.Import, c.Options))
	}
	return p
}

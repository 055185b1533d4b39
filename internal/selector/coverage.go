package selector

import "github.com/specialistvlad/packer/internal/plugin"

// CoveragePlugins instruments sources for coverage, leaving out the tests.
func CoveragePlugins(testGlob string) plugin.Pipeline {
	return plugin.Pipeline{
		plugin.New(plugin.KindIstanbul, plugin.IstanbulOptions{
			Exclude: []string{testGlob, "node_modules/**"},
		}),
	}
}

package selector

import (
	"fmt"

	"github.com/specialistvlad/packer/internal/plugin"
	"github.com/specialistvlad/packer/internal/variant"
)

// PostBundlePlugins selects minification and size reporting. Terser only
// applies to the minified output of a bundle.
func PostBundlePlugins(taskName string, v variant.Variant) plugin.Pipeline {
	return plugin.Pipeline{
		plugin.New(plugin.KindTerser, plugin.TerserOptions{
			Output: plugin.TerserOutput{Comments: "some"},
		}).WithLabel(fmt.Sprintf("%s terser (%s)", taskName, v)),
		plugin.New(plugin.KindFileSize, plugin.FileSizeOptions{
			ShowMinifiedSize: true,
			ShowGzippedSize:  true,
		}).WithLabel(fmt.Sprintf("%s filesize (%s)", taskName, v)),
	}
}

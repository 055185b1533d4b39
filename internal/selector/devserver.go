package selector

import (
	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/plugin"
)

// DevServerPlugins selects the static server and live reload used by watch.
func DevServerPlugins(cfg *config.BuildConfig) plugin.Pipeline {
	contentBase := []string{cfg.Watch.ServeDir, cfg.Watch.DemoDir}
	return plugin.Pipeline{
		plugin.New(plugin.KindServe, plugin.ServeOptions{
			ContentBase:        contentBase,
			Port:               cfg.Watch.Port,
			Open:               cfg.Watch.OpenBrowser(),
			HistoryAPIFallback: true,
			Verbose:            true,
		}),
		plugin.New(plugin.KindLiveReload, plugin.LiveReloadOptions{
			Watch:   contentBase,
			Verbose: true,
		}),
	}
}

package meta

import (
	"strings"

	"github.com/specialistvlad/packer/internal/config"
)

// Banner returns the license comment prepended to every bundle, or "" when
// banners are disabled.
func Banner(cfg *config.BuildConfig, pkg *config.PackageMetadata) string {
	if !cfg.License.BannerEnabled() {
		return ""
	}

	title := pkg.Name
	if pkg.Version != "" {
		title += " v" + pkg.Version
	}
	lines := []string{"/**", " * @license", " * " + title}
	if author := pkg.AuthorName(); author != "" {
		lines = append(lines, " * (c) "+author)
	}
	if pkg.License != "" {
		lines = append(lines, " * License: "+pkg.License)
	}
	if pkg.Homepage != "" {
		lines = append(lines, " * "+pkg.Homepage)
	}
	lines = append(lines, " */")
	return strings.Join(lines, "\n")
}

// Package sources lists the project configuration files packer understands.
package sources

import (
	"github.com/specialistvlad/packer/internal/config"
	"github.com/specialistvlad/packer/internal/hcl_adapter"
	"github.com/specialistvlad/packer/internal/yaml_adapter"
)

// Default returns the configuration sources in probing order. JSON files are
// read through the HCL JSON syntax, so both share one schema.
func Default() []config.Source {
	hcl := hcl_adapter.NewLoader()
	yaml := yaml_adapter.NewLoader()
	return []config.Source{
		{File: ".packerrc.json", Loader: hcl},
		{File: ".packerrc.hcl", Loader: hcl},
		{File: ".packerrc.yaml", Loader: yaml},
		{File: ".packerrc.yml", Loader: yaml},
	}
}

// Files returns the file names of the default sources.
func Files() []string {
	var files []string
	for _, s := range Default() {
		files = append(files, s.File)
	}
	return files
}

package app

import (
	"github.com/specialistvlad/packer/internal/registry"
	"github.com/specialistvlad/packer/modules/build"
	"github.com/specialistvlad/packer/modules/project"
	"github.com/specialistvlad/packer/modules/test"
	"github.com/specialistvlad/packer/modules/watch"
)

// coreModules is the definitive list of all task modules that are compiled
// into the packer binary.
var coreModules = []registry.Module{
	&build.Module{},
	&test.Module{},
	&watch.Module{},
	&project.Module{},
}

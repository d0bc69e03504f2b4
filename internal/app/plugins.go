package app

import (
	"github.com/vk/orbitool/internal/plugin"
	"github.com/vk/orbitool/plugins/checktle"
	"github.com/vk/orbitool/plugins/compareorbits"
	"github.com/vk/orbitool/plugins/convert"
	"github.com/vk/orbitool/plugins/draworbit"
	"github.com/vk/orbitool/plugins/orekit"
	"github.com/vk/orbitool/plugins/verifyastropy"
)

// corePlugins is the definitive list of all plugins that are compiled into
// the orbitool binary.
var corePlugins = []plugin.Module{
	&orekit.Plugin{},
	&checktle.Plugin{},
	&compareorbits.Plugin{},
	&convert.Plugin{},
	&draworbit.Plugin{},
	&verifyastropy.Plugin{},
}

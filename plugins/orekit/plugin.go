// Package orekit provides the numeric runtime bridge: the postinit plugin
// that prepares the orbit-data installation shared by every app in a
// process, plus the orbit-definition and duration helpers apps use to read
// their inputs. Propagation itself happens behind the bridge and is out of
// scope here.
package orekit

import (
	"fmt"

	"github.com/vk/orbitool/internal/cli"
	"github.com/vk/orbitool/internal/plugin"
)

// Key is the registry key of the runtime-bridge plugin. Apps look up the
// bridge contribution in the RuntimeContext under this key.
const Key = "orekit"

// Plugin registers the runtime bridge. It contributes data-directory flags
// during preinit and stands up the Bridge during postinit.
type Plugin struct{}

// Register implements plugin.Module.
func (p *Plugin) Register(r *plugin.Registry) error {
	if err := r.RegisterPreinit(Key, p); err != nil {
		return err
	}
	return r.RegisterPostinit(Key, p)
}

// AddArgs implements plugin.Preinit, contributing the top-level data flags.
func (p *Plugin) AddArgs(b *cli.Builder) error {
	fl := b.Flags()
	if _, err := fl.String("data-dir", ".data", "Directory holding the orbit-data installation."); err != nil {
		return err
	}
	if err := fl.BindConfig("data-dir", "orekit.data-dir"); err != nil {
		return err
	}
	if _, err := fl.String("data-url", "", "URL of the orbit-data bundle to download when the installation is missing."); err != nil {
		return err
	}
	return fl.BindConfig("data-url", "orekit.data-url")
}

// FromInvocation returns the bridge contribution from an app invocation.
func FromInvocation(inv *plugin.Invocation) (*Bridge, error) {
	v, ok := inv.Runtime.Lookup(Key)
	if !ok {
		return nil, fmt.Errorf("runtime bridge %q is not initialized", Key)
	}
	bridge, ok := v.(*Bridge)
	if !ok {
		return nil, fmt.Errorf("unexpected %q contribution type %T", Key, v)
	}
	return bridge, nil
}

// Package checktle implements the check-tle app: structural and checksum
// validation of a two-line element set, loaded from the configuration or
// fetched by catalog number through the runtime bridge.
package checktle

import (
	"context"
	"fmt"

	"github.com/vk/orbitool/internal/cli"
	"github.com/vk/orbitool/internal/ctxlog"
	"github.com/vk/orbitool/internal/plugin"
	"github.com/vk/orbitool/plugins/orekit"
)

// Key is the app's registry key.
const Key = "check-tle"

// ExitInvalid is the app-specific exit code for a TLE that failed validation.
const ExitInvalid = 3

// Plugin registers the check-tle preinit and app entries.
type Plugin struct{}

// Register implements plugin.Module.
func (p *Plugin) Register(r *plugin.Registry) error {
	if err := r.RegisterPreinit(Key, p); err != nil {
		return err
	}
	return r.RegisterApp(Key, p)
}

// AddArgs implements plugin.Preinit.
func (p *Plugin) AddArgs(b *cli.Builder) error {
	sub, err := b.Subcommand(Key, "Validate the structure and checksums of a TLE orbit.")
	if err != nil {
		return err
	}
	if _, err := sub.String("orbit", "", "Orbit definition from the config file to check."); err != nil {
		return err
	}
	return sub.MarkRequired("orbit")
}

// Run implements plugin.App.
func (p *Plugin) Run(ctx context.Context, inv *plugin.Invocation) (int, error) {
	logger := ctxlog.FromContext(ctx)

	bridge, err := orekit.FromInvocation(inv)
	if err != nil {
		return 0, err
	}

	name := inv.Config.GetString("orbit")
	def, err := orekit.ReadOrbit(ctx, inv.Config, name, bridge)
	if err != nil {
		return 0, err
	}
	if def.Kind != orekit.KindTLE {
		return 0, fmt.Errorf("orbit %q is not a TLE (kind %s); specify a TLE orbit or select a different tool", name, def.Kind)
	}
	logger.Info("Successfully loaded TLE.", "orbit", name)

	problems := Validate(def.Line1, def.Line2)
	if len(problems) == 0 {
		fmt.Fprintf(inv.Out, "TLE %q OK\n", name)
		return 0, nil
	}

	fmt.Fprintf(inv.Out, "TLE %q failed validation:\n", name)
	for _, problem := range problems {
		fmt.Fprintf(inv.Out, "  - %s\n", problem)
	}
	return ExitInvalid, nil
}

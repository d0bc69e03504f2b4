// Package convert implements the convert app: re-emit a configured orbit
// definition as JSON in the requested representation. Conversions across
// representation families need the propagation engine behind the runtime
// bridge and are reported as unsupported here.
package convert

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/orbitool/internal/cli"
	"github.com/vk/orbitool/internal/ctxlog"
	"github.com/vk/orbitool/internal/plugin"
	"github.com/vk/orbitool/plugins/orekit"
)

// Key is the app's registry key.
const Key = "convert"

// Plugin registers the convert preinit and app entries.
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
	sub, err := b.Subcommand(Key, "Convert an orbit definition to another representation.")
	if err != nil {
		return err
	}
	if _, err := sub.String("from", "", "Orbit from the config file on which to operate."); err != nil {
		return err
	}
	if err := sub.MarkRequired("from"); err != nil {
		return err
	}
	_, err = sub.String("to", "keplerian", "Output orbit representation. Options: 'tle' or 'keplerian'.")
	return err
}

// Run implements plugin.App.
func (p *Plugin) Run(ctx context.Context, inv *plugin.Invocation) (int, error) {
	logger := ctxlog.FromContext(ctx)

	dest := inv.Config.GetString("to")
	if dest != orekit.KindTLE.String() && dest != orekit.KindKeplerian.String() {
		fmt.Fprintf(inv.Out, "unknown destination representation %q, want 'tle' or 'keplerian'\n", dest)
		return 2, nil
	}

	bridge, err := orekit.FromInvocation(inv)
	if err != nil {
		return 0, err
	}
	def, err := orekit.ReadOrbit(ctx, inv.Config, inv.Config.GetString("from"), bridge)
	if err != nil {
		return 0, err
	}
	logger.Info("Converting orbit.", "orbit", def.Name, "from", def.Kind.String(), "to", dest)

	if def.Kind.String() != dest {
		return 0, fmt.Errorf("converting %s to %s requires the propagation engine and is not supported by this tool", def.Kind, dest)
	}

	var doc map[string]any
	switch def.Kind {
	case orekit.KindTLE:
		doc = map[string]any{"line1": def.Line1, "line2": def.Line2}
	case orekit.KindKeplerian:
		doc = def.Elements
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(inv.Out, "\nGenerated Orbit:\n\n%s\n\n", out)
	return 0, nil
}

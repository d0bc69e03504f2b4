// Package draworbit implements the draw-orbit app: it lays out the track
// document for a configured orbit over a time window and writes it to the
// output path. Scene encoding fidelity (CZML and friends) is delegated to
// the renderer behind the runtime bridge.
package draworbit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vk/orbitool/internal/cli"
	"github.com/vk/orbitool/internal/ctxlog"
	"github.com/vk/orbitool/internal/plugin"
	"github.com/vk/orbitool/plugins/orekit"
)

// Key is the app's registry key.
const Key = "draw-orbit"

// defaultWindow is the drawn time window when none is configured.
const defaultWindow = "PT24H"

// defaultStep is the sample interval along the track when none is configured.
const defaultStep = "PT10M"

// Plugin registers the draw-orbit preinit and app entries.
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
	sub, err := b.Subcommand(Key, "Draw an orbit track document for a configured orbit.")
	if err != nil {
		return err
	}
	if _, err := sub.String("orbit", "", "Orbit to draw (the orbit id from the config file)."); err != nil {
		return err
	}
	if err := sub.MarkRequired("orbit"); err != nil {
		return err
	}
	if _, err := sub.String("output", "orbit.czml", "Output file path."); err != nil {
		return err
	}
	if _, err := sub.String("duration", defaultWindow, "Window to draw, as ISO-8601 duration or seconds."); err != nil {
		return err
	}
	_, err = sub.String("step", defaultStep, "Sample interval along the track, as ISO-8601 duration or seconds.")
	return err
}

// Run implements plugin.App.
func (p *Plugin) Run(ctx context.Context, inv *plugin.Invocation) (int, error) {
	logger := ctxlog.FromContext(ctx)

	bridge, err := orekit.FromInvocation(inv)
	if err != nil {
		return 0, err
	}
	def, err := orekit.ReadOrbit(ctx, inv.Config, inv.Config.GetString("orbit"), bridge)
	if err != nil {
		return 0, err
	}

	windowValue, ok := inv.Config.Get("duration")
	if !ok {
		windowValue = defaultWindow
	}
	window, err := orekit.ParseDuration(windowValue)
	if err != nil {
		return 0, err
	}
	if window <= 0 {
		return 0, fmt.Errorf("invalid duration: the drawn window must be greater than zero")
	}

	stepValue, ok := inv.Config.Get("step")
	if !ok {
		stepValue = defaultStep
	}
	step, err := orekit.ParseDuration(stepValue)
	if err != nil {
		return 0, err
	}
	if step <= 0 || step > window {
		return 0, fmt.Errorf("invalid step: the sample interval must be positive and no longer than the drawn window")
	}

	start := time.Now().UTC().Truncate(time.Second)
	stop := start.Add(window)

	doc := map[string]any{
		"name": fmt.Sprintf("orbit-tool-drawing %s", def.Name),
		"clock": map[string]any{
			"interval":   fmt.Sprintf("%s/%s", start.Format(time.RFC3339), stop.Format(time.RFC3339)),
			"multiplier": step.Seconds(),
		},
		"orbit": map[string]any{
			"id":   def.Name,
			"kind": def.Kind.String(),
		},
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, err
	}

	output := inv.Config.GetString("output")
	if output == "" {
		output = "orbit.czml"
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return 0, fmt.Errorf("cannot write output file %s: %w", output, err)
	}
	logger.Info("Orbit track document written.", "orbit", def.Name, "output", output, "window", window.String())
	return 0, nil
}

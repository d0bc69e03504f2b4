// Package verifyastropy implements the verify-astropy app: it checks that
// the runtime bridge's orbit-data installation is present and consistent,
// the part of the original cross-library verification that does not need
// the numeric engines themselves.
package verifyastropy

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/orbitool/internal/cli"
	"github.com/vk/orbitool/internal/ctxlog"
	"github.com/vk/orbitool/internal/plugin"
	"github.com/vk/orbitool/plugins/orekit"
)

// Key is the app's registry key.
const Key = "verify-astropy"

// ExitFailed is the app-specific exit code for a failed verification.
const ExitFailed = 3

// Plugin registers the verify-astropy preinit and app entries.
type Plugin struct{}

// Register implements plugin.Module.
func (p *Plugin) Register(r *plugin.Registry) error {
	if err := r.RegisterPreinit(Key, p); err != nil {
		return err
	}
	return r.RegisterApp(Key, p)
}

// AddArgs implements plugin.Preinit. The app has no flags of its own; the
// subcommand is claimed so it appears in the usage listing.
func (p *Plugin) AddArgs(b *cli.Builder) error {
	_, err := b.Subcommand(Key, "Verify the runtime bridge's data installation.")
	return err
}

// Run implements plugin.App.
func (p *Plugin) Run(ctx context.Context, inv *plugin.Invocation) (int, error) {
	logger := ctxlog.FromContext(ctx)

	bridge, err := orekit.FromInvocation(inv)
	if err != nil {
		return 0, err
	}

	checks := []struct {
		name string
		ok   bool
	}{
		{"runtime bridge ready", bridge.Ready()},
		{fmt.Sprintf("data directory %s present", bridge.DataDir()), dirExists(bridge.DataDir())},
		{fmt.Sprintf("data source recorded (%s)", bridge.Source()), bridge.Source() != ""},
	}

	failed := 0
	for _, check := range checks {
		status := "ok"
		if !check.ok {
			status = "FAILED"
			failed++
		}
		fmt.Fprintf(inv.Out, "  %-40s %s\n", check.name, status)
	}

	if failed > 0 {
		logger.Error("Runtime verification failed", "failed", failed)
		return ExitFailed, nil
	}
	logger.Info("Runtime verification passed.")
	return 0, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

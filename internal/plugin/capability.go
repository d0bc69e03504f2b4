package plugin

import (
	"context"
	"io"

	"github.com/vk/orbitool/internal/cli"
	"github.com/vk/orbitool/internal/config"
)

// Module is the interface plugin packages implement to be compiled into the
// binary. Register adds the package's entries, under any extension points,
// to the registry.
type Module interface {
	Register(r *Registry) error
}

// Preinit is the capability contract for the preinit extension point.
type Preinit interface {
	// AddArgs contributes top-level flags and/or a subcommand namespace to
	// the shared builder. It runs before any arguments are parsed.
	AddArgs(b *cli.Builder) error
}

// Postinit is the capability contract for the postinit extension point.
type Postinit interface {
	// Init stands up this plugin's share of the process-wide runtime state
	// using the finalized configuration. The returned contribution is
	// stored in the RuntimeContext under the plugin's registry key.
	Init(ctx context.Context, cfg *config.Config) (any, error)
}

// App is the capability contract for the app extension point.
type App interface {
	// Run executes the app and returns its process exit code. A returned
	// error is an unrecognized internal failure; apps signal recognized
	// user-facing failures through a documented non-zero code instead.
	Run(ctx context.Context, inv *Invocation) (int, error)
}

// Invocation carries everything an app receives from the dispatcher. It is
// constructed once per run, after configuration and runtime initialization
// have both completed.
type Invocation struct {
	// Key is the registry key the app was dispatched under.
	Key string
	// Config is the frozen configuration shared by all phases.
	Config *config.Config
	// Runtime holds the postinit contributions, keyed by plugin key.
	Runtime *RuntimeContext
	// Args are the residual positional arguments after flag parsing.
	Args []string
	// Out is where the app writes its user-facing output.
	Out io.Writer
}

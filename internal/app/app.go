package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/orbitool/internal/config"
	"github.com/vk/orbitool/internal/plugin"
)

// toolName is the name the CLI surface is built under.
const toolName = "orbitool"

// App encapsulates one invocation of the lifecycle orchestrator: its plugin
// registry, the frozen configuration, and the shared runtime context.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	modules []plugin.Module

	registry *plugin.Registry
	config   *config.Config
	rtx      *plugin.RuntimeContext
	state    state

	// ctx carries the configured logger once LoadingConfig has completed;
	// before that it holds the bootstrap logger.
	ctx context.Context
}

// NewApp is the constructor for the orchestrator. Plugin modules may be
// supplied for testing; by default the compiled-in corePlugins manifest is
// used. Heavy lifting is deferred to Run so that construction never
// executes plugin code.
func NewApp(outW io.Writer, modules ...plugin.Module) *App {
	if len(modules) == 0 {
		modules = corePlugins
	}
	return &App{
		outW:     outW,
		logger:   newLogger("info", "text", outW),
		modules:  modules,
		registry: plugin.New(),
		state:    stateCreated,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *plugin.Registry {
	return a.registry
}

// Config returns the frozen configuration, or nil before LoadingConfig has
// completed. This is primarily for testing.
func (a *App) Config() *config.Config {
	return a.config
}

// defaults is the built-in bottom configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"log-format": "text",
		"log-level":  "info",
		"orekit": map[string]any{
			"data-dir": ".data",
		},
	}
}

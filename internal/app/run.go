package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/orbitool/internal/cli"
	"github.com/vk/orbitool/internal/config"
	"github.com/vk/orbitool/internal/ctxlog"
	"github.com/vk/orbitool/internal/plugin"
)

// Run drives the invocation through the lifecycle phases and returns nil on
// success or a *cli.ExitError carrying the exit code. Runtime contributions
// are torn down best-effort on every path, including Failed.
func (a *App) Run(ctx context.Context, args []string) error {
	a.ctx = ctxlog.WithLogger(ctx, a.logger)

	err := a.runPhases(args)

	if a.rtx != nil {
		a.rtx.Cleanup(a.ctx)
	}

	if err != nil {
		a.fail()
		return exitError(err)
	}
	if !a.state.terminal() {
		a.advance(stateDone)
	}
	return nil
}

// runPhases executes the strictly sequential phase chain. Each phase fully
// completes before the next begins; the first error aborts the chain.
func (a *App) runPhases(args []string) error {
	// Phase: Discovering. Populate the registry from the compiled-in
	// manifest. No plugin capability code runs here.
	a.advance(stateDiscovering)
	for _, mod := range a.modules {
		if err := mod.Register(a.registry); err != nil {
			return err
		}
	}
	a.logger.Debug("Plugin discovery complete.",
		"preinit", len(a.registry.Preinits()),
		"postinit", len(a.registry.Postinits()),
		"apps", len(a.registry.AppKeys()))

	// Phase: BuildingArgs. Core flags first, then each preinit plugin in
	// discovery order contributes to the shared builder.
	a.advance(stateBuildingArgs)
	builder := cli.NewBuilder(toolName, a.outW)
	if err := registerGlobalFlags(builder); err != nil {
		return err
	}
	for _, entry := range a.registry.Preinits() {
		builder.SetOwner(entry.Key)
		if err := entry.Preinit.AddArgs(builder); err != nil {
			return err
		}
	}

	// Phase: ParsingArgs. The finalized parser description runs once
	// against the actual process arguments.
	a.advance(stateParsingArgs)
	res, err := builder.Parse(args)
	if err != nil {
		return err
	}
	if res.Help {
		return nil
	}
	if res.AppKey == "" {
		builder.Usage()
		return nil
	}
	configPath, err := extractGlobals(res.Values)
	if err != nil {
		return err
	}

	// Phase: LoadingConfig. Defaults < config file < explicitly-set flags,
	// frozen before anything downstream sees it.
	a.advance(stateLoadingConfig)
	cfg, err := config.Build(a.ctx, config.Options{
		FlagDefaults: builder.Defaults(res.AppKey),
		Defaults:     defaults(),
		Path:         configPath,
		CLI:          res.Values,
		Required:     builder.Required(res.AppKey),
	})
	if err != nil {
		return err
	}
	if err := validateLogOptions(cfg); err != nil {
		return err
	}
	a.config = cfg

	// Swap the bootstrap logger for the configured one.
	a.logger = newLogger(cfg.GetString("log-level"), cfg.GetString("log-format"), a.outW)
	a.ctx = ctxlog.WithLogger(a.ctx, a.logger)
	a.logger.Debug("Configuration frozen.", "keys", cfg.Keys())

	// Phase: InitializingRuntime. Postinit plugins run exactly once per
	// process, in discovery order. The first failure stops the remaining
	// plugins; contributions already made are cleaned up by Run.
	a.advance(stateInitializingRuntime)
	a.rtx = plugin.NewRuntimeContext()
	for _, entry := range a.registry.Postinits() {
		a.logger.Debug("Initializing runtime plugin.", "key", entry.Key)
		contribution, err := entry.Postinit.Init(a.ctx, cfg)
		if err != nil {
			return &RuntimeInitError{Key: entry.Key, Err: err}
		}
		if contribution != nil {
			if err := a.rtx.Contribute(entry.Key, contribution); err != nil {
				return &RuntimeInitError{Key: entry.Key, Err: err}
			}
		}
	}
	a.rtx.Seal()
	a.logger.Debug("Runtime context initialized.", "contributions", a.rtx.Keys())

	// Phase: Dispatching. Exactly one app runs per invocation.
	a.advance(stateDispatching)
	code, err := a.dispatch(a.ctx, res.AppKey, res.Residual)
	if err != nil {
		return err
	}

	a.advance(stateDone)
	if code != 0 {
		// App-specific exit codes pass through opaquely.
		return &cli.ExitError{Code: code}
	}
	return nil
}

// registerGlobalFlags contributes the core's own command-line surface: the
// config-file path, log format, and the mutually exclusive verbosity set.
func registerGlobalFlags(b *cli.Builder) error {
	b.SetOwner("core")
	fl := b.Flags()

	if _, err := fl.String("c", "", "Path to the configuration file (shorthand)."); err != nil {
		return err
	}
	if _, err := fl.String("config", "", "Path to the configuration file."); err != nil {
		return err
	}
	if err := fl.BindConfig("c", "config"); err != nil {
		return err
	}
	if _, err := fl.String("log-format", "text", "Log output format. Options: 'text' or 'json'."); err != nil {
		return err
	}

	for _, v := range verbosityFlags {
		if _, err := fl.Bool(v.flag, false, v.usage); err != nil {
			return err
		}
	}
	return nil
}

// verbosityFlags is the mutually exclusive verbosity set, most to least
// quiet. Each maps onto a log-level value.
var verbosityFlags = []struct {
	flag  string
	level string
	usage string
}{
	{"quiet", "error", "Suppress all but the most critical log statements."},
	{"error", "error", "Display error logs."},
	{"warn", "warn", "Display error and warning logs."},
	{"info", "info", "Print informational logging."},
	{"debug", "debug", "Display highly detailed level of logging."},
}

// extractGlobals pulls the core's own values out of the CLI overlay so they
// do not leak into the Configuration as option keys. It returns the config
// file path and enforces verbosity exclusivity.
func extractGlobals(values map[string]any) (string, error) {
	configPath, _ := values["config"].(string)
	delete(values, "config")

	var set []string
	for _, v := range verbosityFlags {
		on, ok := values[v.flag].(bool)
		if !ok {
			continue
		}
		delete(values, v.flag)
		if on {
			set = append(set, "--"+v.flag)
			values["log-level"] = v.level
		}
	}
	if len(set) > 1 {
		return "", &cli.ExitError{
			Code:    2,
			Message: fmt.Sprintf("verbosity flags are mutually exclusive: %v", set),
		}
	}
	return configPath, nil
}

// validateLogOptions rejects unusable logging configuration regardless of
// which layer supplied it.
func validateLogOptions(cfg *config.Config) error {
	switch cfg.GetString("log-format") {
	case "text", "json":
	default:
		return &cli.ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	if _, ok := logLevels[cfg.GetString("log-level")]; !ok {
		return &cli.ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	return nil
}

// exitError maps the error taxonomy onto process exit codes: usage-class
// errors exit 2, everything else exits 1. An error that already carries an
// exit code passes through.
func exitError(err error) *cli.ExitError {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	code := 1
	var (
		dupErr      *plugin.DuplicateExtensionError
		conflictErr *cli.ArgumentConflictError
		loadErr     *config.LoadError
		missingErr  *config.MissingOptionError
		unknownErr  *UnknownAppError
	)
	switch {
	case errors.As(err, &dupErr),
		errors.As(err, &conflictErr),
		errors.As(err, &loadErr),
		errors.As(err, &missingErr),
		errors.As(err, &unknownErr):
		code = 2
	}
	return &cli.ExitError{Code: code, Message: err.Error(), Err: err}
}

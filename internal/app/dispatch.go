package app

import (
	"context"
	"fmt"

	"github.com/vk/orbitool/internal/ctxlog"
	"github.com/vk/orbitool/internal/plugin"
)

// dispatch selects the one app matching the invoked key and executes it
// with the finalized configuration and initialized runtime context. The
// app's internal behavior is opaque: its exit code passes through, its
// error (or panic) becomes an AppExecutionError.
func (a *App) dispatch(ctx context.Context, key string, residual []string) (int, error) {
	appPlugin, ok := a.registry.App(key)
	if !ok {
		return 0, &UnknownAppError{Key: key, Valid: a.registry.AppKeys()}
	}

	inv := &plugin.Invocation{
		Key:     key,
		Config:  a.config,
		Runtime: a.rtx,
		Args:    residual,
		Out:     a.outW,
	}
	a.logger.Info("Dispatching app.", "app", key, "args", residual)

	code, err := a.invoke(ctx, appPlugin, inv)
	if err != nil {
		ctxlog.FromContext(ctx).Error("App execution failed", "app", key, "error", err)
		return 0, &AppExecutionError{Key: key, Err: err}
	}
	a.logger.Debug("App finished.", "app", key, "code", code)
	return code, nil
}

// invoke runs the app, converting a panic into an ordinary error so a
// misbehaving plugin cannot take down cleanup.
func (a *App) invoke(ctx context.Context, appPlugin plugin.App, inv *plugin.Invocation) (code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("app panicked: %v", r)
		}
	}()
	return appPlugin.Run(ctx, inv)
}

package cli

import (
	"errors"
	"flag"
	"log/slog"
)

// Result holds everything the later phases need from the one-shot parse.
type Result struct {
	// AppKey is the first positional argument, naming the app to dispatch.
	// Empty when the user supplied no app.
	AppKey string

	// Residual contains the positional arguments left over after the app's
	// subcommand flags were consumed. They are passed verbatim to the app.
	Residual []string

	// Values maps config keys to the values of explicitly-set flags. Flags
	// left at their default are absent, so "unset" stays distinguishable
	// from "set to the zero value" when configuration layers are overlaid.
	Values map[string]any

	// Help reports that usage text was printed and the process should exit
	// cleanly without running any app.
	Help bool
}

// Parse runs the finalized parser description against the actual process
// arguments. It is called exactly once per invocation: global flags are
// consumed up to the first positional (the app key), then the matching
// subcommand's flags consume the remainder. Arguments for an unregistered
// app key are passed through untouched so the dispatcher can report the
// unknown key alongside the valid ones.
func (b *Builder) Parse(args []string) (*Result, error) {
	slog.Debug("CLI parser started.")
	if err := b.global.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &Result{Help: true}, nil
		}
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}

	res := &Result{Values: make(map[string]any)}
	rest := b.global.fs.Args()
	if len(rest) == 0 {
		b.global.visitSet(res.Values)
		return res, nil
	}

	res.AppKey = rest[0]
	rest = rest[1:]

	if sub, ok := b.subs[res.AppKey]; ok {
		if err := sub.fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return &Result{Help: true}, nil
			}
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
		res.Residual = sub.fs.Args()
		sub.visitSet(res.Values)
	} else {
		res.Residual = rest
	}

	b.global.visitSet(res.Values)
	slog.Debug("Arguments parsed successfully.", "app", res.AppKey, "residual", len(res.Residual))
	return res, nil
}

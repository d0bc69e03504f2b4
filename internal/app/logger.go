package app

import (
	"io"
	"log/slog"
)

// logLevels maps the log-level option onto slog levels. The same names are
// accepted by validateLogOptions and produced by the verbosityFlags table.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the isolated logger for one invocation from the log-level
// and log-format options. The process-global default logger is left alone so
// test instances stay independent. An unknown level falls back to info.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevels[levelStr]}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}

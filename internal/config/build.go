package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/vk/orbitool/internal/fsutil"
)

// conventionalPaths are probed, in order, when no config file is named on
// the command line.
var conventionalPaths = []string{"config.yaml", "config.yml", "config.hcl"}

// Options describes one configuration build.
type Options struct {
	// FlagDefaults carries the defaults declared on the command-line flags
	// that apply to this invocation. It is the bottom layer.
	FlagDefaults map[string]any

	// Defaults is the layer of built-in option values, above FlagDefaults.
	Defaults map[string]any

	// Path is the config file named via -c/--config. When empty, the
	// conventional default paths are probed instead. A path that does not
	// exist is skipped; only a file that exists but fails to parse is an
	// error.
	Path string

	// CLI maps config keys to the values of explicitly-set flags; it is the
	// top layer. Unset flags must not appear here.
	CLI map[string]any

	// Required lists config keys that must resolve to a value once all
	// layers are applied.
	Required []string
}

// Build assembles the frozen Configuration: flag defaults, built-in
// defaults, then the config file (when present), then explicitly-set CLI
// values. It fails with *LoadError for a malformed file and
// *MissingOptionError for a required option no layer provided.
func Build(ctx context.Context, opts Options) (*Config, error) {
	fileLayer := map[string]any{}

	path := opts.Path
	if path == "" {
		if found, ok := fsutil.FirstExisting(conventionalPaths...); ok {
			path = found
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			tree, err := ForPath(path).Load(ctx, path)
			if err != nil {
				return nil, err
			}
			fileLayer = tree
			slog.Debug("Config file loaded.", "path", path)
		} else {
			slog.Debug("Config file absent, continuing with defaults.", "path", path)
		}
	}

	cfg := New(expandDotted(opts.FlagDefaults), opts.Defaults, fileLayer, expandDotted(opts.CLI))

	for _, key := range opts.Required {
		if !cfg.Has(key) {
			return nil, &MissingOptionError{Option: key}
		}
	}
	return cfg, nil
}

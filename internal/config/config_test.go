package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuild_LayeringPrecedence(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, "config.yaml", "b: 3\nc: 4\n")

	// --- Act ---
	cfg, err := Build(context.Background(), Options{
		Defaults: map[string]any{"a": 1, "b": 2},
		Path:     path,
		CLI:      map[string]any{"a": 9},
	})

	// --- Assert ---
	// defaults < config file < explicitly-set CLI values.
	require.NoError(t, err)
	require.Equal(t, 9, cfg.GetInt("a"))
	require.Equal(t, 3, cfg.GetInt("b"))
	require.Equal(t, 4, cfg.GetInt("c"))
}

func TestBuild_FlagDefaultsAreTheBottomLayer(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, "config.yaml", "to: tle\n")

	// --- Act ---
	cfg, err := Build(context.Background(), Options{
		FlagDefaults: map[string]any{"to": "keplerian", "tolerance": 1e-6},
		Path:         path,
	})

	// --- Assert ---
	// The file overrides a flag default; a flag default no other layer
	// touches still resolves.
	require.NoError(t, err)
	require.Equal(t, "tle", cfg.GetString("to"))
	require.Equal(t, 1e-6, cfg.GetFloat("tolerance"))
}

func TestBuild_UnsetCLIDoesNotOverride(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, "config.yaml", "duration: PT10M\n")

	// --- Act ---
	// An empty CLI overlay leaves the file value in place.
	cfg, err := Build(context.Background(), Options{
		Defaults: map[string]any{},
		Path:     path,
		CLI:      map[string]any{},
	})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "PT10M", cfg.GetString("duration"))
}

func TestBuild_MalformedFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, "config.yaml", "orbits:\n  iss: [unclosed\n")

	// --- Act ---
	_, err := Build(context.Background(), Options{Path: path})

	// --- Assert ---
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, path, loadErr.Path)
}

func TestBuild_AbsentFileIsSkipped(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	// --- Act ---
	cfg, err := Build(context.Background(), Options{
		Defaults: map[string]any{"a": 1},
		Path:     path,
	})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 1, cfg.GetInt("a"))
}

func TestBuild_MissingRequiredOption(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, "config.yaml", "other: value\n")

	// --- Act ---
	_, err := Build(context.Background(), Options{
		Defaults: map[string]any{},
		Path:     path,
		CLI:      map[string]any{},
		Required: []string{"orbit"},
	})

	// --- Assert ---
	var missing *MissingOptionError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "orbit", missing.Option)
}

func TestBuild_RequiredSatisfiedByAnyLayer(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, "config.yaml", "orbit: iss\n")

	// --- Act ---
	cfg, err := Build(context.Background(), Options{
		Path:     path,
		Required: []string{"orbit"},
	})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "iss", cfg.GetString("orbit"))
}

func TestBuild_DottedCLIKeysReachNestedValues(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, "config.yaml", "orekit:\n  data-dir: /from/file\n  data-url: http://example.test\n")

	// --- Act ---
	cfg, err := Build(context.Background(), Options{
		Path: path,
		CLI:  map[string]any{"orekit.data-dir": "/from/cli"},
	})

	// --- Assert ---
	// The dotted override replaces only its own leaf.
	require.NoError(t, err)
	require.Equal(t, "/from/cli", cfg.GetString("orekit.data-dir"))
	require.Equal(t, "http://example.test", cfg.GetString("orekit.data-url"))
}

func TestConfig_AccessorsAndKeys(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := New(map[string]any{
		"log-level": "info",
		"workers":   4,
		"ratio":     0.5,
		"enabled":   true,
		"orekit":    map[string]any{"data-dir": ".data"},
	})

	// --- Act / Assert ---
	require.Equal(t, "info", cfg.GetString("log-level"))
	require.Equal(t, 4, cfg.GetInt("workers"))
	require.Equal(t, 0.5, cfg.GetFloat("ratio"))
	require.True(t, cfg.GetBool("enabled"))
	require.Equal(t, ".data", cfg.GetString("orekit.data-dir"))
	require.False(t, cfg.Has("missing"))
	require.Equal(t, []string{"enabled", "log-level", "orekit.data-dir", "ratio", "workers"}, cfg.Keys())
}

func TestConfig_AccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	layer := map[string]any{"orbits": map[string]any{"iss": map[string]any{"catnr": 25544}}}
	cfg := New(layer)

	// --- Act ---
	// Mutating the source layer or a returned view must not affect the
	// frozen configuration.
	layer["orbits"].(map[string]any)["iss"] = nil
	view := cfg.Sub("orbits")
	view["iss"] = "clobbered"

	// --- Assert ---
	fresh := cfg.Sub("orbits")
	iss, ok := fresh["iss"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 25544, iss["catnr"])
}

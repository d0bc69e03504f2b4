package draworbit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/orbitool/internal/config"
	"github.com/vk/orbitool/internal/plugin"
	"github.com/vk/orbitool/plugins/orekit"
)

func testInvocation(t *testing.T, values map[string]any) *plugin.Invocation {
	t.Helper()
	values["orbits"] = map[string]any{
		"iss": map[string]any{"line1": "1 25544U ...", "line2": "2 25544 ..."},
	}
	rtx := plugin.NewRuntimeContext()
	require.NoError(t, rtx.Contribute(orekit.Key, &orekit.Bridge{}))
	rtx.Seal()
	return &plugin.Invocation{Key: Key, Config: config.New(values), Runtime: rtx}
}

func TestRun_WritesTrackDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	outPath := filepath.Join(t.TempDir(), "iss.czml")
	inv := testInvocation(t, map[string]any{
		"orbit":    "iss",
		"output":   outPath,
		"duration": "PT2H",
	})

	// --- Act ---
	code, err := (&Plugin{}).Run(context.Background(), inv)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 0, code)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	orbit, ok := doc["orbit"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "iss", orbit["id"])
	require.Equal(t, "tle", orbit["kind"])
	clock, ok := doc["clock"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, clock["interval"], "/")
	require.Equal(t, 600.0, clock["multiplier"])
}

func TestRun_DefaultWindowWhenUnset(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	outPath := filepath.Join(t.TempDir(), "iss.czml")
	inv := testInvocation(t, map[string]any{
		"orbit":  "iss",
		"output": outPath,
	})

	// --- Act ---
	code, err := (&Plugin{}).Run(context.Background(), inv)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.FileExists(t, outPath)
}

func TestRun_RejectsNonPositiveWindow(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	inv := testInvocation(t, map[string]any{
		"orbit":    "iss",
		"output":   filepath.Join(t.TempDir(), "iss.czml"),
		"duration": "P0D",
	})

	// --- Act ---
	_, err := (&Plugin{}).Run(context.Background(), inv)

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "greater than zero")
}

func TestRun_RejectsStepLongerThanWindow(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	inv := testInvocation(t, map[string]any{
		"orbit":    "iss",
		"output":   filepath.Join(t.TempDir(), "iss.czml"),
		"duration": "PT1H",
		"step":     "PT2H",
	})

	// --- Act ---
	_, err := (&Plugin{}).Run(context.Background(), inv)

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "no longer than the drawn window")
}

func TestRun_RejectsUnparsableWindow(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	inv := testInvocation(t, map[string]any{
		"orbit":    "iss",
		"output":   filepath.Join(t.TempDir(), "iss.czml"),
		"duration": "someday",
	})

	// --- Act ---
	_, err := (&Plugin{}).Run(context.Background(), inv)

	// --- Assert ---
	require.Error(t, err)
}

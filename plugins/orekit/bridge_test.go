package orekit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/orbitool/internal/config"
)

func initBridge(t *testing.T, cfg *config.Config) *Bridge {
	t.Helper()
	contribution, err := (&Plugin{}).Init(context.Background(), cfg)
	require.NoError(t, err)
	bridge, ok := contribution.(*Bridge)
	require.True(t, ok)
	t.Cleanup(func() { _ = bridge.Close(context.Background()) })
	return bridge
}

func TestInit_SeedsBuiltinInstallation(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dataDir := filepath.Join(t.TempDir(), "data")
	cfg := config.New(map[string]any{
		"orekit": map[string]any{"data-dir": dataDir},
	})

	// --- Act ---
	bridge := initBridge(t, cfg)

	// --- Assert ---
	require.True(t, bridge.Ready())
	require.Equal(t, dataDir, bridge.DataDir())
	require.Equal(t, builtinSource, bridge.Source())
	marker, err := os.ReadFile(filepath.Join(dataDir, markerFile))
	require.NoError(t, err)
	require.Equal(t, builtinSource+"\n", string(marker))
}

func TestInit_DownloadsBundleWhenURLConfigured(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("bundle-payload"))
	}))
	t.Cleanup(srv.Close)
	dataDir := filepath.Join(t.TempDir(), "data")
	cfg := config.New(map[string]any{
		"orekit": map[string]any{
			"data-dir": dataDir,
			"data-url": srv.URL,
		},
	})

	// --- Act ---
	bridge := initBridge(t, cfg)

	// --- Assert ---
	require.Equal(t, srv.URL, bridge.Source())
	bundle, err := os.ReadFile(filepath.Join(dataDir, bundleFile))
	require.NoError(t, err)
	require.Equal(t, "bundle-payload", string(bundle))
}

func TestInit_ExistingInstallationSkipsDownload(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A marker from a previous run must win over a configured data-url.
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("bundle-payload"))
	}))
	t.Cleanup(srv.Close)
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, markerFile), []byte("https://old.example/bundle\n"), 0o644))
	cfg := config.New(map[string]any{
		"orekit": map[string]any{
			"data-dir": dataDir,
			"data-url": srv.URL,
		},
	})

	// --- Act ---
	bridge := initBridge(t, cfg)

	// --- Assert ---
	require.Equal(t, "https://old.example/bundle", bridge.Source())
	require.Equal(t, int32(0), calls.Load(), "an existing installation must not be re-downloaded")
}

func TestInit_FailedDownloadIsFatal(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	t.Cleanup(srv.Close)
	dataDir := filepath.Join(t.TempDir(), "data")
	cfg := config.New(map[string]any{
		"orekit": map[string]any{
			"data-dir": dataDir,
			"data-url": srv.URL,
		},
	})

	// --- Act ---
	_, err := (&Plugin{}).Init(context.Background(), cfg)

	// --- Assert ---
	require.Error(t, err)
	require.NoFileExists(t, filepath.Join(dataDir, markerFile),
		"a failed installation must not be marked complete")
}

func TestClose_MarksBridgeNotReady(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := config.New(map[string]any{
		"orekit": map[string]any{"data-dir": filepath.Join(t.TempDir(), "data")},
	})
	contribution, err := (&Plugin{}).Init(context.Background(), cfg)
	require.NoError(t, err)
	bridge := contribution.(*Bridge)

	// --- Act ---
	require.NoError(t, bridge.Close(context.Background()))

	// --- Assert ---
	require.False(t, bridge.Ready())
}

package orekit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"resty.dev/v3"

	"github.com/vk/orbitool/internal/config"
	"github.com/vk/orbitool/internal/ctxlog"
)

const (
	// markerFile records where the orbit-data installation came from.
	markerFile = "orbit-data.source"
	// bundleFile is the downloaded orbit-data archive.
	bundleFile = "orbit-data.bundle"
	// builtinSource marks an installation seeded without a download.
	builtinSource = "builtin"

	// defaultCatalogURL is the GP element query endpoint used by FetchTLE.
	defaultCatalogURL = "https://celestrak.org/NORAD/elements/gp.php"

	// fetchRetries bounds the backoff policy for remote fetches.
	fetchRetries = 3
)

// Bridge is the process-wide handle to the numeric runtime. It is created
// exactly once per process during the postinit phase and shared read-only
// by all apps afterwards.
type Bridge struct {
	dataDir    string
	catalogURL string
	source     string
	client     *resty.Client
	ready      bool
}

// Init implements plugin.Postinit. It resolves the data directory from the
// finalized configuration, downloads the orbit-data bundle when the
// installation is missing and a source URL is configured, and returns the
// ready Bridge as this plugin's runtime contribution.
func (p *Plugin) Init(ctx context.Context, cfg *config.Config) (any, error) {
	logger := ctxlog.FromContext(ctx)

	dataDir := cfg.GetString("orekit.data-dir")
	if dataDir == "" {
		dataDir = ".data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data directory %s: %w", dataDir, err)
	}

	bridge := &Bridge{
		dataDir:    dataDir,
		catalogURL: defaultCatalogURL,
		client:     resty.New(),
	}
	if u := cfg.GetString("orekit.catalog-url"); u != "" {
		bridge.catalogURL = u
	}

	marker := filepath.Join(dataDir, markerFile)
	if _, err := os.Stat(marker); err == nil {
		raw, err := os.ReadFile(marker)
		if err != nil {
			return nil, fmt.Errorf("cannot read data marker %s: %w", marker, err)
		}
		bridge.source = strings.TrimSpace(string(raw))
		logger.Debug("Orbit-data installation present.", "dir", dataDir, "source", bridge.source)
	} else {
		source := builtinSource
		if dataURL := cfg.GetString("orekit.data-url"); dataURL != "" {
			if err := bridge.downloadBundle(ctx, dataURL); err != nil {
				return nil, err
			}
			source = dataURL
		}
		if err := os.WriteFile(marker, []byte(source+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("cannot write data marker %s: %w", marker, err)
		}
		bridge.source = source
		logger.Info("Orbit-data installation initialized.", "dir", dataDir, "source", source)
	}

	bridge.ready = true
	return bridge, nil
}

// downloadBundle fetches the orbit-data archive, retrying transient
// failures under an exponential backoff policy. Client errors (4xx) are
// permanent and abort the retry loop.
func (b *Bridge) downloadBundle(ctx context.Context, dataURL string) error {
	logger := ctxlog.FromContext(ctx)
	target := filepath.Join(b.dataDir, bundleFile)

	var body []byte
	op := func() error {
		res, err := b.client.R().SetContext(ctx).Get(dataURL)
		if err != nil {
			return err
		}
		if res.IsError() {
			err := fmt.Errorf("orbit-data download returned HTTP %d", res.StatusCode())
			if res.StatusCode() >= 400 && res.StatusCode() < 500 {
				return backoff.Permanent(err)
			}
			return err
		}
		body = []byte(res.String())
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), fetchRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return fmt.Errorf("failed to download orbit-data bundle from %s: %w", dataURL, err)
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return fmt.Errorf("cannot write orbit-data bundle %s: %w", target, err)
	}
	logger.Debug("Orbit-data bundle downloaded.", "url", dataURL, "bytes", len(body))
	return nil
}

// DataDir returns the resolved orbit-data directory.
func (b *Bridge) DataDir() string {
	return b.dataDir
}

// Source returns where the orbit-data installation came from.
func (b *Bridge) Source() string {
	return b.source
}

// Ready reports whether the bridge finished initialization.
func (b *Bridge) Ready() bool {
	return b.ready
}

// Close implements plugin.Closer; the lifecycle orchestrator calls it
// best-effort at process exit.
func (b *Bridge) Close(_ context.Context) error {
	b.ready = false
	b.client.Close()
	return nil
}

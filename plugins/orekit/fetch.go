package orekit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"github.com/vk/orbitool/internal/ctxlog"
)

// FetchTLE queries the element catalog for the given NORAD catalog number
// and returns the two TLE lines. Transient failures retry under the same
// backoff policy as the bundle download.
func (b *Bridge) FetchTLE(ctx context.Context, catnr int) (string, string, error) {
	logger := ctxlog.FromContext(ctx)

	var payload string
	op := func() error {
		res, err := b.client.R().SetContext(ctx).
			SetQueryParam("CATNR", strconv.Itoa(catnr)).
			SetQueryParam("FORMAT", "TLE").
			Get(b.catalogURL)
		if err != nil {
			return err
		}
		if res.IsError() {
			err := fmt.Errorf("catalog query for %d returned HTTP %d", catnr, res.StatusCode())
			if res.StatusCode() >= 400 && res.StatusCode() < 500 {
				return backoff.Permanent(err)
			}
			return err
		}
		payload = res.String()
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), fetchRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", "", fmt.Errorf("failed to fetch TLE for catalog number %d: %w", catnr, err)
	}

	var lines []string
	for _, line := range strings.Split(payload, "\n") {
		if trimmed := strings.TrimRight(line, "\r "); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	// The catalog may prefix the element set with an object name line.
	switch len(lines) {
	case 2:
		logger.Debug("TLE fetched from catalog.", "catnr", catnr)
		return lines[0], lines[1], nil
	case 3:
		logger.Debug("TLE fetched from catalog.", "catnr", catnr, "name", strings.TrimSpace(lines[0]))
		return lines[1], lines[2], nil
	default:
		return "", "", fmt.Errorf("catalog returned %d lines for catalog number %d, expected a TLE", len(lines), catnr)
	}
}

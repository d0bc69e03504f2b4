package orekit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

func testBridge(t *testing.T, handler http.HandlerFunc) *Bridge {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Bridge{catalogURL: srv.URL, client: resty.New()}
}

func TestFetchTLE_NamePrefixedResponse(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	bridge := testBridge(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ISS (ZARYA)\r\nline one\r\nline two\r\n"))
	})

	// --- Act ---
	line1, line2, err := bridge.FetchTLE(context.Background(), 25544)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "line one", line1)
	require.Equal(t, "line two", line2)
}

func TestFetchTLE_BareResponse(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	bridge := testBridge(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("line one\nline two\n"))
	})

	// --- Act ---
	line1, line2, err := bridge.FetchTLE(context.Background(), 25544)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "line one", line1)
	require.Equal(t, "line two", line2)
}

func TestFetchTLE_ClientErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var calls atomic.Int32
	bridge := testBridge(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "no such object", http.StatusNotFound)
	})

	// --- Act ---
	_, _, err := bridge.FetchTLE(context.Background(), 99999)

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "HTTP 404")
	require.Equal(t, int32(1), calls.Load(), "4xx responses must not be retried")
}

func TestFetchTLE_TransientErrorIsRetried(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var calls atomic.Int32
	bridge := testBridge(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("line one\nline two\n"))
	})

	// --- Act ---
	line1, _, err := bridge.FetchTLE(context.Background(), 25544)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "line one", line1)
	require.Equal(t, int32(2), calls.Load())
}

func TestFetchTLE_TruncatedResponse(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	bridge := testBridge(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("only one line\n"))
	})

	// --- Act ---
	_, _, err := bridge.FetchTLE(context.Background(), 25544)

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected a TLE")
}

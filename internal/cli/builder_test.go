package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_TopLevelFlagConflict(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	b := NewBuilder("orbitool", &bytes.Buffer{})
	b.SetOwner("first-plugin")
	_, err := b.Flags().String("orbit", "", "usage")
	require.NoError(t, err)

	// --- Act ---
	b.SetOwner("second-plugin")
	_, err = b.Flags().String("orbit", "", "usage")

	// --- Assert ---
	var conflict *ArgumentConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "orbit", conflict.Name)
	require.Equal(t, "first-plugin", conflict.First)
	require.Equal(t, "second-plugin", conflict.Second)
}

func TestBuilder_SubcommandConflict(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	b := NewBuilder("orbitool", &bytes.Buffer{})
	b.SetOwner("first-plugin")
	_, err := b.Subcommand("convert", "first")
	require.NoError(t, err)

	// --- Act ---
	b.SetOwner("second-plugin")
	_, err = b.Subcommand("convert", "second")

	// --- Assert ---
	var conflict *ArgumentConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "convert", conflict.Name)
	require.Contains(t, conflict.Error(), "first-plugin")
	require.Contains(t, conflict.Error(), "second-plugin")
}

func TestBuilder_SameFlagInDifferentSubcommands(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	b := NewBuilder("orbitool", &bytes.Buffer{})
	s1, err := b.Subcommand("check-tle", "")
	require.NoError(t, err)
	s2, err := b.Subcommand("draw-orbit", "")
	require.NoError(t, err)

	// --- Act / Assert ---
	// Subcommand namespaces are independent.
	_, err = s1.String("orbit", "", "usage")
	require.NoError(t, err)
	_, err = s2.String("orbit", "", "usage")
	require.NoError(t, err)
}

func TestBuilder_RequiredKeysAreScoped(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	b := NewBuilder("orbitool", &bytes.Buffer{})
	sub, err := b.Subcommand("check-tle", "")
	require.NoError(t, err)
	_, err = sub.String("orbit", "", "usage")
	require.NoError(t, err)
	require.NoError(t, sub.MarkRequired("orbit"))

	other, err := b.Subcommand("convert", "")
	require.NoError(t, err)
	_, err = other.String("from", "", "usage")
	require.NoError(t, err)
	require.NoError(t, other.MarkRequired("from"))

	// --- Act / Assert ---
	// Each app enforces only its own required flags.
	require.Equal(t, []string{"orbit"}, b.Required("check-tle"))
	require.Equal(t, []string{"from"}, b.Required("convert"))
	require.Empty(t, b.Required("draw-orbit"))
}

func TestBuilder_DefaultsAreScopedAndSkipZeroValues(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	b := NewBuilder("orbitool", &bytes.Buffer{})
	_, err := b.Flags().String("log-format", "text", "usage")
	require.NoError(t, err)
	_, err = b.Flags().String("data-dir", ".data", "usage")
	require.NoError(t, err)
	require.NoError(t, b.Flags().BindConfig("data-dir", "orekit.data-dir"))

	conv, err := b.Subcommand("convert", "")
	require.NoError(t, err)
	_, err = conv.String("to", "keplerian", "usage")
	require.NoError(t, err)
	_, err = conv.String("from", "", "usage")
	require.NoError(t, err)

	comp, err := b.Subcommand("compare-orbits", "")
	require.NoError(t, err)
	_, err = comp.Float("tolerance", 1e-6, "usage")
	require.NoError(t, err)

	// --- Act / Assert ---
	// Each app sees the top-level defaults plus its own; zero defaults
	// (like the empty --from) are omitted so required checks still fire.
	require.Equal(t, map[string]any{
		"log-format":      "text",
		"orekit.data-dir": ".data",
		"to":              "keplerian",
	}, b.Defaults("convert"))
	require.Equal(t, map[string]any{
		"log-format":      "text",
		"orekit.data-dir": ".data",
		"tolerance":       1e-6,
	}, b.Defaults("compare-orbits"))
}

func TestBuilder_BindConfigRemapsOverlayKey(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	b := NewBuilder("orbitool", &bytes.Buffer{})
	_, err := b.Flags().String("data-dir", "", "usage")
	require.NoError(t, err)
	require.NoError(t, b.Flags().BindConfig("data-dir", "orekit.data-dir"))

	// --- Act ---
	res, err := b.Parse([]string{"--data-dir", "/tmp/data"})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "/tmp/data", res.Values["orekit.data-dir"])
	require.NotContains(t, res.Values, "data-dir")
}

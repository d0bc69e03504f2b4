package orekit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vk/orbitool/internal/config"
)

// Kind identifies the representation family of an orbit definition.
type Kind int

const (
	// KindTLE is a two-line element set, inline or fetched by catalog number.
	KindTLE Kind = iota
	// KindKeplerian is a classical element set.
	KindKeplerian
)

// String returns the kind name used in config files and flag values.
func (k Kind) String() string {
	switch k {
	case KindTLE:
		return "tle"
	case KindKeplerian:
		return "keplerian"
	default:
		return "unknown"
	}
}

// Definition is one named orbit from the configuration's "orbits" section.
type Definition struct {
	Name  string
	Kind  Kind
	Line1 string
	Line2 string
	// Elements holds the configured keplerian elements (a, e, i, w, omega, v).
	Elements map[string]any
}

// ReadOrbit resolves a named orbit definition. A definition is a TLE when
// it carries line1/line2, a catalog reference when it carries catnr (the
// element set is fetched through the bridge), or keplerian when it carries
// a semi-major axis.
func ReadOrbit(ctx context.Context, cfg *config.Config, name string, bridge *Bridge) (*Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("no orbit name given")
	}
	orbits := cfg.Sub("orbits")
	if orbits == nil {
		return nil, fmt.Errorf("configuration has no orbits section")
	}
	raw, ok := orbits[name]
	if !ok {
		return nil, fmt.Errorf("no orbit definition found for %q", name)
	}
	def, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("orbit definition %q is not a mapping", name)
	}

	switch {
	case def["catnr"] != nil:
		catnr, err := toCatalogNumber(def["catnr"])
		if err != nil {
			return nil, fmt.Errorf("orbit %q: %w", name, err)
		}
		line1, line2, err := bridge.FetchTLE(ctx, catnr)
		if err != nil {
			return nil, err
		}
		return &Definition{Name: name, Kind: KindTLE, Line1: line1, Line2: line2}, nil

	case def["line1"] != nil:
		line1, _ := def["line1"].(string)
		line2, _ := def["line2"].(string)
		if line1 == "" || line2 == "" {
			return nil, fmt.Errorf("orbit %q: TLE definition needs both line1 and line2", name)
		}
		return &Definition{Name: name, Kind: KindTLE, Line1: line1, Line2: line2}, nil

	case def["a"] != nil:
		elements := make(map[string]any, len(def))
		for k, v := range def {
			elements[k] = v
		}
		return &Definition{Name: name, Kind: KindKeplerian, Elements: elements}, nil

	default:
		return nil, fmt.Errorf("unable to determine orbit kind for %q", name)
	}
}

func toCatalogNumber(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		catnr, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("invalid catalog number %q", n)
		}
		return catnr, nil
	default:
		return 0, fmt.Errorf("invalid catalog number %v", v)
	}
}

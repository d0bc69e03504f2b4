// Package compareorbits implements the compare-orbits app: element-wise
// comparison of two configured orbit definitions. Comparing propagated
// trajectories over time belongs to the numeric engine and is out of scope.
package compareorbits

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/vk/orbitool/internal/cli"
	"github.com/vk/orbitool/internal/ctxlog"
	"github.com/vk/orbitool/internal/plugin"
	"github.com/vk/orbitool/plugins/orekit"
)

// Key is the app's registry key.
const Key = "compare-orbits"

// ExitDiffer is the app-specific exit code for orbits that do not match.
const ExitDiffer = 3

// Plugin registers the compare-orbits preinit and app entries.
type Plugin struct{}

// Register implements plugin.Module.
func (p *Plugin) Register(r *plugin.Registry) error {
	if err := r.RegisterPreinit(Key, p); err != nil {
		return err
	}
	return r.RegisterApp(Key, p)
}

// AddArgs implements plugin.Preinit.
func (p *Plugin) AddArgs(b *cli.Builder) error {
	sub, err := b.Subcommand(Key, "Compare two orbit definitions element by element.")
	if err != nil {
		return err
	}
	_, err = sub.Float("tolerance", 1e-6, "Maximum relative difference treated as equal for numeric elements.")
	return err
}

// Run implements plugin.App. The two orbits to compare are the positional
// arguments.
func (p *Plugin) Run(ctx context.Context, inv *plugin.Invocation) (int, error) {
	logger := ctxlog.FromContext(ctx)

	if len(inv.Args) != 2 {
		fmt.Fprintf(inv.Out, "compare-orbits needs exactly two orbit names, got %d\n", len(inv.Args))
		return 2, nil
	}

	bridge, err := orekit.FromInvocation(inv)
	if err != nil {
		return 0, err
	}

	left, err := orekit.ReadOrbit(ctx, inv.Config, inv.Args[0], bridge)
	if err != nil {
		return 0, err
	}
	right, err := orekit.ReadOrbit(ctx, inv.Config, inv.Args[1], bridge)
	if err != nil {
		return 0, err
	}
	logger.Info("Comparing orbits.", "left", left.Name, "right", right.Name)

	if left.Kind != right.Kind {
		fmt.Fprintf(inv.Out, "orbits differ in kind: %s is %s, %s is %s\n", left.Name, left.Kind, right.Name, right.Kind)
		return ExitDiffer, nil
	}

	var diffs []string
	switch left.Kind {
	case orekit.KindTLE:
		diffs = compareTLE(left, right)
	case orekit.KindKeplerian:
		diffs = compareElements(left.Elements, right.Elements, inv.Config.GetFloat("tolerance"))
	}

	if len(diffs) == 0 {
		fmt.Fprintf(inv.Out, "orbits %q and %q match\n", left.Name, right.Name)
		return 0, nil
	}
	fmt.Fprintf(inv.Out, "orbits %q and %q differ:\n", left.Name, right.Name)
	for _, d := range diffs {
		fmt.Fprintf(inv.Out, "  - %s\n", d)
	}
	return ExitDiffer, nil
}

func compareTLE(left, right *orekit.Definition) []string {
	var diffs []string
	if left.Line1 != right.Line1 {
		diffs = append(diffs, fmt.Sprintf("line1 differs:\n      %s\n      %s", left.Line1, right.Line1))
	}
	if left.Line2 != right.Line2 {
		diffs = append(diffs, fmt.Sprintf("line2 differs:\n      %s\n      %s", left.Line2, right.Line2))
	}
	return diffs
}

func compareElements(left, right map[string]any, tolerance float64) []string {
	keys := make(map[string]struct{}, len(left)+len(right))
	for k := range left {
		keys[k] = struct{}{}
	}
	for k := range right {
		keys[k] = struct{}{}
	}
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	var diffs []string
	for _, k := range names {
		lv, lok := left[k]
		rv, rok := right[k]
		switch {
		case !lok:
			diffs = append(diffs, fmt.Sprintf("element %q only set on the right (%v)", k, rv))
		case !rok:
			diffs = append(diffs, fmt.Sprintf("element %q only set on the left (%v)", k, lv))
		default:
			lf, lnum := toFloat(lv)
			rf, rnum := toFloat(rv)
			if lnum && rnum {
				if !withinTolerance(lf, rf, tolerance) {
					diffs = append(diffs, fmt.Sprintf("element %q differs: %v vs %v", k, lv, rv))
				}
			} else if fmt.Sprint(lv) != fmt.Sprint(rv) {
				diffs = append(diffs, fmt.Sprintf("element %q differs: %v vs %v", k, lv, rv))
			}
		}
	}
	return diffs
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// withinTolerance compares relatively, falling back to absolute comparison
// around zero.
func withinTolerance(a, b, tolerance float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		scale = 1
	}
	return math.Abs(a-b) <= tolerance*scale
}

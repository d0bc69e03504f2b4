package config

import (
	"context"
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// HCLLoader parses attribute-only HCL config files into the generic map
// tree. Nested sections are written as object attributes:
//
//	orekit = { data-dir = ".data" }
type HCLLoader struct{}

// Load implements Loader.
func (l *HCLLoader) Load(_ context.Context, path string) (map[string]any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &LoadError{Path: path, Err: diags}
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, &LoadError{Path: path, Err: diags}
	}

	tree := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		// Config files are static documents; no eval context is provided,
		// so variable references fail as malformed config.
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, &LoadError{Path: path, Err: diags}
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("attribute %q: %w", name, err)}
		}
		tree[name] = native
	}
	return tree, nil
}

// ctyToNative converts an HCL value into the plain Go types the YAML loader
// produces, so both formats feed the overlay identically.
func ctyToNative(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return int(i), nil
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any)
		for k, v := range val.AsValueMap() {
			native, err := ctyToNative(v)
			if err != nil {
				return nil, err
			}
			m[k] = native
		}
		return m, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var s []any
		for _, v := range val.AsValueSlice() {
			native, err := ctyToNative(v)
			if err != nil {
				return nil, err
			}
			s = append(s, native)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

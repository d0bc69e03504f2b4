package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader is the interface for a format-specific configuration loader. Load
// reads the file at path and translates it into the generic map tree used
// by the overlay algorithm.
type Loader interface {
	Load(ctx context.Context, path string) (map[string]any, error)
}

// ForPath selects a loader by file extension: .hcl files use the HCL
// loader, everything else is treated as YAML.
func ForPath(path string) Loader {
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return &HCLLoader{}
	}
	return &YAMLLoader{}
}

// YAMLLoader parses YAML config files into the generic map tree.
type YAMLLoader struct{}

// Load implements Loader.
func (l *YAMLLoader) Load(_ context.Context, path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return normalizeTree(tree), nil
}

// normalizeTree rewrites the decoded document so that every nested mapping
// is a map[string]any, regardless of how the decoder typed it.
func normalizeTree(tree map[string]any) map[string]any {
	out := make(map[string]any, len(tree))
	for k, v := range tree {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeTree(val)
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalizeValue(item)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = normalizeValue(item)
		}
		return s
	default:
		return v
	}
}

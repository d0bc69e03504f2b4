package config

import (
	"sort"
	"strings"
)

// Config is the frozen result of overlaying the configuration layers.
// Values are held as a nested map tree; dotted keys address nested values,
// so Get("orekit.data-dir") reads values["orekit"]["data-dir"]. All
// accessors return copies, keeping the tree immutable after construction.
type Config struct {
	values map[string]any
}

// New builds a Config by overlaying the given layers in order. Nested maps
// are merged key-by-key with later layers overriding earlier identically
// named keys; scalar values replace wholesale. The layers are deep-copied,
// so callers keep no handle into the frozen tree.
func New(layers ...map[string]any) *Config {
	values := make(map[string]any)
	for _, layer := range layers {
		values = mergeMaps(values, layer)
	}
	return &Config{values: values}
}

// Has reports whether the dotted key resolves to a non-nil value.
func (c *Config) Has(key string) bool {
	v, ok := c.lookup(key)
	return ok && v != nil
}

// Get returns the value at the dotted key. Composite values are copied.
func (c *Config) Get(key string) (any, bool) {
	v, ok := c.lookup(key)
	if !ok {
		return nil, false
	}
	return copyValue(v), true
}

// GetString returns the string at key, or the empty string when absent or
// of another type.
func (c *Config) GetString(key string) string {
	if v, ok := c.lookup(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt returns the integer at key, accepting the numeric types the YAML
// and HCL loaders produce. Absent or non-numeric keys yield zero.
func (c *Config) GetInt(key string) int {
	v, ok := c.lookup(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// GetFloat returns the float64 at key, converting integer values.
func (c *Config) GetFloat(key string) float64 {
	v, ok := c.lookup(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// GetBool returns the bool at key, or false when absent or of another type.
func (c *Config) GetBool(key string) bool {
	if v, ok := c.lookup(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Sub returns a copy of the nested map at key, or nil when the key is
// absent or not a map. Apps use this for free-form sections like "orbits".
func (c *Config) Sub(key string) map[string]any {
	v, ok := c.lookup(key)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return copyValue(m).(map[string]any)
}

// Keys returns the sorted dotted paths of every leaf value.
func (c *Config) Keys() []string {
	var keys []string
	collectKeys("", c.values, &keys)
	sort.Strings(keys)
	return keys
}

func (c *Config) lookup(key string) (any, bool) {
	parts := strings.Split(key, ".")
	var cur any = c.values
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func collectKeys(prefix string, m map[string]any, out *[]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok && len(sub) > 0 {
			collectKeys(key, sub, out)
			continue
		}
		*out = append(*out, key)
	}
}

// mergeMaps returns base with overlay applied; both inputs are left intact.
func mergeMaps(base, overlay map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = copyValue(v)
	}
	for k, v := range overlay {
		if baseMap, ok := merged[k].(map[string]any); ok {
			if overlayMap, ok := v.(map[string]any); ok {
				merged[k] = mergeMaps(baseMap, overlayMap)
				continue
			}
		}
		merged[k] = copyValue(v)
	}
	return merged
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = copyValue(item)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = copyValue(item)
		}
		return s
	default:
		return v
	}
}

// expandDotted turns a flat map with dotted keys (the CLI overlay) into a
// nested tree compatible with the other layers.
func expandDotted(flat map[string]any) map[string]any {
	tree := make(map[string]any)
	for key, v := range flat {
		parts := strings.Split(key, ".")
		cur := tree
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[part] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = v
	}
	return tree
}

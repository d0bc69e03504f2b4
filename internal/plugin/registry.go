package plugin

import (
	"fmt"
	"log/slog"
	"sort"
)

// DuplicateExtensionError reports two entries under the same extension
// point sharing a key.
type DuplicateExtensionError struct {
	Point Point
	Key   string
}

// Error implements the error interface for DuplicateExtensionError.
func (e *DuplicateExtensionError) Error() string {
	return fmt.Sprintf("duplicate %s extension key %q", e.Point, e.Key)
}

// PreinitEntry pairs a preinit capability with its registry key.
type PreinitEntry struct {
	Key     string
	Preinit Preinit
}

// PostinitEntry pairs a postinit capability with its registry key.
type PostinitEntry struct {
	Key      string
	Postinit Postinit
}

// Registry holds the registered capabilities for a single process
// invocation, partitioned by extension point. Entries are immutable once
// registered.
type Registry struct {
	preinits  map[string]Preinit
	postinits map[string]Postinit
	apps      map[string]App
}

// New creates and initializes an empty Registry instance.
func New() *Registry {
	return &Registry{
		preinits:  make(map[string]Preinit),
		postinits: make(map[string]Postinit),
		apps:      make(map[string]App),
	}
}

// RegisterPreinit adds a preinit capability under key.
func (r *Registry) RegisterPreinit(key string, p Preinit) error {
	if _, exists := r.preinits[key]; exists {
		return &DuplicateExtensionError{Point: PointPreinit, Key: key}
	}
	slog.Debug("Registering preinit plugin.", "key", key)
	r.preinits[key] = p
	return nil
}

// RegisterPostinit adds a postinit capability under key.
func (r *Registry) RegisterPostinit(key string, p Postinit) error {
	if _, exists := r.postinits[key]; exists {
		return &DuplicateExtensionError{Point: PointPostinit, Key: key}
	}
	slog.Debug("Registering postinit plugin.", "key", key)
	r.postinits[key] = p
	return nil
}

// RegisterApp adds an app capability under key.
func (r *Registry) RegisterApp(key string, a App) error {
	if _, exists := r.apps[key]; exists {
		return &DuplicateExtensionError{Point: PointApp, Key: key}
	}
	slog.Debug("Registering app plugin.", "key", key)
	r.apps[key] = a
	return nil
}

// Preinits returns the preinit entries in ascending key order. Discovery is
// deterministic for a fixed plugin set so that argument registration order,
// and with it help text and conflict reporting, is reproducible.
func (r *Registry) Preinits() []PreinitEntry {
	keys := sortedKeys(r.preinits)
	entries := make([]PreinitEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, PreinitEntry{Key: k, Preinit: r.preinits[k]})
	}
	return entries
}

// Postinits returns the postinit entries in ascending key order, the same
// order runtime initialization runs them in.
func (r *Registry) Postinits() []PostinitEntry {
	keys := sortedKeys(r.postinits)
	entries := make([]PostinitEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, PostinitEntry{Key: k, Postinit: r.postinits[k]})
	}
	return entries
}

// App looks up an app capability by key.
func (r *Registry) App(key string) (App, bool) {
	a, ok := r.apps[key]
	return a, ok
}

// AppKeys returns the registered app keys in ascending order.
func (r *Registry) AppKeys() []string {
	return sortedKeys(r.apps)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package cli

import (
	"flag"
	"fmt"
	"io"
	"sort"
)

// Builder accumulates the command-line surface before any parsing happens.
// The core registers its global flags first, then each preinit plugin is
// given the builder to add top-level flags or its own subcommand namespace.
// Names are claimed first-come within their scope; a second claim fails with
// an ArgumentConflictError.
type Builder struct {
	name   string
	output io.Writer
	owner  string

	global   *FlagSet
	subs     map[string]*FlagSet
	subDescs map[string]string
	subOrder []string
}

// NewBuilder creates a Builder for the named tool. All usage and error text
// is written to output.
func NewBuilder(name string, output io.Writer) *Builder {
	b := &Builder{
		name:     name,
		output:   output,
		subs:     make(map[string]*FlagSet),
		subDescs: make(map[string]string),
	}
	b.global = newFlagSet(b, "")
	b.global.fs.Usage = func() { b.Usage() }
	return b
}

// SetOwner records which plugin is currently contributing arguments, so that
// conflict errors can name both claimants.
func (b *Builder) SetOwner(owner string) {
	b.owner = owner
}

// Flags returns the top-level flag set shared by the core and all plugins.
func (b *Builder) Flags() *FlagSet {
	return b.global
}

// Subcommand claims an app subcommand namespace and returns its flag set.
// The description appears in the top-level usage listing.
func (b *Builder) Subcommand(name, description string) (*FlagSet, error) {
	if existing, ok := b.subs[name]; ok {
		return nil, &ArgumentConflictError{
			Name:   name,
			First:  existing.owner,
			Second: b.owner,
		}
	}
	fs := newFlagSet(b, name)
	fs.owner = b.owner
	fs.fs.Usage = func() {
		fmt.Fprintf(b.output, "\nUsage:\n  %s [options] %s [options] [args]\n\nOptions:\n", b.name, name)
		fs.fs.PrintDefaults()
	}
	b.subs[name] = fs
	b.subDescs[name] = description
	b.subOrder = append(b.subOrder, name)
	return fs, nil
}

// Required returns the config keys of all required flags that apply to an
// invocation of the given app: the top-level required flags plus the app's
// own. An empty appKey selects only the top-level set.
func (b *Builder) Required(appKey string) []string {
	var keys []string
	keys = append(keys, b.global.requiredKeys()...)
	if sub, ok := b.subs[appKey]; ok {
		keys = append(keys, sub.requiredKeys()...)
	}
	return keys
}

// Defaults returns the declared flag defaults that apply to an invocation of
// the given app, keyed by config key, scoped like Required. They form the
// bottom configuration layer so that a flag left unset still resolves to the
// default printed in its help text.
func (b *Builder) Defaults(appKey string) map[string]any {
	values := make(map[string]any)
	b.global.defaultValues(values)
	if sub, ok := b.subs[appKey]; ok {
		sub.defaultValues(values)
	}
	return values
}

// Usage writes the top-level help text, including the registered apps.
func (b *Builder) Usage() {
	fmt.Fprintf(b.output, `
Orbitool - satellite orbit analysis toolkit.

Usage:
  %s [options] <app> [app options] [args]

Apps:
`, b.name)
	names := append([]string(nil), b.subOrder...)
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b.output, "  %-16s %s\n", name, b.subDescs[name])
	}
	fmt.Fprint(b.output, "\nOptions:\n")
	b.global.fs.PrintDefaults()
}

// flagDef records one registered flag along with its claimant, the
// configuration key it overlays when explicitly set, and its declared
// default.
type flagDef struct {
	name      string
	owner     string
	configKey string
	required  bool
	def       any
	get       func() any
}

// FlagSet wraps a flag.FlagSet with conflict detection and set/unset
// tracking. The zero value is not usable; flag sets are created by the
// Builder.
type FlagSet struct {
	b     *Builder
	name  string // empty for the top-level set
	owner string
	fs    *flag.FlagSet
	defs  map[string]*flagDef
}

func newFlagSet(b *Builder, name string) *FlagSet {
	fsName := b.name
	if name != "" {
		fsName = b.name + " " + name
	}
	fs := flag.NewFlagSet(fsName, flag.ContinueOnError)
	fs.SetOutput(b.output)
	return &FlagSet{b: b, name: name, fs: fs, defs: make(map[string]*flagDef)}
}

// claim reserves a flag name, failing when it is already taken.
func (f *FlagSet) claim(name string) (*flagDef, error) {
	if existing, ok := f.defs[name]; ok {
		return nil, &ArgumentConflictError{
			Name:       name,
			Subcommand: f.name,
			First:      existing.owner,
			Second:     f.b.owner,
		}
	}
	def := &flagDef{name: name, owner: f.b.owner, configKey: name}
	f.defs[name] = def
	return def, nil
}

// String registers a string flag and returns a pointer to its value.
func (f *FlagSet) String(name, value, usage string) (*string, error) {
	def, err := f.claim(name)
	if err != nil {
		return nil, err
	}
	p := f.fs.String(name, value, usage)
	def.def = value
	def.get = func() any { return *p }
	return p, nil
}

// Int registers an int flag and returns a pointer to its value.
func (f *FlagSet) Int(name string, value int, usage string) (*int, error) {
	def, err := f.claim(name)
	if err != nil {
		return nil, err
	}
	p := f.fs.Int(name, value, usage)
	def.def = value
	def.get = func() any { return *p }
	return p, nil
}

// Bool registers a bool flag and returns a pointer to its value.
func (f *FlagSet) Bool(name string, value bool, usage string) (*bool, error) {
	def, err := f.claim(name)
	if err != nil {
		return nil, err
	}
	p := f.fs.Bool(name, value, usage)
	def.def = value
	def.get = func() any { return *p }
	return p, nil
}

// Float registers a float64 flag and returns a pointer to its value.
func (f *FlagSet) Float(name string, value float64, usage string) (*float64, error) {
	def, err := f.claim(name)
	if err != nil {
		return nil, err
	}
	p := f.fs.Float64(name, value, usage)
	def.def = value
	def.get = func() any { return *p }
	return p, nil
}

// MarkRequired declares that the named flag must be resolvable from some
// configuration layer (default, file, or CLI) by the time the app runs.
func (f *FlagSet) MarkRequired(name string) error {
	def, ok := f.defs[name]
	if !ok {
		return fmt.Errorf("cannot mark unknown flag %q as required", name)
	}
	def.required = true
	return nil
}

// BindConfig maps an explicitly-set flag onto a configuration key other than
// its own name, e.g. a top-level -data-dir flag overlaying orekit.data-dir.
func (f *FlagSet) BindConfig(flagName, configKey string) error {
	def, ok := f.defs[flagName]
	if !ok {
		return fmt.Errorf("cannot bind unknown flag %q", flagName)
	}
	def.configKey = configKey
	return nil
}

func (f *FlagSet) requiredKeys() []string {
	var keys []string
	for _, def := range f.defs {
		if def.required {
			keys = append(keys, def.configKey)
		}
	}
	sort.Strings(keys)
	return keys
}

// defaultValues appends the declared default of every flag whose default is
// not the type's zero value. A zero default carries no information: looking
// up an absent key already yields the zero value, and recording it would make
// required-option checks pass vacuously.
func (f *FlagSet) defaultValues(values map[string]any) {
	for _, def := range f.defs {
		switch v := def.def.(type) {
		case string:
			if v != "" {
				values[def.configKey] = v
			}
		case int:
			if v != 0 {
				values[def.configKey] = v
			}
		case bool:
			if v {
				values[def.configKey] = v
			}
		case float64:
			if v != 0 {
				values[def.configKey] = v
			}
		}
	}
}

// visitSet appends the config key and value of every explicitly-set flag.
func (f *FlagSet) visitSet(values map[string]any) {
	f.fs.Visit(func(fl *flag.Flag) {
		if def, ok := f.defs[fl.Name]; ok {
			values[def.configKey] = def.get()
		}
	})
}

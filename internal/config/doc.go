// Package config defines the immutable, layered configuration shared by all
// lifecycle phases, along with the Loader interface for format-specific
// config-file parsing (YAML and HCL implementations are provided).
//
// A Configuration is built exactly once per invocation by overlaying three
// layers: built-in defaults, the config file, and explicitly-set CLI flags.
// Once built it is read-only; later phases and app plugins share the same
// instance and may not mutate it.
package config

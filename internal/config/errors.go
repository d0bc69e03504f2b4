package config

import "fmt"

// LoadError reports a config file that exists but could not be parsed.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface for LoadError.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load config file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parse failure.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// MissingOptionError reports a required option that remained absent after
// the defaults, config file, and CLI layers were all applied.
type MissingOptionError struct {
	Option string
}

// Error implements the error interface for MissingOptionError.
func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("required option %q was not set by any configuration layer (default, config file, or flag)", e.Option)
}

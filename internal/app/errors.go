package app

import (
	"fmt"
	"strings"
)

// RuntimeInitError reports a postinit plugin that failed to stand up its
// runtime contribution. It is fatal to the whole invocation.
type RuntimeInitError struct {
	Key string
	Err error
}

// Error implements the error interface for RuntimeInitError.
func (e *RuntimeInitError) Error() string {
	return fmt.Sprintf("runtime initialization failed in plugin %q: %v", e.Key, e.Err)
}

// Unwrap returns the plugin's own failure.
func (e *RuntimeInitError) Unwrap() error {
	return e.Err
}

// UnknownAppError reports an invoked app key with no registered app. This is
// a user input error, not a crash.
type UnknownAppError struct {
	Key   string
	Valid []string
}

// Error implements the error interface for UnknownAppError.
func (e *UnknownAppError) Error() string {
	return fmt.Sprintf("unknown app %q (valid apps: %s)", e.Key, strings.Join(e.Valid, ", "))
}

// AppExecutionError wraps an app's unrecognized internal failure. The core
// does not classify it further; it maps to the generic failure exit code.
type AppExecutionError struct {
	Key string
	Err error
}

// Error implements the error interface for AppExecutionError.
func (e *AppExecutionError) Error() string {
	return fmt.Sprintf("app %q failed: %v", e.Key, e.Err)
}

// Unwrap returns the app's own failure.
func (e *AppExecutionError) Unwrap() error {
	return e.Err
}

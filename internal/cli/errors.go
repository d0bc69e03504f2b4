package cli

import "fmt"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap exposes the underlying cause so callers can match the error taxonomy
// with errors.As.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ArgumentConflictError reports two plugins claiming the same flag or
// subcommand name during the preinit phase.
type ArgumentConflictError struct {
	Name       string // flag or subcommand name
	Subcommand string // empty for top-level flags
	First      string // owner that registered the name first
	Second     string // owner whose registration collided
}

// Error implements the error interface for ArgumentConflictError.
func (e *ArgumentConflictError) Error() string {
	scope := "top-level"
	if e.Subcommand != "" {
		scope = fmt.Sprintf("subcommand %q", e.Subcommand)
	}
	if e.First != "" || e.Second != "" {
		return fmt.Sprintf("argument conflict: %s name %q registered by both %q and %q", scope, e.Name, e.First, e.Second)
	}
	return fmt.Sprintf("argument conflict: %s name %q registered twice", scope, e.Name)
}

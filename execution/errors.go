package execution

import (
	"errors"
)

// Sentinel errors for error classification.
var (
	// ErrRun indicates that the engine rejected or failed to evaluate a
	// program. Every RunError matches it.
	ErrRun = errors.New("run failed")

	// ErrConfiguration indicates an invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")
)

// RunError is the failure outcome of a run.
type RunError struct {
	// Message is the engine's message, unchanged.
	Message string

	// Err is the underlying engine error, if any.
	Err error
}

// Error returns the engine's message.
func (e *RunError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *RunError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches the target.
// RunError matches ErrRun to allow sentinel-style error checking.
func (e *RunError) Is(target error) bool {
	return target == ErrRun
}

// newRunError captures err's message verbatim.
func newRunError(err error) *RunError {
	return &RunError{Message: err.Error(), Err: err}
}

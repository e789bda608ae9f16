package execution

import (
	"strings"
	"time"
)

// Result is the outcome of one run: either the program's output lines or a
// RunError, never both.
type Result struct {
	// Lines holds the output lines of a successful run, in print order.
	// Nil when the run failed or the program printed nothing.
	Lines []string `json:"lines,omitempty"`

	// Err is non-nil if parsing or evaluation failed.
	Err *RunError `json:"-"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration"`
}

// OK returns true if the run succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Text renders the outcome as it is shown to the user: the newline-joined
// lines on success, the engine's message on failure.
func (r Result) Text() string {
	if r.Err != nil {
		return r.Err.Message
	}
	return strings.Join(r.Lines, "\n")
}

// Error returns the failure as an error, or nil on success.
func (r Result) Error() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

package backend

import (
	"context"
	"errors"

	"github.com/jonwraymond/toolfoundation/model"
)

// Common errors for backend operations.
var (
	ErrBackendNotFound = errors.New("backend not found")
	ErrBackendDisabled = errors.New("backend disabled")
	ErrToolNotFound    = errors.New("tool not found in backend")
	ErrInvalidArgs     = errors.New("invalid tool arguments")
)

// Backend is a named source of playground tools.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Execute passes ctx through to the runs it triggers.
// - Errors: use ErrToolNotFound, ErrBackendDisabled and ErrInvalidArgs where applicable.
type Backend interface {
	// Kind returns the backend type, e.g. "local".
	Kind() string

	// Name returns the unique instance name, used as the tool namespace.
	Name() string

	// Enabled reports whether the tools of this backend are published.
	Enabled() bool

	// ListTools returns all tools available from this backend.
	ListTools(ctx context.Context) ([]model.Tool, error)

	// Execute invokes a tool on this backend.
	Execute(ctx context.Context, tool string, args map[string]any) (any, error)

	// Start prepares the backend before its tools are served.
	Start(ctx context.Context) error

	// Stop releases whatever Start acquired.
	Stop() error
}

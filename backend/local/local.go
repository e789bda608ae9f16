// Package local provides an in-process backend whose tools are Go handlers,
// and the playground tool set built on it.
package local

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/TheTrio/EspressoPlayground/backend"
)

// HandlerFunc is the function signature for tool handlers.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

// ToolDef defines a local tool with its handler.
type ToolDef struct {
	Name        string
	Title       string
	Description string
	InputSchema map[string]any
	Annotations *mcp.ToolAnnotations
	Tags        []string
	Handler     HandlerFunc
}

// Backend implements backend.Backend for in-process handlers.
type Backend struct {
	name     string
	enabled  bool
	handlers map[string]ToolDef
	mu       sync.RWMutex
}

// New creates an empty, enabled local backend.
func New(name string) *Backend {
	return &Backend{
		name:     name,
		enabled:  true,
		handlers: make(map[string]ToolDef),
	}
}

// Kind returns "local".
func (b *Backend) Kind() string {
	return "local"
}

// Name returns the backend instance name.
func (b *Backend) Name() string {
	return b.name
}

// Enabled returns whether the backend is enabled.
func (b *Backend) Enabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.enabled
}

// SetEnabled enables or disables the backend.
func (b *Backend) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

// RegisterHandler registers a tool handler under name. A missing input schema
// defaults to an object without properties.
func (b *Backend) RegisterHandler(name string, def ToolDef) {
	if def.Name == "" {
		def.Name = name
	}
	if def.InputSchema == nil {
		def.InputSchema = objectSchema(nil)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = def
}

// UnregisterHandler removes a tool handler.
func (b *Backend) UnregisterHandler(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, name)
}

// ListTools returns the registered tools ordered by name.
func (b *Backend) ListTools(_ context.Context) ([]model.Tool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.Tool, 0, len(b.handlers))
	for _, def := range b.handlers {
		out = append(out, model.Tool{
			Tool: mcp.Tool{
				Name:        def.Name,
				Title:       def.Title,
				Description: def.Description,
				InputSchema: def.InputSchema,
				Annotations: def.Annotations,
			},
			Namespace: b.name,
			Tags:      model.NormalizeTags(def.Tags),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Execute invokes a tool handler.
func (b *Backend) Execute(ctx context.Context, tool string, args map[string]any) (any, error) {
	b.mu.RLock()
	enabled := b.enabled
	def, ok := b.handlers[tool]
	b.mu.RUnlock()

	if !enabled {
		return nil, backend.ErrBackendDisabled
	}
	if !ok || def.Handler == nil {
		return nil, fmt.Errorf("%w: %s", backend.ErrToolNotFound, tool)
	}
	if args == nil {
		args = map[string]any{}
	}
	return def.Handler(ctx, args)
}

// Start is a no-op for local handlers.
func (b *Backend) Start(_ context.Context) error {
	return nil
}

// Stop is a no-op for local handlers.
func (b *Backend) Stop() error {
	return nil
}

package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// mockBackend implements Backend for testing.
type mockBackend struct {
	kind    string
	name    string
	enabled bool
	tools   []model.Tool
	listErr error
	stopErr error
	stopped int
	execFn  func(ctx context.Context, tool string, args map[string]any) (any, error)
}

func (m *mockBackend) Kind() string  { return m.kind }
func (m *mockBackend) Name() string  { return m.name }
func (m *mockBackend) Enabled() bool { return m.enabled }

func (m *mockBackend) ListTools(_ context.Context) ([]model.Tool, error) {
	return m.tools, m.listErr
}

func (m *mockBackend) Execute(ctx context.Context, tool string, args map[string]any) (any, error) {
	if m.execFn != nil {
		return m.execFn(ctx, tool, args)
	}
	return nil, ErrToolNotFound
}

func (m *mockBackend) Start(_ context.Context) error { return nil }

func (m *mockBackend) Stop() error {
	m.stopped++
	return m.stopErr
}

func TestBackend_Interface(t *testing.T) {
	t.Helper()
	var _ Backend = (*mockBackend)(nil)
}

func TestBackend_Methods(t *testing.T) {
	b := &mockBackend{
		kind:    "local",
		name:    "playground",
		enabled: true,
		tools: []model.Tool{
			{Tool: mcp.Tool{Name: "run", Description: "Run the current source"}},
		},
		execFn: func(_ context.Context, _ string, _ map[string]any) (any, error) {
			return "ran", nil
		},
	}

	tools, err := b.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	if len(tools) != 1 {
		t.Errorf("ListTools() returned %d tools, want 1", len(tools))
	}

	result, err := b.Execute(context.Background(), "run", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result != "ran" {
		t.Errorf("Execute() = %v, want %v", result, "ran")
	}
}

func TestBackend_DefaultExecuteNotFound(t *testing.T) {
	b := &mockBackend{name: "x", enabled: true}
	_, err := b.Execute(context.Background(), "missing", nil)
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("Execute() error = %v, want ErrToolNotFound", err)
	}
}

package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheTrio/EspressoPlayground/backend"
	"github.com/TheTrio/EspressoPlayground/backend/local"
	"github.com/TheTrio/EspressoPlayground/catalog"
	"github.com/TheTrio/EspressoPlayground/catalog/lessonindex"
	"github.com/TheTrio/EspressoPlayground/execution"
	"github.com/TheTrio/EspressoPlayground/internal/testutil"
	"github.com/TheTrio/EspressoPlayground/playground"
	"github.com/TheTrio/EspressoPlayground/session"
)

func newAggregator(t *testing.T) *backend.Aggregator {
	t.Helper()
	c := catalog.Default()
	idx, err := lessonindex.New(c)
	require.NoError(t, err)
	ctrl, err := execution.NewDefaultController(execution.Config{Engine: testutil.NewEngine()})
	require.NoError(t, err)
	store := session.NewStore(func() *playground.Playground {
		return playground.New(ctrl, playground.WithSource(playground.DefaultSource(c)))
	})

	b, _, err := local.NewPlayground("playground", local.PlaygroundDeps{Sessions: store, Catalog: c, Lessons: idx})
	require.NoError(t, err)

	reg := backend.NewRegistry()
	require.NoError(t, reg.Register(b))
	return backend.NewAggregator(reg)
}

func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ss, err := s.MCP().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, execution.ErrConfiguration)
	assert.True(t, strings.Contains(err.Error(), "Aggregator"))
}

func TestToolName(t *testing.T) {
	assert.Equal(t, "playground_run", ToolName("playground", "run"))
	assert.Equal(t, "run", ToolName("", "run"))
}

func TestNew_PublishesEveryTool(t *testing.T) {
	s, err := New(context.Background(), Config{Aggregator: newAggregator(t)})
	require.NoError(t, err)

	assert.Contains(t, s.ToolNames(), "playground_run")
	assert.Contains(t, s.ToolNames(), "playground_search_lessons")
	assert.Len(t, s.ToolNames(), 9)

	cs := connect(t, s)
	listed, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	assert.Len(t, listed.Tools, 9)
}

func TestCallTool_LoadAndRun(t *testing.T) {
	s, err := New(context.Background(), Config{Aggregator: newAggregator(t)})
	require.NoError(t, err)
	cs := connect(t, s)
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "playground_load_and_run",
		Arguments: map[string]any{"source": `print("Hello")`},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var rr local.RunResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &rr))
	assert.True(t, rr.OK)
	assert.Equal(t, "Hello", rr.Output)
	assert.NotNil(t, res.StructuredContent)

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{Name: "playground_state"})
	require.NoError(t, err)
	var st local.StateResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &st))
	assert.Equal(t, `print("Hello")`, st.Source)
	assert.Equal(t, "Hello", st.Output)
}

func TestCallTool_RunErrorIsNotAToolError(t *testing.T) {
	s, err := New(context.Background(), Config{Aggregator: newAggregator(t)})
	require.NoError(t, err)
	cs := connect(t, s)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "playground_load_and_run",
		Arguments: map[string]any{"source": "print(x)"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var rr local.RunResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &rr))
	assert.False(t, rr.OK)
	assert.Equal(t, "RuntimeError: undefined variable 'x'", rr.Output)
}

func TestCallTool_HandlerErrorBecomesIsError(t *testing.T) {
	s, err := New(context.Background(), Config{Aggregator: newAggregator(t)})
	require.NoError(t, err)
	cs := connect(t, s)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "playground_run",
		Arguments: map[string]any{"session": "missing"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), session.ErrSessionNotFound.Error())
}

func TestCallTool_ArrayResultHasNoStructuredContent(t *testing.T) {
	s, err := New(context.Background(), Config{Aggregator: newAggregator(t)})
	require.NoError(t, err)
	cs := connect(t, s)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: "playground_table_of_contents"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Nil(t, res.StructuredContent)

	var toc []catalog.TOCEntry
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &toc))
	assert.Equal(t, catalog.Default().TableOfContents(), toc)
}

func TestDecodeArgs(t *testing.T) {
	args, err := decodeArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = decodeArgs(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = decodeArgs(json.RawMessage(`{"source":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "x", args["source"])

	_, err = decodeArgs(json.RawMessage(`[1]`))
	assert.ErrorIs(t, err, backend.ErrInvalidArgs)
}

// Package mcpserver publishes the tools of a backend.Aggregator over the
// Model Context Protocol.
//
// Each tool "<backend>:<tool>" becomes the MCP tool "<backend>_<tool>".
// Results are returned as JSON text content, and as structured content when
// the result is a JSON object. Handler failures are reported as tool results
// with IsError set so the client sees the message instead of a protocol error.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/TheTrio/EspressoPlayground/backend"
	"github.com/TheTrio/EspressoPlayground/execution"
	"github.com/TheTrio/EspressoPlayground/logging"
)

// Config configures a Server.
type Config struct {
	// Name and Version identify the server to clients.
	Name    string
	Version string

	// Aggregator supplies and executes the published tools. Required.
	Aggregator *backend.Aggregator

	// Logger receives call diagnostics. Optional.
	Logger *logging.Logger
}

// Validate checks required fields.
func (c *Config) Validate() error {
	var missing []string
	if c.Aggregator == nil {
		missing = append(missing, "Aggregator")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", execution.ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// Server is an MCP server over the aggregated playground tools.
type Server struct {
	server *mcp.Server
	agg    *backend.Aggregator
	log    *logging.Logger
	tools  map[string]string
}

// New lists the aggregator's tools once and registers each with a new MCP
// server.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = "espresso-playground"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}

	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{Name: cfg.Name, Version: cfg.Version}, nil),
		agg:    cfg.Aggregator,
		log:    log,
		tools:  make(map[string]string),
	}

	tools, err := cfg.Aggregator.ListAllTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("mcpserver: list tools: %w", err)
	}
	for _, t := range tools {
		id := backend.FormatToolID(t.Namespace, t.Name)
		name := ToolName(t.Namespace, t.Name)
		if prev, dup := s.tools[name]; dup {
			return nil, fmt.Errorf("mcpserver: tools %s and %s both publish as %s", prev, id, name)
		}
		s.tools[name] = id

		tool := t.Tool
		tool.Name = name
		if tool.InputSchema == nil {
			tool.InputSchema = map[string]any{"type": "object"}
		}
		s.server.AddTool(&tool, s.handler(id))
	}
	return s, nil
}

// ToolName returns the MCP name a backend tool is published under.
func ToolName(backendName, tool string) string {
	if backendName == "" {
		return tool
	}
	return backendName + "_" + tool
}

// ToolNames returns the published tool names in sorted order.
func (s *Server) ToolNames() []string {
	out := make([]string, 0, len(s.tools))
	for name := range s.tools {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MCP exposes the underlying server, e.g. to connect custom transports.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Serve runs the server on stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("serving tools over stdio", "tools", len(s.tools))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) handler(id string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArgs(req.Params.Arguments)
		if err != nil {
			return errorResult(err), nil
		}

		out, err := s.agg.Execute(ctx, id, args)
		if err != nil {
			s.log.Debug("tool failed", "tool", id, "error", err)
			return errorResult(err), nil
		}
		s.log.Debug("tool succeeded", "tool", id)

		data, err := json.Marshal(out)
		if err != nil {
			return errorResult(fmt.Errorf("encode result: %w", err)), nil
		}
		res := &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(data)}}}
		if bytes.HasPrefix(data, []byte("{")) {
			res.StructuredContent = json.RawMessage(data)
		}
		return res, nil
	}
}

func decodeArgs(raw json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return args, nil
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("%w: arguments must be a JSON object: %v", backend.ErrInvalidArgs, err)
	}
	return args, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

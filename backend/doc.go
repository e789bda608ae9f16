// Package backend groups the playground operations into named tool sources.
//
// A Backend lists tools and executes them by name. The Registry owns the
// backends of a process and the Aggregator exposes the tools of every enabled
// backend behind "backend:tool" IDs, which is the shape the MCP server
// publishes.
//
//	registry := backend.NewRegistry()
//	_ = registry.Register(local.NewPlayground("playground", deps))
//
//	agg := backend.NewAggregator(registry)
//	tools, _ := agg.ListAllTools(ctx)
//	result, _ := agg.Execute(ctx, "playground:run", map[string]any{"session": id})
package backend

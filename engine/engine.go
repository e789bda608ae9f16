package engine

import "context"

// Tree is the opaque program representation produced by a Parser and
// consumed by an Evaluator of the same engine.
type Tree any

// Parser is the construction stage for a single source text.
type Parser interface {
	// Parse builds the program tree. A malformed program returns an error
	// whose message describes the syntax problem.
	Parse() (Tree, error)
}

// Evaluator is the evaluation stage for a single parsed program.
type Evaluator interface {
	// Evaluate runs the program, appending output lines to the sink supplied
	// in Options. A failing program returns an error whose message describes
	// the runtime problem; lines appended before the failure may exist in the
	// sink and are the caller's to discard.
	Evaluate(ctx context.Context) error
}

// Options configures an Evaluator.
type Options struct {
	// RedirectTo receives every line the program prints.
	// Required.
	RedirectTo Sink
}

// Engine creates parsers and evaluators for the target language.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use; each
// Parser and Evaluator is used by one goroutine.
// - Context: Evaluate may honor cancellation; callers do not rely on it.
// - Errors: Error() text is surfaced verbatim to the user.
// - Ownership: the tree returned by Parse is owned by the evaluator it is
// handed to.
type Engine interface {
	// NewParser prepares the construction stage for source.
	NewParser(source string) Parser

	// NewEvaluator binds a parsed tree to the output options.
	NewEvaluator(tree Tree, opts Options) Evaluator
}

// ParseFunc is the construction stage as a plain function.
type ParseFunc func(source string) (Tree, error)

// EvalFunc is the evaluation stage as a plain function.
type EvalFunc func(ctx context.Context, tree Tree, out Sink) error

// Funcs adapts a pair of functions to the Engine interface.
type Funcs struct {
	Parse ParseFunc
	Eval  EvalFunc
}

// NewParser returns a Parser that calls f.Parse.
func (f Funcs) NewParser(source string) Parser {
	return funcParser{parse: f.Parse, source: source}
}

// NewEvaluator returns an Evaluator that calls f.Eval.
func (f Funcs) NewEvaluator(tree Tree, opts Options) Evaluator {
	return funcEvaluator{eval: f.Eval, tree: tree, out: opts.RedirectTo}
}

type funcParser struct {
	parse  ParseFunc
	source string
}

func (p funcParser) Parse() (Tree, error) {
	if p.parse == nil {
		return p.source, nil
	}
	return p.parse(p.source)
}

type funcEvaluator struct {
	eval EvalFunc
	tree Tree
	out  Sink
}

func (e funcEvaluator) Evaluate(ctx context.Context) error {
	if e.eval == nil {
		return nil
	}
	return e.eval(ctx, e.tree, e.out)
}

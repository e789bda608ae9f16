// Package engine defines the contract between the playground and the Espresso
// language engine.
//
// The engine is an external collaborator consumed through two stages:
//
//   - Construction: [Engine.NewParser] followed by [Parser.Parse] turns source
//     text into an opaque [Tree], or fails with a syntax error.
//   - Evaluation: [Engine.NewEvaluator] binds a tree to an output [Sink] and
//     [Evaluator.Evaluate] runs it, appending lines to the sink, or fails with
//     a runtime error.
//
// The sink is the only channel through which a program produces visible
// output. [Collector] is the append-only sink used by the execution layer; a
// fresh one is created for every run.
//
// Engines report failures as plain Go errors. The text returned by Error() is
// the human-readable message shown to the user, so engines should not wrap
// it with prefixes they do not want displayed.
package engine

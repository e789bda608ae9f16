// Package execution runs Espresso source text through a language engine and
// reports exactly one outcome per run.
//
// # Architecture
//
// The package defines two main pieces:
//
//   - [Controller]: the entry point. Run takes a source string and returns a
//     [Result] that is either the ordered output lines or an error message.
//
//   - [Config]: the engine to use and an optional [Logger].
//
// # Run Protocol
//
// Every call to Run performs the engine's two-stage contract:
//
//  1. Parse the source. A syntax error ends the run.
//  2. Bind the tree to a fresh [engine.Collector] and evaluate it. A runtime
//     error ends the run and the collected lines are discarded.
//  3. On success the collected lines become [Result].Lines.
//
// # Result Convention
//
// A failed run carries a [RunError] whose Error() text is the engine's
// message, verbatim. Syntax and runtime failures are not distinguished. A
// successful run's [Result].Text joins the lines with newlines; a program that
// printed nothing yields the empty string.
//
// Runs are synchronous. The controller never applies a timeout and never
// retries: an engine is deterministic, so a retry reproduces the same outcome.
package execution

// Package testutil provides a small deterministic engine for tests.
//
// [Engine] understands a tiny expression language that is close enough to
// Espresso for playground tests:
//
//	let x = 1 + 2; print(x)
//	print("a", { let y = 4; y * 2 })
//
// Statements are separated by semicolons or newlines. Values are integers and
// strings. print appends one line with its arguments joined by spaces.
// Failures use the messages "SyntaxError: ..." and "RuntimeError: ...".
package testutil

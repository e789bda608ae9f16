package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/TheTrio/EspressoPlayground/engine"
)

func run(t *testing.T, src string) ([]string, error) {
	t.Helper()
	e := NewEngine()
	tree, err := e.NewParser(src).Parse()
	if err != nil {
		return nil, err
	}
	out := engine.NewCollector()
	err = e.NewEvaluator(tree, engine.Options{RedirectTo: out}).Evaluate(context.Background())
	return out.Lines(), err
}

func TestEngine_Programs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "hello", src: `print("hello")`, want: "hello"},
		{name: "let and arithmetic", src: "let x = 1 + 2; print(x)", want: "3"},
		{name: "precedence", src: "print(2 + 3 * 4, (2 + 3) * 4)", want: "14 20"},
		{name: "newline separated", src: "let a = 7\nlet b = a % 4\nprint(b)\nprint(-b)", want: "3\n-3"},
		{name: "block value", src: `print("v", { let y = 4; y * 2 })`, want: "v 8"},
		{name: "string concat", src: `print("n=" + 5)`, want: "n=5"},
		{name: "comment", src: "// nothing\nprint(1) // one", want: "1"},
		{name: "no output", src: "let z = 1", want: ""},
		{name: "print returns null", src: "print(print(1))", want: "1\nnull"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := run(t, tt.src)
			if err != nil {
				t.Fatalf("run(%q) error = %v", tt.src, err)
			}
			if got := strings.Join(lines, "\n"); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngine_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "missing brace", src: "{ print(1)", want: "SyntaxError: expected '}' but found end of input"},
		{name: "stray brace", src: "print(1) }", want: "SyntaxError: unexpected '}'"},
		{name: "missing paren", src: "print(1", want: "SyntaxError: expected ')' but found end of input"},
		{name: "bad char", src: "print(#)", want: "SyntaxError: unexpected character '#'"},
		{name: "unterminated string", src: `print("a)`, want: "SyntaxError: unterminated string"},
		{name: "two expressions", src: "1 2", want: "SyntaxError: expected ';' but found '2'"},
		{name: "let without name", src: "let = 3", want: "SyntaxError: expected identifier but found '='"},
		{name: "division by zero", src: "print(1); print(1 / 0)", want: "RuntimeError: division by zero"},
		{name: "undefined", src: "print(y)", want: "RuntimeError: undefined variable 'y'"},
		{name: "unknown function", src: "foo()", want: "RuntimeError: unknown function 'foo'"},
		{name: "type mismatch", src: `print(1 - "a")`, want: "RuntimeError: cannot apply '-' to integer and string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.src)
			if err == nil {
				t.Fatalf("run(%q) error = nil, want %q", tt.src, tt.want)
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestEngine_PartialOutputBeforeFailure(t *testing.T) {
	lines, err := run(t, `print("before"); print(1 / 0)`)
	if err == nil {
		t.Fatal("expected runtime error")
	}
	if len(lines) != 1 || lines[0] != "before" {
		t.Errorf("sink = %v, want [before]", lines)
	}
}

func TestEngine_HonorsCancellation(t *testing.T) {
	e := NewEngine()
	tree, err := e.NewParser("print(1)").Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := e.NewEvaluator(tree, engine.Options{RedirectTo: engine.NewCollector()}).Evaluate(ctx); err != context.Canceled {
		t.Errorf("Evaluate() error = %v, want context.Canceled", err)
	}
}

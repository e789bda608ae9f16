package testutil

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/TheTrio/EspressoPlayground/engine"
)

// Engine is the toy language engine. The zero value is ready to use and is
// safe for concurrent use.
type Engine struct{}

// NewEngine returns the toy engine.
func NewEngine() Engine { return Engine{} }

// NewParser implements engine.Engine.
func (Engine) NewParser(source string) engine.Parser {
	return toyParser{source: source}
}

// NewEvaluator implements engine.Engine.
func (Engine) NewEvaluator(tree engine.Tree, opts engine.Options) engine.Evaluator {
	return &toyEvaluator{tree: tree, out: opts.RedirectTo, env: map[string]any{}}
}

type toyParser struct{ source string }

func (p toyParser) Parse() (engine.Tree, error) {
	return parse(p.source)
}

type toyEvaluator struct {
	tree engine.Tree
	out  engine.Sink
	env  map[string]any
}

func (e *toyEvaluator) Evaluate(ctx context.Context) error {
	prog, ok := e.tree.(blockExpr)
	if !ok {
		return errors.New("RuntimeError: not a program")
	}
	for _, stmt := range prog.stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := e.eval(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *toyEvaluator) eval(n node) (any, error) {
	switch n := n.(type) {
	case intLit:
		return n.v, nil
	case strLit:
		return n.v, nil
	case ident:
		v, ok := e.env[n.name]
		if !ok {
			return nil, fmt.Errorf("RuntimeError: undefined variable '%s'", n.name)
		}
		return v, nil
	case letStmt:
		v, err := e.eval(n.value)
		if err != nil {
			return nil, err
		}
		e.env[n.name] = v
		return v, nil
	case negExpr:
		v, err := e.eval(n.x)
		if err != nil {
			return nil, err
		}
		i, ok := v.(int64)
		if !ok {
			return nil, fmt.Errorf("RuntimeError: cannot negate %s", typeName(v))
		}
		return -i, nil
	case binExpr:
		return e.binary(n)
	case callExpr:
		return e.call(n)
	case blockExpr:
		var last any
		for _, stmt := range n.stmts {
			v, err := e.eval(stmt)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	}
	return nil, fmt.Errorf("RuntimeError: unknown node %T", n)
}

func (e *toyEvaluator) binary(n binExpr) (any, error) {
	l, err := e.eval(n.l)
	if err != nil {
		return nil, err
	}
	r, err := e.eval(n.r)
	if err != nil {
		return nil, err
	}
	if ls, ok := l.(string); ok && n.op == "+" {
		return ls + format(r), nil
	}
	li, lok := l.(int64)
	ri, rok := r.(int64)
	if !lok || !rok {
		return nil, fmt.Errorf("RuntimeError: cannot apply '%s' to %s and %s", n.op, typeName(l), typeName(r))
	}
	switch n.op {
	case "+":
		return li + ri, nil
	case "-":
		return li - ri, nil
	case "*":
		return li * ri, nil
	case "/", "%":
		if ri == 0 {
			return nil, errors.New("RuntimeError: division by zero")
		}
		if n.op == "/" {
			return li / ri, nil
		}
		return li % ri, nil
	}
	return nil, fmt.Errorf("RuntimeError: unknown operator '%s'", n.op)
}

func (e *toyEvaluator) call(n callExpr) (any, error) {
	if n.name != "print" {
		return nil, fmt.Errorf("RuntimeError: unknown function '%s'", n.name)
	}
	parts := make([]string, 0, len(n.args))
	for _, arg := range n.args {
		v, err := e.eval(arg)
		if err != nil {
			return nil, err
		}
		parts = append(parts, format(v))
	}
	if e.out != nil {
		e.out.Append(strings.Join(parts, " "))
	}
	return nil, nil
}

func format(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return v
	}
	return fmt.Sprint(v)
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case int64:
		return "integer"
	case string:
		return "string"
	}
	return fmt.Sprintf("%T", v)
}

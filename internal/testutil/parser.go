package testutil

import (
	"fmt"
	"strconv"
)

type node interface{}

type (
	letStmt struct {
		name  string
		value node
	}
	intLit  struct{ v int64 }
	strLit  struct{ v string }
	ident   struct{ name string }
	negExpr struct{ x node }
	binExpr struct {
		op   string
		l, r node
	}
	callExpr struct {
		name string
		args []node
	}
	blockExpr struct{ stmts []node }
)

type parser struct {
	toks []token
	pos  int
}

func parse(src string) (blockExpr, error) {
	toks, err := lex(src)
	if err != nil {
		return blockExpr{}, err
	}
	p := &parser{toks: toks}
	stmts, err := p.statements()
	if err != nil {
		return blockExpr{}, err
	}
	if tok := p.cur(); tok.kind != tokEOF {
		return blockExpr{}, fmt.Errorf("SyntaxError: unexpected %s", tok.describe())
	}
	return blockExpr{stmts: stmts}, nil
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isPunct(s string) bool {
	tok := p.cur()
	return tok.kind == tokPunct && tok.text == s
}

func (p *parser) expectPunct(s string) error {
	if !p.isPunct(s) {
		return fmt.Errorf("SyntaxError: expected '%s' but found %s", s, p.cur().describe())
	}
	p.next()
	return nil
}

// statements parses until end of input or a closing brace.
func (p *parser) statements() ([]node, error) {
	var stmts []node
	for {
		for p.cur().kind == tokSep {
			p.next()
		}
		if p.cur().kind == tokEOF || p.isPunct("}") {
			return stmts, nil
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)

		if tok := p.cur(); tok.kind != tokSep && tok.kind != tokEOF && !p.isPunct("}") {
			return nil, fmt.Errorf("SyntaxError: expected ';' but found %s", tok.describe())
		}
	}
}

func (p *parser) statement() (node, error) {
	if p.cur().kind != tokLet {
		return p.expr()
	}
	p.next()
	name := p.next()
	if name.kind != tokIdent {
		return nil, fmt.Errorf("SyntaxError: expected identifier but found %s", name.describe())
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	return letStmt{name: name.text, value: value}, nil
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isPunct("+") || p.isPunct("-") {
		op := p.next().text
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binExpr{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isPunct("*") || p.isPunct("/") || p.isPunct("%") {
		op := p.next().text
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binExpr{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	if p.isPunct("-") {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return negExpr{x: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	tok := p.cur()
	switch {
	case tok.kind == tokInt:
		p.next()
		v, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SyntaxError: integer literal %s out of range", tok.text)
		}
		return intLit{v: v}, nil
	case tok.kind == tokString:
		p.next()
		return strLit{v: tok.text}, nil
	case tok.kind == tokIdent:
		p.next()
		if !p.isPunct("(") {
			return ident{name: tok.text}, nil
		}
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		return callExpr{name: tok.text, args: args}, nil
	case p.isPunct("("):
		p.next()
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return x, nil
	case p.isPunct("{"):
		p.next()
		stmts, err := p.statements()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("}"); err != nil {
			return nil, err
		}
		return blockExpr{stmts: stmts}, nil
	}
	return nil, fmt.Errorf("SyntaxError: unexpected %s", tok.describe())
}

func (p *parser) arguments() ([]node, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []node
	if p.isPunct(")") {
		p.next()
		return args, nil
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.isPunct(",") {
			p.next()
			continue
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return args, nil
	}
}

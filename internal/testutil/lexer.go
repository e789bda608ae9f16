package testutil

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokSep
	tokInt
	tokString
	tokIdent
	tokLet
	tokPunct
)

type token struct {
	kind tokenKind
	text string
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokSep:
		if t.text == "\n" {
			return "newline"
		}
		return "';'"
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	default:
		return "'" + t.text + "'"
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '\n' || c == ';':
			toks = append(toks, token{kind: tokSep, text: string(c)})
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case isDigit(c):
			j := i
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokInt, text: src[i:j]})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(src) && (isIdentStart(src[j]) || isDigit(src[j])) {
				j++
			}
			word := src[i:j]
			kind := tokIdent
			if word == "let" {
				kind = tokLet
			}
			toks = append(toks, token{kind: kind, text: word})
			i = j
		case c == '"':
			end := strings.IndexByte(src[i+1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("SyntaxError: unterminated string")
			}
			toks = append(toks, token{kind: tokString, text: src[i+1 : i+1+end]})
			i += end + 2
		case strings.IndexByte("(){}=+-*/%,", c) >= 0:
			toks = append(toks, token{kind: tokPunct, text: string(c)})
			i++
		default:
			return nil, fmt.Errorf("SyntaxError: unexpected character '%c'", c)
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

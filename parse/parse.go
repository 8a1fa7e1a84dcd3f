// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse builds syntax trees from tokens.
package parse // import "matfree.dev/matfree/parse"

import (
	"errors"
	"fmt"
	"strings"

	"matfree.dev/matfree/ast"
	"matfree.dev/matfree/scan"
)

// ParseError is a syntax error.
type ParseError struct {
	Name string // input name, may be empty
	Line int
	Col  int
	Msg  string
	// Incomplete is set when the input ended before the construct
	// being parsed was closed. More input might make it valid.
	Incomplete bool
}

func (e *ParseError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Name, e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

// context kinds for the bracket stack.
const (
	inParen  = iota // whitespace is not significant
	inMatrix        // whitespace separates elements
)

// Parser stores the state for the parser.
type Parser struct {
	name       string
	src        string
	tokens     []scan.Token
	pos        int
	brackets   []int // stack of inParen/inMatrix
	indexDepth int   // >0 while parsing index arguments, where end is an expression
}

// NewParser returns a parser for the tokens, which must end with EOF.
// The source text is used to record the text of anonymous functions.
func NewParser(name, src string, tokens []scan.Token) *Parser {
	return &Parser{
		name:   name,
		src:    src,
		tokens: tokens,
	}
}

// Parse tokenizes and parses src.
func Parse(name, src string) (*ast.Program, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	toks, err := scan.Tokenize(name, src)
	if err != nil {
		return nil, err
	}
	return NewParser(name, src, toks).Program()
}

// ParseExpr parses src as a single expression.
func ParseExpr(src string) (expr ast.Expr, err error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	toks, err := scan.Tokenize("", src)
	if err != nil {
		return nil, err
	}
	p := NewParser("", src, toks)
	defer p.recover(&err)
	expr = p.expr()
	if tok := p.peek(); tok.Type != scan.EOF {
		p.errorf(tok, "unexpected %s after expression", describe(tok))
	}
	return expr, nil
}

// IsIncomplete reports whether err means the input ended too soon.
func IsIncomplete(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr) && perr.Incomplete
}

func (p *Parser) recover(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	if perr, ok := e.(*ParseError); ok {
		*errp = perr
		return
	}
	panic(e)
}

// Program parses the whole input.
//
//	program:
//		{ statement | functionDef }
func (p *Parser) Program() (prog *ast.Program, err error) {
	defer p.recover(&err)
	prog = new(ast.Program)
	for {
		p.skipSeparators()
		tok := p.peek()
		switch tok.Type {
		case scan.EOF:
			return prog, nil
		case scan.Function:
			prog.Funcs = append(prog.Funcs, p.functionDef())
		default:
			prog.Stmts = append(prog.Stmts, p.statement())
		}
	}
}

func (p *Parser) next() scan.Token {
	tok := p.peek()
	if tok.Type != scan.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) peek() scan.Token {
	return p.peekAt(0)
}

// peekAt returns the token n places ahead without consuming anything.
func (p *Parser) peekAt(n int) scan.Token {
	if p.pos+n >= len(p.tokens) {
		if len(p.tokens) == 0 {
			return scan.Token{Type: scan.EOF}
		}
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) errorf(tok scan.Token, format string, args ...interface{}) {
	panic(&ParseError{
		Name:       p.name,
		Line:       tok.Line,
		Col:        tok.Col,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: tok.Type == scan.EOF,
	})
}

// need consumes the next token, which must be one of the wanted types.
func (p *Parser) need(want ...scan.Type) scan.Token {
	tok := p.next()
	for _, w := range want {
		if tok.Type == w {
			return tok
		}
	}
	str := describeType(want[0])
	for _, w := range want[1:] {
		str += " or " + describeType(w)
	}
	p.errorf(tok, "expected %s; got %s", str, describe(tok))
	panic("not reached")
}

func describeType(t scan.Type) string {
	switch t {
	case scan.RightParen:
		return "')'"
	case scan.RightBrack:
		return "']'"
	case scan.RightBrace:
		return "'}'"
	case scan.LeftParen:
		return "'('"
	case scan.Assign:
		return "'='"
	case scan.Identifier:
		return "identifier"
	}
	if t.IsKeyword() {
		return "'" + t.String() + "'"
	}
	return t.String()
}

func describe(tok scan.Token) string {
	switch tok.Type {
	case scan.EOF:
		return "end of input"
	case scan.Newline:
		return "newline"
	case scan.String:
		return fmt.Sprintf("string '%s'", tok.Text)
	}
	return fmt.Sprintf("'%s'", tok.Text)
}

func pos(tok scan.Token) ast.Pos {
	return ast.Pos{Line: tok.Line, Col: tok.Col}
}

func (p *Parser) push(kind int) {
	p.brackets = append(p.brackets, kind)
}

func (p *Parser) pop() {
	p.brackets = p.brackets[:len(p.brackets)-1]
}

// inMatrix reports whether whitespace currently separates elements.
func (p *Parser) inMatrix() bool {
	return len(p.brackets) > 0 && p.brackets[len(p.brackets)-1] == inMatrix
}

// sourceFrom returns the source text from the start of tok to the end of
// the most recently consumed token.
func (p *Parser) sourceFrom(tok scan.Token) string {
	if p.pos == 0 {
		return ""
	}
	end := p.tokens[p.pos-1].End
	if tok.Offset > end || end > len(p.src) {
		return ""
	}
	return p.src[tok.Offset:end]
}

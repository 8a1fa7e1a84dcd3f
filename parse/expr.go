// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"matfree.dev/matfree/ast"
	"matfree.dev/matfree/scan"
)

// Operator precedence, loosest first:
//
//	||
//	&&
//	|
//	&
//	== ~= < <= > >=
//	:
//	+ -
//	* / \ .* ./ .\
//	unary - + ~
//	^ .^ (right associative)
//	postfix: () {} .name ' .'

// expr parses a full expression.
func (p *Parser) expr() ast.Expr {
	return p.binary(0)
}

// levels lists the binary operators of each precedence level, from the
// loosest to the tightest, down to the colon level.
var levels = [][]string{
	{"||"},
	{"&&"},
	{"|"},
	{"&"},
	{"==", "~=", "<", "<=", ">", ">="},
}

// isOp reports whether tok is an operator in the set.
func isOp(tok scan.Token, ops []string) bool {
	if tok.Type != scan.Operator {
		return false
	}
	for _, op := range ops {
		if tok.Text == op {
			return true
		}
	}
	return false
}

// binary parses the left-associative operators at the given level and tighter.
func (p *Parser) binary(level int) ast.Expr {
	if level == len(levels) {
		return p.rangeExpr()
	}
	x := p.binary(level + 1)
	for isOp(p.peek(), levels[level]) {
		op := p.next()
		y := p.binary(level + 1)
		x = &ast.Binary{At: pos(op), Op: op.Text, X: x, Y: y}
	}
	return x
}

// rangeExpr:
//
//	additive [':' additive [':' additive]]
func (p *Parser) rangeExpr() ast.Expr {
	start := p.additive()
	if p.peek().Type != scan.Colon {
		return start
	}
	colon := p.next()
	second := p.additive()
	if p.peek().Type != scan.Colon {
		return &ast.Range{At: pos(colon), Start: start, Stop: second}
	}
	p.next()
	third := p.additive()
	return &ast.Range{At: pos(colon), Start: start, Step: second, Stop: third}
}

// splitsElement reports whether the + or - about to be read starts a new
// element of a matrix literal: "[1 -2]" has two elements, "[1 - 2]" and
// "[1-2]" have one.
func (p *Parser) splitsElement() bool {
	if !p.inMatrix() {
		return false
	}
	op := p.peek()
	return op.Space && !p.peekAt(1).Space
}

// additive:
//
//	multiplicative {('+'|'-') multiplicative}
func (p *Parser) additive() ast.Expr {
	x := p.multiplicative()
	for isOp(p.peek(), []string{"+", "-"}) && !p.splitsElement() {
		op := p.next()
		y := p.multiplicative()
		x = &ast.Binary{At: pos(op), Op: op.Text, X: x, Y: y}
	}
	return x
}

var mulOps = []string{"*", "/", "\\", ".*", "./", ".\\"}

// multiplicative:
//
//	unary {mulop unary}
func (p *Parser) multiplicative() ast.Expr {
	x := p.unary()
	for isOp(p.peek(), mulOps) {
		op := p.next()
		y := p.unary()
		x = &ast.Binary{At: pos(op), Op: op.Text, X: x, Y: y}
	}
	return x
}

var unaryOps = []string{"-", "+", "~"}

// unary:
//
//	('-'|'+'|'~') unary
//	power
func (p *Parser) unary() ast.Expr {
	if tok := p.peek(); isOp(tok, unaryOps) {
		p.next()
		return &ast.Unary{At: pos(tok), Op: tok.Text, X: p.unary()}
	}
	return p.power()
}

// power:
//
//	postfix [('^'|'.^') powerOperand]
//
// The operand may carry a sign, as in 2^-1, and binds to the right,
// so 2^3^2 is 2^(3^2).
func (p *Parser) power() ast.Expr {
	x := p.postfix()
	if tok := p.peek(); isOp(tok, []string{"^", ".^"}) {
		p.next()
		return &ast.Binary{At: pos(tok), Op: tok.Text, X: x, Y: p.powerOperand()}
	}
	return x
}

func (p *Parser) powerOperand() ast.Expr {
	if tok := p.peek(); isOp(tok, unaryOps) {
		p.next()
		return &ast.Unary{At: pos(tok), Op: tok.Text, X: p.powerOperand()}
	}
	return p.power()
}

// postfix:
//
//	primary {'(' args ')' | '{' args '}' | '.' name | '.(' expr ')' | transpose}
//
// Inside a matrix literal an opening bracket preceded by white space
// starts a new element instead: [a (1)] has two elements.
func (p *Parser) postfix() ast.Expr {
	x := p.primary()
	for {
		tok := p.peek()
		switch tok.Type {
		case scan.LeftParen:
			if tok.Space && p.inMatrix() {
				return x
			}
			p.next()
			args := p.args(scan.RightParen)
			x = &ast.Call{At: pos(tok), Fn: x, Args: args}
		case scan.LeftBrace:
			if tok.Space && p.inMatrix() {
				return x
			}
			p.next()
			args := p.args(scan.RightBrace)
			x = &ast.CellIndex{At: pos(tok), X: x, Args: args}
		case scan.Dot:
			if tok.Space && p.inMatrix() {
				return x
			}
			p.next()
			switch name := p.next(); {
			case name.Type == scan.Identifier || name.Type.IsKeyword():
				x = &ast.Field{At: pos(tok), X: x, Name: name.Text}
			case name.Type == scan.LeftParen:
				p.push(inParen)
				dyn := p.expr()
				p.pop()
				p.need(scan.RightParen)
				x = &ast.Field{At: pos(tok), X: x, Dynamic: dyn}
			default:
				p.errorf(name, "expected field name after '.'; got %s", describe(name))
			}
		case scan.Transpose:
			p.next()
			x = &ast.Postfix{At: pos(tok), Op: tok.Text, X: x}
		default:
			return x
		}
	}
}

// args parses a comma-separated argument list through the closing token.
// Within it, end denotes the last index and a lone ':' the whole dimension.
func (p *Parser) args(close scan.Type) []ast.Expr {
	p.push(inParen)
	p.indexDepth++
	defer func() {
		p.pop()
		p.indexDepth--
	}()
	args := []ast.Expr{}
	for {
		tok := p.peek()
		switch tok.Type {
		case close:
			p.next()
			return args
		case scan.EOF:
			p.errorf(tok, "expected %s; got end of input", describeType(close))
		}
		if len(args) > 0 {
			p.need(scan.Comma)
			tok = p.peek()
		}
		if tok.Type == scan.Colon {
			if next := p.peekAt(1).Type; next == scan.Comma || next == close {
				p.next()
				args = append(args, &ast.Range{At: pos(tok)})
				continue
			}
		}
		args = append(args, p.expr())
	}
}

// primary parses an operand.
func (p *Parser) primary() ast.Expr {
	tok := p.next()
	switch tok.Type {
	case scan.Number:
		return &ast.Number{At: pos(tok), Val: tok.Num, Imag: tok.Imag, Text: tok.Text}
	case scan.String:
		return &ast.String{At: pos(tok), Val: tok.Text}
	case scan.True:
		return &ast.Bool{At: pos(tok), Val: true}
	case scan.False:
		return &ast.Bool{At: pos(tok), Val: false}
	case scan.Identifier:
		return &ast.Ident{At: pos(tok), Name: tok.Text}
	case scan.End:
		if p.indexDepth > 0 {
			return &ast.End{At: pos(tok)}
		}
	case scan.LeftParen:
		p.push(inParen)
		x := p.expr()
		p.pop()
		p.need(scan.RightParen)
		return x
	case scan.LeftBrack:
		rows := p.rows(scan.RightBrack)
		return &ast.Matrix{At: pos(tok), Rows: rows}
	case scan.LeftBrace:
		rows := p.rows(scan.RightBrace)
		return &ast.CellLit{At: pos(tok), Rows: rows}
	case scan.At:
		return p.handle(tok)
	}
	p.errorf(tok, "unexpected %s", describe(tok))
	return nil
}

// rows parses the body of a matrix or cell literal through the closing token.
// Rows end at ';' or newline; elements are separated by ',' or white space.
func (p *Parser) rows(close scan.Type) [][]ast.Expr {
	p.push(inMatrix)
	defer p.pop()
	rows := [][]ast.Expr{}
	var row []ast.Expr
	for {
		tok := p.peek()
		switch tok.Type {
		case close:
			p.next()
			if len(row) > 0 {
				rows = append(rows, row)
			}
			return rows
		case scan.Semicolon, scan.Newline:
			p.next()
			if len(row) > 0 {
				rows = append(rows, row)
			}
			row = nil
		case scan.Comma:
			p.next()
		case scan.EOF:
			p.errorf(tok, "expected %s; got end of input", describeType(close))
		default:
			row = append(row, p.expr())
		}
	}
}

// handle parses what follows '@':
//
//	'@' name
//	'@' '(' params ')' expr
func (p *Parser) handle(at scan.Token) ast.Expr {
	tok := p.next()
	switch tok.Type {
	case scan.Identifier:
		name := tok.Text
		for p.peek().Type == scan.Dot && !p.peek().Space {
			p.next()
			name += "." + p.need(scan.Identifier).Text
		}
		return &ast.FuncHandle{At: pos(at), Name: name}
	case scan.LeftParen:
	default:
		p.errorf(tok, "expected function name or parameter list after '@'; got %s", describe(tok))
	}
	var params []string
	for p.peek().Type != scan.RightParen {
		switch t := p.next(); {
		case t.Type == scan.Comma:
		case t.Type == scan.Identifier:
			params = append(params, t.Text)
		case t.Type == scan.Operator && t.Text == "~":
			params = append(params, "~")
		default:
			p.errorf(t, "malformed parameter list: unexpected %s", describe(t))
		}
	}
	p.next()
	depth := p.indexDepth
	p.indexDepth = 0
	p.push(inParen)
	body := p.expr()
	p.pop()
	p.indexDepth = depth
	return &ast.AnonFunc{At: pos(at), Params: params, Body: body, Source: p.sourceFrom(at)}
}

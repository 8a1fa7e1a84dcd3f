// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"matfree.dev/matfree/ast"
	"matfree.dev/matfree/scan"
)

// skipSeparators consumes newlines, semicolons and commas.
func (p *Parser) skipSeparators() {
	for {
		switch p.peek().Type {
		case scan.Newline, scan.Semicolon, scan.Comma:
			p.next()
		default:
			return
		}
	}
}

// block parses statements up to, but not including, one of the terminators.
// Running out of input is an error.
func (p *Parser) block(terminators ...scan.Type) []ast.Stmt {
	stmts := []ast.Stmt{}
	for {
		p.skipSeparators()
		tok := p.peek()
		if tok.Type == scan.EOF {
			p.errorf(tok, "missing 'end'")
		}
		for _, t := range terminators {
			if tok.Type == t {
				return stmts
			}
		}
		if tok.Type == scan.Function {
			p.errorf(tok, "function definition is not allowed inside a block")
		}
		stmts = append(stmts, p.statement())
	}
}

// terminator consumes the token ending a simple statement and reports
// whether the statement's result should be printed.
func (p *Parser) terminator() bool {
	tok := p.peek()
	switch tok.Type {
	case scan.Semicolon:
		p.next()
		return false
	case scan.Comma, scan.Newline:
		p.next()
		return true
	case scan.EOF:
		return true
	}
	if tok.Type.IsKeyword() {
		// As in "if x, y = 1 end".
		return true
	}
	p.errorf(tok, "unexpected %s", describe(tok))
	return false
}

// statement:
//
//	if | for | while | switch | try | return | break | continue
//	global names | persistent names
//	[lvalues] = expr
//	lvalue = expr
//	command words
//	expr
func (p *Parser) statement() ast.Stmt {
	tok := p.peek()
	switch tok.Type {
	case scan.If:
		return p.ifStmt()
	case scan.For:
		return p.forStmt()
	case scan.While:
		return p.whileStmt()
	case scan.Switch:
		return p.switchStmt()
	case scan.Try:
		return p.tryStmt()
	case scan.Return:
		p.next()
		p.terminator()
		return &ast.Return{At: pos(tok)}
	case scan.Break:
		p.next()
		p.terminator()
		return &ast.Break{At: pos(tok)}
	case scan.Continue:
		p.next()
		p.terminator()
		return &ast.Continue{At: pos(tok)}
	case scan.Global, scan.Persistent:
		p.next()
		var names []string
		for p.peek().Type == scan.Identifier {
			names = append(names, p.next().Text)
		}
		if len(names) == 0 {
			p.errorf(p.peek(), "expected variable name after %s", tok.Text)
		}
		p.terminator()
		if tok.Type == scan.Global {
			return &ast.Global{At: pos(tok), Names: names}
		}
		return &ast.Persistent{At: pos(tok), Names: names}
	case scan.LeftBrack:
		if p.isMultiAssign() {
			return p.multiAssign()
		}
	case scan.Identifier:
		if p.isCommand() {
			return p.command()
		}
	case scan.End, scan.Else, scan.Elseif, scan.Case, scan.Otherwise, scan.Catch:
		p.errorf(tok, "unexpected '%s'", tok.Text)
	}
	x := p.expr()
	if p.peek().Type == scan.Assign {
		p.next()
		p.checkLvalue(x)
		rhs := p.expr()
		return &ast.Assign{At: pos(tok), LHS: x, RHS: rhs, Print: p.terminator()}
	}
	return &ast.ExprStmt{At: pos(tok), X: x, Print: p.terminator()}
}

// checkLvalue verifies that x can be assigned to.
func (p *Parser) checkLvalue(x ast.Expr) {
	switch e := x.(type) {
	case *ast.Ident:
		return
	case *ast.Call:
		p.checkLvalue(e.Fn)
		return
	case *ast.CellIndex:
		p.checkLvalue(e.X)
		return
	case *ast.Field:
		p.checkLvalue(e.X)
		return
	}
	pos := x.Position()
	panic(&ParseError{Name: p.name, Line: pos.Line, Col: pos.Col, Msg: "invalid target of assignment: " + x.String()})
}

// isMultiAssign reports whether the input is "[ ... ] =" with the '[' next.
func (p *Parser) isMultiAssign() bool {
	depth := 0
	for i := 0; ; i++ {
		tok := p.peekAt(i)
		switch tok.Type {
		case scan.LeftBrack, scan.LeftParen, scan.LeftBrace:
			depth++
		case scan.RightBrack, scan.RightParen, scan.RightBrace:
			depth--
			if depth == 0 {
				return p.peekAt(i+1).Type == scan.Assign
			}
		case scan.EOF, scan.Newline, scan.Semicolon:
			return false
		}
	}
}

// multiAssign:
//
//	'[' lvalue|~ {[,] lvalue|~} ']' '=' expr
func (p *Parser) multiAssign() ast.Stmt {
	open := p.need(scan.LeftBrack)
	var lhs []ast.Expr
	for p.peek().Type != scan.RightBrack {
		if p.peek().Type == scan.Comma {
			p.next()
			continue
		}
		if tok := p.peek(); tok.Type == scan.Operator && tok.Text == "~" {
			p.next()
			lhs = append(lhs, nil)
			continue
		}
		p.push(inMatrix)
		x := p.postfix()
		p.pop()
		p.checkLvalue(x)
		lhs = append(lhs, x)
	}
	p.next()
	p.need(scan.Assign)
	rhs := p.expr()
	return &ast.MultiAssign{At: pos(open), LHS: lhs, RHS: rhs, Print: p.terminator()}
}

// isCommand reports whether the statement is in command form, "name word ...".
// The name must be followed by white space and a bare word or a quoted string
// that is not itself the start of an assignment or an operator expression.
func (p *Parser) isCommand() bool {
	arg := p.peekAt(1)
	if !arg.Space || arg.Line != p.peek().Line {
		return false
	}
	switch arg.Type {
	case scan.String:
		return true
	case scan.Identifier:
	default:
		return false
	}
	switch p.peekAt(2).Type {
	case scan.Newline, scan.Semicolon, scan.Comma, scan.EOF, scan.Identifier, scan.Number, scan.String:
		return true
	}
	return false
}

// command parses "name word ..." where each word is a run of tokens
// without intervening white space.
func (p *Parser) command() ast.Stmt {
	name := p.next()
	var args []string
	for {
		tok := p.peek()
		switch tok.Type {
		case scan.Newline, scan.Semicolon, scan.Comma, scan.EOF:
			x := &ast.Command{At: pos(name), Name: name.Text, Args: args}
			return &ast.ExprStmt{At: pos(name), X: x, Print: p.terminator()}
		}
		p.next()
		if tok.Space || len(args) == 0 {
			args = append(args, tok.Text)
		} else {
			args[len(args)-1] += tok.Text
		}
	}
}

// ifStmt:
//
//	if expr block {elseif expr block} [else block] end
func (p *Parser) ifStmt() ast.Stmt {
	tok := p.need(scan.If)
	s := &ast.If{At: pos(tok)}
	for {
		cond := p.expr()
		body := p.block(scan.Elseif, scan.Else, scan.End)
		s.Clauses = append(s.Clauses, ast.IfClause{Cond: cond, Body: body})
		switch p.next().Type {
		case scan.Elseif:
			continue
		case scan.Else:
			s.Else = p.block(scan.End)
			p.need(scan.End)
		}
		return s
	}
}

// forStmt:
//
//	for name = expr block end
//	for (name = expr) block end
func (p *Parser) forStmt() ast.Stmt {
	tok := p.need(scan.For)
	paren := p.peek().Type == scan.LeftParen && p.peekAt(1).Type == scan.Identifier && p.peekAt(2).Type == scan.Assign
	if paren {
		p.next()
		p.push(inParen)
	}
	name := p.need(scan.Identifier)
	p.need(scan.Assign)
	rng := p.expr()
	if paren {
		p.pop()
		p.need(scan.RightParen)
	}
	body := p.block(scan.End)
	p.need(scan.End)
	return &ast.For{At: pos(tok), Var: name.Text, Range: rng, Body: body}
}

// whileStmt:
//
//	while expr block end
func (p *Parser) whileStmt() ast.Stmt {
	tok := p.need(scan.While)
	cond := p.expr()
	body := p.block(scan.End)
	p.need(scan.End)
	return &ast.While{At: pos(tok), Cond: cond, Body: body}
}

// switchStmt:
//
//	switch expr {case expr block} [otherwise block] end
func (p *Parser) switchStmt() ast.Stmt {
	tok := p.need(scan.Switch)
	s := &ast.Switch{At: pos(tok), X: p.expr()}
	for {
		p.skipSeparators()
		t := p.next()
		switch t.Type {
		case scan.Case:
			v := p.expr()
			body := p.block(scan.Case, scan.Otherwise, scan.End)
			s.Cases = append(s.Cases, ast.SwitchCase{Value: v, Body: body})
		case scan.Otherwise:
			if s.HasOther {
				p.errorf(t, "duplicate otherwise in switch")
			}
			s.HasOther = true
			s.Otherwise = p.block(scan.Case, scan.Otherwise, scan.End)
		case scan.End:
			return s
		default:
			p.errorf(t, "expected case, otherwise or end in switch; got %s", describe(t))
		}
	}
}

// tryStmt:
//
//	try block catch [name] block end
func (p *Parser) tryStmt() ast.Stmt {
	tok := p.need(scan.Try)
	s := &ast.Try{At: pos(tok)}
	s.Body = p.block(scan.Catch, scan.End)
	if c := p.next(); c.Type == scan.Catch {
		if id := p.peek(); id.Type == scan.Identifier && id.Line == c.Line {
			switch p.peekAt(1).Type {
			case scan.Newline, scan.Semicolon, scan.Comma, scan.EOF:
				s.Ident = p.next().Text
			}
		}
		s.Catch = p.block(scan.End)
		p.need(scan.End)
	}
	return s
}

// functionDef:
//
//	function [outputs =] name [(params)] block (end | function | EOF)
func (p *Parser) functionDef() *ast.FunctionDef {
	tok := p.need(scan.Function)
	f := &ast.FunctionDef{At: pos(tok), File: p.name}
	switch {
	case p.peek().Type == scan.LeftBrack:
		p.next()
		for p.peek().Type != scan.RightBrack {
			if p.peek().Type == scan.Comma {
				p.next()
				continue
			}
			f.Outputs = append(f.Outputs, p.need(scan.Identifier).Text)
		}
		p.next()
		p.need(scan.Assign)
	case p.peek().Type == scan.Identifier && p.peekAt(1).Type == scan.Assign:
		f.Outputs = []string{p.next().Text}
		p.next()
	}
	f.Name = p.need(scan.Identifier).Text
	// Allow dotted names such as set.prop; only the last element matters.
	for p.peek().Type == scan.Dot {
		p.next()
		f.Name = p.need(scan.Identifier).Text
	}
	if p.peek().Type == scan.LeftParen {
		p.next()
		for p.peek().Type != scan.RightParen {
			switch t := p.next(); {
			case t.Type == scan.Comma:
			case t.Type == scan.Identifier:
				f.Params = append(f.Params, t.Text)
			case t.Type == scan.Operator && t.Text == "~":
				f.Params = append(f.Params, "~")
			default:
				p.errorf(t, "malformed function header: unexpected %s", describe(t))
			}
		}
		p.next()
	}
	switch t := p.peek(); t.Type {
	case scan.Newline, scan.Semicolon, scan.Comma, scan.EOF:
	default:
		p.errorf(t, "malformed function header: unexpected %s", describe(t))
	}
	f.Body = []ast.Stmt{}
	for {
		p.skipSeparators()
		t := p.peek()
		switch t.Type {
		case scan.EOF, scan.Function:
			return f
		case scan.End:
			p.next()
			return f
		}
		f.Body = append(f.Body, p.statement())
	}
}

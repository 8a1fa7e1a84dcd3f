// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ast declares the types used to represent parsed programs.
//
// Both expressions and statements are closed sets: every node type
// implements an unexported marker method, so a type switch over Expr or
// Stmt that lists the types in this package is exhaustive.
package ast // import "matfree.dev/matfree/ast"

import (
	"fmt"
	"strconv"
	"strings"
)

// Pos is a source position.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Node is implemented by all expressions and statements.
type Node interface {
	Position() Pos
	// String returns source text equivalent to the node.
	String() string
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

type (
	// Number is a numeric literal.
	Number struct {
		At   Pos
		Val  float64
		Imag bool // imaginary literal such as 3i
		Text string
	}

	// String is a character literal.
	String struct {
		At  Pos
		Val string
	}

	// Bool is the keyword true or false.
	Bool struct {
		At  Pos
		Val bool
	}

	// Ident is a bare name. It refers to a variable or to a
	// function called without arguments.
	Ident struct {
		At   Pos
		Name string
	}

	// Unary is a prefix operator: - + ~.
	Unary struct {
		At Pos
		Op string
		X  Expr
	}

	// Binary is an infix operator.
	Binary struct {
		At Pos
		Op string
		X  Expr
		Y  Expr
	}

	// Postfix is a transpose, ' or .'.
	Postfix struct {
		At Pos
		Op string
		X  Expr
	}

	// Matrix is a bracketed literal. Rows holds the elements of each row.
	Matrix struct {
		At   Pos
		Rows [][]Expr
	}

	// CellLit is a braced literal.
	CellLit struct {
		At   Pos
		Rows [][]Expr
	}

	// Call is X(Args). It is both a function call and an index;
	// which one is decided at run time.
	Call struct {
		At   Pos
		Fn   Expr
		Args []Expr
	}

	// CellIndex is X{Args}.
	CellIndex struct {
		At   Pos
		X    Expr
		Args []Expr
	}

	// Field is X.Name, or X.(Dynamic) when Dynamic is not nil.
	Field struct {
		At      Pos
		X       Expr
		Name    string
		Dynamic Expr
	}

	// Range is Start:Stop or Start:Step:Stop. A Range with all three
	// nil is the bare colon meaning an entire dimension.
	Range struct {
		At    Pos
		Start Expr
		Step  Expr
		Stop  Expr
	}

	// End is the keyword end inside an index; it stands for the
	// last index of the dimension being indexed.
	End struct {
		At Pos
	}

	// AnonFunc is @(Params) Body.
	AnonFunc struct {
		At     Pos
		Params []string
		Body   Expr
		Source string // the text of the definition as written
	}

	// FuncHandle is @Name.
	FuncHandle struct {
		At   Pos
		Name string
	}

	// Command is the command form "name word word", as in "format long".
	Command struct {
		At   Pos
		Name string
		Args []string
	}
)

func (x *Number) Position() Pos     { return x.At }
func (x *String) Position() Pos     { return x.At }
func (x *Bool) Position() Pos       { return x.At }
func (x *Ident) Position() Pos      { return x.At }
func (x *Unary) Position() Pos      { return x.At }
func (x *Binary) Position() Pos     { return x.At }
func (x *Postfix) Position() Pos    { return x.At }
func (x *Matrix) Position() Pos     { return x.At }
func (x *CellLit) Position() Pos    { return x.At }
func (x *Call) Position() Pos       { return x.At }
func (x *CellIndex) Position() Pos  { return x.At }
func (x *Field) Position() Pos      { return x.At }
func (x *Range) Position() Pos      { return x.At }
func (x *End) Position() Pos        { return x.At }
func (x *AnonFunc) Position() Pos   { return x.At }
func (x *FuncHandle) Position() Pos { return x.At }
func (x *Command) Position() Pos    { return x.At }

func (*Number) exprNode()     {}
func (*String) exprNode()     {}
func (*Bool) exprNode()       {}
func (*Ident) exprNode()      {}
func (*Unary) exprNode()      {}
func (*Binary) exprNode()     {}
func (*Postfix) exprNode()    {}
func (*Matrix) exprNode()     {}
func (*CellLit) exprNode()    {}
func (*Call) exprNode()       {}
func (*CellIndex) exprNode()  {}
func (*Field) exprNode()      {}
func (*Range) exprNode()      {}
func (*End) exprNode()        {}
func (*AnonFunc) exprNode()   {}
func (*FuncHandle) exprNode() {}
func (*Command) exprNode()    {}

// IsColon reports whether r is the bare colon.
func (r *Range) IsColon() bool {
	return r.Start == nil && r.Step == nil && r.Stop == nil
}

func (x *Number) String() string {
	if x.Text != "" {
		return x.Text
	}
	s := strconv.FormatFloat(x.Val, 'g', -1, 64)
	if x.Imag {
		s += "i"
	}
	return s
}

func (x *String) String() string {
	return "'" + strings.ReplaceAll(x.Val, "'", "''") + "'"
}

func (x *Bool) String() string {
	return strconv.FormatBool(x.Val)
}

func (x *Ident) String() string {
	return x.Name
}

func (x *Unary) String() string {
	return x.Op + operand(x.X)
}

func (x *Binary) String() string {
	return operand(x.X) + " " + x.Op + " " + operand(x.Y)
}

func (x *Postfix) String() string {
	return operand(x.X) + x.Op
}

// operand returns the text of e, parenthesized if it is an operator expression.
func operand(e Expr) string {
	switch e.(type) {
	case *Binary, *Unary, *Range, *AnonFunc:
		return "(" + e.String() + ")"
	}
	return e.String()
}

func rows(open, close string, rs [][]Expr) string {
	var b strings.Builder
	b.WriteString(open)
	for i, row := range rs {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(list(row))
	}
	b.WriteString(close)
	return b.String()
}

func list(es []Expr) string {
	s := make([]string, len(es))
	for i, e := range es {
		s[i] = e.String()
	}
	return strings.Join(s, ", ")
}

func (x *Matrix) String() string {
	return rows("[", "]", x.Rows)
}

func (x *CellLit) String() string {
	return rows("{", "}", x.Rows)
}

func (x *Call) String() string {
	return x.Fn.String() + "(" + list(x.Args) + ")"
}

func (x *CellIndex) String() string {
	return x.X.String() + "{" + list(x.Args) + "}"
}

func (x *Field) String() string {
	if x.Dynamic != nil {
		return x.X.String() + ".(" + x.Dynamic.String() + ")"
	}
	return x.X.String() + "." + x.Name
}

func (x *Range) String() string {
	if x.IsColon() {
		return ":"
	}
	if x.Step != nil {
		return operand(x.Start) + ":" + operand(x.Step) + ":" + operand(x.Stop)
	}
	return operand(x.Start) + ":" + operand(x.Stop)
}

func (x *End) String() string {
	return "end"
}

func (x *AnonFunc) String() string {
	if x.Source != "" {
		return x.Source
	}
	return "@(" + strings.Join(x.Params, ",") + ") " + x.Body.String()
}

func (x *FuncHandle) String() string {
	return "@" + x.Name
}

func (x *Command) String() string {
	if len(x.Args) == 0 {
		return x.Name
	}
	return x.Name + " " + strings.Join(x.Args, " ")
}

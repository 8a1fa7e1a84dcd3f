// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import "strings"

type (
	// ExprStmt evaluates X. Print is set when the statement is not
	// terminated by a semicolon, so the result is displayed.
	ExprStmt struct {
		At    Pos
		X     Expr
		Print bool
	}

	// Assign is LHS = RHS. LHS is an Ident, possibly wrapped in any
	// chain of Call, CellIndex and Field nodes.
	Assign struct {
		At    Pos
		LHS   Expr
		RHS   Expr
		Print bool
	}

	// MultiAssign is [a, b, ~] = RHS. A nil entry in LHS is a ~ placeholder.
	MultiAssign struct {
		At    Pos
		LHS   []Expr
		RHS   Expr
		Print bool
	}

	// If is a chain of conditional clauses with an optional else.
	If struct {
		At      Pos
		Clauses []IfClause
		Else    []Stmt // nil if there is no else
	}

	// For binds Var to successive columns of Range.
	For struct {
		At    Pos
		Var   string
		Range Expr
		Body  []Stmt
	}

	While struct {
		At   Pos
		Cond Expr
		Body []Stmt
	}

	// Switch runs the body of the first case matching X.
	Switch struct {
		At        Pos
		X         Expr
		Cases     []SwitchCase
		Otherwise []Stmt
		HasOther  bool
	}

	// Try runs Body; on a run-time error it binds Ident (if any) and runs Catch.
	Try struct {
		At    Pos
		Body  []Stmt
		Ident string
		Catch []Stmt
	}

	Return struct {
		At Pos
	}

	Break struct {
		At Pos
	}

	Continue struct {
		At Pos
	}

	// Global declares names to be resolved in the root workspace.
	Global struct {
		At    Pos
		Names []string
	}

	// Persistent declares names whose values survive between calls of
	// the enclosing function.
	Persistent struct {
		At    Pos
		Names []string
	}

	// FunctionDef is a named function.
	FunctionDef struct {
		At      Pos
		Name    string
		Params  []string
		Outputs []string
		Body    []Stmt
		File    string // source file, if any
	}
)

// IfClause is one condition and body of an If.
type IfClause struct {
	Cond Expr
	Body []Stmt
}

// SwitchCase is one case of a Switch.
type SwitchCase struct {
	Value Expr
	Body  []Stmt
}

// Program is the result of parsing a source unit.
type Program struct {
	Stmts []Stmt
	Funcs []*FunctionDef
}

func (s *ExprStmt) Position() Pos    { return s.At }
func (s *Assign) Position() Pos      { return s.At }
func (s *MultiAssign) Position() Pos { return s.At }
func (s *If) Position() Pos          { return s.At }
func (s *For) Position() Pos         { return s.At }
func (s *While) Position() Pos       { return s.At }
func (s *Switch) Position() Pos      { return s.At }
func (s *Try) Position() Pos         { return s.At }
func (s *Return) Position() Pos      { return s.At }
func (s *Break) Position() Pos       { return s.At }
func (s *Continue) Position() Pos    { return s.At }
func (s *Global) Position() Pos      { return s.At }
func (s *Persistent) Position() Pos  { return s.At }
func (s *FunctionDef) Position() Pos { return s.At }

func (*ExprStmt) stmtNode()    {}
func (*Assign) stmtNode()      {}
func (*MultiAssign) stmtNode() {}
func (*If) stmtNode()          {}
func (*For) stmtNode()         {}
func (*While) stmtNode()       {}
func (*Switch) stmtNode()      {}
func (*Try) stmtNode()         {}
func (*Return) stmtNode()      {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
func (*Global) stmtNode()      {}
func (*Persistent) stmtNode()  {}
func (*FunctionDef) stmtNode() {}

func terminator(print bool) string {
	if print {
		return ""
	}
	return ";"
}

func (s *ExprStmt) String() string {
	return s.X.String() + terminator(s.Print)
}

func (s *Assign) String() string {
	return s.LHS.String() + " = " + s.RHS.String() + terminator(s.Print)
}

func (s *MultiAssign) String() string {
	names := make([]string, len(s.LHS))
	for i, e := range s.LHS {
		if e == nil {
			names[i] = "~"
		} else {
			names[i] = e.String()
		}
	}
	return "[" + strings.Join(names, ", ") + "] = " + s.RHS.String() + terminator(s.Print)
}

func (s *If) String() string {
	var b strings.Builder
	for i, c := range s.Clauses {
		if i == 0 {
			b.WriteString("if ")
		} else {
			b.WriteString("elseif ")
		}
		b.WriteString(c.Cond.String())
		b.WriteByte('\n')
		writeBlock(&b, c.Body)
	}
	if s.Else != nil {
		b.WriteString("else\n")
		writeBlock(&b, s.Else)
	}
	b.WriteString("end")
	return b.String()
}

func (s *For) String() string {
	var b strings.Builder
	b.WriteString("for " + s.Var + " = " + s.Range.String() + "\n")
	writeBlock(&b, s.Body)
	b.WriteString("end")
	return b.String()
}

func (s *While) String() string {
	var b strings.Builder
	b.WriteString("while " + s.Cond.String() + "\n")
	writeBlock(&b, s.Body)
	b.WriteString("end")
	return b.String()
}

func (s *Switch) String() string {
	var b strings.Builder
	b.WriteString("switch " + s.X.String() + "\n")
	for _, c := range s.Cases {
		b.WriteString("case " + c.Value.String() + "\n")
		writeBlock(&b, c.Body)
	}
	if s.HasOther {
		b.WriteString("otherwise\n")
		writeBlock(&b, s.Otherwise)
	}
	b.WriteString("end")
	return b.String()
}

func (s *Try) String() string {
	var b strings.Builder
	b.WriteString("try\n")
	writeBlock(&b, s.Body)
	b.WriteString("catch")
	if s.Ident != "" {
		b.WriteString(" " + s.Ident)
	}
	b.WriteByte('\n')
	writeBlock(&b, s.Catch)
	b.WriteString("end")
	return b.String()
}

func (s *Return) String() string     { return "return" }
func (s *Break) String() string      { return "break" }
func (s *Continue) String() string   { return "continue" }
func (s *Global) String() string     { return "global " + strings.Join(s.Names, " ") }
func (s *Persistent) String() string { return "persistent " + strings.Join(s.Names, " ") }

func (s *FunctionDef) String() string {
	var b strings.Builder
	b.WriteString("function ")
	switch len(s.Outputs) {
	case 0:
	case 1:
		b.WriteString(s.Outputs[0] + " = ")
	default:
		b.WriteString("[" + strings.Join(s.Outputs, ", ") + "] = ")
	}
	b.WriteString(s.Name)
	b.WriteString("(" + strings.Join(s.Params, ", ") + ")\n")
	writeBlock(&b, s.Body)
	b.WriteString("end")
	return b.String()
}

func writeBlock(b *strings.Builder, stmts []Stmt) {
	for _, s := range stmts {
		for _, line := range strings.Split(s.String(), "\n") {
			b.WriteString("    ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
}

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Stmts {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	for _, f := range p.Funcs {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Walk calls fn for e and each expression nested within it, depth first.
// If fn returns false the children of that node are skipped.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch x := e.(type) {
	case *Number, *String, *Bool, *Ident, *End, *FuncHandle, *Command:
	case *Unary:
		Walk(x.X, fn)
	case *Binary:
		Walk(x.X, fn)
		Walk(x.Y, fn)
	case *Postfix:
		Walk(x.X, fn)
	case *Matrix:
		walkRows(x.Rows, fn)
	case *CellLit:
		walkRows(x.Rows, fn)
	case *Call:
		Walk(x.Fn, fn)
		walkList(x.Args, fn)
	case *CellIndex:
		Walk(x.X, fn)
		walkList(x.Args, fn)
	case *Field:
		Walk(x.X, fn)
		Walk(x.Dynamic, fn)
	case *Range:
		Walk(x.Start, fn)
		Walk(x.Step, fn)
		Walk(x.Stop, fn)
	case *AnonFunc:
		Walk(x.Body, fn)
	default:
		panic("ast.Walk: unexpected expression " + e.String())
	}
}

func walkRows(rows [][]Expr, fn func(Expr) bool) {
	for _, row := range rows {
		walkList(row, fn)
	}
}

func walkList(es []Expr, fn func(Expr) bool) {
	for _, e := range es {
		Walk(e, fn)
	}
}

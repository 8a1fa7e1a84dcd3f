// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"

	"matfree.dev/matfree/ast"
	"matfree.dev/matfree/value"
)

// flow reports how a statement list finished.
type flow int

const (
	normal flow = iota
	breakFlow
	continueFlow
	returnFlow
)

// Exec executes top-level statements in the current workspace. Errors
// are raised by panicking with value.Error; see ../run.
func (c *Context) Exec(stmts []ast.Stmt) {
	c.execBlock(stmts)
}

// execBlock executes statements until one changes the flow of control.
func (c *Context) execBlock(stmts []ast.Stmt) flow {
	for _, s := range stmts {
		if f := c.exec(s); f != normal {
			return f
		}
	}
	return normal
}

func (c *Context) exec(s ast.Stmt) flow {
	switch s := s.(type) {
	case *ast.ExprStmt:
		c.exprStmt(s)
	case *ast.Assign:
		name := c.assign(s.LHS, c.Eval(s.RHS))
		if s.Print {
			c.show(name)
		}
	case *ast.MultiAssign:
		c.multiAssign(s)
	case *ast.If:
		for _, clause := range s.Clauses {
			if value.IsTrue(c.Eval(clause.Cond)) {
				return c.execBlock(clause.Body)
			}
		}
		return c.execBlock(s.Else)
	case *ast.For:
		return c.forLoop(s)
	case *ast.While:
		for value.IsTrue(c.Eval(s.Cond)) {
			switch c.execBlock(s.Body) {
			case breakFlow:
				return normal
			case returnFlow:
				return returnFlow
			}
		}
	case *ast.Switch:
		return c.switchStmt(s)
	case *ast.Try:
		return c.tryStmt(s)
	case *ast.Return:
		return returnFlow
	case *ast.Break:
		return breakFlow
	case *ast.Continue:
		return continueFlow
	case *ast.Global:
		for _, name := range s.Names {
			c.env.DeclareGlobal(name)
		}
	case *ast.Persistent:
		c.declarePersistent(s.Names)
	case *ast.FunctionDef:
		c.Define(s)
	default:
		panic(fmt.Sprintf("internal error: unknown statement type %T", s))
	}
	return normal
}

// exprStmt evaluates an expression statement. A bare variable is displayed
// under its own name; any other result is assigned to ans.
func (c *Context) exprStmt(s *ast.ExprStmt) {
	if id, ok := s.X.(*ast.Ident); ok {
		if _, bound := c.env.Get(id.Name); bound {
			if s.Print {
				c.show(id.Name)
			}
			return
		}
	}
	for _, v := range c.Multi(s.X, 0) {
		c.env.Set("ans", v)
		if s.Print {
			c.show("ans")
		}
	}
}

// show displays a variable.
func (c *Context) show(name string) {
	v, ok := c.env.Get(name)
	if !ok {
		return
	}
	value.Display(c.config, c.config.Output(), name, v)
}

// multiAssign executes [a, b, ...] = expr.
func (c *Context) multiAssign(s *ast.MultiAssign) {
	vals := c.Multi(s.RHS, len(s.LHS))
	for i, lhs := range s.LHS {
		if lhs == nil {
			continue
		}
		if i >= len(vals) {
			value.Errorf(value.InvalidArgument, "insufficient number of outputs from right hand side of assignment: got %d, need %d", len(vals), i+1)
		}
		name := c.assign(lhs, vals[i])
		if s.Print {
			c.show(name)
		}
	}
}

// forLoop iterates over the columns of the range value. A row vector
// yields its elements in order.
func (c *Context) forLoop(s *ast.For) flow {
	rng := c.Eval(s.Range)
	rows, cols := rng.Size()
	var item func(j int) value.Value
	switch v := rng.(type) {
	case *value.Matrix, value.Logical, value.String:
		if rows == 0 {
			return normal
		}
		col := value.Index{Val: value.Scalar(0)}
		item = func(j int) value.Value {
			col.Val = value.Scalar(float64(j + 1))
			return value.IndexValue(v, []value.Index{value.Colon, col})
		}
	case *value.Cell:
		if rows == 0 {
			return normal
		}
		item = func(j int) value.Value {
			return value.IndexValue(v, []value.Index{value.Colon, value.At(j + 1)})
		}
	case value.Empty:
		return normal
	case *value.Struct, *value.FunctionHandle:
		item = func(int) value.Value { return v }
	default:
		panic(fmt.Sprintf("internal error: unknown value type %T", rng))
	}
	for j := 0; j < cols; j++ {
		c.env.Set(s.Var, item(j))
		switch c.execBlock(s.Body) {
		case breakFlow:
			return normal
		case returnFlow:
			return returnFlow
		}
	}
	return normal
}

// switchStmt executes the first case that matches, or otherwise.
func (c *Context) switchStmt(s *ast.Switch) flow {
	x := c.Eval(s.X)
	for _, cs := range s.Cases {
		if caseMatches(x, c.Eval(cs.Value)) {
			return c.execBlock(cs.Body)
		}
	}
	if s.HasOther {
		return c.execBlock(s.Otherwise)
	}
	return normal
}

// caseMatches reports whether a switch value matches a case value. A cell
// case matches if any of its elements does. Strings match equal strings;
// numbers match equal scalars.
func caseMatches(x, cv value.Value) bool {
	if cell, ok := cv.(*value.Cell); ok {
		for _, elem := range cell.Data() {
			if caseMatches(x, elem) {
				return true
			}
		}
		return false
	}
	xs, xText := x.(value.String)
	cs, cText := cv.(value.String)
	switch {
	case xText && cText:
		return xs == cs
	case xText || cText:
		return false
	}
	xm, ok1 := value.Numeric(x)
	cm, ok2 := value.Numeric(cv)
	if !ok1 || !ok2 || !cm.IsScalar() || !xm.IsScalar() {
		return false
	}
	return xm.Float() == cm.Float()
}

// tryStmt executes the body, running the catch block if it raises an error.
func (c *Context) tryStmt(s *ast.Try) flow {
	f, err := c.protect(s.Body)
	if err == nil {
		return f
	}
	c.tracef("caught %s: %s", err.ID(), err.Msg)
	if s.Ident != "" {
		c.env.Set(s.Ident, ErrorStruct(*err))
	}
	return c.execBlock(s.Catch)
}

// protect executes stmts, recovering a run-time error.
func (c *Context) protect(stmts []ast.Stmt) (f flow, err *value.Error) {
	saved := c.save()
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(value.Error)
			if !ok {
				panic(r)
			}
			c.restore(saved)
			err = &e
		}
	}()
	return c.execBlock(stmts), nil
}

// ErrorStruct returns the value bound by catch: a struct holding the
// message and identifier of the error.
func ErrorStruct(err value.Error) *value.Struct {
	return value.NewStruct().
		With("message", value.String(err.Msg)).
		With("identifier", value.String(err.ID()))
}

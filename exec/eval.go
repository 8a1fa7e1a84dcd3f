// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"

	"matfree.dev/matfree/ast"
	"matfree.dev/matfree/value"
)

// Eval evaluates an expression that must produce exactly one value.
func (c *Context) Eval(e ast.Expr) value.Value {
	switch e := e.(type) {
	case *ast.Number:
		if e.Imag {
			value.Errorf(value.TypeError, "complex numbers are not supported")
		}
		return value.Scalar(e.Val)
	case *ast.String:
		return value.String(e.Val)
	case *ast.Bool:
		return value.Bool(e.Val)
	case *ast.Ident:
		if v, ok := c.env.Get(e.Name); ok {
			return v
		}
		return c.single(e.Name, c.callNamed(e.Name, nil, 1))
	case *ast.Unary:
		return value.Unary(c, e.Op, c.Eval(e.X))
	case *ast.Binary:
		switch e.Op {
		case "&&":
			if !c.truth(e.Op, c.Eval(e.X)) {
				return value.Bool(false)
			}
			return value.Bool(c.truth(e.Op, c.Eval(e.Y)))
		case "||":
			if c.truth(e.Op, c.Eval(e.X)) {
				return value.Bool(true)
			}
			return value.Bool(c.truth(e.Op, c.Eval(e.Y)))
		}
		return value.Binary(c, c.Eval(e.X), e.Op, c.Eval(e.Y))
	case *ast.Postfix:
		return value.Transpose(c.Eval(e.X))
	case *ast.Matrix:
		return c.matrix(e)
	case *ast.CellLit:
		return c.cellLiteral(e)
	case *ast.Call:
		return c.single(e.String(), c.call(e, 1))
	case *ast.CellIndex:
		vals := c.cellIndex(e)
		if len(vals) == 0 {
			value.Errorf(value.IndexOutOfRange, "brace indexing %s produced no results", e)
		}
		return vals[0]
	case *ast.Field:
		return c.field(c.Eval(e.X), e)
	case *ast.Range:
		if e.IsColon() {
			value.Errorf(value.InvalidArgument, "':' is only valid as a subscript")
		}
		return c.rangeValue(e)
	case *ast.End:
		if len(c.ends) == 0 {
			value.Errorf(value.InvalidArgument, "'end' is only valid within an index")
		}
		top := c.ends[len(c.ends)-1]
		return value.Scalar(float64(value.EndOf(top.v, top.k, top.n)))
	case *ast.AnonFunc:
		return c.anonFunc(e)
	case *ast.FuncHandle:
		return c.handle(e.Name)
	case *ast.Command:
		return c.single(e.Name, c.command(e, 1))
	}
	panic(fmt.Sprintf("internal error: unknown expression type %T", e))
}

// single returns the sole value of a call used in an expression.
func (c *Context) single(what string, vals []value.Value) value.Value {
	if len(vals) == 0 {
		value.Errorf(value.InvalidArgument, "%s does not return a value", what)
	}
	return vals[0]
}

// truth evaluates an operand of a short-circuit operator.
func (c *Context) truth(op string, v value.Value) bool {
	if value.Numel(v) != 1 {
		switch v.(type) {
		case *value.Cell, *value.Struct, *value.FunctionHandle:
		default:
			value.Errorf(value.InvalidArgument, "operands to %s must be convertible to logical scalar values; got %s", op, value.SizeString(v))
		}
	}
	return value.IsTrue(v)
}

// Multi evaluates e requesting nargout values, as on the right of a
// multiple assignment. Only calls and comma-separated lists produce
// more than one value.
func (c *Context) Multi(e ast.Expr, nargout int) []value.Value {
	switch e := e.(type) {
	case *ast.Ident:
		if v, ok := c.env.Get(e.Name); ok {
			return []value.Value{v}
		}
		return c.callNamed(e.Name, nil, nargout)
	case *ast.Call:
		return c.call(e, nargout)
	case *ast.CellIndex:
		return c.cellIndex(e)
	case *ast.Command:
		return c.command(e, nargout)
	}
	return []value.Value{c.Eval(e)}
}

// list evaluates an element of an argument list or a literal, where
// c{...} expands to all the selected elements.
func (c *Context) list(e ast.Expr) []value.Value {
	if ci, ok := e.(*ast.CellIndex); ok {
		return c.cellIndex(ci)
	}
	return []value.Value{c.Eval(e)}
}

// args evaluates the arguments of a function call.
func (c *Context) args(exprs []ast.Expr) []value.Value {
	vals := make([]value.Value, 0, len(exprs))
	for _, e := range exprs {
		if r, ok := e.(*ast.Range); ok && r.IsColon() {
			vals = append(vals, value.String(":"))
			continue
		}
		vals = append(vals, c.list(e)...)
	}
	return vals
}

// subscripts evaluates the subscripts of an index into v.
func (c *Context) subscripts(v value.Value, exprs []ast.Expr) []value.Index {
	if v == nil {
		v = value.Empty{}
	}
	subs := make([]value.Index, 0, len(exprs))
	for k, e := range exprs {
		if r, ok := e.(*ast.Range); ok && r.IsColon() {
			subs = append(subs, value.Colon)
			continue
		}
		c.ends = append(c.ends, endContext{v, k, len(exprs)})
		vals := c.list(e)
		c.ends = c.ends[:len(c.ends)-1]
		for _, x := range vals {
			if s, ok := x.(value.String); ok && s == ":" {
				subs = append(subs, value.Colon)
				continue
			}
			subs = append(subs, value.Index{Val: x})
		}
	}
	return subs
}

// rangeValue evaluates start:stop or start:step:stop.
func (c *Context) rangeValue(e *ast.Range) value.Value {
	bound := func(x ast.Expr) (float64, bool) {
		m := value.ToMatrix("colon operator", c.Eval(x))
		if m.IsEmpty() {
			return 0, false
		}
		return m.Data()[0], true
	}
	start, ok1 := bound(e.Start)
	step, ok2 := 1.0, true
	if e.Step != nil {
		step, ok2 = bound(e.Step)
	}
	stop, ok3 := bound(e.Stop)
	if !ok1 || !ok2 || !ok3 {
		return value.Zeros(1, 0)
	}
	return value.Range(start, step, stop)
}

// matrix evaluates a matrix literal.
func (c *Context) matrix(e *ast.Matrix) value.Value {
	rows := make([]value.Value, 0, len(e.Rows))
	for _, row := range e.Rows {
		var elems []value.Value
		for _, x := range row {
			elems = append(elems, c.list(x)...)
		}
		rows = append(rows, value.HorzCat(elems))
	}
	return value.VertCat(rows)
}

// cellLiteral evaluates a cell array literal. Each element becomes one cell,
// except that a cell element inside braces is nested, not merged.
func (c *Context) cellLiteral(e *ast.CellLit) value.Value {
	if len(e.Rows) == 0 {
		return value.EmptyCell(0, 0)
	}
	var data []value.Value
	cols := -1
	for _, row := range e.Rows {
		var elems []value.Value
		for _, x := range row {
			elems = append(elems, c.list(x)...)
		}
		if len(elems) == 0 {
			continue
		}
		if cols >= 0 && len(elems) != cols {
			value.Errorf(value.DimensionMismatch, "dimensions of cell arrays being concatenated are not consistent: %d vs %d columns", cols, len(elems))
		}
		cols = len(elems)
		data = append(data, elems...)
	}
	if cols <= 0 {
		return value.EmptyCell(0, 0)
	}
	return value.NewCell(len(data)/cols, cols, data)
}

// call evaluates a call or an index expression, x(args).
func (c *Context) call(e *ast.Call, nargout int) []value.Value {
	if id, ok := e.Fn.(*ast.Ident); ok {
		v, bound := c.env.Get(id.Name)
		if !bound {
			return c.callNamed(id.Name, c.args(e.Args), nargout)
		}
		if fh, ok := v.(*value.FunctionHandle); ok {
			return c.callHandle(fh, c.args(e.Args), nargout)
		}
		return []value.Value{value.IndexValue(v, c.subscripts(v, e.Args))}
	}
	v := c.Eval(e.Fn)
	if fh, ok := v.(*value.FunctionHandle); ok {
		return c.callHandle(fh, c.args(e.Args), nargout)
	}
	return []value.Value{value.IndexValue(v, c.subscripts(v, e.Args))}
}

// cellIndex evaluates c{args}, returning the selected elements in order.
func (c *Context) cellIndex(e *ast.CellIndex) []value.Value {
	v := c.Eval(e.X)
	return value.CellContents(v, c.subscripts(v, e.Args))
}

// field evaluates x.name or x.(expr).
func (c *Context) field(x value.Value, e *ast.Field) value.Value {
	name := c.fieldName(e)
	s, ok := x.(*value.Struct)
	if !ok {
		value.Errorf(value.TypeError, "dot indexing is not supported for values of class %s", x.Class())
	}
	return s.Field(name)
}

// fieldName returns the name selected by a field expression.
func (c *Context) fieldName(e *ast.Field) string {
	if e.Dynamic == nil {
		return e.Name
	}
	return value.ToStr("dynamic field name", c.Eval(e.Dynamic))
}

// command evaluates command syntax, name word..., as name('word', ...).
func (c *Context) command(e *ast.Command, nargout int) []value.Value {
	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		args[i] = value.String(a)
	}
	if v, ok := c.env.Get(e.Name); ok {
		if fh, ok := v.(*value.FunctionHandle); ok {
			return c.callHandle(fh, args, nargout)
		}
		value.Errorf(value.TypeError, "%s is a variable, not a command", e.Name)
	}
	return c.callNamed(e.Name, args, nargout)
}

// anonFunc creates an anonymous function, capturing the current values of
// the variables its body refers to.
func (c *Context) anonFunc(e *ast.AnonFunc) value.Value {
	params := make(map[string]bool, len(e.Params))
	for _, p := range e.Params {
		params[p] = true
	}
	captured := map[string]value.Value{}
	ast.Walk(e.Body, func(x ast.Expr) bool {
		id, ok := x.(*ast.Ident)
		if !ok || params[id.Name] {
			return true
		}
		if v, ok := c.env.Get(id.Name); ok {
			captured[id.Name] = v
		}
		return true
	})
	return &value.FunctionHandle{Anon: e, Captured: captured}
}

// handle returns a handle to the named function. A name that cannot be
// resolved yet is looked up again when the handle is called.
func (c *Context) handle(name string) *value.FunctionHandle {
	h := &value.FunctionHandle{Name: name}
	h.Builtin, h.Def = c.resolve(h.FuncName())
	return h
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"

	"matfree.dev/matfree/ast"
	"matfree.dev/matfree/value"
)

// An accessor is one step of an assignment target such as s.a{2}(3).
type accessor struct {
	paren, brace bool
	args         []ast.Expr // For paren and brace.
	field        *ast.Field // Otherwise.
}

// target splits an assignment target into the variable name and the
// accessors applied to it, outermost first.
func target(lhs ast.Expr) (string, []accessor) {
	switch e := lhs.(type) {
	case *ast.Ident:
		return e.Name, nil
	case *ast.Call:
		name, path := target(e.Fn)
		return name, append(path, accessor{paren: true, args: e.Args})
	case *ast.CellIndex:
		name, path := target(e.X)
		return name, append(path, accessor{brace: true, args: e.Args})
	case *ast.Field:
		name, path := target(e.X)
		return name, append(path, accessor{field: e})
	}
	value.Errorf(value.InvalidArgument, "invalid target of assignment: %s", lhs)
	return "", nil
}

// assign stores rhs into the target and returns the name of the variable
// it updated. Every level of the target is copied, never modified.
func (c *Context) assign(lhs ast.Expr, rhs value.Value) string {
	name, path := target(lhs)
	var cur value.Value
	if v, ok := c.env.Get(name); ok {
		cur = v
	}
	if len(path) > 0 {
		if _, ok := cur.(*value.FunctionHandle); ok && path[0].paren {
			value.Errorf(value.TypeError, "cannot assign into function handle %s", name)
		}
	}
	c.env.Set(name, c.assignPath(cur, path, rhs))
	return name
}

// assignPath returns cur updated so that path leads to rhs. A nil cur is unbound.
func (c *Context) assignPath(cur value.Value, path []accessor, rhs value.Value) value.Value {
	if len(path) == 0 {
		return rhs
	}
	a, rest := path[0], path[1:]
	switch {
	case a.field != nil:
		name := c.fieldName(a.field)
		var s *value.Struct
		switch v := cur.(type) {
		case nil:
			s = value.NewStruct()
		case *value.Struct:
			s = v
		default:
			if !value.IsEmpty(v) {
				value.Errorf(value.TypeError, "field assignment to a value of class %s is not supported", v.Class())
			}
			s = value.NewStruct()
		}
		var child value.Value
		if v, ok := s.Get(name); ok {
			child = v
		}
		return s.With(name, c.assignPath(child, rest, rhs))
	case a.paren:
		subs := c.subscripts(cur, a.args)
		if len(rest) == 0 {
			return value.AssignIndex(cur, subs, rhs)
		}
		child := c.existing(cur, func() value.Value { return value.IndexValue(cur, subs) })
		return value.AssignIndex(cur, subs, c.assignPath(child, rest, rhs))
	case a.brace:
		subs := c.subscripts(cur, a.args)
		if len(rest) == 0 {
			return value.AssignCell(cur, subs, rhs)
		}
		child := c.existing(cur, func() value.Value {
			vals := value.CellContents(cur, subs)
			if len(vals) != 1 {
				value.Errorf(value.InvalidArgument, "assignment through a brace index must select one element")
			}
			return vals[0]
		})
		return value.AssignCell(cur, subs, c.assignPath(child, rest, rhs))
	}
	panic(fmt.Sprintf("internal error: bad accessor %+v", a))
}

// existing returns the element of cur read by fn, or nil if it does not
// exist yet because the assignment will grow the container.
func (c *Context) existing(cur value.Value, fn func() value.Value) (v value.Value) {
	if cur == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(value.Error)
			if !ok || (e.Kind != value.IndexOutOfRange && e.Kind != value.TypeError) {
				panic(r)
			}
			v = nil
		}
	}()
	return fn()
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package builtin implements the functions that are written in Go rather
// than in the language itself: math, reductions, constructors, linear
// algebra, strings, type predicates, cells and structs, statistics and
// errors. The interpreter adds a few more that need its internals; see
// ../exec/special.go.
package builtin // import "matfree.dev/matfree/builtin"

import (
	"fmt"

	"matfree.dev/matfree/value"
)

type (
	fn      = func(c value.Context, args []value.Value) value.Value
	multiFn = func(c value.Context, args []value.Value, nargout int) []value.Value
)

// table holds every builtin. It is filled by the init functions of this
// package and never modified afterwards.
var table = map[string]*value.Builtin{}

func register(name string, f fn) {
	if table[name] != nil {
		panic(fmt.Sprintf("builtin %s registered twice", name))
	}
	table[name] = &value.Builtin{Name: name, Fn: f}
}

func registerMulti(name string, f multiFn) {
	if table[name] != nil {
		panic(fmt.Sprintf("builtin %s registered twice", name))
	}
	table[name] = &value.Builtin{Name: name, Multi: f}
}

// Registry returns a new map holding the builtins, keyed by name. The
// caller may add to or remove from the map; the builtins themselves are
// shared and immutable.
func Registry() map[string]*value.Builtin {
	m := make(map[string]*value.Builtin, len(table))
	for name, b := range table {
		m[name] = b
	}
	return m
}

// nargs checks the argument count. A negative max means no limit.
func nargs(name string, args []value.Value, min, max int) {
	switch {
	case len(args) < min:
		value.Errorf(value.InvalidArgument, "not enough input arguments to %s", name)
	case max >= 0 && len(args) > max:
		value.Errorf(value.InvalidArgument, "too many input arguments to %s", name)
	}
}

// dimArg returns the dimension argument at args[i], or 0 if there is none.
func dimArg(name string, args []value.Value, i int) int {
	if len(args) <= i {
		return 0
	}
	d := value.ToInt(name+" dimension", args[i])
	if d != 1 && d != 2 {
		value.Errorf(value.InvalidArgument, "%s: dimension must be 1 or 2; got %d", name, d)
	}
	return d
}

// sizeArgs decodes the size arguments of a constructor such as zeros:
// none for 1x1, n for nxn, (r, c) or [r c]. Negative sizes count as 0.
func sizeArgs(name string, args []value.Value) (rows, cols int) {
	dim := func(v value.Value) int {
		return max(value.ToInt(name+" size", v), 0)
	}
	switch len(args) {
	case 0:
		return 1, 1
	case 1:
		m := value.ToMatrix(name, args[0])
		switch {
		case m.IsScalar():
			n := dim(m)
			return n, n
		case m.Numel() == 2:
			return dim(value.Scalar(m.Linear(0))), dim(value.Scalar(m.Linear(1)))
		}
		value.Errorf(value.InvalidArgument, "%s: size vector must have two elements", name)
	case 2:
		return dim(args[0]), dim(args[1])
	}
	value.Errorf(value.InvalidArgument, "too many input arguments to %s", name)
	return 0, 0
}

// stringList returns the strings of a string or cell array of strings.
func stringList(name string, v value.Value) []string {
	switch v := v.(type) {
	case value.String:
		return []string{string(v)}
	case *value.Cell:
		out := make([]string, 0, len(v.Data()))
		for _, elem := range v.ColumnMajor() {
			out = append(out, value.ToStr(name, elem))
		}
		return out
	}
	return []string{value.ToStr(name, v)}
}

// catch runs fn and returns the run-time error it raised, if any.
func catch(fn func()) (err *value.Error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(value.Error)
			if !ok {
				panic(r)
			}
			err = &e
		}
	}()
	fn()
	return nil
}

// mapStrings applies fn to a string, or to each string of a cell array.
func mapStrings(name string, v value.Value, fn func(string) string) value.Value {
	if c, ok := v.(*value.Cell); ok {
		rows, cols := c.Size()
		out := make([]value.Value, 0, rows*cols)
		for _, elem := range c.Data() {
			out = append(out, value.String(fn(value.ToStr(name, elem))))
		}
		return value.NewCell(rows, cols, out)
	}
	return value.String(fn(value.ToStr(name, v)))
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"sort"
	"strings"

	"matfree.dev/matfree/ast"
)

// Builtin is a function implemented in Go.
// Exactly one of Fn and Multi is set. Fn returns a single value, or nil
// for a function that produces nothing. Multi returns up to nargout values.
type Builtin struct {
	Name  string
	Fn    func(c Context, args []Value) Value
	Multi func(c Context, args []Value, nargout int) []Value
}

// Call invokes the builtin.
func (b *Builtin) Call(c Context, args []Value, nargout int) []Value {
	if b.Multi != nil {
		return b.Multi(c, args, nargout)
	}
	v := b.Fn(c, args)
	if v == nil {
		return nil
	}
	return []Value{v}
}

// FunctionHandle is a callable value: a handle to a named function
// (@name) or an anonymous function (@(x) expr).
type FunctionHandle struct {
	Name     string            // Name of the function, empty for an anonymous function.
	Builtin  *Builtin          // Set if Name resolved to a builtin.
	Def      *ast.FunctionDef  // Set if Name resolved to a user function.
	Anon     *ast.AnonFunc     // Set for an anonymous function.
	Captured map[string]Value  // Variables captured by an anonymous function.
}

// Size returns 1x1.
func (f *FunctionHandle) Size() (int, int) { return 1, 1 }

// String returns the source form of the handle.
func (f *FunctionHandle) String() string {
	if f.Anon != nil {
		return f.Anon.Source
	}
	return "@" + f.Name
}

// CapturedNames returns the sorted names of the captured variables.
func (f *FunctionHandle) CapturedNames() []string {
	names := make([]string, 0, len(f.Captured))
	for name := range f.Captured {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsAnonymous reports whether f is an anonymous function.
func (f *FunctionHandle) IsAnonymous() bool {
	return f.Anon != nil
}

// FuncName returns the function name a handle refers to, without any
// package-style qualification.
func (f *FunctionHandle) FuncName() string {
	if i := strings.LastIndexByte(f.Name, '.'); i >= 0 {
		return f.Name[i+1:]
	}
	return f.Name
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"sort"

	"matfree.dev/matfree/value"
)

// Env is a workspace: the variables of the command line, or of one
// function call. A function's workspace sees none of its caller's
// variables; names declared global are forwarded to the root workspace.
type Env struct {
	vars    map[string]value.Value
	globals map[string]bool
	root    *Env // nil for the root workspace
}

// NewEnv returns an empty workspace whose globals live in root.
// A nil root makes the new workspace a root.
func NewEnv(root *Env) *Env {
	return &Env{
		vars:    map[string]value.Value{},
		globals: map[string]bool{},
		root:    root,
	}
}

// IsRoot reports whether e is a root workspace.
func (e *Env) IsRoot() bool {
	return e.root == nil
}

// Get returns the value bound to name.
func (e *Env) Get(name string) (value.Value, bool) {
	if e.root != nil && e.globals[name] {
		return e.root.Get(name)
	}
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name to v.
func (e *Env) Set(name string, v value.Value) {
	if e.root != nil && e.globals[name] {
		e.root.Set(name, v)
		return
	}
	e.vars[name] = v
}

// DeclareGlobal makes name refer to the variable of that name in the root
// workspace, which is created as [] if it does not exist.
func (e *Env) DeclareGlobal(name string) {
	root := e
	if e.root != nil {
		root = e.root
		delete(e.vars, name)
		e.globals[name] = true
	}
	if _, ok := root.vars[name]; !ok {
		root.vars[name] = value.Empty{}
	}
	root.globals[name] = true
}

// IsGlobal reports whether name has been declared global in e.
func (e *Env) IsGlobal(name string) bool {
	return e.globals[name]
}

// Clear removes the binding of name, reporting whether there was one.
func (e *Env) Clear(name string) bool {
	_, local := e.vars[name]
	global := e.globals[name]
	delete(e.vars, name)
	delete(e.globals, name)
	return local || global
}

// ClearAll removes every binding.
func (e *Env) ClearAll() {
	e.vars = map[string]value.Value{}
	e.globals = map[string]bool{}
}

// Names returns the sorted names of the visible variables.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars)+len(e.globals))
	for name := range e.vars {
		names = append(names, name)
	}
	if e.root != nil {
		for name := range e.globals {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec // import "matfree.dev/matfree/exec"

import (
	"sort"

	"matfree.dev/matfree/ast"
	"matfree.dev/matfree/builtin"
	"matfree.dev/matfree/config"
	"matfree.dev/matfree/value"
)

// Context holds execution state: the workspaces, the function tables and
// the bookkeeping of calls in progress. It is the only implementation of
// ../value/Context, but since it references the value package, there would
// be a cycle if that package depended on this type definition.
//
// A Context is a session. It is not safe for concurrent use, and separate
// Contexts share nothing.
type Context struct {
	// config is the configuration state used for evaluation, printing, etc.
	// Accessed through the value.Context Config method.
	config *config.Config

	// builtins maps names to functions implemented in Go, including the
	// specials that need the interpreter.
	builtins map[string]*value.Builtin
	// funcs maps names to user-defined functions.
	funcs map[string]*ast.FunctionDef
	// persist holds the persistent variables of each function.
	persist map[*ast.FunctionDef]map[string]value.Value
	// path caches the result of searching the path for name.m.
	path map[string]*pathEntry

	root *Env // The command-line workspace.
	env  *Env // The current workspace.

	frames []frame      // Calls in progress, innermost last.
	ends   []endContext // Values being indexed, for evaluating end.
}

// frame records a call in progress.
type frame struct {
	name    string
	def     *ast.FunctionDef // nil for anonymous functions
	pos     ast.Pos          // Position of the call.
	nargin  int
	nargout int
}

// endContext records the value being indexed and which subscript is
// being evaluated, so that end can be resolved.
type endContext struct {
	v    value.Value
	k, n int
}

// NewContext returns a new execution context with an empty workspace
// and the standard builtins installed.
func NewContext(conf *config.Config) *Context {
	c := &Context{
		config:   conf,
		builtins: builtin.Registry(),
		funcs:    make(map[string]*ast.FunctionDef),
		persist:  make(map[*ast.FunctionDef]map[string]value.Value),
		path:     make(map[string]*pathEntry),
		root:     NewEnv(nil),
	}
	c.env = c.root
	c.installSpecials()
	return c
}

func (c *Context) Config() *config.Config {
	return c.config
}

// Root returns the command-line workspace.
func (c *Context) Root() *Env {
	return c.root
}

// Env returns the current workspace.
func (c *Context) Env() *Env {
	return c.env
}

// Lookup returns the value of a variable in the current workspace.
func (c *Context) Lookup(name string) (value.Value, bool) {
	return c.env.Get(name)
}

// Define installs a user-defined function, replacing any of the same name.
func (c *Context) Define(def *ast.FunctionDef) {
	c.funcs[def.Name] = def
}

// Defined reports whether name is a user-defined function.
func (c *Context) Defined(name string) bool {
	return c.funcs[name] != nil
}

// Builtin returns the builtin with the given name, or nil.
func (c *Context) Builtin(name string) *value.Builtin {
	return c.builtins[name]
}

// BuiltinNames returns the sorted names of the builtin functions.
func (c *Context) BuiltinNames() []string {
	names := make([]string, 0, len(c.builtins))
	for name := range c.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FunctionNames returns the sorted names of the user-defined functions.
func (c *Context) FunctionNames() []string {
	names := make([]string, 0, len(c.funcs))
	for name := range c.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Depth returns the number of calls in progress.
func (c *Context) Depth() int {
	return len(c.frames)
}

// Reset unwinds any calls in progress, as after an uncaught error.
func (c *Context) Reset() {
	c.env = c.root
	c.frames = c.frames[:0]
	c.ends = c.ends[:0]
}

// state is a snapshot of the call bookkeeping, restored when an error is caught.
type state struct {
	env    *Env
	frames int
	ends   int
}

func (c *Context) save() state {
	return state{c.env, len(c.frames), len(c.ends)}
}

func (c *Context) restore(s state) {
	c.env = s.env
	c.frames = c.frames[:s.frames]
	c.ends = c.ends[:s.ends]
}

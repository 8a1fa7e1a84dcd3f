// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"matfree.dev/matfree/ast"
	"matfree.dev/matfree/value"
)

// Call implements value.Context. fn is a function handle or a string
// naming a function.
func (c *Context) Call(fn value.Value, args []value.Value, nargout int) []value.Value {
	switch f := fn.(type) {
	case *value.FunctionHandle:
		return c.callHandle(f, args, nargout)
	case value.String:
		return c.callNamed(string(f), args, nargout)
	}
	value.Errorf(value.TypeError, "expected a function handle or function name; got %s", fn.Class())
	return nil
}

// resolve finds the function called name: a builtin, a user-defined
// function or a function file on the path, in that order.
func (c *Context) resolve(name string) (*value.Builtin, *ast.FunctionDef) {
	if b := c.builtins[name]; b != nil {
		return b, nil
	}
	if def := c.funcs[name]; def != nil {
		return nil, def
	}
	if entry := c.lookPath(name); entry != nil && entry.def != nil {
		return nil, entry.def
	}
	return nil, nil
}

// callNamed calls the function called name.
func (c *Context) callNamed(name string, args []value.Value, nargout int) []value.Value {
	if b, def := c.resolve(name); b != nil {
		c.tracef("builtin %s(%d args)", name, len(args))
		return b.Call(c, args, nargout)
	} else if def != nil {
		return c.callUser(def, args, nargout)
	}
	if entry := c.lookPath(name); entry != nil {
		if len(args) > 0 {
			value.Errorf(value.InvalidArgument, "script %s cannot take arguments", name)
		}
		c.runScript(entry)
		return nil
	}
	c.undefined(name)
	return nil
}

// callHandle calls the function a handle refers to.
func (c *Context) callHandle(h *value.FunctionHandle, args []value.Value, nargout int) []value.Value {
	switch {
	case h.Anon != nil:
		return c.callAnon(h, args, nargout)
	case h.Builtin != nil:
		return h.Builtin.Call(c, args, nargout)
	case h.Def != nil:
		return c.callUser(h.Def, args, nargout)
	}
	return c.callNamed(h.FuncName(), args, nargout)
}

// enter pushes a call frame, checking the recursion limit.
func (c *Context) enter(f frame) {
	if max := c.config.MaxDepth(); len(c.frames) >= max {
		value.Errorf(value.InvalidArgument, "maximum recursion limit of %d reached", max)
	}
	c.frames = append(c.frames, f)
	c.tracef("call %s(%d args)", f.name, f.nargin)
}

func (c *Context) top() *frame {
	if len(c.frames) == 0 {
		return nil
	}
	return &c.frames[len(c.frames)-1]
}

// callUser calls a user-defined function in a fresh workspace.
func (c *Context) callUser(def *ast.FunctionDef, args []value.Value, nargout int) []value.Value {
	params := def.Params
	varargin := len(params) > 0 && params[len(params)-1] == "varargin"
	if varargin {
		params = params[:len(params)-1]
	}
	if len(args) > len(params) && !varargin {
		value.Errorf(value.InvalidArgument, "too many input arguments to %s: got %d, accepts %d", def.Name, len(args), len(params))
	}
	outputs := def.Outputs
	varargout := len(outputs) > 0 && outputs[len(outputs)-1] == "varargout"
	if varargout {
		outputs = outputs[:len(outputs)-1]
	}
	if nargout > len(outputs) && !varargout {
		value.Errorf(value.InvalidArgument, "too many output arguments from %s: requested %d, returns %d", def.Name, nargout, len(outputs))
	}

	env := NewEnv(c.root)
	for i, p := range params {
		if i < len(args) && p != "~" {
			env.Set(p, args[i])
		}
	}
	if varargin {
		var rest []value.Value
		if len(args) > len(params) {
			rest = args[len(params):]
		}
		env.Set("varargin", value.CellRow(rest...))
	}
	for _, o := range outputs {
		env.Set(o, value.Empty{})
	}
	if varargout {
		env.Set("varargout", value.EmptyCell(0, 0))
	}

	saved := c.save()
	c.enter(frame{name: def.Name, def: def, pos: def.At, nargin: len(args), nargout: nargout})
	c.env = env
	defer func() {
		c.savePersistent(def, env)
		c.restore(saved)
	}()
	c.execBlock(def.Body)

	n := max(nargout, 1)
	results := make([]value.Value, 0, n)
	for _, o := range outputs {
		if len(results) == n {
			break
		}
		v, ok := env.Get(o)
		if !ok {
			value.Errorf(value.UndefinedName, "output argument %q of %s was not assigned", o, def.Name)
		}
		results = append(results, v)
	}
	if varargout && len(results) < n {
		v, _ := env.Get("varargout")
		extra, ok := v.(*value.Cell)
		if !ok {
			value.Errorf(value.TypeError, "varargout of %s must be a cell array", def.Name)
		}
		for _, x := range extra.ColumnMajor() {
			if len(results) == n {
				break
			}
			results = append(results, x)
		}
		if len(results) < nargout {
			value.Errorf(value.InvalidArgument, "%s returned %d outputs; %d requested", def.Name, len(results), nargout)
		}
	}
	return results
}

// callAnon calls an anonymous function. The body is evaluated in a fresh
// workspace holding the captured variables and the parameters.
func (c *Context) callAnon(h *value.FunctionHandle, args []value.Value, nargout int) []value.Value {
	fn := h.Anon
	params := fn.Params
	varargin := len(params) > 0 && params[len(params)-1] == "varargin"
	if varargin {
		params = params[:len(params)-1]
	}
	if len(args) > len(params) && !varargin {
		value.Errorf(value.InvalidArgument, "too many input arguments to %s: got %d, accepts %d", fn.Source, len(args), len(params))
	}
	env := NewEnv(c.root)
	for name, v := range h.Captured {
		env.Set(name, v)
	}
	for i, p := range params {
		if i < len(args) && p != "~" {
			env.Set(p, args[i])
		}
	}
	if varargin {
		var rest []value.Value
		if len(args) > len(params) {
			rest = args[len(params):]
		}
		env.Set("varargin", value.CellRow(rest...))
	}
	saved := c.save()
	c.enter(frame{name: fn.Source, pos: fn.At, nargin: len(args), nargout: nargout})
	c.env = env
	defer c.restore(saved)
	return c.Multi(fn.Body, nargout)
}

// declarePersistent binds the persistent variables of the current function.
// The first declaration initializes them to [].
func (c *Context) declarePersistent(names []string) {
	f := c.top()
	if f == nil || f.def == nil {
		value.Errorf(value.InvalidArgument, "persistent declarations are valid only in functions")
	}
	store := c.persist[f.def]
	if store == nil {
		store = map[string]value.Value{}
		c.persist[f.def] = store
	}
	for _, name := range names {
		v, ok := store[name]
		if !ok {
			v = value.Empty{}
			store[name] = v
		}
		c.env.Set(name, v)
	}
}

// savePersistent writes the persistent variables of def back to its store.
func (c *Context) savePersistent(def *ast.FunctionDef, env *Env) {
	store := c.persist[def]
	for name := range store {
		if v, ok := env.Get(name); ok {
			store[name] = v
		}
	}
}

// ClearFunctions forgets the persistent variables and the path cache.
func (c *Context) ClearFunctions() {
	c.persist = make(map[*ast.FunctionDef]map[string]value.Value)
	c.path = make(map[string]*pathEntry)
}

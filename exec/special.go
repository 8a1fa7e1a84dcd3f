// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"
	"path/filepath"
	"strings"

	"matfree.dev/matfree/parse"
	"matfree.dev/matfree/scan"
	"matfree.dev/matfree/value"
)

// installSpecials adds the builtins that need access to the interpreter:
// its workspaces, function tables or parser.
func (c *Context) installSpecials() {
	specials := []*value.Builtin{
		{Name: "clear", Fn: c.clear},
		{Name: "who", Fn: c.who},
		{Name: "whos", Fn: c.whos},
		{Name: "exist", Fn: c.exist},
		{Name: "eval", Multi: c.eval},
		{Name: "run", Fn: c.run},
		{Name: "str2func", Fn: c.str2func},
		{Name: "nargin", Fn: c.nargin},
		{Name: "nargout", Fn: c.nargout},
		{Name: "addpath", Fn: c.addpath},
		{Name: "rmpath", Fn: c.rmpath},
		{Name: "path", Fn: c.pathFn},
	}
	for _, b := range specials {
		c.builtins[b.Name] = b
	}
}

func nargs(name string, args []value.Value, min, max int) {
	switch {
	case len(args) < min:
		value.Errorf(value.InvalidArgument, "not enough input arguments to %s", name)
	case max >= 0 && len(args) > max:
		value.Errorf(value.InvalidArgument, "too many input arguments to %s", name)
	}
}

// clear
// clear name ...
// clear all | variables | functions
func (c *Context) clear(_ value.Context, args []value.Value) value.Value {
	if len(args) == 0 {
		c.env.ClearAll()
		return nil
	}
	for _, a := range args {
		name := value.ToStr("clear", a)
		switch name {
		case "all", "-all":
			c.env.ClearAll()
			c.ClearFunctions()
		case "variables", "-variables":
			c.env.ClearAll()
		case "functions", "-functions":
			c.ClearFunctions()
		case "global", "-global":
			for _, n := range c.env.Names() {
				if c.env.IsGlobal(n) {
					c.env.Clear(n)
				}
			}
		default:
			if strings.ContainsAny(name, "*?") {
				for _, n := range c.env.Names() {
					if ok, _ := filepath.Match(name, n); ok {
						c.env.Clear(n)
					}
				}
				continue
			}
			c.env.Clear(name)
		}
	}
	return nil
}

// who lists the variables of the current workspace.
func (c *Context) who(_ value.Context, args []value.Value) value.Value {
	nargs("who", args, 0, 0)
	names := c.env.Names()
	if len(names) == 0 {
		return nil
	}
	w := c.config.Output()
	fmt.Fprintf(w, "Your variables are:\n\n%s\n\n", strings.Join(names, "  "))
	return nil
}

// whos lists the variables with their sizes and classes.
func (c *Context) whos(_ value.Context, args []value.Value) value.Value {
	nargs("whos", args, 0, 0)
	names := c.env.Names()
	if len(names) == 0 {
		return nil
	}
	width := len("Name")
	for _, name := range names {
		width = max(width, len(name))
	}
	w := c.config.Output()
	fmt.Fprintf(w, "  %-*s   %-9s %s\n\n", width, "Name", "Size", "Class")
	for _, name := range names {
		v, _ := c.env.Get(name)
		attr := ""
		if c.env.IsGlobal(name) {
			attr = "    global"
		}
		fmt.Fprintf(w, "  %-*s   %-9s %s%s\n", width, name, value.SizeString(v), v.Class(), attr)
	}
	fmt.Fprintln(w)
	return nil
}

// exist reports what a name refers to: 1 for a variable, 2 for a file or
// user function, 5 for a builtin and 0 for nothing.
func (c *Context) exist(_ value.Context, args []value.Value) value.Value {
	nargs("exist", args, 1, 2)
	name := value.ToStr("exist", args[0])
	kind := ""
	if len(args) == 2 {
		kind = value.ToStr("exist", args[1])
	}
	code := 0
	_, isVar := c.env.Get(name)
	switch {
	case isVar && (kind == "" || kind == "var"):
		code = 1
	case kind == "var":
	case c.builtins[name] != nil && (kind == "" || kind == "builtin"):
		code = 5
	case kind == "builtin":
	case c.funcs[name] != nil || c.lookPath(name) != nil:
		code = 2
	}
	return value.Scalar(float64(code))
}

// eval(text)
// eval(text, catchText)
// Statements run in the current workspace. When outputs are requested the
// text must be an expression.
func (c *Context) eval(_ value.Context, args []value.Value, nargout int) []value.Value {
	nargs("eval", args, 1, 2)
	text := value.ToStr("eval", args[0])
	if len(args) == 2 {
		var results []value.Value
		if err := c.protectFunc(func() { results = c.evalText(text, nargout) }); err == nil {
			return results
		}
		return c.evalText(value.ToStr("eval", args[1]), nargout)
	}
	return c.evalText(text, nargout)
}

func (c *Context) evalText(text string, nargout int) []value.Value {
	if nargout > 0 {
		x, err := parse.ParseExpr(text)
		if err != nil {
			value.Errorf(value.InvalidArgument, "eval: %v", err)
		}
		return c.Multi(x, nargout)
	}
	prog, err := parse.Parse("eval", text)
	if err != nil {
		value.Errorf(value.InvalidArgument, "eval: %v", err)
	}
	for _, def := range prog.Funcs {
		c.Define(def)
	}
	c.execBlock(prog.Stmts)
	return nil
}

// protectFunc runs fn, recovering a run-time error.
func (c *Context) protectFunc(fn func()) (err *value.Error) {
	saved := c.save()
	defer func() {
		if r := recover(); r != nil {
			e, isErr := r.(value.Error)
			if !isErr {
				panic(r)
			}
			c.restore(saved)
			err = &e
		}
	}()
	fn()
	return nil
}

// run(file) executes a script file in the current workspace.
func (c *Context) run(_ value.Context, args []value.Value) value.Value {
	nargs("run", args, 1, 1)
	file := value.ToStr("run", args[0])
	if filepath.Ext(file) == "" {
		file += ".m"
	}
	c.RunFile(file)
	return nil
}

// str2func converts a function name or anonymous function text to a handle.
// An anonymous function made this way captures no variables.
func (c *Context) str2func(_ value.Context, args []value.Value) value.Value {
	nargs("str2func", args, 1, 1)
	text := strings.TrimSpace(value.ToStr("str2func", args[0]))
	if !strings.HasPrefix(text, "@") {
		if !scan.IsIdentifier(strings.ReplaceAll(text, ".", "_")) {
			value.Errorf(value.InvalidArgument, "str2func: invalid function name %q", text)
		}
		return c.handle(text)
	}
	x, err := parse.ParseExpr(text)
	if err != nil {
		value.Errorf(value.InvalidArgument, "str2func: %v", err)
	}
	saved := c.env
	c.env = NewEnv(c.root)
	defer func() { c.env = saved }()
	return c.Eval(x)
}

// nargin returns the number of arguments passed to the current function,
// or with an argument the number a function declares, negative if it
// takes varargin.
func (c *Context) nargin(_ value.Context, args []value.Value) value.Value {
	nargs("nargin", args, 0, 1)
	if len(args) == 1 {
		return value.Scalar(float64(c.declared(args[0], true)))
	}
	f := c.top()
	if f == nil {
		value.Errorf(value.InvalidArgument, "nargin is valid only in functions")
	}
	return value.Scalar(float64(f.nargin))
}

// nargout is nargin for outputs.
func (c *Context) nargout(_ value.Context, args []value.Value) value.Value {
	nargs("nargout", args, 0, 1)
	if len(args) == 1 {
		return value.Scalar(float64(c.declared(args[0], false)))
	}
	f := c.top()
	if f == nil {
		value.Errorf(value.InvalidArgument, "nargout is valid only in functions")
	}
	return value.Scalar(float64(f.nargout))
}

// declared returns the number of parameters or outputs of a user function.
func (c *Context) declared(fn value.Value, inputs bool) int {
	var name string
	switch f := fn.(type) {
	case *value.FunctionHandle:
		if f.Anon != nil {
			n := len(f.Anon.Params)
			if inputs && n > 0 && f.Anon.Params[n-1] == "varargin" {
				return -n
			}
			return n
		}
		name = f.FuncName()
	default:
		name = value.ToStr("nargin", fn)
	}
	_, def := c.resolve(name)
	if def == nil {
		value.Errorf(value.UndefinedName, "%s is not a user-defined function", name)
	}
	list, variadic := def.Outputs, "varargout"
	if inputs {
		list, variadic = def.Params, "varargin"
	}
	n := len(list)
	if n > 0 && list[n-1] == variadic {
		return -n
	}
	return n
}

// addpath(dir, ...) adds directories to the front of the path;
// addpath(dir, ..., '-end') to the back.
func (c *Context) addpath(_ value.Context, args []value.Value) value.Value {
	nargs("addpath", args, 1, -1)
	atEnd := false
	var dirs []string
	for _, a := range args {
		s := value.ToStr("addpath", a)
		switch s {
		case "-end", "-END":
			atEnd = true
		case "-begin", "-BEGIN":
			atEnd = false
		default:
			dirs = append(dirs, strings.Split(s, string(filepath.ListSeparator))...)
		}
	}
	if atEnd {
		for _, d := range dirs {
			c.config.AppendPath(d)
		}
	} else {
		for i := len(dirs) - 1; i >= 0; i-- {
			c.config.AddPath(dirs[i])
		}
	}
	c.PathChanged()
	return nil
}

func (c *Context) rmpath(_ value.Context, args []value.Value) value.Value {
	nargs("rmpath", args, 1, -1)
	for _, a := range args {
		dir := value.ToStr("rmpath", a)
		if !c.config.RemovePath(dir) {
			value.Warnf(c, "%q not found in path", dir)
		}
	}
	c.PathChanged()
	return nil
}

// path returns the search path as a single string.
func (c *Context) pathFn(_ value.Context, args []value.Value) value.Value {
	nargs("path", args, 0, 0)
	return value.String(strings.Join(c.config.Path(), string(filepath.ListSeparator)))
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run provides the execution control for matfree.
// It is factored out of main so it can be used for tests.
package run // import "matfree.dev/matfree/run"

import (
	"fmt"
	"os"
	"time"

	"fortio.org/log"

	"matfree.dev/matfree/ast"
	"matfree.dev/matfree/exec"
	"matfree.dev/matfree/parse"
	"matfree.dev/matfree/value"
)

// cpuTime returns the user and system time used by the process.
// It is replaced on systems that can measure it.
var cpuTime = func() (user, sys time.Duration) { return 0, 0 }

// Source parses src and executes it as one unit in the current workspace
// of the context.
//
// A lex or parse error prevents any execution. A run-time error stops the
// unit, but the effects of the statements that ran before it remain.
// Either way the error is reported on the configured error output and
// returned.
func Source(c *exec.Context, name, src string) error {
	prog, err := parse.Parse(name, src)
	if err != nil {
		fmt.Fprintf(c.Config().ErrOutput(), "Error: %v\n", err)
		return err
	}
	if c.Config().Debug("parse") {
		for _, def := range prog.Funcs {
			fmt.Fprintf(c.Config().ErrOutput(), "function %s\n", def.Name)
		}
		for _, stmt := range prog.Stmts {
			fmt.Fprintf(c.Config().ErrOutput(), "%s\n", stmt)
		}
	}
	return Program(c, prog)
}

// Program executes a parsed program: its functions are defined, then its
// statements run in order until one raises an error.
func Program(c *exec.Context, prog *ast.Program) error {
	return protect(c, func() {
		for _, def := range prog.Funcs {
			c.Define(def)
		}
		c.Exec(prog.Stmts)
	})
}

// File executes the named file. A script runs in the current workspace;
// a function file calls its first function with no arguments.
func File(c *exec.Context, file string) error {
	if _, err := os.Stat(file); err != nil {
		fmt.Fprintf(c.Config().ErrOutput(), "Error: %v\n", err)
		return err
	}
	log.LogVf("run: %s", file)
	return protect(c, func() { c.RunFile(file) })
}

// protect runs fn, recovering and reporting a run-time error. With the
// panic debug flag set, errors are not recovered so the Go stack is seen.
func protect(c *exec.Context, fn func()) (err error) {
	conf := c.Config()
	if conf.Debug("cpu") {
		start := time.Now()
		user, sys := cpuTime()
		defer func() {
			u, s := cpuTime()
			fmt.Fprintf(conf.ErrOutput(), "(%s; user %s; sys %s)\n",
				time.Since(start).Round(time.Microsecond), (u - user).Round(time.Microsecond), (s - sys).Round(time.Microsecond))
		}()
	}
	defer func() {
		if conf.Debug("panic") {
			return
		}
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(value.Error)
		if !ok {
			panic(r)
		}
		c.Reset()
		log.LogVf("run: %s: %s", e.ID(), e.Msg)
		fmt.Fprintf(conf.ErrOutput(), "Error: %s\n", e.Msg)
		err = e
	}()
	fn()
	return nil
}

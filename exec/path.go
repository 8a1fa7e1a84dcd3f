// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"fortio.org/log"

	"matfree.dev/matfree/ast"
	"matfree.dev/matfree/lib"
	"matfree.dev/matfree/parse"
	"matfree.dev/matfree/scan"
	"matfree.dev/matfree/value"
)

// pathEntry is a source file found on the search path.
type pathEntry struct {
	file string
	prog *ast.Program
	def  *ast.FunctionDef // The primary function; nil for a script.
}

// lookPath searches the path for name.m, then the library. The first file
// found wins and is remembered until the path changes.
func (c *Context) lookPath(name string) *pathEntry {
	if entry, ok := c.path[name]; ok {
		return entry
	}
	if !scan.IsIdentifier(name) {
		return nil
	}
	for _, dir := range c.config.Path() {
		file := filepath.Join(dir, name+".m")
		src, err := os.ReadFile(file)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Warnf("path entry %s: %v", file, err)
			}
			continue
		}
		if log.LogVerbose() {
			log.LogVf("path: %s resolves to %s", name, file)
		}
		entry := c.load(file, string(src))
		if entry.def != nil {
			entry.def.Name = name
		}
		c.path[name] = entry
		return entry
	}
	if l, ok := lib.Lookup(name); ok {
		log.LogVf("path: %s resolves to the library", name)
		entry := c.load(name+".m", l.Source)
		c.path[name] = entry
		return entry
	}
	return nil
}

// load parses a source file. A file with only function definitions is a
// function file whose first function is the entry point; its other
// functions are defined as well. Anything else is a script.
func (c *Context) load(file, src string) *pathEntry {
	prog, err := parse.Parse(file, src)
	if err != nil {
		value.Errorf(value.InvalidArgument, "%v", err)
	}
	entry := &pathEntry{file: file, prog: prog}
	if len(prog.Stmts) == 0 && len(prog.Funcs) > 0 {
		entry.def = prog.Funcs[0]
		for _, def := range prog.Funcs[1:] {
			if c.funcs[def.Name] == nil {
				c.Define(def)
			}
		}
	}
	return entry
}

// runScript executes a script in the current workspace.
func (c *Context) runScript(entry *pathEntry) {
	c.tracef("script %s", entry.file)
	for _, def := range entry.prog.Funcs {
		c.Define(def)
	}
	c.execBlock(entry.prog.Stmts)
}

// RunFile executes the named source file in the current workspace.
func (c *Context) RunFile(file string) {
	src, err := os.ReadFile(file)
	if err != nil {
		value.Errorf(value.InvalidArgument, "cannot run %s: %v", file, err)
	}
	entry := c.load(file, string(src))
	if entry.def != nil {
		c.callUser(entry.def, nil, 0)
		return
	}
	c.runScript(entry)
}

// PathChanged discards the results of earlier path searches.
func (c *Context) PathChanged() {
	c.path = make(map[string]*pathEntry)
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"
	"strings"

	"fortio.org/log"
)

// tracing reports whether calls should be traced, either because the
// trace debug flag is set or because the log level is verbose.
func (c *Context) tracing() bool {
	return c.config.Debug("trace") || log.LogVerbose()
}

// tracef logs an execution event, indented by the call depth.
func (c *Context) tracef(format string, args ...any) {
	if !c.tracing() {
		return
	}
	msg := c.TraceIndent() + fmt.Sprintf(format, args...)
	if c.config.Debug("trace") {
		fmt.Fprintln(c.config.ErrOutput(), msg)
		return
	}
	log.LogVf("%s", msg)
}

var indent = "| "

// TraceIndent returns an indentation marker showing the depth of the stack.
func (c *Context) TraceIndent() string {
	n := 2 * len(c.frames)
	if len(indent) < n {
		indent = strings.Repeat("| ", n+10)
	}
	return indent[:n]
}

// StackTrace prints the calls in progress, innermost last, with the
// variables of the current workspace.
func (c *Context) StackTrace() {
	const max = 25
	w := c.config.ErrOutput()
	frames := c.frames
	if len(frames) > max {
		fmt.Fprintf(w, "\t•> stack truncated: %d calls total; showing innermost\n", len(frames))
		frames = frames[len(frames)-max:]
	}
	for _, f := range frames {
		fmt.Fprintf(w, "\t•> %s (line %d) nargin=%d\n", f.name, f.pos.Line, f.nargin)
	}
	if len(c.frames) == 0 {
		return
	}
	for _, name := range c.env.Names() {
		v, _ := c.env.Get(name)
		fmt.Fprintf(w, "\t\t%s = %s\n", name, short(v.String()))
	}
}

// short returns its argument, truncating if it's too long.
func short(s string) string {
	if len(s) > 50 {
		s = s[:50] + "..."
	}
	return s
}

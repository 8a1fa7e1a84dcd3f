// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"

	"matfree.dev/matfree/config"
)

// Context is the execution context for evaluation.
// The only implementation is ../exec/Context, but the interface
// is defined separately, here, because builtins need to call back
// into the interpreter and the import cycle that would otherwise result.
type Context interface {
	// Config returns the configuration state for evaluation.
	Config() *config.Config

	// Call invokes fn, a function handle or a String naming a function,
	// with the arguments and returns at most nargout results. A function
	// that produces no result returns an empty slice.
	Call(fn Value, args []Value, nargout int) []Value
}

// Warnf prints a warning on the error output and continues.
func Warnf(c Context, format string, args ...interface{}) {
	fmt.Fprintf(c.Config().ErrOutput(), "Warning: "+format+"\n", args...)
}

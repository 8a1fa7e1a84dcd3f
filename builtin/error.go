// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"regexp"

	"matfree.dev/matfree/value"
)

// identifierPattern matches a message identifier such as "pkg:sub:name".
var identifierPattern = regexp.MustCompile(`^[A-Za-z][\w-]*(:[\w-]+)+$`)

func init() {
	register("error", errorFn)
	register("rethrow", func(_ value.Context, args []value.Value) value.Value {
		nargs("rethrow", args, 1, 1)
		throwStruct("rethrow", args[0])
		return nil
	})
	register("throw", func(_ value.Context, args []value.Value) value.Value {
		nargs("throw", args, 1, 1)
		throwStruct("throw", args[0])
		return nil
	})
	register("MException", func(_ value.Context, args []value.Value) value.Value {
		nargs("MException", args, 2, -1)
		id := value.ToStr("MException", args[0])
		msg := sprintf("MException", value.ToStr("MException", args[1]), args[2:])
		return errorStruct(id, msg)
	})
	register("warning", warning)
	register("assert", assert)
}

// errorStruct is the form in which a caught error is seen.
func errorStruct(id, msg string) *value.Struct {
	return value.NewStruct().
		With("message", value.String(msg)).
		With("identifier", value.String(id))
}

// message decodes the arguments shared by error and warning:
//
//	(msg)
//	(format, args...)
//	(id, format, args...)
//
// A lone argument is not formatted. An identifier is recognized only when
// more arguments follow it.
func message(name string, args []value.Value) (id, msg string) {
	first := value.ToStr(name, args[0])
	if len(args) == 1 {
		return "", first
	}
	if identifierPattern.MatchString(first) {
		return first, sprintf(name, value.ToStr(name, args[1]), args[2:])
	}
	return "", sprintf(name, first, args[1:])
}

// error raises a user error.
func errorFn(_ value.Context, args []value.Value) value.Value {
	nargs("error", args, 1, -1)
	if _, ok := args[0].(*value.Struct); ok && len(args) == 1 {
		throwStruct("error", args[0])
	}
	id, msg := message("error", args)
	if msg == "" {
		return nil
	}
	value.Throw(id, msg)
	return nil
}

// throwStruct raises the error described by a struct with message and
// identifier fields.
func throwStruct(name string, v value.Value) {
	s := structArg(name, v)
	msg := ""
	if m, ok := s.Get("message"); ok {
		msg = value.ToStr(name, m)
	}
	id := ""
	if i, ok := s.Get("identifier"); ok {
		id = value.ToStr(name, i)
	}
	value.Throw(id, msg)
}

// warning prints "Warning: msg" on the error output. warning('off', ...)
// and warning('on', ...) are accepted and ignored.
func warning(c value.Context, args []value.Value) value.Value {
	nargs("warning", args, 1, -1)
	if s, ok := args[0].(value.String); ok && (s == "off" || s == "on" || s == "query") {
		return nil
	}
	_, msg := message("warning", args)
	value.Warnf(c, "%s", msg)
	return nil
}

// assert(cond)
// assert(cond, msg, ...)
// assert(cond, id, msg, ...)
func assert(_ value.Context, args []value.Value) value.Value {
	nargs("assert", args, 1, -1)
	if value.IsTrue(args[0]) {
		return nil
	}
	if len(args) == 1 {
		value.Throw("MatFree:assertion", "Assertion failed.")
	}
	id, msg := message("assert", args[1:])
	if id == "" {
		id = "MatFree:assertion"
	}
	value.Throw(id, msg)
	return nil
}

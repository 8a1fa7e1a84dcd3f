// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import "fmt"

// ErrKind classifies run-time errors.
type ErrKind int

const (
	UndefinedName ErrKind = iota
	DimensionMismatch
	IndexOutOfRange
	TypeError
	InvalidArgument
	UserError
)

var errKindNames = [...]string{
	UndefinedName:     "UndefinedName",
	DimensionMismatch: "DimensionMismatch",
	IndexOutOfRange:   "IndexOutOfRange",
	TypeError:         "TypeError",
	InvalidArgument:   "InvalidArgument",
	UserError:         "UserError",
}

func (k ErrKind) String() string {
	if int(k) < len(errKindNames) {
		return errKindNames[k]
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

var errKindIDs = [...]string{
	UndefinedName:     "MatFree:undefinedName",
	DimensionMismatch: "MatFree:dimensionMismatch",
	IndexOutOfRange:   "MatFree:indexOutOfRange",
	TypeError:         "MatFree:typeError",
	InvalidArgument:   "MatFree:invalidArgument",
	UserError:         "MatFree:error",
}

// Error is the type of run-time errors. It is raised by panicking
// and recovered by the interpreter at statement-list boundaries.
type Error struct {
	Kind       ErrKind
	Identifier string // As in "MyPkg:notFound"; defaults to one derived from Kind.
	Msg        string
}

func (err Error) Error() string {
	return err.Msg
}

// ID returns the message identifier of the error.
func (err Error) ID() string {
	if err.Identifier != "" {
		return err.Identifier
	}
	if int(err.Kind) < len(errKindIDs) {
		return errKindIDs[err.Kind]
	}
	return ""
}

// Errorf panics with an Error of the given kind.
func Errorf(kind ErrKind, format string, args ...interface{}) {
	panic(Error{Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// Throw panics with a user error carrying an explicit identifier.
func Throw(id, msg string) {
	panic(Error{Kind: UserError, Identifier: id, Msg: msg})
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value implements the run-time values of the language and the
// operations on them.
//
// Value is a closed set of types: *Matrix, Logical, String, *Cell,
// *Struct, *FunctionHandle and Empty. Values are never modified once
// they have been handed out; operations that update a value, such as
// indexed assignment, return a new one.
package value // import "matfree.dev/matfree/value"

import (
	"fmt"
	"unicode/utf8"
)

// Value is the interface implemented by all run-time values.
type Value interface {
	// Class returns the class of the value, as reported by class().
	Class() Class
	// Size returns the dimensions of the value.
	Size() (rows, cols int)
	// String returns a short description suitable for a struct field
	// or a cell element.
	String() string

	sealed()
}

// Class identifies the type of a value.
type Class int

const (
	DoubleClass Class = iota
	LogicalClass
	CharClass
	CellClass
	StructClass
	FunctionHandleClass
)

var classNames = [...]string{
	DoubleClass:         "double",
	LogicalClass:        "logical",
	CharClass:           "char",
	CellClass:           "cell",
	StructClass:         "struct",
	FunctionHandleClass: "function_handle",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Empty is the value of [], the empty matrix.
type Empty struct{}

func (Empty) Class() Class { return DoubleClass }

func (Empty) Size() (int, int) { return 0, 0 }

func (Empty) String() string { return "[]" }

func (Empty) sealed()             {}
func (*Matrix) sealed()           {}
func (Logical) sealed()           {}
func (String) sealed()            {}
func (*Cell) sealed()             {}
func (*Struct) sealed()           {}
func (*FunctionHandle) sealed()   {}

func (*Matrix) Class() Class         { return DoubleClass }
func (Logical) Class() Class         { return LogicalClass }
func (String) Class() Class          { return CharClass }
func (*Cell) Class() Class           { return CellClass }
func (*Struct) Class() Class         { return StructClass }
func (*FunctionHandle) Class() Class { return FunctionHandleClass }

// String is a character row vector.
type String string

// Size returns 1 by the number of characters, or 0 by 0 for the empty string.
func (s String) Size() (int, int) {
	n := utf8.RuneCountInString(string(s))
	if n == 0 {
		return 0, 0
	}
	return 1, n
}

func (s String) String() string {
	return "'" + string(s) + "'"
}

// Runes returns the characters of s.
func (s String) Runes() []rune {
	return []rune(string(s))
}

// Logical is a matrix of truth values, stored as 0 and 1.
type Logical struct {
	*Matrix
}

// NewLogical returns a logical matrix of the given size. Nonzero data are stored as 1.
func NewLogical(rows, cols int, data []float64) Logical {
	for i, x := range data {
		if x != 0 {
			data[i] = 1
		}
	}
	return Logical{NewMatrix(rows, cols, data)}
}

// Bool returns a 1x1 logical.
func Bool(b bool) Logical {
	if b {
		return Logical{Scalar(1)}
	}
	return Logical{Scalar(0)}
}

func (l Logical) String() string {
	return shortForm(l.Matrix, LogicalClass)
}

// Numel returns the number of elements of v.
func Numel(v Value) int {
	r, c := v.Size()
	return r * c
}

// IsEmpty reports whether v has no elements.
func IsEmpty(v Value) bool {
	return Numel(v) == 0
}

// IsScalar reports whether v is 1x1.
func IsScalar(v Value) bool {
	r, c := v.Size()
	return r == 1 && c == 1
}

// SizeString formats the dimensions of v as in "2x3".
func SizeString(v Value) string {
	r, c := v.Size()
	return fmt.Sprintf("%dx%d", r, c)
}

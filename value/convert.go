// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math"
	"strings"
)

// Numeric returns the numeric view of v: a Matrix for doubles and logicals,
// the character codes for a string and a 0x0 matrix for []. It reports
// false for cells, structs and function handles.
func Numeric(v Value) (*Matrix, bool) {
	switch v := v.(type) {
	case *Matrix:
		return v, true
	case Logical:
		return v.Matrix, true
	case String:
		runes := v.Runes()
		if len(runes) == 0 {
			return Zeros(0, 0), true
		}
		data := make([]float64, len(runes))
		for i, r := range runes {
			data[i] = float64(r)
		}
		return RowVector(data), true
	case Empty:
		return Zeros(0, 0), true
	case *Cell, *Struct, *FunctionHandle:
		return nil, false
	}
	panic(fmt.Sprintf("internal error: unknown value type %T", v))
}

// ToMatrix is Numeric but raises a TypeError naming what for a non-numeric value.
func ToMatrix(what string, v Value) *Matrix {
	m, ok := Numeric(v)
	if !ok {
		Errorf(TypeError, "%s is not defined for values of class %s", what, v.Class())
	}
	return m
}

// ToFloat returns the value of a numeric scalar.
func ToFloat(what string, v Value) float64 {
	m := ToMatrix(what, v)
	if !m.IsScalar() {
		Errorf(InvalidArgument, "%s must be a scalar; got %dx%d", what, m.rows, m.cols)
	}
	return m.data[0]
}

// ToInt returns the value of an integer-valued numeric scalar.
func ToInt(what string, v Value) int {
	x := ToFloat(what, v)
	if x != math.Trunc(x) || math.IsInf(x, 0) {
		Errorf(InvalidArgument, "%s must be an integer; got %s", what, formatFloat(x, 4))
	}
	return int(x)
}

// ToStr returns the text of a string value.
func ToStr(what string, v Value) string {
	switch v := v.(type) {
	case String:
		return string(v)
	case Empty:
		return ""
	}
	Errorf(TypeError, "%s must be a string; got %s", what, v.Class())
	return ""
}

// IsText reports whether v is a string.
func IsText(v Value) bool {
	_, ok := v.(String)
	return ok
}

// FromRunes returns a string value holding the character codes in m.
func FromRunes(data []float64) String {
	var b strings.Builder
	for _, x := range data {
		b.WriteRune(rune(int(x)))
	}
	return String(b.String())
}

// IsTrue reports whether v counts as true in a condition: it must be
// nonempty with every element nonzero.
func IsTrue(v Value) bool {
	switch v.(type) {
	case *Cell, *Struct, *FunctionHandle:
		Errorf(TypeError, "conversion to logical from %s is not possible", v.Class())
	}
	m, _ := Numeric(v)
	if m.IsEmpty() {
		return false
	}
	for _, x := range m.data {
		if math.IsNaN(x) {
			Errorf(TypeError, "NaN cannot be converted to logical")
		}
		if x == 0 {
			return false
		}
	}
	return true
}

// ToLogical converts a numeric value to a logical one.
func ToLogical(v Value) Logical {
	if l, ok := v.(Logical); ok {
		return l
	}
	m := ToMatrix("logical", v)
	for _, x := range m.data {
		if math.IsNaN(x) {
			Errorf(TypeError, "NaN cannot be converted to logical")
		}
	}
	return NewLogical(m.rows, m.cols, m.Copy().data)
}

// Double converts a numeric value to a double matrix, dropping any
// logical or character typing.
func Double(v Value) *Matrix {
	return ToMatrix("double", v)
}

// Equal reports whether a and b have the same size and contents. Numeric
// classes compare by value, so isequal(1, true) holds.
func Equal(a, b Value) bool {
	ar, ac := a.Size()
	br, bc := b.Size()
	if ar != br || ac != bc {
		return false
	}
	switch a := a.(type) {
	case *Cell:
		b, ok := b.(*Cell)
		if !ok {
			return false
		}
		for i := range a.data {
			if !Equal(a.data[i], b.data[i]) {
				return false
			}
		}
		return true
	case *Struct:
		b, ok := b.(*Struct)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for _, name := range a.order {
			y, ok := b.fields[name]
			if !ok || !Equal(a.fields[name], y) {
				return false
			}
		}
		return true
	case *FunctionHandle:
		b, ok := b.(*FunctionHandle)
		return ok && a == b
	}
	x, ok := Numeric(a)
	if !ok {
		return false
	}
	y, ok := Numeric(b)
	if !ok {
		return false
	}
	for i := range x.data {
		if x.data[i] != y.data[i] {
			return false
		}
	}
	return true
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math"
)

// elementwise operators and their implementations.
var arith = map[string]func(x, y float64) float64{
	"+":   func(x, y float64) float64 { return x + y },
	"-":   func(x, y float64) float64 { return x - y },
	".*":  func(x, y float64) float64 { return x * y },
	"./":  func(x, y float64) float64 { return x / y },
	".\\": func(x, y float64) float64 { return y / x },
	".^":  math.Pow,
}

var compare = map[string]func(x, y float64) bool{
	"==": func(x, y float64) bool { return x == y },
	"~=": func(x, y float64) bool { return x != y },
	"<":  func(x, y float64) bool { return x < y },
	"<=": func(x, y float64) bool { return x <= y },
	">":  func(x, y float64) bool { return x > y },
	">=": func(x, y float64) bool { return x >= y },
}

var logic = map[string]func(x, y bool) bool{
	"&":  func(x, y bool) bool { return x && y },
	"|":  func(x, y bool) bool { return x || y },
	"&&": func(x, y bool) bool { return x && y },
	"||": func(x, y bool) bool { return x || y },
}

// Binary evaluates the binary operator op applied to x and y.
func Binary(c Context, x Value, op string, y Value) Value {
	if fn, ok := arith[op]; ok {
		return broadcast(op, operand(op, x), operand(op, y), fn)
	}
	if fn, ok := compare[op]; ok {
		a, b := operand(op, x), operand(op, y)
		m := broadcast(op, a, b, func(x, y float64) float64 {
			if fn(x, y) {
				return 1
			}
			return 0
		})
		return Logical{m}
	}
	if fn, ok := logic[op]; ok {
		if op == "&&" || op == "||" {
			return Bool(fn(IsTrue(x), IsTrue(y)))
		}
		a, b := operand(op, x), operand(op, y)
		m := broadcast(op, a, b, func(x, y float64) float64 {
			if math.IsNaN(x) || math.IsNaN(y) {
				Errorf(TypeError, "NaN cannot be converted to logical")
			}
			if fn(x != 0, y != 0) {
				return 1
			}
			return 0
		})
		return Logical{m}
	}
	a, b := operand(op, x), operand(op, y)
	switch op {
	case "*":
		if a.IsScalar() || b.IsScalar() {
			return broadcast(op, a, b, arith[".*"])
		}
		return MatMul(a, b)
	case "/":
		if b.IsScalar() {
			return broadcast(op, a, b, arith["./"])
		}
		// x/y is (y'\x')'.
		return Solve(c, b.Transpose(), a.Transpose()).Transpose()
	case "\\":
		if a.IsScalar() {
			return broadcast(op, a, b, arith[".\\"])
		}
		return Solve(c, a, b)
	case "^":
		return power(c, a, b)
	}
	Errorf(InvalidArgument, "unknown binary operator %q", op)
	return nil
}

// operand returns the numeric form of an operand of op.
func operand(op string, v Value) *Matrix {
	m, ok := Numeric(v)
	if !ok {
		Errorf(TypeError, "operator '%s' is not defined for values of class %s", op, v.Class())
	}
	return m
}

// shapeString formats dimensions as in "2x3".
func shapeString(m *Matrix) string {
	return fmt.Sprintf("%dx%d", m.rows, m.cols)
}

// broadcastDim returns the size of a dimension of the result of an
// elementwise operation on operands with sizes a and b.
func broadcastDim(a, b int) (int, bool) {
	switch {
	case a == b:
		return a, true
	case a == 1:
		return b, true
	case b == 1:
		return a, true
	}
	return 0, false
}

// broadcast applies fn elementwise. Dimensions of size 1 stretch to match
// the other operand, so a scalar combines with anything and a row vector
// combines with each row of a matrix.
func broadcast(op string, a, b *Matrix, fn func(x, y float64) float64) *Matrix {
	rows, rok := broadcastDim(a.rows, b.rows)
	cols, cok := broadcastDim(a.cols, b.cols)
	if !rok || !cok {
		Errorf(DimensionMismatch, "matrix dimensions must agree for '%s': %s vs %s", op, shapeString(a), shapeString(b))
	}
	out := Zeros(rows, cols)
	if a.rows == rows && a.cols == cols && b.rows == rows && b.cols == cols {
		for i := range out.data {
			out.data[i] = fn(a.data[i], b.data[i])
		}
		return out
	}
	for i := 0; i < rows; i++ {
		ai, bi := i, i
		if a.rows == 1 {
			ai = 0
		}
		if b.rows == 1 {
			bi = 0
		}
		for j := 0; j < cols; j++ {
			aj, bj := j, j
			if a.cols == 1 {
				aj = 0
			}
			if b.cols == 1 {
				bj = 0
			}
			out.data[i*cols+j] = fn(a.data[ai*a.cols+aj], b.data[bi*b.cols+bj])
		}
	}
	return out
}

// Elementwise applies fn to corresponding elements of a and b with the
// broadcasting rules of the arithmetic operators. name identifies the
// operation in errors.
func Elementwise(name string, a, b *Matrix, fn func(x, y float64) float64) *Matrix {
	return broadcast(name, a, b, fn)
}

// MatMul returns the matrix product a*b.
func MatMul(a, b *Matrix) *Matrix {
	if a.cols != b.rows {
		Errorf(DimensionMismatch, "inner matrix dimensions must agree for '*': %s vs %s", shapeString(a), shapeString(b))
	}
	out := Zeros(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		for k := 0; k < a.cols; k++ {
			x := a.data[i*a.cols+k]
			if x == 0 {
				continue
			}
			row := b.data[k*b.cols : (k+1)*b.cols]
			dst := out.data[i*b.cols : (i+1)*b.cols]
			for j, y := range row {
				dst[j] += x * y
			}
		}
	}
	return out
}

// power implements a^b: elementwise for scalars, repeated multiplication
// for a square matrix raised to an integer.
func power(c Context, a, b *Matrix) *Matrix {
	if a.IsScalar() && b.IsScalar() {
		return Scalar(math.Pow(a.data[0], b.data[0]))
	}
	if !b.IsScalar() {
		Errorf(InvalidArgument, "exponent of '^' must be a scalar; use '.^' for elementwise power")
	}
	if a.rows != a.cols {
		Errorf(DimensionMismatch, "matrix must be square for '^'; got %s", shapeString(a))
	}
	p := b.data[0]
	if p != math.Trunc(p) || math.IsInf(p, 0) {
		Errorf(InvalidArgument, "matrix power requires an integer exponent; got %s", formatFloat(p, 4))
	}
	base := a
	if p < 0 {
		base = Inverse(c, a)
		p = -p
	}
	result := Identity(a.rows, a.cols)
	for n := int64(p); n > 0; n >>= 1 {
		if n&1 == 1 {
			result = MatMul(result, base)
		}
		if n > 1 {
			base = MatMul(base, base)
		}
	}
	return result
}

// Unary evaluates the unary operator op applied to x.
func Unary(c Context, op string, x Value) Value {
	m := operand(op, x)
	switch op {
	case "-":
		return m.Map(func(x float64) float64 { return -x })
	case "+":
		return m.Copy()
	case "~":
		out := Zeros(m.rows, m.cols)
		for i, x := range m.data {
			if math.IsNaN(x) {
				Errorf(TypeError, "NaN cannot be converted to logical")
			}
			if x == 0 {
				out.data[i] = 1
			}
		}
		return Logical{out}
	}
	Errorf(InvalidArgument, "unknown unary operator %q", op)
	return nil
}

// Transpose returns the transpose of v. Both ' and .' transpose, as
// there are no complex values.
func Transpose(v Value) Value {
	switch v := v.(type) {
	case *Matrix:
		return v.Transpose()
	case Logical:
		return Logical{v.Transpose()}
	case String:
		if len(v.Runes()) > 1 {
			Errorf(TypeError, "transpose of a multi-character string is not supported")
		}
		return v
	case *Cell:
		return v.Transpose()
	case Empty, *Struct, *FunctionHandle:
		return v
	}
	panic(fmt.Sprintf("internal error: unknown value type %T", v))
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math"
)

// Matrix is a dense two-dimensional array of float64, stored in row-major
// order. Linear indexing, as in A(k), runs down the columns.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix returns a matrix holding data, which must have rows*cols elements.
// The matrix takes ownership of data.
func NewMatrix(rows, cols int, data []float64) *Matrix {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		panic(fmt.Sprintf("internal error: NewMatrix %dx%d with %d elements", rows, cols, len(data)))
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// Zeros returns a matrix of zeros.
func Zeros(rows, cols int) *Matrix {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return NewMatrix(rows, cols, make([]float64, rows*cols))
}

// Filled returns a matrix with every element x.
func Filled(rows, cols int, x float64) *Matrix {
	m := Zeros(rows, cols)
	for i := range m.data {
		m.data[i] = x
	}
	return m
}

// Scalar returns a 1x1 matrix.
func Scalar(x float64) *Matrix {
	return &Matrix{rows: 1, cols: 1, data: []float64{x}}
}

// RowVector returns a 1xn matrix holding data.
func RowVector(data []float64) *Matrix {
	return NewMatrix(1, len(data), data)
}

// ColVector returns an nx1 matrix holding data.
func ColVector(data []float64) *Matrix {
	return NewMatrix(len(data), 1, data)
}

// Identity returns the n by n identity matrix.
func Identity(rows, cols int) *Matrix {
	m := Zeros(rows, cols)
	for i := 0; i < rows && i < cols; i++ {
		m.data[i*cols+i] = 1
	}
	return m
}

func (m *Matrix) Size() (int, int) { return m.rows, m.cols }

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Numel returns the number of elements.
func (m *Matrix) Numel() int { return len(m.data) }

// Data returns the elements in row-major order. The caller must not modify them.
func (m *Matrix) Data() []float64 { return m.data }

// At returns the element at row i, column j, counting from zero.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Linear returns the k'th element in column-major order, counting from zero.
func (m *Matrix) Linear(k int) float64 {
	return m.data[(k%m.rows)*m.cols+k/m.rows]
}

// ColumnMajor returns a copy of the elements in column-major order.
func (m *Matrix) ColumnMajor() []float64 {
	out := make([]float64, len(m.data))
	for k := range out {
		out[k] = m.Linear(k)
	}
	return out
}

// FromColumnMajor returns a rows by cols matrix filled from data taken
// in column-major order.
func FromColumnMajor(rows, cols int, data []float64) *Matrix {
	m := Zeros(rows, cols)
	for k, x := range data {
		m.data[(k%rows)*cols+k/rows] = x
	}
	return m
}

// IsScalar reports whether m is 1x1.
func (m *Matrix) IsScalar() bool { return m.rows == 1 && m.cols == 1 }

// IsVector reports whether m has a single row or a single column.
func (m *Matrix) IsVector() bool { return m.rows == 1 || m.cols == 1 }

// IsEmpty reports whether m has no elements.
func (m *Matrix) IsEmpty() bool { return len(m.data) == 0 }

// Float returns the value of the single element of m.
func (m *Matrix) Float() float64 { return m.data[0] }

// Copy returns a copy of m that shares no storage with it.
func (m *Matrix) Copy() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return NewMatrix(m.rows, m.cols, data)
}

// Transpose returns the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	t := Zeros(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return t
}

// Reshape returns m rearranged, in column-major order, to rows by cols.
func (m *Matrix) Reshape(rows, cols int) *Matrix {
	if rows*cols != len(m.data) {
		Errorf(DimensionMismatch, "cannot reshape %dx%d into %dx%d", m.rows, m.cols, rows, cols)
	}
	return FromColumnMajor(rows, cols, m.ColumnMajor())
}

// Map returns the matrix with fn applied to each element.
func (m *Matrix) Map(fn func(float64) float64) *Matrix {
	out := Zeros(m.rows, m.cols)
	for i, x := range m.data {
		out.data[i] = fn(x)
	}
	return out
}

// IsInteger reports whether every element of m is a finite integer.
func (m *Matrix) IsInteger() bool {
	for _, x := range m.data {
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// String returns the short form used for struct fields and cell elements.
func (m *Matrix) String() string {
	return shortForm(m, m.Class())
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import "fmt"

// Cell is a two-dimensional array of arbitrary values, stored in row-major order.
type Cell struct {
	rows, cols int
	data       []Value
}

// NewCell returns a cell array holding data, which must have rows*cols elements.
func NewCell(rows, cols int, data []Value) *Cell {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		panic(fmt.Sprintf("internal error: NewCell %dx%d with %d elements", rows, cols, len(data)))
	}
	return &Cell{rows: rows, cols: cols, data: data}
}

// EmptyCell returns a rows by cols cell array with every element [].
func EmptyCell(rows, cols int) *Cell {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	data := make([]Value, rows*cols)
	for i := range data {
		data[i] = Empty{}
	}
	return NewCell(rows, cols, data)
}

// CellRow returns a 1xn cell array holding the values.
func CellRow(vals ...Value) *Cell {
	data := make([]Value, len(vals))
	copy(data, vals)
	return NewCell(1, len(data), data)
}

func (c *Cell) Size() (int, int) { return c.rows, c.cols }

// Data returns the elements in row-major order. The caller must not modify them.
func (c *Cell) Data() []Value { return c.data }

// At returns the element at row i, column j, counting from zero.
func (c *Cell) At(i, j int) Value { return c.data[i*c.cols+j] }

// Linear returns the k'th element in column-major order, counting from zero.
func (c *Cell) Linear(k int) Value {
	return c.data[(k%c.rows)*c.cols+k/c.rows]
}

// ColumnMajor returns the elements in column-major order.
func (c *Cell) ColumnMajor() []Value {
	out := make([]Value, len(c.data))
	for k := range out {
		out[k] = c.Linear(k)
	}
	return out
}

// Transpose returns the transpose of c.
func (c *Cell) Transpose() *Cell {
	t := EmptyCell(c.cols, c.rows)
	for i := 0; i < c.rows; i++ {
		for j := 0; j < c.cols; j++ {
			t.data[j*c.rows+i] = c.data[i*c.cols+j]
		}
	}
	return t
}

func (c *Cell) String() string {
	return fmt.Sprintf("{%dx%d cell}", c.rows, c.cols)
}

// Reshape returns c rearranged, in column-major order, to rows by cols.
func (c *Cell) Reshape(rows, cols int) *Cell {
	if rows*cols != len(c.data) {
		Errorf(DimensionMismatch, "cannot reshape %dx%d into %dx%d", c.rows, c.cols, rows, cols)
	}
	data := make([]Value, len(c.data))
	for k, v := range c.ColumnMajor() {
		data[(k%rows)*cols+k/rows] = v
	}
	return NewCell(rows, cols, data)
}

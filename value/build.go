// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"strings"
)

// Range returns the row vector start:step:stop. The last element may
// overshoot stop by a tiny fraction of step to absorb rounding error.
func Range(start, step, stop float64) *Matrix {
	if step == 0 {
		Errorf(InvalidArgument, "range step cannot be zero")
	}
	if math.IsNaN(start) || math.IsNaN(step) || math.IsNaN(stop) {
		return Zeros(1, 0)
	}
	if math.IsInf(start, 0) || math.IsInf(stop, 0) {
		Errorf(InvalidArgument, "range bounds must be finite")
	}
	n := math.Floor((stop-start)/step+1e-10) + 1
	if n <= 0 {
		return Zeros(1, 0)
	}
	if n > 1<<31 {
		Errorf(InvalidArgument, "range has too many elements")
	}
	data := make([]float64, int(n))
	for i := range data {
		data[i] = start + float64(i)*step
	}
	return RowVector(data)
}

// HorzCat concatenates values left to right, as in [a, b].
// Empty operands are skipped. A row of strings yields a string; a row
// holding any cell yields a cell.
func HorzCat(vals []Value) Value {
	vals = nonEmpty(vals)
	switch len(vals) {
	case 0:
		return Empty{}
	case 1:
		return vals[0]
	}
	if anyCell(vals) {
		return catCells(vals, true)
	}
	if allStrings(vals) {
		var b strings.Builder
		for _, v := range vals {
			b.WriteString(string(v.(String)))
		}
		return String(b.String())
	}
	ms := make([]*Matrix, len(vals))
	for i, v := range vals {
		ms[i] = catOperand(v)
	}
	rows := ms[0].rows
	cols := 0
	for _, m := range ms {
		if m.rows != rows {
			Errorf(DimensionMismatch, "dimensions of arrays being concatenated are not consistent: %s vs %s", shapeString(ms[0]), shapeString(m))
		}
		cols += m.cols
	}
	out := Zeros(rows, cols)
	off := 0
	for _, m := range ms {
		for i := 0; i < rows; i++ {
			copy(out.data[i*cols+off:], m.data[i*m.cols:(i+1)*m.cols])
		}
		off += m.cols
	}
	return retype(vals, out)
}

// VertCat stacks values top to bottom, as in [a; b].
func VertCat(vals []Value) Value {
	vals = nonEmpty(vals)
	switch len(vals) {
	case 0:
		return Empty{}
	case 1:
		return vals[0]
	}
	if anyCell(vals) {
		return catCells(vals, false)
	}
	if allStrings(vals) {
		Errorf(TypeError, "vertical concatenation of strings is not supported; use a cell array")
	}
	ms := make([]*Matrix, len(vals))
	for i, v := range vals {
		ms[i] = catOperand(v)
	}
	cols := ms[0].cols
	rows := 0
	for _, m := range ms {
		if m.cols != cols {
			Errorf(DimensionMismatch, "dimensions of arrays being concatenated are not consistent: %s vs %s", shapeString(ms[0]), shapeString(m))
		}
		rows += m.rows
	}
	data := make([]float64, 0, rows*cols)
	for _, m := range ms {
		data = append(data, m.data...)
	}
	return retype(vals, NewMatrix(rows, cols, data))
}

func nonEmpty(vals []Value) []Value {
	out := make([]Value, 0, len(vals))
	for _, v := range vals {
		if _, ok := v.(*Cell); ok {
			out = append(out, v)
			continue
		}
		if !IsEmpty(v) {
			out = append(out, v)
		}
	}
	return out
}

func anyCell(vals []Value) bool {
	for _, v := range vals {
		if _, ok := v.(*Cell); ok {
			return true
		}
	}
	return false
}

func allStrings(vals []Value) bool {
	for _, v := range vals {
		if _, ok := v.(String); !ok {
			return false
		}
	}
	return true
}

func catOperand(v Value) *Matrix {
	m, ok := Numeric(v)
	if !ok {
		Errorf(TypeError, "cannot concatenate a value of class %s with numeric values", v.Class())
	}
	return m
}

// retype gives the result of concatenating numeric operands its class:
// logical when all operands are logical, char when any is a string
// and the result is a single row, double otherwise.
func retype(vals []Value, m *Matrix) Value {
	allLogical := true
	anyString := false
	for _, v := range vals {
		switch v.(type) {
		case Logical:
		case String:
			anyString = true
			allLogical = false
		default:
			allLogical = false
		}
	}
	switch {
	case allLogical:
		return Logical{m}
	case anyString && m.rows == 1:
		return FromRunes(m.data)
	}
	return m
}

// catCells concatenates cells, wrapping any non-cell operand in a 1x1 cell.
func catCells(vals []Value, horizontal bool) *Cell {
	cells := make([]*Cell, 0, len(vals))
	for _, v := range vals {
		c, ok := v.(*Cell)
		if !ok {
			c = CellRow(v)
		}
		if len(c.data) == 0 {
			continue
		}
		cells = append(cells, c)
	}
	if len(cells) == 0 {
		return EmptyCell(0, 0)
	}
	if horizontal {
		rows := cells[0].rows
		cols := 0
		for _, c := range cells {
			if c.rows != rows {
				Errorf(DimensionMismatch, "dimensions of cell arrays being concatenated are not consistent")
			}
			cols += c.cols
		}
		out := EmptyCell(rows, cols)
		off := 0
		for _, c := range cells {
			for i := 0; i < rows; i++ {
				copy(out.data[i*cols+off:], c.data[i*c.cols:(i+1)*c.cols])
			}
			off += c.cols
		}
		return out
	}
	cols := cells[0].cols
	var data []Value
	for _, c := range cells {
		if c.cols != cols {
			Errorf(DimensionMismatch, "dimensions of cell arrays being concatenated are not consistent")
		}
		data = append(data, c.data...)
	}
	return NewCell(len(data)/cols, cols, data)
}

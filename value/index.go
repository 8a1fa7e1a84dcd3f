// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math"
)

// Index is one subscript of an indexing expression: a bare colon
// or a value holding positions (counting from 1) or a logical mask.
type Index struct {
	All bool
	Val Value
}

// Colon is the subscript ':'.
var Colon = Index{All: true}

// At returns a subscript selecting a single position, counting from 1.
func At(i int) Index {
	return Index{Val: Scalar(float64(i))}
}

// grid is the storage shared by matrices and cells, in row-major order.
type grid[T any] struct {
	rows, cols int
	data       []T
}

func (g grid[T]) at(k int) T {
	return g.data[(k%g.rows)*g.cols+k/g.rows]
}

// positions resolves a subscript against a dimension of size n, returning
// zero-based positions. If grow is false, positions beyond n are an error.
func (ix Index) positions(n int, grow bool) []int {
	if ix.All {
		pos := make([]int, n)
		for i := range pos {
			pos[i] = i
		}
		return pos
	}
	if l, ok := ix.Val.(Logical); ok {
		var pos []int
		for i, x := range l.ColumnMajor() {
			if x == 0 {
				continue
			}
			if i >= n && !grow {
				Errorf(IndexOutOfRange, "index %d out of bounds; logical index exceeds %d elements", i+1, n)
			}
			pos = append(pos, i)
		}
		return pos
	}
	m, ok := Numeric(ix.Val)
	if !ok {
		Errorf(TypeError, "subscript indices must be numeric or logical; got %s", ix.Val.Class())
	}
	data := m.ColumnMajor()
	pos := make([]int, len(data))
	for i, x := range data {
		if x != math.Trunc(x) || math.IsNaN(x) {
			Errorf(InvalidArgument, "subscript indices must be integers; got %s", formatFloat(x, 4))
		}
		if x < 1 {
			Errorf(IndexOutOfRange, "index %s out of bounds; subscript indices must be positive", formatFloat(x, 0))
		}
		if x > float64(n) && !grow {
			Errorf(IndexOutOfRange, "index %d out of bounds; value has %d elements", int(x), n)
		}
		if x > 1<<31 {
			Errorf(IndexOutOfRange, "index %s is too large", formatFloat(x, 0))
		}
		pos[i] = int(x) - 1
	}
	return pos
}

// shape returns the dimensions of the subscript value.
func (ix Index) shape() (int, int) {
	if ix.All {
		return 0, 0
	}
	return ix.Val.Size()
}

func (ix Index) isLogical() bool {
	_, ok := ix.Val.(Logical)
	return ok
}

// checkTrailing verifies that subscripts beyond the second select the single
// page a two-dimensional value has.
func checkTrailing(subs []Index, grow bool) {
	for _, ix := range subs {
		for _, p := range ix.positions(1, grow) {
			if p != 0 {
				Errorf(IndexOutOfRange, "index out of bounds; values have only two dimensions")
			}
		}
	}
}

// gather returns the elements of g selected by subs.
func gather[T any](g grid[T], subs []Index) grid[T] {
	switch len(subs) {
	case 0:
		return g
	case 1:
		ix := subs[0]
		n := g.rows * g.cols
		pos := ix.positions(n, false)
		out := grid[T]{data: make([]T, len(pos))}
		for i, p := range pos {
			out.data[i] = g.at(p)
		}
		// The result has the orientation of the source when both are vectors,
		// and the shape of the subscript otherwise.
		ir, ic := ix.shape()
		isVec := g.rows == 1 || g.cols == 1
		switch {
		case ix.All:
			out.rows, out.cols = len(pos), 1
		case ix.isLogical() || (isVec && n != 1 && (ir == 1 || ic == 1)):
			if g.rows == 1 {
				out.rows, out.cols = 1, len(pos)
			} else {
				out.rows, out.cols = len(pos), 1
			}
		default:
			out.rows, out.cols = ir, ic
		}
		return out
	}
	checkTrailing(subs[2:], false)
	rpos := subs[0].positions(g.rows, false)
	cpos := subs[1].positions(g.cols, false)
	out := grid[T]{rows: len(rpos), cols: len(cpos), data: make([]T, len(rpos)*len(cpos))}
	for i, r := range rpos {
		for j, c := range cpos {
			out.data[i*out.cols+j] = g.data[r*g.cols+c]
		}
	}
	return out
}

// resize returns a copy of g with at least rows and cols, new elements set to fill.
func resize[T any](g grid[T], rows, cols int, fill T) grid[T] {
	rows = max(rows, g.rows)
	cols = max(cols, g.cols)
	out := grid[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
	for i := range out.data {
		out.data[i] = fill
	}
	for i := 0; i < g.rows; i++ {
		copy(out.data[i*cols:], g.data[i*g.cols:(i+1)*g.cols])
	}
	return out
}

// growRow returns g as a 1xn row, keeping the elements at their linear
// positions, with the new elements set to fill.
func growRow[T any](g grid[T], n int, fill T) grid[T] {
	out := grid[T]{rows: 1, cols: n, data: make([]T, n)}
	have := g.rows * g.cols
	for k := range out.data {
		if k < have {
			out.data[k] = g.at(k)
		} else {
			out.data[k] = fill
		}
	}
	return out
}

// scatter returns a copy of g with the elements selected by subs replaced by
// those of src, growing g as needed. src must be a single element, which is
// replicated, or hold exactly one element per selected position.
func scatter[T any](g grid[T], subs []Index, src grid[T], fill T) grid[T] {
	nsrc := src.rows * src.cols
	switch len(subs) {
	case 0:
		Errorf(InvalidArgument, "assignment requires at least one subscript")
	case 1:
		n := g.rows * g.cols
		pos := subs[0].positions(n, true)
		if nsrc != 1 && nsrc != len(pos) {
			Errorf(DimensionMismatch, "in an assignment A(I) = B, the number of elements in B and I must be the same: %d vs %d", nsrc, len(pos))
		}
		need := 0
		for _, p := range pos {
			need = max(need, p+1)
		}
		out := g
		if need > n {
			if g.cols == 1 && g.rows > 1 {
				out = resize(g, need, 1, fill)
			} else {
				out = growRow(g, need, fill)
			}
		} else {
			out = resize(g, g.rows, g.cols, fill)
		}
		for i, p := range pos {
			x := src.data[0]
			if nsrc != 1 {
				x = src.at(i)
			}
			out.data[(p%out.rows)*out.cols+p/out.rows] = x
		}
		return out
	}
	checkTrailing(subs[2:], true)
	// A colon over an empty dimension takes its size from the source.
	rsub, csub := subs[0], subs[1]
	rows, cols := g.rows, g.cols
	if rsub.All && rows == 0 {
		rows = src.rows
		if nsrc == 1 {
			rows = 1
		}
	}
	if csub.All && cols == 0 {
		cols = src.cols
		if nsrc == 1 {
			cols = 1
		}
	}
	rpos := rsub.positions(rows, true)
	cpos := csub.positions(cols, true)
	n := len(rpos) * len(cpos)
	if nsrc != 1 && nsrc != n {
		Errorf(DimensionMismatch, "subscripted assignment dimension mismatch: %dx%d vs %dx%d", len(rpos), len(cpos), src.rows, src.cols)
	}
	for _, r := range rpos {
		rows = max(rows, r+1)
	}
	for _, c := range cpos {
		cols = max(cols, c+1)
	}
	out := resize(g, rows, cols, fill)
	for j, c := range cpos {
		for i, r := range rpos {
			x := src.data[0]
			if nsrc != 1 {
				if src.rows == len(rpos) && src.cols == len(cpos) {
					x = src.data[i*src.cols+j]
				} else {
					x = src.at(j*len(rpos) + i)
				}
			}
			out.data[r*out.cols+c] = x
		}
	}
	return out
}

// remove returns a copy of g with the elements selected by subs deleted.
func remove[T any](g grid[T], subs []Index) grid[T] {
	switch len(subs) {
	case 0:
		Errorf(InvalidArgument, "deletion requires at least one subscript")
	case 1:
		n := g.rows * g.cols
		del := make([]bool, n)
		for _, p := range subs[0].positions(n, false) {
			del[p] = true
		}
		var keep []T
		for k := 0; k < n; k++ {
			if !del[k] {
				keep = append(keep, g.at(k))
			}
		}
		if subs[0].All {
			return grid[T]{}
		}
		if g.cols == 1 && g.rows != 1 {
			return grid[T]{rows: len(keep), cols: 1, data: keep}
		}
		return grid[T]{rows: 1, cols: len(keep), data: keep}
	}
	checkTrailing(subs[2:], false)
	rpos := subs[0].positions(g.rows, false)
	cpos := subs[1].positions(g.cols, false)
	rowsAll := len(distinct(rpos)) == g.rows
	colsAll := len(distinct(cpos)) == g.cols
	switch {
	case colsAll:
		del := distinct(rpos)
		out := grid[T]{cols: g.cols}
		for i := 0; i < g.rows; i++ {
			if !del[i] {
				out.data = append(out.data, g.data[i*g.cols:(i+1)*g.cols]...)
				out.rows++
			}
		}
		return out
	case rowsAll:
		del := distinct(cpos)
		out := grid[T]{rows: g.rows, cols: g.cols - len(del)}
		for i := 0; i < g.rows; i++ {
			for j := 0; j < g.cols; j++ {
				if !del[j] {
					out.data = append(out.data, g.data[i*g.cols+j])
				}
			}
		}
		return out
	}
	Errorf(InvalidArgument, "a null assignment can have only one non-colon index")
	return g
}

func distinct(pos []int) map[int]bool {
	set := make(map[int]bool, len(pos))
	for _, p := range pos {
		set[p] = true
	}
	return set
}

func matrixGrid(m *Matrix) grid[float64] {
	return grid[float64]{m.rows, m.cols, m.data}
}

func gridMatrix(g grid[float64]) *Matrix {
	if g.data == nil {
		g.data = []float64{}
	}
	return NewMatrix(g.rows, g.cols, g.data)
}

func cellGrid(c *Cell) grid[Value] {
	return grid[Value]{c.rows, c.cols, c.data}
}

func gridCell(g grid[Value]) *Cell {
	if g.data == nil {
		g.data = []Value{}
	}
	return NewCell(g.rows, g.cols, g.data)
}

// IndexValue returns v(subs...).
func IndexValue(v Value, subs []Index) Value {
	if len(subs) == 0 {
		return v
	}
	switch v := v.(type) {
	case *Matrix:
		return gridMatrix(gather(matrixGrid(v), subs))
	case Logical:
		return Logical{gridMatrix(gather(matrixGrid(v.Matrix), subs))}
	case String:
		m, _ := Numeric(v)
		r := gridMatrix(gather(matrixGrid(m), subs))
		if r.rows > 1 {
			return r
		}
		return FromRunes(r.data)
	case Empty:
		gridMatrix(gather(grid[float64]{}, subs))
		return Empty{}
	case *Cell:
		return gridCell(gather(cellGrid(v), subs))
	case *Struct:
		gather(grid[Value]{1, 1, []Value{v}}, subs)
		return v
	case *FunctionHandle:
		Errorf(TypeError, "cannot index into a function handle")
	}
	panic(fmt.Sprintf("internal error: unknown value type %T", v))
}

// CellContents returns the elements c{subs...} in column-major order.
func CellContents(v Value, subs []Index) []Value {
	c, ok := v.(*Cell)
	if !ok {
		Errorf(TypeError, "brace indexing is not supported for values of class %s", v.Class())
	}
	g := gather(cellGrid(c), subs)
	out := make([]Value, len(g.data))
	for k := range out {
		out[k] = g.at(k)
	}
	return out
}

// AssignIndex returns a copy of v with v(subs...) set to rhs. A nil v is an
// unbound variable. Assigning [] deletes the selected elements.
func AssignIndex(v Value, subs []Index, rhs Value) Value {
	if _, ok := rhs.(Empty); ok && v != nil {
		return deleteIndex(v, subs)
	}
	if v == nil {
		v = Empty{}
	}
	switch target := v.(type) {
	case *Cell:
		src, ok := rhs.(*Cell)
		if !ok {
			Errorf(TypeError, "conversion to cell from %s is not possible; use braces to assign cell contents", rhs.Class())
		}
		return gridCell(scatter(cellGrid(target), subs, cellGrid(src), Value(Empty{})))
	case *Struct:
		s, ok := rhs.(*Struct)
		if !ok {
			Errorf(TypeError, "conversion to struct from %s is not possible", rhs.Class())
		}
		if !isSingle(subs) {
			Errorf(TypeError, "struct arrays are not supported")
		}
		return s
	case *FunctionHandle:
		Errorf(TypeError, "cannot index into a function handle")
	case Empty:
		switch rhs := rhs.(type) {
		case *Cell:
			return gridCell(scatter(grid[Value]{}, subs, cellGrid(rhs), Value(Empty{})))
		case *Struct:
			if isSingle(subs) {
				return rhs
			}
			Errorf(TypeError, "struct arrays are not supported")
		}
	}
	m, ok := Numeric(v)
	if !ok {
		panic(fmt.Sprintf("internal error: unknown value type %T", v))
	}
	src, ok := Numeric(rhs)
	if !ok {
		Errorf(TypeError, "conversion to %s from %s is not possible", v.Class(), rhs.Class())
	}
	out := gridMatrix(scatter(matrixGrid(m), subs, matrixGrid(src), 0))
	switch v.(type) {
	case Logical:
		if _, ok := rhs.(Logical); ok {
			return Logical{out}
		}
	case String:
		if out.rows == 1 {
			return FromRunes(out.data)
		}
	case Empty:
		switch rhs.(type) {
		case Logical:
			return Logical{out}
		case String:
			if out.rows == 1 {
				return FromRunes(out.data)
			}
		}
	}
	return out
}

// isSingle reports whether subs all select position 1.
func isSingle(subs []Index) bool {
	for _, ix := range subs {
		if ix.All {
			continue
		}
		pos := ix.positions(1, true)
		if len(pos) != 1 || pos[0] != 0 {
			return false
		}
	}
	return true
}

func deleteIndex(v Value, subs []Index) Value {
	switch v := v.(type) {
	case *Matrix:
		return gridMatrix(remove(matrixGrid(v), subs))
	case Logical:
		return Logical{gridMatrix(remove(matrixGrid(v.Matrix), subs))}
	case String:
		m, _ := Numeric(v)
		return FromRunes(gridMatrix(remove(matrixGrid(m), subs)).data)
	case *Cell:
		return gridCell(remove(cellGrid(v), subs))
	case Empty:
		remove(grid[float64]{}, subs)
		return v
	case *Struct, *FunctionHandle:
		Errorf(TypeError, "cannot delete elements of a value of class %s", v.Class())
	}
	panic(fmt.Sprintf("internal error: unknown value type %T", v))
}

// AssignCell returns a copy of v with the cell element v{subs...} set to rhs,
// growing the cell with [] as needed. A nil or empty v becomes a cell.
func AssignCell(v Value, subs []Index, rhs Value) *Cell {
	var c *Cell
	switch v := v.(type) {
	case nil, Empty:
		c = EmptyCell(0, 0)
	case *Cell:
		c = v
	default:
		if IsEmpty(v) {
			c = EmptyCell(0, 0)
			break
		}
		Errorf(TypeError, "brace indexing is not supported for values of class %s", v.Class())
	}
	return gridCell(scatter(cellGrid(c), subs, grid[Value]{1, 1, []Value{rhs}}, Value(Empty{})))
}

// EndOf returns the value of end for subscript k of n in an index into v.
func EndOf(v Value, k, n int) int {
	rows, cols := v.Size()
	switch {
	case n == 1:
		return rows * cols
	case k == 0:
		return rows
	case k == 1:
		return cols
	}
	return 1
}

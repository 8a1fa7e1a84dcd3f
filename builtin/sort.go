// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"math"
	"sort"

	"matfree.dev/matfree/value"
)

func init() {
	registerMulti("sort", sortFn)
	registerMulti("find", find)
	registerMulti("unique", unique)
	register("fliplr", func(_ value.Context, args []value.Value) value.Value {
		nargs("fliplr", args, 1, 1)
		return flip(args[0], 2)
	})
	register("flipud", func(_ value.Context, args []value.Value) value.Value {
		nargs("flipud", args, 1, 1)
		return flip(args[0], 1)
	})
	register("flip", func(_ value.Context, args []value.Value) value.Value {
		nargs("flip", args, 1, 2)
		dim := dimArg("flip", args, 1)
		if dim == 0 {
			dim = 1
			if rows, _ := args[0].Size(); rows == 1 {
				dim = 2
			}
		}
		return flip(args[0], dim)
	})
	register("ismember", ismember)
}

// orient returns data as a vector shaped like the vector v: a row for a
// row, otherwise a column.
func orient(v value.Value, data []float64) *value.Matrix {
	if rows, _ := v.Size(); rows == 1 {
		return value.RowVector(data)
	}
	return value.ColVector(data)
}

// less orders numbers ascending with NaN last.
func less(x, y float64) bool {
	if math.IsNaN(y) {
		return !math.IsNaN(x)
	}
	return x < y
}

// sortFn implements
//
//	s = sort(x)
//	s = sort(x, 'descend')
//	[s, k] = sort(x)
//
// A vector is sorted along its length and a matrix down each column. A
// cell array of strings is sorted as a list. The sort is stable.
func sortFn(_ value.Context, args []value.Value, nargout int) []value.Value {
	nargs("sort", args, 1, 2)
	descend := false
	if len(args) == 2 {
		switch value.ToStr("sort", args[1]) {
		case "ascend":
		case "descend":
			descend = true
		default:
			value.Errorf(value.InvalidArgument, "sort: mode must be 'ascend' or 'descend'")
		}
	}
	if c, ok := args[0].(*value.Cell); ok {
		strs := stringList("sort", c)
		idx := permutation(len(strs), func(i, j int) bool {
			if descend {
				return strs[i] > strs[j]
			}
			return strs[i] < strs[j]
		})
		out := make([]value.Value, len(idx))
		k := make([]float64, len(idx))
		for i, j := range idx {
			out[i] = value.String(strs[j])
			k[i] = float64(j + 1)
		}
		rows, _ := c.Size()
		sortedCell := value.CellRow(out...)
		if rows != 1 {
			sortedCell = sortedCell.Transpose()
		}
		return []value.Value{sortedCell, orient(c, k)}
	}
	m := value.ToMatrix("sort", args[0])
	cmp := func(x, y float64) bool {
		if descend {
			return less(y, x)
		}
		return less(x, y)
	}
	sortVec := func(x []float64) ([]float64, []float64) {
		idx := permutation(len(x), func(i, j int) bool { return cmp(x[i], x[j]) })
		s := make([]float64, len(x))
		k := make([]float64, len(x))
		for i, j := range idx {
			s[i], k[i] = x[j], float64(j+1)
		}
		return s, k
	}
	if m.IsVector() {
		s, k := sortVec(m.Data())
		result := value.Value(orient(m, s))
		if _, ok := args[0].(value.String); ok {
			result = value.FromRunes(s)
		}
		return []value.Value{result, orient(m, k)}
	}
	rows, cols := m.Size()
	g, _, _ := groups(m, 1)
	s := value.Zeros(rows, cols)
	k := value.Zeros(rows, cols)
	for j, col := range g {
		cs, ck := sortVec(col)
		for i := range rows {
			s.Data()[i*cols+j] = cs[i]
			k.Data()[i*cols+j] = ck[i]
		}
	}
	return []value.Value{s, k}
}

// permutation returns the indexes 0..n-1 stably sorted by less.
func permutation(n int, less func(i, j int) bool) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return less(idx[a], idx[b]) })
	return idx
}

// find implements
//
//	k = find(x)      linear indexes of the nonzero elements
//	k = find(x, n)   the first n of them
//	[r, c] = find(x) their rows and columns
func find(_ value.Context, args []value.Value, nargout int) []value.Value {
	nargs("find", args, 1, 2)
	m := value.ToMatrix("find", args[0])
	limit := -1
	if len(args) == 2 {
		limit = value.ToInt("find", args[1])
	}
	rows, _ := m.Size()
	var ks, rs, cs []float64
	for k, x := range m.ColumnMajor() {
		if limit >= 0 && len(ks) == limit {
			break
		}
		if x != 0 {
			ks = append(ks, float64(k+1))
			rs = append(rs, float64(k%rows+1))
			cs = append(cs, float64(k/rows+1))
		}
	}
	shape := func(data []float64) value.Value {
		if m.IsEmpty() && len(data) == 0 {
			return value.Zeros(0, 0)
		}
		if rows == 1 {
			return value.RowVector(data)
		}
		return value.ColVector(data)
	}
	if nargout <= 1 {
		return []value.Value{shape(ks)}
	}
	return []value.Value{shape(rs), shape(cs), shape(nonzeros(m, ks))}
}

func nonzeros(m *value.Matrix, ks []float64) []float64 {
	out := make([]float64, len(ks))
	for i, k := range ks {
		out[i] = m.Linear(int(k) - 1)
	}
	return out
}

// unique returns the sorted distinct elements, with [u, i, j] = unique(x)
// also returning the last index of each in x and the index of each x in u.
func unique(_ value.Context, args []value.Value, nargout int) []value.Value {
	nargs("unique", args, 1, 1)
	if c, ok := args[0].(*value.Cell); ok {
		strs := stringList("unique", c)
		idx := permutation(len(strs), func(i, j int) bool { return strs[i] < strs[j] })
		var out []value.Value
		var last, back []float64
		back = make([]float64, len(strs))
		for n, j := range idx {
			if n == 0 || strs[j] != strs[idx[n-1]] {
				out = append(out, value.String(strs[j]))
				last = append(last, 0)
			}
			last[len(last)-1] = float64(j + 1)
			back[j] = float64(len(out))
		}
		u := value.CellRow(out...)
		if rows, _ := c.Size(); rows != 1 {
			u = u.Transpose()
		}
		return []value.Value{u, value.ColVector(last), value.ColVector(back)}
	}
	m := value.ToMatrix("unique", args[0])
	data := m.ColumnMajor()
	idx := permutation(len(data), func(i, j int) bool { return less(data[i], data[j]) })
	var out, last []float64
	back := make([]float64, len(data))
	for n, j := range idx {
		// NaNs are all distinct.
		if n == 0 || data[j] != data[idx[n-1]] {
			out = append(out, data[j])
			last = append(last, 0)
		}
		last[len(last)-1] = float64(j + 1)
		back[j] = float64(len(out))
	}
	var u value.Value
	if rows, _ := m.Size(); rows == 1 {
		u = value.RowVector(out)
	} else {
		u = value.ColVector(out)
	}
	switch args[0].(type) {
	case value.String:
		u = value.FromRunes(out)
	case value.Logical:
		um := u.(*value.Matrix)
		u = value.NewLogical(um.Rows(), um.Cols(), um.Data())
	}
	return []value.Value{u, value.ColVector(last), value.ColVector(back)}
}

// flip reverses the order of the rows (dim 1) or columns (dim 2) of v.
func flip(v value.Value, dim int) value.Value {
	rows, cols := v.Size()
	order := func(n int) value.Index {
		data := make([]float64, n)
		for i := range data {
			data[i] = float64(n - i)
		}
		return value.Index{Val: value.RowVector(data)}
	}
	if rows == 0 || cols == 0 {
		return v
	}
	if dim == 1 {
		return value.IndexValue(v, []value.Index{order(rows), value.Colon})
	}
	return value.IndexValue(v, []value.Index{value.Colon, order(cols)})
}

// ismember(a, s) reports for each element of a whether it occurs in s.
// With a string and a cell array of strings it reports whether the string
// is one of them.
func ismember(_ value.Context, args []value.Value) value.Value {
	nargs("ismember", args, 2, 2)
	if c, ok := args[1].(*value.Cell); ok {
		set := map[string]bool{}
		for _, s := range stringList("ismember", c) {
			set[s] = true
		}
		if a, ok := args[0].(*value.Cell); ok {
			strs := stringList("ismember", a)
			out := make([]float64, len(strs))
			for i, s := range strs {
				out[i] = b2f(set[s])
			}
			rows, cols := a.Size()
			return value.NewLogical(rows, cols, value.FromColumnMajor(rows, cols, out).Data())
		}
		return value.Bool(set[value.ToStr("ismember", args[0])])
	}
	a := value.ToMatrix("ismember", args[0])
	set := map[float64]bool{}
	for _, x := range value.ToMatrix("ismember", args[1]).Data() {
		set[x] = true
	}
	out := a.Map(func(x float64) float64 { return b2f(set[x]) })
	return value.NewLogical(out.Rows(), out.Cols(), out.Data())
}

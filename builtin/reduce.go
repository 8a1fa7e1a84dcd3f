// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"matfree.dev/matfree/value"
)

// Reductions combine the elements of a matrix. With no dimension they
// combine every element; dimension 1 combines down each column to give a
// row, and dimension 2 combines across each row to give a column.

// groups returns the sets of elements a reduction along dim combines,
// and the shape of its result.
func groups(m *value.Matrix, dim int) (g [][]float64, rows, cols int) {
	r, c := m.Size()
	switch dim {
	case 0:
		return [][]float64{m.ColumnMajor()}, 1, 1
	case 1:
		g = make([][]float64, c)
		for j := range g {
			g[j] = make([]float64, r)
			for i := range r {
				g[j][i] = m.At(i, j)
			}
		}
		return g, 1, c
	}
	g = make([][]float64, r)
	for i := range g {
		g[i] = make([]float64, c)
		for j := range c {
			g[i][j] = m.At(i, j)
		}
	}
	return g, r, 1
}

// reduce applies fn to each group of m along dim.
func reduce(m *value.Matrix, dim int, fn func([]float64) float64) *value.Matrix {
	g, rows, cols := groups(m, dim)
	out := make([]float64, len(g))
	for i, x := range g {
		out[i] = fn(x)
	}
	return value.NewMatrix(rows, cols, out)
}

// reduction registers a builtin of the form f(x) or f(x, dim).
func reduction(name string, fn func([]float64) float64) {
	register(name, func(_ value.Context, args []value.Value) value.Value {
		nargs(name, args, 1, 2)
		return reduce(value.ToMatrix(name, args[0]), dimArg(name, args, 1), fn)
	})
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return floats.Sum(x) / float64(len(x))
}

func init() {
	reduction("sum", floats.Sum)
	reduction("prod", floats.Prod)
	reduction("mean", mean)
	for name, all := range map[string]bool{"any": false, "all": true} {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 1, 2)
			m := reduce(value.ToMatrix(name, args[0]), dimArg(name, args, 1), func(x []float64) float64 {
				for _, v := range x {
					if (v != 0) != all {
						return b2f(!all)
					}
				}
				return b2f(all)
			})
			return value.NewLogical(m.Rows(), m.Cols(), m.Data())
		})
	}
	registerMulti("max", func(_ value.Context, args []value.Value, nargout int) []value.Value {
		return extreme("max", args, nargout, func(x, y float64) bool { return x > y })
	})
	registerMulti("min", func(_ value.Context, args []value.Value, nargout int) []value.Value {
		return extreme("min", args, nargout, func(x, y float64) bool { return x < y })
	})
	cumulative("cumsum", func(acc, x float64) float64 { return acc + x })
	cumulative("cumprod", func(acc, x float64) float64 { return acc * x })
	register("diff", diff)
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// extreme implements max and min:
//
//	m = max(x)       largest element
//	m = max(x, [], dim)
//	m = max(a, b)    elementwise
//	[m, k] = max(x)  and its index
//
// NaN is ignored unless every element is NaN.
func extreme(name string, args []value.Value, nargout int, better func(x, y float64) bool) []value.Value {
	nargs(name, args, 1, 3)
	if len(args) == 2 {
		if nargout > 1 {
			value.Errorf(value.InvalidArgument, "%s with two matrices to compare returns one output", name)
		}
		pick := func(x, y float64) float64 {
			if math.IsNaN(x) || better(y, x) {
				return y
			}
			return x
		}
		return []value.Value{value.Elementwise(name, value.ToMatrix(name, args[0]), value.ToMatrix(name, args[1]), pick)}
	}
	if len(args) == 3 && !value.IsEmpty(args[1]) {
		value.Errorf(value.InvalidArgument, "%s: second argument must be [] when a dimension is given", name)
	}
	m := value.ToMatrix(name, args[0])
	dim := dimArg(name, args, 2)
	if m.IsEmpty() && dim == 0 {
		return []value.Value{value.Empty{}, value.Empty{}}
	}
	g, rows, cols := groups(m, dim)
	vals := make([]float64, len(g))
	index := make([]float64, len(g))
	for i, x := range g {
		best, k := math.NaN(), 0
		for j, v := range x {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(best) || better(v, best) {
				best, k = v, j
			}
		}
		vals[i], index[i] = best, float64(k+1)
	}
	return []value.Value{value.NewMatrix(rows, cols, vals), value.NewMatrix(rows, cols, index)}
}

// cumulativeDim returns the dimension a cumulative function runs along by
// default: along a row vector, otherwise down the columns.
func cumulativeDim(m *value.Matrix) int {
	if m.Rows() == 1 {
		return 2
	}
	return 1
}

// cumulative registers a builtin such as cumsum(x) or cumsum(x, dim),
// which returns the running combination along a dimension.
func cumulative(name string, fn func(acc, x float64) float64) {
	register(name, func(_ value.Context, args []value.Value) value.Value {
		nargs(name, args, 1, 2)
		m := value.ToMatrix(name, args[0])
		dim := dimArg(name, args, 1)
		if dim == 0 {
			dim = cumulativeDim(m)
		}
		out := m.Copy()
		data := out.Data()
		rows, cols := m.Size()
		if dim == 1 {
			for j := range cols {
				for i := 1; i < rows; i++ {
					data[i*cols+j] = fn(data[(i-1)*cols+j], data[i*cols+j])
				}
			}
			return out
		}
		for i := range rows {
			for j := 1; j < cols; j++ {
				data[i*cols+j] = fn(data[i*cols+j-1], data[i*cols+j])
			}
		}
		return out
	})
}

// diff(x)
// diff(x, n)
// Differences between adjacent elements, applied n times.
func diff(_ value.Context, args []value.Value) value.Value {
	nargs("diff", args, 1, 2)
	m := value.ToMatrix("diff", args[0])
	n := 1
	if len(args) == 2 {
		n = value.ToInt("diff order", args[1])
	}
	for ; n > 0; n-- {
		rows, cols := m.Size()
		if cumulativeDim(m) == 2 {
			if cols == 0 {
				return value.Zeros(rows, 0)
			}
			out := value.Zeros(rows, cols-1)
			for j := 0; j < cols-1; j++ {
				out.Data()[j] = m.At(0, j+1) - m.At(0, j)
			}
			m = out
			continue
		}
		if rows == 0 {
			return value.Zeros(0, cols)
		}
		out := value.Zeros(rows-1, cols)
		for i := 0; i < rows-1; i++ {
			for j := range cols {
				out.Data()[i*cols+j] = m.At(i+1, j) - m.At(i, j)
			}
		}
		m = out
	}
	return m
}

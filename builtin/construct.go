// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"math"

	"matfree.dev/matfree/value"
)

func init() {
	register("zeros", func(_ value.Context, args []value.Value) value.Value {
		return value.Zeros(sizeArgs("zeros", args))
	})
	register("ones", func(_ value.Context, args []value.Value) value.Value {
		rows, cols := sizeArgs("ones", args)
		return value.Filled(rows, cols, 1)
	})
	register("eye", func(_ value.Context, args []value.Value) value.Value {
		return value.Identity(sizeArgs("eye", args))
	})
	register("rand", func(c value.Context, args []value.Value) value.Value {
		rows, cols := sizeArgs("rand", args)
		r := c.Config().Random()
		return value.Zeros(rows, cols).Map(func(float64) float64 { return r.Float64() })
	})
	register("randn", func(c value.Context, args []value.Value) value.Value {
		rows, cols := sizeArgs("randn", args)
		r := c.Config().Random()
		return value.Zeros(rows, cols).Map(func(float64) float64 { return r.NormFloat64() })
	})
	register("randi", randi)
	register("rng", func(c value.Context, args []value.Value) value.Value {
		nargs("rng", args, 1, 1)
		if s, ok := args[0].(value.String); ok && s == "shuffle" {
			c.Config().SetRandomSeed(int64(math.Float64bits(c.Config().Random().Float64())))
			return nil
		}
		c.Config().SetRandomSeed(int64(value.ToInt("rng seed", args[0])))
		return nil
	})
	register("linspace", linspace)
	register("logspace", func(c value.Context, args []value.Value) value.Value {
		nargs("logspace", args, 2, 3)
		if len(args) == 2 {
			args = append(args, value.Scalar(50))
		}
		return linspace(c, args).(*value.Matrix).Map(func(x float64) float64 { return math.Pow(10, x) })
	})
	register("colon", func(_ value.Context, args []value.Value) value.Value {
		nargs("colon", args, 2, 3)
		start := value.ToFloat("colon", args[0])
		stop := value.ToFloat("colon", args[len(args)-1])
		step := 1.0
		if len(args) == 3 {
			step = value.ToFloat("colon", args[1])
		}
		return value.Range(start, step, stop)
	})
	register("magic", magic)
	register("repmat", repmat)
	register("reshape", reshape)
	register("diag", diag)
	register("horzcat", func(_ value.Context, args []value.Value) value.Value {
		return value.HorzCat(args)
	})
	register("vertcat", func(_ value.Context, args []value.Value) value.Value {
		return value.VertCat(args)
	})
	register("cat", func(_ value.Context, args []value.Value) value.Value {
		nargs("cat", args, 1, -1)
		if dimArg("cat", args, 0) == 1 {
			return value.VertCat(args[1:])
		}
		return value.HorzCat(args[1:])
	})
	for _, name := range []string{"transpose", "ctranspose"} {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 1, 1)
			return value.Transpose(args[0])
		})
	}
	registerMulti("size", size)
	register("numel", func(_ value.Context, args []value.Value) value.Value {
		nargs("numel", args, 1, 1)
		return value.Scalar(float64(value.Numel(args[0])))
	})
	register("length", func(_ value.Context, args []value.Value) value.Value {
		nargs("length", args, 1, 1)
		if value.IsEmpty(args[0]) {
			return value.Scalar(0)
		}
		rows, cols := args[0].Size()
		return value.Scalar(float64(max(rows, cols)))
	})
	register("ndims", func(_ value.Context, args []value.Value) value.Value {
		nargs("ndims", args, 1, 1)
		return value.Scalar(2)
	})
}

// size(x) returns [rows cols]; size(x, dim) one of them; [r, c] = size(x)
// each in its own output.
func size(_ value.Context, args []value.Value, nargout int) []value.Value {
	nargs("size", args, 1, 2)
	rows, cols := args[0].Size()
	if len(args) == 2 {
		d := value.ToInt("size dimension", args[1])
		switch {
		case d < 1:
			value.Errorf(value.InvalidArgument, "size: dimension must be a positive integer")
		case d == 1:
			return []value.Value{value.Scalar(float64(rows))}
		case d == 2:
			return []value.Value{value.Scalar(float64(cols))}
		}
		return []value.Value{value.Scalar(1)}
	}
	if nargout <= 1 {
		return []value.Value{value.RowVector([]float64{float64(rows), float64(cols)})}
	}
	out := []value.Value{value.Scalar(float64(rows)), value.Scalar(float64(cols))}
	for len(out) < nargout {
		out = append(out, value.Scalar(1))
	}
	return out
}

// linspace(a, b)
// linspace(a, b, n)
// n points, 100 by default, evenly spaced from a to b inclusive.
func linspace(_ value.Context, args []value.Value) value.Value {
	nargs("linspace", args, 2, 3)
	a := value.ToFloat("linspace", args[0])
	b := value.ToFloat("linspace", args[1])
	n := 100
	if len(args) == 3 {
		n = int(math.Floor(value.ToFloat("linspace", args[2])))
	}
	if n < 1 {
		return value.Zeros(1, 0)
	}
	if n == 1 {
		return value.Scalar(b)
	}
	data := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range data {
		data[i] = a + float64(i)*step
	}
	data[n-1] = b
	return value.RowVector(data)
}

// randi(imax, ...)
// randi([imin imax], ...)
// Uniformly distributed random integers.
func randi(c value.Context, args []value.Value) value.Value {
	nargs("randi", args, 1, 3)
	bounds := value.ToMatrix("randi", args[0])
	lo, hi := 1, 0
	switch bounds.Numel() {
	case 1:
		hi = value.ToInt("randi", bounds)
	case 2:
		lo = value.ToInt("randi", value.Scalar(bounds.Linear(0)))
		hi = value.ToInt("randi", value.Scalar(bounds.Linear(1)))
	default:
		value.Errorf(value.InvalidArgument, "randi: range must be a scalar or a two-element vector")
	}
	if hi < lo {
		value.Errorf(value.InvalidArgument, "randi: empty range %d to %d", lo, hi)
	}
	rows, cols := sizeArgs("randi", args[1:])
	r := c.Config().Random()
	return value.Zeros(rows, cols).Map(func(float64) float64 {
		return float64(lo + r.Intn(hi-lo+1))
	})
}

// magic(n) returns an n by n magic square.
func magic(_ value.Context, args []value.Value) value.Value {
	nargs("magic", args, 1, 1)
	n := value.ToInt("magic", args[0])
	if n < 1 {
		return value.Zeros(0, 0)
	}
	return value.NewMatrix(n, n, magicSquare(n))
}

// magicSquare returns a magic square in row-major order, built the same
// way for odd, doubly even and singly even orders as MATLAB does, so the
// squares agree.
func magicSquare(n int) []float64 {
	m := make([]float64, n*n)
	switch {
	case n == 2:
		return []float64{4, 3, 1, 2}
	case n%2 == 1:
		for i := 1; i <= n; i++ {
			for j := 1; j <= n; j++ {
				a := modInt(i+j-(n+3)/2, n)
				b := modInt(i+2*j-2, n)
				m[(i-1)*n+j-1] = float64(n*a + b + 1)
			}
		}
	case n%4 == 0:
		for i := 1; i <= n; i++ {
			for j := 1; j <= n; j++ {
				x := (i-1)*n + j
				if (i%4)/2 == (j%4)/2 {
					x = n*n + 1 - x
				}
				m[(i-1)*n+j-1] = float64(x)
			}
		}
	default:
		p := n / 2
		a := magicSquare(p)
		pp := float64(p * p)
		for i := 0; i < p; i++ {
			for j := 0; j < p; j++ {
				x := a[i*p+j]
				m[i*n+j] = x
				m[i*n+j+p] = x + 2*pp
				m[(i+p)*n+j] = x + 3*pp
				m[(i+p)*n+j+p] = x + pp
			}
		}
		k := (n - 2) / 4
		var cols []int
		for j := 0; j < k; j++ {
			cols = append(cols, j)
		}
		for j := n - k + 1; j < n; j++ {
			cols = append(cols, j)
		}
		swap := func(i, j int) {
			m[i*n+j], m[(i+p)*n+j] = m[(i+p)*n+j], m[i*n+j]
		}
		for i := 0; i < p; i++ {
			for _, j := range cols {
				swap(i, j)
			}
		}
		swap(k, 0)
		swap(k, k)
	}
	return m
}

func modInt(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}

// repmat(a, m, n)
// repmat(a, [m n])
// Tiles a m times vertically and n times horizontally.
func repmat(_ value.Context, args []value.Value) value.Value {
	nargs("repmat", args, 2, 3)
	m, n := sizeArgs("repmat", args[1:])
	row := make([]value.Value, n)
	for i := range row {
		row[i] = args[0]
	}
	tile := value.HorzCat(row)
	if m == 1 {
		return tile
	}
	col := make([]value.Value, m)
	for i := range col {
		col[i] = tile
	}
	return value.VertCat(col)
}

// reshape(a, r, c)
// reshape(a, [r c])
// One of r and c may be [] to have it computed.
func reshape(_ value.Context, args []value.Value) value.Value {
	nargs("reshape", args, 2, 3)
	n := value.Numel(args[0])
	var rows, cols int
	if len(args) == 2 {
		rows, cols = sizeArgs("reshape", args[1:])
	} else {
		switch {
		case value.IsEmpty(args[1]) && value.IsEmpty(args[2]):
			value.Errorf(value.InvalidArgument, "reshape: only one size may be []")
		case value.IsEmpty(args[1]):
			cols = value.ToInt("reshape", args[2])
			if cols == 0 || n%cols != 0 {
				value.Errorf(value.DimensionMismatch, "reshape: %d elements do not divide into %d columns", n, cols)
			}
			rows = n / cols
		case value.IsEmpty(args[2]):
			rows = value.ToInt("reshape", args[1])
			if rows == 0 || n%rows != 0 {
				value.Errorf(value.DimensionMismatch, "reshape: %d elements do not divide into %d rows", n, rows)
			}
			cols = n / rows
		default:
			rows, cols = sizeArgs("reshape", args[1:])
		}
	}
	switch v := args[0].(type) {
	case *value.Cell:
		return v.Reshape(rows, cols)
	case value.Logical:
		return value.Logical{Matrix: v.Reshape(rows, cols)}
	case value.String:
		if rows != 1 {
			value.Errorf(value.TypeError, "reshape: strings must stay a single row")
		}
		return v
	}
	return value.ToMatrix("reshape", args[0]).Reshape(rows, cols)
}

// diag(v) is the square matrix with v on its diagonal; diag(A) is the
// diagonal of A as a column. An optional k selects the kth diagonal above
// (k > 0) or below (k < 0) the main one.
func diag(_ value.Context, args []value.Value) value.Value {
	nargs("diag", args, 1, 2)
	m := value.ToMatrix("diag", args[0])
	k := 0
	if len(args) == 2 {
		k = value.ToInt("diag", args[1])
	}
	if m.IsVector() && !m.IsEmpty() {
		n := m.Numel() + abs(k)
		out := value.Zeros(n, n)
		for i := range m.Numel() {
			r, c := i, i
			if k > 0 {
				c += k
			} else {
				r -= k
			}
			out.Data()[r*n+c] = m.Linear(i)
		}
		return out
	}
	rows, cols := m.Size()
	var data []float64
	for i := 0; i < rows; i++ {
		j := i + k
		if j >= 0 && j < cols {
			data = append(data, m.At(i, j))
		}
	}
	return value.ColVector(data)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"matfree.dev/matfree/value"
)

func init() {
	register("var", func(_ value.Context, args []value.Value) value.Value {
		return spread("var", args, false)
	})
	register("std", func(_ value.Context, args []value.Value) value.Value {
		return spread("std", args, true)
	})
	reduction("median", median)
	reduction("mode", mode)
	register("cov", cov)
	register("corrcoef", corrcoef)
}

// spread implements var and std:
//
//	var(x)
//	var(x, w)       w = 0 normalizes by n-1, w = 1 by n
//	var(x, w, dim)
func spread(name string, args []value.Value, root bool) value.Value {
	nargs(name, args, 1, 3)
	population := false
	if len(args) >= 2 && !value.IsEmpty(args[1]) {
		switch w := value.ToFloat(name, args[1]); w {
		case 0:
		case 1:
			population = true
		default:
			value.Errorf(value.InvalidArgument, "%s: weight must be 0 or 1", name)
		}
	}
	return reduce(value.ToMatrix(name, args[0]), dimArg(name, args, 2), func(x []float64) float64 {
		n := float64(len(x))
		var v float64
		switch len(x) {
		case 0:
			return math.NaN()
		case 1:
			v = 0
		default:
			v = stat.Variance(x, nil)
			if population {
				v = v * (n - 1) / n
			}
		}
		if root {
			return math.Sqrt(v)
		}
		return v
	})
}

func sorted(x []float64) []float64 {
	s := append([]float64(nil), x...)
	sort.Float64s(s)
	return s
}

// median returns the middle value, or the mean of the two middle values.
// NaN anywhere makes the result NaN.
func median(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	for _, v := range x {
		if math.IsNaN(v) {
			return math.NaN()
		}
	}
	s := sorted(x)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return stat.Mean(s[n/2-1:n/2+1], nil)
}

// mode returns the most frequent value, the smallest of any ties.
func mode(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	s := sorted(x)
	best, bestCount := s[0], 0
	for i := 0; i < len(s); {
		j := i
		for j < len(s) && s[j] == s[i] {
			j++
		}
		if j-i > bestCount {
			best, bestCount = s[i], j-i
		}
		i = max(j, i+1)
	}
	return best
}

// observations returns the data of cov and corrcoef as a gonum matrix
// whose columns are variables: a vector is one variable, and two vectors
// are two.
func observations(name string, args []value.Value) *mat.Dense {
	nargs(name, args, 1, 2)
	x := value.ToMatrix(name, args[0])
	if len(args) == 2 {
		y := value.ToMatrix(name, args[1])
		if x.Numel() != y.Numel() {
			value.Errorf(value.DimensionMismatch, "%s: arguments must have the same number of elements", name)
		}
		x = value.NewMatrix(2, x.Numel(), append(x.ColumnMajor(), y.ColumnMajor()...)).Transpose()
	} else if x.IsVector() {
		x = value.ColVector(x.ColumnMajor())
	}
	if x.Rows() < 2 {
		value.Errorf(value.InvalidArgument, "%s: need at least two observations", name)
	}
	return toDense(x)
}

// cov(x) is the variance of a vector or the covariance matrix of the
// columns of a matrix; cov(x, y) is the covariance matrix of two vectors.
func cov(_ value.Context, args []value.Value) value.Value {
	d := observations("cov", args)
	var c mat.SymDense
	stat.CovarianceMatrix(&c, d, nil)
	if n, _ := c.Dims(); n == 1 {
		return value.Scalar(c.At(0, 0))
	}
	return fromMat(&c)
}

// corrcoef is cov normalized to correlation coefficients.
func corrcoef(_ value.Context, args []value.Value) value.Value {
	d := observations("corrcoef", args)
	var c mat.SymDense
	stat.CorrelationMatrix(&c, d, nil)
	if n, _ := c.Dims(); n == 1 {
		return value.Scalar(1)
	}
	return fromMat(&c)
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"matfree.dev/matfree/value"
)

func init() {
	register("det", func(_ value.Context, args []value.Value) value.Value {
		nargs("det", args, 1, 1)
		return value.Scalar(value.Det(value.ToMatrix("det", args[0])))
	})
	register("inv", func(c value.Context, args []value.Value) value.Value {
		nargs("inv", args, 1, 1)
		return value.Inverse(c, value.ToMatrix("inv", args[0]))
	})
	register("pinv", func(_ value.Context, args []value.Value) value.Value {
		nargs("pinv", args, 1, 1)
		return value.PseudoInverse(value.ToMatrix("pinv", args[0]))
	})
	register("rank", func(_ value.Context, args []value.Value) value.Value {
		nargs("rank", args, 1, 1)
		return value.Scalar(float64(value.Rank(value.ToMatrix("rank", args[0]))))
	})
	register("svd", func(_ value.Context, args []value.Value) value.Value {
		nargs("svd", args, 1, 1)
		return value.ColVector(value.SingularValues(value.ToMatrix("svd", args[0])))
	})
	register("trace", trace)
	register("norm", norm)
	register("dot", dot)
	register("cross", cross)
	register("kron", kron)
	register("chol", chol)
	registerMulti("eig", eig)
	registerMulti("qr", qr)
}

// toDense converts m, which must not be empty, to a gonum matrix.
func toDense(m *value.Matrix) *mat.Dense {
	rows, cols := m.Size()
	return mat.NewDense(rows, cols, m.Copy().Data())
}

// fromMat converts a gonum matrix back.
func fromMat(a mat.Matrix) *value.Matrix {
	rows, cols := a.Dims()
	out := value.Zeros(rows, cols)
	data := out.Data()
	for i := range rows {
		for j := range cols {
			data[i*cols+j] = a.At(i, j)
		}
	}
	return out
}

func squareArg(name string, m *value.Matrix) {
	if rows, cols := m.Size(); rows != cols {
		value.Errorf(value.DimensionMismatch, "%s requires a square matrix; got %dx%d", name, rows, cols)
	}
}

func trace(_ value.Context, args []value.Value) value.Value {
	nargs("trace", args, 1, 1)
	m := value.ToMatrix("trace", args[0])
	squareArg("trace", m)
	if m.IsEmpty() {
		return value.Scalar(0)
	}
	return value.Scalar(mat.Trace(toDense(m)))
}

// norm(x)
// norm(x, p)
// For a vector, the p-norm (2 by default; Inf and -Inf are the largest
// and smallest magnitudes). For a matrix, the 2-norm is the largest
// singular value; 1, Inf and 'fro' are also accepted.
func norm(_ value.Context, args []value.Value) value.Value {
	nargs("norm", args, 1, 2)
	m := value.ToMatrix("norm", args[0])
	p, fro := 2.0, false
	if len(args) == 2 {
		if s, ok := args[1].(value.String); ok {
			if strings.ToLower(string(s)) != "fro" {
				value.Errorf(value.InvalidArgument, "norm: unknown norm type %q", string(s))
			}
			fro = true
		} else {
			p = value.ToFloat("norm", args[1])
		}
	}
	if m.IsEmpty() {
		return value.Scalar(0)
	}
	if m.IsVector() {
		data := m.Data()
		switch {
		case fro:
			return value.Scalar(floats.Norm(data, 2))
		case math.IsInf(p, -1):
			least := math.Inf(1)
			for _, x := range data {
				least = math.Min(least, math.Abs(x))
			}
			return value.Scalar(least)
		case p <= 0:
			value.Errorf(value.InvalidArgument, "norm: p must be positive")
		}
		return value.Scalar(floats.Norm(data, p))
	}
	switch {
	case fro:
		return value.Scalar(mat.Norm(toDense(m), 2))
	case p == 2:
		return value.Scalar(value.SingularValues(m)[0])
	case p == 1 || math.IsInf(p, 1):
		return value.Scalar(mat.Norm(toDense(m), p))
	}
	value.Errorf(value.InvalidArgument, "norm: matrix norm must be 1, 2, Inf or 'fro'")
	return nil
}

// dot(a, b) is the scalar product of two vectors of the same length.
func dot(_ value.Context, args []value.Value) value.Value {
	nargs("dot", args, 2, 2)
	a := value.ToMatrix("dot", args[0])
	b := value.ToMatrix("dot", args[1])
	if !a.IsVector() || !b.IsVector() || a.Numel() != b.Numel() {
		value.Errorf(value.DimensionMismatch, "dot: arguments must be vectors of the same length")
	}
	return value.Scalar(floats.Dot(a.Data(), b.Data()))
}

// cross(a, b) is the cross product of two three-element vectors.
func cross(_ value.Context, args []value.Value) value.Value {
	nargs("cross", args, 2, 2)
	a := value.ToMatrix("cross", args[0])
	b := value.ToMatrix("cross", args[1])
	if a.Numel() != 3 || b.Numel() != 3 {
		value.Errorf(value.DimensionMismatch, "cross: arguments must be vectors of length 3")
	}
	x, y := a.Data(), b.Data()
	out := []float64{
		x[1]*y[2] - x[2]*y[1],
		x[2]*y[0] - x[0]*y[2],
		x[0]*y[1] - x[1]*y[0],
	}
	if a.Rows() == 3 {
		return value.ColVector(out)
	}
	return value.RowVector(out)
}

// kron(a, b) is the Kronecker product.
func kron(_ value.Context, args []value.Value) value.Value {
	nargs("kron", args, 2, 2)
	a := value.ToMatrix("kron", args[0])
	b := value.ToMatrix("kron", args[1])
	if a.IsEmpty() || b.IsEmpty() {
		return value.Zeros(a.Rows()*b.Rows(), a.Cols()*b.Cols())
	}
	var k mat.Dense
	k.Kronecker(toDense(a), toDense(b))
	return fromMat(&k)
}

// symmetric reports whether m equals its transpose.
func symmetric(m *value.Matrix) bool {
	rows, cols := m.Size()
	if rows != cols {
		return false
	}
	for i := range rows {
		for j := range i {
			if m.At(i, j) != m.At(j, i) {
				return false
			}
		}
	}
	return true
}

// chol(A) returns the upper triangular R with R'*R = A for a symmetric
// positive definite A.
func chol(_ value.Context, args []value.Value) value.Value {
	nargs("chol", args, 1, 1)
	m := value.ToMatrix("chol", args[0])
	squareArg("chol", m)
	if m.IsEmpty() {
		return value.Zeros(0, 0)
	}
	if !symmetric(m) {
		value.Errorf(value.InvalidArgument, "chol: matrix must be symmetric")
	}
	var ch mat.Cholesky
	if !ch.Factorize(mat.NewSymDense(m.Rows(), m.Copy().Data())) {
		value.Errorf(value.InvalidArgument, "chol: matrix must be positive definite")
	}
	var u mat.TriDense
	ch.UTo(&u)
	return fromMat(&u)
}

// eig(A) returns the eigenvalues of A as a column; [V, D] = eig(A) also
// returns the eigenvectors as the columns of V with the eigenvalues on the
// diagonal of D. Complex eigenvalues are an error.
func eig(_ value.Context, args []value.Value, nargout int) []value.Value {
	nargs("eig", args, 1, 1)
	m := value.ToMatrix("eig", args[0])
	squareArg("eig", m)
	if m.IsEmpty() {
		return []value.Value{value.Zeros(0, 1), value.Zeros(0, 0)}
	}
	var vals []float64
	var vecs *value.Matrix
	if symmetric(m) {
		vals, vecs = value.SymmetricEigenvalues(m)
	} else {
		vals, vecs = generalEigen(m, nargout > 1)
	}
	if nargout <= 1 {
		return []value.Value{value.ColVector(vals)}
	}
	d := value.Zeros(len(vals), len(vals))
	for i, x := range vals {
		d.Data()[i*len(vals)+i] = x
	}
	return []value.Value{vecs, d}
}

// generalEigen computes the eigen decomposition of a non-symmetric matrix.
func generalEigen(m *value.Matrix, vectors bool) ([]float64, *value.Matrix) {
	kind := mat.EigenNone
	if vectors {
		kind = mat.EigenRight
	}
	var e mat.Eigen
	if !e.Factorize(toDense(m), kind) {
		value.Errorf(value.InvalidArgument, "eig: decomposition failed to converge")
	}
	cvals := e.Values(nil)
	vals := make([]float64, len(cvals))
	for i, z := range cvals {
		if math.Abs(imag(z)) > 1e3*value.Eps()*math.Max(1, math.Abs(real(z))) {
			value.Errorf(value.TypeError, "complex numbers are not supported: eig has complex eigenvalues")
		}
		vals[i] = real(z)
	}
	if !vectors {
		return vals, nil
	}
	var cv mat.CDense
	e.VectorsTo(&cv)
	rows, cols := cv.Dims()
	vecs := value.Zeros(rows, cols)
	for i := range rows {
		for j := range cols {
			vecs.Data()[i*cols+j] = real(cv.At(i, j))
		}
	}
	return vals, vecs
}

// [Q, R] = qr(A) factors A, which must have at least as many rows as
// columns, into an orthogonal Q and upper triangular R.
func qr(_ value.Context, args []value.Value, nargout int) []value.Value {
	nargs("qr", args, 1, 1)
	m := value.ToMatrix("qr", args[0])
	rows, cols := m.Size()
	if rows < cols || m.IsEmpty() {
		value.Errorf(value.InvalidArgument, "qr: matrix must be nonempty with at least as many rows as columns")
	}
	var f mat.QR
	f.Factorize(toDense(m))
	var q, r mat.Dense
	f.QTo(&q)
	f.RTo(&r)
	if nargout <= 1 {
		return []value.Value{fromMat(&r)}
	}
	return []value.Value{fromMat(&q), fromMat(&r)}
}

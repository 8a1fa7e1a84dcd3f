// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// dense converts m to a gonum matrix. m must not be empty.
func dense(m *Matrix) *mat.Dense {
	return mat.NewDense(m.rows, m.cols, m.Copy().data)
}

// fromDense converts a gonum matrix back.
func fromDense(d mat.Matrix) *Matrix {
	r, c := d.Dims()
	m := Zeros(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.data[i*c+j] = d.At(i, j)
		}
	}
	return m
}

func warnSingular(c Context, err error) {
	var cond mat.Condition
	if errors.As(err, &cond) && !math.IsInf(float64(cond), 1) {
		Warnf(c, "Matrix is close to singular or badly scaled. Results may be inaccurate. RCOND = %g.", 1/float64(cond))
		return
	}
	Warnf(c, "Matrix is singular to working precision.")
}

// Solve returns x such that a*x = b: the exact solution for a square
// system and the least-squares solution otherwise.
func Solve(c Context, a, b *Matrix) *Matrix {
	if a.rows != b.rows {
		Errorf(DimensionMismatch, "matrix dimensions must agree for '\\': %s vs %s", shapeString(a), shapeString(b))
	}
	if a.IsEmpty() || b.IsEmpty() {
		return Zeros(a.cols, b.cols)
	}
	var x mat.Dense
	err := x.Solve(dense(a), dense(b))
	switch {
	case err == nil:
		return fromDense(&x)
	case errors.Is(err, mat.ErrSingular):
		warnSingular(c, err)
		return Filled(a.cols, b.cols, math.Inf(1))
	}
	var cond mat.Condition
	if !errors.As(err, &cond) {
		Errorf(InvalidArgument, "linear solve failed: %v", err)
	}
	warnSingular(c, err)
	if r, _ := x.Dims(); r == 0 {
		return Filled(a.cols, b.cols, math.Inf(1))
	}
	return fromDense(&x)
}

func square(what string, m *Matrix) {
	if m.rows != m.cols {
		Errorf(DimensionMismatch, "%s requires a square matrix; got %s", what, shapeString(m))
	}
}

// Inverse returns the inverse of a square matrix.
func Inverse(c Context, m *Matrix) *Matrix {
	square("inv", m)
	if m.IsEmpty() {
		return Zeros(0, 0)
	}
	var inv mat.Dense
	err := inv.Inverse(dense(m))
	if err == nil {
		return fromDense(&inv)
	}
	var cond mat.Condition
	if !errors.As(err, &cond) && !errors.Is(err, mat.ErrSingular) {
		Errorf(InvalidArgument, "inv: %v", err)
	}
	warnSingular(c, err)
	if errors.Is(err, mat.ErrSingular) || math.IsInf(float64(cond), 1) {
		return Filled(m.rows, m.cols, math.Inf(1))
	}
	return fromDense(&inv)
}

// Det returns the determinant of a square matrix.
func Det(m *Matrix) float64 {
	square("det", m)
	if m.IsEmpty() {
		return 1
	}
	return mat.Det(dense(m))
}

// SingularValues returns the singular values of m in decreasing order.
func SingularValues(m *Matrix) []float64 {
	if m.IsEmpty() {
		return nil
	}
	var svd mat.SVD
	if !svd.Factorize(dense(m), mat.SVDNone) {
		Errorf(InvalidArgument, "singular value decomposition failed to converge")
	}
	return svd.Values(nil)
}

// Rank returns the number of singular values above the default tolerance.
func Rank(m *Matrix) int {
	s := SingularValues(m)
	if len(s) == 0 {
		return 0
	}
	tol := float64(max(m.rows, m.cols)) * s[0] * eps
	n := 0
	for _, x := range s {
		if x > tol {
			n++
		}
	}
	return n
}

// eps is the spacing of float64 values near 1.
var eps = math.Nextafter(1, 2) - 1

// Eps returns the spacing of float64 values near 1.
func Eps() float64 { return eps }

// PseudoInverse returns the Moore-Penrose pseudoinverse of m.
func PseudoInverse(m *Matrix) *Matrix {
	if m.IsEmpty() {
		return Zeros(m.cols, m.rows)
	}
	var svd mat.SVD
	if !svd.Factorize(dense(m), mat.SVDThin) {
		Errorf(InvalidArgument, "singular value decomposition failed to converge")
	}
	s := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	tol := float64(max(m.rows, m.cols)) * s[0] * eps
	// pinv = V * diag(1/s) * U'.
	sinv := mat.NewDense(len(s), len(s), nil)
	for i, x := range s {
		if x > tol {
			sinv.Set(i, i, 1/x)
		}
	}
	var vs, out mat.Dense
	vs.Mul(&v, sinv)
	out.Mul(&vs, u.T())
	return fromDense(&out)
}

// SymmetricEigenvalues returns the eigenvalues of a symmetric matrix in
// ascending order, and the eigenvectors as columns.
func SymmetricEigenvalues(m *Matrix) ([]float64, *Matrix) {
	square("eig", m)
	if m.IsEmpty() {
		return nil, Zeros(0, 0)
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < i; j++ {
			if m.At(i, j) != m.At(j, i) {
				Errorf(InvalidArgument, "eig supports only symmetric matrices")
			}
		}
	}
	sym := mat.NewSymDense(m.rows, m.Copy().data)
	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		Errorf(InvalidArgument, "eigenvalue decomposition failed to converge")
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	return eig.Values(nil), fromDense(&vecs)
}

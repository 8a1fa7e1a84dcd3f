// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"matfree.dev/matfree/config"
)

type testContext struct {
	conf config.Config
}

func (c *testContext) Config() *config.Config { return &c.conf }

func (c *testContext) Call(fn Value, args []Value, nargout int) []Value {
	panic("unexpected call")
}

func newTestContext() (*testContext, *bytes.Buffer) {
	c := new(testContext)
	var errs bytes.Buffer
	c.conf.SetErrOutput(&errs)
	c.conf.SetOutput(&bytes.Buffer{})
	return c, &errs
}

func mkmat(rows, cols int, data ...float64) *Matrix {
	return NewMatrix(rows, cols, data)
}

func num(v Value) *Matrix {
	m, ok := Numeric(v)
	if !ok {
		panic("not numeric")
	}
	return m
}

func sameMatrix(a, b *Matrix) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.data {
		if math.Abs(a.data[i]-b.data[i]) > 1e-9 {
			return false
		}
	}
	return true
}

// expectError runs fn and reports whether it raised an Error of the given kind.
func expectError(t *testing.T, kind ErrKind, what string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		e := recover()
		if e == nil {
			t.Errorf("%s: no error", what)
			return
		}
		err, ok := e.(Error)
		if !ok {
			t.Errorf("%s: unexpected panic %v", what, e)
			return
		}
		if err.Kind != kind {
			t.Errorf("%s: got %s (%q), want %s", what, err.Kind, err.Msg, kind)
		}
	}()
	fn()
}

func TestBroadcast(t *testing.T) {
	c, _ := newTestContext()
	a := mkmat(2, 3, 1, 2, 3, 4, 5, 6)
	shapes := []*Matrix{
		mkmat(2, 3, 6, 5, 4, 3, 2, 1),
		mkmat(1, 3, 10, 20, 30),
		mkmat(2, 1, 100, 200),
		Scalar(2),
	}
	for _, op := range []string{"+", "-", ".*", "./", ".^"} {
		fn := arith[op]
		for _, b := range shapes {
			got := num(Binary(c, a, op, b))
			if got.rows != 2 || got.cols != 3 {
				t.Fatalf("%s: result is %s", op, shapeString(got))
			}
			for i := 0; i < 2; i++ {
				for j := 0; j < 3; j++ {
					bi, bj := i, j
					if b.rows == 1 {
						bi = 0
					}
					if b.cols == 1 {
						bj = 0
					}
					want := fn(a.At(i, j), b.At(bi, bj))
					if got.At(i, j) != want {
						t.Errorf("%s with %s at (%d,%d): got %g want %g", op, shapeString(b), i, j, got.At(i, j), want)
					}
				}
			}
		}
	}
}

func TestBroadcastMismatch(t *testing.T) {
	c, _ := newTestContext()
	defer func() {
		err, ok := recover().(Error)
		if !ok || err.Kind != DimensionMismatch {
			t.Fatalf("got %v", err)
		}
		if !strings.Contains(err.Msg, "2x3") || !strings.Contains(err.Msg, "3x2") {
			t.Errorf("message does not name both shapes: %q", err.Msg)
		}
	}()
	Binary(c, Zeros(2, 3), "+", Zeros(3, 2))
}

func TestMatMul(t *testing.T) {
	c, _ := newTestContext()
	a := mkmat(2, 2, 1, 2, 3, 4)
	got := num(Binary(c, a, "*", a))
	if !sameMatrix(got, mkmat(2, 2, 7, 10, 15, 22)) {
		t.Errorf("a*a = %v", got.data)
	}
	got = num(Binary(c, Scalar(3), "*", a))
	if !sameMatrix(got, mkmat(2, 2, 3, 6, 9, 12)) {
		t.Errorf("3*a = %v", got.data)
	}
	expectError(t, DimensionMismatch, "2x3 * 2x3", func() {
		Binary(c, Zeros(2, 3), "*", Zeros(2, 3))
	})
	got = num(Binary(c, a, "^", Scalar(2)))
	if !sameMatrix(got, mkmat(2, 2, 7, 10, 15, 22)) {
		t.Errorf("a^2 = %v", got.data)
	}
	got = num(Binary(c, a, "^", Scalar(-1)))
	if !sameMatrix(got, mkmat(2, 2, -2, 1, 1.5, -0.5)) {
		t.Errorf("a^-1 = %v", got.data)
	}
}

func TestTransposeInvolutive(t *testing.T) {
	for _, m := range []*Matrix{mkmat(2, 3, 1, 2, 3, 4, 5, 6), mkmat(1, 4, 1, 2, 3, 4), Scalar(7), Zeros(0, 3)} {
		tt := Transpose(Transpose(m)).(*Matrix)
		if !sameMatrix(m, tt) {
			t.Errorf("transpose twice of %s changed it", shapeString(m))
		}
	}
	if got := mkmat(2, 3, 1, 2, 3, 4, 5, 6).Transpose(); !sameMatrix(got, mkmat(3, 2, 1, 4, 2, 5, 3, 6)) {
		t.Errorf("transpose = %v", got.data)
	}
}

func TestDetAndSolve(t *testing.T) {
	c, errs := newTestContext()
	a := mkmat(2, 2, 1, 2, 3, 4)
	if d := Det(a); math.Abs(d+2) > 1e-12 {
		t.Errorf("det = %g, want -2", d)
	}
	x := num(Binary(c, a, "\\", mkmat(2, 1, 5, 11)))
	if !sameMatrix(x, mkmat(2, 1, 1, 2)) {
		t.Errorf("a\\b = %v", x.data)
	}
	y := num(Binary(c, mkmat(1, 2, 5, 11), "/", a))
	// y*a = [5 11]
	if !sameMatrix(MatMul(y, a), mkmat(1, 2, 5, 11)) {
		t.Errorf("b/a = %v", y.data)
	}
	// Overdetermined: least squares fit of a line through three points.
	ls := num(Binary(c, mkmat(3, 2, 1, 0, 1, 1, 1, 2), "\\", mkmat(3, 1, 1, 3, 5)))
	if !sameMatrix(ls, mkmat(2, 1, 1, 2)) {
		t.Errorf("least squares = %v", ls.data)
	}
	if errs.Len() != 0 {
		t.Errorf("unexpected warning %q", errs.String())
	}
	Binary(c, mkmat(2, 2, 1, 2, 2, 4), "\\", mkmat(2, 1, 1, 2))
	if !strings.Contains(errs.String(), "singular") {
		t.Errorf("no singular warning; got %q", errs.String())
	}
}

func TestInverseAndRank(t *testing.T) {
	c, _ := newTestContext()
	inv := Inverse(c, mkmat(2, 2, 4, 7, 2, 6))
	if !sameMatrix(inv, mkmat(2, 2, 0.6, -0.7, -0.2, 0.4)) {
		t.Errorf("inv = %v", inv.data)
	}
	if r := Rank(mkmat(2, 2, 1, 2, 2, 4)); r != 1 {
		t.Errorf("rank = %d", r)
	}
	if r := Rank(Identity(3, 3)); r != 3 {
		t.Errorf("rank(eye(3)) = %d", r)
	}
	p := PseudoInverse(mkmat(2, 2, 4, 7, 2, 6))
	if !sameMatrix(p, mkmat(2, 2, 0.6, -0.7, -0.2, 0.4)) {
		t.Errorf("pinv = %v", p.data)
	}
	vals, _ := SymmetricEigenvalues(mkmat(2, 2, 2, 1, 1, 2))
	if len(vals) != 2 || math.Abs(vals[0]-1) > 1e-9 || math.Abs(vals[1]-3) > 1e-9 {
		t.Errorf("eig = %v", vals)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		start, step, stop float64
		n                 int
		third             float64
	}{
		{1, 1, 5, 5, 3},
		{0, 0.5, 2, 5, 1},
		{0, 0.1, 1, 11, 0.2},
		{5, -1, 1, 5, 3},
		{1, 1, 0, 0, 0},
		{1, 2, 6, 3, 5},
	}
	for _, test := range tests {
		r := Range(test.start, test.step, test.stop)
		if r.rows != 1 || r.cols != test.n {
			t.Errorf("%g:%g:%g: size %s, want 1x%d", test.start, test.step, test.stop, shapeString(r), test.n)
			continue
		}
		if test.n >= 3 && math.Abs(r.data[2]-test.third) > 1e-12 {
			t.Errorf("%g:%g:%g: third element %g", test.start, test.step, test.stop, r.data[2])
		}
	}
	expectError(t, InvalidArgument, "zero step", func() { Range(1, 0, 5) })
}

func TestLinearGrowth(t *testing.T) {
	a := mkmat(1, 3, 1, 2, 3)
	got := num(AssignIndex(a, []Index{At(6)}, Scalar(9)))
	if !sameMatrix(got, mkmat(1, 6, 1, 2, 3, 0, 0, 9)) {
		t.Errorf("grow = %v (%s)", got.data, shapeString(got))
	}
	if !sameMatrix(a, mkmat(1, 3, 1, 2, 3)) {
		t.Errorf("original modified: %v", a.data)
	}
	got = num(AssignIndex(nil, []Index{At(3)}, Scalar(1)))
	if !sameMatrix(got, mkmat(1, 3, 0, 0, 1)) {
		t.Errorf("grow from unbound = %v (%s)", got.data, shapeString(got))
	}
	col := mkmat(2, 1, 1, 2)
	got = num(AssignIndex(col, []Index{At(4)}, Scalar(4)))
	if !sameMatrix(got, mkmat(4, 1, 1, 2, 0, 4)) {
		t.Errorf("column grow = %v (%s)", got.data, shapeString(got))
	}
	// A matrix becomes a row, keeping its elements in column-major order.
	a = mkmat(2, 2, 1, 2, 3, 4)
	got = num(AssignIndex(a, []Index{At(7)}, Scalar(1)))
	if !sameMatrix(got, mkmat(1, 7, 1, 3, 2, 4, 0, 0, 1)) {
		t.Errorf("matrix grow = %v (%s)", got.data, shapeString(got))
	}
	if !sameMatrix(a, mkmat(2, 2, 1, 2, 3, 4)) {
		t.Errorf("original modified: %v", a.data)
	}
}

func TestStructIndexAssign(t *testing.T) {
	s := NewStruct().With("b", Scalar(1))
	r := NewStruct().With("b", Scalar(2))
	got := AssignIndex(s, []Index{At(1)}, r)
	if got != Value(r) {
		t.Errorf("s(1) = r gave %v", got)
	}
	expectError(t, TypeError, "struct array", func() {
		AssignIndex(s, []Index{At(2)}, r)
	})
	expectError(t, TypeError, "struct array", func() {
		AssignIndex(s, []Index{At(1), At(3)}, r)
	})
}

func Test2DGrowth(t *testing.T) {
	a := mkmat(2, 2, 1, 2, 3, 4)
	got := num(AssignIndex(a, []Index{At(3), At(3)}, Scalar(9)))
	want := mkmat(3, 3, 1, 2, 0, 3, 4, 0, 0, 0, 9)
	if !sameMatrix(got, want) {
		t.Errorf("A(3,3)=9: got %v (%s)", got.data, shapeString(got))
	}
	got = num(AssignIndex(Empty{}, []Index{Colon, At(1)}, mkmat(3, 1, 1, 2, 3)))
	if !sameMatrix(got, mkmat(3, 1, 1, 2, 3)) {
		t.Errorf("A(:,1) = col: got %v (%s)", got.data, shapeString(got))
	}
	got = num(AssignIndex(a, []Index{At(2), Colon}, Scalar(0)))
	if !sameMatrix(got, mkmat(2, 2, 1, 2, 0, 0)) {
		t.Errorf("A(2,:)=0: got %v", got.data)
	}
	expectError(t, DimensionMismatch, "shape mismatch", func() {
		AssignIndex(a, []Index{Colon, Colon}, mkmat(1, 3, 1, 2, 3))
	})
}

func TestIndexing(t *testing.T) {
	a := mkmat(2, 3, 1, 2, 3, 4, 5, 6)
	// Linear indexing runs down the columns.
	if got := num(IndexValue(a, []Index{At(2)})); got.Float() != 4 {
		t.Errorf("a(2) = %v", got.data)
	}
	if got := num(IndexValue(a, []Index{Colon})); !sameMatrix(got, mkmat(6, 1, 1, 4, 2, 5, 3, 6)) {
		t.Errorf("a(:) = %v", got.data)
	}
	if got := num(IndexValue(a, []Index{Colon, At(2)})); !sameMatrix(got, mkmat(2, 1, 2, 5)) {
		t.Errorf("a(:,2) = %v", got.data)
	}
	row := mkmat(1, 5, 10, 20, 30, 40, 50)
	sel := Index{Val: mkmat(2, 1, 1, 3)}
	if got := num(IndexValue(row, []Index{sel})); !sameMatrix(got, mkmat(1, 2, 10, 30)) {
		t.Errorf("row([1;3]) = %v (%s)", got.data, shapeString(got))
	}
	mask := Index{Val: Binary(nil, row, ">", Scalar(25))}
	if got := num(IndexValue(row, []Index{mask})); !sameMatrix(got, mkmat(1, 3, 30, 40, 50)) {
		t.Errorf("logical index = %v", got.data)
	}
	expectError(t, IndexOutOfRange, "a(7)", func() { IndexValue(a, []Index{At(7)}) })
	expectError(t, IndexOutOfRange, "a(0)", func() { IndexValue(a, []Index{At(0)}) })
	expectError(t, InvalidArgument, "a(1.5)", func() { IndexValue(a, []Index{{Val: Scalar(1.5)}}) })
	if got := IndexValue(String("hello"), []Index{{Val: Range(2, 1, 4)}}); got != String("ell") {
		t.Errorf("substring = %v", got)
	}
}

func TestDeletion(t *testing.T) {
	row := mkmat(1, 5, 1, 2, 3, 4, 5)
	got := num(AssignIndex(row, []Index{{Val: mkmat(1, 2, 2, 4)}}, Empty{}))
	if !sameMatrix(got, mkmat(1, 3, 1, 3, 5)) {
		t.Errorf("delete = %v", got.data)
	}
	a := mkmat(3, 2, 1, 2, 3, 4, 5, 6)
	got = num(AssignIndex(a, []Index{At(2), Colon}, Empty{}))
	if !sameMatrix(got, mkmat(2, 2, 1, 2, 5, 6)) {
		t.Errorf("delete row = %v (%s)", got.data, shapeString(got))
	}
	got = num(AssignIndex(a, []Index{Colon, At(1)}, Empty{}))
	if !sameMatrix(got, mkmat(3, 1, 2, 4, 6)) {
		t.Errorf("delete column = %v (%s)", got.data, shapeString(got))
	}
	expectError(t, InvalidArgument, "delete element", func() {
		AssignIndex(a, []Index{At(1), At(1)}, Empty{})
	})
}

func TestCells(t *testing.T) {
	c := AssignCell(nil, []Index{At(3)}, String("x"))
	if r, cols := c.Size(); r != 1 || cols != 3 {
		t.Fatalf("size %dx%d", r, cols)
	}
	if _, ok := c.data[0].(Empty); !ok {
		t.Errorf("fill is %v", c.data[0])
	}
	orig := c
	c2 := AssignCell(c, []Index{At(1)}, Scalar(1))
	if _, ok := orig.data[0].(Empty); !ok {
		t.Errorf("original cell modified")
	}
	vals := CellContents(c2, []Index{Colon})
	if len(vals) != 3 || vals[2] != String("x") {
		t.Errorf("contents = %v", vals)
	}
	sub := IndexValue(c2, []Index{{Val: Range(1, 1, 2)}}).(*Cell)
	if r, cols := sub.Size(); r != 1 || cols != 2 {
		t.Errorf("c(1:2) is %dx%d", r, cols)
	}
	expectError(t, TypeError, "brace on matrix", func() { CellContents(Scalar(1), []Index{At(1)}) })
}

func TestConcat(t *testing.T) {
	got := num(HorzCat([]Value{mkmat(2, 1, 1, 2), mkmat(2, 2, 3, 4, 5, 6)}))
	if !sameMatrix(got, mkmat(2, 3, 1, 3, 4, 2, 5, 6)) {
		t.Errorf("horzcat = %v", got.data)
	}
	got = num(VertCat([]Value{mkmat(1, 2, 1, 2), Empty{}, mkmat(1, 2, 3, 4)}))
	if !sameMatrix(got, mkmat(2, 2, 1, 2, 3, 4)) {
		t.Errorf("vertcat = %v", got.data)
	}
	if s := HorzCat([]Value{String("ab"), String("cd")}); s != String("abcd") {
		t.Errorf("string concat = %v", s)
	}
	expectError(t, DimensionMismatch, "ragged", func() {
		VertCat([]Value{mkmat(1, 2, 1, 2), mkmat(1, 3, 1, 2, 3)})
	})
	expectError(t, TypeError, "vertical strings", func() {
		VertCat([]Value{String("ab"), String("cd")})
	})
	if l, ok := HorzCat([]Value{Bool(true), Bool(false)}).(Logical); !ok || l.cols != 2 {
		t.Errorf("logical concat lost its class")
	}
}

func TestStructCopy(t *testing.T) {
	s := NewStruct().With("a", Scalar(1))
	s2 := s.With("b", Scalar(2))
	if s.Len() != 1 || s2.Len() != 2 {
		t.Errorf("With modified the original")
	}
	if got := strings.Join(s2.Without("a").With("c", Empty{}).Fields(), ","); got != "b,c" {
		t.Errorf("fields = %s", got)
	}
	expectError(t, UndefinedName, "missing field", func() { s.Field("zz") })
}

func TestIsTrue(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Scalar(1), true},
		{Scalar(0), false},
		{mkmat(1, 3, 1, 2, 3), true},
		{mkmat(1, 3, 1, 0, 3), false},
		{Empty{}, false},
		{String("a"), true},
		{String(""), false},
		{Bool(true), true},
	}
	for _, test := range tests {
		if got := IsTrue(test.v); got != test.want {
			t.Errorf("IsTrue(%v) = %v", test.v, got)
		}
	}
	expectError(t, TypeError, "cell condition", func() { IsTrue(CellRow(Scalar(1))) })
}

func TestDisplay(t *testing.T) {
	var conf config.Config
	tests := []struct {
		v    Value
		want string
	}{
		{mkmat(1, 3, 1, 2, 3), "x =\n\n   1   2   3\n\n"},
		{mkmat(2, 2, 1, -20, 300, 4), "x =\n\n     1   -20\n   300     4\n\n"},
		{Scalar(math.Pi), "x =\n\n   3.1416\n\n"},
		{mkmat(1, 2, 0.5, 2), "x =\n\n   0.5000   2.0000\n\n"},
		{Empty{}, "x =\n\n     []\n\n"},
		{Zeros(0, 3), "x =\n\n     [](0x3)\n\n"},
		{String("hi"), "x =\n\n    'hi'\n\n"},
		{EmptyCell(1, 3), "x =\n\n  {1x3 cell}\n\n"},
		{NewStruct().With("a", Scalar(1)).With("b", String("s")), "x =\n\n  struct with fields:\n\n    a: 1\n    b: 's'\n\n"},
		{Bool(true), "x =\n\n   1\n\n"},
		{mkmat(1, 2, math.Inf(1), 1), "x =\n\n   Inf     1\n\n"},
		{Scalar(1e-5), "x =\n\n   0.0000\n\n"},
		{mkmat(1, 2, 1.23456, 1e5), "x =\n\n        1.2346   100000.0000\n\n"},
	}
	for _, test := range tests {
		var b bytes.Buffer
		Display(&conf, &b, "x", test.v)
		if b.String() != test.want {
			t.Errorf("display %v:\ngot  %q\nwant %q", test.v, b.String(), test.want)
		}
	}
	conf.SetFormat(config.Long)
	var b bytes.Buffer
	Display(&conf, &b, "p", Scalar(math.Pi))
	if want := "p =\n\n   3.141592653589793\n\n"; b.String() != want {
		t.Errorf("format long: got %q", b.String())
	}
}

func TestNum2Str(t *testing.T) {
	tests := []struct {
		x    float64
		want string
	}{
		{3, "3"},
		{math.Pi, "3.1416"},
		{123.456, "123.456"},
		{0.1, "0.1"},
		{-2.5, "-2.5"},
		{math.Inf(-1), "-Inf"},
	}
	for _, test := range tests {
		if got := Num2Str(test.x); got != test.want {
			t.Errorf("Num2Str(%g) = %q, want %q", test.x, got, test.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Scalar(1), Bool(true)) {
		t.Error("1 != true")
	}
	if Equal(mkmat(1, 2, 1, 2), mkmat(2, 1, 1, 2)) {
		t.Error("shapes ignored")
	}
	if !Equal(CellRow(String("a"), Scalar(2)), CellRow(String("a"), Scalar(2))) {
		t.Error("equal cells differ")
	}
}

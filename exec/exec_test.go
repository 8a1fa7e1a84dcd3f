// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"bytes"
	"strings"
	"testing"

	"matfree.dev/matfree/config"
	"matfree.dev/matfree/parse"
	"matfree.dev/matfree/value"
)

func newTestContext() (*Context, *bytes.Buffer, *bytes.Buffer) {
	var conf config.Config
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	conf.SetOutput(stdout)
	conf.SetErrOutput(stderr)
	return NewContext(&conf), stdout, stderr
}

// execute parses and runs src in c, returning any run-time error.
func execute(t *testing.T, c *Context, src string) *value.Error {
	t.Helper()
	prog, err := parse.Parse("test", src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	for _, def := range prog.Funcs {
		c.Define(def)
	}
	return c.protectFunc(func() { c.Exec(prog.Stmts) })
}

// check evaluates a condition in c, which must be true.
func check(t *testing.T, c *Context, src, cond string) {
	t.Helper()
	x, err := parse.ParseExpr(cond)
	if err != nil {
		t.Fatalf("parse %q: %v", cond, err)
	}
	var v value.Value
	if e := c.protectFunc(func() { v = c.Eval(x) }); e != nil {
		t.Errorf("%s\n\tcheck %s: %s", src, cond, e.Msg)
		return
	}
	if !value.IsTrue(v) {
		t.Errorf("%s\n\tcheck %s failed", src, cond)
	}
}

var execTests = []struct {
	src    string
	checks []string
}{
	// The basic scenarios.
	{"A=[1 2;3 4]; d=det(A);", []string{"abs(d - (-2)) < 1e-12"}},
	{"x=1:5;", []string{"isequal(x, [1 2 3 4 5])", "isequal(size(x), [1 5])"}},
	{"s=0; for i=1:10 s=s+i; end", []string{"s == 55"}},
	{"A=[1 2;3 4]; A(3,3)=9;", []string{
		"isequal(size(A), [3 3])",
		"isequal(A(1:2,1:2), [1 2;3 4])",
		"A(3,3) == 9",
		"A(1,3) == 0 && A(2,3) == 0 && A(3,1) == 0 && A(3,2) == 0",
	}},
	{"f=@(x) x^2; y=f(5);", []string{"y == 25"}},
	{"try error('boom'); catch e; msg=e.message; end", []string{"strcmp(msg, 'boom')"}},

	// Ranges and loops.
	{"r = 0:0.5:2;", []string{"numel(r) == 5", "abs(r(3) - 1) < 1e-12"}},
	{"r = 5:1;", []string{"isempty(r)", "isequal(size(r), [1 0])"}},
	{"r = 10:-3:1;", []string{"isequal(r, [10 7 4 1])"}},
	{"out = []; for c = [1 2; 3 4] out(end+1) = sum(c); end", []string{"isequal(out, [4 6])"}},
	{"n = 0; for k = [] n = n + 1; end", []string{"n == 0"}},
	{"k = 0; while true k = k + 1; if k >= 7 break; end; end", []string{"k == 7"}},
	{"t = 0; for k = 1:10 if mod(k, 2) == 0 continue; end; t = t + k; end", []string{"t == 25"}},
	{"names = {}; for c = {'a', 'b'} names{end+1} = c{1}; end", []string{"isequal(names, {'a', 'b'})"}},

	// Growth.
	{"v = [1 2 3]; v(6) = 6;", []string{"isequal(v, [1 2 3 0 0 6])"}},
	{"w(2,3) = 1;", []string{"isequal(w, [0 0 0; 0 0 1])"}},
	{"c = {}; c{3} = 'x';", []string{"isequal(size(c), [1 3])", "isempty(c{1})", "strcmp(c{3}, 'x')"}},
	{"v = 1:5; v([2 4]) = [];", []string{"isequal(v, [1 3 5])"}},
	{"M = magic(3); M(:, 2) = [];", []string{"isequal(M, [8 6; 3 7; 4 2])"}},

	// Value semantics.
	{"a = [1 2 3]; b = a; b(1) = 100;", []string{"a(1) == 1", "b(1) == 100"}},
	{"s.x = 1; t = s; t.x = 2;", []string{"s.x == 1", "t.x == 2"}},
	{"s.inner.v = [1 2]; s.inner.v(2) = 5;", []string{"isequal(s.inner.v, [1 5])"}},
	{"c = {1, {2, 3}}; c{2}{1} = 20;", []string{"c{2}{1} == 20"}},

	// Operators.
	{"A = [1 2; 3 4]; B = A';", []string{"isequal(B, [1 3; 2 4])", "isequal(B', A)"}},
	{"A = [1 2; 3 4]; P = A * A;", []string{"isequal(P, [7 10; 15 22])"}},
	{"x = [1 2 3] + [10; 20];", []string{"isequal(x, [11 12 13; 21 22 23])"}},
	{"x = [1 2 3] .* 2 - 1;", []string{"isequal(x, [1 3 5])"}},
	{"A = [2 0; 0 4]; x = A \\ [2; 8];", []string{"max(abs(x - [1; 2])) < 1e-12"}},
	{"b = 3 > 2 && ~isempty([1]);", []string{"b", "islogical(b)"}},
	{"z = 0 || 5;", []string{"z == 1"}},
	{"m = [1 2 3] == [1 5 3];", []string{"isequal(m, logical([1 0 1]))"}},
	{"v = [5 6 7 8]; e = v(end); f = v(end-1);", []string{"e == 8", "f == 7"}},
	{"v = 10:10:50; w = v(v > 25);", []string{"isequal(w, [30 40 50])"}},
	{"s = ['ab', 'cd'];", []string{"strcmp(s, 'abcd')"}},

	// switch.
	{"x = 2; switch x case 1 r = 'one'; case {2, 3} r = 'two or three'; otherwise r = 'other'; end", []string{"strcmp(r, 'two or three')"}},
	{"x = 'b'; switch x case 'a' r = 1; case 'b' r = 2; case 'b' r = 3; end", []string{"r == 2"}},
	{"r = 0; switch 9 case 1 r = 1; end", []string{"r == 0"}},
	{"switch 9 case 1 r = 1; otherwise r = -1; end", []string{"r == -1"}},

	// try and catch.
	{"v = [1 2]; try x = v(5); catch err; id = err.identifier; end", []string{"strcmp(id, 'MatFree:indexOutOfRange')"}},
	{"try error('my:id', 'value %d', 7); catch err; end", []string{"strcmp(err.message, 'value 7')", "strcmp(err.identifier, 'my:id')"}},
	{"ok = 1; try undefined_thing; catch; ok = 2; end", []string{"ok == 2"}},

	// Functions.
	{"function r = sq(x)\n r = x * x;\nend\ny = sq(4);", []string{"y == 16"}},
	{"function [s, p] = sp(a, b)\n s = a + b; p = a * b;\nend\n[u, v] = sp(3, 4);", []string{"u == 7", "v == 12"}},
	{"function [s, p] = sp(a, b)\n s = a + b; p = a * b;\nend\n[~, v] = sp(3, 4);", []string{"v == 12", "~exist('s')"}},
	{"function n = count(varargin)\n n = numel(varargin);\nend\na = count(); b = count(1, 'x', {});", []string{"a == 0", "b == 3"}},
	{"function varargout = multi()\n varargout = {1, 2, 3};\nend\n[a, b, c] = multi();", []string{"a == 1 && b == 2 && c == 3"}},
	{"function r = fact(n)\n if n <= 1\n  r = 1;\n  return\n end\n r = n * fact(n - 1);\nend\nx = fact(5);", []string{"x == 120"}},
	{"function r = noSee()\n r = exist('outside');\nend\noutside = 1; q = noSee();", []string{"q == 0"}},
	{"function n = ins(a, b)\n n = nargin;\nend\nk = ins(1);", []string{"k == 1"}},
	{"[m, i] = max([3 9 2]);", []string{"m == 9", "i == 2"}},
	{"[r, c] = size(zeros(2, 5));", []string{"r == 2", "c == 5"}},

	// Globals and persistents.
	{"function bump()\n global G\n G = G + 1;\nend\nglobal G\nG = 10; bump(); bump();", []string{"G == 12"}},
	{"function n = counter()\n persistent k\n if isempty(k)\n  k = 0;\n end\n k = k + 1;\n n = k;\nend\ncounter(); counter(); z = counter();", []string{"z == 3"}},

	// Anonymous functions.
	{"a = 2; f = @(x) a * x; a = 100; y = f(3);", []string{"y == 6"}},
	{"f = @(x, y) x + y; g = @(v) f(v, 1); y = g(5);", []string{"y == 6"}},
	{"f = @sin; y = f(0);", []string{"y == 0"}},
	{"h = @(varargin) numel(varargin); n = h(1, 2, 3);", []string{"n == 3"}},
	{"sq = cellfun(@(x) x^2, {1, 2, 3});", []string{"isequal(sq, [1 4 9])"}},
	{"c = arrayfun(@(x) 1:x, 1:3, 'UniformOutput', false);", []string{"isequal(c{3}, [1 2 3])"}},

	// Cells and structs.
	{"c = {1, 'two', [3 4]}; n = numel(c); s = c{2};", []string{"n == 3", "strcmp(s, 'two')"}},
	{"c = {1, 2, 3}; v = [c{:}];", []string{"isequal(v, [1 2 3])"}},
	{"c = {1, 2, 3}; d = c(2:3);", []string{"iscell(d)", "numel(d) == 2"}},
	{"s = struct('a', 1, 'b', 'x'); s.c = 3; f = fieldnames(s);", []string{"isequal(f, {'a'; 'b'; 'c'})"}},
	{"s.name = 'n'; k = 'name'; v = s.(k);", []string{"strcmp(v, 'n')"}},

	// Introspection.
	{"x = 1;", []string{"exist('x') == 1", "exist('sin') == 5", "exist('nothing_here') == 0"}},
	{"eval('q = 3 + 4;');", []string{"q == 7"}},
	{"v = eval('2 * 21');", []string{"v == 42"}},
	{"eval('error(''x'')', 'fallback = 1;');", []string{"fallback == 1"}},
	{"f = str2func('@(x) x + 1'); y = f(1);", []string{"y == 2"}},
	{"f = str2func('max'); y = f([4 8 1]);", []string{"y == 8"}},
	{"x = 1; y = 2; clear x", []string{"~exist('x')", "y == 2"}},
	{"[n, ok] = str2num('[1 2 3]');", []string{"isequal(n, [1 2 3])", "ok"}},
}

func TestExec(t *testing.T) {
	for _, test := range execTests {
		c, _, _ := newTestContext()
		if err := execute(t, c, test.src); err != nil {
			t.Errorf("%s\n\tunexpected error: %s", test.src, err.Msg)
			continue
		}
		for _, cond := range test.checks {
			check(t, c, test.src, cond)
		}
	}
}

var errorTests = []struct {
	src  string
	kind value.ErrKind
	msg  string // Substring of the message.
}{
	{"x = undefined_var + 1;", value.UndefinedName, "undefined_var"},
	{"x = [1 2 3] + [1 2];", value.DimensionMismatch, ""},
	{"x = [1 2; 3 4] * [1 2 3];", value.DimensionMismatch, ""},
	{"x = [1 2 3]; y = x(0);", value.IndexOutOfRange, ""},
	{"x = [1 2 3]; y = x(4);", value.IndexOutOfRange, ""},
	{"x = 5; y = x.field;", value.TypeError, ""},
	{"x = 1:0:5;", value.InvalidArgument, ""},
	{"error('boom');", value.UserError, "boom"},
	{"[a, b] = deal(1, 2, 3);", value.InvalidArgument, ""},
	{"function r = f(x)\n r = x;\nend\ny = f(1, 2);", value.InvalidArgument, "too many input"},
	{"function r = f()\n r = f();\nend\ny = f();", value.InvalidArgument, "recursion"},
	{"x = [1 2; 3 4 5];", value.DimensionMismatch, ""},
	{"a.b = 1; a(2).b = 2;", value.TypeError, "struct arrays"},
	{"s.x = 1; t.y = 2; s(3) = t;", value.TypeError, "struct arrays"},
}

func TestErrors(t *testing.T) {
	for _, test := range errorTests {
		c, _, _ := newTestContext()
		err := execute(t, c, test.src)
		if err == nil {
			t.Errorf("%s: expected error", test.src)
			continue
		}
		if err.Kind != test.kind {
			t.Errorf("%s: error kind %s (%s); want %s", test.src, err.Kind, err.Msg, test.kind)
		}
		if !strings.Contains(err.Msg, test.msg) {
			t.Errorf("%s: error %q does not contain %q", test.src, err.Msg, test.msg)
		}
		if c.Depth() != 0 {
			t.Errorf("%s: depth %d after error", test.src, c.Depth())
		}
	}
}

func TestSuggestion(t *testing.T) {
	c, _, _ := newTestContext()
	execute(t, c, "counter = 1;")
	err := execute(t, c, "y = countr + 1;")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Msg, "Did you mean 'counter'?") {
		t.Errorf("message %q does not suggest counter", err.Msg)
	}
	err = execute(t, c, "y = xqzzyvw(1);")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Msg, "Did you mean") {
		t.Errorf("message %q has an unexpected suggestion", err.Msg)
	}
}

func TestDisplay(t *testing.T) {
	c, stdout, _ := newTestContext()
	if err := execute(t, c, "x = 5\ny = [1 2];\n3 + 4"); err != nil {
		t.Fatal(err.Msg)
	}
	want := "x =\n\n   5\n\nans =\n\n   7\n\n"
	if got := stdout.String(); got != want {
		t.Errorf("output %q; want %q", got, want)
	}
}

func TestWarning(t *testing.T) {
	c, _, stderr := newTestContext()
	if err := execute(t, c, "warning('careful %d', 3);"); err != nil {
		t.Fatal(err.Msg)
	}
	if got, want := stderr.String(), "Warning: careful 3\n"; got != want {
		t.Errorf("error output %q; want %q", got, want)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	c1, _, _ := newTestContext()
	c2, _, _ := newTestContext()
	execute(t, c1, "function r = only1()\n r = 1;\nend\nshared = 1;")
	if _, ok := c2.Lookup("shared"); ok {
		t.Error("variable leaked between sessions")
	}
	if c2.Defined("only1") {
		t.Error("function leaked between sessions")
	}
}

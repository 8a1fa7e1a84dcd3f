// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin_test

import (
	"bytes"
	"strings"
	"testing"

	"matfree.dev/matfree/builtin"
	"matfree.dev/matfree/config"
	"matfree.dev/matfree/exec"
	"matfree.dev/matfree/parse"
	"matfree.dev/matfree/value"
)

func newContext() (*exec.Context, *bytes.Buffer, *bytes.Buffer) {
	var conf config.Config
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	conf.SetOutput(stdout)
	conf.SetErrOutput(stderr)
	return exec.NewContext(&conf), stdout, stderr
}

// run executes src, returning the run-time error it raised, if any.
func run(t *testing.T, c *exec.Context, src string) (err *value.Error) {
	t.Helper()
	prog, perr := parse.Parse("test", src)
	if perr != nil {
		t.Fatalf("parse %q: %v", src, perr)
	}
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(value.Error)
			if !ok {
				panic(r)
			}
			c.Reset()
			err = &e
		}
	}()
	for _, def := range prog.Funcs {
		c.Define(def)
	}
	c.Exec(prog.Stmts)
	return nil
}

// Each test evaluates got and want and requires them to be equal.
// Where want is empty, got must be true.
var evalTests = []struct {
	got, want string
}{
	// Constants and math.
	{"pi", "3.141592653589793"},
	{"size(zeros(2, 3))", "[2 3]"},
	{"isnan(NaN)", ""},
	{"isinf(-Inf)", ""},
	{"ones(2)", "[1 1; 1 1]"},
	{"eye(2, 3)", "[1 0 0; 0 1 0]"},
	{"size(rand(3, 2))", "[3 2]"},
	{"abs([-1 2 -3])", "[1 2 3]"},
	{"sqrt(16)", "4"},
	{"floor(-2.5)", "-3"},
	{"ceil(2.1)", "3"},
	{"round(2.5)", "3"},
	{"fix(-2.7)", "-2"},
	{"sign([-3 0 2])", "[-1 0 1]"},
	{"mod(-1, 3)", "2"},
	{"rem(-1, 3)", "-1"},
	{"mod(5, 0)", "5"},
	{"nchoosek(5, 2)", "10"},
	{"gcd(12, 18)", "6"},
	{"lcm(4, 6)", "12"},
	{"factorial(5)", "120"},
	{"power(2, [1 2 3])", "[2 4 8]"},
	{"hypot(3, 4)", "5"},
	{"plus(1, 2)", "3"},
	{"times([1 2], [3 4])", "[3 8]"},
	{"xor(true, false)", ""},
	{"abs(exp(log(7)) - 7) < 1e-12", ""},

	// Reductions.
	{"sum([1 2 3])", "6"},
	{"sum([1 2; 3 4])", "10"},
	{"sum([1 2; 3 4], 1)", "[4 6]"},
	{"sum([1 2; 3 4], 2)", "[3; 7]"},
	{"prod([1 2 3 4])", "24"},
	{"mean([1 2 3 4])", "2.5"},
	{"max([3 1 4])", "4"},
	{"max([1 5], [3 2])", "[3 5]"},
	{"max([1 NaN 3])", "3"},
	{"max([1 7; 9 2], [], 1)", "[9 7]"},
	{"min([4 2 8])", "2"},
	{"cumsum([1 2 3])", "[1 3 6]"},
	{"cumprod([1 2 3])", "[1 2 6]"},
	{"diff([1 4 9])", "[3 5]"},
	{"any([0 0 1])", ""},
	{"~all([1 1 0])", ""},
	{"median([3 1 2])", "2"},
	{"median([4 1 3 2])", "2.5"},
	{"mode([1 2 2 3 3])", "2"},
	{"abs(var([1 2 3 4]) - 5/3) < 1e-12", ""},
	{"std([5 5 5])", "0"},

	// Constructors.
	{"linspace(0, 1, 5)", "[0 0.25 0.5 0.75 1]"},
	{"numel(linspace(0, 1))", "100"},
	{"magic(3)", "[8 1 6; 3 5 7; 4 9 2]"},
	{"magic(4)", "[16 2 3 13; 5 11 10 8; 9 7 6 12; 4 14 15 1]"},
	{"sum(magic(6), 1)", "111 * ones(1, 6)"},
	{"sum(magic(6), 2)", "111 * ones(6, 1)"},
	{"repmat([1 2], 2, 2)", "[1 2 1 2; 1 2 1 2]"},
	{"reshape(1:6, 2, 3)", "[1 3 5; 2 4 6]"},
	{"reshape(1:6, [], 2)", "[1 4; 2 5; 3 6]"},
	{"diag([1 2])", "[1 0; 0 2]"},
	{"diag([1 2; 3 4])", "[1; 4]"},
	{"numel(zeros(3, 4))", "12"},
	{"length(zeros(3, 7))", "7"},
	{"ndims(5)", "2"},
	{"horzcat([1 2], 3)", "[1 2 3]"},
	{"vertcat(1, 2)", "[1; 2]"},
	{"cat(1, [1 2], [3 4])", "[1 2; 3 4]"},
	{"size(zeros(0, 3))", "[0 3]"},

	// Linear algebra.
	{"max(abs(inv([2 0; 0 4]) - [0.5 0; 0 0.25])) < 1e-12", ""},
	{"rank(magic(4))", "3"},
	{"trace([1 2; 3 4])", "5"},
	{"norm([3 4])", "5"},
	{"dot([1 2 3], [4 5 6])", "32"},
	{"cross([1 0 0], [0 1 0])", "[0 0 1]"},
	{"kron([1 2], [1; 1])", "[1 2; 1 2]"},
	{"abs(det(magic(3)) + 360) < 1e-9", ""},
	{"max(abs(eig([2 0; 0 3]) - [2; 3])) < 1e-12", ""},

	// Sorting and searching.
	{"sort([3 1 2])", "[1 2 3]"},
	{"sort([3 1 2], 'descend')", "[3 2 1]"},
	{"sort([3 1; 2 5])", "[2 1; 3 5]"},
	{"find([0 1 0 1])", "[2 4]"},
	{"find([0 1 0 1], 1)", "2"},
	{"unique([3 1 3 2])", "[1 2 3]"},
	{"fliplr([1 2 3])", "[3 2 1]"},
	{"flipud([1; 2])", "[2; 1]"},
	{"ismember(2, [1 2 3])", ""},
	{"~ismember(5, [1 2 3])", ""},
	{"sort({'pear', 'apple'})", "{'apple', 'pear'}"},

	// Strings.
	{"sprintf('%d-%d', 1, 2)", "'1-2'"},
	{"sprintf('%5.2f', pi)", "' 3.14'"},
	{"sprintf('%d,', [1 2 3])", "'1,2,3,'"},
	{"sprintf('%s=%d', 'x', 5)", "'x=5'"},
	{"sprintf('%g', 0.0001)", "'0.0001'"},
	{"sprintf('%g', 1e10)", "'1e+10'"},
	{"sprintf('%g', 2.5)", "'2.5'"},
	{"sprintf('%x', 255)", "'ff'"},
	{"sprintf('%d', 1.5)", "'1.500000e+00'"},
	{"sprintf('100%%')", "'100%'"},
	{"sprintf('%c%c', 72, 105)", "'Hi'"},
	{"num2str(pi)", "'3.1416'"},
	{"num2str(42)", "'42'"},
	{"num2str(pi, 8)", "'3.1415927'"},
	{"int2str(2.7)", "'3'"},
	{"mat2str([1 2; 3 4])", "'[1 2;3 4]'"},
	{"str2double('2.5')", "2.5"},
	{"isnan(str2double('abc'))", ""},
	{"strsplit('a,b,c', ',')", "{'a', 'b', 'c'}"},
	{"strsplit('one two')", "{'one', 'two'}"},
	{"strjoin({'a', 'b'}, '-')", "'a-b'"},
	{"strrep('hello', 'l', 'L')", "'heLLo'"},
	{"strtrim('  hi  ')", "'hi'"},
	{"upper('abc')", "'ABC'"},
	{"lower({'A', 'B'})", "{'a', 'b'}"},
	{"strcmp('a', 'a')", ""},
	{"~strcmp('a', 'ab')", ""},
	{"strcmpi('ABC', 'abc')", ""},
	{"strcmp({'a', 'b'}, 'a')", "logical([1 0])"},
	{"strncmp('hello', 'help', 3)", ""},
	{"strfind('abcabc', 'bc')", "[2 5]"},
	{"contains('haystack', 'st')", ""},
	{"startsWith('prefix', 'pre')", ""},
	{"endsWith('suffix', 'fix')", ""},
	{"strcat('a ', 'b')", "'ab'"},
	{"regexprep('abc123', '\\d', 'X')", "'abcXXX'"},
	{"regexp('ab12cd', '\\d+', 'match')", "{'12'}"},
	{"regexp('ab12cd', '\\d+', 'match', 'once')", "'12'"},
	{"regexp('ab12cd', '\\d')", "[3 4]"},
	{"dec2bin(5)", "'101'"},
	{"dec2bin(5, 8)", "'00000101'"},
	{"hex2dec('ff')", "255"},
	{"blanks(3)", "'   '"},

	// Types.
	{"class(1)", "'double'"},
	{"class('a')", "'char'"},
	{"class({})", "'cell'"},
	{"class(true)", "'logical'"},
	{"class(@sin)", "'function_handle'"},
	{"class(struct())", "'struct'"},
	{"isa(1, 'numeric')", ""},
	{"int8(200)", "127"},
	{"uint8(-5)", "0"},
	{"int16(2.5)", "3"},
	{"isnumeric(1) && ~isnumeric('a')", ""},
	{"ischar('abc')", ""},
	{"iscellstr({'a', 'b'}) && ~iscellstr({1})", ""},
	{"isscalar(5) && ~isscalar([1 2])", ""},
	{"isvector([1 2 3]) && ~isvector(ones(2))", ""},
	{"isempty([]) && isempty('') && isempty({})", ""},
	{"double('AB')", "[65 66]"},
	{"char([72 105])", "'Hi'"},
	{"logical([2 0])", "logical([1 0])"},
	{"isequal([1 2], [1 2], [1 2])", ""},

	// Cells and structs.
	{"isfield(struct('a', 1), 'a')", ""},
	{"isfield(struct('a', 1), {'a', 'b'})", "logical([1 0])"},
	{"numfields(struct('a', 1, 'b', 2))", "2"},
	{"getfield(struct('a', 7), 'a')", "7"},
	{"fieldnames(rmfield(struct('a', 1, 'b', 2), 'a'))", "{'b'}"},
	{"getfield(setfield(struct(), 'z', 4), 'z')", "4"},
	{"struct2cell(struct('a', 1, 'b', 'x'))", "{1; 'x'}"},
	{"getfield(cell2struct({1; 2}, {'p', 'q'}, 1), 'q')", "2"},
	{"cell2mat({1 2; 3 4})", "[1 2; 3 4]"},
	{"num2cell([1 2])", "{1, 2}"},
	{"size(cell(2, 3))", "[2 3]"},

	// Function functions.
	{"feval(@plus, 1, 2)", "3"},
	{"feval('sin', 0)", "0"},
	{"func2str(@sin)", "'sin'"},
	{"isvarname('abc') && ~isvarname('1a')", ""},
	{"cellfun(@isempty, {[], 1, ''})", "logical([1 0 1])"},
	{"cellfun('length', {'ab', 'c'})", "[2 1]"},
	{"cellfun(@(x) [x x], {1, 2}, 'UniformOutput', false)", "{[1 1], [2 2]}"},
	{"arrayfun(@(x) x * 2, [1 2; 3 4])", "[2 4; 6 8]"},
	{"cellfun(@(x, y) x + y, {1, 2}, {10, 20})", "[11 22]"},
	{"cellfun(@(x) error('bad'), {1, 2}, 'ErrorHandler', @(e, x) e.index)", "[1 2]"},
}

func TestEval(t *testing.T) {
	c, _, _ := newContext()
	for _, test := range evalTests {
		src := "got_ = " + test.got + ";"
		if test.want != "" {
			src += " want_ = " + test.want + ";"
		}
		if err := run(t, c, src); err != nil {
			t.Errorf("%s: %s", test.got, err.Msg)
			continue
		}
		got, _ := c.Lookup("got_")
		if test.want == "" {
			if !value.IsTrue(got) {
				t.Errorf("%s is false", test.got)
			}
			continue
		}
		want, _ := c.Lookup("want_")
		if !value.Equal(got, want) {
			t.Errorf("%s = %s; want %s", test.got, got, want)
		}
	}
}

func TestMultipleOutputs(t *testing.T) {
	c, _, _ := newContext()
	src := `
[m, i] = max([3 9 2]);
[s, k] = sort([3 1 2]);
[u, ia, ic] = unique([3 1 3 2]);
[r, cc] = find([0 1; 1 0]);
[q, rr] = qr([1 0; 0 1]);
[a, b] = deal(7);
[n, ok] = str2num('abc');
`
	if err := run(t, c, src); err != nil {
		t.Fatal(err.Msg)
	}
	for name, want := range map[string]value.Value{
		"m":  value.Scalar(9),
		"i":  value.Scalar(2),
		"s":  value.RowVector([]float64{1, 2, 3}),
		"k":  value.RowVector([]float64{2, 3, 1}),
		"u":  value.RowVector([]float64{1, 2, 3}),
		"ic": value.ColVector([]float64{3, 1, 3, 2}),
		"r":  value.ColVector([]float64{2, 1}),
		"cc": value.ColVector([]float64{1, 2}),
		"a":  value.Scalar(7),
		"b":  value.Scalar(7),
		"ok": value.Bool(false),
	} {
		got, found := c.Lookup(name)
		if !found {
			t.Errorf("%s not bound", name)
			continue
		}
		if !value.Equal(got, want) {
			t.Errorf("%s = %s; want %s", name, got, want)
		}
	}
	n, _ := c.Lookup("n")
	if !value.IsEmpty(n) {
		t.Errorf("str2num of bad text = %s; want []", n)
	}
}

func TestOutput(t *testing.T) {
	tests := []struct {
		src    string
		stdout string
		stderr string
	}{
		{"fprintf('%d\\n', 5);", "5\n", ""},
		{"fprintf('%d %d\\n', [1 2; 3 4]);", "1 3\n2 4\n", ""},
		{"fprintf(2, 'oops\\n');", "", "oops\n"},
		{"fprintf('no newline');", "no newline", ""},
		{"disp('hi')", "hi\n", ""},
		{"disp([1 2])", "   1   2\n", ""},
		{"disp(pi)", "   3.1416\n", ""},
		{"format long; disp(pi); format short", "   3.141592653589793\n", ""},
		{"warning('w %d', 1)", "", "Warning: w 1\n"},
		{"warning('off', 'all')", "", ""},
		{"x = sprintf('%s', 'quiet');", "", ""},
	}
	for _, test := range tests {
		c, stdout, stderr := newContext()
		if err := run(t, c, test.src); err != nil {
			t.Errorf("%s: %s", test.src, err.Msg)
			continue
		}
		if got := stdout.String(); got != test.stdout {
			t.Errorf("%s: output %q; want %q", test.src, got, test.stdout)
		}
		if got := stderr.String(); got != test.stderr {
			t.Errorf("%s: error output %q; want %q", test.src, got, test.stderr)
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		src  string
		id   string
		msg  string
		kind value.ErrKind
	}{
		{"error('plain message')", "MatFree:error", "plain message", value.UserError},
		{"error('Pkg:sub:id', 'value %d', 3)", "Pkg:sub:id", "value 3", value.UserError},
		{"error('rate is 50%')", "MatFree:error", "rate is 50%", value.UserError},
		{"error('%d items', 4)", "MatFree:error", "4 items", value.UserError},
		{"assert(false)", "MatFree:assertion", "Assertion failed.", value.UserError},
		{"assert(1 == 2, 'mismatch %d', 9)", "MatFree:assertion", "mismatch 9", value.UserError},
		{"error(struct('message', 'from struct', 'identifier', 'A:b'))", "A:b", "from struct", value.UserError},
		{"throw(MException('X:y', 'thrown %s', 'here'))", "X:y", "thrown here", value.UserError},
		{"try error('A:b', 'inner'); catch e; rethrow(e); end", "A:b", "inner", value.UserError},
		{"inv([1 2 3])", "MatFree:dimensionMismatch", "", value.DimensionMismatch},
		{"zeros(2) * ones(3)", "MatFree:dimensionMismatch", "", value.DimensionMismatch},
		{"cellfun(@(x) [x x], {1, 2})", "MatFree:invalidArgument", "UniformOutput", value.InvalidArgument},
		{"strrep('a')", "MatFree:invalidArgument", "not enough input", value.InvalidArgument},
	}
	for _, test := range tests {
		c, _, _ := newContext()
		err := run(t, c, test.src)
		if err == nil {
			t.Errorf("%s: expected error", test.src)
			continue
		}
		if err.ID() != test.id {
			t.Errorf("%s: identifier %q; want %q", test.src, err.ID(), test.id)
		}
		if err.Kind != test.kind {
			t.Errorf("%s: kind %s; want %s", test.src, err.Kind, test.kind)
		}
		if !strings.Contains(err.Msg, test.msg) {
			t.Errorf("%s: message %q; want %q", test.src, err.Msg, test.msg)
		}
	}
}

func TestEmptyErrorIsNoOp(t *testing.T) {
	c, _, _ := newContext()
	if err := run(t, c, "error(''); x = 1;"); err != nil {
		t.Fatalf("error('') raised %s", err.Msg)
	}
}

func TestRandomSeed(t *testing.T) {
	c, _, _ := newContext()
	if err := run(t, c, "rng(42); a = rand(1, 3); rng(42); b = rand(1, 3); n = randi(10, 1, 100);"); err != nil {
		t.Fatal(err.Msg)
	}
	a, _ := c.Lookup("a")
	b, _ := c.Lookup("b")
	if !value.Equal(a, b) {
		t.Errorf("rand after same seed: %s vs %s", a, b)
	}
	n, _ := c.Lookup("n")
	for _, x := range value.ToMatrix("n", n).Data() {
		if x < 1 || x > 10 || x != float64(int(x)) {
			t.Fatalf("randi(10) produced %g", x)
		}
	}
}

func TestTicToc(t *testing.T) {
	c, stdout, _ := newContext()
	if err := run(t, c, "tic; toc"); err != nil {
		t.Fatal(err.Msg)
	}
	if !strings.HasPrefix(stdout.String(), "Elapsed time is ") {
		t.Errorf("toc output %q", stdout)
	}
	if err := run(t, c, "tic; e = toc;"); err != nil {
		t.Fatal(err.Msg)
	}
	e, _ := c.Lookup("e")
	if x := value.ToMatrix("e", e).Float(); x < 0 {
		t.Errorf("toc = %g", x)
	}
}

func TestRegistry(t *testing.T) {
	r := builtin.Registry()
	for _, name := range []string{"sum", "zeros", "sprintf", "cellfun", "error", "inv", "regexp"} {
		b := r[name]
		if b == nil {
			t.Errorf("%s is not registered", name)
			continue
		}
		if b.Name != name {
			t.Errorf("registry[%s].Name = %s", name, b.Name)
		}
	}
	delete(r, "sum")
	if builtin.Registry()["sum"] == nil {
		t.Error("Registry returned a shared map")
	}
}

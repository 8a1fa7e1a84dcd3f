// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mobile

import (
	"io"
	"strings"
	"testing"
)

// These just test that the wrapper works.

func TestEval(t *testing.T) {
	var tests = []struct {
		input  string
		output string
	}{
		{"", ""},
		{"23", "ans =\n\n   23\n\n"},
		{"disp(sqrt(2))", "   1.4142\n"},
		{")format long\ndisp(sqrt(2))", "   1.414213562373095\n"},
		{"x = 3;\ny = x * 2;\ndisp(y)", "   6\n"},
		{"if true\n  disp('yes')\nend", "yes\n"},
	}
	for _, test := range tests {
		Reset()
		out, err := Eval(test.input)
		if err != nil {
			t.Errorf("evaluating %q: %v", test.input, err)
			continue
		}
		if out != test.output {
			t.Errorf("%q: expected %q; got %q", test.input, test.output, out)
		}
	}
}

func TestEvalError(t *testing.T) {
	var tests = []struct {
		input string
		error string
	}{
		{"'x", "unterminated string"},
		{"undefined_name", "Undefined function or variable 'undefined_name'"},
		{"[1 2] * [3 4]", "inner matrix dimensions must agree"},
		{")nonsense", "unknown command"},
	}
	for _, test := range tests {
		Reset()
		_, err := Eval(test.input)
		if err == nil {
			t.Errorf("evaluating %q: expected %q; got nothing", test.input, test.error)
			continue
		}
		if !strings.Contains(err.Error(), test.error) {
			t.Errorf("%q: expected %q; got %q", test.input, test.error, err)
		}
	}
}

func TestSessionPersists(t *testing.T) {
	Reset()
	if _, err := Eval("a = 4;"); err != nil {
		t.Fatal(err)
	}
	out, err := Eval("disp(a + 1)")
	if err != nil {
		t.Fatal(err)
	}
	if out != "   5\n" {
		t.Errorf("got %q; want %q", out, "   5\n")
	}
}

const demoText = `% This is a demo.
disp(23)
disp(1:3)
error('boom') % Cause an error.
disp(1:3) % Keep going
`

const demoOut = `   23
   1   2   3
   1   2   3
`

const demoErr = "Error: boom\n"

func TestDemo(t *testing.T) {
	demo := NewDemo(demoText)
	results := make([]byte, 0, 100)
	errors := make([]byte, 0, 100)
	for {
		result, err := demo.Next()
		if err == io.EOF {
			break
		}
		results = append(results, result...)
		if err != nil {
			errors = append(errors, err.Error()...)
		}
	}
	if demoOut != string(results) {
		t.Fatalf("expected %q; got %q", demoOut, results)
	}
	if demoErr != string(errors) {
		t.Fatalf("expected errors %q; got %q", demoErr, errors)
	}
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

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

func lookup(t *testing.T, c *exec.Context, name string) float64 {
	t.Helper()
	v, ok := c.Lookup(name)
	if !ok {
		t.Fatalf("%s is not bound", name)
	}
	m, ok := v.(*value.Matrix)
	if !ok || !m.IsScalar() {
		t.Fatalf("%s = %s; want a scalar", name, v)
	}
	return m.Float()
}

func TestPartialExecution(t *testing.T) {
	c, _, stderr := newContext()
	err := Source(c, "test", "x=1; error('boom'); y=2;")
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := lookup(t, c, "x"); got != 1 {
		t.Errorf("x = %g; want 1", got)
	}
	if _, ok := c.Lookup("y"); ok {
		t.Error("y is bound after the error")
	}
	if got, want := stderr.String(), "Error: boom\n"; got != want {
		t.Errorf("error output %q; want %q", got, want)
	}
}

func TestParseErrorRunsNothing(t *testing.T) {
	c, _, stderr := newContext()
	err := Source(c, "test", "x=1;\ny=(2;\n")
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*parse.ParseError); !ok {
		t.Errorf("error is %T; want *parse.ParseError", err)
	}
	if _, ok := c.Lookup("x"); ok {
		t.Error("x is bound after a parse error")
	}
	if !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Errorf("error output %q", stderr)
	}
}

func TestLexErrorRunsNothing(t *testing.T) {
	c, _, _ := newContext()
	if err := Source(c, "test", "x=1; s='unterminated"); err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := c.Lookup("x"); ok {
		t.Error("x is bound after a lex error")
	}
}

func TestErrorInFunctionUnwinds(t *testing.T) {
	c, _, _ := newContext()
	src := `
function r = f(x)
  r = g(x) + 1;
end
function r = g(x)
  r = x(10);
end
a = 3;
b = f([1 2 3]);
`
	err := Source(c, "test", src)
	if err == nil {
		t.Fatal("expected an error")
	}
	e, ok := err.(value.Error)
	if !ok {
		t.Fatalf("error is %T; want value.Error", err)
	}
	if e.Kind != value.IndexOutOfRange {
		t.Errorf("kind %s; want IndexOutOfRange", e.Kind)
	}
	if c.Depth() != 0 {
		t.Errorf("depth %d after error; want 0", c.Depth())
	}
	if c.Env() != c.Root() {
		t.Error("current workspace is not the root after error")
	}
	if got := lookup(t, c, "a"); got != 3 {
		t.Errorf("a = %g; want 3", got)
	}
	// The session is still usable.
	if err := Source(c, "test", "b = f(5);"); err != nil {
		t.Fatal(err)
	}
	if got := lookup(t, c, "b"); got != 6 {
		t.Errorf("b = %g; want 6", got)
	}
}

func TestUnitsShareWorkspace(t *testing.T) {
	c, stdout, _ := newContext()
	for _, src := range []string{"x = 2;", "y = x * 3;", "disp(y)"} {
		if err := Source(c, "test", src); err != nil {
			t.Fatal(err)
		}
	}
	if got := strings.TrimSpace(stdout.String()); got != "6" {
		t.Errorf("output %q; want 6", got)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.m")
	if err := os.WriteFile(script, []byte("total = 0;\nfor k = 1:4\n  total = total + k;\nend\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, _, _ := newContext()
	if err := File(c, script); err != nil {
		t.Fatal(err)
	}
	if got := lookup(t, c, "total"); got != 10 {
		t.Errorf("total = %g; want 10", got)
	}
	if err := File(c, filepath.Join(dir, "missing.m")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFunctionFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "hello.m")
	src := "function hello()\n  fprintf('hello from %s\\n', 'file');\nend\n"
	if err := os.WriteFile(file, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	c, stdout, _ := newContext()
	if err := File(c, file); err != nil {
		t.Fatal(err)
	}
	if got, want := stdout.String(), "hello from file\n"; got != want {
		t.Errorf("output %q; want %q", got, want)
	}
}

func TestPathFunction(t *testing.T) {
	dir := t.TempDir()
	src := "function y = triple(x)\n  y = 3 * x;\nend\n"
	if err := os.WriteFile(filepath.Join(dir, "triple.m"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	c, _, _ := newContext()
	c.Config().AddPath(dir)
	if err := Source(c, "test", "z = triple(7);"); err != nil {
		t.Fatal(err)
	}
	if got := lookup(t, c, "z"); got != 21 {
		t.Errorf("z = %g; want 21", got)
	}
}

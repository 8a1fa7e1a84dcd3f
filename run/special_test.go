// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"matfree.dev/matfree/config"
	"matfree.dev/matfree/value"
)

func TestSpecial(t *testing.T) {
	var tests = []struct {
		line string
		out  string
	}{
		{")format long", ""},
		{")format", "long\n"},
		{")seed 42", ""},
		{")seed", "42\n"},
		{`)prompt "m> "`, ""},
		{")prompt", "\"m> \"\n"},
		{")debug trace 1", "trace\t1\n"},
		{")debug trace", "trace\t0\n"},
		{")help sqrt", "sqrt is a builtin function\n"},
		{")help sqrtt", "sqrtt is not defined; did you mean sqrt?\n"},
	}
	c, stdout, stderr := newContext()
	for _, test := range tests {
		stdout.Reset()
		if err := Special(c, test.line); err != nil {
			t.Errorf("%s: %v", test.line, err)
			continue
		}
		if got := stdout.String(); got != test.out {
			t.Errorf("%s: output %q; want %q", test.line, got, test.out)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected error output %q", stderr)
	}
	conf := c.Config()
	if conf.Format() != config.Long || conf.RandomSeed() != 42 || conf.Prompt() != "m> " {
		t.Errorf("settings not applied: %s %d %q", conf.Format(), conf.RandomSeed(), conf.Prompt())
	}
}

func TestSpecialErrors(t *testing.T) {
	var tests = []struct {
		line string
		err  string
	}{
		{")", "missing command"},
		{")frobnicate", "unknown command )frobnicate"},
		{")debug nonsense", "no such debug flag"},
		{")format wide", "format must be short or long"},
		{")seed -3", "non-negative integer"},
		{")prompt unquoted", "quoted string"},
		{")get", "usage"},
	}
	for _, test := range tests {
		c, _, stderr := newContext()
		err := Special(c, test.line)
		if err == nil {
			t.Errorf("%s: expected error", test.line)
			continue
		}
		if !strings.Contains(err.Error(), test.err) {
			t.Errorf("%s: error %q; want %q", test.line, err, test.err)
		}
		if !strings.HasPrefix(stderr.String(), "Error: ") {
			t.Errorf("%s: error output %q", test.line, stderr)
		}
	}
}

func TestAbout(t *testing.T) {
	c, stdout, _ := newContext()
	if err := Special(c, ")about strr"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "strrep") {
		t.Errorf("about strr: %q does not mention strrep", stdout)
	}
}

func TestSaveAndGet(t *testing.T) {
	file := filepath.Join(t.TempDir(), "ws.m")
	c, _, stderr := newContext()
	src := `
x = [1 2.5; -3 1e-7];
s = 'it''s';
e = [];
k = {1, 'a'; [1 2], {}};
st = struct('a', 1, 'b', {{2}});
f = @(t) t.^2;
n = 3;
g = @(t) t + n;
`
	if err := Source(c, "test", src); err != nil {
		t.Fatal(err)
	}
	c.Config().SetRandomSeed(9)
	if err := Special(c, ")save "+file); err != nil {
		t.Fatal(err)
	}
	if got, want := stderr.String(), "Warning: save: skipping g: anonymous function captures n\n"; got != want {
		t.Errorf("warning %q; want %q", got, want)
	}

	d, _, _ := newContext()
	if err := Special(d, ")get "+file); err != nil {
		t.Fatal(err)
	}
	if d.Config().RandomSeed() != 9 {
		t.Errorf("seed %d after get; want 9", d.Config().RandomSeed())
	}
	for _, name := range []string{"x", "s", "e", "k", "st", "n"} {
		want, _ := c.Lookup(name)
		got, ok := d.Lookup(name)
		if !ok {
			t.Errorf("%s not restored", name)
			continue
		}
		if !value.Equal(got, want) || got.Class() != want.Class() {
			t.Errorf("%s = %s; want %s", name, got, want)
		}
	}
	f, ok := d.Lookup("f")
	if !ok || f.String() != "@(t) t.^2" {
		t.Errorf("f = %v; want @(t) t.^2", f)
	}
	if _, ok := d.Lookup("g"); ok {
		t.Error("g was restored")
	}
}

func TestGetStopsAtError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.m")
	writeFile(t, file, "a = 1;\nerror('stop');\n)seed 5\nb = 2;\n")
	d, _, stderr := newContext()
	if err := Special(d, ")get "+file); err != nil {
		t.Fatal(err)
	}
	if _, ok := d.Lookup("a"); !ok {
		t.Error("a is not bound")
	}
	if _, ok := d.Lookup("b"); ok {
		t.Error("b is bound after the error")
	}
	if d.Config().RandomSeed() == 5 {
		t.Error("command after the error ran")
	}
	if got, want := stderr.String(), "Error: stop\n"; got != want {
		t.Errorf("error output %q; want %q", got, want)
	}
}

func writeFile(t *testing.T, file, text string) {
	t.Helper()
	if err := os.WriteFile(file, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

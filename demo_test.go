// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"matfree.dev/matfree/config"
	"matfree.dev/matfree/demo"
	"matfree.dev/matfree/exec"
	"matfree.dev/matfree/run"
)

func TestDemo(t *testing.T) {
	var conf config.Config
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	conf.SetOutput(stdout)
	conf.SetErrOutput(stderr)
	context := exec.NewContext(&conf)
	lines := 0
	step := func(line string) {
		lines++
		if run.Source(context, "demo", line) != nil {
			t.Errorf("demo line %q failed: %s", line, stderr)
			stderr.Reset()
		}
	}
	if err := demo.Run(nil, step, stdout); err != nil {
		t.Fatal(err)
	}
	if want := strings.Count(demo.Text(), "\n") - 1; lines != want {
		t.Errorf("ran %d lines; want %d", lines, want)
	}
	for _, want := range []string{"something went wrong", "5050"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("demo output does not contain %q", want)
		}
	}
}

func TestDemoUserInput(t *testing.T) {
	var ran []string
	step := func(line string) { ran = append(ran, line) }
	input := strings.NewReader("\n1 + 1\n\nquit\n\n")
	out := new(bytes.Buffer)
	if err := demo.Run(input, step, out); err != nil {
		t.Fatal(err)
	}
	script := strings.Split(demo.Text(), "\n")
	want := []string{script[1], "1 + 1", script[2]}
	if strings.Join(ran, "|") != strings.Join(want, "|") {
		t.Errorf("ran %q; want %q", ran, want)
	}
	if !strings.HasPrefix(out.String(), script[0]+"\n") {
		t.Errorf("output does not begin with the instructions: %q", out)
	}
}

func TestCompletions(t *testing.T) {
	var conf config.Config
	conf.SetOutput(new(bytes.Buffer))
	context := exec.NewContext(&conf)
	if err := run.Source(context, "test", "strawberry = 1;"); err != nil {
		t.Fatal(err)
	}
	got := completions(context, "x = strr")
	if len(got) == 0 || got[0] != "x = strrep" {
		t.Errorf("completions = %q; want x = strrep first", got)
	}
	got = completions(context, "y = 2*straw")
	if len(got) != 1 || got[0] != "y = 2*strawberry" {
		t.Errorf("completions = %q; want [y = 2*strawberry]", got)
	}
	if got := completions(context, "a + "); got != nil {
		t.Errorf("completions after space = %q; want none", got)
	}
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"matfree.dev/matfree/config"
	"matfree.dev/matfree/exec"
	"matfree.dev/matfree/run"
)

const verbose = false

// TestAll runs the examples in testdata. Each example is input lines
// followed by tab-indented lines of expected output, with an indented "%"
// standing for a blank line. Each example runs in a fresh session. In a
// file whose name ends in _fail.m, every example must fail and the
// expected lines must appear in its error output.
func TestAll(t *testing.T) {
	var err error
	check := func() {
		if err != nil {
			t.Fatal(err)
		}
	}
	names, err := filepath.Glob(filepath.Join("testdata", "*.m"))
	check()
	for _, path := range names {
		t.Log(path)
		var data []byte
		data, err = os.ReadFile(path)
		check()
		lines := strings.Split(string(data), "\n")
		// Will have a trailing empty string.
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		lineNum := 1
		errCount := 0
		for len(lines) > 0 {
			// Assemble the input to one example.
			input, output, length := getText(lines)
			if input == nil {
				break
			}
			if verbose {
				fmt.Printf("%s:%d: %s\n", path, lineNum, input)
			}
			if !runTest(t, path, lineNum, input, output) {
				errCount++
				if errCount > 3 {
					t.Fatal("too many errors")
				}
			}
			lines = lines[length:]
			lineNum += length
		}
	}
}

func runTest(t *testing.T, name string, lineNum int, input, output []string) bool {
	shouldFail := strings.HasSuffix(name, "_fail.m")
	in := strings.Join(input, "\n")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	var conf config.Config
	conf.SetOutput(stdout)
	conf.SetErrOutput(stderr)
	run.Reader(exec.NewContext(&conf), name, strings.NewReader(in))
	if shouldFail {
		if stderr.Len() == 0 {
			t.Errorf("\nexpected execution failure at %s:%d:\n%s", name, lineNum, in)
			return false
		}
		for _, want := range output {
			if !strings.Contains(stderr.String(), want) {
				t.Errorf("\n%s:%d:\n\t%s\nerror output:\n\t%s\nwant:\n\t%s", name, lineNum, in, stderr, want)
				return false
			}
		}
		return true
	}
	if stderr.Len() != 0 {
		t.Errorf("\nexecution failure (%s) at %s:%d:\n%s", stderr, name, lineNum, in)
		return false
	}
	result := strings.Split(stdout.String(), "\n")
	if !equal(result, output) {
		t.Errorf("\n%s:%d:\n\t%s\ngot:\n\t%s\nwant:\n\t%s",
			name, lineNum,
			strings.Join(input, "\n\t"),
			strings.Join(result, "\n\t"),
			strings.Join(output, "\n\t"))
		return false
	}
	return true
}

// equal compares output lines ignoring surrounding space on each line
// and trailing blank lines.
func equal(a, b []string) bool {
	for len(a) > 0 && strings.TrimSpace(a[len(a)-1]) == "" {
		a = a[:len(a)-1]
	}
	if len(a) != len(b) {
		return false
	}
	for i, s := range a {
		if strings.TrimSpace(s) != strings.TrimSpace(b[i]) {
			return false
		}
	}
	return true
}

func getText(lines []string) (input, output []string, length int) {
	// Skip blank and initial comment lines.
	for _, line := range lines {
		if len(line) > 0 && !strings.HasPrefix(line, "%") {
			break
		}
		length++
	}

	// Input ends at tab-indented line.
	for _, line := range lines[length:] {
		line = strings.TrimRight(line, " \t")
		if strings.HasPrefix(line, "\t") {
			break
		}
		input = append(input, line)
		length++
	}

	// Output ends at non-blank, non-tab-indented line.
	// Indented "%" is expected blank line in output.
	for _, line := range lines[length:] {
		line = strings.TrimRight(line, " \t")
		if line != "" && !strings.HasPrefix(line, "\t") {
			break
		}
		output = append(output, strings.TrimPrefix(line, "\t"))
		length++
	}
	for len(output) > 0 && output[len(output)-1] == "" {
		output = output[:len(output)-1]
	}
	for i, line := range output {
		if line == "%" {
			output[i] = ""
		}
	}

	return // Will return nil if no more tests exist.
}

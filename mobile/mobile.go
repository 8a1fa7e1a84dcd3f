// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The mobile package provides a very narrow interface to matfree,
// suitable for wrapping in a UI for mobile applications.
// It is designed to work well with the gomobile tool by exposing
// only primitive types. It's also handy for testing.
//
// The package holds one session, so only one execution stream
// (Eval or Demo) can be active at a time.
package mobile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"matfree.dev/matfree/config"
	"matfree.dev/matfree/exec"
	"matfree.dev/matfree/run"
)

var (
	conf    *config.Config
	context *exec.Context
)

func init() {
	Reset()
}

// Eval executes the input, which may hold several lines of statements
// and session commands, and returns its output. Execution stops at the
// first error, whose report is returned in the error value.
func Eval(expr string) (result string, errors error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	conf.SetOutput(stdout)
	conf.SetErrOutput(stderr)

	run.Reader(context, " ", strings.NewReader(expr))
	var err error
	if stderr.Len() > 0 {
		err = fmt.Errorf("%s", stderr)
	}
	return stdout.String(), err
}

// Demo represents a running line-by-line demonstration.
type Demo struct {
	scanner *bufio.Scanner
}

// NewDemo returns a new Demo that will scan the input text line by line.
// It starts a fresh session.
func NewDemo(input string) *Demo {
	Reset()
	return &Demo{
		scanner: bufio.NewScanner(strings.NewReader(input)),
	}
}

// Next returns the result (and error) produced by the next line of
// input. It returns ("", io.EOF) at EOF.
func (d *Demo) Next() (result string, err error) {
	if !d.scanner.Scan() {
		if err := d.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return Eval(d.scanner.Text())
}

// Reset clears all state to the initial value.
func Reset() {
	conf = new(config.Config)
	context = exec.NewContext(conf)
}

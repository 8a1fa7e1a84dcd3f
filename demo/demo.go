// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demo implements the I/O for running the -demo flag. The
// script for the demo is in src/demo.m. Its content is
// embedded in this source file.
package demo

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	_ "embed"
)

//go:embed src/demo.m
var demoText []byte

// Text returns the input text for the standard demo.
func Text() string {
	return string(demoText)
}

// Run runs the demo. Lines of the script are shown on output and passed
// to execute one at a time. When the user enters a blank line, the next
// line from the script is delivered. If the user's input line has text,
// that is executed instead and the script does not advance; "quit" ends
// the demo. A nil userInput ignores the user and just runs the script.
func Run(userInput io.Reader, execute func(line string), output io.Writer) error {
	text := demoText // Don't overwrite the global!
	var scan *bufio.Scanner
	if userInput != nil {
		scan = bufio.NewScanner(userInput)
	}
	nextLine := func() (line []byte) {
		nl := bytes.IndexByte(text, '\n')
		if nl < 0 { // EOF or incomplete line.
			return nil
		}
		line, text = text[:nl+1], text[nl+1:]
		return line
	}
	// Show first line, with instructions, before accepting user input.
	output.Write(nextLine())
	for userInput == nil || scan.Scan() {
		if userInput != nil && len(bytes.TrimSpace(scan.Bytes())) > 0 {
			line := strings.TrimSpace(scan.Text())
			if line == "quit" {
				break
			}
			execute(line)
			continue
		}
		line := nextLine()
		if line == nil {
			break
		}
		output.Write(line)
		execute(strings.TrimSuffix(string(line), "\n"))
	}
	if scan == nil {
		return nil
	}
	return scan.Err()
}

// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

// Saving the workspace to a file.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"

	"matfree.dev/matfree/exec"
	"matfree.dev/matfree/value"
)

/*
Output is session commands followed by source text, so )get restores the
settings and then the variables. Numbers are written with 17 significant
digits, which recovers every double exactly.

User-defined functions are not saved: they live in files, and the source
text of a function typed at the prompt is not retained. An anonymous
function that captured variables cannot be written as source either; it
is skipped with a warning.
*/

// save writes the settings and the variables of the root workspace to the
// named file. The file name "-" means the configured output, for testing.
func save(c *exec.Context, file string) {
	conf := c.Config()
	out := conf.Output()
	if file != "-" {
		fd, err := os.Create(file)
		if err != nil {
			value.Errorf(value.InvalidArgument, "%s", err)
		}
		defer fd.Close()
		buf := bufio.NewWriter(fd)
		defer buf.Flush()
		out = buf
	}
	writeWorkspace(c, out)
	log.LogVf("run: saved workspace to %s", file)
}

func writeWorkspace(c *exec.Context, out io.Writer) {
	conf := c.Config()
	fmt.Fprintf(out, ")format %s\n", conf.Format())
	fmt.Fprintf(out, ")seed %d\n", conf.RandomSeed())
	if p := conf.Prompt(); p != "" {
		fmt.Fprintf(out, ")prompt %q\n", p)
	}
	root := c.Root()
	for _, name := range root.Names() {
		v, _ := root.Get(name)
		src, err := source(c, v)
		if err != nil {
			value.Warnf(c, "save: skipping %s: %v", name, err)
			continue
		}
		fmt.Fprintf(out, "%s = %s;\n", name, src)
	}
}

// source returns text that evaluates to v.
func source(c *exec.Context, v value.Value) (string, error) {
	switch v := v.(type) {
	case value.Empty:
		return "[]", nil
	case *value.Cell:
		rows, cols := v.Size()
		if rows == 0 || cols == 0 {
			return fmt.Sprintf("cell(%d,%d)", rows, cols), nil
		}
		var b strings.Builder
		b.WriteByte('{')
		for i := range rows {
			if i > 0 {
				b.WriteString("; ")
			}
			for j := range cols {
				if j > 0 {
					b.WriteString(", ")
				}
				s, err := source(c, v.At(i, j))
				if err != nil {
					return "", err
				}
				b.WriteString(s)
			}
		}
		b.WriteByte('}')
		return b.String(), nil
	case *value.Struct:
		// struct() unwraps a cell argument, so a cell field is wrapped in one more.
		parts := []string{}
		for _, name := range v.Fields() {
			f := v.Field(name)
			s, err := source(c, f)
			if err != nil {
				return "", err
			}
			if _, ok := f.(*value.Cell); ok {
				s = "{" + s + "}"
			}
			parts = append(parts, "'"+name+"'", s)
		}
		return "struct(" + strings.Join(parts, ", ") + ")", nil
	case *value.FunctionHandle:
		if v.IsAnonymous() && len(v.Captured) > 0 {
			return "", fmt.Errorf("anonymous function captures %s", strings.Join(v.CapturedNames(), ", "))
		}
		return v.String(), nil
	}
	r := c.Call(value.String("mat2str"), []value.Value{v, value.Scalar(17)}, 1)
	return string(r[0].(value.String)), nil
}

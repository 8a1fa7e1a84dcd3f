// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"matfree.dev/matfree/config"
)

// formatFloat formats x with the given number of decimals, or without
// any when x is an integer.
func formatFloat(x float64, decimals int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}
	if x == 0 {
		x = 0 // No -0.
	}
	if x == math.Trunc(x) && math.Abs(x) < 1e15 {
		return strconv.FormatFloat(x, 'f', 0, 64)
	}
	return strconv.FormatFloat(x, 'f', decimals, 64)
}

// FormatScalar formats a number the way display does.
func FormatScalar(conf *config.Config, x float64) string {
	return formatter(conf, []float64{x})(x)
}

// formatter returns the function that formats the elements of one matrix.
// All elements share the style: integers when every finite element is
// integral, fixed-point with the format's decimals otherwise.
func formatter(conf *config.Config, data []float64) func(float64) string {
	integral := true
	for _, x := range data {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			continue
		}
		if x != math.Trunc(x) || math.Abs(x) >= 1e15 {
			integral = false
			break
		}
	}
	decimals := conf.Format().Decimals()
	return func(x float64) string {
		switch {
		case math.IsNaN(x):
			return "NaN"
		case math.IsInf(x, 1):
			return "Inf"
		case math.IsInf(x, -1):
			return "-Inf"
		}
		if x == 0 {
			x = 0
		}
		if integral {
			return strconv.FormatFloat(x, 'f', 0, 64)
		}
		return strconv.FormatFloat(x, 'f', decimals, 64)
	}
}

// matrixLines returns the rows of m as displayed: indented by 3 spaces,
// right-aligned to a common width and separated by 3 spaces.
func matrixLines(conf *config.Config, m *Matrix) []string {
	format := formatter(conf, m.data)
	elems := make([]string, len(m.data))
	width := 0
	for i, x := range m.data {
		elems[i] = format(x)
		width = max(width, len(elems[i]))
	}
	lines := make([]string, m.rows)
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		b.Reset()
		for j := 0; j < m.cols; j++ {
			b.WriteString("   ")
			s := elems[i*m.cols+j]
			b.WriteString(strings.Repeat(" ", width-len(s)))
			b.WriteString(s)
		}
		lines[i] = b.String()
	}
	return lines
}

// Display writes v as the result of an unsuppressed statement:
//
//	name =
//
//	   1   2   3
//
func Display(conf *config.Config, w io.Writer, name string, v Value) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s =\n\n", name)
	for _, line := range bodyLines(conf, v) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	w.Write(b.Bytes())
}

// bodyLines returns the lines that follow the header in Display.
func bodyLines(conf *config.Config, v Value) []string {
	switch v := v.(type) {
	case *Matrix:
		return numericLines(conf, v)
	case Logical:
		return numericLines(conf, v.Matrix)
	case String:
		return []string{"    '" + string(v) + "'"}
	case Empty:
		return []string{"     []"}
	case *Cell:
		return []string{fmt.Sprintf("  {%dx%d cell}", v.rows, v.cols)}
	case *Struct:
		lines := []string{"  struct with fields:", ""}
		for _, name := range v.order {
			lines = append(lines, "    "+name+": "+v.fields[name].String())
		}
		return lines
	case *FunctionHandle:
		return []string{"    " + v.String()}
	}
	panic(fmt.Sprintf("internal error: unknown value type %T", v))
}

func numericLines(conf *config.Config, m *Matrix) []string {
	if m.IsEmpty() {
		if m.rows == 0 && m.cols == 0 {
			return []string{"     []"}
		}
		return []string{fmt.Sprintf("     [](%dx%d)", m.rows, m.cols)}
	}
	return matrixLines(conf, m)
}

// Disp returns v formatted as by disp: the body of the display without
// the header, and strings without quotes.
func Disp(conf *config.Config, v Value) string {
	switch v := v.(type) {
	case String:
		return string(v) + "\n"
	case Empty:
		return ""
	case *Matrix:
		if v.IsEmpty() {
			return ""
		}
	case Logical:
		if v.IsEmpty() {
			return ""
		}
	case *Struct:
		var b strings.Builder
		for _, name := range v.order {
			fmt.Fprintf(&b, "    %s: %s\n", name, v.fields[name].String())
		}
		return b.String()
	}
	return strings.Join(bodyLines(conf, v), "\n") + "\n"
}

// shortForm returns the one-line form of a numeric value used inside
// struct and cell displays.
func shortForm(m *Matrix, class Class) string {
	switch {
	case m.rows == 0 && m.cols == 0:
		return "[]"
	case m.IsScalar():
		return shortNumber(m.data[0])
	case m.rows == 1 && m.cols <= 10:
		parts := make([]string, m.cols)
		for i, x := range m.data {
			parts[i] = shortNumber(x)
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	return fmt.Sprintf("[%dx%d %s]", m.rows, m.cols, class)
}

func shortNumber(x float64) string {
	if x == math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
		return formatFloat(x, 0)
	}
	return strconv.FormatFloat(x, 'f', 4, 64)
}

// Num2Str formats a numeric scalar with about five significant digits
// beyond the integer part, as num2str does.
func Num2Str(x float64) string {
	switch {
	case math.IsNaN(x), math.IsInf(x, 0):
		return formatFloat(x, 0)
	case x == math.Trunc(x) && math.Abs(x) < 1e15:
		return formatFloat(x, 0)
	}
	digits := int(math.Floor(math.Log10(math.Abs(x)))) + 1
	prec := max(digits, 1) + 4
	return strconv.FormatFloat(x, 'g', prec, 64)
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"fmt"
	"math"
	"strings"

	"matfree.dev/matfree/value"
)

// unescape interprets the backslash escapes of a format string.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// An item is one argument consumed by a conversion: a whole string or a
// single number.
type item struct {
	text   string
	num    float64
	isText bool
}

// items flattens the arguments of sprintf. Strings stay whole and
// numeric arrays contribute their elements in column-major order.
func items(name string, args []value.Value) []item {
	var out []item
	for _, a := range args {
		if s, ok := a.(value.String); ok {
			out = append(out, item{text: string(s), isText: true})
			continue
		}
		for _, x := range value.ToMatrix(name, a).ColumnMajor() {
			out = append(out, item{num: x})
		}
	}
	return out
}

// A directive is a piece of a format: literal text or one conversion.
type directive struct {
	literal string
	flags   string // Flags, width and precision, as in "-08.3".
	verb    byte   // 0 for literal text.
}

// parseFormat splits a format into directives.
func parseFormat(name, format string) []directive {
	var ds []directive
	var lit strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			lit.WriteByte(c)
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			lit.WriteByte('%')
			i++
			continue
		}
		j := i + 1
		for j < len(format) && strings.IndexByte("-+ #0123456789.", format[j]) >= 0 {
			j++
		}
		if j == len(format) {
			value.Errorf(value.InvalidArgument, "%s: incomplete conversion in format %q", name, format)
		}
		if format[j] == '*' {
			value.Errorf(value.InvalidArgument, "%s: '*' widths are not supported", name)
		}
		if lit.Len() > 0 {
			ds = append(ds, directive{literal: lit.String()})
			lit.Reset()
		}
		ds = append(ds, directive{flags: format[i+1 : j], verb: format[j]})
		i = j
	}
	if lit.Len() > 0 {
		ds = append(ds, directive{literal: lit.String()})
	}
	return ds
}

// sprintf formats the arguments under the format, reusing the format
// until the arguments are used up. Output stops at the first conversion
// with no argument left, except that a format with no arguments at all is
// written once, with empty conversions.
func sprintf(name, format string, args []value.Value) string {
	ds := parseFormat(name, unescape(format))
	its := items(name, args)
	convs := 0
	for _, d := range ds {
		if d.verb != 0 {
			convs++
		}
	}
	var b strings.Builder
	if convs == 0 || len(its) == 0 {
		for _, d := range ds {
			if d.verb == 0 {
				b.WriteString(d.literal)
			}
		}
		return b.String()
	}
	for next := 0; next < len(its); {
		for _, d := range ds {
			if d.verb == 0 {
				b.WriteString(d.literal)
				continue
			}
			if next == len(its) {
				return b.String()
			}
			b.WriteString(convert(name, d, its[next]))
			next++
		}
	}
	return b.String()
}

// convert formats one item under one conversion.
func convert(name string, d directive, it item) string {
	switch d.verb {
	case 's':
		if it.isText {
			return fmt.Sprintf("%"+d.flags+"s", it.text)
		}
		if it.num == math.Trunc(it.num) && it.num >= 0 && it.num < 0x110000 {
			return fmt.Sprintf("%"+d.flags+"c", rune(it.num))
		}
		return fmt.Sprintf("%"+d.flags+"s", value.Num2Str(it.num))
	case 'c':
		if it.isText {
			return fmt.Sprintf("%"+d.flags+"s", it.text)
		}
		return fmt.Sprintf("%"+d.flags+"c", rune(it.num))
	case 'd', 'i', 'u', 'x', 'X', 'o':
		if it.isText {
			return fmt.Sprintf("%"+stripPrecision(d.flags)+"s", it.text)
		}
		x := it.num
		switch {
		case math.IsNaN(x), math.IsInf(x, 0):
			return fmt.Sprintf("%"+stripPrecision(d.flags)+"s", value.Num2Str(x))
		case x != math.Trunc(x):
			return fmt.Sprintf("%"+d.flags+"e", x)
		}
		verb := d.verb
		if verb == 'i' || verb == 'u' {
			verb = 'd'
		}
		return fmt.Sprintf("%"+d.flags+string(verb), int64(x))
	case 'f', 'F', 'e', 'E', 'g', 'G':
		if it.isText {
			return fmt.Sprintf("%"+stripPrecision(d.flags)+"s", it.text)
		}
		x := it.num
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Sprintf("%"+stripPrecision(d.flags)+"s", value.Num2Str(x))
		}
		verb := d.verb
		if verb == 'F' {
			verb = 'f'
		}
		flags := d.flags
		if (verb == 'f' || verb == 'e' || verb == 'E') && !strings.Contains(flags, ".") {
			flags += ".6"
		}
		if verb == 'g' || verb == 'G' {
			return cFormatG(flags, verb, x)
		}
		return fmt.Sprintf("%"+flags+string(verb), x)
	}
	value.Errorf(value.InvalidArgument, "%s: unsupported conversion %%%c", name, d.verb)
	return ""
}

func stripPrecision(flags string) string {
	if i := strings.IndexByte(flags, '.'); i >= 0 {
		return flags[:i]
	}
	return flags
}

// cFormatG formats x as C's %g does, which drops trailing zeros and uses
// two-digit exponents; Go's %g differs in both.
func cFormatG(flags string, verb byte, x float64) string {
	prec := 6
	width := flags
	if i := strings.IndexByte(flags, '.'); i >= 0 {
		fmt.Sscanf(flags[i+1:], "%d", &prec)
		width = flags[:i]
	}
	if prec == 0 {
		prec = 1
	}
	exp := 0
	if x != 0 {
		// The exponent after rounding to prec digits.
		r := fmt.Sprintf("%.*e", prec-1, x)
		fmt.Sscanf(r[strings.IndexByte(r, 'e')+1:], "%d", &exp)
	}
	var s string
	if exp < -4 || exp >= prec {
		s = fmt.Sprintf("%.*e", prec-1, x)
		mant, e, _ := strings.Cut(s, "e")
		if !strings.Contains(flags, "#") {
			mant = trimZeros(mant)
		}
		s = mant + "e" + e
		if verb == 'G' {
			s = strings.ToUpper(s)
		}
	} else {
		s = fmt.Sprintf("%.*f", max(prec-1-exp, 0), x)
		if !strings.Contains(flags, "#") {
			s = trimZeros(s)
		}
	}
	if width != "" {
		s = fmt.Sprintf("%"+width+"s", s)
	}
	return s
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

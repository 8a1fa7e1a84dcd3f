// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"matfree.dev/matfree/value"
)

func init() {
	register("sprintf", func(_ value.Context, args []value.Value) value.Value {
		nargs("sprintf", args, 1, -1)
		return value.String(sprintf("sprintf", value.ToStr("sprintf", args[0]), args[1:]))
	})
	register("fprintf", fprintf)
	register("disp", func(c value.Context, args []value.Value) value.Value {
		nargs("disp", args, 1, 1)
		io.WriteString(c.Config().Output(), value.Disp(c.Config(), args[0]))
		return nil
	})
	register("display", func(c value.Context, args []value.Value) value.Value {
		nargs("display", args, 1, 1)
		value.Display(c.Config(), c.Config().Output(), "ans", args[0])
		return nil
	})
	register("num2str", num2str)
	register("int2str", func(c value.Context, args []value.Value) value.Value {
		nargs("int2str", args, 1, 1)
		return num2str(c, []value.Value{value.ToMatrix("int2str", args[0]).Map(math.Round)})
	})
	register("mat2str", mat2str)
	registerMulti("str2num", str2num)
	register("str2double", str2double)
	for name, eq := range map[string]func(a, b string) bool{
		"strcmp":  func(a, b string) bool { return a == b },
		"strcmpi": strings.EqualFold,
	} {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 2, 2)
			return compareStrings(args[0], args[1], eq)
		})
	}
	for name, fold := range map[string]bool{"strncmp": false, "strncmpi": true} {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 3, 3)
			n := value.ToInt(name, args[2])
			return compareStrings(args[0], args[1], func(a, b string) bool {
				if len(a) < n || len(b) < n {
					return false
				}
				if fold {
					return strings.EqualFold(a[:n], b[:n])
				}
				return a[:n] == b[:n]
			})
		})
	}
	register("strcat", strcat)
	register("strsplit", strsplit)
	register("strjoin", strjoin)
	register("strrep", func(_ value.Context, args []value.Value) value.Value {
		nargs("strrep", args, 3, 3)
		old := value.ToStr("strrep", args[1])
		repl := value.ToStr("strrep", args[2])
		return mapStrings("strrep", args[0], func(s string) string { return strings.ReplaceAll(s, old, repl) })
	})
	for name, f := range map[string]func(string) string{
		"strtrim": func(s string) string {
			return strings.TrimFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == 0 })
		},
		"deblank": func(s string) string {
			return strings.TrimRightFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == 0 })
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	} {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 1, 1)
			return mapStrings(name, args[0], f)
		})
	}
	register("strfind", strfind)
	for name, match := range map[string]func(s, pat string) bool{
		"contains":   strings.Contains,
		"startsWith": strings.HasPrefix,
		"endsWith":   strings.HasSuffix,
	} {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 2, 2)
			pats := stringList(name, args[1])
			test := func(s string) bool {
				for _, p := range pats {
					if match(s, p) {
						return true
					}
				}
				return false
			}
			if c, ok := args[0].(*value.Cell); ok {
				rows, cols := c.Size()
				out := make([]float64, 0, rows*cols)
				for _, elem := range c.Data() {
					out = append(out, b2f(test(value.ToStr(name, elem))))
				}
				return value.NewLogical(rows, cols, out)
			}
			return value.Bool(test(value.ToStr(name, args[0])))
		})
	}
	registerMulti("regexp", regexpFn)
	register("regexprep", regexprep)
	register("blanks", func(_ value.Context, args []value.Value) value.Value {
		nargs("blanks", args, 1, 1)
		return value.String(strings.Repeat(" ", max(value.ToInt("blanks", args[0]), 0)))
	})
	register("newline", func(_ value.Context, args []value.Value) value.Value {
		nargs("newline", args, 0, 0)
		return value.String("\n")
	})
	register("isspace", func(_ value.Context, args []value.Value) value.Value {
		nargs("isspace", args, 1, 1)
		if !value.IsText(args[0]) {
			rows, cols := args[0].Size()
			return value.NewLogical(rows, cols, make([]float64, rows*cols))
		}
		runes := args[0].(value.String).Runes()
		out := make([]float64, len(runes))
		for i, r := range runes {
			out[i] = b2f(unicode.IsSpace(r))
		}
		return value.NewLogical(1, len(out), out)
	})
	for name, base := range map[string]int{"dec2bin": 2, "dec2hex": 16} {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 1, 2)
			n := value.ToInt(name, args[0])
			if n < 0 {
				value.Errorf(value.InvalidArgument, "%s: argument must be a non-negative integer", name)
			}
			s := strings.ToUpper(strconv.FormatInt(int64(n), base))
			if len(args) == 2 {
				if width := value.ToInt(name, args[1]); len(s) < width {
					s = strings.Repeat("0", width-len(s)) + s
				}
			}
			return value.String(s)
		})
	}
	for name, base := range map[string]int{"bin2dec": 2, "hex2dec": 16} {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 1, 1)
			n, err := strconv.ParseInt(strings.TrimSpace(value.ToStr(name, args[0])), base, 64)
			if err != nil {
				value.Errorf(value.InvalidArgument, "%s: %v", name, err)
			}
			return value.Scalar(float64(n))
		})
	}
}

// fprintf(format, ...) writes to the output; fprintf(fid, format, ...)
// writes to standard output for fid 1 and the error output for fid 2.
func fprintf(c value.Context, args []value.Value) value.Value {
	nargs("fprintf", args, 1, -1)
	w := c.Config().Output()
	if !value.IsText(args[0]) {
		switch fid := value.ToInt("fprintf file identifier", args[0]); fid {
		case 1:
		case 2:
			w = c.Config().ErrOutput()
		default:
			value.Errorf(value.InvalidArgument, "fprintf: invalid file identifier %d", fid)
		}
		args = args[1:]
		nargs("fprintf", args, 1, -1)
	}
	io.WriteString(w, sprintf("fprintf", value.ToStr("fprintf", args[0]), args[1:]))
	return nil
}

// num2str(x)
// num2str(x, precision)
// num2str(x, format)
// The rows of a matrix are joined by newlines, with columns separated by
// two spaces.
func num2str(_ value.Context, args []value.Value) value.Value {
	nargs("num2str", args, 1, 2)
	if s, ok := args[0].(value.String); ok {
		return s
	}
	m := value.ToMatrix("num2str", args[0])
	format := func(x float64) string { return value.Num2Str(x) }
	if len(args) == 2 {
		if f, ok := args[1].(value.String); ok {
			return value.String(sprintf("num2str", string(f), args[:1]))
		}
		prec := value.ToInt("num2str precision", args[1])
		format = func(x float64) string {
			return cFormatG("."+strconv.Itoa(prec), 'g', x)
		}
	}
	if m.IsScalar() {
		return value.String(format(m.Float()))
	}
	rows, cols := m.Size()
	cells := make([]string, rows*cols)
	width := 0
	for i, x := range m.Data() {
		cells[i] = format(x)
		width = max(width, len(cells[i]))
	}
	lines := make([]string, rows)
	for i := range rows {
		parts := make([]string, cols)
		for j := range cols {
			parts[j] = fmt.Sprintf("%*s", width, cells[i*cols+j])
		}
		lines[i] = strings.Join(parts, "  ")
	}
	return value.String(strings.Join(lines, "\n"))
}

// mat2str returns text that evaluates to the value, as "[1 2;3 4]".
func mat2str(_ value.Context, args []value.Value) value.Value {
	nargs("mat2str", args, 1, 2)
	prec := 15
	if len(args) == 2 {
		prec = value.ToInt("mat2str precision", args[1])
	}
	switch v := args[0].(type) {
	case value.String:
		return value.String("'" + strings.ReplaceAll(string(v), "'", "''") + "'")
	case *value.Cell, *value.Struct, *value.FunctionHandle:
		value.Errorf(value.TypeError, "mat2str: argument must be numeric, logical or char")
	}
	_, logical := args[0].(value.Logical)
	m := value.ToMatrix("mat2str", args[0])
	elem := func(x float64) string {
		if logical {
			if x != 0 {
				return "true"
			}
			return "false"
		}
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return value.Num2Str(x)
		}
		return cFormatG("."+strconv.Itoa(prec), 'g', x)
	}
	if m.IsScalar() {
		return value.String(elem(m.Float()))
	}
	rows, cols := m.Size()
	if rows == 0 || cols == 0 {
		if rows == 0 && cols == 0 {
			return value.String("[]")
		}
		return value.String(fmt.Sprintf("zeros(%d,%d)", rows, cols))
	}
	var b strings.Builder
	b.WriteByte('[')
	for i := range rows {
		if i > 0 {
			b.WriteByte(';')
		}
		for j := range cols {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(elem(m.At(i, j)))
		}
	}
	b.WriteByte(']')
	return value.String(b.String())
}

// str2num evaluates text as an expression, returning [] and false if it
// does not evaluate to a numeric value.
func str2num(c value.Context, args []value.Value, _ int) []value.Value {
	nargs("str2num", args, 1, 1)
	text := value.ToStr("str2num", args[0])
	var result value.Value
	err := catch(func() {
		vals := c.Call(value.String("eval"), []value.Value{value.String("[" + text + "]")}, 1)
		if len(vals) == 1 {
			result = vals[0]
		}
	})
	if err != nil || result == nil || value.IsText(result) {
		return []value.Value{value.Zeros(0, 0), value.Bool(false)}
	}
	if _, ok := value.Numeric(result); !ok {
		return []value.Value{value.Zeros(0, 0), value.Bool(false)}
	}
	return []value.Value{result, value.Bool(true)}
}

// str2double converts text to a number, giving NaN if it is not one. A
// cell array of strings converts elementwise.
func str2double(_ value.Context, args []value.Value) value.Value {
	nargs("str2double", args, 1, 1)
	parse := func(v value.Value) float64 {
		s, ok := v.(value.String)
		if !ok {
			return math.NaN()
		}
		x, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(string(s)), ",", ""), 64)
		if err != nil {
			return math.NaN()
		}
		return x
	}
	if c, ok := args[0].(*value.Cell); ok {
		rows, cols := c.Size()
		out := make([]float64, 0, rows*cols)
		for _, elem := range c.Data() {
			out = append(out, parse(elem))
		}
		return value.NewMatrix(rows, cols, out)
	}
	return value.Scalar(parse(args[0]))
}

// compareStrings applies eq to two strings, or elementwise when either
// is a cell array. Non-strings compare unequal.
func compareStrings(a, b value.Value, eq func(a, b string) bool) value.Value {
	text := func(v value.Value) (string, bool) {
		s, ok := v.(value.String)
		return string(s), ok
	}
	ca, aCell := a.(*value.Cell)
	cb, bCell := b.(*value.Cell)
	switch {
	case !aCell && !bCell:
		sa, okA := text(a)
		sb, okB := text(b)
		return value.Bool(okA && okB && eq(sa, sb))
	case aCell && bCell:
		ar, ac := ca.Size()
		br, bc := cb.Size()
		if ar*ac == 1 {
			return compareStrings(ca.Data()[0], b, eq)
		}
		if br*bc == 1 {
			return compareStrings(a, cb.Data()[0], eq)
		}
		if ar != br || ac != bc {
			value.Errorf(value.DimensionMismatch, "cell arrays must be the same size: %dx%d vs %dx%d", ar, ac, br, bc)
		}
		out := make([]float64, ar*ac)
		for i := range out {
			sa, okA := text(ca.Data()[i])
			sb, okB := text(cb.Data()[i])
			out[i] = b2f(okA && okB && eq(sa, sb))
		}
		return value.NewLogical(ar, ac, out)
	case bCell:
		ca, b = cb, a
	}
	rows, cols := ca.Size()
	s, ok := text(b)
	out := make([]float64, rows*cols)
	for i, elem := range ca.Data() {
		se, okE := text(elem)
		out[i] = b2f(ok && okE && eq(se, s))
	}
	return value.NewLogical(rows, cols, out)
}

// strcat concatenates strings, dropping trailing whitespace from each.
// With a cell array argument it concatenates elementwise.
func strcat(_ value.Context, args []value.Value) value.Value {
	n := 1
	for _, a := range args {
		if c, ok := a.(*value.Cell); ok {
			n = max(n, value.Numel(c))
			if n != value.Numel(c) && value.Numel(c) != 1 {
				value.Errorf(value.DimensionMismatch, "strcat: cell arrays must be the same size")
			}
		}
	}
	anyCell := false
	out := make([]string, n)
	for _, a := range args {
		switch a := a.(type) {
		case *value.Cell:
			anyCell = true
			for i := range out {
				k := i
				if value.Numel(a) == 1 {
					k = 0
				}
				out[i] += value.ToStr("strcat", a.Linear(k))
			}
		default:
			s := strings.TrimRightFunc(value.ToStr("strcat", a), unicode.IsSpace)
			for i := range out {
				out[i] += s
			}
		}
	}
	if !anyCell {
		return value.String(out[0])
	}
	vals := make([]value.Value, n)
	for i, s := range out {
		vals[i] = value.String(s)
	}
	return value.CellRow(vals...)
}

// strsplit(s)
// strsplit(s, delimiter)
// Splits at whitespace or at any of the delimiters, which may be a cell
// array. Adjacent delimiters count as one.
func strsplit(_ value.Context, args []value.Value) value.Value {
	nargs("strsplit", args, 1, 2)
	s := value.ToStr("strsplit", args[0])
	pattern := `\s+`
	if len(args) == 2 {
		delims := stringList("strsplit", args[1])
		quoted := make([]string, len(delims))
		for i, d := range delims {
			quoted[i] = regexp.QuoteMeta(unescape(d))
		}
		pattern = "(?:" + strings.Join(quoted, "|") + ")+"
	}
	parts := regexp.MustCompile(pattern).Split(s, -1)
	vals := make([]value.Value, len(parts))
	for i, p := range parts {
		vals[i] = value.String(p)
	}
	return value.CellRow(vals...)
}

// strjoin(c)
// strjoin(c, delimiter)
func strjoin(_ value.Context, args []value.Value) value.Value {
	nargs("strjoin", args, 1, 2)
	if _, ok := args[0].(*value.Cell); !ok {
		value.Errorf(value.TypeError, "strjoin: first argument must be a cell array of strings")
	}
	sep := " "
	if len(args) == 2 {
		sep = unescape(value.ToStr("strjoin", args[1]))
	}
	return value.String(strings.Join(stringList("strjoin", args[0]), sep))
}

// strfind(s, pattern) returns the starting indexes of the occurrences of
// pattern in s, which may overlap.
func strfind(_ value.Context, args []value.Value) value.Value {
	nargs("strfind", args, 2, 2)
	runes := []rune(value.ToStr("strfind", args[0]))
	pat := []rune(value.ToStr("strfind", args[1]))
	var out []float64
	if len(pat) > 0 {
		for i := 0; i+len(pat) <= len(runes); i++ {
			if string(runes[i:i+len(pat)]) == string(pat) {
				out = append(out, float64(i+1))
			}
		}
	}
	if len(out) == 0 {
		return value.Zeros(1, 0)
	}
	return value.RowVector(out)
}

// compile compiles a pattern, accepting MATLAB's (?<name>...) groups and
// the 'ignorecase' option.
func compile(name, pattern string, ignoreCase bool) *regexp.Regexp {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		value.Errorf(value.InvalidArgument, "%s: %v", name, err)
	}
	return re
}

// runeIndex converts a byte offset in s to a 1-based character index.
func runeIndex(s string, offset int) float64 {
	return float64(len([]rune(s[:offset])) + 1)
}

// regexpFn implements regexp(s, pattern, options...). The outputs are
// those selected by the options 'match', 'tokens', 'names', 'start', 'end'
// and 'split', in order, or by default all of them starting with start,
// end and match. With 'once'
// only the first match is reported and matches are not wrapped in cells.
func regexpFn(_ value.Context, args []value.Value, nargout int) []value.Value {
	nargs("regexp", args, 2, -1)
	s := value.ToStr("regexp", args[0])
	var selected []string
	once, ignoreCase := false, false
	for _, a := range args[2:] {
		switch opt := strings.ToLower(value.ToStr("regexp", a)); opt {
		case "once":
			once = true
		case "ignorecase":
			ignoreCase = true
		case "match", "tokens", "names", "start", "end", "split":
			selected = append(selected, opt)
		default:
			value.Errorf(value.InvalidArgument, "regexp: unknown option %q", opt)
		}
	}
	if len(selected) == 0 {
		selected = []string{"start", "end", "match", "tokens", "names", "split"}
	}
	re := compile("regexp", value.ToStr("regexp", args[1]), ignoreCase)
	n := -1
	if once {
		n = 1
	}
	locs := re.FindAllStringSubmatchIndex(s, n)
	out := make([]value.Value, 0, len(selected))
	for _, sel := range selected {
		out = append(out, regexpResult(sel, s, re, locs, once))
		if len(out) >= max(nargout, 1) {
			break
		}
	}
	return out
}

func regexpResult(sel, s string, re *regexp.Regexp, locs [][]int, once bool) value.Value {
	switch sel {
	case "start", "end":
		var idx []float64
		for _, loc := range locs {
			if sel == "start" {
				idx = append(idx, runeIndex(s, loc[0]))
			} else {
				idx = append(idx, runeIndex(s, loc[1])-1)
			}
		}
		if once {
			if len(idx) == 0 {
				return value.Zeros(0, 0)
			}
			return value.Scalar(idx[0])
		}
		if len(idx) == 0 {
			return value.Zeros(1, 0)
		}
		return value.RowVector(idx)
	case "match":
		var vals []value.Value
		for _, loc := range locs {
			vals = append(vals, value.String(s[loc[0]:loc[1]]))
		}
		if once {
			if len(vals) == 0 {
				return value.String("")
			}
			return vals[0]
		}
		return value.CellRow(vals...)
	case "tokens":
		var vals []value.Value
		for _, loc := range locs {
			var toks []value.Value
			for g := 1; 2*g < len(loc); g++ {
				if loc[2*g] < 0 {
					toks = append(toks, value.String(""))
					continue
				}
				toks = append(toks, value.String(s[loc[2*g]:loc[2*g+1]]))
			}
			if len(toks) == 0 {
				toks = []value.Value{value.String(s[loc[0]:loc[1]])}
			}
			vals = append(vals, value.CellRow(toks...))
		}
		if once {
			if len(vals) == 0 {
				return value.EmptyCell(0, 0)
			}
			return vals[0]
		}
		return value.CellRow(vals...)
	case "names":
		st := value.NewStruct()
		for g, name := range re.SubexpNames() {
			if name == "" {
				continue
			}
			text := ""
			if len(locs) > 0 && locs[0][2*g] >= 0 {
				text = s[locs[0][2*g]:locs[0][2*g+1]]
			}
			st = st.With(name, value.String(text))
		}
		return st
	case "split":
		var vals []value.Value
		prev := 0
		for _, loc := range locs {
			vals = append(vals, value.String(s[prev:loc[0]]))
			prev = loc[1]
		}
		vals = append(vals, value.String(s[prev:]))
		return value.CellRow(vals...)
	}
	panic("internal error: unknown regexp selector " + sel)
}

// regexprep(s, pattern, replacement, options...) replaces matches of
// pattern. $1 in the replacement refers to the first group. The options
// are 'once' and 'ignorecase'.
func regexprep(_ value.Context, args []value.Value) value.Value {
	nargs("regexprep", args, 3, -1)
	once, ignoreCase := false, false
	for _, a := range args[3:] {
		switch opt := strings.ToLower(value.ToStr("regexprep", a)); opt {
		case "once":
			once = true
		case "ignorecase":
			ignoreCase = true
		default:
			value.Errorf(value.InvalidArgument, "regexprep: unknown option %q", opt)
		}
	}
	re := compile("regexprep", value.ToStr("regexprep", args[1]), ignoreCase)
	repl := unescape(value.ToStr("regexprep", args[2]))
	return mapStrings("regexprep", args[0], func(s string) string {
		if !once {
			return re.ReplaceAllString(s, repl)
		}
		loc := re.FindStringSubmatchIndex(s)
		if loc == nil {
			return s
		}
		var dst []byte
		dst = re.ExpandString(dst, repl, s, loc)
		return s[:loc[0]] + string(dst) + s[loc[1]:]
	})
}

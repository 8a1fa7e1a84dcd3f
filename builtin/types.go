// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"math"

	"matfree.dev/matfree/value"
)

// Integer classes are not separate value types; converting to one rounds
// and saturates to its range, and the result stays a double.
var integerRanges = map[string][2]float64{
	"int8":   {math.MinInt8, math.MaxInt8},
	"uint8":  {0, math.MaxUint8},
	"int16":  {math.MinInt16, math.MaxInt16},
	"uint16": {0, math.MaxUint16},
	"int32":  {math.MinInt32, math.MaxInt32},
	"uint32": {0, math.MaxUint32},
	"int64":  {math.MinInt64, math.MaxInt64},
	"uint64": {0, math.MaxUint64},
}

func isNumeric(v value.Value) bool {
	_, ok := v.(*value.Matrix)
	return ok
}

func isVector(v value.Value) bool {
	rows, cols := v.Size()
	return (rows == 1 || cols == 1) && rows*cols >= 1
}

func init() {
	for name, pred := range map[string]func(value.Value) bool{
		"isnumeric": isNumeric,
		"isfloat":   isNumeric,
		"isreal":    func(v value.Value) bool { _, ok := value.Numeric(v); return ok },
		"isinteger": func(value.Value) bool { return false },
		"ischar":    value.IsText,
		"islogical": func(v value.Value) bool { _, ok := v.(value.Logical); return ok },
		"iscell":    func(v value.Value) bool { _, ok := v.(*value.Cell); return ok },
		"isstruct":  func(v value.Value) bool { _, ok := v.(*value.Struct); return ok },
		"is_function_handle": func(v value.Value) bool {
			_, ok := v.(*value.FunctionHandle)
			return ok
		},
		"isempty":  value.IsEmpty,
		"isscalar": value.IsScalar,
		"isvector": isVector,
		"isrow":    func(v value.Value) bool { rows, _ := v.Size(); return rows == 1 },
		"iscolumn": func(v value.Value) bool { _, cols := v.Size(); return cols == 1 },
		"ismatrix": func(value.Value) bool { return true },
		"issquare": func(v value.Value) bool { rows, cols := v.Size(); return rows == cols },
		"iscellstr": func(v value.Value) bool {
			c, ok := v.(*value.Cell)
			if !ok {
				return false
			}
			for _, elem := range c.Data() {
				if !value.IsText(elem) {
					return false
				}
			}
			return true
		},
	} {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 1, 1)
			return value.Bool(pred(args[0]))
		})
	}
	register("class", func(_ value.Context, args []value.Value) value.Value {
		nargs("class", args, 1, 1)
		return value.String(args[0].Class().String())
	})
	register("isa", isa)
	register("isequal", func(_ value.Context, args []value.Value) value.Value {
		nargs("isequal", args, 2, -1)
		for _, a := range args[1:] {
			if !value.Equal(args[0], a) {
				return value.Bool(false)
			}
		}
		return value.Bool(true)
	})
	register("double", func(_ value.Context, args []value.Value) value.Value {
		nargs("double", args, 1, 1)
		return value.Double(args[0])
	})
	register("single", func(_ value.Context, args []value.Value) value.Value {
		nargs("single", args, 1, 1)
		return value.Double(args[0])
	})
	register("logical", func(_ value.Context, args []value.Value) value.Value {
		nargs("logical", args, 1, 1)
		return value.ToLogical(args[0])
	})
	register("char", char)
	for name, r := range integerRanges {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 1, 1)
			return value.ToMatrix(name, args[0]).Map(func(x float64) float64 {
				if math.IsNaN(x) {
					return 0
				}
				return math.Max(r[0], math.Min(r[1], math.Round(x)))
			})
		})
	}

	register("struct", structFn)
	register("fieldnames", func(_ value.Context, args []value.Value) value.Value {
		nargs("fieldnames", args, 1, 1)
		s := structArg("fieldnames", args[0])
		names := make([]value.Value, s.Len())
		for i, name := range s.Fields() {
			names[i] = value.String(name)
		}
		return value.CellRow(names...).Transpose()
	})
	register("numfields", func(_ value.Context, args []value.Value) value.Value {
		nargs("numfields", args, 1, 1)
		if s, ok := args[0].(*value.Struct); ok {
			return value.Scalar(float64(s.Len()))
		}
		return value.Scalar(0)
	})
	register("isfield", isfield)
	register("rmfield", func(_ value.Context, args []value.Value) value.Value {
		nargs("rmfield", args, 2, 2)
		s := structArg("rmfield", args[0])
		for _, name := range stringList("rmfield", args[1]) {
			if _, ok := s.Get(name); !ok {
				value.Errorf(value.InvalidArgument, "rmfield: field %q does not exist", name)
			}
			s = s.Without(name)
		}
		return s
	})
	register("getfield", func(_ value.Context, args []value.Value) value.Value {
		nargs("getfield", args, 2, 2)
		return structArg("getfield", args[0]).Field(value.ToStr("getfield", args[1]))
	})
	register("setfield", func(_ value.Context, args []value.Value) value.Value {
		nargs("setfield", args, 3, 3)
		return structArg("setfield", args[0]).With(value.ToStr("setfield", args[1]), args[2])
	})
	register("struct2cell", func(_ value.Context, args []value.Value) value.Value {
		nargs("struct2cell", args, 1, 1)
		s := structArg("struct2cell", args[0])
		vals := make([]value.Value, s.Len())
		for i, name := range s.Fields() {
			vals[i] = s.Field(name)
		}
		return value.CellRow(vals...).Transpose()
	})
	register("cell2struct", cell2struct)

	register("cell", func(_ value.Context, args []value.Value) value.Value {
		return value.EmptyCell(sizeArgs("cell", args))
	})
	register("num2cell", func(_ value.Context, args []value.Value) value.Value {
		nargs("num2cell", args, 1, 1)
		if c, ok := args[0].(*value.Cell); ok {
			return c
		}
		rows, cols := args[0].Size()
		vals := make([]value.Value, 0, rows*cols)
		for i := range rows {
			for j := range cols {
				vals = append(vals, value.IndexValue(args[0], []value.Index{value.At(i + 1), value.At(j + 1)}))
			}
		}
		return value.NewCell(rows, cols, vals)
	})
	register("cell2mat", cell2mat)
	registerMulti("deal", func(_ value.Context, args []value.Value, nargout int) []value.Value {
		n := max(nargout, 1)
		switch {
		case len(args) == 1:
			out := make([]value.Value, n)
			for i := range out {
				out[i] = args[0]
			}
			return out
		case len(args) != n:
			value.Errorf(value.InvalidArgument, "deal: the number of outputs must match the number of inputs")
		}
		return args
	})
}

// isa(x, class) reports whether x belongs to the class. The categories
// 'numeric', 'float' and 'integer' are also accepted.
func isa(_ value.Context, args []value.Value) value.Value {
	nargs("isa", args, 2, 2)
	class := value.ToStr("isa", args[1])
	switch class {
	case "numeric", "float":
		return value.Bool(isNumeric(args[0]))
	case "integer":
		return value.Bool(false)
	}
	return value.Bool(args[0].Class().String() == class)
}

// char converts character codes to a string. A cell array of one string
// yields that string.
func char(_ value.Context, args []value.Value) value.Value {
	nargs("char", args, 1, 1)
	switch v := args[0].(type) {
	case value.String:
		return v
	case *value.Cell:
		if value.Numel(v) == 1 {
			return value.String(value.ToStr("char", v.Data()[0]))
		}
		value.Errorf(value.TypeError, "char: multi-row character arrays are not supported")
	}
	m := value.ToMatrix("char", args[0])
	if m.Rows() > 1 {
		value.Errorf(value.TypeError, "char: multi-row character arrays are not supported")
	}
	return value.FromRunes(m.Data())
}

func structArg(name string, v value.Value) *value.Struct {
	s, ok := v.(*value.Struct)
	if !ok {
		value.Errorf(value.TypeError, "%s: argument must be a struct; got %s", name, v.Class())
	}
	return s
}

// struct()
// struct(name, value, ...)
// A cell value with one element supplies that element; struct arrays
// are not supported.
func structFn(_ value.Context, args []value.Value) value.Value {
	if len(args)%2 != 0 {
		value.Errorf(value.InvalidArgument, "struct: arguments must be name, value pairs")
	}
	s := value.NewStruct()
	for i := 0; i < len(args); i += 2 {
		v := args[i+1]
		if c, ok := v.(*value.Cell); ok {
			switch value.Numel(c) {
			case 0:
				v = value.Empty{}
			case 1:
				v = c.Data()[0]
			default:
				value.Errorf(value.TypeError, "struct arrays are not supported")
			}
		}
		s = s.With(value.ToStr("struct field name", args[i]), v)
	}
	return s
}

// isfield(s, name) reports whether s has the field; with a cell array of
// names it reports for each.
func isfield(_ value.Context, args []value.Value) value.Value {
	nargs("isfield", args, 2, 2)
	s, isStruct := args[0].(*value.Struct)
	has := func(name value.Value) float64 {
		n, ok := name.(value.String)
		if !isStruct || !ok {
			return 0
		}
		_, found := s.Get(string(n))
		return b2f(found)
	}
	if c, ok := args[1].(*value.Cell); ok {
		rows, cols := c.Size()
		out := make([]float64, 0, rows*cols)
		for _, elem := range c.Data() {
			out = append(out, has(elem))
		}
		return value.NewLogical(rows, cols, out)
	}
	return value.Bool(has(args[1]) != 0)
}

// cell2struct(c, fields) builds a struct from a vector cell array and the
// matching field names.
func cell2struct(_ value.Context, args []value.Value) value.Value {
	nargs("cell2struct", args, 2, 3)
	c, ok := args[0].(*value.Cell)
	if !ok {
		value.Errorf(value.TypeError, "cell2struct: first argument must be a cell array")
	}
	names := stringList("cell2struct", args[1])
	vals := c.ColumnMajor()
	if len(vals) != len(names) {
		value.Errorf(value.DimensionMismatch, "cell2struct: %d values for %d fields", len(vals), len(names))
	}
	s := value.NewStruct()
	for i, name := range names {
		s = s.With(name, vals[i])
	}
	return s
}

// cell2mat concatenates the contents of a cell array as if the braces
// were brackets.
func cell2mat(_ value.Context, args []value.Value) value.Value {
	nargs("cell2mat", args, 1, 1)
	c, ok := args[0].(*value.Cell)
	if !ok {
		value.Errorf(value.TypeError, "cell2mat: argument must be a cell array")
	}
	rows, cols := c.Size()
	if rows*cols == 0 {
		return value.Empty{}
	}
	lines := make([]value.Value, rows)
	for i := range rows {
		row := make([]value.Value, cols)
		for j := range cols {
			elem := c.At(i, j)
			if _, nested := elem.(*value.Cell); nested {
				value.Errorf(value.TypeError, "cell2mat: cell arrays of cell arrays are not supported")
			}
			row[j] = elem
		}
		lines[i] = value.HorzCat(row)
	}
	return value.VertCat(lines)
}

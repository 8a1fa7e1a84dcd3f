// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"fmt"
	"strings"
	"time"

	"matfree.dev/matfree/config"
	"matfree.dev/matfree/scan"
	"matfree.dev/matfree/value"
)

func init() {
	registerMulti("feval", func(c value.Context, args []value.Value, nargout int) []value.Value {
		nargs("feval", args, 1, -1)
		return c.Call(args[0], args[1:], nargout)
	})
	registerMulti("cellfun", func(c value.Context, args []value.Value, nargout int) []value.Value {
		return mapFn(c, "cellfun", args, nargout)
	})
	registerMulti("arrayfun", func(c value.Context, args []value.Value, nargout int) []value.Value {
		return mapFn(c, "arrayfun", args, nargout)
	})
	register("func2str", func(_ value.Context, args []value.Value) value.Value {
		nargs("func2str", args, 1, 1)
		h, ok := args[0].(*value.FunctionHandle)
		if !ok {
			value.Errorf(value.TypeError, "func2str: argument must be a function handle")
		}
		if h.IsAnonymous() {
			return value.String(h.String())
		}
		return value.String(h.Name)
	})
	register("isvarname", func(_ value.Context, args []value.Value) value.Value {
		nargs("isvarname", args, 1, 1)
		s, ok := args[0].(value.String)
		return value.Bool(ok && scan.IsIdentifier(string(s)))
	})
	register("format", func(c value.Context, args []value.Value) value.Value {
		nargs("format", args, 0, 1)
		name := ""
		if len(args) == 1 {
			name = strings.ToLower(value.ToStr("format", args[0]))
		}
		f, ok := config.ParseFormat(name)
		if !ok {
			value.Errorf(value.InvalidArgument, "format: unknown format %q", name)
		}
		c.Config().SetFormat(f)
		return nil
	})
	register("tic", func(c value.Context, args []value.Value) value.Value {
		nargs("tic", args, 0, 0)
		c.Config().SetTic(time.Now())
		return nil
	})
	registerMulti("toc", func(c value.Context, args []value.Value, nargout int) []value.Value {
		nargs("toc", args, 0, 0)
		start := c.Config().Tic()
		if start.IsZero() {
			value.Errorf(value.InvalidArgument, "toc: you must call tic before toc")
		}
		elapsed := time.Since(start).Seconds()
		if nargout == 0 {
			fmt.Fprintf(c.Config().Output(), "Elapsed time is %f seconds.\n", elapsed)
			return nil
		}
		return []value.Value{value.Scalar(elapsed)}
	})
	register("clock", func(_ value.Context, args []value.Value) value.Value {
		nargs("clock", args, 0, 0)
		t := time.Now()
		sec := float64(t.Second()) + float64(t.Nanosecond())/1e9
		return value.RowVector([]float64{
			float64(t.Year()), float64(t.Month()), float64(t.Day()),
			float64(t.Hour()), float64(t.Minute()), sec,
		})
	})
}

// mapFn implements cellfun and arrayfun:
//
//	[a, b, ...] = cellfun(f, c1, c2, ..., 'UniformOutput', tf, 'ErrorHandler', h)
//
// f is called on corresponding elements of the inputs, which must all
// have the same size. With UniformOutput true, the default, each result
// must be a scalar and the results form arrays the size of the inputs;
// otherwise they form cell arrays. When f raises an error and there is an
// ErrorHandler, the handler is called with a struct holding message,
// identifier and index, followed by the arguments, and its results are
// used instead.
func mapFn(c value.Context, name string, args []value.Value, nargout int) []value.Value {
	nargs(name, args, 2, -1)
	f := args[0]
	switch f.(type) {
	case value.String, *value.FunctionHandle:
	default:
		value.Errorf(value.TypeError, "%s: first argument must be a function handle", name)
	}
	uniform := true
	var handler value.Value
	inputs := args[1:]
	for i := 0; i < len(inputs); i++ {
		s, ok := inputs[i].(value.String)
		if !ok || i+1 == len(inputs) {
			continue
		}
		switch strings.ToLower(string(s)) {
		case "uniformoutput":
			uniform = value.IsTrue(inputs[i+1])
		case "errorhandler":
			handler = inputs[i+1]
		default:
			continue
		}
		inputs = append(inputs[:i:i], inputs[i+2:]...)
		i--
	}
	if len(inputs) == 0 {
		value.Errorf(value.InvalidArgument, "not enough input arguments to %s", name)
	}
	rows, cols := inputs[0].Size()
	for _, in := range inputs[1:] {
		if r, c := in.Size(); r != rows || c != cols {
			value.Errorf(value.DimensionMismatch, "%s: all the input arguments must be the same size", name)
		}
		if _, ok := in.(*value.Cell); !ok && name == "cellfun" {
			value.Errorf(value.TypeError, "cellfun: input arguments must be cell arrays")
		}
	}
	if _, ok := inputs[0].(*value.Cell); !ok && name == "cellfun" {
		value.Errorf(value.TypeError, "cellfun: input arguments must be cell arrays")
	}

	nout := max(nargout, 1)
	n := rows * cols
	results := make([][]value.Value, nout)
	for k := range nout {
		results[k] = make([]value.Value, n)
	}
	for i := range rows {
		for j := range cols {
			callArgs := make([]value.Value, len(inputs))
			for a, in := range inputs {
				callArgs[a] = element(name, in, i, j)
			}
			// Results are stored row-major to match the layout of the inputs.
			pos := i*cols + j
			var out []value.Value
			err := catch(func() { out = c.Call(f, callArgs, nargout) })
			if err != nil {
				if handler == nil {
					panic(*err)
				}
				info := errorStruct(err.ID(), err.Msg).With("index", value.Scalar(float64(j*rows+i+1)))
				out = c.Call(handler, append([]value.Value{info}, callArgs...), nargout)
			}
			if nargout == 0 && len(out) == 0 {
				continue
			}
			if len(out) < nout {
				value.Errorf(value.InvalidArgument, "%s: function returned %d outputs; %d requested", name, len(out), nout)
			}
			for k := range nout {
				results[k][pos] = out[k]
			}
		}
	}
	if nargout == 0 && n > 0 && results[0][0] == nil {
		return nil
	}
	final := make([]value.Value, nout)
	for k, res := range results {
		if uniform {
			final[k] = uniformResult(name, rows, cols, res)
		} else {
			final[k] = value.NewCell(rows, cols, res)
		}
	}
	return final
}

// element returns the (i, j) element of an input of cellfun or arrayfun:
// the contents of a cell, or a 1x1 piece of an array.
func element(name string, v value.Value, i, j int) value.Value {
	switch v := v.(type) {
	case *value.Cell:
		if name == "cellfun" {
			return v.At(i, j)
		}
	case *value.Struct, *value.FunctionHandle:
		return v
	}
	return value.IndexValue(v, []value.Index{value.At(i + 1), value.At(j + 1)})
}

// uniformResult assembles scalar results into an array. The result is
// logical if every element is, and a string if every element is a
// character.
func uniformResult(name string, rows, cols int, res []value.Value) value.Value {
	data := make([]float64, len(res))
	allLogical, allText := len(res) > 0, len(res) > 0
	for i, r := range res {
		if !value.IsScalar(r) {
			value.Errorf(value.InvalidArgument, "%s: non-scalar result; set 'UniformOutput' to false", name)
		}
		m, ok := value.Numeric(r)
		if !ok {
			value.Errorf(value.TypeError, "%s: result of class %s cannot be concatenated; set 'UniformOutput' to false", name, r.Class())
		}
		data[i] = m.Float()
		_, isLogical := r.(value.Logical)
		allLogical = allLogical && isLogical
		allText = allText && value.IsText(r)
	}
	switch {
	case allLogical:
		return value.NewLogical(rows, cols, data)
	case allText && rows == 1:
		return value.FromRunes(data)
	}
	return value.NewMatrix(rows, cols, data)
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtin

import (
	"math"

	"matfree.dev/matfree/value"
)

// Constants take optional size arguments, as in Inf(2, 3), so they are
// functions; variables may shadow them.
var constants = map[string]float64{
	"pi":       math.Pi,
	"Inf":      math.Inf(1),
	"inf":      math.Inf(1),
	"NaN":      math.NaN(),
	"nan":      math.NaN(),
	"intmax":   math.MaxInt32,
	"intmin":   math.MinInt32,
	"realmax":  math.MaxFloat64,
	"realmin":  0x1p-1022,
	"flintmax": 1 << 53,
}

// Elementwise functions of one argument.
var unaryMath = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"asinh": math.Asinh,
	"acosh": math.Acosh,
	"atanh": math.Atanh,
	"exp":   math.Exp,
	"expm1": math.Expm1,
	"log":   math.Log,
	"log2":  math.Log2,
	"log10": math.Log10,
	"log1p": math.Log1p,
	"sqrt":  math.Sqrt,
	"cbrt":  math.Cbrt,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
	"fix":   math.Trunc,
	"gamma": math.Gamma,
	"real":  func(x float64) float64 { return x },
	"conj":  func(x float64) float64 { return x },
	"imag":  func(float64) float64 { return 0 },
	"sign": func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return x // 0 or NaN.
	},
	"factorial": func(x float64) float64 {
		if x < 0 || x != math.Trunc(x) {
			value.Errorf(value.InvalidArgument, "factorial: argument must be a non-negative integer")
		}
		return math.Round(math.Gamma(x + 1))
	},
	"deg2rad": func(x float64) float64 { return x * math.Pi / 180 },
	"rad2deg": func(x float64) float64 { return x * 180 / math.Pi },
}

// Elementwise functions of two arguments, with broadcasting.
var binaryMath = map[string]func(x, y float64) float64{
	"atan2": math.Atan2,
	"hypot": math.Hypot,
	"power": math.Pow,
	"mod": func(x, y float64) float64 {
		if y == 0 {
			return x
		}
		r := math.Mod(x, y)
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return r
	},
	"rem": func(x, y float64) float64 {
		if y == 0 {
			return math.NaN()
		}
		return math.Mod(x, y)
	},
	"idivide": func(x, y float64) float64 { return math.Trunc(x / y) },
	"nchoosek": func(n, k float64) float64 {
		if k < 0 || k > n || k != math.Trunc(k) || n != math.Trunc(n) {
			value.Errorf(value.InvalidArgument, "nchoosek: arguments must be integers with 0 <= k <= n")
		}
		r := 1.0
		for i := 1.0; i <= k; i++ {
			r = r * (n - k + i) / i
		}
		return math.Round(r)
	},
	"gcd": func(x, y float64) float64 {
		x, y = math.Abs(x), math.Abs(y)
		for y != 0 {
			x, y = y, math.Mod(x, y)
		}
		return x
	},
	"lcm": func(x, y float64) float64 {
		if x == 0 || y == 0 {
			return 0
		}
		a, b := math.Abs(x), math.Abs(y)
		for b != 0 {
			a, b = b, math.Mod(a, b)
		}
		return math.Abs(x*y) / a
	},
}

// Operators by name, for use with feval and cellfun.
var operatorNames = map[string]string{
	"plus":     "+",
	"minus":    "-",
	"times":    ".*",
	"mtimes":   "*",
	"rdivide":  "./",
	"ldivide":  ".\\",
	"mrdivide": "/",
	"mldivide": "\\",
	"mpower":   "^",
	"eq":       "==",
	"ne":       "~=",
	"lt":       "<",
	"le":       "<=",
	"gt":       ">",
	"ge":       ">=",
	"and":      "&",
	"or":       "|",
}

func init() {
	for name, x := range constants {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			rows, cols := sizeArgs(name, args)
			return value.Filled(rows, cols, x)
		})
	}
	for name, x := range map[string]float64{"true": 1, "false": 0} {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			rows, cols := sizeArgs(name, args)
			return value.Logical{Matrix: value.Filled(rows, cols, x)}
		})
	}
	register("eps", eps)
	for name, f := range unaryMath {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 1, 1)
			return value.ToMatrix(name, args[0]).Map(f)
		})
	}
	for name, f := range binaryMath {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 2, 2)
			return value.Elementwise(name, value.ToMatrix(name, args[0]), value.ToMatrix(name, args[1]), f)
		})
	}
	for name, op := range operatorNames {
		register(name, func(c value.Context, args []value.Value) value.Value {
			nargs(name, args, 2, 2)
			return value.Binary(c, args[0], op, args[1])
		})
	}
	register("uminus", func(c value.Context, args []value.Value) value.Value {
		nargs("uminus", args, 1, 1)
		return value.Unary(c, "-", args[0])
	})
	register("not", func(c value.Context, args []value.Value) value.Value {
		nargs("not", args, 1, 1)
		return value.Unary(c, "~", args[0])
	})
	register("xor", func(_ value.Context, args []value.Value) value.Value {
		nargs("xor", args, 2, 2)
		m := value.Elementwise("xor", value.ToLogical(args[0]).Matrix, value.ToLogical(args[1]).Matrix, func(x, y float64) float64 {
			if (x != 0) != (y != 0) {
				return 1
			}
			return 0
		})
		return value.NewLogical(m.Rows(), m.Cols(), m.Data())
	})
	for name, pred := range map[string]func(float64) bool{
		"isnan":    math.IsNaN,
		"isinf":    func(x float64) bool { return math.IsInf(x, 0) },
		"isfinite": func(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) },
	} {
		register(name, func(_ value.Context, args []value.Value) value.Value {
			nargs(name, args, 1, 1)
			m := value.ToMatrix(name, args[0])
			out := m.Map(func(x float64) float64 {
				if pred(x) {
					return 1
				}
				return 0
			})
			return value.NewLogical(out.Rows(), out.Cols(), out.Data())
		})
	}
}

// eps
// eps(x)
// The spacing of floating-point numbers near 1 or near x.
func eps(_ value.Context, args []value.Value) value.Value {
	nargs("eps", args, 0, 1)
	if len(args) == 0 {
		return value.Scalar(value.Eps())
	}
	return value.ToMatrix("eps", args[0]).Map(func(x float64) float64 {
		x = math.Abs(x)
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return math.NaN()
		}
		return math.Nextafter(x, math.Inf(1)) - x
	})
}

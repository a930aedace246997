package builtins

import (
	"math"

	"github.com/avonlang/avon/internal/value"
)

func asFloat(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case value.Int:
		return float64(x), true
	case value.Float:
		return float64(x), true
	}
	return 0, false
}

func registerNumeric(reg registerFn) {
	reg("abs", 1, 1, func(args []value.Value) (value.Value, error) {
		switch x := args[0].(type) {
		case value.Int:
			if x < 0 {
				return -x, nil
			}
			return x, nil
		case value.Float:
			return value.Float(math.Abs(float64(x))), nil
		}
		return nil, typeError("abs", "number", args[0])
	})

	reg("floor", 1, 1, func(args []value.Value) (value.Value, error) {
		f, ok := asFloat(args[0])
		if !ok {
			return nil, typeError("floor", "number", args[0])
		}
		return value.Int(int64(math.Floor(f))), nil
	})

	reg("ceil", 1, 1, func(args []value.Value) (value.Value, error) {
		f, ok := asFloat(args[0])
		if !ok {
			return nil, typeError("ceil", "number", args[0])
		}
		return value.Int(int64(math.Ceil(f))), nil
	})

	reg("round", 1, 1, func(args []value.Value) (value.Value, error) {
		f, ok := asFloat(args[0])
		if !ok {
			return nil, typeError("round", "number", args[0])
		}
		return value.Int(int64(math.Round(f))), nil
	})

	reg("min", 2, 2, func(args []value.Value) (value.Value, error) {
		a, aok := asFloat(args[0])
		b, bok := asFloat(args[1])
		if !aok || !bok {
			return nil, typeError("min", "number", args[0])
		}
		if a < b {
			return args[0], nil
		}
		return args[1], nil
	})

	reg("max", 2, 2, func(args []value.Value) (value.Value, error) {
		a, aok := asFloat(args[0])
		b, bok := asFloat(args[1])
		if !aok || !bok {
			return nil, typeError("max", "number", args[0])
		}
		if a > b {
			return args[0], nil
		}
		return args[1], nil
	})

	reg("pow", 2, 2, func(args []value.Value) (value.Value, error) {
		base, bok := asFloat(args[0])
		exp, eok := asFloat(args[1])
		if !bok || !eok {
			return nil, typeError("pow", "number", args[0])
		}
		result := math.Pow(base, exp)
		if _, ok := args[0].(value.Int); ok {
			if _, ok := args[1].(value.Int); ok && exp >= 0 {
				return value.Int(int64(result)), nil
			}
		}
		return value.Float(result), nil
	})

	reg("to_int", 1, 1, func(args []value.Value) (value.Value, error) {
		f, ok := asFloat(args[0])
		if !ok {
			return nil, typeError("to_int", "number", args[0])
		}
		return value.Int(int64(f)), nil
	})

	reg("to_float", 1, 1, func(args []value.Value) (value.Value, error) {
		f, ok := asFloat(args[0])
		if !ok {
			return nil, typeError("to_float", "number", args[0])
		}
		return value.Float(f), nil
	})
}

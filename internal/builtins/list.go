package builtins

import (
	"github.com/avonlang/avon/internal/eval"
	"github.com/avonlang/avon/internal/value"
)

// registerHigherOrder installs the builtins that call back into the
// evaluator (map, filter, fold, flatmap). They're split from
// registerList because they close over ev, unlike the rest of the
// standard library which is ev-independent.
func registerHigherOrder(reg registerFn, ev *eval.Evaluator) {
	reg("map", 2, 2, func(args []value.Value) (value.Value, error) {
		fn := args[0]
		list, ok := args[1].(*value.List)
		if !ok {
			return nil, typeError("map", "list", args[1])
		}
		out := make([]value.Value, len(list.Elems))
		for i, e := range list.Elems {
			v, err := ev.Call(fn, []value.Value{e})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return &value.List{Elems: out}, nil
	})

	reg("filter", 2, 2, func(args []value.Value) (value.Value, error) {
		fn := args[0]
		list, ok := args[1].(*value.List)
		if !ok {
			return nil, typeError("filter", "list", args[1])
		}
		var out []value.Value
		for _, e := range list.Elems {
			v, err := ev.Call(fn, []value.Value{e})
			if err != nil {
				return nil, err
			}
			b, ok := value.AsBool(v)
			if !ok {
				return nil, typeError("filter", "bool-returning function", v)
			}
			if b {
				out = append(out, e)
			}
		}
		return &value.List{Elems: out}, nil
	})

	reg("fold", 3, 3, func(args []value.Value) (value.Value, error) {
		fn := args[0]
		acc := args[1]
		list, ok := args[2].(*value.List)
		if !ok {
			return nil, typeError("fold", "list", args[2])
		}
		for _, e := range list.Elems {
			v, err := ev.Call(fn, []value.Value{acc, e})
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	})

	reg("flatmap", 2, 2, func(args []value.Value) (value.Value, error) {
		fn := args[0]
		list, ok := args[1].(*value.List)
		if !ok {
			return nil, typeError("flatmap", "list", args[1])
		}
		var out []value.Value
		for _, e := range list.Elems {
			v, err := ev.Call(fn, []value.Value{e})
			if err != nil {
				return nil, err
			}
			sub, ok := v.(*value.List)
			if !ok {
				return nil, typeError("flatmap", "function returning a list", v)
			}
			out = append(out, sub.Elems...)
		}
		return &value.List{Elems: out}, nil
	})
}

func registerList(reg registerFn) {
	reg("length", 1, 1, func(args []value.Value) (value.Value, error) {
		switch x := args[0].(type) {
		case *value.List:
			return value.Int(len(x.Elems)), nil
		case *value.Dict:
			return value.Int(x.Len()), nil
		case value.Str:
			return value.Int(len([]rune(x))), nil
		}
		return nil, typeError("length", "list, dict, or string", args[0])
	})

	reg("head", 1, 1, func(args []value.Value) (value.Value, error) {
		list, ok := args[0].(*value.List)
		if !ok {
			return nil, typeError("head", "list", args[0])
		}
		if len(list.Elems) == 0 {
			return nil, indexError("head", 0, 0)
		}
		return list.Elems[0], nil
	})

	reg("tail", 1, 1, func(args []value.Value) (value.Value, error) {
		list, ok := args[0].(*value.List)
		if !ok {
			return nil, typeError("tail", "list", args[0])
		}
		if len(list.Elems) == 0 {
			return &value.List{}, nil
		}
		out := make([]value.Value, len(list.Elems)-1)
		copy(out, list.Elems[1:])
		return &value.List{Elems: out}, nil
	})

	reg("concat", 2, -1, func(args []value.Value) (value.Value, error) {
		var out []value.Value
		for _, a := range args {
			list, ok := a.(*value.List)
			if !ok {
				return nil, typeError("concat", "list", a)
			}
			out = append(out, list.Elems...)
		}
		return &value.List{Elems: out}, nil
	})

	reg("nth", 2, 2, func(args []value.Value) (value.Value, error) {
		list, ok := args[0].(*value.List)
		if !ok {
			return nil, typeError("nth", "list", args[0])
		}
		i, ok := args[1].(value.Int)
		if !ok {
			return nil, typeError("nth", "int", args[1])
		}
		if int(i) < 0 || int(i) >= len(list.Elems) {
			return nil, indexError("nth", int(i), len(list.Elems))
		}
		return list.Elems[i], nil
	})

	reg("reverse", 1, 1, func(args []value.Value) (value.Value, error) {
		list, ok := args[0].(*value.List)
		if !ok {
			return nil, typeError("reverse", "list", args[0])
		}
		out := make([]value.Value, len(list.Elems))
		for i, e := range list.Elems {
			out[len(out)-1-i] = e
		}
		return &value.List{Elems: out}, nil
	})
}

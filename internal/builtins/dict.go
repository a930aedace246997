package builtins

import "github.com/avonlang/avon/internal/value"

func registerDict(reg registerFn) {
	reg("get", 2, 3, func(args []value.Value) (value.Value, error) {
		d, ok := args[0].(*value.Dict)
		if !ok {
			return nil, typeError("get", "dict", args[0])
		}
		key, ok := asStr(args[1])
		if !ok {
			return nil, typeError("get", "string", args[1])
		}
		if v, ok := d.Get(key); ok {
			return v, nil
		}
		if len(args) == 3 {
			return args[2], nil
		}
		return nil, keyMissingError(key)
	})

	reg("has", 2, 2, func(args []value.Value) (value.Value, error) {
		d, ok := args[0].(*value.Dict)
		if !ok {
			return nil, typeError("has", "dict", args[0])
		}
		key, ok := asStr(args[1])
		if !ok {
			return nil, typeError("has", "string", args[1])
		}
		_, ok = d.Get(key)
		return value.Bool(ok), nil
	})

	reg("keys", 1, 1, func(args []value.Value) (value.Value, error) {
		d, ok := args[0].(*value.Dict)
		if !ok {
			return nil, typeError("keys", "dict", args[0])
		}
		ks := d.Keys()
		out := make([]value.Value, len(ks))
		for i, k := range ks {
			out[i] = value.Str(k)
		}
		return &value.List{Elems: out}, nil
	})

	reg("values", 1, 1, func(args []value.Value) (value.Value, error) {
		d, ok := args[0].(*value.Dict)
		if !ok {
			return nil, typeError("values", "dict", args[0])
		}
		return &value.List{Elems: d.Values()}, nil
	})

	reg("set", 3, 3, func(args []value.Value) (value.Value, error) {
		d, ok := args[0].(*value.Dict)
		if !ok {
			return nil, typeError("set", "dict", args[0])
		}
		key, ok := asStr(args[1])
		if !ok {
			return nil, typeError("set", "string", args[1])
		}
		nd := d.Clone()
		nd.Set(key, args[2])
		return nd, nil
	})
}

package builtins

import "github.com/avonlang/avon/internal/value"

func registerTypeinfo(reg registerFn) {
	reg("typeof", 1, 1, func(args []value.Value) (value.Value, error) {
		return value.Str(args[0].Kind()), nil
	})

	isKind := func(name, kind string) {
		reg(name, 1, 1, func(args []value.Value) (value.Value, error) {
			return value.Bool(args[0].Kind() == kind), nil
		})
	}
	isKind("is_int", "int")
	isKind("is_float", "float")
	isKind("is_bool", "bool")
	isKind("is_string", "string")
	isKind("is_path", "path")
	isKind("is_list", "list")
	isKind("is_dict", "dict")
	isKind("is_function", "function")
	isKind("is_deploy", "deploy")

	reg("assert", 2, 2, func(args []value.Value) (value.Value, error) {
		b, ok := value.AsBool(args[0])
		if !ok {
			return nil, typeError("assert", "bool", args[0])
		}
		msg, ok := asStr(args[1])
		if !ok {
			return nil, typeError("assert", "string", args[1])
		}
		if !b {
			return nil, assertionError(msg)
		}
		return value.Bool(true), nil
	})

	reg("assert_type", 2, 2, func(args []value.Value) (value.Value, error) {
		want, ok := asStr(args[1])
		if !ok {
			return nil, typeError("assert_type", "string", args[1])
		}
		if args[0].Kind() != want {
			return nil, assertionError("expected type " + want + ", got " + args[0].Kind())
		}
		return args[0], nil
	})
}

package builtins

import (
	"strings"

	"github.com/avonlang/avon/internal/value"
)

func asStr(v value.Value) (string, bool) {
	s, ok := v.(value.Str)
	return string(s), ok
}

func registerString(reg registerFn) {
	reg("upper", 1, 1, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("upper", "string", args[0])
		}
		return value.Str(strings.ToUpper(s)), nil
	})

	reg("lower", 1, 1, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("lower", "string", args[0])
		}
		return value.Str(strings.ToLower(s)), nil
	})

	reg("trim", 1, 1, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("trim", "string", args[0])
		}
		return value.Str(strings.TrimSpace(s)), nil
	})

	reg("split", 2, 2, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("split", "string", args[0])
		}
		sep, ok := asStr(args[1])
		if !ok {
			return nil, typeError("split", "string", args[1])
		}
		parts := strings.Split(s, sep)
		elems := make([]value.Value, len(parts))
		for i, p := range parts {
			elems[i] = value.Str(p)
		}
		return &value.List{Elems: elems}, nil
	})

	reg("join", 2, 2, func(args []value.Value) (value.Value, error) {
		list, ok := args[0].(*value.List)
		if !ok {
			return nil, typeError("join", "list", args[0])
		}
		sep, ok := asStr(args[1])
		if !ok {
			return nil, typeError("join", "string", args[1])
		}
		parts := make([]string, len(list.Elems))
		for i, e := range list.Elems {
			parts[i] = value.ToString(e)
		}
		return value.Str(strings.Join(parts, sep)), nil
	})

	reg("contains", 2, 2, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("contains", "string", args[0])
		}
		sub, ok := asStr(args[1])
		if !ok {
			return nil, typeError("contains", "string", args[1])
		}
		return value.Bool(strings.Contains(s, sub)), nil
	})

	reg("starts_with", 2, 2, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("starts_with", "string", args[0])
		}
		prefix, ok := asStr(args[1])
		if !ok {
			return nil, typeError("starts_with", "string", args[1])
		}
		return value.Bool(strings.HasPrefix(s, prefix)), nil
	})

	reg("ends_with", 2, 2, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("ends_with", "string", args[0])
		}
		suffix, ok := asStr(args[1])
		if !ok {
			return nil, typeError("ends_with", "string", args[1])
		}
		return value.Bool(strings.HasSuffix(s, suffix)), nil
	})

	reg("replace", 3, 3, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("replace", "string", args[0])
		}
		old, ok := asStr(args[1])
		if !ok {
			return nil, typeError("replace", "string", args[1])
		}
		new, ok := asStr(args[2])
		if !ok {
			return nil, typeError("replace", "string", args[2])
		}
		return value.Str(strings.ReplaceAll(s, old, new)), nil
	})

	reg("to_string", 1, 1, func(args []value.Value) (value.Value, error) {
		return value.Str(value.ToString(args[0])), nil
	})

	reg("pad_left", 3, 3, func(args []value.Value) (value.Value, error) {
		return padString(args, false)
	})

	reg("pad_right", 3, 3, func(args []value.Value) (value.Value, error) {
		return padString(args, true)
	})
}

func padString(args []value.Value, right bool) (value.Value, error) {
	s, ok := asStr(args[0])
	if !ok {
		return nil, typeError("pad", "string", args[0])
	}
	width, ok := args[1].(value.Int)
	if !ok {
		return nil, typeError("pad", "int", args[1])
	}
	pad, ok := asStr(args[2])
	if !ok || len(pad) == 0 {
		return nil, typeError("pad", "non-empty string", args[2])
	}
	runes := []rune(s)
	need := int(width) - len(runes)
	if need <= 0 {
		return value.Str(s), nil
	}
	var b strings.Builder
	for b.Len() < need {
		b.WriteString(pad)
	}
	filler := []rune(b.String())[:need]
	if right {
		return value.Str(s + string(filler)), nil
	}
	return value.Str(string(filler) + s), nil
}

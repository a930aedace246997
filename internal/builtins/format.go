package builtins

import (
	"fmt"
	"strconv"
	"strings"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"github.com/russross/blackfriday/v2"
	"github.com/shopspring/decimal"

	"github.com/avonlang/avon/internal/value"
)

func registerFormat(reg registerFn) {
	reg("format_json", 1, 1, func(args []value.Value) (value.Value, error) {
		data, err := jsonv2.Marshal(toPlain(args[0]), jsonv2.Deterministic(true))
		if err != nil {
			return nil, fmt.Errorf("format_json: %w", err)
		}
		return value.Str(string(data)), nil
	})

	reg("json_parse", 1, 1, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("json_parse", "string", args[0])
		}
		var v any
		if err := jsonv2.Unmarshal([]byte(s), &v); err != nil {
			return nil, fmt.Errorf("json_parse: %w", err)
		}
		return fromPlain(v), nil
	})

	reg("md_to_html", 1, 1, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("md_to_html", "string", args[0])
		}
		return value.Str(string(blackfriday.Run([]byte(s)))), nil
	})

	reg("format_currency", 2, 2, func(args []value.Value) (value.Value, error) {
		f, ok := asFloat(args[0])
		if !ok {
			return nil, typeError("format_currency", "number", args[0])
		}
		symbol, ok := asStr(args[1])
		if !ok {
			return nil, typeError("format_currency", "string", args[1])
		}
		d := decimal.NewFromFloat(f)
		return value.Str(symbol + d.StringFixed(2)), nil
	})

	reg("format_hex", 1, 1, func(args []value.Value) (value.Value, error) {
		i, ok := args[0].(value.Int)
		if !ok {
			return nil, typeError("format_hex", "int", args[0])
		}
		return value.Str(strconv.FormatInt(int64(i), 16)), nil
	})

	reg("format_binary", 1, 1, func(args []value.Value) (value.Value, error) {
		i, ok := args[0].(value.Int)
		if !ok {
			return nil, typeError("format_binary", "int", args[0])
		}
		return value.Str(strconv.FormatInt(int64(i), 2)), nil
	})

	// Name-based (v5) rather than random, so the same program always
	// produces the same output.
	reg("uuid", 1, 1, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("uuid", "string", args[0])
		}
		return value.Str(uuid.NewSHA1(uuid.NameSpaceOID, []byte(s)).String()), nil
	})

	reg("html_escape", 1, 1, func(args []value.Value) (value.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, typeError("html_escape", "string", args[0])
		}
		r := strings.NewReplacer(
			"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;",
		)
		return value.Str(r.Replace(s)), nil
	})
}

// toPlain converts an Avon Value into a plain Go value suitable for
// json.Marshal, matching the stringification rules of value.ToString
// for scalar kinds that JSON has no native representation for (paths,
// closures, deploys stringify; numbers and containers map natively).
func toPlain(v value.Value) any {
	switch x := v.(type) {
	case value.Int:
		return int64(x)
	case value.Float:
		return float64(x)
	case value.Bool:
		return bool(x)
	case value.Str:
		return string(x)
	case value.Path:
		return string(x)
	case *value.List:
		out := make([]any, len(x.Elems))
		for i, e := range x.Elems {
			out[i] = toPlain(e)
		}
		return out
	case *value.Dict:
		out := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			ev, _ := x.Get(k)
			out[k] = toPlain(ev)
		}
		return out
	default:
		return value.ToString(v)
	}
}

// fromPlain converts a decoded JSON value (string/float64/bool/nil/
// []any/map[string]any) into an Avon Value.
func fromPlain(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.Bool(false)
	case string:
		return value.Str(x)
	case bool:
		return value.Bool(x)
	case float64:
		if x == float64(int64(x)) {
			return value.Int(int64(x))
		}
		return value.Float(x)
	case []any:
		elems := make([]value.Value, len(x))
		for i, e := range x {
			elems[i] = fromPlain(e)
		}
		return &value.List{Elems: elems}
	case map[string]any:
		d := &value.Dict{}
		for k, ev := range x {
			d.Set(k, fromPlain(ev))
		}
		return d
	default:
		return value.Str(fmt.Sprintf("%v", x))
	}
}

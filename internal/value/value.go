// Package value defines Avon's runtime value model and the immutable
// lexical environment values are looked up in.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/avonlang/avon/internal/ast"
	"github.com/avonlang/avon/internal/source"
)

// Value is any Avon runtime value.
type Value interface {
	Kind() string
}

// Int is a 64-bit integer value.
type Int int64

// Float is a 64-bit floating point value.
type Float float64

// Bool is a boolean value.
type Bool bool

// Str is a UTF-8 string value. Indexing and length operate on runes,
// not bytes.
type Str string

// Path is a filesystem path value; no existence check at construction.
type Path string

// List is an ordered, persistent sequence of values.
type List struct {
	Elems []Value
}

// dictEntry is one (key, value) pair of a Dict, kept in insertion order.
type dictEntry struct {
	Key   string
	Value Value
}

// Dict is an insertion-ordered string-keyed mapping.
type Dict struct {
	entries []dictEntry
	index   map[string]int
}

// NewDict builds a Dict from an ordered slice of keys and values.
func NewDict(keys []string, vals []Value) *Dict {
	d := &Dict{index: make(map[string]int, len(keys))}
	for i, k := range keys {
		d.Set(k, vals[i])
	}
	return d
}

// Set inserts or overwrites a key, preserving original insertion
// position on overwrite.
func (d *Dict) Set(key string, v Value) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[key]; ok {
		d.entries[i].Value = v
		return
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, dictEntry{Key: key, Value: v})
}

// Get returns the value for key and whether it was present.
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.entries[i].Value, true
}

// Keys returns keys in insertion order.
func (d *Dict) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}
	return keys
}

// Values returns values in insertion order.
func (d *Dict) Values() []Value {
	vals := make([]Value, len(d.entries))
	for i, e := range d.entries {
		vals[i] = e.Value
	}
	return vals
}

// Len reports the number of entries.
func (d *Dict) Len() int { return len(d.entries) }

// Clone returns a shallow copy safe to mutate independently.
func (d *Dict) Clone() *Dict {
	nd := &Dict{
		entries: make([]dictEntry, len(d.entries)),
		index:   make(map[string]int, len(d.index)),
	}
	copy(nd.entries, d.entries)
	for k, v := range d.index {
		nd.index[k] = v
	}
	return nd
}

// SortedKeys returns keys in lexical order, for callers that want a
// deterministic order other than insertion order.
func (d *Dict) SortedKeys() []string {
	keys := append([]string(nil), d.Keys()...)
	sort.Strings(keys)
	return keys
}

// Closure is a user-defined lambda bound to its defining environment.
type Closure struct {
	Params []ast.Param
	Body   ast.Expr
	Env    *Env
	// Bound holds already-supplied leading arguments for a partially
	// applied (curried) closure; nil for a freshly-created closure.
	Bound []Value
}

// BuiltinFunc is the Go-side implementation of a builtin. args has
// already been arity-checked by the evaluator's call path.
type BuiltinFunc func(args []Value) (Value, error)

// Builtin wraps a named, arity-checked pure function.
type Builtin struct {
	Name     string
	MinArity int
	MaxArity int // -1 for variadic (no upper bound)
	Fn       BuiltinFunc
	// Bound holds already-supplied leading arguments for partial
	// application of a builtin, mirroring Closure.Bound.
	Bound []Value
}

// Deploy is a first-class deployment intent: the evaluated path and
// the content to write there, carrying the span of the `@` that
// produced it for deploy-time error reporting.
type Deploy struct {
	Path    string
	Content string
	Span    source.Span
}

func (Int) Kind() string      { return "int" }
func (Float) Kind() string    { return "float" }
func (Bool) Kind() string     { return "bool" }
func (Str) Kind() string      { return "string" }
func (Path) Kind() string     { return "path" }
func (*List) Kind() string    { return "list" }
func (*Dict) Kind() string    { return "dict" }
func (*Closure) Kind() string { return "function" }
func (*Builtin) Kind() string { return "function" }
func (*Deploy) Kind() string  { return "deploy" }

// ToString implements the template/to_string coercion rules: integers
// decimal, floats minimal round-trip, booleans true|false,
// strings/paths as raw content, lists/dicts recursively with ',' and
// ':' separators and surrounding brackets.
func ToString(v Value) string {
	switch x := v.(type) {
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case Bool:
		if x {
			return "true"
		}
		return "false"
	case Str:
		return string(x)
	case Path:
		return string(x)
	case *List:
		parts := make([]string, len(x.Elems))
		for i, e := range x.Elems {
			parts[i] = ToString(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case *Dict:
		parts := make([]string, 0, x.Len())
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			parts = append(parts, k+":"+ToString(val))
		}
		return "{" + strings.Join(parts, ",") + "}"
	case *Closure, *Builtin:
		return "<function>"
	case *Deploy:
		return fmt.Sprintf("<deploy %s>", x.Path)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// AsBool is used by `if` and `&&`/`||` evaluation; only Bool values
// are accepted, intentionally strict rather than a generic truthiness
// coercion.
func AsBool(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}

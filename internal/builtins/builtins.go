// Package builtins implements Avon's standard library:
// numeric/string/list/dict combinators, type introspection,
// formatting, and file-reading helpers. Every builtin is a pure
// function of its arguments except the file-reading builtins, which
// read (never write) through an internal/filecache.Cache.
package builtins

import (
	"fmt"

	"github.com/avonlang/avon/internal/diag"
	"github.com/avonlang/avon/internal/eval"
	"github.com/avonlang/avon/internal/filecache"
	"github.com/avonlang/avon/internal/source"
	"github.com/avonlang/avon/internal/value"
)

// Register installs every builtin into a child of parent, returning the
// extended environment. ev is the evaluator that higher-order builtins
// (map, filter, fold, flatmap) call back into to apply their function
// argument. Name collisions with CLI-injected bindings are avoided by
// installing builtins first and letting the CLI layer's `-name value`
// injections shadow them in a further child frame.
func Register(parent *value.Env, cache *filecache.Cache, ev *eval.Evaluator) *value.Env {
	env := parent
	reg := func(name string, min, max int, fn value.BuiltinFunc) {
		env = env.Child(name, &value.Builtin{Name: name, MinArity: min, MaxArity: max, Fn: fn})
	}

	registerNumeric(reg)
	registerString(reg)
	registerList(reg)
	registerHigherOrder(reg, ev)
	registerDict(reg)
	registerTypeinfo(reg)
	registerFormat(reg)
	registerIO(reg, cache)

	return env
}

func indexError(name string, idx, length int) error {
	return diag.New(diag.KindIndexOutOfRange, source.Span{},
		"%s: index %d out of range (length %d)", name, idx, length)
}

func keyMissingError(key string) error {
	return diag.New(diag.KindKeyMissing, source.Span{}, "dict has no key %q", key)
}

func assertionError(msg string) error {
	return diag.New(diag.KindTypeMismatch, source.Span{}, "assertion failed: %s", msg)
}

type registerFn func(name string, min, max int, fn value.BuiltinFunc)

func typeError(name, want string, got value.Value) error {
	return fmt.Errorf("expected %s, got %s", want, got.Kind())
}


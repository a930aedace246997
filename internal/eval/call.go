package eval

import (
	"github.com/avonlang/avon/internal/ast"
	"github.com/avonlang/avon/internal/diag"
	"github.com/avonlang/avon/internal/source"
	"github.com/avonlang/avon/internal/value"
)

func (ev *Evaluator) evalCall(n *ast.Call, env *value.Env) (value.Value, *diag.Error) {
	fn, err := ev.Eval(n.Func, env)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := ev.Eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return ev.apply(fn, args, n.Span())
}

// apply invokes fn with args, handling currying, default arguments, and
// builtin arity checks. span is used for errors that
// have no more specific location of their own (arity mismatches,
// calling a non-function).
func (ev *Evaluator) apply(fn value.Value, args []value.Value, span source.Span) (value.Value, *diag.Error) {
	switch f := fn.(type) {
	case *value.Closure:
		return ev.applyClosure(f, args, span)
	case *value.Builtin:
		return ev.applyBuiltin(f, args, span)
	default:
		return nil, diag.New(diag.KindTypeMismatch, span, "cannot call a value of type %s", fn.Kind())
	}
}

func (ev *Evaluator) applyClosure(f *value.Closure, args []value.Value, span source.Span) (value.Value, *diag.Error) {
	provided := append(append([]value.Value{}, f.Bound...), args...)

	if len(provided) > len(f.Params) {
		return nil, diag.New(diag.KindArity, span,
			"too many arguments: function takes %d, got %d", len(f.Params), len(provided))
	}

	if len(provided) < len(f.Params) {
		// Try to fill the gap with default expressions, evaluated in the
		// closure's defining environment.
		filled := make([]value.Value, len(provided))
		copy(filled, provided)
		complete := true
		for i := len(provided); i < len(f.Params); i++ {
			p := f.Params[i]
			if p.Default == nil {
				complete = false
				break
			}
			dv, err := ev.Eval(p.Default, f.Env)
			if err != nil {
				return nil, err
			}
			filled = append(filled, dv)
		}
		if !complete {
			// Partial application: return a curried closure bound to the
			// provided prefix.
			return &value.Closure{Params: f.Params, Body: f.Body, Env: f.Env, Bound: provided}, nil
		}
		provided = filled
	}

	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > MaxCallDepth {
		return nil, diag.New(diag.KindRecursionDepth, span,
			"maximum call stack depth (%d) exceeded", MaxCallDepth)
	}

	callEnv := f.Env
	for i, p := range f.Params {
		callEnv = callEnv.Child(p.Name, provided[i])
	}
	return ev.Eval(f.Body, callEnv)
}

// Call invokes fn with args on behalf of a higher-order builtin (map,
// filter, fold, ...), which has no source span of its own to attribute
// errors to.
func (ev *Evaluator) Call(fn value.Value, args []value.Value) (value.Value, *diag.Error) {
	return ev.apply(fn, args, source.Span{})
}

func (ev *Evaluator) applyBuiltin(f *value.Builtin, args []value.Value, span source.Span) (value.Value, *diag.Error) {
	provided := append(append([]value.Value{}, f.Bound...), args...)

	if f.MaxArity >= 0 && len(provided) > f.MaxArity {
		return nil, diag.New(diag.KindArity, span, "'%s' takes at most %d argument(s), got %d", f.Name, f.MaxArity, len(provided))
	}
	if len(provided) < f.MinArity {
		// Not yet enough to call: curry by binding what we have so far.
		return &value.Builtin{Name: f.Name, MinArity: f.MinArity, MaxArity: f.MaxArity, Fn: f.Fn, Bound: provided}, nil
	}

	v, goErr := f.Fn(provided)
	if goErr != nil {
		if de, ok := goErr.(*diag.Error); ok {
			if len(de.Spans) == 0 || de.Spans[0].Start.IsZero() {
				de.Spans = []source.Span{span}
			}
			return nil, de
		}
		return nil, diag.New(diag.KindTypeMismatch, span, "%s: %s", f.Name, goErr.Error())
	}
	return v, nil
}

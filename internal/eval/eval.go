// Package eval is Avon's tree-walking evaluator: a pure function from
// (ast.Expr, *value.Env) to (value.Value, error). Evaluation is eager,
// call-by-value, left-to-right, with currying on under-application.
package eval

import (
	"fmt"
	"strings"

	"github.com/avonlang/avon/internal/ast"
	"github.com/avonlang/avon/internal/diag"
	"github.com/avonlang/avon/internal/value"
)

// MaxCallDepth bounds user recursion before the host stack is at risk.
const MaxCallDepth = 10000

// Evaluator carries the one piece of mutable state evaluation needs: the
// current call-stack depth, reset per top-level Eval call.
type Evaluator struct {
	depth int
}

// New creates an Evaluator ready to run a single program.
func New() *Evaluator {
	return &Evaluator{}
}

// Eval reduces expr in env to a Value, or fails with a *diag.Error.
func (ev *Evaluator) Eval(expr ast.Expr, env *value.Env) (value.Value, *diag.Error) {
	switch n := expr.(type) {
	case *ast.IntLit:
		return value.Int(n.Value), nil
	case *ast.FloatLit:
		return value.Float(n.Value), nil
	case *ast.BoolLit:
		return value.Bool(n.Value), nil
	case *ast.Template:
		return ev.evalTemplate(n, env)
	case *ast.Ident:
		return ev.evalIdent(n, env)
	case *ast.ListLit:
		return ev.evalList(n, env)
	case *ast.DictLit:
		return ev.evalDict(n, env)
	case *ast.Member:
		return ev.evalMember(n, env)
	case *ast.Lambda:
		return &value.Closure{Params: n.Params, Body: n.Body, Env: env}, nil
	case *ast.Call:
		return ev.evalCall(n, env)
	case *ast.Let:
		return ev.evalLet(n, env)
	case *ast.If:
		return ev.evalIf(n, env)
	case *ast.UnaryOp:
		return ev.evalUnary(n, env)
	case *ast.BinaryOp:
		return ev.evalBinary(n, env)
	case *ast.Deploy:
		return ev.evalDeploy(n, env)
	}
	return nil, diag.New(diag.KindParse, expr.Span(), "internal: unhandled AST node %T", expr)
}

func (ev *Evaluator) evalIdent(n *ast.Ident, env *value.Env) (value.Value, *diag.Error) {
	v, ok := env.Lookup(n.Name)
	if !ok {
		return nil, diag.UnknownSymbolError(n.Name, n.Span(), env.Names())
	}
	if v == nil {
		// The placeholder a `let` installs before evaluating its own
		// RHS: reading it means the binding is used before it has a
		// value, e.g. `let x = x + 1 in x`.
		return nil, diag.New(diag.KindUnknownSymbol, n.Span(),
			"'%s' used in its own definition before it has a value", n.Name)
	}
	return v, nil
}

func (ev *Evaluator) evalTemplate(n *ast.Template, env *value.Env) (value.Value, *diag.Error) {
	if n.IsPlainString() {
		return value.Str(n.PlainString()), nil
	}
	var b strings.Builder
	for _, c := range n.Chunks {
		if !c.IsExpr {
			b.WriteString(c.Literal)
			continue
		}
		v, err := ev.Eval(c.Expr, env)
		if err != nil {
			return nil, err
		}
		b.WriteString(value.ToString(v))
	}
	return value.Str(b.String()), nil
}

func (ev *Evaluator) evalList(n *ast.ListLit, env *value.Env) (value.Value, *diag.Error) {
	if n.IsRange {
		return ev.evalRange(n, env)
	}
	elems := make([]value.Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := ev.Eval(e, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &value.List{Elems: elems}, nil
}

// evalRange expands `[lo..hi]` and `[lo, next..hi]`, the latter
// inferring an integer step from next-lo.
func (ev *Evaluator) evalRange(n *ast.ListLit, env *value.Env) (value.Value, *diag.Error) {
	loV, err := ev.Eval(n.Lo, env)
	if err != nil {
		return nil, err
	}
	hiV, err := ev.Eval(n.Hi, env)
	if err != nil {
		return nil, err
	}
	lo, ok := loV.(value.Int)
	if !ok {
		return nil, diag.New(diag.KindTypeMismatch, n.Lo.Span(), "range bound must be int, got %s", loV.Kind())
	}
	hi, ok := hiV.(value.Int)
	if !ok {
		return nil, diag.New(diag.KindTypeMismatch, n.Hi.Span(), "range bound must be int, got %s", hiV.Kind())
	}
	step := int64(1)
	if n.Next != nil {
		nextV, err := ev.Eval(n.Next, env)
		if err != nil {
			return nil, err
		}
		next, ok := nextV.(value.Int)
		if !ok {
			return nil, diag.New(diag.KindTypeMismatch, n.Next.Span(), "range step must be int, got %s", nextV.Kind())
		}
		step = int64(next) - int64(lo)
	} else if int64(hi) < int64(lo) {
		return &value.List{}, nil
	}

	var elems []value.Value
	if step == 0 {
		return &value.List{}, nil
	}
	if step > 0 {
		if int64(hi) < int64(lo) {
			return &value.List{}, nil
		}
		for v := int64(lo); v <= int64(hi); v += step {
			elems = append(elems, value.Int(v))
		}
	} else {
		if int64(hi) > int64(lo) {
			return &value.List{}, nil
		}
		for v := int64(lo); v >= int64(hi); v += step {
			elems = append(elems, value.Int(v))
		}
	}
	return &value.List{Elems: elems}, nil
}

func (ev *Evaluator) evalDict(n *ast.DictLit, env *value.Env) (value.Value, *diag.Error) {
	d := &value.Dict{}
	for _, pair := range n.Pairs {
		kv, err := ev.Eval(pair.Key, env)
		if err != nil {
			return nil, err
		}
		key, ok := kv.(value.Str)
		if !ok {
			return nil, diag.New(diag.KindTypeMismatch, pair.Key.Span(), "dict key must evaluate to a string, got %s", kv.Kind())
		}
		vv, err := ev.Eval(pair.Value, env)
		if err != nil {
			return nil, err
		}
		d.Set(string(key), vv)
	}
	return d, nil
}

func (ev *Evaluator) evalMember(n *ast.Member, env *value.Env) (value.Value, *diag.Error) {
	target, err := ev.Eval(n.Target, env)
	if err != nil {
		return nil, err
	}
	d, ok := target.(*value.Dict)
	if !ok {
		return nil, diag.New(diag.KindTypeMismatch, n.Span(), "cannot access field %q on %s", n.Name, target.Kind())
	}
	v, ok := d.Get(n.Name)
	if !ok {
		e := diag.New(diag.KindKeyMissing, n.Span(), "dict has no key %q", n.Name)
		if hint := diag.NearestName(n.Name, d.Keys()); hint != "" {
			e.WithHint(fmt.Sprintf("did you mean %q?", hint))
		}
		return nil, e
	}
	return v, nil
}

func (ev *Evaluator) evalLet(n *ast.Let, env *value.Env) (value.Value, *diag.Error) {
	// A placeholder self-reference lets `f` see itself during evaluation
	// of its own RHS, supporting direct recursion without a letrec form.
	// The closure created by n.Value captures `inner`, whose frame is
	// then filled in with the finished binding.
	inner := env.Child(n.Name, nil)
	v, err := ev.Eval(n.Value, inner)
	if err != nil {
		return nil, err
	}
	inner.Bind(n.Name, v)
	return ev.Eval(n.Body, inner)
}

func (ev *Evaluator) evalIf(n *ast.If, env *value.Env) (value.Value, *diag.Error) {
	cv, err := ev.Eval(n.Cond, env)
	if err != nil {
		return nil, err
	}
	b, ok := value.AsBool(cv)
	if !ok {
		return nil, diag.New(diag.KindTypeMismatch, n.Cond.Span(), "if condition must be bool, got %s", cv.Kind())
	}
	if b {
		return ev.Eval(n.Then, env)
	}
	return ev.Eval(n.Else, env)
}

func (ev *Evaluator) evalUnary(n *ast.UnaryOp, env *value.Env) (value.Value, *diag.Error) {
	v, err := ev.Eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		switch x := v.(type) {
		case value.Int:
			return -x, nil
		case value.Float:
			return -x, nil
		}
		return nil, diag.New(diag.KindTypeMismatch, n.Span(), "unary '-' requires a number, got %s", v.Kind())
	case "!":
		b, ok := value.AsBool(v)
		if !ok {
			return nil, diag.New(diag.KindTypeMismatch, n.Span(), "unary '!' requires a bool, got %s", v.Kind())
		}
		return value.Bool(!b), nil
	}
	return nil, diag.New(diag.KindParse, n.Span(), "internal: unknown unary operator %q", n.Op)
}

func (ev *Evaluator) evalDeploy(n *ast.Deploy, env *value.Env) (value.Value, *diag.Error) {
	pathV, err := ev.Eval(n.Path, env)
	if err != nil {
		return nil, err
	}
	contentV, err := ev.Eval(n.Content, env)
	if err != nil {
		return nil, err
	}
	path, ok := pathV.(value.Str)
	if !ok {
		return nil, diag.New(diag.KindTypeMismatch, n.Path.Span(), "deploy path must be a string, got %s", pathV.Kind())
	}
	content, ok := contentV.(value.Str)
	if !ok {
		return nil, diag.New(diag.KindTypeMismatch, n.Content.Span(), "deploy content must be a string, got %s", contentV.Kind())
	}
	return &value.Deploy{Path: string(path), Content: string(content), Span: n.Span()}, nil
}

// numAsFloat promotes an Int/Float Value to float64 for mixed-type
// arithmetic, whose result is always a float.
func numAsFloat(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case value.Int:
		return float64(x), true
	case value.Float:
		return float64(x), true
	}
	return 0, false
}

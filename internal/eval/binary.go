package eval

import (
	"github.com/avonlang/avon/internal/ast"
	"github.com/avonlang/avon/internal/diag"
	"github.com/avonlang/avon/internal/value"
)

func (ev *Evaluator) evalBinary(n *ast.BinaryOp, env *value.Env) (value.Value, *diag.Error) {
	// && and || short-circuit, so their right operand is evaluated lazily.
	if n.Op == "&&" || n.Op == "||" {
		return ev.evalShortCircuit(n, env)
	}

	l, err := ev.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	r, err := ev.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "==":
		return value.Bool(equalValues(l, r)), nil
	case "!=":
		return value.Bool(!equalValues(l, r)), nil
	case "+":
		return ev.evalPlus(n, l, r)
	case "-", "*", "/", "%":
		return ev.evalArith(n, l, r)
	case "<", "<=", ">", ">=":
		return ev.evalCompare(n, l, r)
	}
	return nil, diag.New(diag.KindParse, n.Span(), "internal: unknown binary operator %q", n.Op)
}

func (ev *Evaluator) evalShortCircuit(n *ast.BinaryOp, env *value.Env) (value.Value, *diag.Error) {
	l, err := ev.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	lb, ok := value.AsBool(l)
	if !ok {
		return nil, diag.New(diag.KindTypeMismatch, n.Left.Span(), "'%s' requires bool operands, left is %s", n.Op, l.Kind())
	}
	if n.Op == "&&" && !lb {
		return value.Bool(false), nil
	}
	if n.Op == "||" && lb {
		return value.Bool(true), nil
	}
	r, err := ev.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	rb, ok := value.AsBool(r)
	if !ok {
		return nil, diag.New(diag.KindTypeMismatch, n.Right.Span(), "'%s' requires bool operands, right is %s", n.Op, r.Kind())
	}
	return value.Bool(rb), nil
}

func (ev *Evaluator) evalPlus(n *ast.BinaryOp, l, r value.Value) (value.Value, *diag.Error) {
	switch lv := l.(type) {
	case value.Str:
		rv, ok := r.(value.Str)
		if !ok {
			return nil, typeMismatch(n, l, r)
		}
		return lv + rv, nil
	case *value.List:
		rv, ok := r.(*value.List)
		if !ok {
			return nil, typeMismatch(n, l, r)
		}
		elems := make([]value.Value, 0, len(lv.Elems)+len(rv.Elems))
		elems = append(elems, lv.Elems...)
		elems = append(elems, rv.Elems...)
		return &value.List{Elems: elems}, nil
	}
	return ev.evalArith(n, l, r)
}

func (ev *Evaluator) evalArith(n *ast.BinaryOp, l, r value.Value) (value.Value, *diag.Error) {
	li, lIsInt := l.(value.Int)
	ri, rIsInt := r.(value.Int)
	if lIsInt && rIsInt {
		a, b := int64(li), int64(ri)
		switch n.Op {
		case "+":
			return value.Int(a + b), nil
		case "-":
			return value.Int(a - b), nil
		case "*":
			return value.Int(a * b), nil
		case "/":
			if b == 0 {
				return nil, diag.New(diag.KindDivideByZero, n.Span(), "division by zero")
			}
			return value.Int(a / b), nil
		case "%":
			if b == 0 {
				return nil, diag.New(diag.KindDivideByZero, n.Span(), "division by zero")
			}
			return value.Int(a % b), nil
		}
	}

	lf, lok := numAsFloat(l)
	rf, rok := numAsFloat(r)
	if !lok || !rok {
		return nil, typeMismatch(n, l, r)
	}
	switch n.Op {
	case "+":
		return value.Float(lf + rf), nil
	case "-":
		return value.Float(lf - rf), nil
	case "*":
		return value.Float(lf * rf), nil
	case "/":
		if rf == 0 {
			return nil, diag.New(diag.KindDivideByZero, n.Span(), "division by zero")
		}
		return value.Float(lf / rf), nil
	case "%":
		return nil, diag.New(diag.KindTypeMismatch, n.Span(), "'%%' requires integer operands")
	}
	return nil, diag.New(diag.KindParse, n.Span(), "internal: unknown arithmetic operator %q", n.Op)
}

func (ev *Evaluator) evalCompare(n *ast.BinaryOp, l, r value.Value) (value.Value, *diag.Error) {
	if ls, ok := l.(value.Str); ok {
		rs, ok := r.(value.Str)
		if !ok {
			return nil, typeMismatch(n, l, r)
		}
		return value.Bool(compareOrdered(n.Op, string(ls) < string(rs), string(ls) == string(rs))), nil
	}
	lf, lok := numAsFloat(l)
	rf, rok := numAsFloat(r)
	if !lok || !rok {
		return nil, typeMismatch(n, l, r)
	}
	return value.Bool(compareOrdered(n.Op, lf < rf, lf == rf)), nil
}

func compareOrdered(op string, less, equal bool) bool {
	switch op {
	case "<":
		return less
	case "<=":
		return less || equal
	case ">":
		return !less && !equal
	case ">=":
		return !less
	}
	return false
}

func typeMismatch(n *ast.BinaryOp, l, r value.Value) *diag.Error {
	return diag.New(diag.KindTypeMismatch, n.Span(), "'%s' not defined for %s and %s", n.Op, l.Kind(), r.Kind())
}

// equalValues backs `==`/`!=`, which are total: unlike types compare
// unequal rather than erroring.
func equalValues(l, r value.Value) bool {
	switch lv := l.(type) {
	case value.Int:
		if rv, ok := r.(value.Int); ok {
			return lv == rv
		}
		if rv, ok := r.(value.Float); ok {
			return float64(lv) == float64(rv)
		}
		return false
	case value.Float:
		if rv, ok := r.(value.Float); ok {
			return lv == rv
		}
		if rv, ok := r.(value.Int); ok {
			return float64(lv) == float64(rv)
		}
		return false
	case value.Bool:
		rv, ok := r.(value.Bool)
		return ok && lv == rv
	case value.Str:
		rv, ok := r.(value.Str)
		return ok && lv == rv
	case value.Path:
		rv, ok := r.(value.Path)
		return ok && lv == rv
	case *value.List:
		rv, ok := r.(*value.List)
		if !ok || len(lv.Elems) != len(rv.Elems) {
			return false
		}
		for i := range lv.Elems {
			if !equalValues(lv.Elems[i], rv.Elems[i]) {
				return false
			}
		}
		return true
	case *value.Dict:
		rv, ok := r.(*value.Dict)
		if !ok || lv.Len() != rv.Len() {
			return false
		}
		for _, k := range lv.Keys() {
			a, _ := lv.Get(k)
			b, ok := rv.Get(k)
			if !ok || !equalValues(a, b) {
				return false
			}
		}
		return true
	}
	return false
}

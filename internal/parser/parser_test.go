package parser

import (
	"testing"

	"github.com/avonlang/avon/internal/ast"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, _, err := Parse("t.avon", src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return expr
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"int", "42"},
		{"float", "3.14"},
		{"bool true", "true"},
		{"bool false", "false"},
		{"ident", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustParse(t, tt.src)
		})
	}
}

func TestParseApplicationIsLeftAssociative(t *testing.T) {
	expr := mustParse(t, "f a b c")
	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("top level is %T, want *ast.Call", expr)
	}
	if _, ok := call.Func.(*ast.Ident); !ok {
		t.Fatalf("Func is %T, want *ast.Ident", call.Func)
	}
	if len(call.Args) != 3 {
		t.Fatalf("len(Args) = %d, want 3", len(call.Args))
	}
}

func TestParsePipeDesugarsToTrailingArgument(t *testing.T) {
	expr := mustParse(t, "x -> f y")
	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("top level is %T, want *ast.Call", expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2 (y, x)", len(call.Args))
	}
	last, ok := call.Args[len(call.Args)-1].(*ast.Ident)
	if !ok || last.Name != "x" {
		t.Fatalf("last arg = %#v, want Ident(x)", call.Args[len(call.Args)-1])
	}
}

func TestParseListElementsUseFullPrecedence(t *testing.T) {
	// List elements must parse at full expression precedence, so `f x`
	// inside a list is an application, not `f` followed by a parse
	// error on `x`.
	expr := mustParse(t, "[f x, 2]")
	lst, ok := expr.(*ast.ListLit)
	if !ok {
		t.Fatalf("top level is %T, want *ast.ListLit", expr)
	}
	if len(lst.Elements) != 2 {
		t.Fatalf("len(Elements) = %d, want 2", len(lst.Elements))
	}
	if _, ok := lst.Elements[0].(*ast.Call); !ok {
		t.Errorf("Elements[0] is %T, want *ast.Call", lst.Elements[0])
	}
}

func TestParseRangeLiteral(t *testing.T) {
	expr := mustParse(t, "[1..10]")
	lst, ok := expr.(*ast.ListLit)
	if !ok || !lst.IsRange {
		t.Fatalf("expr = %#v, want a range ListLit", expr)
	}
	if lst.Next != nil {
		t.Errorf("Next = %#v, want nil (no step hint)", lst.Next)
	}
}

func TestParseRangeLiteralWithStep(t *testing.T) {
	expr := mustParse(t, "[0, 2..10]")
	lst, ok := expr.(*ast.ListLit)
	if !ok || !lst.IsRange || lst.Next == nil {
		t.Fatalf("expr = %#v, want a stepped range ListLit", expr)
	}
}

func TestParseLambdaDefaults(t *testing.T) {
	expr := mustParse(t, `\x y = 10 -> x + y`)
	lam, ok := expr.(*ast.Lambda)
	if !ok {
		t.Fatalf("top level is %T, want *ast.Lambda", expr)
	}
	if len(lam.Params) != 2 {
		t.Fatalf("len(Params) = %d, want 2", len(lam.Params))
	}
	if lam.Params[0].Default != nil {
		t.Errorf("Params[0].Default = %#v, want nil", lam.Params[0].Default)
	}
	if lam.Params[1].Default == nil {
		t.Errorf("Params[1].Default = nil, want a default expr")
	}
}

func TestParseLambdaRejectsRequiredAfterDefaulted(t *testing.T) {
	_, _, err := Parse("t.avon", `\x = 1 y -> x`)
	if err == nil {
		t.Fatal("expected a parse error for a required parameter after a defaulted one")
	}
}

func TestParseDictWithIdentKeys(t *testing.T) {
	expr := mustParse(t, `{port: 8080, host: "local"}`)
	dict, ok := expr.(*ast.DictLit)
	if !ok {
		t.Fatalf("top level is %T, want *ast.DictLit", expr)
	}
	if len(dict.Pairs) != 2 {
		t.Fatalf("len(Pairs) = %d, want 2", len(dict.Pairs))
	}
	tmpl, ok := dict.Pairs[0].Key.(*ast.Template)
	if !ok || !tmpl.IsPlainString() || tmpl.PlainString() != "port" {
		t.Errorf("Pairs[0].Key = %#v, want plain template \"port\"", dict.Pairs[0].Key)
	}
}

func TestParseTemplateInterpolation(t *testing.T) {
	expr := mustParse(t, `"port={port}"`)
	tmpl, ok := expr.(*ast.Template)
	if !ok {
		t.Fatalf("top level is %T, want *ast.Template", expr)
	}
	if tmpl.IsPlainString() {
		t.Fatal("template has an interpolation, IsPlainString should be false")
	}
	if len(tmpl.Chunks) != 2 {
		t.Fatalf("len(Chunks) = %d, want 2", len(tmpl.Chunks))
	}
	if tmpl.Chunks[0].Literal != "port=" {
		t.Errorf("Chunks[0].Literal = %q, want %q", tmpl.Chunks[0].Literal, "port=")
	}
	if !tmpl.Chunks[1].IsExpr {
		t.Error("Chunks[1].IsExpr = false, want true")
	}
}

func TestParseDeploy(t *testing.T) {
	expr := mustParse(t, `@/etc/{name}.conf { "contents" }`)
	dep, ok := expr.(*ast.Deploy)
	if !ok {
		t.Fatalf("top level is %T, want *ast.Deploy", expr)
	}
	if dep.Path.IsPlainString() {
		t.Fatal("deploy path has an interpolation, IsPlainString should be false")
	}
	if _, ok := dep.Content.(*ast.Template); !ok {
		t.Fatalf("Content is %T, want *ast.Template", dep.Content)
	}
}

func TestParseLetAndIf(t *testing.T) {
	expr := mustParse(t, "let x = 1 in if x == 1 then 2 else 3")
	let, ok := expr.(*ast.Let)
	if !ok {
		t.Fatalf("top level is %T, want *ast.Let", expr)
	}
	if let.Name != "x" {
		t.Errorf("Name = %q, want x", let.Name)
	}
	if _, ok := let.Body.(*ast.If); !ok {
		t.Fatalf("Body is %T, want *ast.If", let.Body)
	}
}

func TestParseMemberAccess(t *testing.T) {
	expr := mustParse(t, "config.port")
	mem, ok := expr.(*ast.Member)
	if !ok {
		t.Fatalf("top level is %T, want *ast.Member", expr)
	}
	if mem.Name != "port" {
		t.Errorf("Name = %q, want port", mem.Name)
	}
}

func TestParseUnexpectedTokenErrors(t *testing.T) {
	_, _, err := Parse("t.avon", "let x = in x")
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestParseTrailingTokensAfterExprIsError(t *testing.T) {
	_, _, err := Parse("t.avon", "1 2 )")
	if err == nil {
		t.Fatal("expected a parse error for trailing ')' after a complete expression")
	}
}

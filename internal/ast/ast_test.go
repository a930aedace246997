package ast

import (
	"testing"

	"github.com/avonlang/avon/internal/source"
)

// countingVisitor counts how many Ident nodes BaseVisitor's default
// traversal reaches, proving it walks every child without a Visit
// override of its own.
type countingVisitor struct {
	BaseVisitor
	idents int
}

func (c *countingVisitor) VisitIdent(n *Ident) any {
	c.idents++
	return nil
}

func TestBaseVisitorTraversesEveryChild(t *testing.T) {
	sp := source.Span{}
	call := NewCall(
		NewIdent("f", sp),
		[]Expr{NewIdent("a", sp), NewIdent("b", sp)},
		sp,
	)
	lam := NewLambda([]Param{{Name: "x"}}, call, sp)

	v := &countingVisitor{}
	lam.Accept(v)
	if v.idents != 2 {
		t.Errorf("idents visited = %d, want 2 (from Call's Func and Args)", v.idents)
	}
}

func TestTemplateIsPlainString(t *testing.T) {
	sp := source.Span{}
	plain := NewTemplate([]Chunk{{Literal: "hello"}}, sp)
	if !plain.IsPlainString() {
		t.Error("a template with only literal chunks should be a plain string")
	}
	if plain.PlainString() != "hello" {
		t.Errorf("PlainString() = %q, want hello", plain.PlainString())
	}

	interpolated := NewTemplate([]Chunk{{Literal: "x="}, {IsExpr: true, Expr: NewIdent("y", sp)}}, sp)
	if interpolated.IsPlainString() {
		t.Error("a template with an interpolation should not be a plain string")
	}
}

func TestConstructorsAttachSpans(t *testing.T) {
	sp := source.Span{Start: source.Pos{Offset: 1}, End: source.Pos{Offset: 4}}
	n := NewIntLit(7, sp)
	if n.Span() != sp {
		t.Errorf("Span() = %v, want %v", n.Span(), sp)
	}
}

// Package ast defines Avon's expression tree: tagged node variants
// implementing Accept(Visitor), with a BaseVisitor default-traversal
// embed for passes that only care about a few node kinds.
package ast

import "github.com/avonlang/avon/internal/source"

// Expr is any Avon expression node.
type Expr interface {
	Span() source.Span
	Accept(v Visitor) any
}

type base struct {
	span source.Span
}

func (b base) Span() source.Span { return b.span }

// IntLit is an integer literal.
type IntLit struct {
	base
	Value int64
}

// FloatLit is a floating point literal.
type FloatLit struct {
	base
	Value float64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	base
	Value bool
}

// Chunk is one piece of a Template: either raw literal text or the
// source of an interpolated expression.
type Chunk struct {
	Literal string
	IsExpr  bool
	Expr    Expr
}

// Template is a template string or deploy-path template: an ordered
// sequence of literal and expression chunks. A Template with a single
// literal Chunk and no interpolations is Avon's plain string literal.
type Template struct {
	base
	Chunks []Chunk
}

// IsPlainString reports whether t has no interpolations, i.e. it is
// really just a string literal.
func (t *Template) IsPlainString() bool {
	for _, c := range t.Chunks {
		if c.IsExpr {
			return false
		}
	}
	return true
}

// PlainString returns the concatenation of t's literal chunks. Only
// meaningful when IsPlainString is true.
func (t *Template) PlainString() string {
	s := ""
	for _, c := range t.Chunks {
		s += c.Literal
	}
	return s
}

// Ident is an identifier reference.
type Ident struct {
	base
	Name string
}

// ListLit is a bracketed list literal: either an explicit element list
// or an integer range.
type ListLit struct {
	base
	Elements []Expr // nil when Range != nil

	IsRange  bool
	Lo, Hi   Expr
	Next     Expr // optional "[lo, next .. hi]" step hint; nil for "[lo..hi]"
}

// DictPair is one (key, value) entry of a DictLit.
type DictPair struct {
	Key   Expr
	Value Expr
}

// DictLit is a dict literal preserving declaration order.
type DictLit struct {
	base
	Pairs []DictPair
}

// Member is dotted field/method access: Target.Name.
type Member struct {
	base
	Target Expr
	Name   string
}

// Param is one lambda parameter, optionally defaulted.
type Param struct {
	Name    string
	Default Expr // nil when required
}

// Lambda is `\ param1 param2 … body`.
type Lambda struct {
	base
	Params []Param
	Body   Expr
}

// Call is left-associative application: juxtaposition f a b c.
type Call struct {
	base
	Func Expr
	Args []Expr
}

// Let is `let name = expr in body`.
type Let struct {
	base
	Name  string
	Value Expr
	Body  Expr
}

// If is `if cond then t else e`.
type If struct {
	base
	Cond, Then, Else Expr
}

// UnaryOp is a prefix unary operator: - or !.
type UnaryOp struct {
	base
	Op      string
	Operand Expr
}

// BinaryOp is an infix binary operator.
type BinaryOp struct {
	base
	Op          string
	Left, Right Expr
}

// Deploy is `@path-template { content-expr }`.
type Deploy struct {
	base
	Path    *Template
	Content Expr
}

// File is a parsed Avon program: a single top-level expression.
type File struct {
	Body Expr
}

func span(s source.Span) base { return base{span: s} }

// NewIntLit, NewFloatLit, ... are constructors taking an explicit span,
// used by the parser.
func NewIntLit(v int64, s source.Span) *IntLit     { return &IntLit{base: span(s), Value: v} }
func NewFloatLit(v float64, s source.Span) *FloatLit { return &FloatLit{base: span(s), Value: v} }
func NewBoolLit(v bool, s source.Span) *BoolLit     { return &BoolLit{base: span(s), Value: v} }
func NewTemplate(chunks []Chunk, s source.Span) *Template {
	return &Template{base: span(s), Chunks: chunks}
}
func NewIdent(name string, s source.Span) *Ident { return &Ident{base: span(s), Name: name} }
func NewListLit(elems []Expr, s source.Span) *ListLit {
	return &ListLit{base: span(s), Elements: elems}
}
func NewRangeLit(lo, next, hi Expr, s source.Span) *ListLit {
	return &ListLit{base: span(s), IsRange: true, Lo: lo, Next: next, Hi: hi}
}
func NewDictLit(pairs []DictPair, s source.Span) *DictLit {
	return &DictLit{base: span(s), Pairs: pairs}
}
func NewMember(target Expr, name string, s source.Span) *Member {
	return &Member{base: span(s), Target: target, Name: name}
}
func NewLambda(params []Param, body Expr, s source.Span) *Lambda {
	return &Lambda{base: span(s), Params: params, Body: body}
}
func NewCall(fn Expr, args []Expr, s source.Span) *Call {
	return &Call{base: span(s), Func: fn, Args: args}
}
func NewLet(name string, value, body Expr, s source.Span) *Let {
	return &Let{base: span(s), Name: name, Value: value, Body: body}
}
func NewIf(cond, then, els Expr, s source.Span) *If {
	return &If{base: span(s), Cond: cond, Then: then, Else: els}
}
func NewUnaryOp(op string, operand Expr, s source.Span) *UnaryOp {
	return &UnaryOp{base: span(s), Op: op, Operand: operand}
}
func NewBinaryOp(op string, l, r Expr, s source.Span) *BinaryOp {
	return &BinaryOp{base: span(s), Op: op, Left: l, Right: r}
}
func NewDeploy(path *Template, content Expr, s source.Span) *Deploy {
	return &Deploy{base: span(s), Path: path, Content: content}
}

// Package parser implements Avon's hand-written recursive-descent,
// precedence-climbing parser. A single parseExpr entry point is used
// in every expression context -- list elements, dict values, lambda
// bodies, conditional branches, let bodies, and parenthesized call
// arguments alike -- so no context accidentally drops to
// application-level precedence.
package parser

import (
	"github.com/avonlang/avon/internal/ast"
	"github.com/avonlang/avon/internal/diag"
	"github.com/avonlang/avon/internal/lexer"
	"github.com/avonlang/avon/internal/source"
)

// Parser consumes a token stream and produces an ast.Expr.
type Parser struct {
	lx   *lexer.Lexer
	buf  []lexer.Token // lookahead buffer, at most 2 tokens
	file *source.File
}

// Parse parses src (named filename for diagnostics) into a single
// top-level expression followed by EOF.
func Parse(filename, src string) (ast.Expr, *source.File, *diag.Error) {
	lx, err := lexer.New(filename, src)
	if err != nil {
		if de, ok := err.(*diag.Error); ok {
			return nil, nil, de
		}
		return nil, nil, diag.New(diag.KindLex, source.Span{}, "%s", err.Error())
	}
	p := &Parser{lx: lx, file: lx.File()}
	expr, perr := p.parseExpr()
	if perr != nil {
		return nil, p.file, perr
	}
	if err := p.expect(lexer.EOF); err != nil {
		return nil, p.file, err
	}
	return expr, p.file, nil
}

// --- token stream plumbing ---

func (p *Parser) fill(n int) *diag.Error {
	for len(p.buf) <= n {
		tok, err := p.lx.Next()
		if err != nil {
			if de, ok := err.(*diag.Error); ok {
				return de
			}
			return diag.New(diag.KindLex, source.Span{}, "%s", err.Error())
		}
		p.buf = append(p.buf, tok)
	}
	return nil
}

func (p *Parser) peek() lexer.Token {
	if err := p.fill(0); err != nil {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.buf[0]
}

func (p *Parser) peekAt(n int) lexer.Token {
	if err := p.fill(n); err != nil {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.buf[n]
}

func (p *Parser) advance() lexer.Token {
	if err := p.fill(0); err != nil {
		return lexer.Token{Kind: lexer.EOF}
	}
	tok := p.buf[0]
	p.buf = p.buf[1:]
	return tok
}

func (p *Parser) expect(k lexer.Kind) *diag.Error {
	tok := p.peek()
	if tok.Kind != k {
		e := diag.New(diag.KindParse, tok.Span, "unexpected %s", describe(tok))
		e.Expected = k.String()
		return e
	}
	p.advance()
	return nil
}

func describe(tok lexer.Token) string {
	if tok.Kind == lexer.EOF {
		return "end of input"
	}
	return tok.Kind.String()
}

// canStartAtom reports whether tok can begin an application argument.
// Application parsing stops at any token beginning a lower-precedence
// operator, a comma, a closing bracket, or `in`/`then`/`else`.
func canStartAtom(k lexer.Kind) bool {
	switch k {
	case lexer.INT, lexer.FLOAT, lexer.BOOL, lexer.IDENT, lexer.STRSTART,
		lexer.AT, lexer.LPAREN, lexer.LBRACK, lexer.LBRACE, lexer.BACKSLASH,
		lexer.LET, lexer.IF:
		return true
	}
	return false
}

// --- precedence climbing ---

func (p *Parser) parseExpr() (ast.Expr, *diag.Error) {
	return p.parsePipe()
}

func (p *Parser) parsePipe() (ast.Expr, *diag.Error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == lexer.ARROW {
		p.advance()
		rhs, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = desugarPipe(left, rhs)
	}
	return left, nil
}

// desugarPipe rewrites `a -> b` as the application `b a`, with `a`
// becoming b's *last* argument when b is itself already an application
// (`x -> f y` => `f y x`).
func desugarPipe(left, rhs ast.Expr) ast.Expr {
	sp := source.Join(left.Span(), rhs.Span())
	if call, ok := rhs.(*ast.Call); ok {
		return ast.NewCall(call.Func, append(append([]ast.Expr{}, call.Args...), left), sp)
	}
	return ast.NewCall(rhs, []ast.Expr{left}, sp)
}

func (p *Parser) parseOr() (ast.Expr, *diag.Error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == lexer.OROR {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp("||", left, right, source.Join(left.Span(), right.Span()))
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, *diag.Error) {
	left, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == lexer.ANDAND {
		p.advance()
		right, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp("&&", left, right, source.Join(left.Span(), right.Span()))
	}
	return left, nil
}

var compareOps = map[lexer.Kind]string{
	lexer.EQ: "==", lexer.NEQ: "!=", lexer.LT: "<", lexer.LE: "<=",
	lexer.GT: ">", lexer.GE: ">=",
}

func (p *Parser) parseCompare() (ast.Expr, *diag.Error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := compareOps[p.peek().Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op, left, right, source.Join(left.Span(), right.Span()))
	}
}

func (p *Parser) parseAdditive() (ast.Expr, *diag.Error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.peek().Kind {
		case lexer.PLUS:
			op = "+"
		case lexer.MINUS:
			op = "-"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op, left, right, source.Join(left.Span(), right.Span()))
	}
}

func (p *Parser) parseMultiplicative() (ast.Expr, *diag.Error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.peek().Kind {
		case lexer.STAR:
			op = "*"
		case lexer.SLASH:
			op = "/"
		case lexer.PERCENT:
			op = "%"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op, left, right, source.Join(left.Span(), right.Span()))
	}
}

func (p *Parser) parseUnary() (ast.Expr, *diag.Error) {
	tok := p.peek()
	if tok.Kind == lexer.MINUS || tok.Kind == lexer.BANG {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := "-"
		if tok.Kind == lexer.BANG {
			op = "!"
		}
		return ast.NewUnaryOp(op, operand, source.Join(tok.Span, operand.Span())), nil
	}
	return p.parseApplication()
}

func (p *Parser) parseApplication() (ast.Expr, *diag.Error) {
	fn, err := p.parseMember()
	if err != nil {
		return nil, err
	}
	var args []ast.Expr
	for canStartAtom(p.peek().Kind) {
		arg, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return fn, nil
	}
	last := args[len(args)-1]
	return ast.NewCall(fn, args, source.Join(fn.Span(), last.Span())), nil
}

func (p *Parser) parseMember() (ast.Expr, *diag.Error) {
	target, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == lexer.DOT {
		p.advance()
		nameTok := p.peek()
		if nameTok.Kind != lexer.IDENT {
			e := diag.New(diag.KindParse, nameTok.Span, "unexpected %s", describe(nameTok))
			e.Expected = "identifier"
			return nil, e
		}
		p.advance()
		target = ast.NewMember(target, nameTok.Value, source.Join(target.Span(), nameTok.Span))
	}
	return target, nil
}

// parseDefaultAtom parses a lambda default-argument expression. Defaults
// are restricted to unary/member-access atoms rather than full
// expressions: `\ x y = 10 z body` must bind y's default to exactly
// `10`, not to the juxtaposition `10 z` -- see DESIGN.md for the
// ambiguity this resolves. A default that needs a binary operator or an
// application must be parenthesized: `y = (compute z)`.
func (p *Parser) parseDefaultAtom() (ast.Expr, *diag.Error) {
	tok := p.peek()
	if tok.Kind == lexer.MINUS || tok.Kind == lexer.BANG {
		p.advance()
		operand, err := p.parseDefaultAtom()
		if err != nil {
			return nil, err
		}
		op := "-"
		if tok.Kind == lexer.BANG {
			op = "!"
		}
		return ast.NewUnaryOp(op, operand, source.Join(tok.Span, operand.Span())), nil
	}
	return p.parseMember()
}

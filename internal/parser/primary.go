package parser

import (
	"strconv"

	"github.com/avonlang/avon/internal/ast"
	"github.com/avonlang/avon/internal/diag"
	"github.com/avonlang/avon/internal/lexer"
	"github.com/avonlang/avon/internal/source"
)

func (p *Parser) parsePrimary() (ast.Expr, *diag.Error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.INT:
		p.advance()
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, diag.New(diag.KindParse, tok.Span, "invalid integer literal %q", tok.Value)
		}
		return ast.NewIntLit(v, tok.Span), nil

	case lexer.FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, diag.New(diag.KindParse, tok.Span, "invalid float literal %q", tok.Value)
		}
		return ast.NewFloatLit(v, tok.Span), nil

	case lexer.BOOL:
		p.advance()
		return ast.NewBoolLit(tok.Value == "true", tok.Span), nil

	case lexer.IDENT:
		p.advance()
		return ast.NewIdent(tok.Value, tok.Span), nil

	case lexer.STRSTART:
		return p.parseTemplate()

	case lexer.AT:
		return p.parseDeploy()

	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.LBRACK:
		return p.parseListOrRange()

	case lexer.LBRACE:
		return p.parseDict()

	case lexer.BACKSLASH:
		return p.parseLambda()

	case lexer.LET:
		return p.parseLet()

	case lexer.IF:
		return p.parseIf()
	}

	e := diag.New(diag.KindParse, tok.Span, "unexpected %s", describe(tok))
	e.Expected = "expression"
	return nil, e
}

func (p *Parser) parseLet() (ast.Expr, *diag.Error) {
	start := p.peek().Span
	if err := p.expect(lexer.LET); err != nil {
		return nil, err
	}
	nameTok := p.peek()
	if nameTok.Kind != lexer.IDENT {
		e := diag.New(diag.KindParse, nameTok.Span, "unexpected %s", describe(nameTok))
		e.Expected = "identifier"
		return nil, e
	}
	p.advance()
	if err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewLet(nameTok.Value, value, body, source.Join(start, body.Span())), nil
}

func (p *Parser) parseIf() (ast.Expr, *diag.Error) {
	start := p.peek().Span
	if err := p.expect(lexer.IF); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.THEN); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.ELSE); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewIf(cond, then, els, source.Join(start, els.Span())), nil
}

// parseLambda parses `\ param1 param2 ... -> body`. The
// parameter list is terminated by '->' rather than by the first token
// that isn't an identifier: a bare `param = default-expr body` would be
// ambiguous between "body is a further required parameter" and "body is
// the lambda's expression" once any parameter carries a default, so the
// grammar requires an explicit separator before the body -- see
// DESIGN.md's Open Question entry on default-argument parsing.
func (p *Parser) parseLambda() (ast.Expr, *diag.Error) {
	start := p.peek().Span
	if err := p.expect(lexer.BACKSLASH); err != nil {
		return nil, err
	}
	var params []ast.Param
	seenDefault := false
	for p.peek().Kind == lexer.IDENT {
		nameTok := p.advance()
		var def ast.Expr
		if p.peek().Kind == lexer.ASSIGN {
			p.advance()
			d, err := p.parseDefaultAtom()
			if err != nil {
				return nil, err
			}
			def = d
			seenDefault = true
		} else if seenDefault {
			e := diag.New(diag.KindParse, nameTok.Span,
				"parameter %q without a default may not follow a defaulted parameter", nameTok.Value)
			return nil, e
		}
		params = append(params, ast.Param{Name: nameTok.Value, Default: def})
	}
	if len(params) == 0 {
		tok := p.peek()
		e := diag.New(diag.KindParse, tok.Span, "expected at least one lambda parameter, got %s", describe(tok))
		e.Expected = "identifier"
		return nil, e
	}
	if err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewLambda(params, body, source.Join(start, body.Span())), nil
}

// parseListOrRange parses `[a, b, c]`, `[lo..hi]`, and
// `[lo, next..hi]`. List elements are parsed with parseExpr, the same
// full-precedence entry point as every other context.
func (p *Parser) parseListOrRange() (ast.Expr, *diag.Error) {
	start := p.peek().Span
	if err := p.expect(lexer.LBRACK); err != nil {
		return nil, err
	}
	if p.peek().Kind == lexer.RBRACK {
		end := p.advance().Span
		return ast.NewListLit(nil, source.Join(start, end)), nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.peek().Kind == lexer.DOTDOT {
		p.advance()
		hi, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		end, err := p.closeBrack()
		if err != nil {
			return nil, err
		}
		return ast.NewRangeLit(first, nil, hi, source.Join(start, end)), nil
	}

	if p.peek().Kind != lexer.COMMA {
		end, err := p.closeBrack()
		if err != nil {
			return nil, err
		}
		return ast.NewListLit([]ast.Expr{first}, source.Join(start, end)), nil
	}
	p.advance() // consume comma

	second, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.peek().Kind == lexer.DOTDOT {
		p.advance()
		hi, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		end, err := p.closeBrack()
		if err != nil {
			return nil, err
		}
		return ast.NewRangeLit(first, second, hi, source.Join(start, end)), nil
	}

	elems := []ast.Expr{first, second}
	for p.peek().Kind == lexer.COMMA {
		p.advance()
		if p.peek().Kind == lexer.RBRACK {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	end, err := p.closeBrack()
	if err != nil {
		return nil, err
	}
	return ast.NewListLit(elems, source.Join(start, end)), nil
}

func (p *Parser) closeBrack() (source.Span, *diag.Error) {
	tok := p.peek()
	if err := p.expect(lexer.RBRACK); err != nil {
		return source.Span{}, err
	}
	return tok.Span, nil
}

// parseDict parses `{ key: value, ... }`. A bare identifier
// immediately followed by ':' is treated as an identifier-as-string
// key rather than a variable reference.
func (p *Parser) parseDict() (ast.Expr, *diag.Error) {
	start := p.peek().Span
	if err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	if p.peek().Kind == lexer.RBRACE {
		end := p.advance().Span
		return ast.NewDictLit(nil, source.Join(start, end)), nil
	}

	var pairs []ast.DictPair
	for {
		key, err := p.parseDictKey()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.DictPair{Key: key, Value: value})
		if p.peek().Kind != lexer.COMMA {
			break
		}
		p.advance()
		if p.peek().Kind == lexer.RBRACE {
			break
		}
	}
	end := p.peek().Span
	if err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return ast.NewDictLit(pairs, source.Join(start, end)), nil
}

func (p *Parser) parseDictKey() (ast.Expr, *diag.Error) {
	tok := p.peek()
	if tok.Kind == lexer.IDENT && p.peekAt(1).Kind == lexer.COLON {
		p.advance()
		return ast.NewTemplate([]ast.Chunk{{Literal: tok.Value}}, tok.Span), nil
	}
	return p.parseExpr()
}

// parseTemplate assembles the Chunk sequence of a template string.
// STRSTART has already been peeked but not consumed.
func (p *Parser) parseTemplate() (ast.Expr, *diag.Error) {
	start := p.peek().Span
	if err := p.expect(lexer.STRSTART); err != nil {
		return nil, err
	}
	var chunks []ast.Chunk
	for {
		tok := p.peek()
		switch tok.Kind {
		case lexer.STRTEXT:
			p.advance()
			chunks = append(chunks, ast.Chunk{Literal: tok.Value})
		case lexer.LBRACE:
			p.advance()
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(lexer.RBRACE); err != nil {
				return nil, err
			}
			chunks = append(chunks, ast.Chunk{IsExpr: true, Expr: inner})
		case lexer.STREND:
			end := p.advance().Span
			return ast.NewTemplate(chunks, source.Join(start, end)), nil
		default:
			e := diag.New(diag.KindParse, tok.Span, "unterminated template string")
			return nil, e
		}
	}
}

// parseDeploy parses `@ path-template { content }`. The path
// template's chunks are assembled directly from
// PATHTEXT/LBRACE tokens whose spans are byte-adjacent to the text
// accumulated so far; the first token whose span has a gap (because the
// lexer popped out of its Path state on whitespace) ends the path and
// is the deploy's content-opening '{'.
func (p *Parser) parseDeploy() (ast.Expr, *diag.Error) {
	atTok := p.peek()
	if err := p.expect(lexer.AT); err != nil {
		return nil, err
	}

	var chunks []ast.Chunk
	lastEnd := atTok.Span.End.Offset
	lastTokSpan := atTok.Span
	for {
		tok := p.peek()
		if tok.Span.Start.Offset != lastEnd || (tok.Kind != lexer.PATHTEXT && tok.Kind != lexer.LBRACE) {
			break
		}
		switch tok.Kind {
		case lexer.PATHTEXT:
			p.advance()
			chunks = append(chunks, ast.Chunk{Literal: tok.Value})
			lastEnd = tok.Span.End.Offset
			lastTokSpan = tok.Span
		case lexer.LBRACE:
			p.advance()
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			endTok := p.peek()
			if err := p.expect(lexer.RBRACE); err != nil {
				return nil, err
			}
			chunks = append(chunks, ast.Chunk{IsExpr: true, Expr: inner})
			lastEnd = endTok.Span.End.Offset
			lastTokSpan = endTok.Span
		}
	}
	if len(chunks) == 0 {
		e := diag.New(diag.KindParse, p.peek().Span, "expected a deploy path after '@'")
		e.Expected = "path"
		return nil, e
	}
	pathSpan := source.Join(atTok.Span, lastTokSpan)
	path := ast.NewTemplate(chunks, pathSpan)

	if err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	content, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	endTok := p.peek()
	if err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return ast.NewDeploy(path, content, source.Join(atTok.Span, endTok.Span)), nil
}

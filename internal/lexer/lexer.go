// Package lexer tokenizes Avon source text.
//
// It is built on github.com/alecthomas/participle/v2/lexer: a stateful,
// rule-table lexer whose Push/Pop state stack does the balanced-brace
// tracking that templates and deploy paths need. "{" pushes the shared
// Expr state from Root, Str, and Path alike, so a dict literal, a
// deploy content block, and a string interpolation hole all nest
// correctly to arbitrary depth.
//
// internal/parser is hand-written recursive descent over this token
// stream; participle's declarative participle.Parser[T] grammar is not
// used, so that one precedence table serves every expression context.
package lexer

import (
	"fmt"
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/avonlang/avon/internal/diag"
	"github.com/avonlang/avon/internal/source"
)

var avonLexer = plexer.MustStateful(plexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Keyword", Pattern: `\b(let|in|if|then|else|true|false)\b`},
		{Name: "Op", Pattern: `->|\.\.|==|!=|<=|>=|&&|\|\||[+\-*/%<>=!.]`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Number", Pattern: `[0-9]+\.[0-9]+|[0-9]+`},
		{Name: "StrOpen", Pattern: `"`, Action: plexer.Push("Str")},
		{Name: "At", Pattern: `@`, Action: plexer.Push("Path")},
		{Name: "LBrace", Pattern: `\{`, Action: plexer.Push("Expr")},
		{Name: "Punct", Pattern: `[()\[\],:\\]`},
	},
	"Str": {
		{Name: "StrClose", Pattern: `"`, Action: plexer.Pop()},
		{Name: "StrExprStart", Pattern: `\{`, Action: plexer.Push("Expr")},
		{Name: "StrText", Pattern: `(?:\\.|[^"{\\])+`},
	},
	"Path": {
		{Name: "PathExprStart", Pattern: `\{`, Action: plexer.Push("Expr")},
		{Name: "PathEnd", Pattern: `[ \t\r\n]`, Action: plexer.Pop()},
		{Name: "PathText", Pattern: `[^ \t\r\n{]+`},
	},
	"Expr": {
		{Name: "ExprEnd", Pattern: `\}`, Action: plexer.Pop()},
		plexer.Include("Root"),
	},
})

// elidedNames are produced by the raw stateful lexer but carry no
// grammatical meaning of their own.
var elidedNames = map[string]bool{
	"Comment":    true,
	"Whitespace": true,
	"PathEnd":    true,
}

// opKinds maps an Op rule's literal text to its Kind.
var opKinds = map[string]Kind{
	"->": ARROW, "..": DOTDOT, "==": EQ, "!=": NEQ, "<=": LE, ">=": GE,
	"&&": ANDAND, "||": OROR, "+": PLUS, "-": MINUS, "*": STAR, "/": SLASH,
	"%": PERCENT, "<": LT, ">": GT, "=": ASSIGN, "!": BANG, ".": DOT,
}

var punctKinds = map[string]Kind{
	"(": LPAREN, ")": RPAREN, "[": LBRACK, "]": RBRACK,
	",": COMMA, ":": COLON, "\\": BACKSLASH,
}

// Lexer streams Tokens out of Avon source text.
type Lexer struct {
	inner    plexer.Lexer
	names    map[plexer.TokenType]string
	file     *source.File
	nest     []string // diagnostic stack of "string" | "path" | "expr", for unterminated detection
	lastSpan source.Span
}

// New creates a Lexer over src, named filename for diagnostics.
func New(filename, src string) (*Lexer, error) {
	inner, err := avonLexer.Lex(filename, strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("avon: building lexer: %w", err)
	}
	symbols := avonLexer.Symbols()
	names := make(map[plexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		names[tt] = name
	}
	return &Lexer{inner: inner, names: names, file: source.NewFile(filename, src)}, nil
}

// File returns the indexed source file backing this lexer, for
// diagnostics rendering.
func (l *Lexer) File() *source.File { return l.file }

// Next returns the next significant Token, skipping comments and
// whitespace, or a *diag.Error wrapped as error on lex failure.
func (l *Lexer) Next() (Token, error) {
	for {
		raw, err := l.inner.Next()
		if err != nil {
			return Token{}, l.strayCharError(err)
		}
		name := l.names[raw.Type]
		span := l.spanOf(raw)

		if raw.EOF() {
			// A path with no trailing whitespace just ends at EOF; only
			// strings and interpolation holes must be closed explicitly.
			for len(l.nest) > 0 && l.nest[len(l.nest)-1] == "path" {
				l.pop()
			}
			if len(l.nest) > 0 {
				top := l.nest[len(l.nest)-1]
				if top == "expr" {
					return Token{}, diag.New(diag.KindLex, l.lastSpan, "unterminated interpolation")
				}
				return Token{}, diag.New(diag.KindLex, l.lastSpan, "unterminated string")
			}
			return Token{Kind: EOF, Span: span}, nil
		}

		if elidedNames[name] {
			// The whitespace that ends a deploy path carries no token of
			// its own, but it does close the path for unterminated-input
			// tracking.
			if name == "PathEnd" {
				l.pop()
			}
			continue
		}
		l.lastSpan = span

		tok, err := l.classify(name, raw.Value, span)
		if err != nil {
			return Token{}, err
		}
		return tok, nil
	}
}

func (l *Lexer) classify(name, value string, span source.Span) (Token, error) {
	switch name {
	case "Keyword":
		switch value {
		case "true", "false":
			return Token{Kind: BOOL, Value: value, Span: span}, nil
		case "let":
			return Token{Kind: LET, Value: value, Span: span}, nil
		case "in":
			return Token{Kind: IN, Value: value, Span: span}, nil
		case "if":
			return Token{Kind: IF, Value: value, Span: span}, nil
		case "then":
			return Token{Kind: THEN, Value: value, Span: span}, nil
		case "else":
			return Token{Kind: ELSE, Value: value, Span: span}, nil
		}
	case "Op":
		if k, ok := opKinds[value]; ok {
			return Token{Kind: k, Value: value, Span: span}, nil
		}
	case "Ident":
		return Token{Kind: IDENT, Value: value, Span: span}, nil
	case "Number":
		if strings.Contains(value, ".") {
			return Token{Kind: FLOAT, Value: value, Span: span}, nil
		}
		return Token{Kind: INT, Value: value, Span: span}, nil
	case "StrOpen":
		l.nest = append(l.nest, "string")
		return Token{Kind: STRSTART, Value: value, Span: span}, nil
	case "StrClose":
		l.pop()
		return Token{Kind: STREND, Value: value, Span: span}, nil
	case "StrExprStart", "PathExprStart", "LBrace":
		l.nest = append(l.nest, "expr")
		return Token{Kind: LBRACE, Value: value, Span: span}, nil
	case "ExprEnd":
		l.pop()
		return Token{Kind: RBRACE, Value: value, Span: span}, nil
	case "StrText":
		decoded, err := decodeEscapes(value, span)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: STRTEXT, Value: decoded, Span: span}, nil
	case "PathText":
		decoded, err := decodeEscapes(value, span)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: PATHTEXT, Value: decoded, Span: span}, nil
	case "At":
		l.nest = append(l.nest, "path")
		return Token{Kind: AT, Value: value, Span: span}, nil
	case "Punct":
		if k, ok := punctKinds[value]; ok {
			return Token{Kind: k, Value: value, Span: span}, nil
		}
	}
	return Token{}, diag.New(diag.KindLex, span, "stray character %q", value)
}

func (l *Lexer) pop() {
	if len(l.nest) > 0 {
		l.nest = l.nest[:len(l.nest)-1]
	}
}

func (l *Lexer) spanOf(t plexer.Token) source.Span {
	start := source.Pos{Filename: t.Pos.Filename, Offset: t.Pos.Offset, Line: t.Pos.Line, Column: t.Pos.Column}
	end := start
	end.Offset += len(t.Value)
	end.Column += len([]rune(t.Value))
	return source.Span{Start: start, End: end}
}

func (l *Lexer) strayCharError(err error) error {
	return diag.New(diag.KindLex, l.lastSpan, "%s", err.Error())
}

// decodeEscapes turns `\n \r \t \\ \" \{ \}` escape sequences into their
// literal characters; any other backslash sequence is an invalid escape.
func decodeEscapes(raw string, span source.Span) (string, *diag.Error) {
	var b strings.Builder
	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			return "", diag.New(diag.KindLex, span, "invalid escape at end of text")
		}
		i++
		switch runes[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '{':
			b.WriteByte('{')
		case '}':
			b.WriteByte('}')
		default:
			return "", diag.New(diag.KindLex, span, "invalid escape sequence '\\%c'", runes[i])
		}
	}
	return b.String(), nil
}

// Tokenize runs the Lexer to completion, returning every token through
// EOF (inclusive) -- used by the --debug token dump and by tests.
func Tokenize(filename, src string) ([]Token, *source.File, error) {
	lx, err := New(filename, src)
	if err != nil {
		return nil, nil, err
	}
	var toks []Token
	for {
		t, err := lx.Next()
		if err != nil {
			if de, ok := err.(*diag.Error); ok {
				return toks, lx.File(), de
			}
			return toks, lx.File(), err
		}
		toks = append(toks, t)
		if t.Kind == EOF {
			break
		}
	}
	return toks, lx.File(), nil
}

package lexer

import (
	"testing"

	"github.com/avonlang/avon/internal/diag"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Kind
	}{
		{"int literal", "42", []Kind{INT, EOF}},
		{"float literal", "3.14", []Kind{FLOAT, EOF}},
		{"let binding", "let x = 1 in x", []Kind{LET, IDENT, ASSIGN, INT, IN, IDENT, EOF}},
		{"if then else", "if true then 1 else 2", []Kind{IF, BOOL, THEN, INT, ELSE, INT, EOF}},
		{"lambda", `\x -> x`, []Kind{BACKSLASH, IDENT, ARROW, IDENT, EOF}},
		{"operators", "1 + 2 * 3 == 7", []Kind{INT, PLUS, INT, STAR, INT, EQ, INT, EOF}},
		{"comparison", "a <= b && c >= d", []Kind{IDENT, LE, IDENT, ANDAND, IDENT, GE, IDENT, EOF}},
		{"range", "[1..10]", []Kind{LBRACK, INT, DOTDOT, INT, RBRACK, EOF}},
		{"comment stripped", "1 # trailing comment\n+ 2", []Kind{INT, PLUS, INT, EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, _, err := Tokenize("t.avon", tt.src)
			if err != nil {
				t.Fatalf("Tokenize error: %v", err)
			}
			got := kinds(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeTemplateString(t *testing.T) {
	toks, _, err := Tokenize("t.avon", `"port={port}"`)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	want := []Kind{STRSTART, STRTEXT, LBRACE, IDENT, RBRACE, STREND, EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeDeployPath(t *testing.T) {
	toks, _, err := Tokenize("t.avon", `@/etc/{name}.conf { "x" }`)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	got := kinds(toks)
	want := []Kind{AT, PATHTEXT, LBRACE, IDENT, RBRACE, PATHTEXT, LBRACE, STRSTART, STRTEXT, STREND, RBRACE, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeDeployPathEndsAtEOF(t *testing.T) {
	// A path with no trailing whitespace is closed by end of input, not
	// reported as unterminated.
	toks, _, err := Tokenize("t.avon", `@/etc/app.conf`)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	got := kinds(toks)
	want := []Kind{AT, PATHTEXT, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeEscapes(t *testing.T) {
	toks, _, err := Tokenize("t.avon", `"a\nb\{c\}"`)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	var text string
	for _, tok := range toks {
		if tok.Kind == STRTEXT {
			text += tok.Value
		}
	}
	want := "a\nb{c}"
	if text != want {
		t.Errorf("decoded text = %q, want %q", text, want)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, _, err := Tokenize("t.avon", `"unterminated`)
	if err == nil {
		t.Fatal("expected a lex error for an unterminated string")
	}
	de, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("error is %T, want *diag.Error", err)
	}
	if de.Kind != diag.KindLex {
		t.Errorf("Kind = %v, want KindLex", de.Kind)
	}
}

func TestTokenizeStrayCharacter(t *testing.T) {
	_, _, err := Tokenize("t.avon", "1 ` 2")
	if err == nil {
		t.Fatal("expected a lex error for a stray character")
	}
	if de, ok := err.(*diag.Error); !ok || de.Kind != diag.KindLex {
		t.Fatalf("error = %v, want a KindLex *diag.Error", err)
	}
}

func TestTokenizeInvalidEscape(t *testing.T) {
	_, _, err := Tokenize("t.avon", `"\q"`)
	if err == nil {
		t.Fatal("expected a lex error for an invalid escape sequence")
	}
}

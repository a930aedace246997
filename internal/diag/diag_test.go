package diag

import (
	"strings"
	"testing"

	"github.com/avonlang/avon/internal/source"
)

func TestErrorError(t *testing.T) {
	e := New(KindTypeMismatch, source.Span{Start: source.Pos{Filename: "p.avon", Line: 1, Column: 3}}, "expected %s, got %s", "Int", "Str")
	got := e.Error()
	if !strings.HasPrefix(got, "TypeMismatch: expected Int, got Str") {
		t.Errorf("Error() = %q, want prefix %q", got, "TypeMismatch: expected Int, got Str")
	}
}

func TestWithHintChains(t *testing.T) {
	e := New(KindUnknownSymbol, source.Span{}, "unknown symbol 'fx'")
	e.WithHint("did you mean 'fn'?")
	if len(e.Hints) != 1 || e.Hints[0] != "did you mean 'fn'?" {
		t.Fatalf("Hints = %v, want one hint", e.Hints)
	}
	if !strings.Contains(e.Error(), "hint: did you mean 'fn'?") {
		t.Errorf("Error() = %q, missing hint text", e.Error())
	}
}

func TestDeploySubKind(t *testing.T) {
	e := Deploy(DeployEscapes, source.Span{}, "path escapes root")
	if e.Kind != KindDeploy {
		t.Errorf("Kind = %v, want KindDeploy", e.Kind)
	}
	if e.SubKind != DeployEscapes {
		t.Errorf("SubKind = %v, want DeployEscapes", e.SubKind)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"nil error", nil, 0},
		{"parse error", New(KindParse, source.Span{}, "bad"), 1},
		{"deploy error", Deploy(DeployIO, source.Span{}, "write failed"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatIncludesCaretAndHint(t *testing.T) {
	file := source.NewFile("p.avon", "let port = 1 in\nprot\n")
	span := source.Span{Start: source.Pos{Filename: "p.avon", Line: 2, Column: 1, Offset: 16}}
	e := diagUnknownSymbol("prot", span, []string{"port"})

	out := Format(e, file)
	if !strings.Contains(out, "prot") {
		t.Errorf("Format output missing offending line: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("Format output missing caret: %q", out)
	}
	if !strings.Contains(out, "hint:") {
		t.Errorf("Format output missing hint: %q", out)
	}
}

func diagUnknownSymbol(name string, span source.Span, candidates []string) *Error {
	return UnknownSymbolError(name, span, candidates)
}

func TestNearestName(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"port", []string{"ports", "host", "count"}, "ports"},
		{"xyz123", []string{"abc", "def"}, ""},
		{"anything", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearestName(tt.name, tt.candidates); got != tt.want {
				t.Errorf("NearestName(%q, %v) = %q, want %q", tt.name, tt.candidates, got, tt.want)
			}
		})
	}
}

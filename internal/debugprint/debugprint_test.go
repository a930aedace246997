package debugprint

import (
	"strings"
	"testing"

	"github.com/avonlang/avon/internal/parser"
)

func mustParse(t *testing.T, src string) string {
	t.Helper()
	expr, _, err := parser.Parse("t.avon", src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return Print(expr)
}

func TestPrintLiteral(t *testing.T) {
	out := mustParse(t, "42")
	if !strings.Contains(out, "Int: 42") {
		t.Errorf("Print output = %q, want it to mention Int: 42", out)
	}
}

func TestPrintLambdaShowsParamsAndBody(t *testing.T) {
	out := mustParse(t, `\x y -> x + y`)
	if !strings.Contains(out, "Lambda:") {
		t.Errorf("Print output = %q, missing Lambda:", out)
	}
	if !strings.Contains(out, "Binary: +") {
		t.Errorf("Print output = %q, missing Binary: +", out)
	}
}

func TestPrintIndentsNestedNodes(t *testing.T) {
	out := mustParse(t, "if true then 1 else 2")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 4 {
		t.Fatalf("Print output has %d lines, want at least 4: %q", len(lines), out)
	}
	// The top-level "If:" line is unindented; its Cond/Then/Else
	// children are indented one level deeper.
	if strings.HasPrefix(lines[0], " ") {
		t.Errorf("first line %q should not be indented", lines[0])
	}
	foundIndented := false
	for _, l := range lines[1:] {
		if strings.HasPrefix(l, "  ") {
			foundIndented = true
		}
	}
	if !foundIndented {
		t.Errorf("expected at least one indented child line in %q", out)
	}
}

func TestPrintTemplateShowsInterpolation(t *testing.T) {
	out := mustParse(t, `"port={port}"`)
	if !strings.Contains(out, "Template:") {
		t.Errorf("Print output = %q, missing Template:", out)
	}
	if !strings.Contains(out, "Interp:") {
		t.Errorf("Print output = %q, missing Interp:", out)
	}
}

func TestPrintDeploy(t *testing.T) {
	out := mustParse(t, `@/etc/app.conf { "hi" }`)
	if !strings.Contains(out, "Deploy:") {
		t.Errorf("Print output = %q, missing Deploy:", out)
	}
}

func TestPrintPlainStringDoesNotShowTemplate(t *testing.T) {
	out := mustParse(t, `"no interpolation here"`)
	if strings.Contains(out, "Template:") {
		t.Errorf("Print output = %q, a plain string should print as String, not Template", out)
	}
	if !strings.Contains(out, "String:") {
		t.Errorf("Print output = %q, missing String:", out)
	}
}

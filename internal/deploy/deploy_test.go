package deploy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avonlang/avon/internal/builtins"
	"github.com/avonlang/avon/internal/diag"
	"github.com/avonlang/avon/internal/eval"
	"github.com/avonlang/avon/internal/filecache"
	"github.com/avonlang/avon/internal/parser"
	"github.com/avonlang/avon/internal/value"
)

func TestCollectFlattensNestedContainersInOrder(t *testing.T) {
	v := &value.List{Elems: []value.Value{
		&value.Deploy{Path: "/a", Content: "1"},
		value.Int(5), // non-container, non-deploy: ignored
		&value.Dict{},
	}}
	d := v.Elems[2].(*value.Dict)
	d.Set("x", &value.Deploy{Path: "/b", Content: "2"})

	intents := Collect(v)
	if len(intents) != 2 {
		t.Fatalf("len(intents) = %d, want 2", len(intents))
	}
	if intents[0].Path != "/a" || intents[1].Path != "/b" {
		t.Errorf("intents = %+v, want order [/a /b]", intents)
	}
}

func TestCollectOfNonContainerYieldsNoIntents(t *testing.T) {
	if got := Collect(value.Int(1)); len(got) != 0 {
		t.Errorf("Collect(Int) = %v, want empty", got)
	}
}

func TestResolveLeadingSlashIsRootRelative(t *testing.T) {
	root := t.TempDir()
	got, err := Resolve(root, "/sub/dir/file.txt")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	want, _ := filepath.Abs(filepath.Join(root, "sub/dir/file.txt"))
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveRejectsEscapingPath(t *testing.T) {
	root := t.TempDir()
	_, err := Resolve(root, "../../etc/passwd")
	if err == nil {
		t.Fatal("expected a DeployEscapes error")
	}
	if err.SubKind != diag.DeployEscapes {
		t.Errorf("SubKind = %v, want DeployEscapes", err.SubKind)
	}
}

func TestWriteCreatesFileUnderRoot(t *testing.T) {
	root := t.TempDir()
	intents := []Intent{{Path: "/sub/app.conf", Content: "hello"}}
	if err := Write(root, intents, PolicyRefuse); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	got, readErr := os.ReadFile(filepath.Join(root, "sub", "app.conf"))
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	if string(got) != "hello" {
		t.Errorf("content = %q, want hello", got)
	}
}

func TestWriteRefusesExistingFile(t *testing.T) {
	root := t.TempDir()
	intents := []Intent{{Path: "/a.txt", Content: "v1"}}
	if err := Write(root, intents, PolicyRefuse); err != nil {
		t.Fatalf("first Write error: %v", err)
	}
	err := Write(root, intents, PolicyRefuse)
	if err == nil {
		t.Fatal("expected a DeployExists error on the second write")
	}
	if err.SubKind != diag.DeployExists {
		t.Errorf("SubKind = %v, want DeployExists", err.SubKind)
	}
}

func TestWriteForcePolicyOverwrites(t *testing.T) {
	root := t.TempDir()
	first := []Intent{{Path: "/a.txt", Content: "v1"}}
	second := []Intent{{Path: "/a.txt", Content: "v2"}}
	if err := Write(root, first, PolicyRefuse); err != nil {
		t.Fatalf("first Write error: %v", err)
	}
	if err := Write(root, second, PolicyForce); err != nil {
		t.Fatalf("forced Write error: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(root, "a.txt"))
	if string(got) != "v2" {
		t.Errorf("content = %q, want v2", got)
	}
}

func TestWriteSkipExistingPolicyLeavesOriginal(t *testing.T) {
	root := t.TempDir()
	first := []Intent{{Path: "/a.txt", Content: "v1"}}
	second := []Intent{{Path: "/a.txt", Content: "v2"}}
	if err := Write(root, first, PolicyRefuse); err != nil {
		t.Fatalf("first Write error: %v", err)
	}
	if err := Write(root, second, PolicySkipExisting); err != nil {
		t.Fatalf("skip-existing Write error: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(root, "a.txt"))
	if string(got) != "v1" {
		t.Errorf("content = %q, want unchanged v1", got)
	}
}

func TestWriteStopsAtFirstErrorWithoutRollback(t *testing.T) {
	root := t.TempDir()
	intents := []Intent{
		{Path: "/first.txt", Content: "kept"},
		{Path: "/../escape.txt", Content: "nope"},
	}
	if err := Write(root, intents, PolicyForce); err == nil {
		t.Fatal("expected an error from the escaping second intent")
	}
	if _, statErr := os.Stat(filepath.Join(root, "first.txt")); statErr != nil {
		t.Error("the first intent's file should remain written (no rollback)")
	}
}

func TestEndToEndEvalCollectWrite(t *testing.T) {
	src := `let services = ["web", "api"] in map (\s -> @/etc/{s}.conf { "name={s}\n" }) services`
	expr, _, perr := parser.Parse("services.avon", src)
	if perr != nil {
		t.Fatalf("Parse error: %v", perr)
	}
	ev := eval.New()
	env := builtins.Register(value.NewRootEnv(), filecache.New(), ev)
	v, rerr := ev.Eval(expr, env)
	if rerr != nil {
		t.Fatalf("Eval error: %v", rerr)
	}

	intents := Collect(v)
	if len(intents) != 2 {
		t.Fatalf("len(intents) = %d, want 2", len(intents))
	}
	if intents[0].Path != "/etc/web.conf" || intents[1].Path != "/etc/api.conf" {
		t.Fatalf("intent paths = [%s %s], want [/etc/web.conf /etc/api.conf]", intents[0].Path, intents[1].Path)
	}
	if intents[0].Span.Start.IsZero() {
		t.Error("intent should carry the span of the deploy expression that produced it")
	}

	root := t.TempDir()
	if err := Write(root, intents, PolicyRefuse); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	got, readErr := os.ReadFile(filepath.Join(root, "etc", "web.conf"))
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	if string(got) != "name=web\n" {
		t.Errorf("content = %q, want %q", got, "name=web\n")
	}

	err := Write(root, intents, PolicyRefuse)
	if err == nil || err.SubKind != diag.DeployExists {
		t.Errorf("rerun without force = %v, want DeployExists", err)
	}
}

func TestReportSummarizesIntents(t *testing.T) {
	intents := []Intent{{Path: "/a.txt", Content: "hello"}}
	out := Report(intents)
	if out == "" {
		t.Fatal("Report produced no output for non-empty intents")
	}
	if Report(nil) != "" {
		t.Error("Report(nil) should be empty")
	}
}

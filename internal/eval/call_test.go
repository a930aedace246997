package eval

import (
	"testing"

	"github.com/avonlang/avon/internal/value"
)

func TestCallPartialApplicationCurries(t *testing.T) {
	got := run(t, `let add3 = \x y z -> x + y + z in let partial = add3 1 2 in partial 3`)
	if got != value.Int(6) {
		t.Errorf("got %#v, want Int(6)", got)
	}
}

func TestCallTooManyArgumentsIsArityError(t *testing.T) {
	runErr(t, `let f = \x -> x in f 1 2`)
}

func TestCallOnNonFunctionIsTypeMismatch(t *testing.T) {
	runErr(t, `1 2`)
}

func TestEvaluatorCallHelperForHigherOrderBuiltins(t *testing.T) {
	// Exercises the same path a higher-order builtin (map/filter/fold)
	// uses to invoke a user-supplied closure without a call-site span.
	fn := run(t, `\x -> x * 2`)
	ev := New()
	got, err := ev.Call(fn, []value.Value{value.Int(21)})
	if err != nil {
		t.Fatalf("Call error: %v", err)
	}
	if got != value.Int(42) {
		t.Errorf("got %#v, want Int(42)", got)
	}
}

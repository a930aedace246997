package diag

import (
	"github.com/avonlang/avon/internal/source"
	"github.com/xrash/smetrics"
)

// NearestName returns the candidate closest to name by Jaro-Winkler
// similarity, used to turn an UnknownSymbol error into a "did you
// mean" hint. Returns "" if candidates is empty or nothing clears the
// threshold.
func NearestName(name string, candidates []string) string {
	const threshold = 0.75
	best := ""
	bestScore := threshold
	for _, c := range candidates {
		if c == name {
			continue
		}
		score := smetrics.JaroWinkler(name, c, 0.7, 4)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// UnknownSymbolError builds the standard UnknownSymbol error, attaching a
// nearest-name hint when one clears the similarity threshold.
func UnknownSymbolError(name string, span source.Span, candidates []string) *Error {
	e := &Error{
		Kind:    KindUnknownSymbol,
		Spans:   []source.Span{span},
		Message: "unknown symbol '" + name + "'",
	}
	if hint := NearestName(name, candidates); hint != "" {
		e.WithHint("did you mean '" + hint + "'?")
	}
	return e
}

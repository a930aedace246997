// Package diag defines Avon's user-visible error taxonomy and the
// file:line:col caret-excerpt formatter shared by every pipeline
// stage. Every Error carries one or more Spans plus optional hints.
package diag

import (
	"fmt"
	"strings"

	"github.com/avonlang/avon/internal/source"
)

// Kind identifies one of Avon's user-visible error categories.
type Kind string

const (
	KindLex               Kind = "LexError"
	KindParse             Kind = "ParseError"
	KindUnknownSymbol     Kind = "UnknownSymbol"
	KindTypeMismatch      Kind = "TypeMismatch"
	KindArity             Kind = "Arity"
	KindDivideByZero      Kind = "DivideByZero"
	KindIndexOutOfRange   Kind = "IndexOutOfRange"
	KindKeyMissing        Kind = "KeyMissing"
	KindRecursionDepth    Kind = "RecursionDepthExceeded"
	KindDeploy            Kind = "DeployError"
)

// DeploySubKind distinguishes the three ways a deploy write can fail.
type DeploySubKind string

const (
	DeployExists  DeploySubKind = "Exists"
	DeployEscapes DeploySubKind = "Escapes"
	DeployIO      DeploySubKind = "Io"
)

// Error is the single error type that flows out of every Avon stage.
type Error struct {
	Kind     Kind
	SubKind  DeploySubKind // only meaningful when Kind == KindDeploy
	Spans    []source.Span
	Message  string
	Hints    []string
	Expected string // populated for KindParse
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.SubKind != "" {
		b.WriteString("{")
		b.WriteString(string(e.SubKind))
		b.WriteString("}")
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Spans) > 0 {
		fmt.Fprintf(&b, " (%s)", e.Spans[0])
	}
	for _, h := range e.Hints {
		fmt.Fprintf(&b, "\n  hint: %s", h)
	}
	return b.String()
}

// New builds a plain Error with a single span.
func New(kind Kind, span source.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Spans: []source.Span{span}, Message: fmt.Sprintf(format, args...)}
}

// WithHint appends a hint and returns the same Error for chaining.
func (e *Error) WithHint(hint string) *Error {
	e.Hints = append(e.Hints, hint)
	return e
}

// Deploy builds a KindDeploy error with the given sub-kind.
func Deploy(sub DeploySubKind, span source.Span, format string, args ...any) *Error {
	e := New(KindDeploy, span, format, args...)
	e.SubKind = sub
	return e
}

// Format renders a file:line:col diagnostic with a caret pointing at the
// start of the error's primary span and the offending source line.
func Format(err *Error, file *source.File) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", string(err.Kind), err.Message)
	if err.SubKind != "" {
		fmt.Fprintf(&b, " (%s)", err.SubKind)
	}
	b.WriteString("\n")
	if len(err.Spans) > 0 && file != nil {
		sp := err.Spans[0]
		fmt.Fprintf(&b, "  --> %s\n", sp.Start)
		line := file.Line(sp.Start.Line)
		fmt.Fprintf(&b, "   | %s\n", line)
		pad := strings.Repeat(" ", sp.Start.Column-1)
		b.WriteString("   | ")
		b.WriteString(pad)
		b.WriteString("^\n")
	}
	for _, h := range err.Hints {
		fmt.Fprintf(&b, "  hint: %s\n", h)
	}
	return b.String()
}

// ExitCode maps an Error's Kind to the avon CLI's process exit code:
// 2 for deploy I/O failures, 1 for everything else.
func ExitCode(err *Error) int {
	if err == nil {
		return 0
	}
	if err.Kind == KindDeploy {
		return 2
	}
	return 1
}

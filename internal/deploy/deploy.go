// Package deploy implements the deploy collector: a depth-first walk
// over an evaluated Value that flattens every Deploy intent it
// contains into an ordered list, then either reports them (eval mode)
// or writes them to disk under a deployment root with an overwrite
// policy (deploy mode).
package deploy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avonlang/avon/internal/diag"
	"github.com/avonlang/avon/internal/source"
	"github.com/avonlang/avon/internal/value"
)

// Policy is the overwrite behavior for an existing file.
type Policy int

const (
	// PolicyRefuse fails with DeployError{Exists} on an existing file.
	PolicyRefuse Policy = iota
	// PolicyForce overwrites unconditionally.
	PolicyForce
	// PolicySkipExisting silently skips existing files.
	PolicySkipExisting
)

// Intent is one collected deploy, carrying the span of its
// originating `@` token for error reporting.
type Intent struct {
	Path    string
	Content string
	Span    source.Span
}

// Collect walks v depth-first, preserving insertion order, and returns
// every Deploy value reachable from it. A top-level non-container,
// non-deploy value yields no intents.
func Collect(v value.Value) []Intent {
	var out []Intent
	collect(v, &out)
	return out
}

func collect(v value.Value, out *[]Intent) {
	switch x := v.(type) {
	case *value.Deploy:
		*out = append(*out, Intent{Path: x.Path, Content: x.Content, Span: x.Span})
	case *value.List:
		for _, e := range x.Elems {
			collect(e, out)
		}
	case *value.Dict:
		for _, k := range x.Keys() {
			ev, _ := x.Get(k)
			collect(ev, out)
		}
	}
}

// Resolve turns an intent's raw path into an absolute filesystem path
// under root. A leading '/' means "relative to the deployment root",
// not the filesystem root, and the result must not escape root via
// '..' segments.
func Resolve(root, rawPath string) (string, *diag.Error) {
	rel := strings.TrimPrefix(rawPath, "/")
	joined := filepath.Join(root, rel)
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", diag.Deploy(diag.DeployIO, source.Span{}, "resolving deployment root: %s", err)
	}
	absJoined, err := filepath.Abs(joined)
	if err != nil {
		return "", diag.Deploy(diag.DeployIO, source.Span{}, "resolving path %q: %s", rawPath, err)
	}
	if absJoined != absRoot && !strings.HasPrefix(absJoined, absRoot+string(filepath.Separator)) {
		return "", diag.Deploy(diag.DeployEscapes, source.Span{}, "path %q escapes deployment root %q", rawPath, root)
	}
	return absJoined, nil
}

// Write applies policy to every intent, in order, stopping at the
// first error. There is no rollback: already written files stay.
// Files are written as exact UTF-8 bytes, no trailing-newline
// normalization.
func Write(root string, intents []Intent, policy Policy) *diag.Error {
	for _, in := range intents {
		target, err := Resolve(root, in.Path)
		if err != nil {
			err.Spans = []source.Span{in.Span}
			return err
		}
		if err := writeOne(target, in, policy); err != nil {
			return err
		}
	}
	return nil
}

func writeOne(target string, in Intent, policy Policy) *diag.Error {
	if _, statErr := os.Stat(target); statErr == nil {
		switch policy {
		case PolicyRefuse:
			return diag.Deploy(diag.DeployExists, in.Span, "file already exists: %s", target)
		case PolicySkipExisting:
			return nil
		case PolicyForce:
			// fall through to overwrite
		}
	} else if !os.IsNotExist(statErr) {
		return diag.Deploy(diag.DeployIO, in.Span, "stat %s: %s", target, statErr)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return diag.Deploy(diag.DeployIO, in.Span, "creating directories for %s: %s", target, err)
	}
	if err := os.WriteFile(target, []byte(in.Content), 0o644); err != nil {
		return diag.Deploy(diag.DeployIO, in.Span, "writing %s: %s", target, err)
	}
	return nil
}

// Report renders a human-readable summary of intents for eval mode,
// where files are reported but never written.
func Report(intents []Intent) string {
	if len(intents) == 0 {
		return ""
	}
	var b strings.Builder
	for _, in := range intents {
		fmt.Fprintf(&b, "deploy: %s (%d bytes)\n", in.Path, len(in.Content))
	}
	return b.String()
}

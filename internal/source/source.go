// Package source carries byte offsets and line/column positions used to
// render diagnostics against the original program text.
package source

import "fmt"

// Pos is a single point in a source file.
type Pos struct {
	Filename string
	Offset   int // byte offset, 0-based
	Line     int // 1-based
	Column   int // 1-based, in runes
}

func (p Pos) String() string {
	name := p.Filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", name, p.Line, p.Column)
}

// IsZero reports whether p was never set.
func (p Pos) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.Offset == 0
}

// Span is a half-open range [Start, End) in a source file.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	return s.Start.String()
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	start, end := a.Start, b.End
	if b.Start.Offset < a.Start.Offset {
		start = b.Start
	}
	if a.End.Offset > b.End.Offset {
		end = a.End
	}
	return Span{Start: start, End: end}
}

// File holds the full text of a source file so diagnostics can slice out
// the offending line for a caret excerpt.
type File struct {
	Name string
	Text string

	lineStarts []int // byte offset of the start of each line
}

// NewFile indexes text's line starts once, up front.
func NewFile(name, text string) *File {
	f := &File{Name: name, Text: text, lineStarts: []int{0}}
	for i, r := range text {
		if r == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// Line returns the text of the given 1-based line number, without its
// trailing newline.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[n-1]
	end := len(f.Text)
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
		if end < start {
			end = start
		}
	}
	line := f.Text[start:end]
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// PosAt builds a Pos for a byte offset into f, computing line/column by
// scanning the indexed line starts.
func (f *File) PosAt(offset int) Pos {
	line := 1
	for i, start := range f.lineStarts {
		if start > offset {
			break
		}
		line = i + 1
	}
	start := f.lineStarts[line-1]
	col := offset - start + 1
	if start <= offset && offset <= len(f.Text) {
		col = len([]rune(f.Text[start:offset])) + 1
	}
	return Pos{Filename: f.Name, Offset: offset, Line: line, Column: col}
}

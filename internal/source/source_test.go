package source

import "testing"

func TestFileLine(t *testing.T) {
	f := NewFile("prog.avon", "let x = 1 in\nx + 2\n")

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"first line", 1, "let x = 1 in"},
		{"second line", 2, "x + 2"},
		{"out of range low", 0, ""},
		{"out of range high", 99, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Line(tt.n); got != tt.want {
				t.Errorf("Line(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestFilePosAt(t *testing.T) {
	f := NewFile("prog.avon", "abc\ndef\n")

	tests := []struct {
		name       string
		offset     int
		line, col  int
	}{
		{"start of file", 0, 1, 1},
		{"end of first line", 3, 1, 4},
		{"start of second line", 4, 2, 1},
		{"middle of second line", 6, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := f.PosAt(tt.offset)
			if p.Line != tt.line || p.Column != tt.col {
				t.Errorf("PosAt(%d) = %d:%d, want %d:%d", tt.offset, p.Line, p.Column, tt.line, tt.col)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	a := Span{Start: Pos{Offset: 5}, End: Pos{Offset: 10}}
	b := Span{Start: Pos{Offset: 2}, End: Pos{Offset: 8}}

	got := Join(a, b)
	if got.Start.Offset != 2 {
		t.Errorf("Join start = %d, want 2", got.Start.Offset)
	}
	if got.End.Offset != 10 {
		t.Errorf("Join end = %d, want 10", got.End.Offset)
	}
}

func TestPosIsZero(t *testing.T) {
	if !(Pos{}).IsZero() {
		t.Error("zero-value Pos should report IsZero")
	}
	if (Pos{Line: 1, Column: 1}).IsZero() {
		t.Error("non-zero Pos should not report IsZero")
	}
}

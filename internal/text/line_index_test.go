package text

import "testing"

func TestLineIndexPositionForLF(t *testing.T) {
	t.Parallel()

	src := []byte("ab\ncd")
	idx := NewLineIndex(src)

	if got := idx.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}

	tests := map[ByteOffset]Position{
		0: {Row: 1, Column: 1, ByteOffset: 0},
		2: {Row: 1, Column: 3, ByteOffset: 2}, // before '\n'
		3: {Row: 2, Column: 1, ByteOffset: 3},
		5: {Row: 2, Column: 3, ByteOffset: 5}, // EOF
	}

	for off, want := range tests {
		got, err := idx.PositionFor(off)
		if err != nil {
			t.Fatalf("PositionFor(%d) error = %v", off, err)
		}
		if got != want {
			t.Fatalf("PositionFor(%d) = %+v, want %+v", off, got, want)
		}

		roundTrip, err := idx.OffsetFor(got.Row, got.Column)
		if err != nil {
			t.Fatalf("OffsetFor(%+v) error = %v", got, err)
		}
		if roundTrip != off {
			t.Fatalf("OffsetFor(PositionFor(%d)) = %d, want %d", off, roundTrip, off)
		}
	}
}

func TestLineIndexPositionForCRLFAndMixedNewlines(t *testing.T) {
	t.Parallel()

	src := []byte("a\r\nb\n\nc")
	idx := NewLineIndex(src)

	if got := idx.LineCount(); got != 4 {
		t.Fatalf("LineCount() = %d, want 4", got)
	}

	// Offsets at newline bytes stay on the preceding row for byte-column positions.
	cases := []struct {
		off  ByteOffset
		want Position
	}{
		{off: 0, want: Position{Row: 1, Column: 1, ByteOffset: 0}},
		{off: 1, want: Position{Row: 1, Column: 2, ByteOffset: 1}}, // '\r'
		{off: 2, want: Position{Row: 1, Column: 3, ByteOffset: 2}}, // '\n'
		{off: 3, want: Position{Row: 2, Column: 1, ByteOffset: 3}},
		{off: 4, want: Position{Row: 2, Column: 2, ByteOffset: 4}}, // '\n'
		{off: 5, want: Position{Row: 3, Column: 1, ByteOffset: 5}}, // empty row
		{off: 6, want: Position{Row: 4, Column: 1, ByteOffset: 6}},
		{off: 7, want: Position{Row: 4, Column: 2, ByteOffset: 7}}, // EOF
	}

	for _, tc := range cases {
		got, err := idx.PositionFor(tc.off)
		if err != nil {
			t.Fatalf("PositionFor(%d) error = %v", tc.off, err)
		}
		if got != tc.want {
			t.Fatalf("PositionFor(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

func TestLineIndexOffsetForValidation(t *testing.T) {
	t.Parallel()

	idx := NewLineIndex([]byte("x\ny"))

	if _, err := idx.OffsetFor(0, 1); err == nil {
		t.Fatal("expected error for row below range")
	}
	if _, err := idx.OffsetFor(10, 1); err == nil {
		t.Fatal("expected error for out-of-range row")
	}
	if _, err := idx.OffsetFor(1, 0); err == nil {
		t.Fatal("expected error for column below range")
	}
	// Non-final row should not accept the next row's start as a canonical column.
	if _, err := idx.OffsetFor(1, 3); err == nil {
		t.Fatal("expected error for non-canonical next-row start column")
	}
}

func TestLineIndexNilReceiver(t *testing.T) {
	t.Parallel()

	var idx *LineIndex
	if got := idx.SourceLen(); got != 0 {
		t.Fatalf("SourceLen() = %d, want 0", got)
	}
	if got := idx.LineCount(); got != 0 {
		t.Fatalf("LineCount() = %d, want 0", got)
	}
	if _, err := idx.PositionFor(0); err == nil {
		t.Fatal("expected error for nil LineIndex")
	}
	if _, err := idx.OffsetFor(1, 1); err == nil {
		t.Fatal("expected error for nil LineIndex")
	}
}

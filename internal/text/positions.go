// Package text defines source offsets, spans, positions, and the
// SourceManager registry used to resolve them against registered files.
package text

import "fmt"

// ByteOffset is a byte index into a UTF-8 source buffer.
type ByteOffset int

// IsValid reports whether the offset is non-negative.
func (o ByteOffset) IsValid() bool {
	return o >= 0
}

// Span is a half-open byte range [Start, End).
type Span struct {
	Start ByteOffset // inclusive
	End   ByteOffset // exclusive
}

// NewSpan constructs a validated span.
func NewSpan(start, end ByteOffset) (Span, error) {
	s := Span{Start: start, End: end}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return s, nil
}

// Validate reports an error if the span is invalid.
func (s Span) Validate() error {
	if !s.Start.IsValid() {
		return fmt.Errorf("invalid span start: %d", s.Start)
	}
	if !s.End.IsValid() {
		return fmt.Errorf("invalid span end: %d", s.End)
	}
	if s.End < s.Start {
		return fmt.Errorf("invalid span bounds: end (%d) < start (%d)", s.End, s.Start)
	}
	return nil
}

// IsValid reports whether the span bounds are well-formed.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.End >= s.Start
}

// IsEmpty reports whether the span covers zero bytes.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Len returns the number of bytes covered by the span.
// For invalid spans, the result is undefined.
func (s Span) Len() ByteOffset {
	return s.End - s.Start
}

// Contains reports whether off is within the half-open span [Start, End).
func (s Span) Contains(off ByteOffset) bool {
	if !s.IsValid() || !off.IsValid() {
		return false
	}
	return s.Start <= off && off < s.End
}

// ContainsSpan reports whether other is fully contained within s.
func (s Span) ContainsSpan(other Span) bool {
	if !s.IsValid() || !other.IsValid() {
		return false
	}
	return s.Start <= other.Start && other.End <= s.End
}

// Intersects reports whether two spans overlap by at least one byte.
// Spans that only touch at a boundary do not intersect.
func (s Span) Intersects(other Span) bool {
	if !s.IsValid() || !other.IsValid() {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Position is a one-based source position: Row and Column count from 1,
// ByteOffset counts from 0. Positions are totally ordered by
// (Row, Column, ByteOffset).
type Position struct {
	Row        int
	Column     int
	ByteOffset ByteOffset
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	if p.Column != other.Column {
		return p.Column < other.Column
	}
	return p.ByteOffset < other.ByteOffset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// Location is a source range within a named file. A location is
// single-position when Start == End.
type Location struct {
	Filename string
	Start    Position
	End      Position
}

// IsSinglePosition reports whether the location spans zero source text.
func (l Location) IsSinglePosition() bool {
	return l.Start == l.End
}

// Span converts the location's byte offsets into a half-open Span.
func (l Location) Span() Span {
	return Span{Start: l.Start.ByteOffset, End: l.End.ByteOffset}
}

func (l Location) String() string {
	if l.IsSinglePosition() {
		return fmt.Sprintf("%s:%s", l.Filename, l.Start)
	}
	return fmt.Sprintf("%s:%s-%s", l.Filename, l.Start, l.End)
}

package text

import (
	"errors"
	"fmt"
	"slices"
)

// LineIndex maps byte offsets to one-based row/column positions over a
// UTF-8 source buffer. Line starts are computed once via a linear scan;
// lookups use binary search over that cached vector.
type LineIndex struct {
	src        []byte
	lineStarts []ByteOffset // 0-based; lineStarts[i] is the first byte of row i+1
}

var errNilLineIndex = errors.New("nil LineIndex")

// NewLineIndex builds an index over src.
func NewLineIndex(src []byte) *LineIndex {
	starts := []ByteOffset{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return &LineIndex{
		src:        src,
		lineStarts: starts,
	}
}

// SourceLen returns the source length in bytes.
func (li *LineIndex) SourceLen() ByteOffset {
	if li == nil {
		return 0
	}
	return ByteOffset(len(li.src))
}

// LineCount returns the number of logical lines in the source.
func (li *LineIndex) LineCount() int {
	if li == nil {
		return 0
	}
	return len(li.lineStarts)
}

// PositionFor converts a byte offset to a one-based (row, column) position.
func (li *LineIndex) PositionFor(off ByteOffset) (Position, error) {
	if li == nil {
		return Position{}, errNilLineIndex
	}
	if err := li.validateOffset(off); err != nil {
		return Position{}, err
	}

	row := li.lineForOffset(off)
	start := li.lineStarts[row]
	return Position{
		Row:        row + 1,
		Column:     int(off-start) + 1,
		ByteOffset: off,
	}, nil
}

// OffsetFor converts a one-based (row, column) position to a byte offset.
func (li *LineIndex) OffsetFor(row, column int) (ByteOffset, error) {
	if li == nil {
		return 0, errNilLineIndex
	}
	if err := li.validateRow(row); err != nil {
		return 0, err
	}
	if column < 1 {
		return 0, fmt.Errorf("column out of range: %d", column)
	}

	start, nextStart := li.lineBounds(row - 1)
	maxColumn := int(nextStart - start)
	if row == li.LineCount() {
		maxColumn = int(ByteOffset(len(li.src))-start) + 1
	}
	if column > maxColumn {
		return 0, fmt.Errorf("column out of range: row=%d column=%d max=%d", row, column, maxColumn)
	}
	return start + ByteOffset(column-1), nil
}

func (li *LineIndex) validateOffset(off ByteOffset) error {
	if !off.IsValid() {
		return fmt.Errorf("offset out of range: %d", off)
	}
	if off > ByteOffset(len(li.src)) {
		return fmt.Errorf("offset out of range: %d > %d", off, len(li.src))
	}
	return nil
}

func (li *LineIndex) validateRow(row int) error {
	if row < 1 || row > li.LineCount() {
		return fmt.Errorf("row out of range: %d", row)
	}
	return nil
}

// lineForOffset returns the 0-based row such that lineStarts[row] <= off.
func (li *LineIndex) lineForOffset(off ByteOffset) int {
	i, found := slices.BinarySearch(li.lineStarts, off)
	if found {
		return i
	}
	return i - 1
}

func (li *LineIndex) lineBounds(row int) (start ByteOffset, nextStart ByteOffset) {
	start = li.lineStarts[row]
	if row+1 < len(li.lineStarts) {
		nextStart = li.lineStarts[row+1]
	} else {
		nextStart = ByteOffset(len(li.src))
	}
	return start, nextStart
}

package diag

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/cxylang/frontend/internal/text"
)

// MemorySink collects every diagnostic it receives, in emission order. It is
// intended for tests that need to assert on exact diagnostic content.
type MemorySink struct {
	Diagnostics []Diagnostic
}

// Emit implements Sink.
func (s *MemorySink) Emit(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// ConsoleSink renders diagnostics in the classic compiler style:
// "file:row:col: severity: message" followed by the offending source line
// and a caret line underscoring its range.
type ConsoleSink struct {
	Out     io.Writer
	Sources *text.SourceManager
	Color   bool
}

// NewConsoleSink creates a ConsoleSink writing to out, resolving source
// lines and carets via sources. Color enables ANSI severity coloring.
func NewConsoleSink(out io.Writer, sources *text.SourceManager, color bool) *ConsoleSink {
	return &ConsoleSink{Out: out, Sources: sources, Color: color}
}

// Emit implements Sink.
func (s *ConsoleSink) Emit(d Diagnostic) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s: %s: %s\n", d.Location, s.coloredSeverity(d.Severity), d.Message)

	if line, err := s.Sources.LineText(d.Location.Filename, d.Location.Start.Row); err == nil {
		fmt.Fprintf(&buf, "  %s\n", line)
		fmt.Fprintf(&buf, "  %s\n", caretLine(line, d.Location))
	}

	io.WriteString(s.Out, buf.String())
}

func (s *ConsoleSink) coloredSeverity(sev Severity) string {
	if !s.Color {
		return sev.String()
	}
	code := "0"
	switch sev {
	case SeverityError, SeverityFatal:
		code = "31"
	case SeverityWarning:
		code = "33"
	case SeverityInfo:
		code = "36"
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", code, sev)
}

// caretLine builds a line of spaces and carets underscoring the portion of
// line covered by loc's column range. Multi-line locations underscore from
// the start column to the end of the rendered line.
func caretLine(line []byte, loc text.Location) string {
	startCol := loc.Start.Column
	endCol := loc.End.Column
	if loc.End.Row != loc.Start.Row {
		endCol = len(line) + 1
	}
	if endCol <= startCol {
		endCol = startCol + 1
	}

	width := len(line) + 1
	if startCol > width {
		startCol = width
	}
	if endCol > width+1 {
		endCol = width + 1
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", startCol-1))
	b.WriteString(strings.Repeat("^", max(1, endCol-startCol)))
	return b.String()
}

package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cxylang/frontend/internal/text"
)

func TestLoggerCountersAndFanOut(t *testing.T) {
	t.Parallel()

	l := NewLogger()
	mem1 := &MemorySink{}
	mem2 := &MemorySink{}
	l.AddSink(mem1)
	l.AddSink(mem2)

	loc := text.Location{Filename: "a.cxy", Start: text.Position{Row: 1, Column: 1}}
	l.Info(loc, "informational")
	l.Warning(loc, "warn %d", 1)
	l.Error(loc, "err %s", "oops")
	l.Fatal(loc, "fatal")

	if l.WarningCount() != 1 {
		t.Fatalf("WarningCount() = %d, want 1", l.WarningCount())
	}
	if l.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", l.ErrorCount())
	}
	if l.FatalCount() != 1 {
		t.Fatalf("FatalCount() = %d, want 1", l.FatalCount())
	}
	if !l.HasErrors() {
		t.Fatal("expected HasErrors() after error+fatal emission")
	}

	for _, mem := range []*MemorySink{mem1, mem2} {
		if len(mem.Diagnostics) != 4 {
			t.Fatalf("len(Diagnostics) = %d, want 4", len(mem.Diagnostics))
		}
		if mem.Diagnostics[2].Message != "err oops" {
			t.Fatalf("Diagnostics[2].Message = %q, want %q", mem.Diagnostics[2].Message, "err oops")
		}
	}
}

func TestConsoleSinkRendersSourceLineAndCaret(t *testing.T) {
	t.Parallel()

	sources := text.NewSourceManager()
	if err := sources.Register("a.cxy", []byte("let xx = 1\n")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, sources, false)

	loc, err := sources.LocationFor("a.cxy", 4, 6)
	if err != nil {
		t.Fatalf("LocationFor() error = %v", err)
	}
	sink.Emit(Diagnostic{Severity: SeverityError, Location: loc, Message: "undeclared identifier"})

	out := buf.String()
	if !strings.Contains(out, "a.cxy:1:5") {
		t.Fatalf("output missing location: %q", out)
	}
	if !strings.Contains(out, "error: undeclared identifier") {
		t.Fatalf("output missing message: %q", out)
	}
	if !strings.Contains(out, "let xx = 1") {
		t.Fatalf("output missing source line: %q", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) < 3 || !strings.Contains(lines[2], "^") {
		t.Fatalf("output missing caret line: %q", out)
	}
}

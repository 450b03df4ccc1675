// Package diag implements the diagnostic logger: a multi-sink fan-out for
// severity-tagged messages carrying source locations, with per-severity
// counters maintained independently of any sink.
package diag

import (
	"fmt"

	"github.com/cxylang/frontend/internal/text"
)

// Severity classifies a diagnostic message.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Severity(%d)", s)
	}
}

// Diagnostic is one emitted message.
type Diagnostic struct {
	Severity Severity
	Location text.Location
	Message  string
}

// Sink receives diagnostics as they are emitted. Sinks must not block the
// caller for long; Logger invokes sinks synchronously in emission order.
type Sink interface {
	Emit(d Diagnostic)
}

// Logger fans diagnostics out to every registered sink and maintains
// per-severity counters independent of any sink's own bookkeeping.
type Logger struct {
	sinks        []Sink
	errorCount   int
	warningCount int
	fatalCount   int
}

// NewLogger creates a Logger with no sinks registered.
func NewLogger() *Logger {
	return &Logger{}
}

// AddSink registers a sink to receive future diagnostics.
func (l *Logger) AddSink(s Sink) {
	l.sinks = append(l.sinks, s)
}

// ErrorCount returns the number of diagnostics emitted at SeverityError.
func (l *Logger) ErrorCount() int { return l.errorCount }

// WarningCount returns the number of diagnostics emitted at SeverityWarning.
func (l *Logger) WarningCount() int { return l.warningCount }

// FatalCount returns the number of diagnostics emitted at SeverityFatal.
func (l *Logger) FatalCount() int { return l.fatalCount }

// HasErrors reports whether any error or fatal diagnostic has been emitted.
func (l *Logger) HasErrors() bool {
	return l.errorCount > 0 || l.fatalCount > 0
}

func (l *Logger) emit(sev Severity, loc text.Location, msg string) {
	switch sev {
	case SeverityError:
		l.errorCount++
	case SeverityWarning:
		l.warningCount++
	case SeverityFatal:
		l.fatalCount++
	}

	d := Diagnostic{Severity: sev, Location: loc, Message: msg}
	for _, s := range l.sinks {
		s.Emit(d)
	}
}

// Info emits an informational diagnostic.
func (l *Logger) Info(loc text.Location, format string, args ...any) {
	l.emit(SeverityInfo, loc, fmt.Sprintf(format, args...))
}

// Warning emits a warning diagnostic.
func (l *Logger) Warning(loc text.Location, format string, args ...any) {
	l.emit(SeverityWarning, loc, fmt.Sprintf(format, args...))
}

// Error emits an error diagnostic.
func (l *Logger) Error(loc text.Location, format string, args ...any) {
	l.emit(SeverityError, loc, fmt.Sprintf(format, args...))
}

// Fatal emits a fatal diagnostic. Callers are expected to stop compilation
// after observing a fatal diagnostic; Fatal itself does not panic or exit.
func (l *Logger) Fatal(loc text.Location, format string, args ...any) {
	l.emit(SeverityFatal, loc, fmt.Sprintf(format, args...))
}

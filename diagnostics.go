package gqlserve

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Diagnostic is a non-fatal runtime notice captured during resolver execution.
// Diagnostics never block execution or alter data/errors; in debug mode they
// are attached to the result under extensions.diagnostics, in arrival order.
// Severity preserves the logrus level taxonomy (0 = panic ... 6 = trace).
type Diagnostic struct {
	Message  string   `json:"message"`
	Severity int      `json:"severity"`
	Trace    []string `json:"trace,omitempty"`
}

// DiagnosticSink collects diagnostics for one request. It doubles as a logrus
// hook: the orchestrator installs it on the request logger in debug mode, so
// anything resolvers log is intercepted. It is safe for concurrent use.
type DiagnosticSink struct {
	mutex   sync.Mutex
	records []Diagnostic
}

// Report appends a diagnostic with the caller's stack trace.
func (s *DiagnosticSink) Report(severity logrus.Level, message string) {
	record := Diagnostic{
		Message:  message,
		Severity: int(severity),
		Trace:    callerTrace(),
	}
	s.mutex.Lock()
	s.records = append(s.records, record)
	s.mutex.Unlock()
}

// Diagnostics returns the captured diagnostics in arrival order.
func (s *DiagnosticSink) Diagnostics() []Diagnostic {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]Diagnostic(nil), s.records...)
}

// Levels implements logrus.Hook.
func (s *DiagnosticSink) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (s *DiagnosticSink) Fire(entry *logrus.Entry) error {
	s.Report(entry.Level, entry.Message)
	return nil
}

// ReportDiagnostic records a diagnostic on the current request without going
// through the logger. It's a no-op outside of debug mode.
func ReportDiagnostic(ctx context.Context, severity logrus.Level, message string) {
	if sink := ctxDiagnosticSink(ctx); sink != nil {
		sink.Report(severity, message)
	}
}

func callerTrace() []string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var trace []string
	for {
		frame, more := frames.Next()
		// logrus internals and our own capture plumbing aren't interesting
		if !strings.Contains(frame.Function, "github.com/sirupsen/logrus") && !strings.Contains(frame.Function, "(*DiagnosticSink)") {
			trace = append(trace, fmt.Sprintf("%s (%s:%d)", frame.Function, frame.File, frame.Line))
		}
		if !more {
			break
		}
	}
	return trace
}

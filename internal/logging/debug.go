package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/nixlim/pokerlytics/internal/session"
)

// DebugLogger traces normalized sessions and input warnings.
// Implementations must be safe for concurrent use.
type DebugLogger interface {
	// LogSession traces one normalized session.
	LogSession(s session.Session)

	// LogWarning traces one input warning.
	LogWarning(w session.Warning)
}

// NopLogger discards all trace output. This is the default when no debug
// path is given.
type NopLogger struct{}

// LogSession is a no-op.
func (NopLogger) LogSession(session.Session) {}

// LogWarning is a no-op.
func (NopLogger) LogWarning(session.Warning) {}

// traceEntry is the JSON structure written by FileLogger.
type traceEntry struct {
	Timestamp string   `json:"ts"`
	Type      string   `json:"type"`
	Index     int      `json:"index"`
	Start     string   `json:"start,omitempty"`
	End       string   `json:"end,omitempty"`
	Hours     *float64 `json:"hours,omitempty"`
	Profit    *float64 `json:"profit,omitempty"`
	BigBlind  *float64 `json:"bb,omitempty"`
	BBSource  string   `json:"bb_source,omitempty"`
	Field     string   `json:"field,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// FileLogger writes one JSON object per line to an io.Writer.
type FileLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewFileLogger creates a FileLogger that writes to the given writer.
func NewFileLogger(w io.Writer) *FileLogger {
	return &FileLogger{w: w, now: time.Now}
}

// LogSession writes a JSON line for a normalized session.
func (l *FileLogger) LogSession(s session.Session) {
	hours := s.DurationHours()
	profit := s.Profit
	bb := s.BigBlind.Size

	entry := traceEntry{
		Timestamp: l.now().UTC().Format(time.RFC3339Nano),
		Type:      "session",
		Index:     s.Index,
		Start:     s.Start.Format(time.RFC3339),
		Hours:     &hours,
		Profit:    &profit,
		BigBlind:  &bb,
		BBSource:  s.BigBlind.Source.String(),
	}
	if s.HasEnd {
		entry.End = s.End.Format(time.RFC3339)
	}

	l.write(entry)
}

// LogWarning writes a JSON line for an input warning.
func (l *FileLogger) LogWarning(w session.Warning) {
	l.write(traceEntry{
		Timestamp: l.now().UTC().Format(time.RFC3339Nano),
		Type:      "warning",
		Index:     w.Index,
		Field:     w.Field,
		Message:   w.Message,
	})
}

// write serialises an entry as a single line. Serialisation errors are
// dropped so tracing never fails a run.
func (l *FileLogger) write(entry traceEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s\n", data)
}

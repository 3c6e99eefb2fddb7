// Package console implements the human-readable console sink.
package console

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/lorenzo-mora/DocAtlas/internal/event"
	"github.com/lorenzo-mora/DocAtlas/internal/format"
)

// Sink writes one formatted line per event to a writer (stdout in
// production). The minimum severity is stored atomically so it can be
// updated on a live sink without stalling the consumer.
type Sink struct {
	w   io.Writer
	fmt *format.Console
	min atomic.Int32
}

// New creates a console sink with the given formatter and threshold.
func New(w io.Writer, f *format.Console, min event.Severity) *Sink {
	s := &Sink{w: w, fmt: f}
	s.min.Store(int32(min))
	return s
}

// Enabled reports whether events at severity sev pass the threshold.
func (s *Sink) Enabled(sev event.Severity) bool {
	return int32(sev) >= s.min.Load()
}

// SetMinSeverity replaces the threshold.
func (s *Sink) SetMinSeverity(sev event.Severity) {
	s.min.Store(int32(sev))
}

// Write renders the event and writes it as one line.
func (s *Sink) Write(e event.Event) error {
	if _, err := fmt.Fprintln(s.w, s.fmt.Format(e)); err != nil {
		return fmt.Errorf("console sink: write: %w", err)
	}
	return nil
}

// Close is a no-op; the sink does not own its writer.
func (s *Sink) Close() error {
	return nil
}

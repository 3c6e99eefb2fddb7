// Package sink defines the interface for log event destinations.
package sink

import "github.com/lorenzo-mora/DocAtlas/internal/event"

// Sink is an output destination with its own minimum-severity filter.
// Write is only ever called from the dispatch consumer goroutine;
// SetMinSeverity may be called concurrently from any goroutine.
type Sink interface {
	// Enabled reports whether events of severity s pass this sink's
	// threshold. The dispatch consumer checks it before formatting.
	Enabled(s event.Severity) bool

	// SetMinSeverity replaces the threshold on a live sink.
	SetMinSeverity(s event.Severity)

	// Write formats and writes one event.
	Write(e event.Event) error

	// Close releases the sink's resources, flushing any buffered data.
	Close() error
}

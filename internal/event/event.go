// Package event defines the log event model shared by the facade, the
// dispatch pipeline, and the sinks: the fixed five-level severity scale, the
// immutable per-call event record, and the mutable sticky context attached to
// a logger handle.
package event

import "time"

// Event is a single log record. It is built once at the emission call site
// and never mutated afterwards: ownership passes from the calling goroutine
// to the dispatch queue, then to the consumer, which holds it until both
// sinks have formatted it.
type Event struct {
	Time     time.Time
	Severity Severity
	Message  string

	// Call-site location, captured at emit time.
	Module   string // package base name
	Function string
	Line     int
	Path     string // full source file path

	// Context is the merged snapshot of sticky context and per-call extras.
	// It is a private copy; no other goroutine holds a reference.
	Context map[string]any

	// Stack is a captured stack trace, empty when none was requested.
	Stack string
}

// Package format renders log events into the two wire formats: the
// human-readable console line and the machine-readable NDJSON file record.
// Formatters are pure with respect to the event and never fail — a rendering
// problem degrades the output, it does not lose the message.
package format

import (
	"strconv"
	"strings"

	"github.com/lorenzo-mora/DocAtlas/internal/event"
)

// DefaultConsoleTemplate mirrors the application's historical console line.
const DefaultConsoleTemplate = "{time} | {level} - {line} : {message}"

// DefaultTimeLayout is the timestamp layout used when none is configured.
const DefaultTimeLayout = "2006-01-02 15:04:05"

// placeholder identifies one substitutable field of a console template.
type placeholder int

const (
	phLiteral placeholder = iota
	phTime
	phLevel
	phMessage
	phModule
	phFunction
	phLine
	phPath
)

var placeholderNames = map[string]placeholder{
	"time":     phTime,
	"level":    phLevel,
	"message":  phMessage,
	"module":   phModule,
	"function": phFunction,
	"line":     phLine,
	"path":     phPath,
}

// segment is one parsed piece of a template: either a literal run or a
// placeholder.
type segment struct {
	kind    placeholder
	literal string
}

// Console renders a single human-readable line per event. The template is
// parsed once at construction into a segment list, so formatting is a linear
// walk with no per-event template scanning.
type Console struct {
	segments   []segment
	timeLayout string
	colorLevel bool
}

// ConsoleOption configures a Console formatter.
type ConsoleOption func(*Console)

// WithColor enables ANSI coloring of the {level} placeholder. Intended for
// terminal output only.
func WithColor() ConsoleOption {
	return func(c *Console) { c.colorLevel = true }
}

// NewConsole parses the template and returns a formatter. Empty template or
// time layout fall back to the defaults. Unknown placeholders are kept as
// literal text.
func NewConsole(template, timeLayout string, opts ...ConsoleOption) *Console {
	if template == "" {
		template = DefaultConsoleTemplate
	}
	if timeLayout == "" {
		timeLayout = DefaultTimeLayout
	}
	c := &Console{
		segments:   parseTemplate(template),
		timeLayout: timeLayout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Format renders the event as one line, without a trailing newline.
func (c *Console) Format(e event.Event) string {
	var b strings.Builder
	b.Grow(64 + len(e.Message))
	for _, seg := range c.segments {
		switch seg.kind {
		case phLiteral:
			b.WriteString(seg.literal)
		case phTime:
			b.WriteString(e.Time.Format(c.timeLayout))
		case phLevel:
			if c.colorLevel {
				b.WriteString(colorize(e.Severity))
			} else {
				b.WriteString(e.Severity.String())
			}
		case phMessage:
			b.WriteString(e.Message)
		case phModule:
			b.WriteString(e.Module)
		case phFunction:
			b.WriteString(e.Function)
		case phLine:
			b.WriteString(strconv.Itoa(e.Line))
		case phPath:
			b.WriteString(e.Path)
		default:
			// Unreachable with a parsed template; keep the message anyway.
			b.WriteString("!(FORMAT-ERROR unknown segment)")
		}
	}
	return b.String()
}

// parseTemplate splits a template into literal and placeholder segments.
// Braces that do not delimit a known placeholder are treated as literals.
func parseTemplate(template string) []segment {
	var segs []segment
	var lit strings.Builder
	for i := 0; i < len(template); {
		if template[i] == '{' {
			if end := strings.IndexByte(template[i:], '}'); end > 0 {
				name := template[i+1 : i+end]
				if ph, ok := placeholderNames[name]; ok {
					if lit.Len() > 0 {
						segs = append(segs, segment{kind: phLiteral, literal: lit.String()})
						lit.Reset()
					}
					segs = append(segs, segment{kind: ph})
					i += end + 1
					continue
				}
			}
		}
		lit.WriteByte(template[i])
		i++
	}
	if lit.Len() > 0 {
		segs = append(segs, segment{kind: phLiteral, literal: lit.String()})
	}
	return segs
}

// ANSI codes per severity, resolved via a fixed table.
var levelColors = map[event.Severity]string{
	event.Debug:    "\x1b[2m",  // dim
	event.Info:     "\x1b[36m", // cyan
	event.Warning:  "\x1b[33m", // yellow
	event.Error:    "\x1b[31m", // red
	event.Critical: "\x1b[35m", // magenta
}

func colorize(s event.Severity) string {
	code, ok := levelColors[s]
	if !ok {
		return s.String()
	}
	return code + s.String() + "\x1b[0m"
}

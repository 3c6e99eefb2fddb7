package atlaslog

import "github.com/lorenzo-mora/DocAtlas/internal/event"

// Level is the severity of a log message. The five-value domain is total and
// fixed: Debug < Info < Warning < Error < Critical.
type Level = event.Severity

const (
	Debug    = event.Debug
	Info     = event.Info
	Warning  = event.Warning
	Error    = event.Error
	Critical = event.Critical
)

// ErrInvalidLevel is returned when a level name or code is outside the fixed
// domain.
var ErrInvalidLevel = event.ErrInvalidSeverity

// ParseLevel maps a canonical level name (case-insensitive) to a Level.
func ParseLevel(name string) (Level, error) {
	return event.ParseSeverity(name)
}

// LevelFromCode maps a numeric code (10, 20, 30, 40, 50) to a Level.
func LevelFromCode(code int) (Level, error) {
	return event.SeverityFromCode(code)
}

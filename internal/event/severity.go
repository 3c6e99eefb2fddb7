package event

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSeverity is returned when a name or code cannot be mapped to one
// of the five severities.
var ErrInvalidSeverity = errors.New("invalid severity")

// Severity is the importance of a log event. The underlying value is the
// canonical numeric code, so ordering is plain integer comparison.
type Severity int

const (
	Debug    Severity = 10
	Info     Severity = 20
	Warning  Severity = 30
	Error    Severity = 40
	Critical Severity = 50
)

// severities in ascending order. The domain is fixed — no custom levels.
var severities = [...]Severity{Debug, Info, Warning, Error, Critical}

var severityNames = map[Severity]string{
	Debug:    "DEBUG",
	Info:     "INFO",
	Warning:  "WARNING",
	Error:    "ERROR",
	Critical: "CRITICAL",
}

// ParseSeverity maps a canonical level name (case-insensitive) to a Severity.
func ParseSeverity(name string) (Severity, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrInvalidSeverity)
	}
	upper := strings.ToUpper(name)
	for _, s := range severities {
		if severityNames[s] == upper {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown name %q", ErrInvalidSeverity, name)
}

// SeverityFromCode maps a numeric code (10, 20, 30, 40, 50) to a Severity.
func SeverityFromCode(code int) (Severity, error) {
	if code < 0 {
		return 0, fmt.Errorf("%w: negative code %d", ErrInvalidSeverity, code)
	}
	s := Severity(code)
	if _, ok := severityNames[s]; !ok {
		return 0, fmt.Errorf("%w: unmapped code %d", ErrInvalidSeverity, code)
	}
	return s, nil
}

// String returns the canonical upper-case name, or "SEVERITY(n)" for values
// outside the fixed domain.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SEVERITY(%d)", int(s))
}

// Code returns the canonical numeric code.
func (s Severity) Code() int {
	return int(s)
}

// Valid reports whether s is one of the five defined severities.
func (s Severity) Valid() bool {
	_, ok := severityNames[s]
	return ok
}

// Next returns the next-more-severe level. The second return is false when s
// is Critical (or not a defined severity).
func (s Severity) Next() (Severity, bool) {
	for i, v := range severities {
		if v == s && i < len(severities)-1 {
			return severities[i+1], true
		}
	}
	return 0, false
}

// Prev returns the next-less-severe level. The second return is false when s
// is Debug (or not a defined severity).
func (s Severity) Prev() (Severity, bool) {
	for i, v := range severities {
		if v == s && i > 0 {
			return severities[i-1], true
		}
	}
	return 0, false
}

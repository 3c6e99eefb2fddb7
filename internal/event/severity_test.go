package event

import (
	"errors"
	"testing"
)

func TestParseSeverityRoundTrip(t *testing.T) {
	for _, s := range severities {
		got, err := ParseSeverity(s.String())
		if err != nil {
			t.Fatalf("ParseSeverity(%q) error: %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseSeverity(%q) = %v, want %v", s.String(), got, s)
		}
	}
}

func TestParseSeverityCaseInsensitive(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"debug", Debug},
		{"Info", Info},
		{"warning", Warning},
		{"eRRor", Error},
		{"CRITICAL", Critical},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if err != nil {
			t.Errorf("ParseSeverity(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSeverityInvalid(t *testing.T) {
	for _, in := range []string{"", "verbose", "warn ", "critical!"} {
		if _, err := ParseSeverity(in); !errors.Is(err, ErrInvalidSeverity) {
			t.Errorf("ParseSeverity(%q) error = %v, want ErrInvalidSeverity", in, err)
		}
	}
}

func TestSeverityFromCodeRoundTrip(t *testing.T) {
	for _, s := range severities {
		got, err := SeverityFromCode(s.Code())
		if err != nil {
			t.Fatalf("SeverityFromCode(%d) error: %v", s.Code(), err)
		}
		if got != s {
			t.Errorf("SeverityFromCode(%d) = %v, want %v", s.Code(), got, s)
		}
	}
}

func TestSeverityFromCodeInvalid(t *testing.T) {
	for _, code := range []int{-1, -10, 0, 15, 60} {
		if _, err := SeverityFromCode(code); !errors.Is(err, ErrInvalidSeverity) {
			t.Errorf("SeverityFromCode(%d) error = %v, want ErrInvalidSeverity", code, err)
		}
	}
}

func TestSeverityTotalOrder(t *testing.T) {
	ordered := []Severity{Debug, Info, Warning, Error, Critical}
	for i := 0; i < len(ordered); i++ {
		for j := 0; j < len(ordered); j++ {
			if (i < j) != (ordered[i] < ordered[j]) {
				t.Errorf("order violated: %v vs %v", ordered[i], ordered[j])
			}
		}
	}
}

func TestSeverityNextPrev(t *testing.T) {
	if next, ok := Debug.Next(); !ok || next != Info {
		t.Errorf("Debug.Next() = %v, %v; want Info, true", next, ok)
	}
	if prev, ok := Critical.Prev(); !ok || prev != Error {
		t.Errorf("Critical.Prev() = %v, %v; want Error, true", prev, ok)
	}
	if _, ok := Critical.Next(); ok {
		t.Error("Critical.Next() should have no successor")
	}
	if _, ok := Debug.Prev(); ok {
		t.Error("Debug.Prev() should have no predecessor")
	}
}

func TestSeverityStringUnknown(t *testing.T) {
	if got := Severity(42).String(); got != "SEVERITY(42)" {
		t.Errorf("Severity(42).String() = %q", got)
	}
}

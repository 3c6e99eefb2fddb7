package format

import (
	"encoding/json"
	"testing"

	"github.com/lorenzo-mora/DocAtlas/internal/event"
)

func decodeRecord(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("record is not valid JSON: %v\n%s", err, data)
	}
	return rec
}

func TestRecordSchema(t *testing.T) {
	r := NewRecord("", "production")
	rec := decodeRecord(t, r.Format(sampleEvent()))

	want := map[string]any{
		"ts":        "2026-03-14 09:26:53",
		"lvl":       "INFO",
		"msg":       "document parsed",
		"mod":       "pdfhandler",
		"fn_name":   "ExtractPages",
		"line_no":   float64(42),
		"path_name": "/src/pdfhandler/extract.go",
		"env":       "production",
	}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("rec[%q] = %v, want %v", k, rec[k], v)
		}
	}
	if _, ok := rec["stack_trace"]; ok {
		t.Error("stack_trace present without a captured stack")
	}
}

func TestRecordContextSplatted(t *testing.T) {
	e := sampleEvent()
	e.Context = map[string]any{"doc_id": "abc-123", "page": 7}
	r := NewRecord("", "dev")
	rec := decodeRecord(t, r.Format(e))

	if rec["doc_id"] != "abc-123" || rec["page"] != float64(7) {
		t.Errorf("context fields missing: %v", rec)
	}
}

func TestRecordContextCannotShadowSchema(t *testing.T) {
	e := sampleEvent()
	e.Context = map[string]any{"msg": "spoofed", "lvl": "CRITICAL"}
	r := NewRecord("", "dev")
	rec := decodeRecord(t, r.Format(e))

	if rec["msg"] != "document parsed" {
		t.Errorf("msg shadowed by context: %v", rec["msg"])
	}
	if rec["lvl"] != "INFO" {
		t.Errorf("lvl shadowed by context: %v", rec["lvl"])
	}
}

func TestRecordStackOnlyForErrors(t *testing.T) {
	e := sampleEvent()
	e.Stack = "goroutine 1 [running]:\nmain.main()"

	r := NewRecord("", "dev")

	// INFO with a stack: omitted.
	rec := decodeRecord(t, r.Format(e))
	if _, ok := rec["stack_trace"]; ok {
		t.Error("stack_trace emitted for INFO event")
	}

	// ERROR and CRITICAL: included.
	for _, sev := range []event.Severity{event.Error, event.Critical} {
		e.Severity = sev
		rec = decodeRecord(t, r.Format(e))
		if rec["stack_trace"] != e.Stack {
			t.Errorf("%v: stack_trace = %v", sev, rec["stack_trace"])
		}
	}
}

func TestRecordSerializationFallback(t *testing.T) {
	e := sampleEvent()
	e.Context = map[string]any{"broken": make(chan int)}

	r := NewRecord("", "dev")
	rec := decodeRecord(t, r.Format(e))

	if rec["msg"] != "log serialization error" {
		t.Errorf("fallback msg = %v", rec["msg"])
	}
	if rec["lvl"] != "INFO" || rec["ts"] == "" {
		t.Errorf("fallback record incomplete: %v", rec)
	}
	if rec["error"] == nil {
		t.Error("fallback record missing error description")
	}
}

func TestRecordCyclicContextFallback(t *testing.T) {
	cyclic := map[string]any{}
	cyclic["self"] = cyclic
	e := sampleEvent()
	e.Context = map[string]any{"cycle": cyclic}

	r := NewRecord("", "dev")
	rec := decodeRecord(t, r.Format(e))
	if rec["msg"] != "log serialization error" {
		t.Errorf("expected fallback record, got %v", rec)
	}
}

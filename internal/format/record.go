package format

import (
	"encoding/json"
	"fmt"

	"github.com/lorenzo-mora/DocAtlas/internal/event"
)

// Fixed keys of the file record schema. Context keys never shadow these.
var schemaKeys = map[string]bool{
	"ts":          true,
	"lvl":         true,
	"msg":         true,
	"mod":         true,
	"fn_name":     true,
	"line_no":     true,
	"path_name":   true,
	"env":         true,
	"stack_trace": true,
}

// Record renders one self-contained JSON object per event, one per line.
// Serialization can never fail outward: a payload the encoder rejects is
// replaced by a minimal fallback record so every event produces a durable
// line.
type Record struct {
	timeLayout string
	env        string
}

// NewRecord returns a file-record formatter with the given time layout and
// environment tag.
func NewRecord(timeLayout, env string) *Record {
	if timeLayout == "" {
		timeLayout = DefaultTimeLayout
	}
	return &Record{timeLayout: timeLayout, env: env}
}

// Format renders the event as a single JSON line, without the trailing
// newline.
func (r *Record) Format(e event.Event) []byte {
	rec := map[string]any{
		"ts":        e.Time.Format(r.timeLayout),
		"lvl":       e.Severity.String(),
		"msg":       e.Message,
		"mod":       e.Module,
		"fn_name":   e.Function,
		"line_no":   e.Line,
		"path_name": e.Path,
		"env":       r.env,
	}
	for k, v := range e.Context {
		if schemaKeys[k] {
			continue
		}
		rec[k] = v
	}
	if e.Stack != "" && e.Severity >= event.Error {
		rec["stack_trace"] = e.Stack
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return r.fallback(e, err)
	}
	return data
}

// fallback emits a minimal record when the full one cannot be serialized.
// Every field is a plain string or int, so this marshal cannot fail.
func (r *Record) fallback(e event.Event, cause error) []byte {
	rec := map[string]any{
		"ts":    e.Time.Format(r.timeLayout),
		"lvl":   e.Severity.String(),
		"msg":   "log serialization error",
		"error": cause.Error(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		// Cannot happen with string/int values; guard against losing the
		// event regardless.
		return []byte(fmt.Sprintf(`{"lvl":%q,"msg":"log serialization error"}`, e.Severity.String()))
	}
	return data
}

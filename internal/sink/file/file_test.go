package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lorenzo-mora/DocAtlas/internal/event"
	"github.com/lorenzo-mora/DocAtlas/internal/format"
)

func testEvent(msg string) event.Event {
	return event.Event{
		Time:     time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC),
		Severity: event.Info,
		Message:  msg,
		Module:   "pdfhandler",
		Function: "ExtractPages",
		Line:     10,
		Path:     "/src/pdfhandler/extract.go",
	}
}

func newTestSink(t *testing.T, dir string, maxSize int64, backups int) *Sink {
	t.Helper()
	s, err := New(filepath.Join(dir, "atlas_20260228.log"), format.NewRecord("", "test"), event.Debug, maxSize, backups)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return s
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read %s: %v", path, err)
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func TestWriteProducesValidNDJSON(t *testing.T) {
	dir := t.TempDir()
	s := newTestSink(t, dir, 1<<20, 3)

	for i := 0; i < 5; i++ {
		if err := s.Write(testEvent(fmt.Sprintf("line %d", i))); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	lines := readLines(t, s.Path())
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for i, line := range lines {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Errorf("line %d: invalid JSON: %v", i, err)
			continue
		}
		if rec["msg"] != fmt.Sprintf("line %d", i) {
			t.Errorf("line %d out of order: msg = %v", i, rec["msg"])
		}
	}
}

func TestRotationTriggersAtMaxSize(t *testing.T) {
	dir := t.TempDir()
	// Each record is ~170 bytes, so a 200-byte cap rotates after every line.
	s := newTestSink(t, dir, 200, 3)

	for i := 0; i < 4; i++ {
		if err := s.Write(testEvent("rotate me")); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	s.Close()

	if _, err := os.Stat(s.Path() + ".1"); os.IsNotExist(err) {
		t.Error("expected rotated file .1 to exist")
	}
	if len(readLines(t, s.Path())) == 0 {
		t.Error("active file empty after rotation")
	}
}

func TestBackupCountPrunesOldest(t *testing.T) {
	dir := t.TempDir()
	s := newTestSink(t, dir, 200, 2)

	// Enough writes to rotate well past the retention cap.
	for i := 0; i < 8; i++ {
		if err := s.Write(testEvent(fmt.Sprintf("msg %d", i))); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	s.Close()

	if _, err := os.Stat(s.Path() + ".2"); err != nil {
		t.Errorf("expected archive .2 to exist: %v", err)
	}
	if _, err := os.Stat(s.Path() + ".3"); !os.IsNotExist(err) {
		t.Error("archive .3 should have been discarded (backup count 2)")
	}
}

func TestNoLinesLostOrDuplicatedAcrossRotation(t *testing.T) {
	dir := t.TempDir()
	// Retention generous enough that nothing is discarded.
	s := newTestSink(t, dir, 400, 10)

	const total = 12
	for i := 0; i < total; i++ {
		if err := s.Write(testEvent(fmt.Sprintf("msg %d", i))); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	s.Close()

	seen := map[string]int{}
	count := 0
	paths := []string{s.Path()}
	for i := 1; i <= 10; i++ {
		paths = append(paths, fmt.Sprintf("%s.%d", s.Path(), i))
	}
	for _, p := range paths {
		for _, line := range readLines(t, p) {
			var rec map[string]any
			if err := json.Unmarshal([]byte(line), &rec); err != nil {
				t.Fatalf("invalid JSON in %s: %v", p, err)
			}
			seen[rec["msg"].(string)]++
			count++
		}
	}
	if count != total {
		t.Errorf("total lines = %d, want %d", count, total)
	}
	for msg, n := range seen {
		if n != 1 {
			t.Errorf("message %q written %d times", msg, n)
		}
	}
}

func TestMinSeverityGating(t *testing.T) {
	dir := t.TempDir()
	s := newTestSink(t, dir, 1<<20, 3)
	defer s.Close()

	s.SetMinSeverity(event.Warning)
	if s.Enabled(event.Info) {
		t.Error("INFO should not pass a WARNING threshold")
	}
	if !s.Enabled(event.Warning) || !s.Enabled(event.Critical) {
		t.Error("WARNING and above should pass")
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	rec := format.NewRecord("", "test")
	if _, err := New(filepath.Join(dir, "x.log"), rec, event.Debug, 0, 3); err == nil {
		t.Error("zero max size should be rejected")
	}
	if _, err := New(filepath.Join(dir, "x.log"), rec, event.Debug, 100, 0); err == nil {
		t.Error("zero backup count should be rejected")
	}
}

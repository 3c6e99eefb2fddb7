// Package file implements the rotating NDJSON file sink.
package file

import (
	"bufio"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/lorenzo-mora/DocAtlas/internal/event"
	"github.com/lorenzo-mora/DocAtlas/internal/format"
)

const defaultBufSize = 64 * 1024 // 64KB

// Sink writes one JSON record per event to a file, rotating it when the next
// write would push it past the size cap. Rotated files keep the active file's
// name with a numeric suffix (.1 newest), and at most BackupCount archives are
// retained, oldest discarded first.
//
// Write and Close are called only from the dispatch consumer goroutine; only
// SetMinSeverity is safe to call concurrently.
type Sink struct {
	path        string
	maxSize     int64
	backupCount int
	fmt         *format.Record
	min         atomic.Int32

	f       *os.File
	w       *bufio.Writer
	written int64
}

// New creates a file sink writing to path. maxSize and backupCount must be
// positive.
func New(path string, f *format.Record, min event.Severity, maxSize int64, backupCount int) (*Sink, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("file sink: max size must be positive, got %d", maxSize)
	}
	if backupCount <= 0 {
		return nil, fmt.Errorf("file sink: backup count must be positive, got %d", backupCount)
	}
	s := &Sink{
		path:        path,
		maxSize:     maxSize,
		backupCount: backupCount,
		fmt:         f,
	}
	s.min.Store(int32(min))
	if err := s.openFile(); err != nil {
		return nil, err
	}
	return s, nil
}

// Enabled reports whether events at severity sev pass the threshold.
func (s *Sink) Enabled(sev event.Severity) bool {
	return int32(sev) >= s.min.Load()
}

// SetMinSeverity replaces the threshold.
func (s *Sink) SetMinSeverity(sev event.Severity) {
	s.min.Store(int32(sev))
}

// Path returns the active file path.
func (s *Sink) Path() string {
	return s.path
}

// Write renders the event and appends it as one line, rotating first when the
// line would exceed the size cap. The buffer is flushed per event so a line,
// once written, is durable.
func (s *Sink) Write(e event.Event) error {
	data := append(s.fmt.Format(e), '\n')

	if s.written+int64(len(data)) > s.maxSize && s.written > 0 {
		if err := s.rotate(); err != nil {
			return fmt.Errorf("file sink: rotate: %w", err)
		}
	}

	n, err := s.w.Write(data)
	s.written += int64(n)
	if err != nil {
		return fmt.Errorf("file sink: write: %w", err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("file sink: flush: %w", err)
	}
	return nil
}

// Close flushes and closes the active file.
func (s *Sink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return fmt.Errorf("file sink: flush: %w", err)
	}
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("file sink: close: %w", err)
	}
	return nil
}

// openFile opens (or creates) the active file in append mode.
func (s *Sink) openFile() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("file sink: open %s: %w", s.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("file sink: stat %s: %w", s.path, err)
	}
	s.f = f
	s.w = bufio.NewWriterSize(f, defaultBufSize)
	s.written = info.Size()
	return nil
}

// rotate closes the active file, shifts archives one slot up, discards the
// one that falls off the end, renames the active file to .1, and reopens a
// fresh active file.
func (s *Sink) rotate() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	if err := s.f.Close(); err != nil {
		return err
	}

	// Oldest archive falls off; the rest shift: .2 → .3, .1 → .2, ...
	os.Remove(fmt.Sprintf("%s.%d", s.path, s.backupCount))
	for i := s.backupCount - 1; i >= 1; i-- {
		from := fmt.Sprintf("%s.%d", s.path, i)
		to := fmt.Sprintf("%s.%d", s.path, i+1)
		os.Rename(from, to) // ignore errors — slot may not exist yet
	}
	if err := os.Rename(s.path, s.path+".1"); err != nil {
		return err
	}

	s.written = 0
	return s.openFile()
}

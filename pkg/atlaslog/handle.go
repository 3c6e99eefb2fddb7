package atlaslog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/lorenzo-mora/DocAtlas/internal/dispatch"
	"github.com/lorenzo-mora/DocAtlas/internal/event"
	"github.com/lorenzo-mora/DocAtlas/internal/fallback"
	"github.com/lorenzo-mora/DocAtlas/internal/format"
	"github.com/lorenzo-mora/DocAtlas/internal/sink"
	"github.com/lorenzo-mora/DocAtlas/internal/sink/console"
	"github.com/lorenzo-mora/DocAtlas/internal/sink/file"
)

// ErrNotInitialized is returned by operations that require a running handle
// (Setup never called, or the handle was stopped/replaced).
var ErrNotInitialized = errors.New("logger not initialized")

type handleState int

const (
	stateUnconfigured handleState = iota
	stateRunning
	stateStopped
)

// Handle is a configured logger. It owns the sticky context, the two sinks,
// and the dispatch pipeline between them. All methods are safe for
// concurrent use.
type Handle struct {
	cfg Config
	ctx *event.Context

	// consoleW is os.Stdout in production; tests swap in a buffer.
	consoleW io.Writer

	mu          sync.Mutex
	state       handleState
	disabled    bool // escape hatch active: direct print, no pipeline
	pipeline    *dispatch.Pipeline
	consoleSink *console.Sink
	fileSink    *file.Sink
}

func newHandle(cfg Config) *Handle {
	normalized := cfg.withDefaults()
	normalized.Enabled = cfg.Enabled
	return &Handle{
		cfg:      normalized,
		ctx:      event.NewContext(),
		consoleW: os.Stdout,
	}
}

// Setup creates the log directory, builds the sinks, and starts the dispatch
// consumer. componentTag names the active log file (`<tag>_<YYYYMMDD>.log`;
// the tag prefix is omitted when empty). Calling Setup on a running handle is
// a no-op. A directory-creation failure is reported on the fallback channel
// and returned — the caller's startup must fail loudly rather than run
// without logs.
func (h *Handle) Setup(componentTag string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case stateRunning:
		return nil
	case stateStopped:
		return fmt.Errorf("%w: handle was stopped", ErrNotInitialized)
	}

	if err := h.cfg.validate(); err != nil {
		fallback.Error("logger setup rejected", "error", err)
		return fmt.Errorf("logger setup: %w", err)
	}

	if !h.cfg.Enabled {
		fmt.Fprintln(h.consoleW, "logging disabled via LOGGING_ENABLED; falling back to direct console output")
		h.disabled = true
		h.state = stateRunning
		return nil
	}

	if err := os.MkdirAll(h.cfg.FolderPath, 0o755); err != nil {
		fallback.Error("failed to create log directory",
			"path", h.cfg.FolderPath, "error", err)
		return fmt.Errorf("logger setup: create log directory %s: %w", h.cfg.FolderPath, err)
	}

	stem := time.Now().Format("20060102") + ".log"
	if componentTag != "" {
		stem = componentTag + "_" + stem
	}
	logPath := filepath.Join(h.cfg.FolderPath, stem)

	consoleOpts := []format.ConsoleOption{}
	if f, ok := h.consoleW.(*os.File); ok &&
		(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		consoleOpts = append(consoleOpts, format.WithColor())
	}
	h.consoleSink = console.New(
		h.consoleW,
		format.NewConsole(h.cfg.ConsoleFormat, h.cfg.ConsoleDateFormat, consoleOpts...),
		h.cfg.ConsoleLevel,
	)

	fileSink, err := file.New(
		logPath,
		format.NewRecord(h.cfg.FileDateFormat, h.cfg.Environment),
		h.cfg.FileLevel,
		h.cfg.MaxFileSize,
		h.cfg.BackupCount,
	)
	if err != nil {
		fallback.Error("failed to open log file", "path", logPath, "error", err)
		return fmt.Errorf("logger setup: %w", err)
	}
	h.fileSink = fileSink

	h.pipeline = dispatch.New([]sink.Sink{h.consoleSink, h.fileSink})
	h.pipeline.Start()
	h.state = stateRunning
	return nil
}

// messageOptions carries the per-call extras of an emission.
type messageOptions struct {
	extra map[string]any
	err   error
}

// MessageOption attaches optional data to a single log message.
type MessageOption func(*messageOptions)

// WithExtra attaches one-off context fields to this message. Extra keys take
// precedence over the handle's sticky context on collision.
func WithExtra(extra map[string]any) MessageOption {
	return func(o *messageOptions) { o.extra = extra }
}

// WithError records the error on the message and captures the current stack
// trace. The trace reaches the file sink only for ERROR/CRITICAL events.
func WithError(err error) MessageOption {
	return func(o *messageOptions) { o.err = err }
}

// LogMessage emits one message at the given level. It never blocks on sink
// I/O: the event is built (timestamp, call site, merged context) and queued.
// Returns ErrNotInitialized before Setup or after Stop, ErrInvalidLevel for
// a level outside the fixed domain.
func (h *Handle) LogMessage(msg string, level Level, opts ...MessageOption) error {
	return h.emit(msg, level, opts)
}

// Debug emits msg at DEBUG.
func (h *Handle) Debug(msg string, opts ...MessageOption) error {
	return h.emit(msg, Debug, opts)
}

// Info emits msg at INFO.
func (h *Handle) Info(msg string, opts ...MessageOption) error {
	return h.emit(msg, Info, opts)
}

// Warning emits msg at WARNING.
func (h *Handle) Warning(msg string, opts ...MessageOption) error {
	return h.emit(msg, Warning, opts)
}

// Error emits msg at ERROR.
func (h *Handle) Error(msg string, opts ...MessageOption) error {
	return h.emit(msg, Error, opts)
}

// Critical emits msg at CRITICAL.
func (h *Handle) Critical(msg string, opts ...MessageOption) error {
	return h.emit(msg, Critical, opts)
}

// emit builds the event and enqueues it. Every exported logging method is
// exactly one frame above, so the call site is two frames up from here.
func (h *Handle) emit(msg string, level Level, opts []MessageOption) error {
	h.mu.Lock()
	state := h.state
	disabled := h.disabled
	consoleLevel := h.cfg.ConsoleLevel
	pipeline := h.pipeline
	h.mu.Unlock()

	if state != stateRunning {
		fallback.Error("log message before setup, content addressed to fallback", "message", msg)
		return ErrNotInitialized
	}
	if !level.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}

	var o messageOptions
	for _, opt := range opts {
		opt(&o)
	}

	if disabled {
		if level >= consoleLevel {
			fmt.Fprintln(h.consoleW, msg)
		}
		return nil
	}

	module, function, line, path := callSite(3)

	extra := o.extra
	var stack string
	if o.err != nil {
		if extra == nil {
			extra = map[string]any{"error": o.err.Error()}
		} else {
			merged := make(map[string]any, len(extra)+1)
			for k, v := range extra {
				merged[k] = v
			}
			merged["error"] = o.err.Error()
			extra = merged
		}
		stack = string(debug.Stack())
	}

	e := event.Event{
		Time:     time.Now(),
		Severity: level,
		Message:  msg,
		Module:   module,
		Function: function,
		Line:     line,
		Path:     path,
		Context:  h.ctx.Merge(extra),
		Stack:    stack,
	}

	if !pipeline.Enqueue(e) {
		return fmt.Errorf("%w: handle was stopped", ErrNotInitialized)
	}
	return nil
}

// AddContext adds or updates a sticky context entry that appears on every
// subsequent message from this handle.
func (h *Handle) AddContext(key string, value any) {
	h.ctx.Set(key, value)
}

// RemoveContext removes a sticky context entry.
func (h *Handle) RemoveContext(key string) {
	h.ctx.Delete(key)
}

// UpdateLevels atomically replaces both sinks' thresholds on a live handle.
func (h *Handle) UpdateLevels(consoleLevel, fileLevel Level) error {
	if !consoleLevel.Valid() {
		return fmt.Errorf("console level: %w: %d", ErrInvalidLevel, int(consoleLevel))
	}
	if !fileLevel.Valid() {
		return fmt.Errorf("file level: %w: %d", ErrInvalidLevel, int(fileLevel))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != stateRunning {
		fallback.Error("level update before setup")
		return ErrNotInitialized
	}
	h.cfg.ConsoleLevel = consoleLevel
	h.cfg.FileLevel = fileLevel
	if h.disabled {
		return nil
	}
	h.consoleSink.SetMinSeverity(consoleLevel)
	h.fileSink.SetMinSeverity(fileLevel)
	return nil
}

// Stop drains already-enqueued events (up to timeout), closes the sinks, and
// retires the handle. Events still queued when the grace period expires are
// discarded with a fallback warning. Idempotent; a stopped handle rejects
// further messages.
func (h *Handle) Stop(timeout time.Duration) error {
	h.mu.Lock()
	pipeline := h.pipeline
	wasRunning := h.state == stateRunning
	h.state = stateStopped
	h.mu.Unlock()

	if !wasRunning || pipeline == nil {
		return nil
	}
	return pipeline.Stop(timeout)
}

// callSite resolves the emitting source location skip frames up the stack.
func callSite(skip int) (module, function string, line int, path string) {
	pc, path, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", "unknown", 0, "unknown"
	}
	module = strings.TrimSuffix(filepath.Base(path), ".go")
	function = "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
		if i := strings.LastIndex(function, "/"); i >= 0 {
			function = function[i+1:]
		}
		if i := strings.Index(function, "."); i >= 0 {
			function = function[i+1:]
		}
	}
	return module, function, line, path
}

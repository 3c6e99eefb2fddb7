// Package dispatch implements the asynchronous pipeline between log
// producers and sinks: an unbounded FIFO queue drained by a single consumer
// goroutine. Producers never block on sink I/O; the trade-off is unbounded
// queue growth when producers outpace the consumer.
package dispatch

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lorenzo-mora/DocAtlas/internal/event"
	"github.com/lorenzo-mora/DocAtlas/internal/fallback"
	"github.com/lorenzo-mora/DocAtlas/internal/sink"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithOnError sets the callback invoked when a sink's Write fails.
// Default: a warning on the fallback channel.
func WithOnError(f func(error)) Option {
	return func(p *Pipeline) { p.errFunc = f }
}

// Pipeline fans a single FIFO event stream out to a set of sinks. Each sink
// filters by its own minimum severity, so one event may reach zero, one, or
// all sinks. Events are delivered to every sink in enqueue order.
type Pipeline struct {
	mu       sync.Mutex
	cond     *sync.Cond
	pending  []event.Event
	started  bool
	stopping bool

	sinks   []sink.Sink
	errFunc func(error)

	discard atomic.Bool // drain grace period expired; drop the rest
	dropped atomic.Int64
	done    chan struct{}
	stopRes error
	stopOne sync.Once
}

// New creates a Pipeline over the given sinks. The pipeline owns the sinks:
// Stop closes them.
func New(sinks []sink.Sink, opts ...Option) *Pipeline {
	p := &Pipeline{
		sinks: sinks,
		done:  make(chan struct{}),
		errFunc: func(err error) {
			fallback.Warn("sink write failed", "error", err)
		},
	}
	p.cond = sync.NewCond(&p.mu)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start spawns the consumer goroutine. Calling Start on a running (or
// stopped) pipeline is a no-op.
func (p *Pipeline) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopping {
		return
	}
	p.started = true
	go p.run()
}

// Enqueue appends the event to the queue. It never blocks and always
// succeeds while the pipeline is running; it reports false once the pipeline
// is stopping or was never started.
func (p *Pipeline) Enqueue(e event.Event) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started || p.stopping {
		return false
	}
	p.pending = append(p.pending, e)
	p.cond.Signal()
	return true
}

// Stop asks the consumer to finish draining already-enqueued events, waits up
// to timeout, then discards whatever remains (a single fallback warning
// carries the dropped count). Sinks are closed afterwards. Idempotent; only
// the first call's result is returned.
func (p *Pipeline) Stop(timeout time.Duration) error {
	p.stopOne.Do(func() {
		p.mu.Lock()
		wasStarted := p.started
		p.stopping = true
		p.cond.Broadcast()
		p.mu.Unlock()

		if wasStarted {
			select {
			case <-p.done:
			case <-time.After(timeout):
				p.discard.Store(true)
				p.mu.Lock()
				p.cond.Broadcast()
				p.mu.Unlock()
				<-p.done
				p.mu.Lock()
				p.dropped.Add(int64(len(p.pending)))
				p.pending = nil
				p.mu.Unlock()
				fallback.Warn("log drain timed out, discarding queued events",
					"dropped", p.dropped.Load(), "timeout", timeout)
			}
		}

		var errs []error
		for _, s := range p.sinks {
			if err := s.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		p.stopRes = errors.Join(errs...)
	})
	return p.stopRes
}

// Dropped returns the number of events discarded by a timed-out Stop.
func (p *Pipeline) Dropped() int64 {
	return p.dropped.Load()
}

// run is the consumer loop: take the pending batch in FIFO order, deliver
// each event to every sink that admits its severity, repeat until stopped
// and drained.
func (p *Pipeline) run() {
	defer close(p.done)
	for {
		p.mu.Lock()
		for len(p.pending) == 0 && !p.stopping {
			p.cond.Wait()
		}
		batch := p.pending
		p.pending = nil
		stopping := p.stopping
		p.mu.Unlock()

		for i, e := range batch {
			if p.discard.Load() {
				p.dropped.Add(int64(len(batch) - i))
				return
			}
			p.deliver(e)
		}
		if stopping {
			return
		}
	}
}

// deliver writes one event to every sink whose threshold admits it. A sink
// failure is reported and does not affect the other sinks.
func (p *Pipeline) deliver(e event.Event) {
	for _, s := range p.sinks {
		if !s.Enabled(e.Severity) {
			continue
		}
		if err := s.Write(e); err != nil {
			p.errFunc(err)
		}
	}
}

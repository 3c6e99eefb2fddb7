package atlaslog

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Timed starts a timer and returns a stop function that logs the elapsed
// time at DEBUG. Intended for defer:
//
//	defer logger.Timed("chunk embedding")()
func (h *Handle) Timed(msg string) func() {
	start := time.Now()
	return func() {
		h.Debug(fmt.Sprintf("%s: %.2f sec.", msg, time.Since(start).Seconds()))
	}
}

// StatusEvery logs msg at DEBUG every interval until ctx is cancelled. An
// "{elapsed}" placeholder in msg is replaced with the time since the call.
// Used by long-running collaborators (embedding batches, bulk inserts) to
// show liveness without blocking their work.
func (h *Handle) StatusEvery(ctx context.Context, interval time.Duration, msg string) error {
	if interval <= 0 {
		return fmt.Errorf("status interval must be positive, got %v", interval)
	}

	start := time.Now()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				line := strings.ReplaceAll(msg, "{elapsed}",
					fmt.Sprintf("%.1fs", time.Since(start).Seconds()))
				h.Debug(line)
			}
		}
	}()
	return nil
}

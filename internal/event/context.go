package event

import "sync"

// Context is the sticky key/value context owned by a logger handle. Values
// set here appear on every subsequent event emitted through that handle until
// removed. Safe for concurrent use; readers always observe a consistent
// snapshot.
type Context struct {
	mu     sync.Mutex
	values map[string]any
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{values: make(map[string]any)}
}

// Set adds or replaces a context entry.
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()
}

// Delete removes a context entry. Removing an absent key is a no-op.
func (c *Context) Delete(key string) {
	c.mu.Lock()
	delete(c.values, key)
	c.mu.Unlock()
}

// Len returns the number of entries.
func (c *Context) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

// Snapshot returns a copy of the current entries. The copy is owned by the
// caller; later Set/Delete calls do not affect it.
func (c *Context) Snapshot() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := make(map[string]any, len(c.values))
	for k, v := range c.values {
		snap[k] = v
	}
	return snap
}

// Merge returns a fresh map combining the sticky context with the per-call
// extras. Extra keys win on collision. Neither input is mutated; the result
// is a plain copy safe to hand to an Event.
func (c *Context) Merge(extra map[string]any) map[string]any {
	c.mu.Lock()
	merged := make(map[string]any, len(c.values)+len(extra))
	for k, v := range c.values {
		merged[k] = v
	}
	c.mu.Unlock()
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

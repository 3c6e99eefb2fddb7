package atlaslog

import (
	"errors"
	"sync"
	"time"
)

// defaultReplaceTimeout bounds the drain of a handle displaced by a
// force-new replacement.
const defaultReplaceTimeout = 5 * time.Second

// Registry creates and memoizes logger handles, keyed by configuration
// fingerprint. It is an explicit service object: the application builds one
// at startup and injects it into its components rather than reaching for
// ambient global state. Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	handles map[string]*Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]*Handle)}
}

// registryOptions configures a GetOrCreate call.
type registryOptions struct {
	forceNew bool
}

// RegistryOption configures a GetOrCreate call.
type RegistryOption func(*registryOptions)

// WithForceNew replaces any existing handle for the configuration's
// fingerprint. The displaced handle is stopped and rejects further messages.
func WithForceNew() RegistryOption {
	return func(o *registryOptions) { o.forceNew = true }
}

// GetOrCreate resolves cfg's fingerprint in the registry. An existing entry
// is returned unchanged — first writer wins; the parameters of later calls
// matter only for key computation. With WithForceNew the entry is
// unconditionally replaced and the old handle stopped.
func (r *Registry) GetOrCreate(cfg Config, opts ...RegistryOption) *Handle {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}

	key := cfg.fingerprint()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.handles[key]; ok {
		if !o.forceNew {
			return existing
		}
		existing.Stop(defaultReplaceTimeout)
	}

	h := newHandle(cfg)
	r.handles[key] = h
	return h
}

// GetLogger returns the handle for the environment-derived configuration,
// setting it up lazily on first use.
func (r *Registry) GetLogger() (*Handle, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	h := r.GetOrCreate(cfg)
	if err := h.Setup(""); err != nil {
		return nil, err
	}
	return h, nil
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Close stops every registered handle, draining each for up to timeout.
// Applications call it during their own shutdown sequence.
func (r *Registry) Close(timeout time.Duration) error {
	r.mu.Lock()
	handles := make([]*Handle, 0, len(r.handles))
	for _, h := range r.handles {
		handles = append(handles, h)
	}
	r.mu.Unlock()

	var errs []error
	for _, h := range handles {
		if err := h.Stop(timeout); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

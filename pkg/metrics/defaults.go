package metrics

import "sync"

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// DefaultRegistry returns the process-wide registry, creating it on first
// use. Configured "metrics" writers count into it.
func DefaultRegistry() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = NewRegistry()
	}
	return defaultRegistry
}

// Reset replaces the default registry with an empty one.
// Intended for tests.
func Reset() {
	defaultMu.Lock()
	defaultRegistry = NewRegistry()
	defaultMu.Unlock()
}

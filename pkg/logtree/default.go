package logtree

import (
	"github.com/getmockd/logtree/pkg/level"
)

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level
// helpers. Applications that want isolation should create their own with
// NewRegistry and pass it around instead.
func Default() *Registry {
	return defaultRegistry
}

// GetLogger returns a logger from the default registry.
func GetLogger(nameOrValue any) *Logger {
	return defaultRegistry.GetLogger(nameOrValue)
}

// Reset resets the default registry.
func Reset() {
	defaultRegistry.Reset()
}

// SetAcceptMode sets the accept mode of the default registry.
func SetAcceptMode(m AcceptMode) error {
	return defaultRegistry.SetAcceptMode(m)
}

// GetAcceptMode returns the accept mode of the default registry.
func GetAcceptMode() AcceptMode {
	return defaultRegistry.AcceptMode()
}

// LogModule logs one record on the named module of the default registry.
func LogModule(lvl level.Level, module any, msg string, args ...any) error {
	return defaultRegistry.GetLogger(module).Log(lvl, msg, NewContext(args...))
}

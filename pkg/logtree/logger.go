package logtree

import (
	"fmt"
	"strings"
	"sync"

	"github.com/getmockd/logtree/pkg/level"
)

// Logger is a node in the module tree.
//
// A logger without a level is transparent: it makes no accept or reject
// decision and passes every record on. A logger with a level is
// opinionated: it rejects records below its threshold, subject to the
// registry's accept mode.
//
// The parent is never stored. It is looked up by name through the registry
// each time, so the tree cannot contain cycles.
type Logger struct {
	module   string
	registry *Registry

	mu        sync.RWMutex
	threshold level.Level
	hasLevel  bool
	writers   []Writer
}

// Module returns the normalized module name ("" for the root).
func (l *Logger) Module() string {
	return l.module
}

// IsRoot reports whether l is the root logger.
func (l *Logger) IsRoot() bool {
	return l.module == ""
}

// Registry returns the registry that created l.
func (l *Logger) Registry() *Registry {
	return l.registry
}

// Parent returns the logger one segment up, or nil for the root.
func (l *Logger) Parent() *Logger {
	if l.module == "" {
		return nil
	}
	return l.registry.GetLogger(parentModule(l.module))
}

// parentModule drops the last dotted segment of a non-root module.
func parentModule(module string) string {
	if i := strings.LastIndexByte(module, '.'); i >= 0 {
		return module[:i]
	}
	return ""
}

// ancestry returns l followed by the registered loggers on its path to the
// root. Ancestors that were never created are skipped: they would be
// transparent and have no writers.
func (l *Logger) ancestry() []*Logger {
	path := []*Logger{l}
	for m := l.module; m != ""; {
		m = parentModule(m)
		if p, ok := l.registry.lookup(m); ok {
			path = append(path, p)
		}
	}
	return path
}

// SetLevel makes l opinionated with the given threshold.
func (l *Logger) SetLevel(lvl level.Level) error {
	if !lvl.Valid() {
		return fmt.Errorf("%w: rank %d", level.ErrInvalidLevel, int(lvl))
	}
	l.mu.Lock()
	l.threshold = lvl
	l.hasLevel = true
	l.mu.Unlock()
	return nil
}

// SetLevelName is SetLevel for a level name.
func (l *Logger) SetLevelName(name string) error {
	lvl, err := level.Parse(name)
	if err != nil {
		return err
	}
	return l.SetLevel(lvl)
}

// ClearLevel makes l transparent again.
func (l *Logger) ClearLevel() {
	l.mu.Lock()
	l.hasLevel = false
	l.threshold = 0
	l.mu.Unlock()
}

// Level returns the threshold and whether one is set.
func (l *Logger) Level() (level.Level, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.threshold, l.hasLevel
}

// AddWriter appends w to the writer list.
func (l *Logger) AddWriter(w Writer) error {
	if w == nil || isNilValue(w) {
		return fmt.Errorf("%w: nil %T", ErrInvalidWriter, w)
	}
	l.mu.Lock()
	l.writers = append(l.writers, w)
	l.mu.Unlock()
	return nil
}

// Attach appends a Writer or a callback. See AsWriter for accepted values.
func (l *Logger) Attach(v any) error {
	w, err := AsWriter(v)
	if err != nil {
		return err
	}
	return l.AddWriter(w)
}

// Writers returns a copy of the writer list in invocation order.
func (l *Logger) Writers() []Writer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Writer(nil), l.writers...)
}

// RemoveWriters detaches all writers.
func (l *Logger) RemoveWriters() {
	l.mu.Lock()
	l.writers = nil
	l.mu.Unlock()
}

// snapshot returns the current threshold state and writer list without
// holding the lock while writers run.
func (l *Logger) snapshot() (threshold level.Level, opinionated bool, writers []Writer) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.threshold, l.hasLevel, l.writers
}

// rejects reports whether l is opinionated and lvl is below its threshold.
func (l *Logger) rejects(lvl level.Level) bool {
	threshold, opinionated, _ := l.snapshot()
	return opinionated && lvl < threshold
}

// vetoed reports whether l or any ancestor rejects lvl.
func (l *Logger) vetoed(lvl level.Level) bool {
	for _, n := range l.ancestry() {
		if n.rejects(lvl) {
			return true
		}
	}
	return false
}

// LevelEnabled predicts whether a record at lvl logged on l would reach a
// writer that emits it. It invokes no writer and creates no logger.
func (l *Logger) LevelEnabled(lvl level.Level) bool {
	if !lvl.Valid() {
		return false
	}
	mode := l.registry.AcceptMode()
	if mode == MostGeneric && l.vetoed(lvl) {
		return false
	}

	accepted := false
	for _, n := range l.ancestry() {
		threshold, opinionated, writers := n.snapshot()
		if opinionated {
			if lvl < threshold {
				if mode == MostGeneric || !accepted {
					return false
				}
			} else {
				accepted = true
			}
		}
		for _, w := range writers {
			if w.LevelEnabled(lvl) {
				return true
			}
		}
	}
	return false
}

// LevelNameEnabled is LevelEnabled for a level name. Unknown names are
// never enabled.
func (l *Logger) LevelNameEnabled(name string) bool {
	lvl, err := level.Parse(name)
	if err != nil {
		return false
	}
	return l.LevelEnabled(lvl)
}

// Log delivers a record to the writers of l and its ancestors.
//
// An invalid level fails before any writer runs. Writer failures do not
// stop delivery; they are collected into a *WriteError.
func (l *Logger) Log(lvl level.Level, msg string, ctx Context) error {
	if !lvl.Valid() {
		return fmt.Errorf("%w: rank %d", level.ErrInvalidLevel, int(lvl))
	}
	if l.registry.AcceptMode() == MostGeneric && l.vetoed(lvl) {
		return nil
	}
	return l.deliver(lvl, msg, ctx, nil).errOrNil()
}

// LogName is Log for a level name.
func (l *Logger) LogName(name, msg string, ctx Context) error {
	lvl, err := level.Parse(name)
	if err != nil {
		return err
	}
	return l.Log(lvl, msg, ctx)
}

// deliver runs the per-node decision and recurses into the parent.
func (l *Logger) deliver(lvl level.Level, msg string, ctx Context, faults *WriteError) *WriteError {
	// Re-checked on every node even though the entry point already did.
	if !lvl.Valid() {
		return faults
	}

	threshold, opinionated, writers := l.snapshot()
	if opinionated && lvl < threshold {
		if l.registry.AcceptMode() == MostGeneric {
			return faults
		}
		if _, ok := ctx.AcceptedBy(); !ok {
			return faults
		}
	}
	if opinionated && lvl >= threshold {
		ctx = ctx.withAcceptedBy(l.module)
	}
	ctx = ctx.withOrigin(l.module, lvl)

	for i, w := range writers {
		if err := w.Write(lvl, msg, ctx); err != nil {
			faults = faults.add(l.module, i, err)
		}
	}

	if parent := l.Parent(); parent != nil {
		return parent.deliver(lvl, msg, ctx, faults)
	}
	return faults
}

func (l *Logger) logArgs(lvl level.Level, msg string, args []any) {
	if err := l.Log(lvl, msg, NewContext(args...)); err != nil {
		l.registry.diag.Warn("log delivery failed",
			"module", l.module,
			"level", lvl.String(),
			"error", err)
	}
}

// Debug logs at debug level with slog-style key/value arguments.
func (l *Logger) Debug(msg string, args ...any) { l.logArgs(level.Debug, msg, args) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.logArgs(level.Info, msg, args) }

// Notice logs at notice level.
func (l *Logger) Notice(msg string, args ...any) { l.logArgs(level.Notice, msg, args) }

// Warning logs at warning level.
func (l *Logger) Warning(msg string, args ...any) { l.logArgs(level.Warning, msg, args) }

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.logArgs(level.Error, msg, args) }

// Critical logs at critical level.
func (l *Logger) Critical(msg string, args ...any) { l.logArgs(level.Critical, msg, args) }

// Alert logs at alert level.
func (l *Logger) Alert(msg string, args ...any) { l.logArgs(level.Alert, msg, args) }

// Emergency logs at emergency level.
func (l *Logger) Emergency(msg string, args ...any) { l.logArgs(level.Emergency, msg, args) }

package logtree

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/getmockd/logtree/pkg/logging"
)

// Named lets a value choose the module it logs under.
type Named interface {
	LoggerName() string
}

// Registry owns the loggers of one tree. It guarantees a single Logger per
// normalized module name and holds the tree-wide accept mode.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger

	mode atomic.Int32

	diag *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithDiagnostics sets the logger used to report writer faults that cannot be
// returned to the caller, such as those raised by the convenience methods.
func WithDiagnostics(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.diag = l
		}
	}
}

// WithAcceptMode sets the initial accept mode. Invalid modes are ignored.
func WithAcceptMode(m AcceptMode) Option {
	return func(r *Registry) {
		if m.Valid() {
			r.mode.Store(int32(m))
		}
	}
}

// NewRegistry creates an empty registry in the default accept mode.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		loggers: make(map[string]*Logger),
		diag:    logging.Nop(),
	}
	r.mode.Store(int32(DefaultAcceptMode))
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetLogger returns the logger for a module, creating it on first use.
// The argument may be a module name, a value implementing Named, or any
// other value, in which case its Go type name is used.
func (r *Registry) GetLogger(nameOrValue any) *Logger {
	module := NormalizeModule(nameOrValue)

	r.mu.RLock()
	l, ok := r.loggers[module]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Double-check in case another goroutine created it meanwhile.
	if l, ok := r.loggers[module]; ok {
		return l
	}
	l = &Logger{module: module, registry: r}
	r.loggers[module] = l
	return l
}

// lookup returns the logger registered for a normalized module without
// creating it.
func (r *Registry) lookup(module string) (*Logger, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.loggers[module]
	return l, ok
}

// Root returns the root logger.
func (r *Registry) Root() *Logger {
	return r.GetLogger("")
}

// Loggers returns a snapshot of all registered loggers sorted by module.
func (r *Registry) Loggers() []*Logger {
	r.mu.RLock()
	out := make([]*Logger, 0, len(r.loggers))
	for _, l := range r.loggers {
		out = append(out, l)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].module < out[j].module })
	return out
}

// Len returns the number of registered loggers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.loggers)
}

// Reset detaches every writer from every registered logger, forgets all
// loggers and restores the default accept mode. Loggers still referenced
// elsewhere keep working but no longer belong to the tree.
func (r *Registry) Reset() {
	r.mu.Lock()
	old := r.loggers
	r.loggers = make(map[string]*Logger)
	r.mu.Unlock()

	for _, l := range old {
		l.RemoveWriters()
	}
	r.mode.Store(int32(DefaultAcceptMode))
}

// SetAcceptMode changes the accept mode for the whole tree.
// The registry is left unchanged if m is not a defined mode.
func (r *Registry) SetAcceptMode(m AcceptMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidAcceptMode, m)
	}
	r.mode.Store(int32(m))
	return nil
}

// AcceptMode returns the current accept mode.
func (r *Registry) AcceptMode() AcceptMode {
	return AcceptMode(r.mode.Load())
}

// Diagnostics returns the registry's diagnostics logger.
func (r *Registry) Diagnostics() *slog.Logger {
	return r.diag
}

// moduleSeparators are rewritten to '.' during normalization.
var moduleSeparators = strings.NewReplacer("::", ".", "/", ".", `\`, ".")

// NormalizeModule derives the module name GetLogger uses for a value.
func NormalizeModule(nameOrValue any) string {
	var name string
	switch v := nameOrValue.(type) {
	case nil:
		name = ""
	case string:
		name = v
	case Named:
		if isNilValue(v) {
			name = typeName(reflect.TypeOf(v))
		} else {
			name = v.LoggerName()
		}
	default:
		name = typeName(reflect.TypeOf(v))
	}

	name = moduleSeparators.Replace(name)
	name = strings.Trim(name, ". \t\r\n")
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	if strings.EqualFold(name, "root") {
		return ""
	}
	return name
}

// isNilValue reports whether v is a nil pointer, func, map, slice, chan or
// interface hidden behind a non-nil interface value.
func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

package logtree

import (
	"context"
	"log/slog"
	"strings"

	"github.com/getmockd/logtree/pkg/logging"
)

// ModuleKey is the slog attribute that selects the target module.
const ModuleKey = "module"

// Handler is a slog.Handler that delivers records into a Registry.
//
// The target module is the handler's base module extended by every
// WithGroup name, unless the record or the handler carries a "module"
// attribute, which wins. Remaining attributes become context fields.
type Handler struct {
	registry *Registry
	module   string
	attrs    []slog.Attr

	// override is set by a "module" attribute given to WithAttrs. It may
	// be "" for the root, so hasOverride tracks whether it applies.
	override    string
	hasOverride bool
}

// NewHandler creates a handler that logs on module of r.
func NewHandler(r *Registry, module string) *Handler {
	return &Handler{registry: r, module: NormalizeModule(module)}
}

// NewSlogLogger is a shortcut for slog.New(NewHandler(r, module)).
func NewSlogLogger(r *Registry, module string) *slog.Logger {
	return slog.New(NewHandler(r, module))
}

func (h *Handler) target() string {
	if h.hasOverride {
		return h.override
	}
	return h.module
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return h.registry.GetLogger(h.target()).LevelEnabled(logging.FromSlog(l))
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	module := h.target()
	fields := make([]Field, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		fields = append(fields, Field{Key: a.Key, Value: a.Value.Resolve().Any()})
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == ModuleKey {
			module = NormalizeModule(a.Value.String())
			return true
		}
		fields = append(fields, Field{Key: a.Key, Value: a.Value.Resolve().Any()})
		return true
	})

	return h.registry.GetLogger(module).Log(logging.FromSlog(r.Level), r.Message, Context{Fields: fields})
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = h.attrs[:len(h.attrs):len(h.attrs)]
	for _, a := range attrs {
		if a.Key == ModuleKey {
			out.override = NormalizeModule(a.Value.String())
			out.hasOverride = true
			continue
		}
		out.attrs = append(out.attrs, a)
	}
	return &out
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	out := *h
	out.module = NormalizeModule(strings.Join([]string{h.module, name}, "."))
	return &out
}

// Ensure Handler implements slog.Handler.
var _ slog.Handler = (*Handler)(nil)

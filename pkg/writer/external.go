package writer

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logging"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/template"
)

// Delegate is another logging library a record can be handed to.
type Delegate interface {
	Log(lvl level.Level, msg string, ctx logtree.Context) error
}

// DelegateFunc adapts a function to the Delegate interface.
type DelegateFunc func(lvl level.Level, msg string, ctx logtree.Context) error

// Log calls f.
func (f DelegateFunc) Log(lvl level.Level, msg string, ctx logtree.Context) error {
	return f(lvl, msg, ctx)
}

// ExternalWriter passes every record to a Delegate as is. It does no
// filtering of its own, not even by level; the delegate decides.
type ExternalWriter struct {
	delegate Delegate
}

// NewExternalWriter creates a writer for d.
func NewExternalWriter(d Delegate) *ExternalWriter {
	return &ExternalWriter{delegate: d}
}

// Delegate returns the wrapped delegate.
func (w *ExternalWriter) Delegate() Delegate {
	return w.delegate
}

// Write implements logtree.Writer.
func (w *ExternalWriter) Write(lvl level.Level, msg string, ctx logtree.Context) error {
	return w.delegate.Log(lvl, msg, ctx)
}

// LevelEnabled implements logtree.Writer. It is true for every valid level.
func (w *ExternalWriter) LevelEnabled(lvl level.Level) bool {
	return lvl.Valid()
}

// Ensure ExternalWriter implements logtree.Writer.
var _ logtree.Writer = (*ExternalWriter)(nil)

// SlogDelegate forwards records to l. The level is mapped with
// logging.ToSlog, the message has its placeholders filled and the fields
// become attributes next to a "module" attribute.
func SlogDelegate(l *slog.Logger) Delegate {
	return DelegateFunc(func(lvl level.Level, msg string, ctx logtree.Context) error {
		module, _ := ctx.Origin()
		attrs := make([]slog.Attr, 0, len(ctx.Fields)+1)
		attrs = append(attrs, slog.String(logtree.ModuleKey, module))
		for _, f := range ctx.Fields {
			attrs = append(attrs, slog.Any(f.Key, f.Value))
		}
		l.LogAttrs(context.Background(), logging.ToSlog(lvl), template.Fill(msg, ctx.Fields), attrs...)
		return nil
	})
}

// ZapDelegate forwards records to l. Zap has no levels above error that do
// not panic or exit, so critical, alert and emergency are logged at error
// level; a "severity" field always carries the original name.
func ZapDelegate(l *zap.Logger) Delegate {
	return DelegateFunc(func(lvl level.Level, msg string, ctx logtree.Context) error {
		ce := l.Check(ZapLevel(lvl), template.Fill(msg, ctx.Fields))
		if ce == nil {
			return nil
		}
		module, _ := ctx.Origin()
		fields := make([]zap.Field, 0, len(ctx.Fields)+2)
		fields = append(fields, zap.String(logtree.ModuleKey, module), zap.String("severity", lvl.String()))
		for _, f := range ctx.Fields {
			fields = append(fields, zap.Any(f.Key, f.Value))
		}
		ce.Write(fields...)
		return nil
	})
}

// ZapLevel maps a tree severity onto the nearest zap level that neither
// panics nor exits.
func ZapLevel(lvl level.Level) zapcore.Level {
	switch {
	case lvl <= level.Debug:
		return zapcore.DebugLevel
	case lvl <= level.Notice:
		return zapcore.InfoLevel
	case lvl == level.Warning:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

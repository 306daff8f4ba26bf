package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/getmockd/logtree/pkg/logging"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/metrics"
	"github.com/getmockd/logtree/pkg/writer"
)

// ApplyOption configures Apply.
type ApplyOption func(*applyOptions)

type applyOptions struct {
	outputs Outputs
	log     *slog.Logger
}

// WithOutputs redirects the stdout and stderr targets.
func WithOutputs(stdout, stderr io.Writer) ApplyOption {
	return func(o *applyOptions) {
		o.outputs.Stdout = stdout
		o.outputs.Stderr = stderr
	}
}

// WithMetrics sets the registry metrics writers count into.
func WithMetrics(reg *metrics.Registry) ApplyOption {
	return func(o *applyOptions) {
		o.outputs.Metrics = reg
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) ApplyOption {
	return func(o *applyOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// Applied is a configuration that has been installed on a registry.
type Applied struct {
	Registry *logtree.Registry

	// writers holds the factory-built writers per module, before any
	// filter wrapping, in configuration order.
	writers map[string][]logtree.Writer
	closers []io.Closer
}

// Apply validates cfg and installs it on reg: the accept mode, the level of
// every listed logger and its writers, appended after any writers already
// attached. All writers are built before the registry is touched, so a
// failing factory leaves reg unchanged.
func Apply(cfg *Config, reg *logtree.Registry, opts ...ApplyOption) (*Applied, error) {
	o := applyOptions{log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate().Err(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	applied := &Applied{
		Registry: reg,
		writers:  make(map[string][]logtree.Writer),
	}

	type plan struct {
		module  string
		level   string
		writers []logtree.Writer
	}
	plans := make([]plan, 0, len(cfg.Loggers))

	for i, lc := range cfg.Loggers {
		p := plan{module: logtree.NormalizeModule(lc.Module), level: lc.Level}
		for j, wc := range lc.Writers {
			base, wrapped, err := buildWriter(wc, o.outputs)
			if err != nil {
				_ = applied.Close()
				return nil, fmt.Errorf("loggers[%d].writers[%d]: %w", i, j, err)
			}
			if c, ok := base.(io.Closer); ok {
				applied.closers = append(applied.closers, c)
			}
			applied.writers[p.module] = append(applied.writers[p.module], base)
			p.writers = append(p.writers, wrapped)
		}
		plans = append(plans, p)
	}

	if cfg.AcceptMode != "" {
		mode, err := logtree.ParseAcceptMode(cfg.AcceptMode)
		if err != nil {
			_ = applied.Close()
			return nil, err
		}
		if err := reg.SetAcceptMode(mode); err != nil {
			_ = applied.Close()
			return nil, err
		}
	}

	for _, p := range plans {
		l := reg.GetLogger(p.module)
		if p.level != "" {
			if err := l.SetLevelName(p.level); err != nil {
				_ = applied.Close()
				return nil, err
			}
		}
		for _, w := range p.writers {
			if err := l.AddWriter(w); err != nil {
				_ = applied.Close()
				return nil, err
			}
		}
		o.log.Debug("configured logger",
			"module", p.module,
			"level", p.level,
			"writers", len(p.writers))
	}

	return applied, nil
}

// buildWriter runs the factory and wraps the result in a FilterWriter when
// module patterns or a condition are configured.
func buildWriter(wc WriterConfig, out Outputs) (base, wrapped logtree.Writer, err error) {
	factory, ok := LookupWriterType(wc.Type)
	if !ok {
		return nil, nil, fmt.Errorf("unknown writer type %q", wc.Type)
	}
	base, err = factory(wc, out)
	if err != nil {
		return nil, nil, err
	}

	var filters []writer.FilterOption
	if len(wc.Modules) > 0 {
		filters = append(filters, writer.WithModules(wc.Modules...))
	}
	if wc.Filter != "" {
		filters = append(filters, writer.WithCondition(wc.Filter))
	}
	if len(filters) == 0 {
		return base, base, nil
	}

	fw, err := writer.NewFilterWriter(base, filters...)
	if err != nil {
		if c, ok := base.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, nil, err
	}
	return base, fw, nil
}

// Writers returns the configured writers of a module, without filter
// wrappers.
func (a *Applied) Writers(module string) []logtree.Writer {
	return append([]logtree.Writer(nil), a.writers[logtree.NormalizeModule(module)]...)
}

// Memory returns the index-th configured writer of module if it is a
// MemoryWriter.
func (a *Applied) Memory(module string, index int) (*writer.MemoryWriter, bool) {
	ws := a.writers[logtree.NormalizeModule(module)]
	if index < 0 || index >= len(ws) {
		return nil, false
	}
	mem, ok := ws[index].(*writer.MemoryWriter)
	return mem, ok
}

// Close closes every writer that holds resources, in reverse order.
func (a *Applied) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

package writer

import (
	"fmt"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/metrics"
)

// RecordsMetric is the counter CountingWriter increments.
const RecordsMetric = "logtree_records_total"

// CountingWriter counts the records it receives by origin module and level
// instead of emitting them. The root module is labelled "root".
type CountingWriter struct {
	Base

	counter *metrics.Counter
}

// NewCountingWriter creates a writer counting into reg. Writers sharing a
// registry share the counter.
func NewCountingWriter(reg *metrics.Registry, minLevel level.Level) (*CountingWriter, error) {
	c, err := reg.Counter(RecordsMetric, "Log records delivered to counting writers, by origin module and level.", "module", "level")
	if err != nil {
		return nil, fmt.Errorf("counting writer: %w", err)
	}
	w := &CountingWriter{counter: c}
	_ = w.SetLevel(clamp(minLevel))
	return w, nil
}

// Write implements logtree.Writer.
func (w *CountingWriter) Write(lvl level.Level, _ string, ctx logtree.Context) error {
	if !w.LevelEnabled(lvl) {
		return nil
	}
	module, _ := ctx.Origin()
	if module == "" {
		module = "root"
	}
	vec, err := w.counter.WithLabels(module, lvl.String())
	if err != nil {
		return err
	}
	return vec.Inc()
}

// Count returns how many records from module at lvl were counted.
func (w *CountingWriter) Count(module string, lvl level.Level) int {
	if module == "" {
		module = "root"
	}
	return int(w.counter.Value(module, lvl.String()))
}

// Ensure CountingWriter implements logtree.Writer.
var _ logtree.Writer = (*CountingWriter)(nil)

package writer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/metrics"
)

func TestCountingWriter(t *testing.T) {
	t.Parallel()

	m := metrics.NewRegistry()
	w, err := NewCountingWriter(m, level.Info)
	require.NoError(t, err)

	reg := logtree.NewRegistry()
	require.NoError(t, reg.Root().AddWriter(w))

	reg.GetLogger("app.db").Error("one")
	reg.GetLogger("app.db").Error("two")
	reg.GetLogger("app.db").Debug("below the writer")
	reg.Root().Info("root")

	assert.Equal(t, 2, w.Count("app.db", level.Error))
	assert.Equal(t, 0, w.Count("app.db", level.Debug))
	assert.Equal(t, 1, w.Count("", level.Info))

	var b strings.Builder
	require.NoError(t, m.WriteText(&b))
	assert.Contains(t, b.String(), `logtree_records_total{level="error",module="app.db"} 2`)
	assert.Contains(t, b.String(), `logtree_records_total{level="info",module="root"} 1`)
}

func TestCountingWriter_SharesCounter(t *testing.T) {
	t.Parallel()

	m := metrics.NewRegistry()
	a, err := NewCountingWriter(m, level.Debug)
	require.NoError(t, err)
	b, err := NewCountingWriter(m, level.Debug)
	require.NoError(t, err)

	ctx := logtree.Context{}
	require.NoError(t, a.Write(level.Notice, "x", ctx))
	require.NoError(t, b.Write(level.Notice, "y", ctx))
	assert.Equal(t, 2, a.Count("", level.Notice))

	other := metrics.NewRegistry()
	other.NewCounter(RecordsMetric, "Wrong labels", "module")
	_, err = NewCountingWriter(other, level.Debug)
	assert.ErrorIs(t, err, metrics.ErrDuplicateMetric)
}

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/metrics"
	"github.com/getmockd/logtree/pkg/writer"
)

func TestApply(t *testing.T) {
	t.Parallel()

	cfg, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	reg := logtree.NewRegistry()
	applied, err := Apply(cfg, reg, WithOutputs(&stdout, &stderr))
	require.NoError(t, err)
	t.Cleanup(func() { _ = applied.Close() })

	assert.Equal(t, logtree.MostGeneric, reg.AcceptMode())
	lvl, ok := reg.Root().Level()
	require.True(t, ok)
	assert.Equal(t, level.Warning, lvl)
	lvl, ok = reg.GetLogger("app.db").Level()
	require.True(t, ok)
	assert.Equal(t, level.Debug, lvl)

	mem, ok := applied.Memory("app.db", 0)
	require.True(t, ok)
	_, ok = applied.Memory("app.db", 1)
	assert.False(t, ok)
	_, ok = applied.Memory("", 0)
	assert.False(t, ok, "root writer is a stream writer")

	// Both vetoed by the root threshold in most-generic mode.
	reg.GetLogger("app.db.pool").Info("too quiet")
	reg.GetLogger("app.db.pool").Notice("vetoed")
	reg.GetLogger("app.db.pool").Error("pool exhausted")

	assert.Equal(t, []string{"     ERROR: pool exhausted"}, mem.Lines())
	assert.Equal(t, "[app.db.pool] ERROR: pool exhausted\n", stderr.String())
	assert.Empty(t, stdout.String())
}

func TestApply_FileWriterAndClose(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &Config{Loggers: []LoggerConfig{{
		Module:  "app",
		Writers: []WriterConfig{{Type: TypeFile, Path: path, Format: "%LEVEL% %MESSAGE%"}},
	}}}

	reg := logtree.NewRegistry()
	applied, err := Apply(cfg, reg)
	require.NoError(t, err)

	reg.GetLogger("app.x").Info("one {n}", "n", 1)
	require.NoError(t, applied.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "INFO one 1\n", string(data))

	err = reg.GetLogger("app").Log(level.Info, "after close", logtree.Context{})
	assert.ErrorIs(t, err, writer.ErrClosed)
	assert.Len(t, applied.Writers("app"), 1)
}

func TestApply_SlogAndZapWriters(t *testing.T) {
	t.Parallel()

	cfg := &Config{Loggers: []LoggerConfig{
		{Module: "s", Writers: []WriterConfig{{Type: TypeSlog, Format: "json", Level: "warning"}}},
		{Module: "z", Writers: []WriterConfig{{Type: TypeZap, Target: "stderr", Level: "info"}}},
	}}

	var stdout, stderr bytes.Buffer
	reg := logtree.NewRegistry()
	_, err := Apply(cfg, reg, WithOutputs(&stdout, &stderr))
	require.NoError(t, err)

	reg.GetLogger("s").Info("slog quiet")
	reg.GetLogger("s").Error("slog {what}", "what", "loud")
	reg.GetLogger("z.sub").Debug("zap quiet")
	reg.GetLogger("z.sub").Critical("zap loud")

	var slogLine map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &slogLine))
	assert.Equal(t, "slog loud", slogLine["msg"])
	assert.Equal(t, "ERROR", slogLine["level"])
	assert.Equal(t, "s", slogLine["module"])
	assert.NotContains(t, slogLine, "component")

	var zapLine map[string]any
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &zapLine))
	assert.Equal(t, "zap loud", zapLine["msg"])
	assert.Equal(t, "error", zapLine["level"])
	assert.Equal(t, "critical", zapLine["severity"])
	assert.Equal(t, "z.sub", zapLine["module"])
}

func TestApply_InvalidConfig(t *testing.T) {
	t.Parallel()

	reg := logtree.NewRegistry()
	_, err := Apply(&Config{AcceptMode: "sideways"}, reg)
	require.Error(t, err)

	var result *ValidationResult
	assert.ErrorAs(t, err, &result)
	assert.Equal(t, logtree.MostSpecific, reg.AcceptMode())
	assert.Zero(t, reg.Len())
}

func TestApply_CustomWriterType(t *testing.T) {
	t.Parallel()

	var got []string
	RegisterWriterType("test-collector", func(wc WriterConfig, _ Outputs) (logtree.Writer, error) {
		prefix, _ := wc.Options["prefix"].(string)
		return logtree.WriterFunc(func(lvl level.Level, msg string, _ logtree.Context) error {
			got = append(got, prefix+msg)
			return nil
		}), nil
	})

	cfg, err := ParseYAML([]byte(`
loggers:
  - module: jobs
    writers:
      - type: test-collector
        options:
          prefix: "jobs> "
`))
	require.NoError(t, err)

	reg := logtree.NewRegistry()
	_, err = Apply(cfg, reg)
	require.NoError(t, err)

	reg.GetLogger("jobs.nightly").Info("started")
	assert.Equal(t, []string{"jobs> started"}, got)
}

func TestApply_FactoryFailureLeavesRegistryUntouched(t *testing.T) {
	t.Parallel()

	RegisterWriterType("test-broken", func(WriterConfig, Outputs) (logtree.Writer, error) {
		return nil, errors.New("no backend")
	})

	path := filepath.Join(t.TempDir(), "first.log")
	cfg := &Config{
		AcceptMode: "most-generic",
		Loggers: []LoggerConfig{
			{Module: "a", Level: "error", Writers: []WriterConfig{{Type: TypeFile, Path: path}}},
			{Module: "b", Writers: []WriterConfig{{Type: "test-broken"}}},
		},
	}

	reg := logtree.NewRegistry()
	_, err := Apply(cfg, reg)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "loggers[1].writers[0]: no backend"), err.Error())
	assert.Equal(t, logtree.MostSpecific, reg.AcceptMode())
	assert.Zero(t, reg.Len())
}

func TestApply_MetricsWriter(t *testing.T) {
	t.Parallel()

	cfg, err := ParseYAML([]byte(`
loggers:
  - module: root
    writers:
      - type: metrics
        level: warning
`))
	require.NoError(t, err)

	m := metrics.NewRegistry()
	reg := logtree.NewRegistry()
	applied, err := Apply(cfg, reg, WithMetrics(m), WithOutputs(io.Discard, io.Discard))
	require.NoError(t, err)

	reg.GetLogger("jobs").Warning("slow")
	reg.GetLogger("jobs").Info("ignored")

	counter, ok := applied.Writers("")[0].(*writer.CountingWriter)
	require.True(t, ok)
	assert.Equal(t, 1, counter.Count("jobs", level.Warning))
	assert.Equal(t, 0, counter.Count("jobs", level.Info))
	assert.Len(t, m.Metrics(), 1, "WithOutputs must not reset the metrics registry")
}

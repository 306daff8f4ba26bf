package writer

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
)

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedFormatter(pattern string) *PatternFormatter {
	f := NewPatternFormatter(pattern)
	f.Now = func() time.Time { return fixedTime }
	return f
}

func TestPatternFormatter(t *testing.T) {
	t.Parallel()

	reg := logtree.NewRegistry()
	mem := NewMemoryWriter(level.Debug)
	mem.SetFormatter(fixedFormatter(DefaultPattern + " (%ACCEPTED%)"))
	require.NoError(t, reg.GetLogger("app").SetLevel(level.Info))
	require.NoError(t, reg.GetLogger("app.db").AddWriter(mem))

	require.NoError(t, reg.GetLogger("app.db").Log(level.Warning, "pool at {pct}% %LEVEL%", logtree.NewContext("pct", 93)))

	entries := mem.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "[2026-03-14T09:26:53Z][app.db] WARNING: pool at 93% %LEVEL% ()", entries[0].Message)
}

func TestPatternFormatter_AcceptedAndLayout(t *testing.T) {
	t.Parallel()

	f := fixedFormatter("%DATE% %MODULE% %ACCEPTED% %MESSAGE%")
	f.DateLayout = "2006-01-02"

	reg := logtree.NewRegistry()
	var got string
	require.NoError(t, reg.Root().Attach(func(lvl level.Level, msg string, ctx logtree.Context) {
		got = f.Format(lvl, msg, ctx)
	}))
	require.NoError(t, reg.GetLogger("svc").SetLevel(level.Debug))
	require.NoError(t, reg.GetLogger("svc.api").Log(level.Info, "hi {who}", logtree.NewContext("who", "there")))

	assert.Equal(t, "2026-03-14 svc.api svc hi there", got)
}

func TestBase(t *testing.T) {
	t.Parallel()

	var b Base
	assert.True(t, b.LevelEnabled(level.Debug))
	assert.False(t, b.LevelEnabled(level.Level(-1)))

	require.NoError(t, b.SetLevel(level.Error))
	assert.False(t, b.LevelEnabled(level.Warning))
	assert.True(t, b.LevelEnabled(level.Emergency))
	assert.ErrorIs(t, b.SetLevel(level.Level(12)), level.ErrInvalidLevel)
	assert.Equal(t, level.Error, b.MinLevel())

	ctx := logtree.NewContext("n", 1)
	assert.Equal(t, "n=1", b.Format(level.Info, "n={n}", ctx))

	b.SetFormatter(FormatterFunc(func(lvl level.Level, msg string, _ logtree.Context) string {
		return lvl.String() + "|" + msg
	}))
	assert.Equal(t, "info|n={n}", b.Format(level.Info, "n={n}", ctx))
}

func TestStreamWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewStreamWriter(&buf, level.Notice)
	w.SetFormatter(fixedFormatter(""))

	reg := logtree.NewRegistry()
	require.NoError(t, reg.GetLogger("net").AddWriter(w))

	log := reg.GetLogger("net.http")
	log.Info("ignored")
	log.Error("failed to reach {host}", "host", "example.org")

	assert.Equal(t, "[2026-03-14T09:26:53Z][net.http] ERROR: failed to reach example.org\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestStreamWriter_Error(t *testing.T) {
	t.Parallel()

	w := NewStreamWriter(failingWriter{}, level.Debug)
	err := w.Write(level.Info, "x", logtree.Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestStreamWriter_ClampsLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, level.Emergency, NewStreamWriter(&bytes.Buffer{}, level.Level(99)).MinLevel())
	assert.Equal(t, level.Debug, NewStreamWriter(&bytes.Buffer{}, level.Level(-3)).MinLevel())
}

func TestFileWriter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	w, err := NewFileWriter(path, level.Info)
	require.NoError(t, err)
	w.SetFormatter(fixedFormatter("%LEVEL% %MESSAGE%"))

	require.NoError(t, w.Write(level.Debug, "skipped", logtree.Context{}))
	require.NoError(t, w.Write(level.Info, "first", logtree.Context{}))
	require.NoError(t, w.Write(level.Alert, "second", logtree.Context{}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "INFO first\nALERT second\n", string(data))

	err = w.Write(level.Error, "late", logtree.Context{})
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, w.Close())
}

func TestFileWriter_ReopensAfterInterval(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rotating.log")
	w, err := NewFileWriter(path, level.Debug)
	require.NoError(t, err)
	w.SetFormatter(FormatterFunc(func(_ level.Level, msg string, _ logtree.Context) string { return msg }))

	clock := fixedTime
	w.now = func() time.Time { return clock }
	w.SetReopenInterval(30 * time.Second)

	require.NoError(t, w.Write(level.Info, "before rotation", logtree.Context{}))
	require.NoError(t, os.Rename(path, filepath.Join(dir, "rotating.log.1")))

	// Still inside the interval: the moved file keeps receiving lines.
	clock = clock.Add(10 * time.Second)
	require.NoError(t, w.Write(level.Info, "still old", logtree.Context{}))

	clock = clock.Add(30 * time.Second)
	require.NoError(t, w.Write(level.Info, "after rotation", logtree.Context{}))
	require.NoError(t, w.Close())

	rotated, err := os.ReadFile(filepath.Join(dir, "rotating.log.1"))
	require.NoError(t, err)
	assert.Equal(t, "before rotation\nstill old\n", string(rotated))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "after rotation\n", string(current))
}

func TestFileWriter_InvalidPath(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"", "../outside.log", `logs\..\..\x.log`} {
		_, err := NewFileWriter(p, level.Debug)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}

	w, err := NewFileWriter(filepath.Join(t.TempDir(), "missing", "dir", "x.log"), level.Debug)
	require.NoError(t, err)
	err = w.Write(level.Info, "x", logtree.Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}

func TestMemoryWriter(t *testing.T) {
	t.Parallel()

	reg := logtree.NewRegistry()
	mem := NewMemoryWriter(level.Info)
	require.NoError(t, reg.Root().AddWriter(mem))

	log := reg.GetLogger("jobs")
	log.Debug("hidden")
	log.Warning("disk low on {disk}", "disk", "/var")
	log.Emergency("down")

	assert.Equal(t, []string{
		"   WARNING: disk low on /var",
		" EMERGENCY: down",
	}, mem.Lines())
	assert.Equal(t, 2, mem.Count())

	entries := mem.Entries()
	assert.Equal(t, "jobs", entries[0].Module)
	assert.Equal(t, level.Warning, entries[0].Level)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.Less(t, entries[0].ID, entries[1].ID, "v7 ids sort by creation time")

	got := mem.Get(entries[1].ID)
	require.NotNil(t, got)
	assert.Equal(t, "down", got.Message)
	assert.Nil(t, mem.Get("missing"))

	mem.Clear()
	assert.Zero(t, mem.Count())
}

func TestMemoryWriter_Capacity(t *testing.T) {
	t.Parallel()

	mem := NewMemoryWriter(level.Debug)
	for _, msg := range []string{"a", "b", "c", "d"} {
		require.NoError(t, mem.Write(level.Info, msg, logtree.Context{}))
	}
	mem.SetCapacity(3)
	require.NoError(t, mem.Write(level.Info, "e", logtree.Context{}))

	var msgs []string
	for _, e := range mem.Entries() {
		msgs = append(msgs, e.Message)
	}
	assert.Equal(t, []string{"c", "d", "e"}, msgs)
}

func TestMemoryWriter_Truncates(t *testing.T) {
	t.Parallel()

	mem := NewMemoryWriter(level.Debug)
	mem.SetMaxMessageSize(4)
	require.NoError(t, mem.Write(level.Info, "abcdefgh", logtree.Context{}))
	assert.Equal(t, "abcd...(truncated)", mem.Entries()[0].Message)
}

func TestExternalWriter_Slog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sl := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ext := NewExternalWriter(SlogDelegate(sl))

	assert.True(t, ext.LevelEnabled(level.Debug), "no filtering on this side")
	assert.False(t, ext.LevelEnabled(level.Level(40)))

	reg := logtree.NewRegistry()
	require.NoError(t, reg.Root().AddWriter(ext))
	log := reg.GetLogger("billing")
	log.Info("below the slog threshold")
	log.Error("charge {id} failed", "id", "ch_1")

	out := buf.String()
	assert.NotContains(t, out, "below the slog threshold")
	assert.Contains(t, out, `level=ERROR msg="charge ch_1 failed" module=billing id=ch_1`)
}

func TestExternalWriter_Zap(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ext := NewExternalWriter(ZapDelegate(zap.New(core)))

	reg := logtree.NewRegistry()
	require.NoError(t, reg.Root().AddWriter(ext))
	reg.GetLogger("api").Notice("hello {name}", "name", "zap")
	reg.GetLogger("api").Emergency("meltdown")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "hello zap", entries[0].Message)
	assert.Equal(t, map[string]any{"module": "api", "severity": "notice", "name": "zap"}, entries[0].ContextMap())
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "emergency", entries[1].ContextMap()["severity"])
}

func TestZapLevel(t *testing.T) {
	t.Parallel()

	want := map[level.Level]zapcore.Level{
		level.Debug:     zapcore.DebugLevel,
		level.Info:      zapcore.InfoLevel,
		level.Notice:    zapcore.InfoLevel,
		level.Warning:   zapcore.WarnLevel,
		level.Error:     zapcore.ErrorLevel,
		level.Critical:  zapcore.ErrorLevel,
		level.Alert:     zapcore.ErrorLevel,
		level.Emergency: zapcore.ErrorLevel,
	}
	for lvl, zl := range want {
		assert.Equal(t, zl, ZapLevel(lvl), lvl.String())
	}
}

func TestFilterWriter_Modules(t *testing.T) {
	t.Parallel()

	mem := NewMemoryWriter(level.Debug)
	f, err := NewFilterWriter(mem, WithModules("app.db.**", "jobs.*"))
	require.NoError(t, err)

	reg := logtree.NewRegistry()
	require.NoError(t, reg.Root().AddWriter(f))

	reg.GetLogger("app.db.pool").Info("kept 1")
	reg.GetLogger("app.http").Info("dropped")
	reg.GetLogger("jobs.cron").Info("kept 2")
	reg.GetLogger("jobs.cron.nightly").Info("dropped")

	var msgs []string
	for _, e := range mem.Entries() {
		msgs = append(msgs, e.Message)
	}
	assert.Equal(t, []string{"kept 1", "kept 2"}, msgs)
}

func TestFilterWriter_Condition(t *testing.T) {
	t.Parallel()

	mem := NewMemoryWriter(level.Debug)
	f, err := NewFilterWriter(mem, WithCondition(`level >= 3 || fields.user == "root"`))
	require.NoError(t, err)

	reg := logtree.NewRegistry()
	require.NoError(t, reg.Root().AddWriter(f))
	log := reg.GetLogger("auth")
	log.Info("login", "user", "bob")
	log.Info("sudo", "user", "root")
	log.Warning("lockout")

	assert.Equal(t, []string{"      INFO: sudo", "   WARNING: lockout"}, mem.Lines())
	assert.True(t, f.LevelEnabled(level.Debug))
	assert.Same(t, mem, f.Inner())
}

func TestFilterWriter_ConditionSeesContext(t *testing.T) {
	t.Parallel()

	mem := NewMemoryWriter(level.Debug)
	f, err := NewFilterWriter(mem,
		WithCondition(`module startsWith "svc" && acceptedBy == "svc" && levelName == "error" && message contains "42"`))
	require.NoError(t, err)

	reg := logtree.NewRegistry()
	require.NoError(t, reg.GetLogger("svc").SetLevel(level.Warning))
	require.NoError(t, reg.Root().AddWriter(f))

	reg.GetLogger("svc.api").Error("code {code}", "code", 42)
	reg.GetLogger("svc.api").Error("code {code}", "code", 7)
	assert.Equal(t, 1, mem.Count())
}

func TestFilterWriter_Invalid(t *testing.T) {
	t.Parallel()

	mem := NewMemoryWriter(level.Debug)

	_, err := NewFilterWriter(mem, WithModules("app.[db"))
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = NewFilterWriter(mem, WithCondition("level +"))
	assert.ErrorIs(t, err, ErrInvalidCondition)

	_, err = NewFilterWriter(mem, WithCondition(`"not a bool"`))
	assert.ErrorIs(t, err, ErrInvalidCondition)

	_, err = NewFilterWriter(nil)
	assert.ErrorIs(t, err, logtree.ErrInvalidWriter)

	assert.True(t, ValidateModulePattern("a.**.b"))
	assert.False(t, ValidateModulePattern("a.{b"))
}

func TestFilterWriter_NoOptionsPassesAll(t *testing.T) {
	t.Parallel()

	mem := NewMemoryWriter(level.Debug)
	f, err := NewFilterWriter(mem)
	require.NoError(t, err)
	for _, lvl := range level.All() {
		require.NoError(t, f.Write(lvl, strings.Repeat("x", int(lvl)+1), logtree.Context{}))
	}
	assert.Equal(t, 8, mem.Count())
}

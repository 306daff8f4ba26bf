package config

import (
	"log/slog"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logging"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/writer"
)

// writerLevel parses a writer's minimum level; empty means debug.
func writerLevel(wc WriterConfig) (level.Level, error) {
	if wc.Level == "" {
		return level.Debug, nil
	}
	return level.Parse(wc.Level)
}

func patternFormatter(wc WriterConfig) *writer.PatternFormatter {
	f := writer.NewPatternFormatter(wc.Format)
	if wc.DateFormat != "" {
		f.DateLayout = wc.DateFormat
	}
	return f
}

func newStreamWriter(wc WriterConfig, out Outputs) (logtree.Writer, error) {
	lvl, err := writerLevel(wc)
	if err != nil {
		return nil, err
	}
	target, err := out.Target(wc.Target)
	if err != nil {
		return nil, err
	}
	w := writer.NewStreamWriter(target, lvl)
	w.SetFormatter(patternFormatter(wc))
	return w, nil
}

func newFileWriter(wc WriterConfig, _ Outputs) (logtree.Writer, error) {
	lvl, err := writerLevel(wc)
	if err != nil {
		return nil, err
	}
	w, err := writer.NewFileWriter(wc.Path, lvl)
	if err != nil {
		return nil, err
	}
	w.SetFormatter(patternFormatter(wc))
	if wc.ReopenInterval != "" {
		d, err := time.ParseDuration(wc.ReopenInterval)
		if err != nil {
			return nil, err
		}
		w.SetReopenInterval(d)
	}
	return w, nil
}

func newMemoryWriter(wc WriterConfig, _ Outputs) (logtree.Writer, error) {
	lvl, err := writerLevel(wc)
	if err != nil {
		return nil, err
	}
	w := writer.NewMemoryWriter(lvl)
	if wc.Format != "" {
		w.SetFormatter(patternFormatter(wc))
	}
	w.SetCapacity(wc.Capacity)
	return w, nil
}

func newMetricsWriter(wc WriterConfig, out Outputs) (logtree.Writer, error) {
	lvl, err := writerLevel(wc)
	if err != nil {
		return nil, err
	}
	return writer.NewCountingWriter(out.MetricsRegistry(), lvl)
}

// newSlogWriter hands records to a slog logger. The writer level becomes
// the slog handler level, since the external writer itself never filters.
func newSlogWriter(wc WriterConfig, out Outputs) (logtree.Writer, error) {
	lvl, err := writerLevel(wc)
	if err != nil {
		return nil, err
	}
	target, err := out.Target(wc.Target)
	if err != nil {
		return nil, err
	}
	sl := slog.New(logging.NewHandler(logging.Config{
		Level:  logging.ToSlog(lvl),
		Format: logging.ParseFormat(wc.Format),
		Output: target,
	}))
	return writer.NewExternalWriter(writer.SlogDelegate(sl)), nil
}

// newZapWriter hands records to a zap logger writing JSON, or console lines
// for format "text".
func newZapWriter(wc WriterConfig, out Outputs) (logtree.Writer, error) {
	lvl, err := writerLevel(wc)
	if err != nil {
		return nil, err
	}
	target, err := out.Target(wc.Target)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if strings.EqualFold(wc.Format, "text") {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(target), zap.NewAtomicLevelAt(writer.ZapLevel(lvl)))
	return writer.NewExternalWriter(writer.ZapDelegate(zap.New(core))), nil
}

package logging

import (
	"log/slog"

	"github.com/getmockd/logtree/pkg/level"
)

var toSlog = [...]slog.Level{
	level.Debug:     slog.LevelDebug,
	level.Info:      slog.LevelInfo,
	level.Notice:    slog.LevelInfo + 2,
	level.Warning:   slog.LevelWarn,
	level.Error:     slog.LevelError,
	level.Critical:  slog.LevelError + 4,
	level.Alert:     slog.LevelError + 8,
	level.Emergency: slog.LevelError + 12,
}

// ToSlog maps a tree severity onto a slog level.
// Invalid ranks map to slog.LevelInfo.
func ToSlog(lvl level.Level) slog.Level {
	if !lvl.Valid() {
		return slog.LevelInfo
	}
	return toSlog[lvl]
}

// FromSlog maps a slog level onto the most severe tree level whose slog
// value does not exceed it. Anything below slog.LevelDebug is debug.
func FromSlog(l slog.Level) level.Level {
	out := level.Debug
	for i, v := range toSlog {
		if l >= v {
			out = level.Level(i)
		}
	}
	return out
}

package writer

import (
	"fmt"
	"sync"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/template"
)

// Formatter turns a record into the text a writer emits.
type Formatter interface {
	Format(lvl level.Level, msg string, ctx logtree.Context) string
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(lvl level.Level, msg string, ctx logtree.Context) string

// Format calls f.
func (f FormatterFunc) Format(lvl level.Level, msg string, ctx logtree.Context) string {
	return f(lvl, msg, ctx)
}

// Base holds the minimum level and formatter shared by the stock writers.
// The zero value accepts every level and formats by filling placeholders.
type Base struct {
	mu        sync.RWMutex
	min       level.Level
	formatter Formatter
}

// SetLevel sets the minimum level a record needs to be written.
func (b *Base) SetLevel(lvl level.Level) error {
	if !lvl.Valid() {
		return fmt.Errorf("%w: rank %d", level.ErrInvalidLevel, int(lvl))
	}
	b.mu.Lock()
	b.min = lvl
	b.mu.Unlock()
	return nil
}

// MinLevel returns the minimum level.
func (b *Base) MinLevel() level.Level {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.min
}

// LevelEnabled reports whether a record at lvl would be written.
func (b *Base) LevelEnabled(lvl level.Level) bool {
	return lvl.Valid() && lvl >= b.MinLevel()
}

// SetFormatter replaces the formatter. A nil formatter restores plain
// placeholder filling.
func (b *Base) SetFormatter(f Formatter) {
	b.mu.Lock()
	b.formatter = f
	b.mu.Unlock()
}

// Formatter returns the current formatter, which may be nil.
func (b *Base) Formatter() Formatter {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.formatter
}

// Format renders a record with the formatter, or fills the message
// placeholders when none is set.
func (b *Base) Format(lvl level.Level, msg string, ctx logtree.Context) string {
	if f := b.Formatter(); f != nil {
		return f.Format(lvl, msg, ctx)
	}
	return template.Fill(msg, ctx.Fields)
}

// clamp keeps constructor arguments inside the level table.
func clamp(lvl level.Level) level.Level {
	if lvl < level.Debug {
		return level.Debug
	}
	if lvl > level.Emergency {
		return level.Emergency
	}
	return lvl
}

package writer

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/util"
)

// Entry is a record kept by a MemoryWriter.
type Entry struct {
	ID         string      `json:"id"`
	Time       time.Time   `json:"time"`
	Level      level.Level `json:"level"`
	Module     string      `json:"module"`
	AcceptedBy string      `json:"acceptedBy,omitempty"`
	Message    string      `json:"message"`

	// Line is the level name right-aligned to ten columns, a colon and the
	// message, e.g. "   WARNING: disk low".
	Line string `json:"line"`
}

// MemoryWriter keeps accepted records in memory, oldest first.
type MemoryWriter struct {
	Base

	entriesMu  sync.RWMutex
	entries    []Entry
	capacity   int
	maxMessage int
}

// NewMemoryWriter creates an unbounded memory writer.
// Levels outside the table are clamped into it.
func NewMemoryWriter(minLevel level.Level) *MemoryWriter {
	w := &MemoryWriter{}
	_ = w.SetLevel(clamp(minLevel))
	return w
}

// SetCapacity bounds the number of kept entries; the oldest are dropped
// first. Zero or less means unbounded.
func (w *MemoryWriter) SetCapacity(n int) {
	w.entriesMu.Lock()
	defer w.entriesMu.Unlock()
	w.capacity = n
	w.trim()
}

// SetMaxMessageSize caps stored messages. Zero or less uses
// util.MaxMessageSize.
func (w *MemoryWriter) SetMaxMessageSize(n int) {
	w.entriesMu.Lock()
	w.maxMessage = n
	w.entriesMu.Unlock()
}

// Write implements logtree.Writer.
func (w *MemoryWriter) Write(lvl level.Level, msg string, ctx logtree.Context) error {
	if !w.LevelEnabled(lvl) {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("memory writer: generate id: %w", err)
	}
	module, _ := ctx.Origin()
	accepted, _ := ctx.AcceptedBy()
	text := w.Format(lvl, msg, ctx)

	w.entriesMu.Lock()
	defer w.entriesMu.Unlock()

	text = util.Truncate(text, w.maxMessage)
	w.entries = append(w.entries, Entry{
		ID:         id.String(),
		Time:       time.Now(),
		Level:      lvl,
		Module:     module,
		AcceptedBy: accepted,
		Message:    text,
		Line:       fmt.Sprintf("%10s: %s", upperName(lvl), text),
	})
	w.trim()
	return nil
}

// trim drops the oldest entries beyond capacity. Caller holds entriesMu.
func (w *MemoryWriter) trim() {
	if w.capacity <= 0 || len(w.entries) <= w.capacity {
		return
	}
	drop := len(w.entries) - w.capacity
	w.entries = append(w.entries[:0], w.entries[drop:]...)
}

// Entries returns a copy of the kept entries.
func (w *MemoryWriter) Entries() []Entry {
	w.entriesMu.RLock()
	defer w.entriesMu.RUnlock()
	return append([]Entry(nil), w.entries...)
}

// Get returns the entry with the given ID, or nil.
func (w *MemoryWriter) Get(id string) *Entry {
	w.entriesMu.RLock()
	defer w.entriesMu.RUnlock()
	for i := range w.entries {
		if w.entries[i].ID == id {
			e := w.entries[i]
			return &e
		}
	}
	return nil
}

// Lines returns the rendered line of every kept entry.
func (w *MemoryWriter) Lines() []string {
	w.entriesMu.RLock()
	defer w.entriesMu.RUnlock()
	out := make([]string, len(w.entries))
	for i, e := range w.entries {
		out[i] = e.Line
	}
	return out
}

// Count returns the number of kept entries.
func (w *MemoryWriter) Count() int {
	w.entriesMu.RLock()
	defer w.entriesMu.RUnlock()
	return len(w.entries)
}

// Clear removes all entries.
func (w *MemoryWriter) Clear() {
	w.entriesMu.Lock()
	w.entries = nil
	w.entriesMu.Unlock()
}

// Ensure MemoryWriter implements logtree.Writer.
var _ logtree.Writer = (*MemoryWriter)(nil)

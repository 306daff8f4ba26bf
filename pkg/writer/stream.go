package writer

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
)

// StreamWriter writes one formatted line per accepted record to an
// io.Writer.
type StreamWriter struct {
	Base

	writeMu sync.Mutex
	out     io.Writer
}

// NewStreamWriter creates a writer on out with the default pattern.
// Levels outside the table are clamped into it.
func NewStreamWriter(out io.Writer, minLevel level.Level) *StreamWriter {
	w := &StreamWriter{out: out}
	_ = w.SetLevel(clamp(minLevel))
	w.SetFormatter(NewPatternFormatter(DefaultPattern))
	return w
}

// NewStdout creates a StreamWriter on os.Stdout.
func NewStdout(minLevel level.Level) *StreamWriter {
	return NewStreamWriter(os.Stdout, minLevel)
}

// NewStderr creates a StreamWriter on os.Stderr.
func NewStderr(minLevel level.Level) *StreamWriter {
	return NewStreamWriter(os.Stderr, minLevel)
}

// Write implements logtree.Writer.
func (w *StreamWriter) Write(lvl level.Level, msg string, ctx logtree.Context) error {
	if !w.LevelEnabled(lvl) {
		return nil
	}
	line := w.Format(lvl, msg, ctx)

	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	if _, err := io.WriteString(w.out, line+"\n"); err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}
	return nil
}

// Ensure StreamWriter implements logtree.Writer.
var _ logtree.Writer = (*StreamWriter)(nil)

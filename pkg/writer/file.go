package writer

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/util"
)

// DefaultReopenInterval is how long a FileWriter keeps its file open.
const DefaultReopenInterval = 30 * time.Second

var (
	// ErrInvalidPath is returned for empty or traversing file paths.
	ErrInvalidPath = errors.New("invalid log file path")

	// ErrClosed is returned when writing to a closed FileWriter.
	ErrClosed = errors.New("writer is closed")
)

// FileWriter appends formatted lines to a file.
//
// The file is opened on the first write and closed again once it has been
// open for longer than the reopen interval, so a file moved away by log
// rotation is recreated on the next write.
type FileWriter struct {
	Base

	path   string
	reopen time.Duration
	now    func() time.Time

	fileMu sync.Mutex
	file   *os.File
	opened time.Time
	closed bool
}

// NewFileWriter creates a writer for path with the default pattern.
// Levels outside the table are clamped into it.
func NewFileWriter(path string, minLevel level.Level) (*FileWriter, error) {
	cleaned, ok := util.SafeFilePathAllowAbsolute(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	w := &FileWriter{
		path:   cleaned,
		reopen: DefaultReopenInterval,
		now:    time.Now,
	}
	_ = w.SetLevel(clamp(minLevel))
	w.SetFormatter(NewPatternFormatter(DefaultPattern))
	return w, nil
}

// Path returns the cleaned file path.
func (w *FileWriter) Path() string {
	return w.path
}

// SetReopenInterval sets how long the file stays open between reopens.
// Zero or negative values reopen the file on every write.
func (w *FileWriter) SetReopenInterval(d time.Duration) {
	w.fileMu.Lock()
	w.reopen = d
	w.fileMu.Unlock()
}

// Write implements logtree.Writer.
func (w *FileWriter) Write(lvl level.Level, msg string, ctx logtree.Context) error {
	if !w.LevelEnabled(lvl) {
		return nil
	}
	line := w.Format(lvl, msg, ctx)

	w.fileMu.Lock()
	defer w.fileMu.Unlock()

	if w.closed {
		return fmt.Errorf("file writer %s: %w", w.path, ErrClosed)
	}

	now := w.now()
	if w.file != nil && now.Sub(w.opened) >= w.reopen {
		_ = w.file.Close()
		w.file = nil
	}
	if w.file == nil {
		file, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("file writer: failed to open log file: %w", err)
		}
		w.file = file
		w.opened = now
	}

	if _, err := w.file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("file writer: failed to write %s: %w", w.path, err)
	}
	return nil
}

// Close flushes and closes the file. Further writes fail with ErrClosed.
func (w *FileWriter) Close() error {
	w.fileMu.Lock()
	defer w.fileMu.Unlock()

	w.closed = true
	if w.file == nil {
		return nil
	}

	// Close even if the sync fails.
	_ = w.file.Sync()

	err := w.file.Close()
	w.file = nil
	return err
}

// Ensure FileWriter implements logtree.Writer.
var _ logtree.Writer = (*FileWriter)(nil)

package logtree

import (
	"fmt"

	"github.com/getmockd/logtree/pkg/level"
)

// Writer receives records delivered by a Logger.
//
// A Logger calls Write for every record that reaches it; the writer applies
// its own threshold. LevelEnabled is used for side-effect-free predictions
// and must agree with what Write would emit. Implementations must be safe
// for concurrent use.
type Writer interface {
	Write(lvl level.Level, msg string, ctx Context) error
	LevelEnabled(lvl level.Level) bool
}

// WriterFunc adapts a plain function to the Writer interface.
// It accepts every level.
type WriterFunc func(lvl level.Level, msg string, ctx Context) error

// Write calls f.
func (f WriterFunc) Write(lvl level.Level, msg string, ctx Context) error {
	return f(lvl, msg, ctx)
}

// LevelEnabled always returns true.
func (f WriterFunc) LevelEnabled(level.Level) bool {
	return true
}

// Ensure WriterFunc implements Writer.
var _ Writer = WriterFunc(nil)

// AsWriter converts a writer or a callback into a Writer.
// Accepted values are a Writer, a func(level.Level, string, Context) error
// and a func(level.Level, string, Context). Anything else, including nil,
// returns ErrInvalidWriter.
func AsWriter(v any) (Writer, error) {
	switch w := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrInvalidWriter)
	case WriterFunc:
		if w == nil {
			return nil, fmt.Errorf("%w: nil func", ErrInvalidWriter)
		}
		return w, nil
	case Writer:
		return w, nil
	case func(level.Level, string, Context) error:
		if w == nil {
			return nil, fmt.Errorf("%w: nil func", ErrInvalidWriter)
		}
		return WriterFunc(w), nil
	case func(level.Level, string, Context):
		if w == nil {
			return nil, fmt.Errorf("%w: nil func", ErrInvalidWriter)
		}
		return WriterFunc(func(lvl level.Level, msg string, ctx Context) error {
			w(lvl, msg, ctx)
			return nil
		}), nil
	default:
		return nil, fmt.Errorf("%w: %T does not implement Writer", ErrInvalidWriter, v)
	}
}

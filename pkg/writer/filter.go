package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/template"
)

var (
	// ErrInvalidPattern is returned for malformed module patterns.
	ErrInvalidPattern = errors.New("invalid module pattern")

	// ErrInvalidCondition is returned when a filter condition does not
	// compile to a boolean expression.
	ErrInvalidCondition = errors.New("invalid filter condition")
)

// FilterOption configures a FilterWriter.
type FilterOption func(*FilterWriter) error

// WithModules restricts the writer to records logged on modules matching
// any of the patterns. Patterns are globs over dotted module names: "*"
// matches one segment and "**" any number of them, so "app.**" matches
// everything below "app".
func WithModules(patterns ...string) FilterOption {
	return func(f *FilterWriter) error {
		for _, p := range patterns {
			glob := modulePath(p)
			if !doublestar.ValidatePattern(glob) {
				return fmt.Errorf("%w: %q", ErrInvalidPattern, p)
			}
			f.patterns = append(f.patterns, glob)
		}
		return nil
	}
}

// WithCondition restricts the writer to records for which the expression
// is true. The expression sees
//
//	level       int, the level rank
//	levelName   string
//	module      string, the module the record was logged on
//	message     string, with placeholders filled
//	acceptedBy  string, empty when no logger has accepted the record
//	fields      map[string]any
func WithCondition(expression string) FilterOption {
	return func(f *FilterWriter) error {
		program, err := CompileCondition(expression)
		if err != nil {
			return err
		}
		f.condition = expression
		f.program = program
		return nil
	}
}

// CompileCondition compiles a filter condition.
func CompileCondition(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(conditionEnv(0, "", "", logtree.Context{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCondition, err)
	}
	return program, nil
}

// ValidateModulePattern reports whether p is a well-formed module pattern.
func ValidateModulePattern(p string) bool {
	return doublestar.ValidatePattern(modulePath(p))
}

// FilterWriter forwards records that pass its module patterns and condition
// to an inner writer.
type FilterWriter struct {
	inner     logtree.Writer
	patterns  []string
	condition string
	program   *vm.Program
}

// NewFilterWriter wraps inner. Without options every record passes.
func NewFilterWriter(inner logtree.Writer, opts ...FilterOption) (*FilterWriter, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: nil inner writer", logtree.ErrInvalidWriter)
	}
	f := &FilterWriter{inner: inner}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Inner returns the wrapped writer.
func (f *FilterWriter) Inner() logtree.Writer {
	return f.inner
}

// Write implements logtree.Writer.
func (f *FilterWriter) Write(lvl level.Level, msg string, ctx logtree.Context) error {
	ok, err := f.Match(lvl, msg, ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return f.inner.Write(lvl, msg, ctx)
}

// LevelEnabled implements logtree.Writer. Patterns and conditions depend on
// the record, so only the inner writer's threshold is consulted.
func (f *FilterWriter) LevelEnabled(lvl level.Level) bool {
	return f.inner.LevelEnabled(lvl)
}

// Match reports whether a record passes the filter.
func (f *FilterWriter) Match(lvl level.Level, msg string, ctx logtree.Context) (bool, error) {
	module, _ := ctx.Origin()
	if len(f.patterns) > 0 && !f.matchModule(module) {
		return false, nil
	}
	if f.program == nil {
		return true, nil
	}

	out, err := expr.Run(f.program, conditionEnv(lvl, module, msg, ctx))
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", f.condition, err)
	}
	pass, _ := out.(bool)
	return pass, nil
}

func (f *FilterWriter) matchModule(module string) bool {
	name := modulePath(module)
	for _, p := range f.patterns {
		// Patterns were validated, so Match cannot fail.
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

func conditionEnv(lvl level.Level, module, msg string, ctx logtree.Context) map[string]any {
	accepted, _ := ctx.AcceptedBy()
	return map[string]any{
		"level":      int(lvl),
		"levelName":  lvl.String(),
		"module":     module,
		"message":    template.Fill(msg, ctx.Fields),
		"acceptedBy": accepted,
		"fields":     ctx.Map(),
	}
}

// modulePath turns a dotted module name into the slash form doublestar
// expects.
func modulePath(module string) string {
	return strings.ReplaceAll(module, ".", "/")
}

// Ensure FilterWriter implements logtree.Writer.
var _ logtree.Writer = (*FilterWriter)(nil)

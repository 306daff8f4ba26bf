package logtree

import (
	"log/slog"
	"sort"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/template"
)

// Field is a caller-supplied context value.
type Field = template.Field

// badKey is used for a trailing value without a key, as log/slog does.
const badKey = "!BADKEY"

// Context accompanies a record on its way up the tree.
//
// Fields hold caller data in insertion order. Origin and acceptance are kept
// apart from Fields so that no caller key can collide with them. Both are
// set at most once and then carried unchanged while the record bubbles.
// Context is a value type; treat Fields as read-only once logged.
type Context struct {
	Fields []Field

	origin      string
	originLevel level.Level
	hasOrigin   bool

	acceptedBy string
	accepted   bool
}

// NewContext builds a Context from alternating key/value pairs. Field and
// slog.Attr arguments are taken as complete pairs, mirroring slog's
// argument handling.
func NewContext(args ...any) Context {
	var c Context
	c.Fields = appendArgs(nil, args)
	return c
}

// ContextFromMap builds a Context from a map. Keys are sorted so placeholder
// rendering is deterministic.
func ContextFromMap(m map[string]any) Context {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]Field, len(keys))
	for i, k := range keys {
		fields[i] = Field{Key: k, Value: m[k]}
	}
	return Context{Fields: fields}
}

// With returns a copy of c with extra fields appended. The receiver's field
// slice is never modified.
func (c Context) With(args ...any) Context {
	out := c
	out.Fields = appendArgs(append([]Field(nil), c.Fields...), args)
	return out
}

// Get returns the first field with the given key.
func (c Context) Get(key string) (any, bool) {
	for _, f := range c.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Map returns the fields as a map. Earlier fields win over later duplicates.
func (c Context) Map() map[string]any {
	m := make(map[string]any, len(c.Fields))
	for _, f := range c.Fields {
		if _, ok := m[f.Key]; !ok {
			m[f.Key] = f.Value
		}
	}
	return m
}

// Origin returns the module the record was first logged on.
func (c Context) Origin() (string, bool) {
	return c.origin, c.hasOrigin
}

// OriginLevel returns the level the record was first logged with.
func (c Context) OriginLevel() (level.Level, bool) {
	return c.originLevel, c.hasOrigin
}

// AcceptedBy returns the module of the first opinionated logger that
// accepted the record.
func (c Context) AcceptedBy() (string, bool) {
	return c.acceptedBy, c.accepted
}

func (c Context) withOrigin(module string, lvl level.Level) Context {
	if c.hasOrigin {
		return c
	}
	c.origin = module
	c.originLevel = lvl
	c.hasOrigin = true
	return c
}

func (c Context) withAcceptedBy(module string) Context {
	if c.accepted {
		return c
	}
	c.acceptedBy = module
	c.accepted = true
	return c
}

func appendArgs(fields []Field, args []any) []Field {
	for len(args) > 0 {
		switch a := args[0].(type) {
		case Field:
			fields = append(fields, a)
			args = args[1:]
		case slog.Attr:
			fields = append(fields, Field{Key: a.Key, Value: a.Value.Any()})
			args = args[1:]
		case string:
			if len(args) == 1 {
				fields = append(fields, Field{Key: badKey, Value: a})
				args = args[1:]
				continue
			}
			fields = append(fields, Field{Key: a, Value: args[1]})
			args = args[2:]
		default:
			fields = append(fields, Field{Key: badKey, Value: a})
			args = args[1:]
		}
	}
	return fields
}

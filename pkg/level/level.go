// Package level defines the ordered severity table shared by loggers and writers.
//
// Eight severities are recognised, from debug (rank 0) to emergency (rank 7).
// A record is at least as severe as a threshold iff its rank is greater than
// or equal to the threshold's rank.
package level

import (
	"errors"
	"fmt"
	"strings"
)

// Level is the numeric rank of a severity.
type Level int

// Severity ranks, lowest first.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
	Critical
	Alert
	Emergency
)

// ErrInvalidLevel is returned for names or ranks outside the table.
var ErrInvalidLevel = errors.New("invalid log level")

var names = [...]string{
	Debug:     "debug",
	Info:      "info",
	Notice:    "notice",
	Warning:   "warning",
	Error:     "error",
	Critical:  "critical",
	Alert:     "alert",
	Emergency: "emergency",
}

// aliases maps accepted alternative spellings onto a canonical name.
var aliases = map[string]Level{
	"warn": Warning,
}

// All returns every level in ascending rank order.
func All() []Level {
	out := make([]Level, len(names))
	for i := range names {
		out[i] = Level(i)
	}
	return out
}

// Names returns the canonical level names in ascending rank order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names[:])
	return out
}

// Parse looks up a level by name. Matching is case-insensitive and ignores
// surrounding whitespace.
func Parse(name string) (Level, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == key {
			return Level(i), nil
		}
	}
	if l, ok := aliases[key]; ok {
		return l, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}

// MustParse is like Parse but panics on unknown names.
// Intended for package-level variables and tests.
func MustParse(name string) Level {
	l, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return l
}

// Rank returns the rank of a level name, or 0 (debug) when the name is unknown.
// Writers use it for minimum-level lookups where an unknown name should
// simply let everything through.
func Rank(name string) int {
	l, err := Parse(name)
	if err != nil {
		return 0
	}
	return int(l)
}

// Valid reports whether l is a rank in the table.
func (l Level) Valid() bool {
	return l >= Debug && l <= Emergency
}

// AtLeast reports whether l is at least as severe as threshold.
func (l Level) AtLeast(threshold Level) bool {
	return l >= threshold
}

// String returns the canonical lowercase name.
func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return names[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: rank %d", ErrInvalidLevel, int(l))
	}
	return []byte(names[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

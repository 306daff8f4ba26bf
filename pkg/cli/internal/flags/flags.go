// Package flags provides reusable flag types for CLI commands.
package flags

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/getmockd/logtree/pkg/level"
)

var (
	_ pflag.Value = (*StringSlice)(nil)
	_ pflag.Value = (*Level)(nil)
)

// StringSlice implements pflag.Value for repeatable string flags.
type StringSlice []string

// String returns the string representation of the flag value.
func (s *StringSlice) String() string {
	return strings.Join(*s, ",")
}

// Set appends a value to the slice.
func (s *StringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Type specifies the type label for Cobra flags.
func (s *StringSlice) Type() string {
	return "stringSlice"
}

// Level implements pflag.Value for syslog level names. Parsing happens in
// Set so a bad name fails during flag parsing.
type Level level.Level

// String returns the level name.
func (l *Level) String() string {
	return level.Level(*l).String()
}

// Set parses a level name.
func (l *Level) Set(value string) error {
	lvl, err := level.Parse(value)
	if err != nil {
		return err
	}
	*l = Level(lvl)
	return nil
}

// Type specifies the type label for Cobra flags.
func (l *Level) Type() string {
	return "level"
}

// Get returns the parsed level.
func (l *Level) Get() level.Level {
	return level.Level(*l)
}

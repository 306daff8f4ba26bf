package writer

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/template"
)

// DefaultPattern is the line layout used by the stream and file writers.
const DefaultPattern = "[%DATE%][%MODULE%] %LEVEL%: %MESSAGE%"

// PatternFormatter renders records through a pattern with the tokens
//
//	%DATE%     current time in DateLayout
//	%MODULE%   module the record was logged on
//	%LEVEL%    upper-cased level name
//	%MESSAGE%  message with placeholders filled
//	%ACCEPTED% module of the logger that accepted the record, if any
//
// Tokens are replaced in a single pass, so token text inside a message is
// left alone.
type PatternFormatter struct {
	Pattern    string
	DateLayout string

	// Now returns the timestamp for %DATE%. Defaults to time.Now.
	Now func() time.Time
}

// NewPatternFormatter creates a formatter with RFC 3339 dates.
// An empty pattern means DefaultPattern.
func NewPatternFormatter(pattern string) *PatternFormatter {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &PatternFormatter{Pattern: pattern, DateLayout: time.RFC3339}
}

// Format implements Formatter.
func (f *PatternFormatter) Format(lvl level.Level, msg string, ctx logtree.Context) string {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	layout := f.DateLayout
	if layout == "" {
		layout = time.RFC3339
	}
	module, _ := ctx.Origin()
	accepted, _ := ctx.AcceptedBy()

	r := strings.NewReplacer(
		"%DATE%", now().Format(layout),
		"%MODULE%", module,
		"%LEVEL%", upperName(lvl),
		"%MESSAGE%", template.Fill(msg, ctx.Fields),
		"%ACCEPTED%", accepted,
	)
	return r.Replace(f.Pattern)
}

// upperName returns the level name in upper case. A Caser keeps state, so
// one is created per call instead of being shared.
func upperName(lvl level.Level) string {
	return cases.Upper(language.Und).String(lvl.String())
}

package template

import (
	"sort"
	"strings"
)

// Field is a single key/value pair available to a template.
type Field struct {
	Key   string
	Value any
}

// Fill replaces {key} placeholders in tmpl with the rendered field values.
//
// The template is scanned once from left to right. Text produced by a
// substitution is never scanned again, neither for its own key nor for
// any other key.
func Fill(tmpl string, fields []Field) string {
	if len(fields) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := index[f.Key]; !dup {
			index[f.Key] = i
		}
	}

	// Values are rendered lazily and at most once per key.
	rendered := make(map[int]string)

	var b strings.Builder
	b.Grow(len(tmpl))
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			break
		}
		closeAt, key, ok := placeholderAt(tmpl, open)
		if !ok {
			// No closing brace anywhere after this point.
			break
		}
		if closeAt < 0 {
			// Another '{' came first: emit up to it and retry from there.
			next := open + 1 + strings.IndexByte(tmpl[open+1:], '{')
			b.WriteString(tmpl[:next])
			tmpl = tmpl[next:]
			continue
		}

		i, found := index[key]
		if !found {
			b.WriteString(tmpl[:closeAt+1])
			tmpl = tmpl[closeAt+1:]
			continue
		}
		s, done := rendered[i]
		if !done {
			s = Stringify(fields[i].Value)
			rendered[i] = s
		}
		b.WriteString(tmpl[:open])
		b.WriteString(s)
		tmpl = tmpl[closeAt+1:]
	}
	b.WriteString(tmpl)
	return b.String()
}

// placeholderAt inspects the candidate placeholder opening at s[open].
// It returns the index of the closing brace and the key between the braces.
// closeAt is -1 when another '{' appears before the next '}'; ok is false
// when there is no '}' after open at all.
func placeholderAt(s string, open int) (closeAt int, key string, ok bool) {
	rest := s[open+1:]
	c := strings.IndexByte(rest, '}')
	if c < 0 {
		return 0, "", false
	}
	if o := strings.IndexByte(rest[:c], '{'); o >= 0 {
		return -1, "", true
	}
	return open + 1 + c, rest[:c], true
}

// FillMap is Fill for an unordered map. Keys are applied in sorted order so
// output is deterministic.
func FillMap(tmpl string, values map[string]any) string {
	if len(values) == 0 {
		return tmpl
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]Field, len(keys))
	for i, k := range keys {
		fields[i] = Field{Key: k, Value: values[k]}
	}
	return Fill(tmpl, fields)
}

package template

import (
	"errors"
	"os"
	"testing"
	"time"
)

type dummy struct{}

func (dummy) String() string { return "DUMMY" }

func TestFill(t *testing.T) {
	tests := []struct {
		name     string
		template string
		fields   []Field
		expected string
	}{
		{
			name:     "plain text is unchanged",
			template: "plain text",
			fields:   []Field{{"name", "Bob"}, {"n", 1}},
			expected: "plain text",
		},
		{
			name:     "single placeholder",
			template: "Hello {name}",
			fields:   []Field{{"name", "Bob"}},
			expected: "Hello Bob",
		},
		{
			name:     "missing key left verbatim",
			template: "Hello {missing}",
			fields:   []Field{{"name", "Bob"}},
			expected: "Hello {missing}",
		},
		{
			name:     "every occurrence replaced",
			template: "{a}-{a}-{a}",
			fields:   []Field{{"a", "x"}},
			expected: "x-x-x",
		},
		{
			name:     "nested braces and dotted keys",
			template: "{Message {nothing} {user} {foo.bar} a}",
			fields:   []Field{{"user", "Bob"}, {"foo.bar", "Bar"}},
			expected: "{Message {nothing} Bob Bar a}",
		},
		{
			name:     "value containing its own placeholder",
			template: "<{loop}>",
			fields:   []Field{{"loop", "{loop}{loop}"}},
			expected: "<{loop}{loop}>",
		},
		{
			name:     "value containing another placeholder is not rescanned",
			template: "{a} {b}",
			fields:   []Field{{"a", "{b}"}, {"b", "B"}},
			expected: "{b} B",
		},
		{
			name:     "first duplicate key wins",
			template: "{k} and {k}",
			fields:   []Field{{"k", "first"}, {"k", "second"}},
			expected: "first and first",
		},
		{
			name:     "unterminated brace",
			template: "open { brace {name",
			fields:   []Field{{"name", "Bob"}},
			expected: "open { brace {name",
		},
		{
			name:     "no fields",
			template: "Hello {name}",
			expected: "Hello {name}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fill(tt.template, tt.fields)
			if got != tt.expected {
				t.Errorf("Fill(%q) = %q, want %q", tt.template, got, tt.expected)
			}
		})
	}
}

func TestFillMap(t *testing.T) {
	got := FillMap("{b} {a} {c}", map[string]any{"a": 1, "b": true, "c": nil})
	if got != "true 1 null" {
		t.Errorf("FillMap() = %q", got)
	}
	if got := FillMap("x", nil); got != "x" {
		t.Errorf("FillMap(nil) = %q", got)
	}
}

func TestStringify(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "res")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var nilPtr *int
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"string", "Foo", "Foo"},
		{"int", 0, "0"},
		{"int64", int64(-42), "-42"},
		{"uint8", uint8(7), "7"},
		{"float", 0.5, "0.5"},
		{"bytes", []byte("raw"), "raw"},
		{"time", when, "2024-03-01T12:00:00Z"},
		{"error", errors.New("oops"), "oops"},
		{"stringer", dummy{}, "DUMMY"},
		{"slice", []int{1, 2}, "[1,2]"},
		{"map", map[string]any{"with object": "x"}, `{"with object":"x"}`},
		{"nil pointer", nilPtr, "null"},
		{"resource", f, Unprintable},
		{"channel", make(chan int), Unprintable},
		{"func", func() {}, Unprintable},
		{"map with func", map[string]any{"f": func() {}}, Unprintable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.value); got != tt.expected {
				t.Errorf("Stringify(%v) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestFill_CrazyContextDoesNotFail(t *testing.T) {
	fields := []Field{
		{"bool", true},
		{"null", nil},
		{"string", "Foo"},
		{"int", 0},
		{"float", 0.5},
		{"nested", map[string]any{"with object": dummy{}}},
		{"object", time.Now()},
		{"resource", make(chan struct{})},
	}
	if got := Fill("Crazy context data", fields); got != "Crazy context data" {
		t.Errorf("Fill() = %q", got)
	}
	if got := Fill("{resource}/{bool}", fields); got != Unprintable+"/true" {
		t.Errorf("Fill() = %q", got)
	}
}

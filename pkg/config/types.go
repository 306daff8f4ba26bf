package config

// Config is the root of a logger tree configuration.
type Config struct {
	// AcceptMode is "most-specific" (default) or "most-generic".
	AcceptMode string `json:"acceptMode,omitempty" yaml:"acceptMode,omitempty"`

	Loggers []LoggerConfig `json:"loggers,omitempty" yaml:"loggers,omitempty"`
}

// LoggerConfig configures one logger of the tree.
type LoggerConfig struct {
	// Module is the logger's module name. Empty or "root" is the root.
	Module string `json:"module" yaml:"module"`

	// Level makes the logger opinionated. Empty keeps it transparent.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	Writers []WriterConfig `json:"writers,omitempty" yaml:"writers,omitempty"`
}

// WriterConfig describes a writer. Which fields apply depends on Type.
type WriterConfig struct {
	// Type selects the writer factory: stream, file, memory, slog, zap or
	// any type added with RegisterWriterType.
	Type string `json:"type" yaml:"type"`

	// Target is "stdout" (default) or "stderr" for stream, slog and zap
	// writers.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// Path is the log file of a file writer.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Level is the writer's minimum level. Defaults to debug.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is a PatternFormatter pattern.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// DateFormat is the Go time layout used for %DATE%.
	DateFormat string `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty"`

	// ReopenInterval is a Go duration such as "30s" for file writers.
	ReopenInterval string `json:"reopenInterval,omitempty" yaml:"reopenInterval,omitempty"`

	// Capacity bounds a memory writer. Zero is unbounded.
	Capacity int `json:"capacity,omitempty" yaml:"capacity,omitempty"`

	// Modules restricts the writer to modules matching these globs.
	Modules []string `json:"modules,omitempty" yaml:"modules,omitempty"`

	// Filter is an expression the record must satisfy.
	Filter string `json:"filter,omitempty" yaml:"filter,omitempty"`

	// Options carries settings for custom writer types.
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

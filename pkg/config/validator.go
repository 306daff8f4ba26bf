package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/util"
	"github.com/getmockd/logtree/pkg/writer"
)

// ConfigError is a single configuration problem.
type ConfigError struct {
	Path    string `json:"path,omitempty"` // Config path, e.g. "loggers[0].writers[1].level"
	Message string `json:"message"`
}

func (e ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationResult collects every problem found in a configuration.
type ValidationResult struct {
	Errors []ConfigError
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Err returns r as an error, or nil when it holds no errors.
func (r *ValidationResult) Err() error {
	if r.IsValid() {
		return nil
	}
	return r
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, ConfigError{Path: path, Message: message})
}

// validTargets are the stream targets understood by the built-in writers.
var validTargets = map[string]bool{
	"":       true,
	"stdout": true,
	"stderr": true,
}

// validEncodings are the output formats of the slog and zap writers.
var validEncodings = map[string]bool{
	"":     true,
	"text": true,
	"json": true,
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}

	if c.AcceptMode != "" {
		if _, err := logtree.ParseAcceptMode(c.AcceptMode); err != nil {
			result.AddError("acceptMode", fmt.Sprintf("unknown accept mode %q, expected most-specific or most-generic", c.AcceptMode))
		}
	}

	modules := make(map[string]string)
	for i, lc := range c.Loggers {
		path := fmt.Sprintf("loggers[%d]", i)

		module := logtree.NormalizeModule(lc.Module)
		if prev, dup := modules[module]; dup {
			result.AddError(path+".module", fmt.Sprintf("duplicate module %q (already configured at %s)", displayModule(module), prev))
		} else {
			modules[module] = path
		}

		if lc.Level != "" {
			validateLevel(lc.Level, path+".level", result)
		}

		for j, wc := range lc.Writers {
			validateWriter(&wc, fmt.Sprintf("%s.writers[%d]", path, j), result)
		}
	}

	return result
}

func validateLevel(name, path string, result *ValidationResult) {
	if _, err := level.Parse(name); err != nil {
		result.AddError(path, fmt.Sprintf("unknown level %q, expected one of %s", name, strings.Join(level.Names(), ", ")))
	}
}

func validateWriter(wc *WriterConfig, path string, result *ValidationResult) {
	if _, ok := LookupWriterType(wc.Type); !ok {
		result.AddError(path+".type", fmt.Sprintf("unknown writer type %q, expected one of %s", wc.Type, strings.Join(WriterTypes(), ", ")))
	}

	if wc.Level != "" {
		validateLevel(wc.Level, path+".level", result)
	}
	if wc.Capacity < 0 {
		result.AddError(path+".capacity", "must not be negative")
	}
	if wc.ReopenInterval != "" {
		d, err := time.ParseDuration(wc.ReopenInterval)
		if err != nil {
			result.AddError(path+".reopenInterval", fmt.Sprintf("invalid duration %q", wc.ReopenInterval))
		} else if d < 0 {
			result.AddError(path+".reopenInterval", "must not be negative")
		}
	}
	for k, p := range wc.Modules {
		if !writer.ValidateModulePattern(p) {
			result.AddError(fmt.Sprintf("%s.modules[%d]", path, k), fmt.Sprintf("invalid module pattern %q", p))
		}
	}
	if wc.Filter != "" {
		if _, err := writer.CompileCondition(wc.Filter); err != nil {
			result.AddError(path+".filter", err.Error())
		}
	}

	switch wc.Type {
	case TypeStream:
		validateTarget(wc.Target, path, result)
	case TypeSlog, TypeZap:
		validateTarget(wc.Target, path, result)
		if !validEncodings[strings.ToLower(wc.Format)] {
			result.AddError(path+".format", fmt.Sprintf("unknown format %q, expected text or json", wc.Format))
		}
	case TypeFile:
		if wc.Path == "" {
			result.AddError(path+".path", "required for file writer")
		} else if _, ok := util.SafeFilePathAllowAbsolute(wc.Path); !ok {
			result.AddError(path+".path", fmt.Sprintf("unsafe file path %q", wc.Path))
		}
	}
}

func validateTarget(target, path string, result *ValidationResult) {
	if !validTargets[strings.ToLower(target)] {
		result.AddError(path+".target", fmt.Sprintf("unknown target %q, expected stdout or stderr", target))
	}
}

func displayModule(module string) string {
	if module == "" {
		return "root"
	}
	return module
}

package metrics

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"
)

// Registry holds all registered metrics.
type Registry struct {
	mu      sync.RWMutex
	metrics []Metric
	byName  map[string]Metric
}

// NewRegistry creates a new metric registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Metric),
	}
}

// NewCounter creates and registers a new counter.
// It panics if a metric with the same name is already registered,
// since duplicate metric names produce invalid Prometheus output.
func (r *Registry) NewCounter(name, help string, labels ...string) *Counter {
	c := newCounter(name, help, labels)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; exists {
		panic(fmt.Sprintf("%s: %s", ErrDuplicateMetric, name))
	}
	r.register(c)
	return c
}

// Counter returns the counter registered under name, creating it on first
// use. Asking for an existing name with different labels is an error.
func (r *Registry) Counter(name, help string, labels ...string) (*Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, exists := r.byName[name]; exists {
		c, ok := m.(*Counter)
		if !ok || !slices.Equal(c.labelNames, labels) {
			return nil, fmt.Errorf("%w: %s registered with other labels", ErrDuplicateMetric, name)
		}
		return c, nil
	}
	c := newCounter(name, help, labels)
	r.register(c)
	return c, nil
}

// register adds a metric. The caller holds r.mu.
func (r *Registry) register(m Metric) {
	r.byName[m.Name()] = m
	r.metrics = append(r.metrics, m)
}

// Metrics returns the registered metrics in registration order.
func (r *Registry) Metrics() []Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.metrics)
}

// WriteText writes every metric with at least one sample in Prometheus text
// format.
func (r *Registry) WriteText(w io.Writer) error {
	for _, m := range r.Metrics() {
		if err := writeMetric(w, m); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns an http.Handler that serves the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_ = r.WriteText(w)
	})
}

// writeMetric writes a single metric in Prometheus text format.
func writeMetric(w io.Writer, m Metric) error {
	samples := m.Collect()
	if len(samples) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# HELP %s %s\n", m.Name(), escapeHelp(m.Help()))
	fmt.Fprintf(&b, "# TYPE %s %s\n", m.Name(), m.Type())
	for _, s := range samples {
		if len(s.Labels) == 0 {
			fmt.Fprintf(&b, "%s %s\n", s.Name, formatFloat(s.Value))
		} else {
			fmt.Fprintf(&b, "%s{%s} %s\n", s.Name, formatLabels(s.Labels), formatFloat(s.Value))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// formatLabels formats labels as key="value",key="value"
func formatLabels(labels map[string]string) string {
	// Sort keys for deterministic output
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + `="` + escapeLabelValue(labels[k]) + `"`
	}
	return strings.Join(parts, ",")
}

// formatFloat formats a float64 for Prometheus output.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	// Use %g for compact representation, but ensure integer values have decimal
	s := fmt.Sprintf("%g", v)
	// Prometheus prefers explicit format for whole numbers
	if v == float64(int64(v)) && !strings.Contains(s, ".") && !strings.Contains(s, "e") {
		return fmt.Sprintf("%.0f", v)
	}
	return s
}

// escapeHelp escapes help text for Prometheus format.
func escapeHelp(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// escapeLabelValue escapes label values for Prometheus format.
func escapeLabelValue(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

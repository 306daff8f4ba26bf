// Package metrics provides Prometheus-compatible counters for logger trees.
//
// This package implements the Prometheus text exposition format (text/plain; version=0.0.4)
// using only the standard library. Counters are thread-safe and can be
// updated from multiple goroutines.
//
// # Usage
//
//	registry := metrics.NewRegistry()
//	counter := registry.NewCounter("my_counter", "Description of counter", "label1", "label2")
//	vec, _ := counter.WithLabels("value1", "value2")
//	_ = vec.Inc()
//
//	// Print the current values
//	_ = registry.WriteText(os.Stderr)
//
//	// Or serve them
//	http.Handle("/metrics", registry.Handler())
//
// The writer package counts delivered log records into a registry with its
// CountingWriter, labelled by origin module and level.
package metrics

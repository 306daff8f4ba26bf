package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/metrics"
)

// Built-in writer types.
const (
	TypeStream  = "stream"
	TypeFile    = "file"
	TypeMemory  = "memory"
	TypeSlog    = "slog"
	TypeZap     = "zap"
	TypeMetrics = "metrics"
)

// Outputs are the destinations writers may target.
type Outputs struct {
	Stdout io.Writer
	Stderr io.Writer

	// Metrics receives the counts of metrics writers. Nil means
	// metrics.DefaultRegistry().
	Metrics *metrics.Registry
}

// MetricsRegistry resolves the registry metrics writers count into.
func (o Outputs) MetricsRegistry() *metrics.Registry {
	if o.Metrics == nil {
		return metrics.DefaultRegistry()
	}
	return o.Metrics
}

// Target resolves "stdout" (also the default) or "stderr".
func (o Outputs) Target(name string) (io.Writer, error) {
	switch strings.ToLower(name) {
	case "", "stdout":
		if o.Stdout == nil {
			return os.Stdout, nil
		}
		return o.Stdout, nil
	case "stderr":
		if o.Stderr == nil {
			return os.Stderr, nil
		}
		return o.Stderr, nil
	default:
		return nil, fmt.Errorf("unknown target %q", name)
	}
}

// WriterFactory builds a writer from its configuration. Module patterns and
// filter conditions are applied by Apply around the returned writer, so
// factories can ignore WriterConfig.Modules and WriterConfig.Filter.
type WriterFactory func(wc WriterConfig, out Outputs) (logtree.Writer, error)

var (
	registryMu  sync.RWMutex
	writerTypes = make(map[string]WriterFactory)
)

// RegisterWriterType makes a writer type available to configurations.
// Registering an existing name replaces its factory.
func RegisterWriterType(name string, factory WriterFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	writerTypes[name] = factory
}

// LookupWriterType returns the factory registered for name.
func LookupWriterType(name string) (WriterFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := writerTypes[name]
	return f, ok
}

// WriterTypes returns the registered type names, sorted.
func WriterTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(writerTypes))
	for name := range writerTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterWriterType(TypeStream, newStreamWriter)
	RegisterWriterType(TypeFile, newFileWriter)
	RegisterWriterType(TypeMemory, newMemoryWriter)
	RegisterWriterType(TypeSlog, newSlogWriter)
	RegisterWriterType(TypeZap, newZapWriter)
	RegisterWriterType(TypeMetrics, newMetricsWriter)
}

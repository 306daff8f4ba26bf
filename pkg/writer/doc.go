// Package writer provides the stock logtree.Writer implementations.
//
// Writers built on Base carry their own minimum level and an optional
// Formatter:
//
//   - StreamWriter writes one formatted line per record to an io.Writer
//   - FileWriter appends to a file and periodically reopens it so that
//     external log rotation is picked up
//   - MemoryWriter keeps records in memory for tests and inspection
//
// ExternalWriter hands records to another logging library (slog or zap)
// without filtering them, and FilterWriter wraps any writer with module
// glob patterns and an expression condition.
package writer

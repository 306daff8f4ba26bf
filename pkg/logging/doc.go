// Package logging configures the diagnostics logger used by logtree itself.
//
// This package wraps log/slog. The registry reports writer faults it cannot
// return to a caller on a *slog.Logger, and the CLI reports its own progress
// the same way. It also maps between logtree severities and slog levels.
//
// # Usage
//
//	diag := logging.New(logging.Config{
//	    Level:  logging.LevelWarn,
//	    Format: logging.FormatJSON,
//	})
//	reg := logtree.NewRegistry(logtree.WithDiagnostics(diag))
//
// # Level mapping
//
// slog has four named levels; the tree has eight. ToSlog places the extra
// severities between and above them (notice = 2, critical = 12, alert = 16,
// emergency = 20) so ordering is preserved in both directions.
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via a setter.
// If no logger is provided, use logging.Nop() for a no-op logger.
package logging

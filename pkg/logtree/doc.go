// Package logtree implements a tree of module-scoped loggers.
//
// Loggers are named by dotted module paths ("app.db.pool"). The empty name
// is the root. Each logger may carry a severity threshold and any number of
// writers. A record logged on one logger is handed to its writers and then to
// every ancestor in turn, ending at the root.
//
// # Usage
//
//	reg := logtree.NewRegistry()
//	db := reg.GetLogger("app.db")
//	_ = db.SetLevel(level.Info)
//	_ = db.AddWriter(writer.NewStderr(level.Debug))
//
//	db.Info("connected to {host}", "host", "db-1")
//
// # Thresholds and accept modes
//
// A logger without a level is transparent and never filters. A logger with a
// level rejects records below it. How a rejection interacts with decisions
// made further down the tree depends on the registry's AcceptMode:
//
//   - MostSpecific (default): the first logger with a level that accepts the
//     record marks it as accepted. Ancestors with a stricter threshold still
//     pass the marked record on, and their writers still run.
//   - MostGeneric: a rejection anywhere between the logging point and the root
//     drops the record before any writer runs.
//
// Writers apply their own minimum level on top of this.
//
// # Context
//
// Context carries caller fields in insertion order, plus the origin module and
// the accepting module as separate fields that bubbling sets once and never
// overwrites.
//
// # Errors
//
// Invalid levels, accept modes and writers are rejected with
// level.ErrInvalidLevel, ErrInvalidAcceptMode and ErrInvalidWriter. A writer
// failure does not stop delivery to other writers or ancestors; all failures
// of one call are returned together as a *WriteError.
//
// # Thread Safety
//
// Registry and Logger are safe for concurrent use. Records logged concurrently
// are not ordered relative to each other; writers that need ordering serialize
// internally.
package logtree

// Package config loads a declarative logger tree and applies it to a
// logtree.Registry.
//
// A configuration names loggers by module, gives them an optional level and
// attaches writers built from registered writer types:
//
//	acceptMode: most-specific
//	loggers:
//	  - module: ""
//	    level: warning
//	    writers:
//	      - type: stream
//	        target: stderr
//	  - module: app.db
//	    level: debug
//	    writers:
//	      - type: file
//	        path: logs/db.log
//	        reopenInterval: 30s
//
// Files are checked twice: structurally against an embedded JSON schema and
// semantically (level names, writer types, patterns, filter expressions).
// Both kinds of problems are reported together in a ValidationResult.
//
// Usage:
//
//	cfg, err := config.LoadFromFile("logtree.yaml")
//	if err != nil {
//	    return err
//	}
//	config.ApplyEnv(cfg)
//	applied, err := config.Apply(cfg, logtree.Default())
//	if err != nil {
//	    return err
//	}
//	defer applied.Close()
package config

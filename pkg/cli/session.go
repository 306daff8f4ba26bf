package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/getmockd/logtree/pkg/cli/internal/output"
	"github.com/getmockd/logtree/pkg/config"
	"github.com/getmockd/logtree/pkg/logging"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/metrics"
)

// session is a logger tree built from the command line's configuration.
type session struct {
	path     string
	config   *config.Config
	registry *logtree.Registry
	applied  *config.Applied
	log      *slog.Logger
}

// sessionOptions tune openSession for the command being run.
type sessionOptions struct {
	// defaultFormat is the pattern of the stdout writer installed on the
	// root when no configuration file is given.
	defaultFormat string
	// bare skips the default writer.
	bare bool
	// metrics receives the counts of configured metrics writers.
	metrics *metrics.Registry
}

// openSession loads the configuration, applies environment and flag
// overrides, and installs the result on a fresh registry.
func openSession(opts sessionOptions) (*session, error) {
	diag := logging.New(logging.Config{
		Level:  logging.ParseLevel(logLevel),
		Format: logging.FormatText,
		Output: os.Stderr,
	})

	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", configPath, err)
		}
		cfg = loaded
		diag.Debug("loaded configuration", "path", configPath, "loggers", len(cfg.Loggers))
	} else if !opts.bare {
		cfg.Loggers = append(cfg.Loggers, config.LoggerConfig{
			Module: "",
			Writers: []config.WriterConfig{{
				Type:   config.TypeStream,
				Format: opts.defaultFormat,
			}},
		})
	}

	config.ApplyEnv(cfg)
	if acceptMode != "" {
		cfg.AcceptMode = acceptMode
	}

	reg := logtree.NewRegistry(logtree.WithDiagnostics(diag))
	applyOpts := []config.ApplyOption{
		config.WithOutputs(output.Stdout, os.Stderr),
		config.WithLogger(diag),
	}
	if opts.metrics != nil {
		applyOpts = append(applyOpts, config.WithMetrics(opts.metrics))
	}
	applied, err := config.Apply(cfg, reg, applyOpts...)
	if err != nil {
		return nil, err
	}

	return &session{
		path:     configPath,
		config:   cfg,
		registry: reg,
		applied:  applied,
		log:      diag,
	}, nil
}

// Close releases the writers the session opened.
func (s *session) Close() {
	if err := s.applied.Close(); err != nil {
		s.log.Warn("closing writers", "error", err)
	}
}

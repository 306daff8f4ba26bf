package config

import (
	"os"

	"github.com/getmockd/logtree/pkg/logtree"
)

// Environment variable names
const (
	EnvConfig     = "LOGTREE_CONFIG"
	EnvAcceptMode = "LOGTREE_ACCEPT_MODE"
	EnvRootLevel  = "LOGTREE_ROOT_LEVEL"
)

// ApplyEnv overrides cfg with values from the environment. It only sets
// values that are present; invalid values are left for Validate to report.
func ApplyEnv(cfg *Config) {
	// LOGTREE_ACCEPT_MODE
	if v := os.Getenv(EnvAcceptMode); v != "" {
		cfg.AcceptMode = v
	}

	// LOGTREE_ROOT_LEVEL
	if v := os.Getenv(EnvRootLevel); v != "" {
		cfg.rootLogger().Level = v
	}
}

// rootLogger returns the root entry, adding one if the config has none.
func (c *Config) rootLogger() *LoggerConfig {
	for i := range c.Loggers {
		if logtree.NormalizeModule(c.Loggers[i].Module) == "" {
			return &c.Loggers[i]
		}
	}
	c.Loggers = append(c.Loggers, LoggerConfig{Module: ""})
	return &c.Loggers[len(c.Loggers)-1]
}

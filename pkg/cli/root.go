package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/logtree/pkg/config"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	acceptMode string
	logLevel   string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "logtree",
	Short: "logtree routes log records through a tree of module loggers",
	Long: `logtree drives a hierarchical, module-scoped logger tree from the command line.

Loggers are named by dotted module paths. A record logged on "app.db.pool" is
offered to that logger and then bubbles up through "app.db", "app" and the
root, where each logger's level and the registry's accept mode decide whether
its writers see it.

The tree is configured with a YAML or JSON file (--config or LOGTREE_CONFIG).
Without one, the root logger writes every record to stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv(config.EnvConfig), "Logger tree configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&acceptMode, "accept-mode", "", "Override the accept mode (most-specific or most-generic)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Diagnostics log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

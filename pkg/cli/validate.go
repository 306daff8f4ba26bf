package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/logtree/pkg/cli/internal/output"
	"github.com/getmockd/logtree/pkg/config"
)

// ValidateOutput is the JSON output of the validate command.
type ValidateOutput struct {
	File   string               `json:"file"`
	Valid  bool                 `json:"valid"`
	Errors []config.ConfigError `json:"errors,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate [FILE]",
	Short: "Validate a logger tree configuration file",
	Long: `Validate a logger tree configuration file without logging anything.

This command checks:
  - YAML or JSON syntax
  - Schema validation (known fields, field types)
  - Level names, accept mode and writer types
  - Writer settings: targets, paths, durations, module patterns and filters`,
	Example: `  # Validate a specific file
  logtree validate logtree.yaml

  # Validate the file named by --config or LOGTREE_CONFIG
  logtree validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return ErrNoConfig
		}

		out, err := validateFile(path)
		if err != nil {
			return err
		}

		if err := printResult(out, func() {
			if out.Valid {
				output.Printf("Configuration is valid.\n")
				return
			}
			output.Printf("Validation failed:\n")
			for _, e := range out.Errors {
				output.Printf("  - %s\n", e.Error())
			}
		}); err != nil {
			return err
		}

		if !out.Valid {
			return fmt.Errorf("validation failed with %d error(s)", len(out.Errors))
		}
		return nil
	},
}

// validateFile loads path and reports its validation problems. Errors that
// are not about the configuration's content, such as a missing file, are
// returned as errors.
func validateFile(path string) (ValidateOutput, error) {
	out := ValidateOutput{File: path}

	_, err := config.LoadFromFile(path)
	if err == nil {
		out.Valid = true
		return out, nil
	}

	var result *config.ValidationResult
	switch {
	case errors.As(err, &result):
		out.Errors = result.Errors
	case errors.Is(err, config.ErrInvalidJSON), errors.Is(err, config.ErrInvalidYAML), errors.Is(err, config.ErrEmptyFile):
		out.Errors = []config.ConfigError{{Message: err.Error()}}
	default:
		return out, err
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

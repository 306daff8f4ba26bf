package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/logtree/pkg/cli/internal/output"
	"github.com/getmockd/logtree/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the logger tree configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after environment variables and --accept-mode have
been applied, as YAML (default) or JSON with --json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(sessionOptions{bare: true})
		if err != nil {
			return err
		}
		defer s.Close()

		var data []byte
		if jsonOutput {
			data, err = config.ToJSON(s.config)
		} else {
			data, err = config.ToYAML(s.config)
		}
		if err != nil {
			return err
		}
		output.Printf("%s", data)
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of configuration files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output.Printf("%s", config.SchemaJSON())
		return nil
	},
}

var configTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the available writer types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		types := config.WriterTypes()
		return printResult(types, func() {
			for _, t := range types {
				output.Printf("%s\n", t)
			}
		})
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configTypesCmd)
	rootCmd.AddCommand(configCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/logtree/pkg/cli/internal/output"
	"github.com/getmockd/logtree/pkg/cli/internal/parse"
	"github.com/getmockd/logtree/pkg/level"
)

var (
	checkModule string
	checkLevels string
)

// LevelCheck is the JSON form of one check result.
type LevelCheck struct {
	Level   string `json:"level"`
	Rank    int    `json:"rank"`
	Enabled bool   `json:"enabled"`
}

// CheckOutput is the JSON output of the check command.
type CheckOutput struct {
	Module     string       `json:"module"`
	AcceptMode string       `json:"acceptMode"`
	Levels     []LevelCheck `json:"levels"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which levels a module would deliver",
	Long: `Show, for each level, whether a record logged on the module would reach at
least one writer. The answer takes the logger levels along the module's path,
the accept mode and every writer's own threshold into account.`,
	Example: `  # All levels on a module
  logtree check -c logtree.yaml -m app.db

  # Selected levels, as JSON
  logtree check -c logtree.yaml -m app.db --levels debug,error --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		levels, err := parseLevelList(checkLevels)
		if err != nil {
			return err
		}

		s, err := openSession(sessionOptions{defaultFormat: ""})
		if err != nil {
			return err
		}
		defer s.Close()

		logger := s.registry.GetLogger(checkModule)
		out := CheckOutput{
			Module:     displayModule(logger.Module()),
			AcceptMode: s.registry.AcceptMode().String(),
			Levels:     make([]LevelCheck, 0, len(levels)),
		}
		for _, lvl := range levels {
			out.Levels = append(out.Levels, LevelCheck{
				Level:   lvl.String(),
				Rank:    int(lvl),
				Enabled: logger.LevelEnabled(lvl),
			})
		}

		return printResult(out, func() {
			w := output.Table()
			fmt.Fprintln(w, "LEVEL\tENABLED")
			for _, c := range out.Levels {
				fmt.Fprintf(w, "%s\t%s\n", c.Level, enabledWord(c.Enabled))
			}
			_ = w.Flush()
		})
	},
}

// parseLevelList parses a comma-separated list of level names. An empty list
// means every level.
func parseLevelList(s string) ([]level.Level, error) {
	names := parse.SplitTrim(s, ",")
	if len(names) == 0 {
		return level.All(), nil
	}
	levels := make([]level.Level, 0, len(names))
	for _, name := range names {
		lvl, err := level.Parse(name)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// displayModule names the root logger in human output.
func displayModule(module string) string {
	if module == "" {
		return "<root>"
	}
	return module
}

func init() {
	checkCmd.Flags().StringVarP(&checkModule, "module", "m", "", "Module to check (default: the root logger)")
	checkCmd.Flags().StringVar(&checkLevels, "levels", "", "Comma-separated levels to check (default: all)")
	rootCmd.AddCommand(checkCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/logtree/pkg/cli/internal/output"
	"github.com/getmockd/logtree/pkg/level"
)

// LevelInfo is the JSON form of a level.
type LevelInfo struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the log levels in rank order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all := level.All()
		out := make([]LevelInfo, 0, len(all))
		for _, lvl := range all {
			out = append(out, LevelInfo{Name: lvl.String(), Rank: int(lvl)})
		}

		return printResult(out, func() {
			w := output.Table()
			fmt.Fprintln(w, "RANK\tNAME")
			for _, l := range out {
				fmt.Fprintf(w, "%d\t%s\n", l.Rank, l.Name)
			}
			_ = w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(levelsCmd)
}

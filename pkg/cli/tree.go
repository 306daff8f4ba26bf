package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/logtree/pkg/cli/internal/output"
	"github.com/getmockd/logtree/pkg/logtree"
)

// LoggerInfo is the JSON form of one logger in the tree.
type LoggerInfo struct {
	Module  string `json:"module"`
	Parent  string `json:"parent,omitempty"`
	Level   string `json:"level,omitempty"`
	Writers int    `json:"writers"`
}

// TreeOutput is the JSON output of the tree command.
type TreeOutput struct {
	AcceptMode string       `json:"acceptMode"`
	Loggers    []LoggerInfo `json:"loggers"`
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the configured loggers",
	Long: `Show every logger the configuration creates, with its level and the number
of writers attached to it. Loggers without a level are transparent: they
deliver to their writers but leave acceptance to their ancestors.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(sessionOptions{bare: true})
		if err != nil {
			return err
		}
		defer s.Close()

		out := describeTree(s.registry)
		return printResult(out, func() {
			output.Printf("Accept mode: %s\n\n", out.AcceptMode)
			w := output.Table()
			fmt.Fprintln(w, "MODULE\tLEVEL\tWRITERS")
			for _, l := range out.Loggers {
				lvl := l.Level
				if lvl == "" {
					lvl = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\n", displayModule(l.Module), lvl, l.Writers)
			}
			_ = w.Flush()
		})
	},
}

// describeTree lists the registry's loggers in module order. The root is
// always listed. Intermediate modules that were never configured are not.
func describeTree(reg *logtree.Registry) TreeOutput {
	reg.Root()
	loggers := reg.Loggers()
	out := TreeOutput{
		AcceptMode: reg.AcceptMode().String(),
		Loggers:    make([]LoggerInfo, 0, len(loggers)),
	}
	for _, l := range loggers {
		info := LoggerInfo{
			Module:  l.Module(),
			Writers: len(l.Writers()),
		}
		if !l.IsRoot() {
			info.Parent = displayModule(parentModule(l.Module()))
		}
		if lvl, ok := l.Level(); ok {
			info.Level = lvl.String()
		}
		out.Loggers = append(out.Loggers, info)
	}
	return out
}

// parentModule is the module one segment up. Logger.Parent is not used
// because it registers the parent as a side effect.
func parentModule(module string) string {
	if i := strings.LastIndexByte(module, '.'); i >= 0 {
		return module[:i]
	}
	return ""
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/logtree/pkg/cli/internal/flags"
	"github.com/getmockd/logtree/pkg/cli/internal/parse"
	"github.com/getmockd/logtree/pkg/level"
	"github.com/getmockd/logtree/pkg/logtree"
	"github.com/getmockd/logtree/pkg/metrics"
	"github.com/getmockd/logtree/pkg/writer"
)

var (
	emitModule string
	emitLevel  = flags.Level(level.Info)
	emitFields flags.StringSlice
	emitFormat string
	emitStats  bool

	// emitInput is read when the message is "-".
	emitInput io.Reader = os.Stdin
)

var emitCmd = &cobra.Command{
	Use:   "emit [flags] MESSAGE",
	Short: "Log a message on a module",
	Long: `Log a message on a module and let it bubble through the logger tree.

Placeholders such as {user} in the message are filled from --field values
by the writers that format the record. With "-" as the message, every line
read from stdin is logged as a separate record.`,
	Example: `  # Log on the root logger
  logtree emit "service started"

  # Log a warning on a nested module with fields
  logtree emit -m app.db.pool -l warning -f size=0 "pool size is {size}"

  # Log each line of a file
  logtree emit -m import -c logtree.yaml - < events.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return ErrMessageRequired
		}

		fieldArgs, err := parse.Fields(emitFields)
		if err != nil {
			return err
		}

		opts := sessionOptions{defaultFormat: emitFormat}
		if emitStats {
			opts.metrics = metrics.NewRegistry()
		}
		s, err := openSession(opts)
		if err != nil {
			return err
		}
		defer s.Close()

		if emitStats {
			if err := ensureCounting(s.registry, opts.metrics); err != nil {
				return err
			}
			defer func() { _ = opts.metrics.WriteText(os.Stderr) }()
		}

		logger := s.registry.GetLogger(emitModule)
		ctx := logtree.NewContext(fieldArgs...)

		if args[0] != "-" {
			return logger.Log(emitLevel.Get(), args[0], ctx)
		}
		return emitLines(logger, emitLevel.Get(), emitInput, ctx)
	},
}

// ensureCounting attaches a counting writer to the root unless the
// configuration already defines metrics writers.
func ensureCounting(reg *logtree.Registry, m *metrics.Registry) error {
	if len(m.Metrics()) > 0 {
		return nil
	}
	w, err := writer.NewCountingWriter(m, level.Debug)
	if err != nil {
		return err
	}
	return reg.Root().AddWriter(w)
}

// emitLines logs every non-empty line of r. Writer failures do not stop the
// loop; they are joined into the returned error.
func emitLines(logger *logtree.Logger, lvl level.Level, r io.Reader, ctx logtree.Context) error {
	var errs []error
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := logger.Log(lvl, line, ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("reading stdin: %w", err))
	}
	return errors.Join(errs...)
}

func init() {
	emitCmd.Flags().StringVarP(&emitModule, "module", "m", "", "Module to log on (default: the root logger)")
	emitCmd.Flags().VarP(&emitLevel, "level", "l", "Record level (debug, info, notice, warning, error, critical, alert, emergency)")
	emitCmd.Flags().VarP(&emitFields, "field", "f", "Context field as key=value (repeatable)")
	emitCmd.Flags().BoolVar(&emitStats, "stats", false, "Print record counts in Prometheus text format to stderr when done")
	emitCmd.Flags().StringVar(&emitFormat, "format", writer.DefaultPattern, "Pattern of the default stdout writer when no configuration is given")
	rootCmd.AddCommand(emitCmd)
}

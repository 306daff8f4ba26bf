package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getmockd/logtree/pkg/config"
	"github.com/getmockd/logtree/pkg/logtree"
)

// Common CLI errors
var (
	ErrMessageRequired = errors.New("message required: pass it as an argument or use - to read stdin")
	ErrNoConfig        = errors.New("no configuration file: pass one as an argument, with --config or LOGTREE_CONFIG")
)

// formatError renders err for stderr. Validation and writer failures are
// listed one problem per line.
func formatError(err error) string {
	var result *config.ValidationResult
	if errors.As(err, &result) && len(result.Errors) > 1 {
		var b strings.Builder
		fmt.Fprintf(&b, "Error: configuration has %d problems:", len(result.Errors))
		for _, e := range result.Errors {
			b.WriteString("\n  - ")
			b.WriteString(e.Error())
		}
		return b.String()
	}

	var werr *logtree.WriteError
	if errors.As(err, &werr) && len(werr.Faults) > 1 {
		var b strings.Builder
		fmt.Fprintf(&b, "Error: %d writers failed:", len(werr.Faults))
		for _, f := range werr.Faults {
			b.WriteString("\n  - ")
			b.WriteString(f.Error())
		}
		return b.String()
	}

	return "Error: " + err.Error()
}

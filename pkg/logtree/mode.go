package logtree

import (
	"fmt"
	"strings"
)

// AcceptMode decides how acceptance decisions interact while a record
// bubbles towards the root.
type AcceptMode int

const (
	// MostSpecific lets the first opinionated logger that accepts a record
	// override stricter thresholds further up. This is the default.
	MostSpecific AcceptMode = iota

	// MostGeneric makes any rejection on the path to the root final.
	MostGeneric
)

// DefaultAcceptMode is the mode of a new or reset registry.
const DefaultAcceptMode = MostSpecific

// Valid reports whether m is one of the defined modes.
func (m AcceptMode) Valid() bool {
	return m == MostSpecific || m == MostGeneric
}

func (m AcceptMode) String() string {
	switch m {
	case MostSpecific:
		return "most-specific"
	case MostGeneric:
		return "most-generic"
	default:
		return fmt.Sprintf("AcceptMode(%d)", int(m))
	}
}

// ParseAcceptMode parses "most-specific" or "most-generic". Underscores,
// spaces and case are tolerated.
func ParseAcceptMode(s string) (AcceptMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "most-specific", "specific":
		return MostSpecific, nil
	case "most-generic", "generic":
		return MostGeneric, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAcceptMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m AcceptMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAcceptMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *AcceptMode) UnmarshalText(text []byte) error {
	parsed, err := ParseAcceptMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

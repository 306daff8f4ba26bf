package util

// MaxMessageSize is the default cap for stored log messages (10KB).
const MaxMessageSize = 10 * 1024

// truncatedSuffix marks a message that was cut by Truncate.
const truncatedSuffix = "...(truncated)"

// Truncate shortens s to maxSize bytes and appends "...(truncated)" when
// anything was cut. If maxSize <= 0, MaxMessageSize is used.
func Truncate(s string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxMessageSize
	}
	if len(s) > maxSize {
		return s[:maxSize] + truncatedSuffix
	}
	return s
}

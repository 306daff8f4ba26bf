package util

import (
	"path/filepath"
	"strings"
)

// SafeFilePath cleans a relative path and rejects anything that is absolute,
// empty or still escapes the working directory after cleaning.
func SafeFilePath(p string) (string, bool) {
	cleaned, ok := cleanPath(p)
	if !ok || filepath.IsAbs(cleaned) {
		return "", false
	}
	return cleaned, true
}

// SafeFilePathAllowAbsolute is SafeFilePath but accepts absolute paths.
func SafeFilePathAllowAbsolute(p string) (string, bool) {
	return cleanPath(p)
}

func cleanPath(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	// Windows separators are not cleaned on unix, so check their segments
	// separately.
	if strings.Contains(p, `\`) {
		for _, seg := range strings.Split(strings.ReplaceAll(p, `\`, "/"), "/") {
			if seg == ".." {
				return "", false
			}
		}
	}
	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}

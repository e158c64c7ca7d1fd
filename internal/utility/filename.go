package utility

import (
	"strings"
)

// pathUnsafe lists characters stripped from artifact filename components.
var pathUnsafe = []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}

// SanitizeFileName removes path-unsafe characters from a filename component
// and trims surrounding whitespace.
func SanitizeFileName(name string) string {
	for _, ch := range pathUnsafe {
		name = strings.ReplaceAll(name, ch, "")
	}
	return strings.TrimSpace(name)
}

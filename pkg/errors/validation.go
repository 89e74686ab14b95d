package errors

import (
	"strings"
	"unicode"
)

// ValidateTimelineName validates a stored timeline name for safety and
// correctness. Names are used as lookup keys in the MongoDB store and as
// path components for derived output files.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, backslash)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateTimelineName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "timeline name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "timeline name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "timeline name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "timeline name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// puzzleNameRegex matches puzzle names safe to use as store keys and
// URL path segments.
var puzzleNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidatePuzzleName validates a puzzle name for safety and correctness.
// Names travel as URL path segments, cache key parts and store document
// IDs, so the rules are intentionally conservative:
//   - No empty names
//   - Lowercase letters, digits, dots, underscores and dashes only
//   - Must start with a letter or digit
//   - Maximum length of 128 characters
func ValidatePuzzleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPuzzle, "puzzle name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidPuzzle, "puzzle name too long (max 128 characters)")
	}

	if !puzzleNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPuzzle, "invalid puzzle name: %q", name)
	}

	return nil
}

// ValidateSessionID validates a session identifier for safety.
// Session IDs become file names and store keys, so path separators,
// traversal sequences and control characters are rejected outright.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "session ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "session ID contains control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "session ID contains path characters")
	}

	return nil
}

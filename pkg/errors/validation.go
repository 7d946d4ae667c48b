package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MaxTextLength bounds the raw text accepted from a single request.
const MaxTextLength = 64 * 1024

// ValidateText validates user-supplied text lines for safety.
//
// The validation rules are intentionally conservative:
//   - Maximum length of MaxTextLength bytes
//   - No control characters other than line breaks and tabs
//   - No null bytes
func ValidateText(text string) error {
	if len(text) > MaxTextLength {
		return New(ErrCodeInvalidInput, "text too long (max %d bytes)", MaxTextLength)
	}

	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "text contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateBlobID validates the id segment of a transient blob URL.
// Ids are canonical lowercase UUID strings; anything else is rejected
// before it reaches a store backend.
func ValidateBlobID(id string) error {
	if len(id) != 36 || strings.ToLower(id) != id {
		return New(ErrCodeInvalidInput, "invalid blob id: %q", id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid blob id: %q", id)
	}
	return nil
}

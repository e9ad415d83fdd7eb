package errors

import (
	"strings"
	"unicode"
)

// FontSeparator joins family and style in an encoded font name.
const FontSeparator = "|"

// ValidateFontPart validates one half (family or style) of a font name.
// The separator is reserved by the encoded "family|style" form.
func ValidateFontPart(part string) error {
	if strings.Contains(part, FontSeparator) {
		return New(ErrCodeInvalidFont, "cannot encode a font with %q in the name: %q", FontSeparator, part)
	}
	return nil
}

// ValidateGeometry validates the geometry dump option.
func ValidateGeometry(geometry string) error {
	switch geometry {
	case "none", "paths":
		return nil
	}
	return New(ErrCodeInvalidGeometry, "invalid geometry: %q (must be one of: none, paths)", geometry)
}

// ValidateBackend validates a clipboard store backend name.
func ValidateBackend(backend string) error {
	switch backend {
	case "file", "redis", "mongo", "none":
		return nil
	}
	return New(ErrCodeInvalidBackend, "invalid store backend: %q (must be one of: file, redis, mongo, none)", backend)
}

// ValidatePath validates a local file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a backend connection URL.
// It ensures the URL has one of the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}

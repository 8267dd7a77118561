package storage

import (
	"fmt"
	"strings"

	"homely_backend/platform/apperr"
)

// AllowedContentTypes defines the allowed MIME types for listing images.
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/avif": true,
}

// ValidateContentType checks if the content type is allowed.
func ValidateContentType(contentType string) error {
	normalized := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !AllowedContentTypes[normalized] {
		return apperr.Validation(fmt.Sprintf("content type %q is not allowed", contentType))
	}
	return nil
}

// ValidateFileSize checks 0 < size <= max. A non-positive max disables the upper bound.
func ValidateFileSize(sizeBytes, maxBytes int64) error {
	if sizeBytes <= 0 {
		return apperr.Validation("file size must be positive")
	}
	if maxBytes > 0 && sizeBytes > maxBytes {
		return apperr.Validation(fmt.Sprintf("file size %d exceeds maximum of %d bytes", sizeBytes, maxBytes))
	}
	return nil
}

// SanitizeFileName keeps ASCII letters, digits, dash and underscore; spaces become dashes.
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}

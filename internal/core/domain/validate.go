package domain

import (
	"regexp"
	"strings"
)

// MaxFileBytes caps accepted file size at 15 MiB, matching the mobile-side
// guardrail of the upload form.
const MaxFileBytes = 15 * 1024 * 1024

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has the local@domain.tld shape: no whitespace
// or extra "@" in either part, and at least one dot after the "@".
func ValidEmail(s string) bool {
	return emailRx.MatchString(s)
}

// AcceptableFile reports whether the MIME type is an image or a PDF.
func AcceptableFile(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || contentType == "application/pdf"
}

func WithinSizeLimit(size int64) bool {
	return size <= MaxFileBytes
}

func RequiredText(s string) bool {
	return strings.TrimSpace(s) != ""
}

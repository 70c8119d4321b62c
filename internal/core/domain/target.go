package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// UploadTarget is the derived, deterministic storage location of one attempt.
type UploadTarget struct {
	Folder     string
	ObjectID   string
	ContextTag string
}

var slugRx = regexp.MustCompile(`[^a-z0-9._-]+`)

// Slug lowercases s and collapses every run of characters outside
// [a-z0-9._-] into a single "-", with leading/trailing "-" stripped.
// Idempotent.
func Slug(s string) string {
	out := slugRx.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(out, "-")
}

func slugOr(s, fallback string) string {
	if v := Slug(s); v != "" {
		return v
	}
	return fallback
}

const contextDescriptionLimit = 200

// BuildTarget derives the storage folder, object identifier and context tag
// for a submission at time t. Deterministic for identical inputs within the
// same second; same-second collisions overwrite by identifier remotely.
func BuildTarget(t time.Time, email, category, description string) UploadTarget {
	stamp := t.Format("2006-01-02_15-04-05")
	return UploadTarget{
		Folder:   fmt.Sprintf("receipts/%s/%s", slugOr(email, "unknown"), t.Format("2006-01")),
		ObjectID: fmt.Sprintf("%s_%s", stamp, slugOr(category, "uncat")),
		ContextTag: fmt.Sprintf("email=%s|function=%s|description=%s",
			email, category, truncateRunes(description, contextDescriptionLimit)),
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

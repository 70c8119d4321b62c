package domain

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var slugAlphabet = regexp.MustCompile(`^[a-z0-9._-]*$`)

func TestSlugOutputAlphabet(t *testing.T) {
	inputs := []string{
		"User+Email@Example.com",
		"110 Training",
		"--weird--input--",
		"Ümlaut Straße",
		"официальный приём",
		"  spaces  everywhere  ",
		"!!!",
		"already-fine_1.2",
	}
	for _, in := range inputs {
		got := Slug(in)
		if !slugAlphabet.MatchString(got) {
			t.Fatalf("Slug(%q) = %q contains characters outside the safe set", in, got)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Fatalf("Slug(%q) = %q has a leading or trailing dash", in, got)
		}
		if again := Slug(got); again != got {
			t.Fatalf("Slug is not idempotent for %q: %q != %q", in, again, got)
		}
	}
}

func TestSlugCollapsesRuns(t *testing.T) {
	if got := Slug("a  +  b"); got != "a-b" {
		t.Fatalf("expected a-b, got %q", got)
	}
	// "@" is outside the safe set and collapses into "-".
	if got := Slug("User+Email@Example.com"); got != "user-email-example.com" {
		t.Fatalf("expected user-email-example.com, got %q", got)
	}
}

func TestBuildTargetShape(t *testing.T) {
	at := time.Date(2026, time.March, 7, 9, 5, 3, 0, time.UTC)
	target := BuildTarget(at, "A@B.com", "110 Training", "client lunch")

	if target.Folder != "receipts/a-b.com/2026-03" {
		t.Fatalf("unexpected folder %q", target.Folder)
	}
	if target.ObjectID != "2026-03-07_09-05-03_110-training" {
		t.Fatalf("unexpected object id %q", target.ObjectID)
	}
	if target.ContextTag != "email=A@B.com|function=110 Training|description=client lunch" {
		t.Fatalf("unexpected context tag %q", target.ContextTag)
	}
}

func TestBuildTargetDeterministic(t *testing.T) {
	at := time.Date(2026, time.March, 7, 9, 5, 3, 0, time.UTC)
	first := BuildTarget(at, "a@b.com", "Training", "x")
	second := BuildTarget(at, "a@b.com", "Training", "x")
	if first != second {
		t.Fatalf("targets differ for identical inputs: %+v vs %+v", first, second)
	}
}

func TestBuildTargetFallbacks(t *testing.T) {
	at := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	target := BuildTarget(at, "???", "***", "")

	if target.Folder != "receipts/unknown/2026-01" {
		t.Fatalf("expected unknown email segment, got %q", target.Folder)
	}
	if !strings.HasSuffix(target.ObjectID, "_uncat") {
		t.Fatalf("expected uncat category segment, got %q", target.ObjectID)
	}
}

func TestBuildTargetTruncatesDescription(t *testing.T) {
	at := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	long := strings.Repeat("d", 300)
	target := BuildTarget(at, "a@b.com", "cat", long)

	idx := strings.Index(target.ContextTag, "description=")
	if idx < 0 {
		t.Fatalf("context tag missing description field: %q", target.ContextTag)
	}
	desc := target.ContextTag[idx+len("description="):]
	if len(desc) != 200 {
		t.Fatalf("expected description truncated to 200, got %d", len(desc))
	}
}

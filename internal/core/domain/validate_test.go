package domain

import "testing"

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"name.surname@sub.example.org", true},
		{"not-an-email", false},
		{"a@b", false},
		{"a b@c.com", false},
		{"a@@b.com", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidEmail(tc.in); got != tc.want {
			t.Fatalf("ValidEmail(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAcceptableFile(t *testing.T) {
	if !AcceptableFile("image/jpeg") {
		t.Fatalf("expected image/jpeg to be acceptable")
	}
	if !AcceptableFile("image/heic") {
		t.Fatalf("expected image/heic to be acceptable")
	}
	if !AcceptableFile("application/pdf") {
		t.Fatalf("expected application/pdf to be acceptable")
	}
	if AcceptableFile("text/plain") {
		t.Fatalf("expected text/plain to be rejected")
	}
	if AcceptableFile("") {
		t.Fatalf("expected empty content type to be rejected")
	}
}

func TestWithinSizeLimit(t *testing.T) {
	if !WithinSizeLimit(MaxFileBytes) {
		t.Fatalf("expected exactly 15MiB to pass")
	}
	if WithinSizeLimit(MaxFileBytes + 1) {
		t.Fatalf("expected 15MiB+1 to fail")
	}
	if !WithinSizeLimit(0) {
		t.Fatalf("expected empty file size to pass the size check")
	}
}

func TestRequiredText(t *testing.T) {
	if RequiredText("   ") {
		t.Fatalf("expected whitespace-only text to fail")
	}
	if !RequiredText(" lunch ") {
		t.Fatalf("expected non-blank text to pass")
	}
}

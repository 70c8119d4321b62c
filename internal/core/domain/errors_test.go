package domain

import (
	"errors"
	"testing"
)

func TestWrapErrorPreservesKind(t *testing.T) {
	err := WrapError(ErrNetwork, "upload", errors.New("dial tcp: connection refused"))
	if !IsKind(err, ErrNetwork) {
		t.Fatalf("expected network kind, got %v", err)
	}
	if IsKind(err, ErrService) {
		t.Fatalf("did not expect service kind")
	}
}

func TestWrapErrorNilPassthrough(t *testing.T) {
	if err := WrapError(ErrValidation, "submit", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestDescribeKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{WrapError(ErrValidation, "submit", errors.New("x")), KindValidation},
		{WrapError(ErrConfiguration, "upload", errors.New("x")), KindConfiguration},
		{WrapError(ErrNetwork, "upload", errors.New("x")), KindNetwork},
		{WrapError(ErrService, "upload", errors.New("x")), KindService},
		{WrapError(ErrSubmissionNotFound, "get", errors.New("x")), KindNotFound},
		{errors.New("plain"), KindInternal},
	}
	for _, tc := range cases {
		if got := Describe(tc.err); got.Kind != tc.kind {
			t.Fatalf("Describe(%v).Kind = %s, want %s", tc.err, got.Kind, tc.kind)
		}
	}
	if got := Describe(nil); got.Kind != "" || got.Message != "" {
		t.Fatalf("expected zero descriptor for nil error, got %+v", got)
	}
}

package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("invalid input")
	ErrConfiguration      = errors.New("upload destination is not configured")
	ErrNetwork            = errors.New("network error while uploading (check connection/TLS)")
	ErrService            = errors.New("upload service rejected the request")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// ErrorDescriptor is the flat, UI-facing form of a failure.
type ErrorDescriptor struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	KindValidation    = "validation"
	KindConfiguration = "configuration"
	KindNetwork       = "network"
	KindService       = "service"
	KindNotFound      = "not_found"
	KindInternal      = "internal"
)

// Describe flattens an error into its taxonomy kind and a human-readable message.
func Describe(err error) ErrorDescriptor {
	if err == nil {
		return ErrorDescriptor{}
	}
	kind := KindInternal
	switch {
	case IsKind(err, ErrValidation):
		kind = KindValidation
	case IsKind(err, ErrConfiguration):
		kind = KindConfiguration
	case IsKind(err, ErrNetwork):
		kind = KindNetwork
	case IsKind(err, ErrService):
		kind = KindService
	case IsKind(err, ErrSubmissionNotFound):
		kind = KindNotFound
	}
	return ErrorDescriptor{Kind: kind, Message: err.Error()}
}

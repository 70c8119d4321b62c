package ports

import (
	"context"
	"io"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
)

// SubmissionController is the inbound contract a UI collaborator drives. One
// controller per active submission session.
type SubmissionController interface {
	SelectFile(file domain.FileHandle) error
	SetEmail(email string)
	SetDescription(description string)
	SetCategory(category string)
	SetRememberEmail(remember bool)
	Submit(ctx context.Context) domain.Status
	Retry()

	Status() domain.Status
	Draft() domain.Draft
	Message() string
	SetupRequired() bool
	CanSubmit() bool
}

// SubmissionSessions creates controllers for new submission sessions.
type SubmissionSessions interface {
	NewSession() SubmissionController
}

// SetupService resolves and persists the upload credentials.
type SetupService interface {
	Resolve(ctx context.Context) domain.Configuration
	Persist(ctx context.Context, cloudName, uploadPreset string) error
	RememberedEmail(ctx context.Context) string
}

// HistoryService reads and exports the submission journal.
type HistoryService interface {
	Get(ctx context.Context, id string) (*domain.SubmissionRecord, error)
	ExportXLSX(ctx context.Context, w io.Writer) error
}

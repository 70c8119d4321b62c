package ports

import (
	"context"
	"io"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
)

// Uploader performs exactly one transfer per call.
type Uploader interface {
	Upload(ctx context.Context, file domain.FileHandle, target domain.UploadTarget, cfg domain.Configuration) (domain.UploadResult, error)
}

// SettingsStore is the per-device key-value store backing persisted
// credentials and the remembered email. Last write wins.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// SubmissionJournal records submission attempts for audit. The core never
// reads it back during an upload.
type SubmissionJournal interface {
	Record(ctx context.Context, rec *domain.SubmissionRecord) error
	GetByID(ctx context.Context, id string) (*domain.SubmissionRecord, error)
	List(ctx context.Context, limit int) ([]domain.SubmissionRecord, error)
}

// EventPublisher announces completed submissions to downstream consumers.
type EventPublisher interface {
	PublishSubmissionCompleted(ctx context.Context, submissionID string) error
}

// PDFInspector probes PDF content for journal annotation.
type PDFInspector interface {
	PageCount(ctx context.Context, r io.ReaderAt, size int64) (int, error)
}

// JournalExporter renders journal rows into a workbook.
type JournalExporter interface {
	ExportXLSX(records []domain.SubmissionRecord, w io.Writer) error
}

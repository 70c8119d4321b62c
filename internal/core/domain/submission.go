package domain

import (
	"io"
	"time"
)

// FileContent is the readable surface a draft file must provide. Both
// multipart.File and bytes.Reader satisfy it.
type FileContent interface {
	io.Reader
	io.ReaderAt
	io.Seeker
}

// FileHandle describes the attached file of a draft.
type FileHandle struct {
	Name        string
	ContentType string
	Size        int64
	Content     FileContent
}

func (f FileHandle) IsZero() bool {
	return f.Content == nil
}

// Draft holds the user-supplied fields of one submission session. Owned by
// the controller; mutated only through its setters.
type Draft struct {
	File          FileHandle
	Description   string
	Category      string
	Email         string
	RememberEmail bool
}

type StatusKind string

const (
	StatusIdle      StatusKind = "idle"
	StatusUploading StatusKind = "uploading"
	StatusSucceeded StatusKind = "succeeded"
	StatusFailed    StatusKind = "failed"
)

// Status is the submission state machine's observable state. Result is set
// only for StatusSucceeded, Err only for StatusFailed.
type Status struct {
	Kind   StatusKind       `json:"kind"`
	Result *UploadResult    `json:"result,omitempty"`
	Err    *ErrorDescriptor `json:"error,omitempty"`
}

// UploadResult is what the remote service reported for a completed transfer.
// Never persisted by the core.
type UploadResult struct {
	URL          string       `json:"url"`
	ObjectID     string       `json:"object_id"`
	AssetID      string       `json:"asset_id"`
	ConfigSource ConfigSource `json:"config_source"`
}

// SubmissionRecord is the journal's audit row for one submission attempt.
type SubmissionRecord struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Category     string       `json:"category"`
	Description  string       `json:"description"`
	FileName     string       `json:"file_name"`
	FileSize     int64        `json:"file_size"`
	MimeType     string       `json:"mime_type"`
	Folder       string       `json:"folder"`
	ObjectID     string       `json:"object_id"`
	Outcome      string       `json:"outcome"`
	ErrorKind    string       `json:"error_kind,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
	ResultURL    string       `json:"result_url,omitempty"`
	AssetID      string       `json:"asset_id,omitempty"`
	PDFPages     int          `json:"pdf_pages,omitempty"`
	ConfigSource ConfigSource `json:"config_source"`
	CreatedAt    time.Time    `json:"created_at"`
}

const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
	"github.com/mkravchenko/receiptdrop/internal/core/ports"
)

// ConfigResolver is the slice of SetupService the controller needs.
type ConfigResolver interface {
	Resolve(ctx context.Context) domain.Configuration
}

// ControllerDeps carries everything a submission session needs. Journal,
// Events and Inspector are optional; nil disables them.
type ControllerDeps struct {
	Resolver  ConfigResolver
	Uploader  ports.Uploader
	Settings  ports.SettingsStore
	Journal   ports.SubmissionJournal
	Events    ports.EventPublisher
	Inspector ports.PDFInspector
	Logger    *slog.Logger
	Now       func() time.Time
}

// ControllerFactory builds one controller per submission session.
type ControllerFactory struct {
	deps ControllerDeps
}

func NewControllerFactory(deps ControllerDeps) *ControllerFactory {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &ControllerFactory{deps: deps}
}

func (f *ControllerFactory) NewSession() ports.SubmissionController {
	return NewSubmissionController(f.deps)
}

// SubmissionController owns the draft and the status state machine of a
// single submission session:
//
//	Idle -> Uploading -> {Succeeded, Failed} -> Idle
//
// The mutex only guards the draft and status fields; the Uploading guard (not
// the lock) is what rejects re-entrant submits, and the transfer itself runs
// outside the lock.
type SubmissionController struct {
	deps ControllerDeps

	mu            sync.Mutex
	draft         domain.Draft
	status        domain.Status
	message       string
	setupRequired bool
}

func NewSubmissionController(deps ControllerDeps) *SubmissionController {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &SubmissionController{
		deps:   deps,
		status: domain.Status{Kind: domain.StatusIdle},
	}
}

// SelectFile accepts or rejects a candidate file synchronously. A rejected
// file sets a validation message and leaves the state machine untouched. An
// accepted file replaces the draft file unconditionally; size is not checked
// until submission.
func (c *SubmissionController) SelectFile(file domain.FileHandle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !domain.AcceptableFile(file.ContentType) {
		c.message = "Please select an image or PDF file."
		return domain.WrapError(domain.ErrValidation, "select file", errors.New(c.message))
	}
	c.draft.File = file
	c.resetTerminalLocked()
	return nil
}

func (c *SubmissionController) SetEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Email = email
	c.resetTerminalLocked()
}

func (c *SubmissionController) SetDescription(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Description = description
	c.resetTerminalLocked()
}

func (c *SubmissionController) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Category = category
	c.resetTerminalLocked()
}

func (c *SubmissionController) SetRememberEmail(remember bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.RememberEmail = remember
	c.resetTerminalLocked()
}

// Retry returns a terminal status to Idle. The next Submit recomputes a
// fresh upload target.
func (c *SubmissionController) Retry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetTerminalLocked()
}

func (c *SubmissionController) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *SubmissionController) Draft() domain.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *SubmissionController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

func (c *SubmissionController) SetupRequired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setupRequired
}

// CanSubmit is derived strictly from draft completeness and the Uploading
// guard. Configuration completeness is deliberately not part of this gate;
// it is checked only at submit time.
func (c *SubmissionController) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.ValidEmail(c.draft.Email) &&
		!c.draft.File.IsZero() &&
		domain.RequiredText(c.draft.Description) &&
		domain.RequiredText(c.draft.Category) &&
		c.status.Kind != domain.StatusUploading
}

// Submit runs one attempt through validation, credential resolution, target
// derivation and the transfer, and returns the terminal status. Re-entrant
// calls while Uploading are no-ops.
func (c *SubmissionController) Submit(ctx context.Context) domain.Status {
	c.mu.Lock()
	if c.status.Kind == domain.StatusUploading {
		st := c.status
		c.mu.Unlock()
		return st
	}
	c.resetTerminalLocked()

	if err := validateDraft(c.draft); err != nil {
		desc := domain.Describe(err)
		c.status = domain.Status{Kind: domain.StatusFailed, Err: &desc}
		c.message = desc.Message
		draft := c.draft
		st := c.status
		c.mu.Unlock()
		// Rejected attempts are audited too; no target or credentials were
		// ever derived for them.
		c.journalAttempt(ctx, draft, domain.UploadTarget{}, domain.Configuration{}, st, 0)
		return st
	}

	draft := c.draft
	c.message = ""
	c.setupRequired = false
	c.status = domain.Status{Kind: domain.StatusUploading}
	c.mu.Unlock()

	// "Remember" reflects user intent, not upload outcome, so the write
	// happens before the network call.
	if draft.RememberEmail {
		if err := c.deps.Settings.Set(ctx, KeyRememberedEmail, draft.Email); err != nil {
			c.deps.Logger.Warn("remember_email_failed", "error", err)
		}
	}

	cfg := c.deps.Resolver.Resolve(ctx)
	target := domain.BuildTarget(c.deps.Now(), draft.Email, draft.Category, draft.Description)
	pdfPages := c.probePDF(ctx, draft.File)

	result, err := c.upload(ctx, draft.File, target, cfg)

	c.mu.Lock()
	if err != nil {
		desc := domain.Describe(err)
		c.status = domain.Status{Kind: domain.StatusFailed, Err: &desc}
		c.message = desc.Message
		c.setupRequired = domain.IsKind(err, domain.ErrConfiguration)
	} else {
		c.status = domain.Status{Kind: domain.StatusSucceeded, Result: &result}
		c.draft.File = domain.FileHandle{}
		c.draft.Description = ""
	}
	st := c.status
	c.mu.Unlock()

	c.journalAttempt(ctx, draft, target, cfg, st, pdfPages)
	return st
}

func (c *SubmissionController) upload(
	ctx context.Context,
	file domain.FileHandle,
	target domain.UploadTarget,
	cfg domain.Configuration,
) (domain.UploadResult, error) {
	// Fail before the transfer layer is even asked, so a misconfigured
	// device costs zero network.
	if !cfg.Complete() {
		return domain.UploadResult{}, domain.WrapError(
			domain.ErrConfiguration, "upload", errors.New(cfg.MissingCredentialMessage()))
	}
	// A prior failed attempt leaves the reader at EOF; a retry must send
	// the full file again.
	if _, err := file.Content.Seek(0, io.SeekStart); err != nil {
		return domain.UploadResult{}, fmt.Errorf("rewind file: %w", err)
	}
	return c.deps.Uploader.Upload(ctx, file, target, cfg)
}

func (c *SubmissionController) probePDF(ctx context.Context, file domain.FileHandle) int {
	if c.deps.Inspector == nil || file.ContentType != "application/pdf" || file.IsZero() {
		return 0
	}
	pages, err := c.deps.Inspector.PageCount(ctx, file.Content, file.Size)
	if _, seekErr := file.Content.Seek(0, io.SeekStart); seekErr != nil {
		c.deps.Logger.Warn("pdf_probe_rewind_failed", "error", seekErr)
		return 0
	}
	if err != nil {
		c.deps.Logger.Warn("pdf_probe_failed", "file", file.Name, "error", err)
		return 0
	}
	return pages
}

func (c *SubmissionController) journalAttempt(
	ctx context.Context,
	draft domain.Draft,
	target domain.UploadTarget,
	cfg domain.Configuration,
	st domain.Status,
	pdfPages int,
) {
	if c.deps.Journal == nil {
		return
	}

	rec := &domain.SubmissionRecord{
		ID:           uuid.NewString(),
		Email:        draft.Email,
		Category:     draft.Category,
		Description:  draft.Description,
		FileName:     draft.File.Name,
		FileSize:     draft.File.Size,
		MimeType:     draft.File.ContentType,
		Folder:       target.Folder,
		ObjectID:     target.ObjectID,
		PDFPages:     pdfPages,
		ConfigSource: cfg.Source,
		CreatedAt:    c.deps.Now().UTC(),
	}
	switch st.Kind {
	case domain.StatusSucceeded:
		rec.Outcome = domain.OutcomeSucceeded
		rec.ResultURL = st.Result.URL
		rec.AssetID = st.Result.AssetID
	default:
		rec.Outcome = domain.OutcomeFailed
		if st.Err != nil {
			rec.ErrorKind = st.Err.Kind
			rec.ErrorMessage = st.Err.Message
		}
	}

	if err := c.deps.Journal.Record(ctx, rec); err != nil {
		c.deps.Logger.Warn("journal_record_failed", "submission_id", rec.ID, "error", err)
		return
	}
	if st.Kind == domain.StatusSucceeded && c.deps.Events != nil {
		if err := c.deps.Events.PublishSubmissionCompleted(ctx, rec.ID); err != nil {
			c.deps.Logger.Warn("publish_completed_failed", "submission_id", rec.ID, "error", err)
		}
	}
}

func (c *SubmissionController) resetTerminalLocked() {
	if c.status.Kind == domain.StatusSucceeded || c.status.Kind == domain.StatusFailed {
		c.status = domain.Status{Kind: domain.StatusIdle}
	}
}

// validateDraft applies the submission-time checks in their fixed order:
// email shape, file presence, file size, description, category. File type is
// checked at selection time, not here.
func validateDraft(d domain.Draft) error {
	fail := func(msg string) error {
		return domain.WrapError(domain.ErrValidation, "submit", errors.New(msg))
	}
	switch {
	case !domain.ValidEmail(d.Email):
		return fail("Enter a valid email. This identifies you.")
	case d.File.IsZero():
		return fail("Select or take a photo (or choose a PDF) first.")
	case !domain.WithinSizeLimit(d.File.Size):
		return fail("File is too large. Please keep under 15MB.")
	case !domain.RequiredText(d.Description):
		return fail("Description is required.")
	case !domain.RequiredText(d.Category):
		return fail("Category is required.")
	}
	return nil
}

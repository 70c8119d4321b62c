package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
	"github.com/mkravchenko/receiptdrop/internal/core/ports"
)

const exportRowLimit = 1000

// HistoryUseCase reads the submission journal and renders exports. With the
// journal disabled it degrades to not-found / empty workbooks.
type HistoryUseCase struct {
	journal  ports.SubmissionJournal
	exporter ports.JournalExporter
}

func NewHistoryUseCase(journal ports.SubmissionJournal, exporter ports.JournalExporter) *HistoryUseCase {
	return &HistoryUseCase{journal: journal, exporter: exporter}
}

func (uc *HistoryUseCase) Get(ctx context.Context, id string) (*domain.SubmissionRecord, error) {
	if uc.journal == nil {
		return nil, domain.WrapError(domain.ErrSubmissionNotFound, "get submission", errors.New("journal is disabled"))
	}
	return uc.journal.GetByID(ctx, id)
}

func (uc *HistoryUseCase) ExportXLSX(ctx context.Context, w io.Writer) error {
	var records []domain.SubmissionRecord
	if uc.journal != nil {
		var err error
		records, err = uc.journal.List(ctx, exportRowLimit)
		if err != nil {
			return err
		}
	}
	return uc.exporter.ExportXLSX(records, w)
}

// Package xlsx renders journal rows into an XLSX workbook.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
)

const sheet = "Submissions"

type Exporter struct{}

func New() Exporter {
	return Exporter{}
}

func (Exporter) ExportXLSX(records []domain.SubmissionRecord, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headers := []string{
		"Submitted At",
		"Email",
		"Category",
		"Description",
		"File",
		"Size (bytes)",
		"Outcome",
		"Error",
		"URL",
		"Object ID",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, rec := range records {
		values := []any{
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.Email,
			rec.Category,
			rec.Description,
			rec.FileName,
			rec.FileSize,
			rec.Outcome,
			rec.ErrorMessage,
			rec.ResultURL,
			rec.ObjectID,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

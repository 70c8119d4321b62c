// Package inspect probes draft file content for journal annotation.
package inspect

import (
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

type PDFInspector struct{}

func NewPDFInspector() PDFInspector {
	return PDFInspector{}
}

// PageCount parses the PDF at r and returns its page count. Callers are
// responsible for rewinding any shared reader afterwards.
func (PDFInspector) PageCount(_ context.Context, r io.ReaderAt, size int64) (int, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	return reader.NumPage(), nil
}

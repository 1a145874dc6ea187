package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

// ErrUnsupportedFormat is returned for documents whose name does not mark them as PDF.
var ErrUnsupportedFormat = errors.New("not a pdf document")

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func IsPDF(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// Extract concatenates the plain text of every page in document order.
func (e *Extractor) Extract(ctx context.Context, doc domain.NoticeDocument) (text string, err error) {
	if !IsPDF(doc.Filename) {
		return "", ErrUnsupportedFormat
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parse pdf %s: %v", doc.Filename, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", doc.Filename, err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d of %s: %w", i, doc.Filename, err)
		}
		builder.WriteString(pageText)
	}
	return builder.String(), nil
}

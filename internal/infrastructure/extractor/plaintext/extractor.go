package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

// Extractor decodes raw bytes as UTF-8, dropping undecodable sequences. It
// never fails and is the fallback for every other extractor.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, doc domain.NoticeDocument) (string, error) {
	return Decode(doc.Content), nil
}

func Decode(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	text := string(raw)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	return strings.TrimSpace(text)
}

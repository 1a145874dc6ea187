package extractor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
	"github.com/kirillkom/ca-suite-backend/internal/core/ports"
)

// Chain tries the primary extractor and falls back when it fails or yields no text.
type Chain struct {
	primary  ports.TextExtractor
	fallback ports.TextExtractor
}

func NewChain(primary, fallback ports.TextExtractor) *Chain {
	return &Chain{primary: primary, fallback: fallback}
}

func (c *Chain) Extract(ctx context.Context, doc domain.NoticeDocument) (string, error) {
	if c.primary != nil {
		text, err := c.primary.Extract(ctx, doc)
		switch {
		case err != nil:
			slog.Debug("primary_extraction_failed", "filename", doc.Filename, "error", err)
		case strings.TrimSpace(text) != "":
			return text, nil
		}
	}
	if c.fallback == nil {
		return "", nil
	}
	return c.fallback.Extract(ctx, doc)
}

package plaintext

import (
	"context"
	"testing"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

func TestExtractDropsInvalidSequences(t *testing.T) {
	raw := append([]byte("late "), 0xff, 0xfe)
	raw = append(raw, []byte("fee")...)

	text, err := NewExtractor().Extract(context.Background(), domain.NoticeDocument{Filename: "n.txt", Content: raw})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "late fee" {
		t.Fatalf("expected invalid bytes dropped, got %q", text)
	}
}

func TestExtractEmptyContent(t *testing.T) {
	text, err := NewExtractor().Extract(context.Background(), domain.NoticeDocument{Filename: "n.txt"})
	if err != nil || text != "" {
		t.Fatalf("expected empty text and nil error, got %q, %v", text, err)
	}
}

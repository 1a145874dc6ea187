package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

func TestGenerateReplySendsSingleUserMessage(t *testing.T) {
	gen := &generatorFake{reply: "hello"}
	uc := NewGenerateReplyUseCase(gen, testSettings)

	reply, err := uc.GenerateReply(context.Background(), "Say hello")
	if err != nil {
		t.Fatalf("GenerateReply() error = %v", err)
	}
	if reply != "hello" {
		t.Fatalf("expected hello, got %q", reply)
	}
	if len(gen.last.Messages) != 1 || gen.last.Messages[0].Role != domain.RoleUser || gen.last.Messages[0].Content != "Say hello" {
		t.Fatalf("unexpected messages: %+v", gen.last.Messages)
	}
}

func TestGenerateReplyTagsUpstreamError(t *testing.T) {
	uc := NewGenerateReplyUseCase(&generatorFake{err: errors.New("connection refused")}, testSettings)

	_, err := uc.GenerateReply(context.Background(), "x")
	if !domain.IsKind(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
	"github.com/kirillkom/ca-suite-backend/internal/core/ports"
)

const (
	noticeSystemPrompt = "You are a helpful assistant drafting formal replies to GST notices."
	noticeUserPrefix   = "Draft a professional response to the following notice:\n"
)

type NoticeIntakeUseCase struct {
	extractor ports.TextExtractor
	generator ports.TextGenerator
	settings  domain.GenerationSettings
}

func NewNoticeIntakeUseCase(
	extractor ports.TextExtractor,
	generator ports.TextGenerator,
	settings domain.GenerationSettings,
) *NoticeIntakeUseCase {
	return &NoticeIntakeUseCase{
		extractor: extractor,
		generator: generator,
		settings:  settings,
	}
}

// Analyze reports missing supporting documents for a notice and, only when
// nothing is missing, drafts a reply through the generator.
func (uc *NoticeIntakeUseCase) Analyze(
	ctx context.Context,
	notice domain.NoticeDocument,
	attachments []domain.NoticeDocument,
) (*domain.NoticeAnalysis, error) {
	text := uc.extractText(ctx, notice)

	analysis := &domain.NoticeAnalysis{
		MissingDocuments: DetectMissingDocuments(text, len(attachments)),
	}
	if !analysis.Complete() {
		return analysis, nil
	}

	reply, err := draft(ctx, uc.generator, "draft notice reply", domain.GenerationRequest{
		Messages: []domain.ChatMessage{
			{Role: domain.RoleSystem, Content: noticeSystemPrompt},
			{Role: domain.RoleUser, Content: noticeUserPrefix + text},
		},
		MaxTokens:   uc.settings.MaxTokens,
		Temperature: uc.settings.Temperature,
	})
	if err != nil {
		return nil, err
	}
	analysis.Reply = reply
	return analysis, nil
}

func (uc *NoticeIntakeUseCase) extractText(ctx context.Context, notice domain.NoticeDocument) string {
	if uc.extractor == nil {
		return ""
	}
	text, err := uc.extractor.Extract(ctx, notice)
	if err != nil {
		slog.Debug("notice_extraction_failed", "filename", notice.Filename, "error", err)
		return ""
	}
	return text
}

// draft runs one generation call and tags failures with their error kind.
func draft(ctx context.Context, generator ports.TextGenerator, operation string, req domain.GenerationRequest) (string, error) {
	if generator == nil {
		return "", domain.WrapError(domain.ErrConfiguration, operation, errors.New("text generator not configured"))
	}
	reply, err := generator.Generate(ctx, req)
	if err != nil {
		if domain.IsKind(err, domain.ErrConfiguration) ||
			domain.IsKind(err, domain.ErrUpstream) ||
			domain.IsKind(err, domain.ErrTemporary) {
			return "", err
		}
		return "", domain.WrapError(domain.ErrUpstream, operation, err)
	}
	return reply, nil
}

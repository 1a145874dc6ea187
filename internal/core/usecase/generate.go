package usecase

import (
	"context"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
	"github.com/kirillkom/ca-suite-backend/internal/core/ports"
)

type GenerateReplyUseCase struct {
	generator ports.TextGenerator
	settings  domain.GenerationSettings
}

func NewGenerateReplyUseCase(generator ports.TextGenerator, settings domain.GenerationSettings) *GenerateReplyUseCase {
	return &GenerateReplyUseCase{
		generator: generator,
		settings:  settings,
	}
}

func (uc *GenerateReplyUseCase) GenerateReply(ctx context.Context, prompt string) (string, error) {
	return draft(ctx, uc.generator, "generate reply", domain.GenerationRequest{
		Messages:    []domain.ChatMessage{{Role: domain.RoleUser, Content: prompt}},
		MaxTokens:   uc.settings.MaxTokens,
		Temperature: uc.settings.Temperature,
	})
}

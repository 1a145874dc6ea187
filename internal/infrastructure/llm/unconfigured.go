package llm

import (
	"context"
	"errors"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

// Unconfigured fails every call without reaching any backend.
type Unconfigured struct {
	Reason string
}

func (u Unconfigured) Generate(context.Context, domain.GenerationRequest) (string, error) {
	return "", domain.WrapError(domain.ErrConfiguration, "generate", errors.New(u.Reason))
}

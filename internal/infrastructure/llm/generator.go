// Package llm selects and wraps the text generation backend.
package llm

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kirillkom/ca-suite-backend/internal/core/ports"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/llm/anthropic"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/llm/openai"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/resilience"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

type Config struct {
	Provider string
	Model    string
	Timeout  time.Duration

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	AnthropicAPIKey  string
	AnthropicBaseURL string
	OllamaURL        string
}

// NewGenerator never fails: a backend that cannot be built is replaced by
// Unconfigured so the service still starts and reports the problem per call.
func NewGenerator(cfg Config, executor *resilience.Executor, observer Observer) ports.TextGenerator {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderOpenAI
	}

	switch provider {
	case ProviderOpenAI:
		client, err := openai.New(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			slog.Warn("llm_unconfigured", "provider", provider, "error", err)
			return Unconfigured{Reason: err.Error()}
		}
		return NewResilient(client, provider, executor, openai.ClassifyError, observer)
	case ProviderAnthropic:
		client, err := anthropic.New(anthropic.Config{
			APIKey:  cfg.AnthropicAPIKey,
			BaseURL: cfg.AnthropicBaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			slog.Warn("llm_unconfigured", "provider", provider, "error", err)
			return Unconfigured{Reason: err.Error()}
		}
		return NewResilient(client, provider, executor, anthropic.ClassifyError, observer)
	case ProviderOllama:
		if strings.TrimSpace(cfg.OllamaURL) == "" {
			return Unconfigured{Reason: "Ollama URL not configured"}
		}
		client := ollama.New(cfg.OllamaURL, cfg.Model, cfg.Timeout)
		return NewResilient(client, provider, executor, ollama.ClassifyError, observer)
	default:
		return Unconfigured{Reason: fmt.Sprintf("unknown LLM provider %q", cfg.Provider)}
	}
}

package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	APIPort            string `yaml:"api_port"`
	LogLevel           string `yaml:"log_level"`
	CORSAllowedOrigins string `yaml:"cors_allowed_origins"`
	MaxUploadBytes     int    `yaml:"max_upload_bytes"`

	DatabaseURL string `yaml:"database_url"`

	NATSURL           string `yaml:"nats_url"`
	NATSSubjectPrefix string `yaml:"nats_subject_prefix"`

	LLMProvider       string  `yaml:"llm_provider"`
	LLMModel          string  `yaml:"llm_model"`
	LLMMaxTokens      int     `yaml:"llm_max_tokens"`
	LLMTemperature    float64 `yaml:"llm_temperature"`
	LLMTimeoutSeconds int     `yaml:"llm_timeout_seconds"`

	OpenAIAPIKey     string `yaml:"openai_api_key"`
	OpenAIBaseURL    string `yaml:"openai_base_url"`
	AnthropicAPIKey  string `yaml:"anthropic_api_key"`
	AnthropicBaseURL string `yaml:"anthropic_base_url"`
	OllamaURL        string `yaml:"ollama_url"`

	PDFExtractionEnabled bool `yaml:"pdf_extraction_enabled"`

	LLMRetryMaxAttempts int  `yaml:"llm_retry_max_attempts"`
	LLMBreakerEnabled   bool `yaml:"llm_breaker_enabled"`

	APIRateLimitRPS       float64 `yaml:"api_rate_limit_rps"`
	APIRateLimitBurst     int     `yaml:"api_rate_limit_burst"`
	APIMaxInFlight        int     `yaml:"api_max_inflight"`
	APIBackpressureWaitMS int     `yaml:"api_backpressure_wait_ms"`
	APIMaxConnections     int     `yaml:"api_max_connections"`
}

func Load() Config {
	return Config{
		APIPort:            mustEnv("API_PORT", "8000"),
		LogLevel:           mustEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: mustEnv("CORS_ALLOWED_ORIGINS", "*"),
		MaxUploadBytes:     mustEnvInt("MAX_UPLOAD_BYTES", 32<<20),

		DatabaseURL: mustEnv("DATABASE_URL", "sqlite:///./ca_suite.db"),

		NATSURL:           mustEnv("NATS_URL", ""),
		NATSSubjectPrefix: mustEnv("NATS_SUBJECT_PREFIX", "casuite.records"),

		LLMProvider:       strings.ToLower(mustEnv("LLM_PROVIDER", "openai")),
		LLMModel:          mustEnv("LLM_MODEL", ""),
		LLMMaxTokens:      mustEnvInt("LLM_MAX_TOKENS", 512),
		LLMTemperature:    mustEnvFloat("LLM_TEMPERATURE", 0.2),
		LLMTimeoutSeconds: mustEnvInt("LLM_TIMEOUT_SECONDS", 0),

		OpenAIAPIKey:     mustEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    mustEnv("OPENAI_BASE_URL", ""),
		AnthropicAPIKey:  mustEnv("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL: mustEnv("ANTHROPIC_BASE_URL", ""),
		OllamaURL:        mustEnv("OLLAMA_URL", "http://localhost:11434"),

		PDFExtractionEnabled: mustEnvBool("PDF_EXTRACTION_ENABLED", true),

		LLMRetryMaxAttempts: mustEnvInt("LLM_RETRY_MAX_ATTEMPTS", 1),
		LLMBreakerEnabled:   mustEnvBool("LLM_BREAKER_ENABLED", true),

		APIRateLimitRPS:       mustEnvFloat("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst:     mustEnvInt("API_RATE_LIMIT_BURST", 20),
		APIMaxInFlight:        mustEnvInt("API_MAX_INFLIGHT", 0),
		APIBackpressureWaitMS: mustEnvInt("API_BACKPRESSURE_WAIT_MS", 250),
		APIMaxConnections:     mustEnvInt("API_MAX_CONNECTIONS", 0),
	}
}

// Redacted returns a copy safe to print: credentials and database passwords
// are masked.
func (c Config) Redacted() Config {
	c.OpenAIAPIKey = mask(c.OpenAIAPIKey)
	c.AnthropicAPIKey = mask(c.AnthropicAPIKey)
	c.DatabaseURL = redactURL(c.DatabaseURL)
	c.NATSURL = redactURL(c.NATSURL)
	return c
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}

func redactURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return raw
	}
	user, _, hasPassword := strings.Cut(userinfo, ":")
	if !hasPassword {
		return raw
	}
	return scheme + "://" + user + ":***@" + host
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

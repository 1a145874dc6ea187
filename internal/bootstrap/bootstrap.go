package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kirillkom/ca-suite-backend/internal/config"
	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
	"github.com/kirillkom/ca-suite-backend/internal/core/ports"
	"github.com/kirillkom/ca-suite-backend/internal/core/usecase"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/extractor"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/extractor/pdf"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/extractor/plaintext"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/llm"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/queue/nats"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/repository/sqlstore"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/resilience"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/tabular"
)

type App struct {
	Config config.Config

	Store   *sqlstore.Store
	Notices ports.NoticeAnalyzer
	Replies ports.ReplyGenerator
	Tally   ports.TallyImporter
	Records ports.RecordService

	closeFn func()
}

// New wires the full API. observer may be nil.
func New(ctx context.Context, cfg config.Config, observer llm.Observer) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var events ports.RecordEventPublisher
	var publisher *nats.Publisher
	if strings.TrimSpace(cfg.NATSURL) != "" {
		publisher, err = nats.NewPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix, nats.Options{
			ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
		})
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("init event publisher: %w", err)
		}
		events = publisher
	}

	generator := NewGenerator(cfg, observer)
	settings := GenerationSettings(cfg)

	return &App{
		Config:  cfg,
		Store:   store,
		Notices: usecase.NewNoticeIntakeUseCase(NewExtractor(cfg), generator, settings),
		Replies: usecase.NewGenerateReplyUseCase(generator, settings),
		Tally:   NewTallyImporter(),
		Records: usecase.NewRecordsUseCase(store, store, store, events),
		closeFn: func() {
			if publisher != nil {
				publisher.Close()
			}
			_ = store.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// OpenStore opens the database and creates missing tables.
func OpenStore(ctx context.Context, cfg config.Config) (*sqlstore.Store, error) {
	store, err := sqlstore.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	slog.Info("database_ready", "dialect", string(store.Dialect()))
	return store, nil
}

func NewGenerator(cfg config.Config, observer llm.Observer) ports.TextGenerator {
	policy := resilience.DefaultConfig()
	policy.MaxAttempts = cfg.LLMRetryMaxAttempts
	policy.BreakerEnabled = cfg.LLMBreakerEnabled

	return llm.NewGenerator(llm.Config{
		Provider:         cfg.LLMProvider,
		Model:            cfg.LLMModel,
		Timeout:          time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		AnthropicAPIKey:  cfg.AnthropicAPIKey,
		AnthropicBaseURL: cfg.AnthropicBaseURL,
		OllamaURL:        cfg.OllamaURL,
	}, resilience.NewExecutor(policy), observer)
}

func NewExtractor(cfg config.Config) ports.TextExtractor {
	fallback := plaintext.NewExtractor()
	if !cfg.PDFExtractionEnabled {
		return fallback
	}
	return extractor.NewChain(pdf.NewExtractor(), fallback)
}

func NewTallyImporter() *usecase.TallyImportUseCase {
	return usecase.NewTallyImportUseCase(map[string]ports.TableParser{
		usecase.FormatCSV:  tabular.NewCSVParser(),
		usecase.FormatJSON: tabular.NewJSONParser(),
		usecase.FormatXLSX: tabular.NewXLSXParser(),
	})
}

func GenerationSettings(cfg config.Config) domain.GenerationSettings {
	return domain.GenerationSettings{
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: float32(cfg.LLMTemperature),
	}
}

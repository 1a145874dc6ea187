package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/resilience"
)

type generatorFunc func(ctx context.Context, req domain.GenerationRequest) (string, error)

func (f generatorFunc) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	return f(ctx, req)
}

type observerFake struct {
	statuses []string
}

func (o *observerFake) RecordGeneration(_ string, status string, _ time.Duration) {
	o.statuses = append(o.statuses, status)
}

func TestNewGeneratorWithoutKeyIsUnconfigured(t *testing.T) {
	for _, provider := range []string{"", "openai", "anthropic"} {
		gen := NewGenerator(Config{Provider: provider}, nil, nil)
		if _, ok := gen.(Unconfigured); !ok {
			t.Fatalf("provider %q: expected Unconfigured, got %T", provider, gen)
		}
		_, err := gen.Generate(context.Background(), domain.GenerationRequest{})
		if !domain.IsKind(err, domain.ErrConfiguration) {
			t.Fatalf("provider %q: expected configuration error, got %v", provider, err)
		}
		if !strings.Contains(err.Error(), "API key not configured") {
			t.Fatalf("provider %q: unexpected message %q", provider, err.Error())
		}
	}
}

func TestNewGeneratorUnknownProvider(t *testing.T) {
	gen := NewGenerator(Config{Provider: "mystery"}, nil, nil)
	if _, ok := gen.(Unconfigured); !ok {
		t.Fatalf("expected Unconfigured, got %T", gen)
	}
}

func TestNewGeneratorOllamaNeedsNoKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"Dear Officer"}}`))
	}))
	defer server.Close()

	gen := NewGenerator(Config{Provider: "Ollama", OllamaURL: server.URL}, nil, nil)
	reply, err := gen.Generate(context.Background(), domain.GenerationRequest{
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reply != "Dear Officer" {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestResilientWrapsFailuresAsUpstream(t *testing.T) {
	observer := &observerFake{}
	gen := NewResilient(generatorFunc(func(context.Context, domain.GenerationRequest) (string, error) {
		return "", errors.New("connection refused")
	}), "openai", nil, nil, observer)

	_, err := gen.Generate(context.Background(), domain.GenerationRequest{})
	if !domain.IsKind(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if len(observer.statuses) != 1 || observer.statuses[0] != "error" {
		t.Fatalf("unexpected observations %v", observer.statuses)
	}
}

func TestResilientOpenCircuitIsTemporary(t *testing.T) {
	executor := resilience.NewExecutor(resilience.Config{
		MaxAttempts:             1,
		BreakerEnabled:          true,
		BreakerMinRequests:      1,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      time.Minute,
		BreakerHalfOpenMaxCalls: 1,
	})
	calls := 0
	gen := NewResilient(generatorFunc(func(context.Context, domain.GenerationRequest) (string, error) {
		calls++
		return "", errors.New("boom")
	}), "openai", executor, resilience.PermanentFailure, nil)

	if _, err := gen.Generate(context.Background(), domain.GenerationRequest{}); !domain.IsKind(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error first, got %v", err)
	}
	_, err := gen.Generate(context.Background(), domain.GenerationRequest{})
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error once circuit opens, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected backend called once, got %d", calls)
	}
}

func TestResilientPassesReplyThrough(t *testing.T) {
	observer := &observerFake{}
	gen := NewResilient(generatorFunc(func(_ context.Context, req domain.GenerationRequest) (string, error) {
		return "reply to " + req.Messages[0].Content, nil
	}), "anthropic", nil, nil, observer)

	out, err := gen.Generate(context.Background(), domain.GenerationRequest{
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "notice"}},
	})
	if err != nil || out != "reply to notice" {
		t.Fatalf("unexpected result %q, %v", out, err)
	}
	if len(observer.statuses) != 1 || observer.statuses[0] != "ok" {
		t.Fatalf("unexpected observations %v", observer.statuses)
	}
}

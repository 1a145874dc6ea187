package llm

import (
	"context"
	"time"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
	"github.com/kirillkom/ca-suite-backend/internal/core/ports"
	"github.com/kirillkom/ca-suite-backend/internal/infrastructure/resilience"
)

type Observer interface {
	RecordGeneration(provider, status string, duration time.Duration)
}

// Resilient runs a backend under the shared executor and maps its failures
// onto domain error kinds.
type Resilient struct {
	next     ports.TextGenerator
	provider string
	executor *resilience.Executor
	classify resilience.Classifier
	observer Observer
}

func NewResilient(next ports.TextGenerator, provider string, executor *resilience.Executor, classify resilience.Classifier, observer Observer) *Resilient {
	return &Resilient{
		next:     next,
		provider: provider,
		executor: executor,
		classify: classify,
		observer: observer,
	}
}

func (r *Resilient) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	start := time.Now()
	out, err := resilience.Call(ctx, r.executor, "llm."+r.provider+".generate", r.classify, func(ctx context.Context) (string, error) {
		return r.next.Generate(ctx, req)
	})

	status := "ok"
	switch {
	case err == nil:
	case resilience.IsCircuitOpen(err):
		status = "circuit_open"
		err = domain.WrapError(domain.ErrTemporary, "generate", err)
	default:
		status = "error"
		err = domain.WrapError(domain.ErrUpstream, "generate", err)
	}
	if r.observer != nil {
		r.observer.RecordGeneration(r.provider, status, time.Since(start))
	}
	return out, err
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *HTTPServerMetrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestMiddlewareCountsRequestsAndCollapsesUnknownPaths(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clients" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	for _, path := range []string{"/clients", "/random/1", "/random/2"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, path, nil))
	}

	out := scrape(t, m)
	if !strings.Contains(out, `casuite_http_requests_total{method="POST",path="/clients",service="api",status="201"} 1`) {
		t.Fatalf("missing /clients counter in:\n%s", out)
	}
	if !strings.Contains(out, `casuite_http_requests_total{method="POST",path="unmatched",service="api",status="404"} 2`) {
		t.Fatalf("missing collapsed 404 counter in:\n%s", out)
	}
}

func TestDomainCounters(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	m.RecordNoticeOutcome("incomplete")
	m.RecordGeneration("openai", "ok", 300*time.Millisecond)
	m.RecordTallyImport("csv", "ok", 12)
	m.RecordCreated("client")

	out := scrape(t, m)
	for _, want := range []string{
		`casuite_notice_analyses_total{outcome="incomplete",service="api"} 1`,
		`casuite_llm_generations_total{provider="openai",service="api",status="ok"} 1`,
		`casuite_tally_imports_total{format="csv",service="api",status="ok"} 1`,
		`casuite_records_created_total{kind="client",service="api"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in:\n%s", want, out)
		}
	}
}

package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	noticeTotal        *prometheus.CounterVec
	generationTotal    *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	tallyImportsTotal  *prometheus.CounterVec
	tallyRows          prometheus.Histogram
	recordsCreated     *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casuite",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "casuite",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "casuite",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	noticeTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casuite",
			Subsystem: "notice",
			Name:      "analyses_total",
			Help:      "Notice intake results by outcome.",
		},
		[]string{"service", "outcome"},
	)
	generationTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casuite",
			Subsystem: "llm",
			Name:      "generations_total",
			Help:      "Text generation calls by provider and status.",
		},
		[]string{"service", "provider", "status"},
	)
	generationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "casuite",
			Subsystem: "llm",
			Name:      "generation_duration_seconds",
			Help:      "Text generation latency in seconds.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"service", "provider"},
	)
	tallyImportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casuite",
			Subsystem: "tally",
			Name:      "imports_total",
			Help:      "Tally imports by file format and status.",
		},
		[]string{"service", "format", "status"},
	)
	tallyRows := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "casuite",
			Subsystem: "tally",
			Name:      "rows",
			Help:      "Distribution of data rows per successful import.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	recordsCreated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casuite",
			Subsystem: "records",
			Name:      "created_total",
			Help:      "Created client, task and appointment records.",
		},
		[]string{"service", "kind"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		noticeTotal,
		generationTotal,
		generationDuration,
		tallyImportsTotal,
		tallyRows,
		recordsCreated,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		service:            service,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		noticeTotal:        noticeTotal,
		generationTotal:    generationTotal,
		generationDuration: generationDuration,
		tallyImportsTotal:  tallyImportsTotal,
		tallyRows:          tallyRows,
		recordsCreated:     recordsCreated,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		if recorder.statusCode == http.StatusNotFound {
			// Unknown paths would otherwise blow up label cardinality.
			path = "unmatched"
		}
		m.requestTotal.WithLabelValues(
			m.service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(m.service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordNoticeOutcome counts notice analyses: "complete", "incomplete" or "error".
func (m *HTTPServerMetrics) RecordNoticeOutcome(outcome string) {
	m.noticeTotal.WithLabelValues(m.service, outcome).Inc()
}

// RecordGeneration satisfies the llm package observer.
func (m *HTTPServerMetrics) RecordGeneration(provider, status string, duration time.Duration) {
	if provider == "" {
		provider = "unknown"
	}
	m.generationTotal.WithLabelValues(m.service, provider, status).Inc()
	m.generationDuration.WithLabelValues(m.service, provider).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordTallyImport(format, status string, rows int) {
	m.tallyImportsTotal.WithLabelValues(m.service, format, status).Inc()
	if status == "ok" {
		m.tallyRows.Observe(float64(rows))
	}
}

func (m *HTTPServerMetrics) RecordCreated(kind string) {
	m.recordsCreated.WithLabelValues(m.service, kind).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

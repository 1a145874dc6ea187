package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/kirillkom/ca-suite-backend/internal/config"
	"github.com/kirillkom/ca-suite-backend/internal/core/ports"
	"github.com/kirillkom/ca-suite-backend/internal/observability/metrics"
)

const welcomeMessage = "Welcome to the CA‑Suite backend API"

type Router struct {
	notices ports.NoticeAnalyzer
	replies ports.ReplyGenerator
	tally   ports.TallyImporter
	records ports.RecordService

	metrics *metrics.HTTPServerMetrics
	apiDoc  *openapi3.T

	corsAllowedOrigins string
	maxUploadBytes     int64
	rateLimitRPS       float64
	rateLimitBurst     int
	maxInFlight        int
	backpressureWait   time.Duration
}

func NewRouter(
	cfg config.Config,
	notices ports.NoticeAnalyzer,
	replies ports.ReplyGenerator,
	tally ports.TallyImporter,
	records ports.RecordService,
) *Router {
	maxUpload := int64(cfg.MaxUploadBytes)
	if maxUpload <= 0 {
		maxUpload = 32 << 20
	}
	return &Router{
		notices:            notices,
		replies:            replies,
		tally:              tally,
		records:            records,
		corsAllowedOrigins: cfg.CORSAllowedOrigins,
		maxUploadBytes:     maxUpload,
		rateLimitRPS:       cfg.APIRateLimitRPS,
		rateLimitBurst:     cfg.APIRateLimitBurst,
		maxInFlight:        cfg.APIMaxInFlight,
		backpressureWait:   time.Duration(cfg.APIBackpressureWaitMS) * time.Millisecond,
	}
}

func (rt *Router) WithMetrics(m *metrics.HTTPServerMetrics) *Router {
	rt.metrics = m
	return rt
}

// WithAPIDoc serves doc at /openapi.json.
func (rt *Router) WithAPIDoc(doc *openapi3.T) *Router {
	rt.apiDoc = doc
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.root)
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/openapi.json", rt.openAPIDocument)
	mux.HandleFunc("/generate_reply", rt.generateReply)
	mux.HandleFunc("/gst_notice", rt.gstNotice)
	mux.HandleFunc("/import_tally", rt.importTally)
	mux.HandleFunc("/clients", rt.clients)
	mux.HandleFunc("/tasks", rt.tasks)
	mux.HandleFunc("/appointments", rt.appointments)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.maxInFlight, rt.backpressureWait)
	handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	handler = corsMiddleware(handler, rt.corsAllowedOrigins)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return
	}
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

func (rt *Router) healthz(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) openAPIDocument(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if rt.apiDoc == nil {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, rt.apiDoc)
}

// allowMethod writes 405 and returns false unless r uses one of methods.
func allowMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	for _, m := range methods {
		w.Header().Add("Allow", m)
	}
	writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

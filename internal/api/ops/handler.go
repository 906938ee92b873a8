// Package ops serves the operations endpoints: liveness, readiness and Prometheus metrics.
package ops

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/sympathy-server/internal/logger"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type checkResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]checkResult `json:"checks,omitempty"`
}

// Handler serves the operations endpoints.
type Handler struct {
	checks       map[string]Pinger
	checkTimeout time.Duration
	logger       *logger.Logger
}

// NewHandler creates a Handler. checks maps dependency names to their pingers.
func NewHandler(checks map[string]Pinger, logger *logger.Logger) *Handler {
	return &Handler{
		checks:       checks,
		checkTimeout: 2 * time.Second,
		logger:       logger,
	}
}

// Routes mounts /health/live, /health/ready and /metrics.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Live reports that the process is up.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready pings every dependency and answers 503 when any of them fails.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.checkTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]checkResult, len(names)),
	}
	code := http.StatusOK

	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			h.logger.Warn("Ops handler: readiness check failed",
				"dependency", name,
				"error", err.Error())
			resp.Checks[name] = checkResult{Status: "fail", Message: err.Error()}
			resp.Status = "fail"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = checkResult{Status: "ok"}
	}

	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/Divyansh-Wadhwa/AURA/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// healthResponse mirrors the OpenAPI schema for GET /healthz.
type healthResponse struct {
	Status       string   `json:"status"`
	ModelsLoaded bool     `json:"models_loaded"`
	Skills       []string `json:"skills"`
	NFeatures    int      `json:"n_features"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleHealth handles GET /healthz requests. The service is "degraded"
// when any skill model is missing; it still serves, with neutral scores.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	readiness := h.deps.Readiness()
	status := "healthy"
	if !readiness.Loaded {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       status,
		ModelsLoaded: readiness.Loaded,
		Skills:       readiness.Skills,
		NFeatures:    readiness.NFeatures,
	})
}

// MetricsHandler serves Prometheus metrics.
type MetricsHandler struct {
	handler http.Handler
}

// NewMetricsHandler creates a metrics handler on the custom registry so we
// expose exactly the series this service registers.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{
		handler: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleMetrics handles GET /metrics requests.
func (h *MetricsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Divyansh-Wadhwa/AURA/internal/domain/contract"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Score runs the decision pipeline over one session's raw features.
	// It always returns a complete result; err marks degraded or internal
	// failures.
	Score(ctx context.Context, raw model.RawFeatures) (model.ScoreResult, error)

	// ScoreBatch scores several sessions, preserving input order.
	ScoreBatch(ctx context.Context, batch []model.RawFeatures) ([]model.ScoreResult, error)

	// MaxBatchSize caps the number of sessions in one batch request.
	MaxBatchSize() int

	// Introspection.
	Readiness() model.Readiness
	ModelInfo() model.ModelInfo
	Schema() contract.Schema
}

// Server wires HTTP routes for the business API.
type Server struct {
	scoreHandler     *ScoreHandler
	healthHandler    *HealthHandler
	metricsHandler   *MetricsHandler
	modelInfoHandler *ModelInfoHandler
	schemaHandler    *SchemaHandler
	statsHandler     *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		scoreHandler:     NewScoreHandler(deps),
		healthHandler:    NewHealthHandler(deps),
		metricsHandler:   NewMetricsHandler(),
		modelInfoHandler: NewModelInfoHandler(deps),
		schemaHandler:    NewSchemaHandler(deps),
		statsHandler:     NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/score/batch", MetricsMiddleware(s.scoreHandler.HandleScoreBatch, "score_batch"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandleScore, "score"))
	mux.HandleFunc("/model/info", MetricsMiddleware(s.modelInfoHandler.HandleModelInfo, "model_info"))
	mux.HandleFunc("/schema", MetricsMiddleware(s.schemaHandler.HandleSchema, "schema"))
}

// scoreRequest mirrors the OpenAPI schema for POST /score. Feature values
// may arrive grouped by modality or flat; groups win over flat keys.
type scoreRequest struct {
	SessionID    string         `json:"session_id"`
	Features     map[string]any `json:"features"`
	TextMetrics  map[string]any `json:"text_metrics"`
	AudioMetrics map[string]any `json:"audio_metrics"`
	VideoMetrics map[string]any `json:"video_metrics"`
}

// flatten merges the grouped and flat feature maps into one raw mapping.
// Absent groups stay absent so downstream modality detection still sees
// which keys the caller actually sent.
func (r scoreRequest) flatten() model.RawFeatures {
	raw := make(model.RawFeatures, len(r.Features)+len(r.TextMetrics)+len(r.AudioMetrics)+len(r.VideoMetrics))
	for k, v := range r.Features {
		raw[k] = v
	}
	for _, group := range []map[string]any{r.TextMetrics, r.AudioMetrics, r.VideoMetrics} {
		for k, v := range group {
			raw[k] = v
		}
	}
	return raw
}

type batchScoreRequest struct {
	Sessions []scoreRequest `json:"sessions"`
}

type scoreResponse struct {
	SessionID string `json:"session_id,omitempty"`
	model.ScoreResult
}

type batchScoreResponse struct {
	Results []scoreResponse `json:"results"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

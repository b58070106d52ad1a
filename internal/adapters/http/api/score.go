// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Divyansh-Wadhwa/AURA/internal/domain/inference"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/model"
)

// ScoreHandler handles scoring requests.
type ScoreHandler struct {
	deps Dependencies
}

// NewScoreHandler creates a new scoring handler.
func NewScoreHandler(deps Dependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandleScore handles POST /score requests. A degraded backend still
// answers 200 with the neutral fallback; scores are never withheld.
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.Score(r.Context(), req.flatten())
	if err != nil && !errors.Is(err, inference.ErrModelsUnavailable) {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{SessionID: req.SessionID, ScoreResult: result})
}

// HandleScoreBatch handles POST /score/batch requests.
func (h *ScoreHandler) HandleScoreBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req batchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Sessions) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("sessions must not be empty")))
		return
	}
	if max := h.deps.MaxBatchSize(); len(req.Sessions) > max {
		writeError(w, http.StatusBadRequest, "batch_too_large",
			WrapKind(op, ErrBatchTooLarge, fmt.Errorf("%d sessions exceeds limit of %d", len(req.Sessions), max)))
		return
	}

	batch := make([]model.RawFeatures, len(req.Sessions))
	for i, session := range req.Sessions {
		batch[i] = session.flatten()
	}

	results, err := h.deps.ScoreBatch(r.Context(), batch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}

	resp := batchScoreResponse{Results: make([]scoreResponse, len(results))}
	for i, result := range results {
		resp.Results[i] = scoreResponse{SessionID: req.Sessions[i].SessionID, ScoreResult: result}
	}
	writeJSON(w, http.StatusOK, resp)
}

package handler

import (
	"net/http"

	"nnx1/internal/catalog"
	"nnx1/internal/model"
	"nnx1/internal/service"
	"nnx1/pkg/logger"
)

// EvaluateHandler serves the stateless evaluation and the phase assessment
type EvaluateHandler struct {
	insightSvc *service.InsightService
	log        logger.Logger
}

// NewEvaluateHandler creates a new evaluate handler
func NewEvaluateHandler(insightSvc *service.InsightService, log logger.Logger) *EvaluateHandler {
	return &EvaluateHandler{insightSvc: insightSvc, log: log}
}

// Evaluate handles POST /v1/evaluate
func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req model.EvaluateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	eval, err := h.insightSvc.Evaluate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

// PhaseQuestions handles GET /v1/phase/questions
func (h *EvaluateHandler) PhaseQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.PhaseQuestions())
}

// Phase handles POST /v1/phase
func (h *EvaluateHandler) Phase(w http.ResponseWriter, r *http.Request) {
	var req model.PhaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.insightSvc.AssessPhase(r.Context(), req.Answers)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

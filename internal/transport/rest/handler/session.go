package handler

import (
	"net/http"

	"nnx1/internal/model"
	"nnx1/internal/service"
	"nnx1/internal/transport/rest/middleware"
	"nnx1/pkg/logger"
)

// SessionHandler handles the one-question-at-a-time flow
type SessionHandler struct {
	sessionSvc *service.SessionService
	log        logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, log logger.Logger) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, log: log}
}

// Start handles POST /v1/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req model.StartSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.sessionSvc.Start(r.Context(), req.Tool, req.Name)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/sessions/{sessionId}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Get(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// RecordAnswer handles POST /v1/sessions/{sessionId}/answers
func (h *SessionHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	var req model.RecordAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	answer, err := h.sessionSvc.RecordAnswer(r.Context(), middleware.GetSessionID(r.Context()), req.QuestionIndex, req.Answer)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

// GoBack handles DELETE /v1/sessions/{sessionId}/answers/last
func (h *SessionHandler) GoBack(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.GoBack(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Complete handles POST /v1/sessions/{sessionId}/complete
func (h *SessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	resp, err := h.sessionSvc.Complete(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

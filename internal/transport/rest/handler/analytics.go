package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"nnx1/internal/model"
	"nnx1/internal/service"
	"nnx1/internal/transport/rest/middleware"
	"nnx1/pkg/logger"
)

// AnalyticsHandler serves the admin analytics endpoints
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
	log          logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc, log: log}
}

// Tool handles GET /v1/admin/tools/{toolId}/analytics
func (h *AnalyticsHandler) Tool(w http.ResponseWriter, r *http.Request) {
	tool, err := model.ParseTool(mux.Vars(r)["toolId"])
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	stats, err := h.analyticsSvc.ToolAnalytics(r.Context(), tool)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Session handles GET /v1/admin/sessions/{sessionId}/summary
func (h *AnalyticsHandler) Session(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	h.log.Debug(r.Context(), "session summary requested",
		logger.String("adminId", middleware.GetAdminID(r.Context())),
		logger.String("sessionId", sessionID))

	summary, err := h.analyticsSvc.SessionSummary(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

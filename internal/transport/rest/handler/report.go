package handler

import (
	"errors"
	"net/http"

	"nnx1/internal/model"
	"nnx1/internal/service"
	"nnx1/internal/transport/rest/middleware"
	"nnx1/pkg/logger"
)

// ReportHandler handles report generation and delivery
type ReportHandler struct {
	reportSvc   *service.ReportService
	deliverySvc *service.DeliveryService
	log         logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService, deliverySvc *service.DeliveryService, log logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportSvc:   reportSvc,
		deliverySvc: deliverySvc,
		log:         log,
	}
}

// Generate handles POST /v1/reports/generate
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.reportSvc.Generate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Send handles POST /v1/reports/send. A failed delivery is still a 200 with
// success=false; only invalid requests are rejected. A sessionId must come
// with that session's token.
func (h *ReportHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req model.DeliveryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SessionID != "" && req.SessionID != middleware.GetSessionID(r.Context()) {
		writeError(w, http.StatusUnauthorized, "session token required")
		return
	}

	result, err := h.deliverySvc.Send(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, result)
			return
		}
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

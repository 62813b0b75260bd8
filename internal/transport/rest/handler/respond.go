package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"nnx1/internal/model"
	"nnx1/internal/service"
	"nnx1/pkg/logger"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, model.ErrUnknownTool):
		return http.StatusNotFound
	case errors.Is(err, service.ErrOutOfOrder),
		errors.Is(err, service.ErrNothingToUndo),
		errors.Is(err, service.ErrIncomplete),
		errors.Is(err, service.ErrSessionComplete):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err with its mapped status. Internal errors are
// logged and hidden from the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(r.Context(), "request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

package handler

import (
	"net/http"

	"nnx1/internal/model"
	"nnx1/internal/service"
	"nnx1/pkg/logger"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
	log     logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, log: log}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"nnx1/internal/catalog"
	"nnx1/internal/model"
	"nnx1/pkg/logger"
)

// ToolHandler serves the static question banks
type ToolHandler struct {
	log logger.Logger
}

// NewToolHandler creates a new tool handler
func NewToolHandler(log logger.Logger) *ToolHandler {
	return &ToolHandler{log: log}
}

// List handles GET /v1/tools
func (h *ToolHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Tools())
}

// Get handles GET /v1/tools/{toolId}
func (h *ToolHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseTool(mux.Vars(r)["toolId"])
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	tool, err := catalog.Tool(id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tool)
}

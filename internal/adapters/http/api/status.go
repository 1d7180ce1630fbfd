// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// modelInfoBody mirrors the model_info object on GET /api/model/status.
type modelInfoBody struct {
	ModelName   string   `json:"model_name"`
	TrainedDate string   `json:"trained_date"`
	Features    []string `json:"features"`
	Status      string   `json:"status"`
}

type modelStatusResponse struct {
	Status    string        `json:"status"`
	ModelInfo modelInfoBody `json:"model_info"`
	Timestamp string        `json:"timestamp"`
}

// StatusHandler handles model status requests.
type StatusHandler struct {
	deps Dependencies
}

// NewStatusHandler creates a new model status handler.
func NewStatusHandler(deps Dependencies) *StatusHandler {
	return &StatusHandler{deps: deps}
}

// HandleModelStatus handles GET /api/model/status requests.
func (h *StatusHandler) HandleModelStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	info, err := h.deps.ModelInfo()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, codeStatus,
			"Model not loaded", "")
		return
	}
	writeJSON(w, http.StatusOK, modelStatusResponse{
		Status: "success",
		ModelInfo: modelInfoBody{
			ModelName:   info.Name,
			TrainedDate: info.TrainedAt.Format(time.RFC3339),
			Features:    info.Features,
			Status:      info.Status,
		},
		Timestamp: h.deps.Now().Format(time.RFC3339),
	})
}

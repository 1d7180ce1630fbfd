// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// Service identity reported on the root endpoint.
const (
	serviceName    = "QueueSmart API"
	serviceVersion = "1.0.0"
)

// rootResponse mirrors the GET / body.
type rootResponse struct {
	Service    string `json:"service"`
	Version    string `json:"version"`
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	ModelReady bool   `json:"model_ready"`
}

// RootHandler answers the health/info endpoint and unknown-path 404s.
type RootHandler struct {
	deps Dependencies
}

// NewRootHandler creates a new root handler.
func NewRootHandler(deps Dependencies) *RootHandler {
	return &RootHandler{deps: deps}
}

// HandleRoot handles GET / and returns envelope 404s for any other path
// that fell through the mux.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, codeNotFound,
			"Endpoint not found", "Please check the API documentation for valid endpoints")
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, rootResponse{
		Service:    serviceName,
		Version:    serviceVersion,
		Status:     "running",
		Timestamp:  h.deps.Now().Format(time.RFC3339),
		ModelReady: h.deps.Ready(),
	})
}

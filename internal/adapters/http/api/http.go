// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/queuesmart/queuesmart/internal/app"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Predict runs one wait-time prediction for a validated request.
	Predict(ctx context.Context, req app.Request) (app.Result, error)

	// Ready reports whether a model artifact is loaded.
	Ready() bool

	// ModelInfo exposes metadata about the loaded artifact.
	ModelInfo() (app.ModelInfo, error)

	// Now is the service clock, shared so response timestamps line up with
	// completion estimates.
	Now() time.Time
}

// Server wires HTTP routes for the prediction API.
type Server struct {
	rootHandler      *RootHandler
	metricsHandler   *MetricsHandler
	predictHandler   *PredictHandler
	statusHandler    *StatusHandler
	referenceHandler *ReferenceHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		rootHandler:      NewRootHandler(deps),
		metricsHandler:   NewMetricsHandler(),
		predictHandler:   NewPredictHandler(deps),
		statusHandler:    NewStatusHandler(deps),
		referenceHandler: NewReferenceHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.metricsHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/api/predict", MetricsMiddleware(s.predictHandler.HandlePredict, "predict"))
	mux.HandleFunc("/api/model/status", MetricsMiddleware(s.statusHandler.HandleModelStatus, "model_status"))
	mux.HandleFunc("/api/branches", MetricsMiddleware(s.referenceHandler.HandleBranches, "branches"))
	mux.HandleFunc("/api/services", MetricsMiddleware(s.referenceHandler.HandleServices, "services"))
	// Root last: it also answers 404 envelopes for unknown paths.
	mux.HandleFunc("/", MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
}

// errorResponse is the envelope for every non-2xx body.
type errorResponse struct {
	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Details   string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message, details string) {
	writeJSON(w, status, errorResponse{
		Status:    "error",
		ErrorCode: code,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		Details:   details,
	})
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed,
		"HTTP method not allowed for this endpoint", "")
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/queuesmart/queuesmart/internal/app"
	"github.com/queuesmart/queuesmart/internal/domain/features"
	"github.com/queuesmart/queuesmart/internal/domain/types"
)

// Request bounds enforced before the service is called.
const (
	minServiceDuration = 1
	maxServiceDuration = 120
	maxQueueLength     = 100
)

// predictRequest mirrors the POST /api/predict body. Pointer fields
// distinguish absent from zero-valued input.
type predictRequest struct {
	Branch             *string  `json:"branch"`
	ServiceType        *string  `json:"service_type"`
	Hour               *int     `json:"hour"`
	DayOfWeek          *int     `json:"day_of_week"`
	ServiceDuration    *float64 `json:"service_duration"`
	CurrentQueueLength *int     `json:"current_queue_length"`
}

// validate checks presence, ranges, and catalog membership, returning the
// service-level request on success.
func (r predictRequest) validate() (app.Request, error) {
	var missing []string
	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"branch", r.Branch != nil},
		{"service_type", r.ServiceType != nil},
		{"hour", r.Hour != nil},
		{"day_of_week", r.DayOfWeek != nil},
		{"service_duration", r.ServiceDuration != nil},
		{"current_queue_length", r.CurrentQueueLength != nil},
	} {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return app.Request{}, fmt.Errorf("missing required fields: %s: %w",
			strings.Join(missing, ", "), ErrBadRequest)
	}

	switch {
	case *r.Hour < types.OpenHour || *r.Hour > types.CloseHour:
		return app.Request{}, fmt.Errorf("hour must be between %d and %d (banking hours): %w",
			types.OpenHour, types.CloseHour, ErrBadRequest)
	case *r.DayOfWeek < 0 || *r.DayOfWeek > 6:
		return app.Request{}, fmt.Errorf("day of week must be between 0 (Monday) and 6 (Sunday): %w", ErrBadRequest)
	case *r.ServiceDuration < minServiceDuration || *r.ServiceDuration > maxServiceDuration:
		return app.Request{}, fmt.Errorf("service duration must be between %d and %d minutes: %w",
			minServiceDuration, maxServiceDuration, ErrBadRequest)
	case *r.CurrentQueueLength < 0 || *r.CurrentQueueLength > maxQueueLength:
		return app.Request{}, fmt.Errorf("queue length must be between 0 and %d: %w", maxQueueLength, ErrBadRequest)
	case !types.ValidBranch(*r.Branch):
		return app.Request{}, fmt.Errorf("invalid branch, must be one of: %s: %w",
			strings.Join(types.Branches(), ", "), ErrBadRequest)
	case !types.ValidService(*r.ServiceType):
		return app.Request{}, fmt.Errorf("invalid service type, must be one of: %s: %w",
			strings.Join(types.ServiceNames(), ", "), ErrBadRequest)
	}

	return app.Request{
		Branch:          *r.Branch,
		ServiceType:     *r.ServiceType,
		Hour:            *r.Hour,
		DayOfWeek:       *r.DayOfWeek,
		ServiceDuration: *r.ServiceDuration,
		QueueLength:     *r.CurrentQueueLength,
	}, nil
}

// predictResponse mirrors the success body for POST /api/predict.
type predictResponse struct {
	WaitTimeMinutes      float64 `json:"wait_time_minutes"`
	ConfidenceLevel      string  `json:"confidence_level"`
	Branch               string  `json:"branch"`
	QueuePosition        int     `json:"queue_position"`
	EstimatedServiceTime string  `json:"estimated_service_time"`
	Timestamp            string  `json:"timestamp"`
	Status               string  `json:"status"`
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps Dependencies
}

// NewPredictHandler creates a new prediction handler.
func NewPredictHandler(deps Dependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandlePredict handles POST /api/predict requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}
	if !h.deps.Ready() {
		writeError(w, http.StatusServiceUnavailable, codeModelNotReady,
			"ML model is not loaded or ready", "Please contact system administrator")
		return
	}
	if !hasJSONContentType(r) {
		writeError(w, http.StatusBadRequest, codeInvalidRequest,
			"Request must be JSON", "Content-Type must be application/json")
		return
	}

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest,
			"Request must be JSON", err.Error())
		return
	}
	validated, err := req.validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation,
			"Invalid request data", err.Error())
		return
	}

	result, err := h.deps.Predict(r.Context(), validated)
	switch {
	case err == nil:
	case errors.Is(err, features.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, codeValidation,
			"Invalid request data", err.Error())
		return
	case errors.Is(err, app.ErrModelNotReady):
		writeError(w, http.StatusServiceUnavailable, codeModelNotReady,
			"ML model is not loaded or ready", "Please contact system administrator")
		return
	default:
		writeError(w, http.StatusInternalServerError, codeInternal,
			"Internal server error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		WaitTimeMinutes:      result.WaitMinutes,
		ConfidenceLevel:      result.Confidence,
		Branch:               result.Branch,
		QueuePosition:        result.QueuePosition,
		EstimatedServiceTime: result.EstimatedServiceTime,
		Timestamp:            result.Timestamp.Format(time.RFC3339),
		Status:               "success",
	})
}

// hasJSONContentType accepts application/json with optional parameters.
func hasJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

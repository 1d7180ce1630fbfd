package app

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrModelNotReady means no artifact is loaded; operational, the HTTP
	// layer maps it to 503.
	ErrModelNotReady = errors.New("model not ready")

	// ErrPrediction wraps a predictor failure on validated input; internal,
	// mapped to 500.
	ErrPrediction = errors.New("prediction failed")
)

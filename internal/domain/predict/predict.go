// Package predict holds the regression models that map feature vectors to
// wait-time estimates, the offline training and selection logic, and the
// persisted model artifact.
package predict

// Model is a fitted regression function. Implementations are deterministic
// given fixed parameters; the estimate is real-valued minutes and callers
// clamp it to >= 0.
type Model interface {
	// Predict returns the wait-time estimate for one feature vector.
	Predict(features []float64) (float64, error)

	// Name identifies the model kind, e.g. "linear_regression".
	Name() string
}

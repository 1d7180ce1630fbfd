package predict

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNoModel           = errors.New("artifact contains no model")
	ErrBadArtifact       = errors.New("invalid model artifact")
	ErrDimensionMismatch = errors.New("feature vector length mismatch")
	ErrNotEnoughData     = errors.New("not enough training rows")
)

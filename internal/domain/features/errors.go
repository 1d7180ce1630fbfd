package features

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrUnknownCategory is returned when a value was not present in the
	// encoder's training table. Callers must treat this as invalid input,
	// never substitute a default index.
	ErrUnknownCategory = errors.New("unknown category")

	ErrEmptyEncoder = errors.New("encoder has no values")
)

package simulate

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
// All of them are precondition violations: the caller handed the simulator a
// stream it is documented not to accept, so the simulator rejects instead of
// silently correcting.
var (
	ErrUnsortedInput   = errors.New("arrivals not sorted by arrival time")
	ErrInvalidDuration = errors.New("service duration must be positive")
	ErrMixedBranches   = errors.New("stream contains more than one branch")
)

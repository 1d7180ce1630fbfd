// Package simulate computes realized queue metrics from an arrival/service
// stream under a single-channel FIFO model: one service channel per branch,
// no abandonment, no priority classes.
//
// The occupied-slot list below holds every customer whose service window has
// not closed at the instant an arrival is processed, i.e. the customer being
// served plus those already committed ahead in line. Its length at that
// instant is what the model knows as queue_length_on_arrival.
package simulate

import (
	"fmt"
	"time"

	"github.com/queuesmart/queuesmart/internal/domain/model"
)

// slot is one customer still occupying the service channel.
type slot struct {
	customerID string
	finish     time.Time
}

// Run processes one branch's time-ordered stream and emits one QueueMetrics
// per input record, preserving input order.
//
// Preconditions, enforced here and rejected with an error rather than
// repaired: all records belong to the same branch, arrival times are
// non-decreasing, and every duration is positive. Ties on arrival time are
// resolved by input order; each record is evaluated transactionally against
// the state left by the previous one.
func Run(records []model.ServiceRecord) ([]model.QueueMetrics, error) {
	if len(records) == 0 {
		return nil, nil
	}

	branch := records[0].Branch
	occupied := make([]slot, 0, 4)
	out := make([]model.QueueMetrics, 0, len(records))

	for i, rec := range records {
		if rec.Branch != branch {
			return nil, fmt.Errorf("record %d (%s): branch %q next to %q: %w",
				i, rec.CustomerID, rec.Branch, branch, ErrMixedBranches)
		}
		if rec.DurationMinutes <= 0 {
			return nil, fmt.Errorf("record %d (%s): duration %.2f: %w",
				i, rec.CustomerID, rec.DurationMinutes, ErrInvalidDuration)
		}
		if i > 0 && rec.ArrivalTime.Before(records[i-1].ArrivalTime) {
			return nil, fmt.Errorf("record %d (%s) arrives before record %d: %w",
				i, rec.CustomerID, i-1, ErrUnsortedInput)
		}

		// Evict everyone who finished at or before this arrival.
		remaining := occupied[:0]
		for _, s := range occupied {
			if s.finish.After(rec.ArrivalTime) {
				remaining = append(remaining, s)
			}
		}
		occupied = remaining

		m := model.QueueMetrics{
			CustomerID:           rec.CustomerID,
			QueueLengthOnArrival: len(occupied),
		}
		if len(occupied) == 0 {
			m.ServiceStart = rec.ArrivalTime
		} else {
			// The channel is busy until the last committed customer finishes.
			last := occupied[0].finish
			for _, s := range occupied[1:] {
				if s.finish.After(last) {
					last = s.finish
				}
			}
			m.ServiceStart = last
			m.WaitMinutes = m.ServiceStart.Sub(rec.ArrivalTime).Minutes()
		}
		m.ServiceEnd = m.ServiceStart.Add(time.Duration(rec.DurationMinutes * float64(time.Minute)))

		occupied = append(occupied, slot{customerID: rec.CustomerID, finish: m.ServiceEnd})
		out = append(out, m)
	}

	return out, nil
}

// Join pairs each input record with its metrics, preserving order.
// It assumes metrics came from Run on the same slice.
func Join(records []model.ServiceRecord, metrics []model.QueueMetrics) []model.Observation {
	obs := make([]model.Observation, len(records))
	for i := range records {
		obs[i] = model.Observation{Service: records[i], Queue: metrics[i]}
	}
	return obs
}

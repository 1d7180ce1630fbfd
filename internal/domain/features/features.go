// Package features maps raw records and live requests to the fixed-order
// numeric vector the predictor consumes. The mapping is deterministic and
// pure; categorical encodings come from tables fitted at training time.
package features

import (
	"time"

	"github.com/queuesmart/queuesmart/internal/domain/model"
	"github.com/queuesmart/queuesmart/internal/domain/types"
)

// featureColumns is the canonical column order. The predictor's weights are
// positional, so this order is persisted in the artifact and asserted at
// load time.
var featureColumns = []string{
	"hour",
	"day_of_week",
	"branch_encoded",
	"service_type_encoded",
	"service_duration_minutes",
	"queue_length_on_arrival",
	"is_peak_hour",
}

// Columns returns the canonical feature column order.
func Columns() []string {
	out := make([]string, len(featureColumns))
	copy(out, featureColumns)
	return out
}

// Builder turns records or request fields into feature vectors using the
// encoder tables established at training time.
type Builder struct {
	branch  *Encoder
	service *Encoder
}

// NewBuilder creates a builder over the given encoder tables.
func NewBuilder(branch, service *Encoder) *Builder {
	return &Builder{branch: branch, service: service}
}

// Vector builds the feature vector for a live request's fields.
func (b *Builder) Vector(branch, serviceType string, hour, dayOfWeek int, durationMinutes float64, queueLength int) ([]float64, error) {
	branchIdx, err := b.branch.Encode(branch)
	if err != nil {
		return nil, err
	}
	serviceIdx, err := b.service.Encode(serviceType)
	if err != nil {
		return nil, err
	}

	peak := 0.0
	if types.IsPeakHour(hour) {
		peak = 1.0
	}
	return []float64{
		float64(hour),
		float64(dayOfWeek),
		float64(branchIdx),
		float64(serviceIdx),
		durationMinutes,
		float64(queueLength),
		peak,
	}, nil
}

// FromObservation builds the training-time feature vector for one simulated
// observation. Calendar fields derive from the arrival timestamp.
func (b *Builder) FromObservation(o model.Observation) ([]float64, error) {
	t := o.Service.ArrivalTime
	return b.Vector(
		o.Service.Branch,
		o.Service.ServiceType,
		t.Hour(),
		DayOfWeek(t),
		o.Service.DurationMinutes,
		o.Queue.QueueLengthOnArrival,
	)
}

// DayOfWeek maps a timestamp to the 0=Monday .. 6=Sunday convention used by
// the training data and the request schema.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

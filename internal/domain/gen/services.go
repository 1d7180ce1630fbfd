package gen

import (
	"math/rand"
	"time"

	"github.com/queuesmart/queuesmart/internal/domain/model"
	"github.com/queuesmart/queuesmart/internal/domain/types"
)

// Assigner attaches a service type and duration to each arrival using the
// catalog's weighted categorical distribution and per-type duration ranges.
type Assigner struct {
	rng     *rand.Rand
	catalog []types.ServiceProfile
}

// AssignerOption applies a configuration option to the Assigner.
type AssignerOption func(*Assigner)

// WithAssignerSeed seeds the assigner's RNG for reproducible datasets.
func WithAssignerSeed(seed int64) AssignerOption {
	return func(a *Assigner) {
		a.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data, not security-sensitive
	}
}

// NewAssigner creates an Assigner over the service catalog.
func NewAssigner(opts ...AssignerOption) *Assigner {
	a := &Assigner{
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // synthetic data
		catalog: types.ServiceCatalog(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assign produces one ServiceRecord per arrival, preserving input order.
// Durations are whole minutes drawn uniformly from the type's range.
func (a *Assigner) Assign(arrivals []model.ArrivalRecord) []model.ServiceRecord {
	records := make([]model.ServiceRecord, 0, len(arrivals))
	for _, arr := range arrivals {
		profile := a.drawProfile()
		span := int(profile.MaxMinutes-profile.MinMinutes) + 1
		duration := profile.MinMinutes + float64(a.rng.Intn(span))
		records = append(records, model.ServiceRecord{
			ArrivalRecord:   arr,
			ServiceType:     profile.Name,
			DurationMinutes: duration,
		})
	}
	return records
}

// drawProfile samples a service profile by catalog weight.
func (a *Assigner) drawProfile() types.ServiceProfile {
	r := a.rng.Float64()
	acc := 0.0
	for _, p := range a.catalog {
		acc += p.Weight
		if r < acc {
			return p
		}
	}
	return a.catalog[len(a.catalog)-1]
}

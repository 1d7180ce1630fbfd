// Package gen synthesizes arrival and service data for the offline training
// pipeline from calibrated hourly and weekday distributions.
package gen

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/queuesmart/queuesmart/internal/domain/model"
	"github.com/queuesmart/queuesmart/internal/domain/types"
)

// Default calibration constants.
const (
	defaultBaseMin = 80
	defaultBaseMax = 150
)

// defaultHourWeights is the arrival mass per operating-hour bucket
// (OpenHour..CloseHour-1), peaking mid-morning and early afternoon.
var defaultHourWeights = []float64{0.05, 0.15, 0.20, 0.15, 0.10, 0.15, 0.10, 0.10}

// defaultDayMultiplier scales the daily customer count by weekday: heavier
// early and late in the week, lighter midweek.
var defaultDayMultiplier = map[time.Weekday]float64{
	time.Monday:    1.3,
	time.Tuesday:   1.0,
	time.Wednesday: 0.8,
	time.Thursday:  0.7,
	time.Friday:    1.2,
}

// Generator produces a day's ordered customer arrivals for one branch.
type Generator struct {
	rng           *rand.Rand
	baseMin       int
	baseMax       int
	hourWeights   []float64
	dayMultiplier map[time.Weekday]float64
}

// GeneratorOption applies a configuration option to the Generator.
type GeneratorOption func(*Generator)

// WithGeneratorSeed seeds the generator's RNG for reproducible datasets.
func WithGeneratorSeed(seed int64) GeneratorOption {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data, not security-sensitive
	}
}

// WithBaseRange sets the pre-multiplier daily customer count range.
func WithBaseRange(minCount, maxCount int) GeneratorOption {
	return func(g *Generator) {
		if minCount > 0 && maxCount >= minCount {
			g.baseMin = minCount
			g.baseMax = maxCount
		}
	}
}

// WithHourWeights overrides the hourly arrival distribution. The slice must
// cover every operating-hour bucket.
func WithHourWeights(weights []float64) GeneratorOption {
	return func(g *Generator) {
		if len(weights) == types.CloseHour-types.OpenHour {
			g.hourWeights = weights
		}
	}
}

// NewGenerator creates a Generator with the default calibration.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // synthetic data
		baseMin:       defaultBaseMin,
		baseMax:       defaultBaseMax,
		hourWeights:   defaultHourWeights,
		dayMultiplier: defaultDayMultiplier,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Arrivals generates one day of arrivals for branch, with the daily count
// drawn from the base range and scaled by the weekday multiplier. Output is
// sorted ascending by arrival time; downstream simulation depends on that.
func (g *Generator) Arrivals(date time.Time, branch string) []model.ArrivalRecord {
	mult, ok := g.dayMultiplier[date.Weekday()]
	if !ok {
		mult = 1.0
	}
	base := g.baseMin + g.rng.Intn(g.baseMax-g.baseMin+1)
	return g.ArrivalsN(date, branch, int(float64(base)*mult))
}

// ArrivalsN generates exactly n arrivals for branch on date, sorted
// ascending by arrival time.
func (g *Generator) ArrivalsN(date time.Time, branch string, n int) []model.ArrivalRecord {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	arrivals := make([]model.ArrivalRecord, 0, n)
	for i := 0; i < n; i++ {
		hour := g.drawHour()
		minute := g.rng.Intn(60)
		arrivals = append(arrivals, model.ArrivalRecord{
			CustomerID:  "CUST-" + uuid.NewString(),
			Branch:      branch,
			ArrivalTime: day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute),
		})
	}
	sort.Slice(arrivals, func(i, j int) bool {
		return arrivals[i].ArrivalTime.Before(arrivals[j].ArrivalTime)
	})
	return arrivals
}

// drawHour samples an operating hour from the bucket weights.
func (g *Generator) drawHour() int {
	r := g.rng.Float64()
	acc := 0.0
	for i, w := range g.hourWeights {
		acc += w
		if r < acc {
			return types.OpenHour + i
		}
	}
	return types.CloseHour - 1
}

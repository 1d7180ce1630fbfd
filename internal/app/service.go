// Package app provides the prediction service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/queuesmart/queuesmart/internal/domain/features"
	"github.com/queuesmart/queuesmart/internal/domain/predict"
	"github.com/queuesmart/queuesmart/internal/domain/types"
	"github.com/queuesmart/queuesmart/pkg/logger"
	"github.com/queuesmart/queuesmart/pkg/metrics"
)

// Confidence thresholds on current queue length.
const mediumConfidenceMaxQueue = 3

// Request is a validated prediction request. Field-level validation happens
// at the HTTP boundary before the service is called.
type Request struct {
	Branch          string
	ServiceType     string
	Hour            int
	DayOfWeek       int
	ServiceDuration float64
	QueueLength     int
}

// Result is one prediction outcome.
type Result struct {
	WaitMinutes          float64 // >= 0, rounded to one decimal
	Confidence           string  // High / Medium / Low heuristic
	Branch               string
	QueuePosition        int    // the requester's position if they join now
	EstimatedServiceTime string // wall-clock HH:MM completion-of-wait estimate
	Timestamp            time.Time
}

// ModelInfo describes the loaded artifact for the status endpoint.
type ModelInfo struct {
	Name      string
	TrainedAt time.Time
	Features  []string
	Status    string
}

// Service owns the model artifact for the process lifetime. The artifact is
// immutable after load, so the request path only ever takes read locks.
type Service struct {
	mu sync.RWMutex

	artifactPath string
	artifact     *predict.Artifact
	model        predict.Model
	builder      *features.Builder

	clock  func() time.Time
	logger logger.Logger

	started bool
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithArtifactPath sets where Start looks for the persisted model bundle.
func WithArtifactPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.artifactPath = path
		}
	}
}

// WithArtifact injects an already-loaded artifact, bypassing the file load.
func WithArtifact(a *predict.Artifact) Option {
	return func(s *Service) { s.artifact = a }
}

// WithClock overrides the wall clock used for completion estimates and
// response timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		artifactPath: "models/wait_time_model.json",
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the model artifact. A missing or unreadable artifact is not
// fatal: the service starts degraded and answers 503 on predictions until a
// restart with a valid artifact.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.artifact == nil {
		artifact, err := predict.Load(s.artifactPath)
		if err != nil {
			s.logger.Warn(ctx, "model artifact unavailable; serving degraded",
				logger.String("path", s.artifactPath), logger.Error(err))
		} else {
			s.artifact = artifact
		}
	}

	if s.artifact != nil {
		model, err := s.artifact.Model()
		if err != nil {
			return err
		}
		s.model = model
		s.builder = features.NewBuilder(s.artifact.BranchEncoder, s.artifact.ServiceEncoder)
		s.logger.Info(ctx, "model loaded",
			logger.String("model", s.artifact.ModelName),
			logger.String("trained_at", s.artifact.TrainedAt.Format(time.RFC3339)),
		)
	}
	metrics.UpdateModelLoaded(s.artifact != nil)

	s.started = true
	return nil
}

// Stop releases the service. Present for lifecycle symmetry; the service
// holds no external resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// Ready reports whether a model artifact is loaded.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artifact != nil && s.model != nil
}

// Predict runs one wait-time prediction. It returns ErrModelNotReady when
// no artifact is loaded, features.ErrUnknownCategory for a category outside
// the training tables, and ErrPrediction for predictor failures.
func (s *Service) Predict(ctx context.Context, req Request) (Result, error) {
	start := s.clock()

	s.mu.RLock()
	model, builder := s.model, s.builder
	s.mu.RUnlock()

	if model == nil || builder == nil {
		metrics.RecordPredictionError()
		return Result{}, ErrModelNotReady
	}

	vector, err := builder.Vector(req.Branch, req.ServiceType, req.Hour, req.DayOfWeek, req.ServiceDuration, req.QueueLength)
	if err != nil {
		metrics.RecordPredictionError()
		return Result{}, err
	}

	estimate, err := model.Predict(vector)
	if err != nil {
		metrics.RecordPredictionError()
		return Result{}, fmt.Errorf("%w: %w", ErrPrediction, err)
	}

	wait := math.Round(math.Max(0, estimate)*10) / 10
	now := s.clock()
	result := Result{
		WaitMinutes:          wait,
		Confidence:           confidenceFor(req.QueueLength),
		Branch:               req.Branch,
		QueuePosition:        req.QueueLength + 1,
		EstimatedServiceTime: now.Add(time.Duration(wait * float64(time.Minute))).Format("15:04"),
		Timestamp:            now,
	}

	metrics.RecordPrediction(wait, float64(now.Sub(start).Microseconds())/1000)
	s.logger.Debug(ctx, "prediction served",
		logger.String("branch", req.Branch),
		logger.String("service_type", req.ServiceType),
		logger.Float64("wait_minutes", wait),
		logger.Int("queue_length", req.QueueLength),
	)
	return result, nil
}

// confidenceFor maps the current queue length to the coarse confidence
// label. Heuristic, not a statistical interval.
func confidenceFor(queueLength int) string {
	switch {
	case queueLength == 0:
		return types.ConfidenceHigh
	case queueLength <= mediumConfidenceMaxQueue:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// ModelInfo returns metadata about the loaded artifact.
func (s *Service) ModelInfo() (ModelInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.artifact == nil {
		return ModelInfo{}, ErrModelNotReady
	}
	return ModelInfo{
		Name:      s.artifact.ModelName,
		TrainedAt: s.artifact.TrainedAt,
		Features:  s.artifact.FeatureColumns,
		Status:    "active",
	}, nil
}

// Now exposes the service clock so the HTTP layer timestamps responses
// consistently with completion estimates.
func (s *Service) Now() time.Time {
	return s.clock()
}

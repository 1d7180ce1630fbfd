package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/queuesmart/queuesmart/internal/app"
	"github.com/queuesmart/queuesmart/internal/domain/features"
	"github.com/queuesmart/queuesmart/internal/domain/predict"
	"github.com/queuesmart/queuesmart/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

// stubArtifact carries a linear model with an identity scaler whose only
// non-zero weights are the intercept (1) and the queue-length column (2),
// so the raw estimate is 1 + 2*queueLength.
func stubArtifact(trainedAt time.Time) *predict.Artifact {
	cols := len(features.Columns())
	scaler := &predict.Scaler{
		Mean: make([]float64, cols),
		Std:  make([]float64, cols),
	}
	for j := range scaler.Std {
		scaler.Std[j] = 1
	}
	weights := make([]float64, cols+1)
	weights[0] = 1
	weights[6] = 2 // queue_length_on_arrival

	return &predict.Artifact{
		ModelName:      "linear_regression",
		Linear:         &predict.LinearModel{Weights: weights, Scaler: scaler},
		BranchEncoder:  features.FitEncoder([]string{"Ikeja", "Abuja"}),
		ServiceEncoder: features.FitEncoder([]string{"Transfer", "Cash Withdrawal"}),
		FeatureColumns: features.Columns(),
		TrainedAt:      trainedAt,
	}
}

func TestServicePredict(t *testing.T) {
	ctx := context.Background()
	trainedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 2, 10, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	newService := func() *app.Service {
		svc := app.New(
			app.WithArtifact(stubArtifact(trainedAt)),
			app.WithClock(clock),
		)
		So(svc.Start(ctx), ShouldBeNil)
		return svc
	}

	Convey("Given a service with a loaded model", t, func() {
		svc := newService()
		So(svc.Ready(), ShouldBeTrue)

		Convey("When a customer predicts with an empty queue", func() {
			result, err := svc.Predict(ctx, app.Request{
				Branch:          "Ikeja",
				ServiceType:     "Transfer",
				Hour:            10,
				DayOfWeek:       0,
				ServiceDuration: 5,
				QueueLength:     0,
			})

			Convey("Then the wait follows the model and confidence is high", func() {
				So(err, ShouldBeNil)
				So(result.WaitMinutes, ShouldEqual, 1.0)
				So(result.Confidence, ShouldEqual, "High")
				So(result.Branch, ShouldEqual, "Ikeja")
				So(result.QueuePosition, ShouldEqual, 1)
				So(result.Timestamp, ShouldEqual, now)
			})

			Convey("Then the completion estimate advances the clock by the wait", func() {
				So(result.EstimatedServiceTime, ShouldEqual, "10:31")
			})
		})

		Convey("When the queue is short", func() {
			result, err := svc.Predict(ctx, app.Request{
				Branch: "Ikeja", ServiceType: "Transfer", Hour: 10, ServiceDuration: 5, QueueLength: 3,
			})

			Convey("Then confidence is medium and position trails the queue", func() {
				So(err, ShouldBeNil)
				So(result.WaitMinutes, ShouldEqual, 7.0)
				So(result.Confidence, ShouldEqual, "Medium")
				So(result.QueuePosition, ShouldEqual, 4)
			})
		})

		Convey("When the queue is long", func() {
			result, err := svc.Predict(ctx, app.Request{
				Branch: "Ikeja", ServiceType: "Transfer", Hour: 10, ServiceDuration: 5, QueueLength: 10,
			})

			Convey("Then confidence is low", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldEqual, "Low")
			})
		})

		Convey("When the branch is outside the training table", func() {
			_, err := svc.Predict(ctx, app.Request{
				Branch: "Lekki", ServiceType: "Transfer", Hour: 10, ServiceDuration: 5,
			})

			Convey("Then the category error surfaces", func() {
				So(errors.Is(err, features.ErrUnknownCategory), ShouldBeTrue)
			})
		})

		Convey("Then model info reflects the artifact", func() {
			info, err := svc.ModelInfo()
			So(err, ShouldBeNil)
			So(info.Name, ShouldEqual, "linear_regression")
			So(info.TrainedAt, ShouldEqual, trainedAt)
			So(info.Features, ShouldResemble, features.Columns())
			So(info.Status, ShouldEqual, "active")
		})

		Convey("Then the service clock is exposed", func() {
			So(svc.Now(), ShouldEqual, now)
		})
	})

	Convey("Given a service whose artifact could not be loaded", t, func() {
		svc := app.New(
			app.WithArtifactPath("testdata/absent.json"),
			app.WithClock(clock),
		)
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Then it reports not ready", func() {
			So(svc.Ready(), ShouldBeFalse)
		})

		Convey("Then predictions are refused", func() {
			_, err := svc.Predict(ctx, app.Request{Branch: "Ikeja", ServiceType: "Transfer"})
			So(errors.Is(err, app.ErrModelNotReady), ShouldBeTrue)
		})

		Convey("Then model info is refused", func() {
			_, err := svc.ModelInfo()
			So(errors.Is(err, app.ErrModelNotReady), ShouldBeTrue)
		})
	})

	Convey("Given negative raw estimates", t, func() {
		artifact := stubArtifact(trainedAt)
		artifact.Linear.Weights[0] = -5
		artifact.Linear.Weights[6] = 0
		svc := app.New(app.WithArtifact(artifact), app.WithClock(clock))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Then the wait clamps to zero", func() {
			result, err := svc.Predict(ctx, app.Request{
				Branch: "Ikeja", ServiceType: "Transfer", Hour: 10, ServiceDuration: 5,
			})
			So(err, ShouldBeNil)
			So(result.WaitMinutes, ShouldEqual, 0.0)
			So(result.EstimatedServiceTime, ShouldEqual, "10:30")
		})
	})
}

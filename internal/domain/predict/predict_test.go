package predict_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/queuesmart/queuesmart/internal/domain/features"
	"github.com/queuesmart/queuesmart/internal/domain/predict"
)

const tolerance = 1e-6

// linearRows builds rows following y = 3 + 2*x0 - x1 exactly.
func linearRows(n int) (x [][]float64, y []float64) {
	for i := 0; i < n; i++ {
		row := []float64{float64(i), float64((i * 7) % 13)}
		x = append(x, row)
		y = append(y, 3+2*row[0]-row[1])
	}
	return x, y
}

func TestScaler(t *testing.T) {
	Convey("Given columns with spread and a constant column", t, func() {
		x := [][]float64{
			{1, 5},
			{3, 5},
			{5, 5},
		}
		s := predict.FitScaler(x)

		Convey("Then means and deviations come from the data", func() {
			So(s.Mean[0], ShouldAlmostEqual, 3, tolerance)
			So(s.Std[0], ShouldBeGreaterThan, 0)
		})

		Convey("Then the constant column gets unit deviation", func() {
			So(s.Std[1], ShouldEqual, 1)

			scaled, err := s.Transform([]float64{3, 5})
			So(err, ShouldBeNil)
			So(scaled[0], ShouldAlmostEqual, 0, tolerance)
			So(scaled[1], ShouldAlmostEqual, 0, tolerance)
		})

		Convey("Then a wrong-width row is rejected", func() {
			_, err := s.Transform([]float64{1, 2, 3})
			So(errors.Is(err, predict.ErrDimensionMismatch), ShouldBeTrue)
		})
	})
}

func TestFitLinear(t *testing.T) {
	Convey("Given data with an exact linear relationship", t, func() {
		x, y := linearRows(30)
		m, err := predict.FitLinear(x, y)

		Convey("Then the fitted model reproduces the targets", func() {
			So(err, ShouldBeNil)
			So(m.Name(), ShouldEqual, "linear_regression")
			for i, row := range x {
				got, err := m.Predict(row)
				So(err, ShouldBeNil)
				So(got, ShouldAlmostEqual, y[i], tolerance)
			}
		})

		Convey("Then a wrong-width query is rejected", func() {
			_, err := m.Predict([]float64{1})
			So(errors.Is(err, predict.ErrDimensionMismatch), ShouldBeTrue)
		})
	})

	Convey("Given fewer rows than features", t, func() {
		_, err := predict.FitLinear([][]float64{{1, 2}}, []float64{1})

		Convey("Then fitting fails", func() {
			So(errors.Is(err, predict.ErrNotEnoughData), ShouldBeTrue)
		})
	})
}

func TestFitTree(t *testing.T) {
	Convey("Given a piecewise-constant target", t, func() {
		var x [][]float64
		var y []float64
		for i := 0; i < 10; i++ {
			x = append(x, []float64{float64(i)})
			if i < 5 {
				y = append(y, 10)
			} else {
				y = append(y, 20)
			}
		}

		m, err := predict.FitTree(x, y)

		Convey("Then the tree splits at the boundary and predicts group means", func() {
			So(err, ShouldBeNil)
			So(m.Name(), ShouldEqual, "regression_tree")

			low, err := m.Predict([]float64{2})
			So(err, ShouldBeNil)
			So(low, ShouldAlmostEqual, 10, tolerance)

			high, err := m.Predict([]float64{7})
			So(err, ShouldBeNil)
			So(high, ShouldAlmostEqual, 20, tolerance)
		})

		Convey("Then a wrong-width query is rejected", func() {
			_, err := m.Predict([]float64{1, 2})
			So(errors.Is(err, predict.ErrDimensionMismatch), ShouldBeTrue)
		})
	})

	Convey("Given a depth bound of one", t, func() {
		var x [][]float64
		var y []float64
		for i := 0; i < 20; i++ {
			x = append(x, []float64{float64(i)})
			y = append(y, float64(i*i))
		}

		m, err := predict.FitTree(x, y, predict.WithMaxDepth(1))

		Convey("Then the tree stops after a single split", func() {
			So(err, ShouldBeNil)
			So(m.Root.Left, ShouldNotBeNil)
			So(m.Root.Right, ShouldNotBeNil)
			So(m.Root.Left.Left, ShouldBeNil)
			So(m.Root.Right.Left, ShouldBeNil)
		})
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given a model that reproduces the targets exactly", t, func() {
		x, y := linearRows(30)
		m, err := predict.FitLinear(x, y)
		So(err, ShouldBeNil)

		ev := predict.Evaluate(m, x, y)

		Convey("Then the error metrics vanish and R² is one", func() {
			So(ev.Model, ShouldEqual, "linear_regression")
			So(ev.RMSE, ShouldAlmostEqual, 0, tolerance)
			So(ev.MAE, ShouldAlmostEqual, 0, tolerance)
			So(ev.R2, ShouldAlmostEqual, 1, tolerance)
		})
	})
}

func TestTrain(t *testing.T) {
	branchEnc := features.FitEncoder([]string{"Ikeja", "Abuja"})
	serviceEnc := features.FitEncoder([]string{"Transfer", "Cash Withdrawal"})
	trainedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return trainedAt }

	Convey("Given perfectly linear training data", t, func() {
		x, y := linearRows(60)

		artifact, evals, err := predict.Train(x, y, branchEnc, serviceEnc,
			predict.WithTrainSeed(1),
			predict.WithTrainClock(clock),
		)

		Convey("Then the linear candidate wins on held-out RMSE", func() {
			So(err, ShouldBeNil)
			So(artifact.ModelName, ShouldEqual, "linear_regression")
			So(artifact.Linear, ShouldNotBeNil)
			So(artifact.Tree, ShouldBeNil)
		})

		Convey("Then both candidates were evaluated", func() {
			So(evals, ShouldHaveLength, 2)
			So(evals[0].Model, ShouldEqual, "linear_regression")
			So(evals[1].Model, ShouldEqual, "regression_tree")
			So(evals[0].RMSE, ShouldBeLessThan, evals[1].RMSE)
		})

		Convey("Then the artifact records its provenance", func() {
			So(artifact.TrainedAt, ShouldEqual, trainedAt)
			So(artifact.FeatureColumns, ShouldResemble, features.Columns())
			So(artifact.BranchEncoder.Values(), ShouldResemble, branchEnc.Values())
		})
	})

	Convey("Given too few rows", t, func() {
		x, y := linearRows(5)
		_, _, err := predict.Train(x, y, branchEnc, serviceEnc)

		Convey("Then training refuses to proceed", func() {
			So(errors.Is(err, predict.ErrNotEnoughData), ShouldBeTrue)
		})
	})

	Convey("Given mismatched rows and targets", t, func() {
		x, _ := linearRows(30)
		_, _, err := predict.Train(x, []float64{1}, branchEnc, serviceEnc)

		Convey("Then training refuses to proceed", func() {
			So(errors.Is(err, predict.ErrNotEnoughData), ShouldBeTrue)
		})
	})
}

func TestArtifact(t *testing.T) {
	branchEnc := features.FitEncoder([]string{"Ikeja", "Abuja"})
	serviceEnc := features.FitEncoder([]string{"Transfer"})

	Convey("Given a trained artifact saved to disk", t, func() {
		x, y := linearRows(60)
		artifact, _, err := predict.Train(x, y, branchEnc, serviceEnc,
			predict.WithTrainClock(func() time.Time {
				return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
			}),
		)
		So(err, ShouldBeNil)

		path := filepath.Join(t.TempDir(), "models", "wait_time_model.json")
		So(artifact.Save(path), ShouldBeNil)

		Convey("When it is loaded back", func() {
			loaded, err := predict.Load(path)

			Convey("Then the restored model predicts identically", func() {
				So(err, ShouldBeNil)
				So(loaded.ModelName, ShouldEqual, artifact.ModelName)
				So(loaded.TrainedAt, ShouldEqual, artifact.TrainedAt)

				want, err := artifact.Linear.Predict(x[0])
				So(err, ShouldBeNil)
				got, err := loaded.Linear.Predict(x[0])
				So(err, ShouldBeNil)
				So(got, ShouldAlmostEqual, want, tolerance)
			})
		})
	})

	Convey("Given an artifact with no fitted model", t, func() {
		a := &predict.Artifact{
			BranchEncoder:  branchEnc,
			ServiceEncoder: serviceEnc,
			FeatureColumns: features.Columns(),
		}

		Convey("Then validation fails", func() {
			So(errors.Is(a.Validate(), predict.ErrNoModel), ShouldBeTrue)
		})
	})

	Convey("Given an artifact with a stale column order", t, func() {
		x, y := linearRows(30)
		linear, err := predict.FitLinear(x, y)
		So(err, ShouldBeNil)

		a := &predict.Artifact{
			ModelName:      linear.Name(),
			Linear:         linear,
			BranchEncoder:  branchEnc,
			ServiceEncoder: serviceEnc,
			FeatureColumns: []string{"hour", "queue_length_on_arrival"},
		}

		Convey("Then validation fails", func() {
			So(errors.Is(a.Validate(), predict.ErrBadArtifact), ShouldBeTrue)
		})
	})

	Convey("Given a missing artifact file", t, func() {
		_, err := predict.Load(filepath.Join(t.TempDir(), "absent.json"))

		Convey("Then loading fails", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

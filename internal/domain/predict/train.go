package predict

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/queuesmart/queuesmart/internal/domain/features"
)

// Default training configuration.
const (
	defaultTestFraction = 0.2
	defaultTrainSeed    = 42
	minTrainingRows     = 20
)

// Evaluation reports held-out performance for one candidate model.
type Evaluation struct {
	Model string
	RMSE  float64
	MAE   float64
	R2    float64
}

// trainConfig carries training knobs.
type trainConfig struct {
	seed         int64
	testFraction float64
	treeOpts     []TreeOption
	now          func() time.Time
}

// TrainOption applies a configuration option to Train.
type TrainOption func(*trainConfig)

// WithTrainSeed seeds the train/test shuffle.
func WithTrainSeed(seed int64) TrainOption {
	return func(c *trainConfig) { c.seed = seed }
}

// WithTestFraction sets the held-out fraction in (0, 1).
func WithTestFraction(frac float64) TrainOption {
	return func(c *trainConfig) {
		if frac > 0 && frac < 1 {
			c.testFraction = frac
		}
	}
}

// WithTreeOptions forwards growth bounds to the tree candidate.
func WithTreeOptions(opts ...TreeOption) TrainOption {
	return func(c *trainConfig) { c.treeOpts = opts }
}

// WithTrainClock sets the clock used for the artifact's training timestamp.
func WithTrainClock(now func() time.Time) TrainOption {
	return func(c *trainConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// Train fits the candidate models on a shuffled train split, evaluates them
// on the held-out split, and returns an artifact carrying the candidate with
// the lowest RMSE plus the evaluations for every candidate.
func Train(x [][]float64, y []float64, branchEnc, serviceEnc *features.Encoder, opts ...TrainOption) (*Artifact, []Evaluation, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%d rows against %d targets: %w", len(x), len(y), ErrNotEnoughData)
	}
	if len(x) < minTrainingRows {
		return nil, nil, fmt.Errorf("%d rows, need at least %d: %w", len(x), minTrainingRows, ErrNotEnoughData)
	}

	cfg := &trainConfig{
		seed:         defaultTrainSeed,
		testFraction: defaultTestFraction,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	trainX, trainY, testX, testY := split(x, y, cfg.testFraction, cfg.seed)

	linear, err := FitLinear(trainX, trainY)
	if err != nil {
		return nil, nil, fmt.Errorf("fit linear: %w", err)
	}
	tree, err := FitTree(trainX, trainY, cfg.treeOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("fit tree: %w", err)
	}

	evals := []Evaluation{
		Evaluate(linear, testX, testY),
		Evaluate(tree, testX, testY),
	}

	artifact := &Artifact{
		BranchEncoder:  branchEnc,
		ServiceEncoder: serviceEnc,
		FeatureColumns: features.Columns(),
		TrainedAt:      cfg.now(),
	}
	if evals[1].RMSE < evals[0].RMSE {
		artifact.ModelName = tree.Name()
		artifact.Tree = tree
	} else {
		artifact.ModelName = linear.Name()
		artifact.Linear = linear
	}
	return artifact, evals, nil
}

// Evaluate computes RMSE, MAE, and R² of m over a labelled set.
func Evaluate(m Model, x [][]float64, y []float64) Evaluation {
	ev := Evaluation{Model: m.Name()}
	if len(x) == 0 {
		return ev
	}

	mean := stat.Mean(y, nil)
	var sqErr, absErr, ssTot float64
	for i, row := range x {
		pred, err := m.Predict(row)
		if err != nil {
			// A fitted model cannot fail on rows shaped like its training
			// data; surface the breakage through the metrics.
			pred = math.NaN()
		}
		d := y[i] - pred
		sqErr += d * d
		absErr += math.Abs(d)
		t := y[i] - mean
		ssTot += t * t
	}
	n := float64(len(x))
	ev.RMSE = math.Sqrt(sqErr / n)
	ev.MAE = absErr / n
	if ssTot > 0 {
		ev.R2 = 1 - sqErr/ssTot
	}
	return ev
}

// split shuffles row indices with the seed and carves off the trailing
// fraction as the held-out set.
func split(x [][]float64, y []float64, testFraction float64, seed int64) (trainX [][]float64, trainY []float64, testX [][]float64, testY []float64) {
	n := len(x)
	idx := rand.New(rand.NewSource(seed)).Perm(n) //nolint:gosec // reproducible shuffle, not security-sensitive

	testN := int(float64(n) * testFraction)
	if testN < 1 {
		testN = 1
	}
	cut := n - testN

	for k, i := range idx {
		if k < cut {
			trainX = append(trainX, x[i])
			trainY = append(trainY, y[i])
		} else {
			testX = append(testX, x[i])
			testY = append(testY, y[i])
		}
	}
	return trainX, trainY, testX, testY
}

package predict

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearModel is an ordinary-least-squares regression fitted on standardized
// features. Weights[0] is the intercept; Weights[1:] align with the feature
// column order.
type LinearModel struct {
	Weights []float64 `json:"weights"`
	Scaler  *Scaler   `json:"scaler"`
}

// FitLinear solves the least-squares problem for y against x with an
// intercept column, standardizing x first. x rows must all have the same
// length and len(x) must equal len(y).
func FitLinear(x [][]float64, y []float64) (*LinearModel, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("%d rows against %d targets: %w", len(x), len(y), ErrNotEnoughData)
	}
	cols := len(x[0])
	if len(x) <= cols {
		return nil, fmt.Errorf("%d rows for %d features: %w", len(x), cols, ErrNotEnoughData)
	}

	scaler := FitScaler(x)

	design := mat.NewDense(len(x), cols+1, nil)
	for i, row := range x {
		scaled, err := scaler.Transform(row)
		if err != nil {
			return nil, err
		}
		design.Set(i, 0, 1)
		for j, v := range scaled {
			design.Set(i, j+1, v)
		}
	}
	target := mat.NewVecDense(len(y), y)

	var qr mat.QR
	qr.Factorize(design)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, target); err != nil {
		return nil, fmt.Errorf("least squares solve: %w", err)
	}

	weights := make([]float64, cols+1)
	for j := range weights {
		weights[j] = beta.At(j, 0)
	}
	return &LinearModel{Weights: weights, Scaler: scaler}, nil
}

// Predict implements Model.
func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(features)+1 != len(m.Weights) {
		return 0, fmt.Errorf("got %d features, model has %d weights: %w",
			len(features), len(m.Weights), ErrDimensionMismatch)
	}
	scaled, err := m.Scaler.Transform(features)
	if err != nil {
		return 0, err
	}
	estimate := m.Weights[0]
	for j, v := range scaled {
		estimate += m.Weights[j+1] * v
	}
	return estimate, nil
}

// Name implements Model.
func (m *LinearModel) Name() string { return "linear_regression" }

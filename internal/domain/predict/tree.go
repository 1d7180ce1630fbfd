package predict

import (
	"fmt"
	"sort"
)

// Tree growth limits, in line with the shallow ensemble members the
// training pipeline historically used.
const (
	defaultMaxDepth  = 6
	defaultMinSplit  = 5
	defaultMinLeaf   = 2
	minSplitVariance = 1e-9
)

// TreeNode is one node of a regression tree. Leaves carry Value and have no
// children; internal nodes route on Feature <= Threshold.
type TreeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Value     float64   `json:"value"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
}

func (n *TreeNode) leaf() bool { return n.Left == nil && n.Right == nil }

// TreeModel is a CART-style regression tree grown by variance reduction.
type TreeModel struct {
	Root     *TreeNode `json:"root"`
	Features int       `json:"features"`
}

// treeConfig bounds tree growth.
type treeConfig struct {
	maxDepth int
	minSplit int
	minLeaf  int
}

// TreeOption applies a configuration option to tree fitting.
type TreeOption func(*treeConfig)

// WithMaxDepth bounds the tree depth.
func WithMaxDepth(depth int) TreeOption {
	return func(c *treeConfig) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithMinSamplesSplit sets the minimum node size eligible for splitting.
func WithMinSamplesSplit(n int) TreeOption {
	return func(c *treeConfig) {
		if n > 1 {
			c.minSplit = n
		}
	}
}

// WithMinSamplesLeaf sets the minimum samples each child must keep.
func WithMinSamplesLeaf(n int) TreeOption {
	return func(c *treeConfig) {
		if n > 0 {
			c.minLeaf = n
		}
	}
}

// FitTree grows a regression tree on x and y.
func FitTree(x [][]float64, y []float64, opts ...TreeOption) (*TreeModel, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("%d rows against %d targets: %w", len(x), len(y), ErrNotEnoughData)
	}
	cfg := &treeConfig{
		maxDepth: defaultMaxDepth,
		minSplit: defaultMinSplit,
		minLeaf:  defaultMinLeaf,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}
	return &TreeModel{
		Root:     grow(x, y, idx, 0, cfg),
		Features: len(x[0]),
	}, nil
}

// grow builds the subtree for the samples in idx.
func grow(x [][]float64, y []float64, idx []int, depth int, cfg *treeConfig) *TreeNode {
	node := &TreeNode{Value: meanAt(y, idx)}
	if depth >= cfg.maxDepth || len(idx) < cfg.minSplit {
		return node
	}

	feature, threshold, ok := bestSplit(x, y, idx, cfg.minLeaf)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	node.Feature = feature
	node.Threshold = threshold
	node.Left = grow(x, y, left, depth+1, cfg)
	node.Right = grow(x, y, right, depth+1, cfg)
	return node
}

// bestSplit scans every feature for the threshold that minimizes the summed
// squared error of the two children. Candidates are midpoints between
// consecutive distinct values in feature-sorted order; prefix sums keep the
// scan linear per feature.
func bestSplit(x [][]float64, y []float64, idx []int, minLeaf int) (int, float64, bool) {
	n := len(idx)
	features := len(x[idx[0]])

	var (
		bestSSE      = sseAt(y, idx)
		bestFeature  = -1
		bestThresh   float64
		sorted       = make([]int, n)
		totalSum     float64
		totalSqSum   float64
		improvedOnce bool
	)
	if bestSSE <= minSplitVariance {
		return 0, 0, false
	}
	for _, i := range idx {
		totalSum += y[i]
		totalSqSum += y[i] * y[i]
	}

	for f := 0; f < features; f++ {
		copy(sorted, idx)
		sort.Slice(sorted, func(a, b int) bool { return x[sorted[a]][f] < x[sorted[b]][f] })

		leftSum, leftSq := 0.0, 0.0
		for k := 0; k < n-1; k++ {
			i := sorted[k]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			if x[sorted[k+1]][f] == x[i][f] {
				continue // not a boundary between distinct values
			}
			leftN, rightN := k+1, n-k-1
			if leftN < minLeaf || rightN < minLeaf {
				continue
			}
			rightSum := totalSum - leftSum
			rightSq := totalSqSum - leftSq
			sse := (leftSq - leftSum*leftSum/float64(leftN)) +
				(rightSq - rightSum*rightSum/float64(rightN))
			if sse < bestSSE-minSplitVariance {
				bestSSE = sse
				bestFeature = f
				bestThresh = (x[i][f] + x[sorted[k+1]][f]) / 2
				improvedOnce = true
			}
		}
	}
	return bestFeature, bestThresh, improvedOnce
}

func meanAt(y []float64, idx []int) float64 {
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func sseAt(y []float64, idx []int) float64 {
	mean := meanAt(y, idx)
	sse := 0.0
	for _, i := range idx {
		d := y[i] - mean
		sse += d * d
	}
	return sse
}

// Predict implements Model.
func (m *TreeModel) Predict(features []float64) (float64, error) {
	if len(features) != m.Features {
		return 0, fmt.Errorf("got %d features, tree fitted on %d: %w",
			len(features), m.Features, ErrDimensionMismatch)
	}
	node := m.Root
	for !node.leaf() {
		if features[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value, nil
}

// Name implements Model.
func (m *TreeModel) Name() string { return "regression_tree" }

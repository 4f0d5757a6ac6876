// Package tree implements a CART regression tree, the high-variance base
// learner the bagging ensemble is built on.
package tree

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/agrolab/soyield/core/model"
	"github.com/agrolab/soyield/pkg/errors"
)

// Regressor is a binary regression tree grown by recursive partitioning
// on variance reduction.
type Regressor struct {
	model.BaseEstimator

	// MinSplit is the minimum number of rows a node needs to be
	// considered for splitting.
	MinSplit int
	// MinLeaf is the minimum number of rows each child must keep.
	MinLeaf int
	// MaxDepth limits tree depth; <= 0 means unlimited.
	MaxDepth int

	root      *node
	nFeatures int
}

type node struct {
	leaf     bool
	value    float64
	splitVar int
	splitVal float64
	left     *node
	right    *node
}

// NewRegressor creates a regression tree with the given stopping
// parameters. Zero values fall back to MinSplit=2, MinLeaf=1.
func NewRegressor(minSplit, minLeaf, maxDepth int) *Regressor {
	if minSplit < 2 {
		minSplit = 2
	}
	if minLeaf < 1 {
		minLeaf = 1
	}
	return &Regressor{MinSplit: minSplit, MinLeaf: minLeaf, MaxDepth: maxDepth}
}

// Fit grows the tree on X, y.
func (t *Regressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewFitError("tree", "empty training data")
	}
	if ry != r {
		return errors.NewDimensionError("tree.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("tree.Fit", "y must be a column vector")
	}

	t.nFeatures = c

	xs := make([][]float64, r)
	ys := make([]float64, r)
	inx := make([]int, r)
	for i := 0; i < r; i++ {
		xs[i] = mat.Row(nil, i, X)
		ys[i] = y.At(i, 0)
		inx[i] = i
	}

	t.root = t.grow(xs, ys, inx, 0)
	t.SetFitted()
	return nil
}

func (t *Regressor) grow(xs [][]float64, ys []float64, inx []int, depth int) *node {
	imp, mean := meanVar(ys, inx)
	n := &node{value: mean}

	if len(inx) < t.MinSplit ||
		len(inx) < 2*t.MinLeaf ||
		(t.MaxDepth > 0 && depth >= t.MaxDepth) ||
		imp <= 1e-12 {
		n.leaf = true
		return n
	}

	splitVar, splitVal, ok := t.bestSplit(xs, ys, inx, imp)
	if !ok {
		n.leaf = true
		return n
	}

	var left, right []int
	for _, i := range inx {
		if xs[i][splitVar] < splitVal {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < t.MinLeaf || len(right) < t.MinLeaf {
		n.leaf = true
		return n
	}

	n.splitVar = splitVar
	n.splitVal = splitVal
	n.left = t.grow(xs, ys, left, depth+1)
	n.right = t.grow(xs, ys, right, depth+1)
	return n
}

// bestSplit scans every feature for the threshold with the largest
// weighted variance reduction, using prefix sums over the sorted feature
// values.
func (t *Regressor) bestSplit(xs [][]float64, ys []float64, inx []int, parentImp float64) (int, float64, bool) {
	var (
		bestGain float64
		bestVar  int
		bestVal  float64
		found    bool
	)

	n := len(inx)
	order := make([]int, n)

	for j := 0; j < t.nFeatures; j++ {
		copy(order, inx)
		sort.Slice(order, func(a, b int) bool { return xs[order[a]][j] < xs[order[b]][j] })

		if xs[order[n-1]][j] <= xs[order[0]][j]+1e-12 {
			continue // constant feature
		}

		var sumL, sqL float64
		var sumR, sqR float64
		for _, i := range order {
			sumR += ys[i]
			sqR += ys[i] * ys[i]
		}

		for k := 0; k < n-1; k++ {
			yv := ys[order[k]]
			sumL += yv
			sqL += yv * yv
			sumR -= yv
			sqR -= yv * yv

			nL := k + 1
			nR := n - nL
			if nL < t.MinLeaf || nR < t.MinLeaf {
				continue
			}
			// skip ties: no threshold separates equal values
			if xs[order[k+1]][j] <= xs[order[k]][j]+1e-12 {
				continue
			}

			varL := sqL/float64(nL) - (sumL/float64(nL))*(sumL/float64(nL))
			varR := sqR/float64(nR) - (sumR/float64(nR))*(sumR/float64(nR))
			gain := parentImp - (float64(nL)*varL+float64(nR)*varR)/float64(n)

			if gain > bestGain {
				bestGain = gain
				bestVar = j
				bestVal = (xs[order[k]][j] + xs[order[k+1]][j]) / 2
				found = true
			}
		}
	}

	return bestVar, bestVal, found
}

// Predict routes each row of X to a leaf and returns the leaf means.
func (t *Regressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("tree.Regressor", "Predict")
	}

	r, c := X.Dims()
	if c != t.nFeatures {
		return nil, errors.NewDimensionError("tree.Predict", t.nFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, X)
		nd := t.root
		for !nd.leaf {
			if row[nd.splitVar] < nd.splitVal {
				nd = nd.left
			} else {
				nd = nd.right
			}
		}
		predictions.Set(i, 0, nd.value)
	}
	return predictions, nil
}

// Depth returns the depth of the fitted tree, 0 for a stump.
func (t *Regressor) Depth() int {
	return depthOf(t.root)
}

func depthOf(n *node) int {
	if n == nil || n.leaf {
		return 0
	}
	dl := depthOf(n.left)
	dr := depthOf(n.right)
	if dl > dr {
		return dl + 1
	}
	return dr + 1
}

// meanVar returns the variance and mean of ys over the given indices.
func meanVar(ys []float64, inx []int) (float64, float64) {
	var sum, sq float64
	for _, i := range inx {
		sum += ys[i]
		sq += ys[i] * ys[i]
	}
	n := float64(len(inx))
	mean := sum / n
	return sq/n - mean*mean, mean
}

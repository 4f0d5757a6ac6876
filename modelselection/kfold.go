// Package modelselection provides the k-fold cross-validation harness
// and the hyperparameter sweep that score the base model families on a
// common footing.
package modelselection

import (
	"math/rand/v2"
)

// Fold is one train/test index partition.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold splits row indices into k disjoint, roughly equal-size folds.
// The folds exhaust the rows: every row appears in exactly one test
// fold.
type KFold struct {
	NSplits int
	Shuffle bool
	Seed    uint64
}

// NewKFold creates a splitter; fewer than 2 splits falls back to 10, the
// pipeline default.
func NewKFold(nSplits int, shuffle bool, seed uint64) KFold {
	if nSplits < 2 {
		nSplits = 10
	}
	return KFold{NSplits: nSplits, Shuffle: shuffle, Seed: seed}
}

// Split generates the folds for n rows.
func (kf KFold) Split(n int) []Fold {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if kf.Shuffle {
		r := rand.New(rand.NewPCG(kf.Seed, kf.Seed))
		r.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := n / kf.NSplits
	remainder := n % kf.NSplits

	current := 0
	for i := 0; i < kf.NSplits; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		test := make([]int, testSize)
		copy(test, indices[current:current+testSize])

		inTest := make(map[int]bool, testSize)
		for _, idx := range test {
			inTest[idx] = true
		}
		train := make([]int, 0, n-testSize)
		for _, idx := range indices {
			if !inTest[idx] {
				train = append(train, idx)
			}
		}

		folds[i] = Fold{TrainIndices: train, TestIndices: test}
		current += testSize
	}

	return folds
}

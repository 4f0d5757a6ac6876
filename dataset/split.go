package dataset

import (
	"math"
	"math/rand/v2"

	"github.com/agrolab/soyield/pkg/errors"
)

// SplitIndices draws a seeded train/test index partition over n rows.
// The test side holds floor(testFraction*n) rows; the two sides are
// disjoint and together cover every row exactly once. Indices within each
// side keep their original relative order so that the same seed yields
// identically ordered subsets across schema views.
func SplitIndices(n int, testFraction float64, seed uint64) (train, test []int, err error) {
	if n <= 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "dataset.SplitIndices")
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, errors.NewValueError("dataset.SplitIndices", "test fraction must be in (0, 1)")
	}

	nTest := int(math.Floor(testFraction * float64(n)))
	if nTest == 0 || nTest == n {
		return nil, nil, errors.NewValueError("dataset.SplitIndices", "split leaves one side empty")
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(n, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	inTest := make([]bool, n)
	for _, idx := range perm[:nTest] {
		inTest[idx] = true
	}

	train = make([]int, 0, n-nTest)
	test = make([]int, 0, nTest)
	for i := 0; i < n; i++ {
		if inTest[i] {
			test = append(test, i)
		} else {
			train = append(train, i)
		}
	}
	return train, test, nil
}

// TrainTestSplit partitions a table into disjoint training and test
// tables using a seeded index sample.
func TrainTestSplit(t *Table, testFraction float64, seed uint64) (train, test *Table, err error) {
	trainIdx, testIdx, err := SplitIndices(t.Len(), testFraction, seed)
	if err != nil {
		return nil, nil, err
	}
	train, err = t.Subset(trainIdx)
	if err != nil {
		return nil, nil, err
	}
	test, err = t.Subset(testIdx)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// Bootstrap draws a sample of size n with replacement over [0, n) using
// the given seed. The draw is uniform and independent per position, so a
// sample may repeat some rows and omit others.
func Bootstrap(n int, seed uint64) []int {
	r := rand.New(rand.NewPCG(seed, seed))
	out := make([]int, n)
	for i := range out {
		out[i] = r.IntN(n)
	}
	return out
}

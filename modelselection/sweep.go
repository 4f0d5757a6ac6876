package modelselection

import (
	"math"

	"github.com/agrolab/soyield/adapter"
	"github.com/agrolab/soyield/core/parallel"
	"github.com/agrolab/soyield/dataset"
	"github.com/agrolab/soyield/metrics"
	"github.com/agrolab/soyield/pkg/errors"
)

// Sweep evaluates holdout RMSE for every candidate hyperparameter value.
// build constructs the adapter for one candidate; each candidate runs an
// independent fit/predict/score cycle with no shared mutable state, so
// candidates run concurrently.
func Sweep(build func(v float64) adapter.Adapter, train, test *dataset.Table, candidates []float64) (map[float64]float64, error) {
	if len(candidates) == 0 {
		return nil, errors.NewValueError("modelselection.Sweep", "no candidate values")
	}

	scores := make([]float64, len(candidates))
	errs := make([]error, len(candidates))
	actual := test.YSlice()

	parallel.ParallelizeIndexed(len(candidates), func(i int) {
		ad := build(candidates[i])
		fitted, err := ad.Fit(train)
		if err != nil {
			errs[i] = errors.Wrapf(err, "candidate %g", candidates[i])
			return
		}
		pred, err := fitted.Predict(test)
		if err != nil {
			errs[i] = errors.Wrapf(err, "candidate %g", candidates[i])
			return
		}
		scores[i], errs[i] = metrics.RMSE(actual, pred)
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	out := make(map[float64]float64, len(candidates))
	for i, v := range candidates {
		out[v] = scores[i]
	}
	return out, nil
}

// ArgMin returns the candidate with the smallest score.
func ArgMin(scores map[float64]float64) (float64, float64) {
	best := math.NaN()
	bestScore := math.Inf(1)
	for v, s := range scores {
		if s < bestScore || (s == bestScore && v < best) {
			best = v
			bestScore = s
		}
	}
	return best, bestScore
}

package modelselection

import (
	"math"

	"github.com/agrolab/soyield/adapter"
	"github.com/agrolab/soyield/core/parallel"
	"github.com/agrolab/soyield/dataset"
	"github.com/agrolab/soyield/metrics"
	"github.com/agrolab/soyield/pkg/errors"
)

// FoldMetrics holds the scores of one fold.
type FoldMetrics struct {
	Fold int
	RMSE float64
	MAE  float64
}

// CVResult is the per-fold and summary output of a cross-validation run.
type CVResult struct {
	Folds []FoldMetrics

	MeanRMSE float64
	StdRMSE  float64
	MeanMAE  float64
	StdMAE   float64
}

// CrossValidate fits and scores the adapter once per fold. A fold's rows
// never train that fold's model. Folds run concurrently; a fit or
// predict failure in any fold fails the whole run.
func CrossValidate(ad adapter.Adapter, tab *dataset.Table, kf KFold) (*CVResult, error) {
	if tab == nil || tab.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "modelselection.CrossValidate")
	}
	if kf.NSplits > tab.Len() {
		return nil, errors.NewValueError("modelselection.CrossValidate", "more folds than rows")
	}

	folds := kf.Split(tab.Len())
	result := &CVResult{Folds: make([]FoldMetrics, len(folds))}
	errs := make([]error, len(folds))

	parallel.ParallelizeIndexed(len(folds), func(i int) {
		fold := folds[i]

		train, err := tab.Subset(fold.TrainIndices)
		if err != nil {
			errs[i] = err
			return
		}
		test, err := tab.Subset(fold.TestIndices)
		if err != nil {
			errs[i] = err
			return
		}

		fitted, err := ad.Fit(train)
		if err != nil {
			errs[i] = errors.Wrapf(err, "fold %d", i)
			return
		}
		pred, err := fitted.Predict(test)
		if err != nil {
			errs[i] = errors.Wrapf(err, "fold %d", i)
			return
		}

		actual := test.YSlice()
		rmse, err := metrics.RMSE(actual, pred)
		if err != nil {
			errs[i] = errors.Wrapf(err, "fold %d", i)
			return
		}
		mae, err := metrics.MAE(actual, pred)
		if err != nil {
			errs[i] = errors.Wrapf(err, "fold %d", i)
			return
		}

		result.Folds[i] = FoldMetrics{Fold: i, RMSE: rmse, MAE: mae}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	result.MeanRMSE, result.StdRMSE = meanStd(result.Folds, func(f FoldMetrics) float64 { return f.RMSE })
	result.MeanMAE, result.StdMAE = meanStd(result.Folds, func(f FoldMetrics) float64 { return f.MAE })
	return result, nil
}

func meanStd(folds []FoldMetrics, pick func(FoldMetrics) float64) (float64, float64) {
	n := float64(len(folds))
	var mean float64
	for _, f := range folds {
		mean += pick(f)
	}
	mean /= n

	if len(folds) < 2 {
		return mean, 0
	}
	var sq float64
	for _, f := range folds {
		d := pick(f) - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / (n - 1))
}

// Package metrics computes the regression metrics every model and
// ensemble in the pipeline is scored with. All metrics operate on plain
// prediction vectors, the unit exchanged between components.
package metrics

import (
	"math"

	"github.com/agrolab/soyield/pkg/errors"
)

// MSE computes the mean squared error between actual and predicted.
// Pairs where either value is NaN are excluded from the mean. If every
// pair is excluded the metric is undefined and an error is returned
// rather than a NaN score.
func MSE(actual, predicted []float64) (float64, error) {
	n := len(actual)
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty input")
	}
	if len(predicted) != n {
		return 0, errors.NewInputSizeError("MSE", n, len(predicted))
	}

	var sum float64
	valid := 0
	for i := 0; i < n; i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		diff := actual[i] - predicted[i]
		sum += diff * diff
		valid++
	}
	if valid == 0 {
		return 0, errors.Wrap(errors.ErrAllMissing, "MSE")
	}
	return sum / float64(valid), nil
}

// RMSE computes the root mean squared error. Same missing-value policy
// as MSE.
func RMSE(actual, predicted []float64) (float64, error) {
	mse, err := MSE(actual, predicted)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error. Same missing-value policy as MSE.
func MAE(actual, predicted []float64) (float64, error) {
	n := len(actual)
	if n == 0 {
		return 0, errors.NewValueError("MAE", "empty input")
	}
	if len(predicted) != n {
		return 0, errors.NewInputSizeError("MAE", n, len(predicted))
	}

	var sum float64
	valid := 0
	for i := 0; i < n; i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		sum += math.Abs(actual[i] - predicted[i])
		valid++
	}
	if valid == 0 {
		return 0, errors.Wrap(errors.ErrAllMissing, "MAE")
	}
	return sum / float64(valid), nil
}

// R2 computes the coefficient of determination.
func R2(actual, predicted []float64) (float64, error) {
	n := len(actual)
	if n == 0 {
		return 0, errors.NewValueError("R2", "empty input")
	}
	if len(predicted) != n {
		return 0, errors.NewInputSizeError("R2", n, len(predicted))
	}

	var mean float64
	valid := 0
	for i := 0; i < n; i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		mean += actual[i]
		valid++
	}
	if valid == 0 {
		return 0, errors.Wrap(errors.ErrAllMissing, "R2")
	}
	mean /= float64(valid)

	var tss, rss float64
	for i := 0; i < n; i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		tss += (actual[i] - mean) * (actual[i] - mean)
		rss += (actual[i] - predicted[i]) * (actual[i] - predicted[i])
	}
	if tss == 0 {
		return 0, errors.NewValueError("R2", "no variance in actual values")
	}
	return 1 - rss/tss, nil
}

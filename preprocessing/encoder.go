package preprocessing

import (
	"github.com/agrolab/soyield/core/model"
	"github.com/agrolab/soyield/pkg/errors"
)

// TargetEncoder replaces a categorical level with the mean target value
// observed for that level during Fit. Levels unseen at Fit time encode
// to the global target mean.
type TargetEncoder struct {
	model.BaseEstimator

	means      map[string]float64
	globalMean float64
}

// NewTargetEncoder creates an unfitted encoder.
func NewTargetEncoder() *TargetEncoder {
	return &TargetEncoder{}
}

// Fit computes the per-level and global target means.
func (e *TargetEncoder) Fit(levels []string, target []float64) error {
	if len(levels) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "TargetEncoder.Fit")
	}
	if len(target) != len(levels) {
		return errors.NewInputSizeError("TargetEncoder.Fit", len(levels), len(target))
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var total float64
	for i, level := range levels {
		sums[level] += target[i]
		counts[level]++
		total += target[i]
	}

	e.means = make(map[string]float64, len(sums))
	for level, sum := range sums {
		e.means[level] = sum / float64(counts[level])
	}
	e.globalMean = total / float64(len(levels))

	e.SetFitted()
	return nil
}

// Transform encodes each level to its fitted mean.
func (e *TargetEncoder) Transform(levels []string) ([]float64, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("TargetEncoder", "Transform")
	}

	out := make([]float64, len(levels))
	for i, level := range levels {
		if m, ok := e.means[level]; ok {
			out[i] = m
		} else {
			out[i] = e.globalMean
		}
	}
	return out, nil
}

// Levels returns the number of distinct levels seen during Fit.
func (e *TargetEncoder) Levels() int {
	return len(e.means)
}

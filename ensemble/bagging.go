// Package ensemble builds the two ensembles of the pipeline: a bagged
// regression tree and a heterogeneous average over the three base model
// families.
package ensemble

import (
	"sync"

	"github.com/agrolab/soyield/adapter"
	"github.com/agrolab/soyield/core/parallel"
	"github.com/agrolab/soyield/dataset"
	"github.com/agrolab/soyield/pkg/errors"
)

// DefaultResamples is the bootstrap count used when Bagging.Resamples is
// zero. Variance reduction has diminishing returns beyond this range; it
// is a tunable, not a hard constant.
const DefaultResamples = 50

// Bagging configures a bootstrap-aggregation build over one base
// adapter.
type Bagging struct {
	// Adapter is the base model family to refit per resample.
	Adapter adapter.Adapter
	// Resamples is the number of bootstrap refits; 0 means
	// DefaultResamples.
	Resamples int
	// Seed is the base seed. Resample i draws its bootstrap with
	// sub-seed Seed+i, so the seed-to-resample binding does not depend
	// on goroutine scheduling.
	Seed uint64
}

// BaggedModel is a fixed collection of fitted members, all trained on
// independent bootstrap resamples of one training set. Its prediction is
// defined as the elementwise mean of its members' predictions; it holds
// no other state.
type BaggedModel struct {
	members []*adapter.Fitted
}

// Build fits the ensemble and returns it together with its mean
// prediction on test. Test rows never enter a resampling pool: every
// bootstrap draws from train only.
//
// The build is all-or-nothing. Any member failing to fit or predict
// fails the whole build with an EnsembleBuildError; partial ensembles
// are never returned.
func (b Bagging) Build(train, test *dataset.Table) (*BaggedModel, []float64, error) {
	if train == nil || train.Len() == 0 {
		return nil, nil, errors.NewFitError(b.Adapter.Name(), "empty training data")
	}
	if test == nil || test.Len() == 0 {
		return nil, nil, errors.NewValueError("bagging.Build", "empty test data")
	}

	resamples := b.Resamples
	if resamples == 0 {
		resamples = DefaultResamples
	}
	if resamples < 1 {
		return nil, nil, errors.NewValueError("bagging.Build", "resamples must be positive")
	}

	n := train.Len()
	members := make([]*adapter.Fitted, resamples)
	preds := make([][]float64, resamples)
	errs := make([]error, resamples)

	parallel.ParallelizeIndexed(resamples, func(i int) {
		sample, err := train.Subset(dataset.Bootstrap(n, b.Seed+uint64(i)))
		if err != nil {
			errs[i] = err
			return
		}
		fitted, err := b.Adapter.Fit(sample)
		if err != nil {
			errs[i] = err
			return
		}
		pv, err := fitted.Predict(test)
		if err != nil {
			errs[i] = err
			return
		}
		members[i] = fitted
		preds[i] = pv
	})

	for i, err := range errs {
		if err != nil {
			return nil, nil, errors.NewEnsembleBuildError(i, err)
		}
	}

	// aggregate only after every resample has completed
	mean := make([]float64, test.Len())
	for _, pv := range preds {
		for j, v := range pv {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(resamples)
	}

	return &BaggedModel{members: members}, mean, nil
}

// Size returns the number of members.
func (m *BaggedModel) Size() int { return len(m.members) }

// Predict returns the elementwise mean of the members' predictions on
// test. Member predictions run concurrently; the mean is computed after
// all members finish.
func (m *BaggedModel) Predict(test *dataset.Table) ([]float64, error) {
	if len(m.members) == 0 {
		return nil, errors.NewNotFittedError("ensemble.BaggedModel", "Predict")
	}

	preds := make([][]float64, len(m.members))
	errs := make([]error, len(m.members))
	var wg sync.WaitGroup
	for i, member := range m.members {
		wg.Add(1)
		go func(i int, member *adapter.Fitted) {
			defer wg.Done()
			preds[i], errs[i] = member.Predict(test)
		}(i, member)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, errors.NewEnsembleBuildError(i, err)
		}
	}

	mean := make([]float64, test.Len())
	for _, pv := range preds {
		for j, v := range pv {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(m.members))
	}
	return mean, nil
}

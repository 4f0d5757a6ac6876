// Package adapter wraps the base estimator families behind the uniform
// fit/predict capability the ensembles and harnesses consume. An Adapter
// produces a fresh estimator per fit, so repeated fits (bootstrap
// resamples, CV folds, sweep candidates) never share state; a Fitted
// model is bound to the schema it was trained on and immutable afterward.
package adapter

import (
	"github.com/agrolab/soyield/core/model"
	"github.com/agrolab/soyield/dataset"
	"github.com/agrolab/soyield/pkg/errors"
)

// Adapter is a named, repeatable fit capability for one model family.
type Adapter struct {
	name    string
	factory func() model.Regressor
}

// New creates an adapter. factory must return a fresh, unfitted
// estimator on every call.
func New(name string, factory func() model.Regressor) Adapter {
	return Adapter{name: name, factory: factory}
}

// Name returns the model family name.
func (a Adapter) Name() string { return a.name }

// Fit trains a fresh estimator on the table and binds the result to the
// table's schema.
func (a Adapter) Fit(train *dataset.Table) (*Fitted, error) {
	if train == nil || train.Len() == 0 {
		return nil, errors.NewFitError(a.name, "empty training data")
	}
	if train.Schema().Target == "" {
		return nil, errors.NewFitError(a.name, "training data has no target column")
	}

	est := a.factory()
	if err := est.Fit(train.X(), train.Y()); err != nil {
		return nil, errors.Wrapf(err, "adapter %s", a.name)
	}
	return &Fitted{name: a.name, est: est, schema: train.Schema()}, nil
}

// Fitted is an opaque fitted model bound to its training schema.
type Fitted struct {
	name   string
	est    model.Predictor
	schema dataset.Schema
}

// Name returns the model family name.
func (f *Fitted) Name() string { return f.name }

// Schema returns the schema the model was fitted on.
func (f *Fitted) Schema() dataset.Schema { return f.schema }

// Predict returns one prediction per row of test, aligned with the
// test table's row order. The test schema must match the training
// schema exactly.
func (f *Fitted) Predict(test *dataset.Table) ([]float64, error) {
	if test == nil || test.Len() == 0 {
		return nil, errors.NewValueError("adapter.Predict", "empty test data")
	}
	if !f.schema.Equal(test.Schema()) {
		return nil, errors.NewSchemaMismatchError(f.name, f.schema.Features, test.Schema().Features)
	}

	out, err := f.est.Predict(test.X())
	if err != nil {
		return nil, errors.Wrapf(err, "adapter %s", f.name)
	}
	r, _ := out.Dims()
	preds := make([]float64, r)
	for i := 0; i < r; i++ {
		preds[i] = out.At(i, 0)
	}
	return preds, nil
}

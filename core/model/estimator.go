package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for trainable estimators.
type Fitter interface {
	// Fit trains the estimator on features X and targets y.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for fitted estimators.
type Predictor interface {
	// Predict returns one prediction per row of X as an n×1 matrix.
	// Predicting never mutates the estimator.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Regressor combines the two capabilities every base model family in the
// pipeline must provide. Fitting internals are opaque to callers.
type Regressor interface {
	Fitter
	Predictor
}

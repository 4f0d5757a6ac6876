// Package linear implements ordinary least squares regression, the first
// of the three base model families compared by the pipeline.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/agrolab/soyield/core/model"
	"github.com/agrolab/soyield/core/parallel"
	"github.com/agrolab/soyield/pkg/errors"
)

// Regression is a least-squares linear model fit via QR decomposition.
type Regression struct {
	model.BaseEstimator

	weights   *mat.VecDense
	intercept float64
	nFeatures int
}

// NewRegression creates an unfitted linear regression.
func NewRegression() *Regression {
	return &Regression{}
}

// Fit solves the least-squares problem for X and y. The system is solved
// with a QR decomposition rather than the normal equations, which keeps
// near-collinear feature sets (PCA scores truncated at high variance)
// numerically stable.
func (lr *Regression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewFitError("linear", "empty training data")
	}
	if ry != r {
		return errors.NewDimensionError("linear.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("linear.Fit", "y must be a column vector")
	}
	if r <= c {
		return errors.NewFitError("linear", "fewer rows than coefficients")
	}

	lr.nFeatures = c

	// design matrix with a leading column of ones for the intercept
	design := mat.NewDense(r, c+1, nil)
	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			design.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				design.Set(i, j+1, X.At(i, j))
			}
		}
	})

	var coef mat.Dense
	if err := coef.Solve(design, y); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, "linear.Fit")
	}

	lr.intercept = coef.At(0, 0)
	lr.weights = mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		lr.weights.SetVec(j, coef.At(j+1, 0))
	}

	lr.SetFitted()
	return nil
}

// Predict returns one fitted value per row of X.
func (lr *Regression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("linear.Regression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.nFeatures {
		return nil, errors.NewDimensionError("linear.Predict", lr.nFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// Weights returns a copy of the fitted coefficients.
func (lr *Regression) Weights() []float64 {
	if lr.weights == nil {
		return nil
	}
	out := make([]float64, lr.weights.Len())
	for i := range out {
		out[i] = lr.weights.AtVec(i)
	}
	return out
}

// Intercept returns the fitted intercept.
func (lr *Regression) Intercept() float64 {
	return lr.intercept
}

// Score computes the coefficient of determination on X, y.
func (lr *Regression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("linear.Regression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yPred.At(i, 0)) * (yTrue - yPred.At(i, 0))
	}
	if tss == 0 {
		return 0, errors.NewValueError("linear.Score", "no variance in y")
	}
	return 1 - rss/tss, nil
}

// Package svm implements an epsilon-insensitive support vector regressor
// with an RBF kernel, the third base model family of the pipeline.
//
// The dual is solved by cyclic coordinate descent on the combined
// coefficients beta_i = alpha_i - alpha_i* with box constraint
// |beta_i| <= C. The bias is fit separately from the mean residual over
// the support vectors, which removes the equality constraint from the
// dual and keeps each coordinate update analytic.
package svm

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/agrolab/soyield/core/model"
	"github.com/agrolab/soyield/pkg/errors"
)

// SVR is an RBF-kernel epsilon-SVR.
type SVR struct {
	model.BaseEstimator

	// C is the cost of constraint violation; larger values fit the
	// training data more closely. This is the parameter the
	// hyperparameter sweep tunes.
	C float64
	// Epsilon is the width of the insensitive tube around the target.
	Epsilon float64
	// Gamma is the RBF kernel width; <= 0 selects 1/nFeatures.
	Gamma float64
	// MaxIter bounds the number of coordinate-descent passes.
	MaxIter int
	// Tol is the convergence threshold on the largest coefficient move
	// within a pass.
	Tol float64
	// Seed drives the coordinate visiting order. Fits with the same
	// seed and data are identical.
	Seed uint64

	beta      []float64
	bias      float64
	sv        *mat.Dense // training rows, referenced by the kernel at predict time
	gamma     float64
	nFeatures int
}

// NewSVR creates an SVR with the given cost. Remaining parameters take
// the conventional defaults (epsilon 0.1, gamma 1/nFeatures, 200 passes).
func NewSVR(c float64, seed uint64) *SVR {
	return &SVR{
		C:       c,
		Epsilon: 0.1,
		MaxIter: 200,
		Tol:     1e-4,
		Seed:    seed,
	}
}

// Fit solves the SVR dual on X, y.
func (s *SVR) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewFitError("svr", "empty training data")
	}
	if ry != r {
		return errors.NewDimensionError("svm.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("svm.Fit", "y must be a column vector")
	}
	if s.C <= 0 {
		return errors.NewValueError("svm.Fit", "cost C must be positive")
	}

	s.nFeatures = c
	s.gamma = s.Gamma
	if s.gamma <= 0 {
		s.gamma = 1.0 / float64(c)
	}

	s.sv = mat.DenseCopyOf(X)
	ys := make([]float64, r)
	for i := 0; i < r; i++ {
		ys[i] = y.At(i, 0)
	}

	// precompute the kernel matrix; at 224 training rows this is small
	k := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		xi := mat.Row(nil, i, X)
		for j := i; j < r; j++ {
			k.SetSym(i, j, s.rbf(xi, mat.Row(nil, j, X)))
		}
	}

	s.beta = make([]float64, r)
	// f[i] caches the current decision value sum_k beta_k K(i,k)
	f := make([]float64, r)

	order := make([]int, r)
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewPCG(s.Seed, s.Seed))

	for iter := 0; iter < s.MaxIter; iter++ {
		rng.Shuffle(r, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		maxMove := 0.0
		for _, i := range order {
			kii := k.At(i, i)
			if kii <= 0 {
				continue
			}
			// residual without i's own contribution
			res := ys[i] - (f[i] - s.beta[i]*kii)
			// soft threshold by epsilon, clip to the box
			nb := softThreshold(res, s.Epsilon) / kii
			nb = math.Max(-s.C, math.Min(s.C, nb))

			delta := nb - s.beta[i]
			if delta == 0 {
				continue
			}
			s.beta[i] = nb
			for j := 0; j < r; j++ {
				f[j] += delta * k.At(i, j)
			}
			if math.Abs(delta) > maxMove {
				maxMove = math.Abs(delta)
			}
		}

		if maxMove < s.Tol {
			break
		}
	}

	// bias from the mean residual over support vectors
	var residual float64
	nSV := 0
	for i := 0; i < r; i++ {
		if s.beta[i] != 0 {
			residual += ys[i] - f[i]
			nSV++
		}
	}
	if nSV > 0 {
		s.bias = residual / float64(nSV)
	} else {
		// degenerate fit (epsilon swallowed everything): predict the mean
		var mean float64
		for _, v := range ys {
			mean += v
		}
		s.bias = mean / float64(r)
	}

	s.SetFitted()
	return nil
}

// Predict evaluates the fitted decision function on each row of X.
func (s *SVR) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("svm.SVR", "Predict")
	}

	r, c := X.Dims()
	if c != s.nFeatures {
		return nil, errors.NewDimensionError("svm.Predict", s.nFeatures, c, 1)
	}

	nSV, _ := s.sv.Dims()
	predictions := mat.NewDense(r, 1, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, X)
		pred := s.bias
		for j := 0; j < nSV; j++ {
			if s.beta[j] == 0 {
				continue
			}
			pred += s.beta[j] * s.rbf(row, s.sv.RawRowView(j))
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// NumSupportVectors returns the count of nonzero dual coefficients.
func (s *SVR) NumSupportVectors() int {
	n := 0
	for _, b := range s.beta {
		if b != 0 {
			n++
		}
	}
	return n
}

func (s *SVR) rbf(a, b []float64) float64 {
	var d float64
	for i := range a {
		diff := a[i] - b[i]
		d += diff * diff
	}
	return math.Exp(-s.gamma * d)
}

func softThreshold(v, eps float64) float64 {
	switch {
	case v > eps:
		return v - eps
	case v < -eps:
		return v + eps
	default:
		return 0
	}
}

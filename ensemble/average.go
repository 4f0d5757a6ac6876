package ensemble

import (
	"github.com/agrolab/soyield/dataset"
	"github.com/agrolab/soyield/pkg/errors"
)

// Predictor is the capability the combiner needs from an already-fitted
// model. *adapter.Fitted and *BaggedModel both satisfy it.
type Predictor interface {
	Predict(test *dataset.Table) ([]float64, error)
}

// CombineAverage produces the heterogeneous ensemble prediction: the
// elementwise mean of the linear model's, the bagged mean's and the
// SVR's predictions.
//
// regTest and svmTest are schema-divergent views of the same physical
// test rows; they must carry the rows in the same order, and baggedMean
// must be aligned with them. Row counts and the row identifiers of the
// two views are checked, and any disagreement fails with an
// AlignmentError rather than silently corrupting the ensemble.
//
// Equal weights are the contract. Error-weighted averaging (weights
// inversely proportional to each member's validation error) is a
// possible extension via CombineWeighted; it is not applied by default.
func CombineAverage(reg Predictor, regTest *dataset.Table, baggedMean []float64, svr Predictor, svmTest *dataset.Table) ([]float64, error) {
	return CombineWeighted(reg, regTest, baggedMean, svr, svmTest, [3]float64{1, 1, 1})
}

// CombineWeighted is the weighted form of CombineAverage. Weights are
// normalized by their sum, so {1,1,1} reproduces the equal-weight
// contract exactly.
func CombineWeighted(reg Predictor, regTest *dataset.Table, baggedMean []float64, svr Predictor, svmTest *dataset.Table, weights [3]float64) ([]float64, error) {
	const op = "ensemble.Combine"

	if regTest == nil || svmTest == nil {
		return nil, errors.NewValueError(op, "nil test data")
	}
	n := regTest.Len()
	if len(baggedMean) != n || svmTest.Len() != n {
		return nil, errors.NewAlignmentError(op, []int{n, len(baggedMean), svmTest.Len()})
	}
	if row, sameLen := regTest.SameRows(svmTest); !sameLen {
		return nil, errors.NewAlignmentError(op, []int{n, svmTest.Len()})
	} else if row >= 0 {
		return nil, errors.NewRowAlignmentError(op, row)
	}

	wSum := weights[0] + weights[1] + weights[2]
	if wSum <= 0 {
		return nil, errors.NewValueError(op, "weights must sum to a positive value")
	}

	regPred, err := reg.Predict(regTest)
	if err != nil {
		return nil, err
	}
	if len(regPred) != n {
		return nil, errors.NewInputSizeError(op, n, len(regPred))
	}
	svrPred, err := svr.Predict(svmTest)
	if err != nil {
		return nil, err
	}
	if len(svrPred) != n {
		return nil, errors.NewInputSizeError(op, n, len(svrPred))
	}

	out := make([]float64, n)
	for j := 0; j < n; j++ {
		out[j] = (weights[0]*regPred[j] + weights[1]*baggedMean[j] + weights[2]*svrPred[j]) / wSum
	}
	return out, nil
}

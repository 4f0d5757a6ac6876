package modelselection

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/agrolab/soyield/adapter"
	"github.com/agrolab/soyield/core/model"
	"github.com/agrolab/soyield/dataset"
	"github.com/agrolab/soyield/linear"
	"github.com/agrolab/soyield/tree"
)

func linearAdapter() adapter.Adapter {
	return adapter.New("linear", func() model.Regressor {
		return linear.NewRegression()
	})
}

func linearTable(t *testing.T, n int) *dataset.Table {
	t.Helper()
	schema := dataset.Schema{Features: []string{"a", "b"}, Target: "y"}
	x := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, float64(i))
		x.Set(i, 1, math.Mod(float64(i)*3, 11))
		y.SetVec(i, 1.5+2*x.At(i, 0)-0.5*x.At(i, 1))
	}
	tab, err := dataset.New(schema, nil, x, y)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	return tab
}

func TestCrossValidateExactLinearData(t *testing.T) {
	tab := linearTable(t, 60)
	res, err := CrossValidate(linearAdapter(), tab, NewKFold(5, true, 11))
	if err != nil {
		t.Fatalf("CrossValidate() error = %v", err)
	}

	if len(res.Folds) != 5 {
		t.Fatalf("fold count = %d, want 5", len(res.Folds))
	}
	// noiseless linear target: OLS recovers it on every fold
	if res.MeanRMSE > 1e-6 {
		t.Errorf("MeanRMSE = %v, want ~0 on noiseless linear data", res.MeanRMSE)
	}
	for i, f := range res.Folds {
		if f.Fold != i {
			t.Errorf("Folds[%d].Fold = %d", i, f.Fold)
		}
		if math.IsNaN(f.RMSE) || math.IsNaN(f.MAE) {
			t.Errorf("fold %d has NaN scores", i)
		}
	}
}

func TestCrossValidateSummaryStats(t *testing.T) {
	tab := linearTable(t, 50)

	treeAd := adapter.New("tree", func() model.Regressor {
		return tree.NewRegressor(5, 2, 3)
	})
	res, err := CrossValidate(treeAd, tab, NewKFold(10, true, 42))
	if err != nil {
		t.Fatalf("CrossValidate() error = %v", err)
	}

	var sum float64
	for _, f := range res.Folds {
		sum += f.RMSE
	}
	if math.Abs(res.MeanRMSE-sum/10) > 1e-12 {
		t.Errorf("MeanRMSE = %v, want %v", res.MeanRMSE, sum/10)
	}
	if res.StdRMSE < 0 {
		t.Errorf("StdRMSE = %v, want >= 0", res.StdRMSE)
	}
}

func TestCrossValidateValidation(t *testing.T) {
	if _, err := CrossValidate(linearAdapter(), nil, NewKFold(5, false, 0)); err == nil {
		t.Error("CrossValidate() with nil table should error")
	}

	tab := linearTable(t, 6)
	if _, err := CrossValidate(linearAdapter(), tab, KFold{NSplits: 10}); err == nil {
		t.Error("CrossValidate() with more folds than rows should error")
	}
}

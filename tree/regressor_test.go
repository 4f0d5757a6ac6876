package tree

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestRegressorFitsStepFunction(t *testing.T) {
	// single feature, two clearly separated plateaus
	X := mat.NewDense(8, 1, []float64{1, 2, 3, 4, 10, 11, 12, 13})
	y := mat.NewDense(8, 1, []float64{5, 5, 5, 5, 20, 20, 20, 20})

	tr := NewRegressor(2, 1, 0)
	if err := tr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	pred, err := tr.Predict(mat.NewDense(2, 1, []float64{2.5, 11.5}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if math.Abs(pred.At(0, 0)-5) > 1e-9 {
		t.Errorf("left plateau prediction = %v, want 5", pred.At(0, 0))
	}
	if math.Abs(pred.At(1, 0)-20) > 1e-9 {
		t.Errorf("right plateau prediction = %v, want 20", pred.At(1, 0))
	}
}

func TestRegressorConstantTargetIsStump(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	y := mat.NewDense(6, 1, []float64{7, 7, 7, 7, 7, 7})

	tr := NewRegressor(2, 1, 0)
	if err := tr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if tr.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0 for constant target", tr.Depth())
	}

	pred, err := tr.Predict(mat.NewDense(1, 2, []float64{100, -100}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if math.Abs(pred.At(0, 0)-7) > 1e-9 {
		t.Errorf("stump prediction = %v, want 7", pred.At(0, 0))
	}
}

func TestRegressorMaxDepth(t *testing.T) {
	const n = 64
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		y.Set(i, 0, float64(i*i))
	}

	tr := NewRegressor(2, 1, 3)
	if err := tr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if d := tr.Depth(); d > 3 {
		t.Errorf("Depth() = %d, want <= 3", d)
	}
}

func TestRegressorValidation(t *testing.T) {
	tr := NewRegressor(2, 1, 0)

	if _, err := tr.Predict(mat.NewDense(1, 1, nil)); err == nil {
		t.Error("Predict() before Fit() should error")
	}
	if err := tr.Fit(mat.NewDense(0, 0, nil), mat.NewDense(0, 1, nil)); err == nil {
		t.Error("Fit() on empty data should error")
	}

	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	if err := tr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := tr.Predict(mat.NewDense(1, 2, nil)); err == nil {
		t.Error("Predict() with wrong feature count should error")
	}
}

func TestRegressorTrainingFitImproves(t *testing.T) {
	// deeper trees should not fit the training data worse
	const n = 40
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		y.Set(i, 0, math.Sin(float64(i)/4)*10)
	}

	sse := func(depth int) float64 {
		tr := NewRegressor(2, 1, depth)
		if err := tr.Fit(X, y); err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		pred, err := tr.Predict(X)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		var s float64
		for i := 0; i < n; i++ {
			d := pred.At(i, 0) - y.At(i, 0)
			s += d * d
		}
		return s
	}

	if shallow, deep := sse(1), sse(5); deep > shallow+1e-9 {
		t.Errorf("deeper tree fits training data worse: depth1=%v depth5=%v", shallow, deep)
	}
}

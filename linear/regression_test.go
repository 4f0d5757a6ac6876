package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestRegressionRecoversCoefficients(t *testing.T) {
	// y = 3 + 2*x1 - x2, no noise
	X := mat.NewDense(6, 2, []float64{
		1, 1,
		2, 0,
		3, 2,
		4, 1,
		5, 5,
		6, 3,
	})
	y := mat.NewDense(6, 1, nil)
	for i := 0; i < 6; i++ {
		y.Set(i, 0, 3+2*X.At(i, 0)-X.At(i, 1))
	}

	lr := NewRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if math.Abs(lr.Intercept()-3) > 1e-8 {
		t.Errorf("Intercept() = %v, want 3", lr.Intercept())
	}
	w := lr.Weights()
	if math.Abs(w[0]-2) > 1e-8 || math.Abs(w[1]+1) > 1e-8 {
		t.Errorf("Weights() = %v, want [2 -1]", w)
	}

	pred, err := lr.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	for i := 0; i < 6; i++ {
		if math.Abs(pred.At(i, 0)-y.At(i, 0)) > 1e-8 {
			t.Errorf("prediction %d = %v, want %v", i, pred.At(i, 0), y.At(i, 0))
		}
	}

	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if math.Abs(score-1) > 1e-8 {
		t.Errorf("Score() = %v, want 1", score)
	}
}

func TestRegressionValidation(t *testing.T) {
	lr := NewRegression()

	if _, err := lr.Predict(mat.NewDense(1, 2, nil)); err == nil {
		t.Error("Predict() before Fit() should error")
	}

	if err := lr.Fit(mat.NewDense(0, 0, nil), mat.NewDense(0, 1, nil)); err == nil {
		t.Error("Fit() on empty data should error")
	}

	X := mat.NewDense(4, 2, []float64{1, 2, 3, 4, 5, 6, 7, 9})
	y := mat.NewDense(3, 1, nil)
	if err := lr.Fit(X, y); err == nil {
		t.Error("Fit() with row mismatch should error")
	}

	y4 := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	if err := lr.Fit(X, y4); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := lr.Predict(mat.NewDense(2, 3, nil)); err == nil {
		t.Error("Predict() with wrong feature count should error")
	}
}

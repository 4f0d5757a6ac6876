package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestPCAProjectsToRequestedComponents(t *testing.T) {
	// three correlated features, 10 rows
	const n = 10
	X := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		v := float64(i)
		X.Set(i, 0, v)
		X.Set(i, 1, 2*v+math.Sin(v))
		X.Set(i, 2, -v+math.Cos(v))
	}

	p := NewPCA(2)
	out, err := p.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	r, c := out.Dims()
	if r != n || c != 2 {
		t.Fatalf("projection dims = (%d, %d), want (%d, 2)", r, c, n)
	}

	vars := p.ExplainedVariances()
	if len(vars) != 3 {
		t.Fatalf("ExplainedVariances() length = %d, want 3", len(vars))
	}
	for i := 1; i < len(vars); i++ {
		if vars[i] > vars[i-1]+1e-12 {
			t.Errorf("variances not sorted: %v", vars)
		}
	}
}

func TestPCAFirstComponentCentersData(t *testing.T) {
	const n = 20
	X := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i)+100)
		X.Set(i, 1, float64(i)*3+50)
	}

	p := NewPCA(1)
	out, err := p.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += out.At(i, 0)
	}
	if math.Abs(sum/n) > 1e-9 {
		t.Errorf("projected scores have mean %v, want 0", sum/n)
	}
}

func TestPCAValidation(t *testing.T) {
	p := NewPCA(2)

	if _, err := p.Transform(mat.NewDense(1, 2, nil)); err == nil {
		t.Error("Transform() before Fit() should error")
	}
	if err := p.Fit(mat.NewDense(1, 3, []float64{1, 2, 3})); err == nil {
		t.Error("Fit() with a single row should error")
	}

	X := mat.NewDense(5, 3, []float64{
		1, 2, 3,
		4, 5, 7,
		7, 8, 2,
		2, 1, 9,
		5, 5, 5,
	})
	if err := p.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := p.Transform(mat.NewDense(2, 2, nil)); err == nil {
		t.Error("Transform() with wrong feature count should error")
	}
}

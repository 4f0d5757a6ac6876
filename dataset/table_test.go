package dataset

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func smallTable(t *testing.T, n int) *Table {
	t.Helper()
	x := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, float64(i))
		x.Set(i, 1, float64(i)*2)
		y.SetVec(i, float64(i)*10)
	}
	tab, err := New(Schema{Features: []string{"a", "b"}, Target: "y"}, nil, x, y)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tab
}

func TestNewValidation(t *testing.T) {
	x := mat.NewDense(3, 2, nil)
	y := mat.NewVecDense(3, nil)

	if _, err := New(Schema{Features: []string{"a"}, Target: "y"}, nil, x, y); err == nil {
		t.Error("New() with feature-count mismatch should error")
	}
	if _, err := New(Schema{Features: []string{"a", "b"}, Target: "y"}, []int{1, 2}, x, y); err == nil {
		t.Error("New() with short id slice should error")
	}
}

func TestSubsetKeepsRowIDs(t *testing.T) {
	tab := smallTable(t, 5)

	sub, err := tab.Subset([]int{4, 0, 4})
	if err != nil {
		t.Fatalf("Subset() error = %v", err)
	}

	wantIDs := []int{4, 0, 4}
	gotIDs := sub.RowIDs()
	for i, want := range wantIDs {
		if gotIDs[i] != want {
			t.Errorf("RowIDs()[%d] = %d, want %d", i, gotIDs[i], want)
		}
	}
	if got := sub.Y().AtVec(0); got != 40 {
		t.Errorf("subset y[0] = %v, want 40", got)
	}

	if _, err := tab.Subset([]int{7}); err == nil {
		t.Error("Subset() with out-of-range index should error")
	}
}

func TestWithFeaturesSharesRows(t *testing.T) {
	tab := smallTable(t, 4)

	view, err := tab.WithFeatures(Schema{Features: []string{"pc1"}, Target: "y"}, mat.NewDense(4, 1, []float64{1, 2, 3, 4}))
	if err != nil {
		t.Fatalf("WithFeatures() error = %v", err)
	}

	if row, ok := tab.SameRows(view); !ok || row != -1 {
		t.Errorf("SameRows() = (%d, %v), want (-1, true)", row, ok)
	}

	// a view over different rows must be detectable
	shuffled, err := tab.Subset([]int{1, 0, 2, 3})
	if err != nil {
		t.Fatalf("Subset() error = %v", err)
	}
	if row, ok := tab.SameRows(shuffled); !ok || row != 0 {
		t.Errorf("SameRows(shuffled) = (%d, %v), want (0, true)", row, ok)
	}
}

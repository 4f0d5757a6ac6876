package preprocessing

import (
	"math"
	"testing"
)

func TestTargetEncoderPerLevelMeans(t *testing.T) {
	levels := []string{"a", "b", "a", "b", "c"}
	target := []float64{1, 10, 3, 20, 7}

	e := NewTargetEncoder()
	if err := e.Fit(levels, target); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if e.Levels() != 3 {
		t.Errorf("Levels() = %d, want 3", e.Levels())
	}

	out, err := e.Transform([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	want := []float64{2, 15, 7}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Errorf("Transform()[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestTargetEncoderUnseenLevel(t *testing.T) {
	e := NewTargetEncoder()
	if err := e.Fit([]string{"a", "b"}, []float64{4, 8}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	out, err := e.Transform([]string{"zzz"})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if math.Abs(out[0]-6) > 1e-12 {
		t.Errorf("unseen level = %v, want global mean 6", out[0])
	}
}

func TestTargetEncoderValidation(t *testing.T) {
	e := NewTargetEncoder()

	if _, err := e.Transform([]string{"a"}); err == nil {
		t.Error("Transform() before Fit() should error")
	}
	if err := e.Fit(nil, nil); err == nil {
		t.Error("Fit() with no levels should error")
	}
	if err := e.Fit([]string{"a", "b"}, []float64{1}); err == nil {
		t.Error("Fit() with mismatched lengths should error")
	}
}

package modelselection

import (
	"math"
	"testing"

	"github.com/agrolab/soyield/adapter"
	"github.com/agrolab/soyield/core/model"
	"github.com/agrolab/soyield/tree"
)

func TestSweepScoresEveryCandidate(t *testing.T) {
	tab := linearTable(t, 48)
	build := func(v float64) adapter.Adapter {
		return adapter.New("tree", func() model.Regressor {
			return tree.NewRegressor(2, 1, int(v))
		})
	}

	candidates := []float64{1, 3, 6}
	scores, err := Sweep(build, tab, tab, candidates)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if len(scores) != len(candidates) {
		t.Fatalf("score count = %d, want %d", len(scores), len(candidates))
	}
	for _, v := range candidates {
		s, ok := scores[v]
		if !ok {
			t.Fatalf("candidate %g missing from scores", v)
		}
		if math.IsNaN(s) || s < 0 {
			t.Errorf("score for %g = %v", v, s)
		}
	}

	// deeper trees cannot fit the training rows worse
	if scores[6] > scores[1]+1e-9 {
		t.Errorf("depth-6 training RMSE %v exceeds depth-1 %v", scores[6], scores[1])
	}
}

func TestSweepNoCandidates(t *testing.T) {
	tab := linearTable(t, 10)
	build := func(v float64) adapter.Adapter { return linearAdapter() }

	if _, err := Sweep(build, tab, tab, nil); err == nil {
		t.Error("Sweep() with no candidates should error")
	}
}

func TestArgMin(t *testing.T) {
	v, s := ArgMin(map[float64]float64{0.1: 5, 1: 2, 10: 3})
	if v != 1 || s != 2 {
		t.Errorf("ArgMin() = (%v, %v), want (1, 2)", v, s)
	}

	// ties resolve to the smaller candidate
	v, _ = ArgMin(map[float64]float64{2: 1, 4: 1})
	if v != 2 {
		t.Errorf("ArgMin() tie = %v, want 2", v)
	}
}

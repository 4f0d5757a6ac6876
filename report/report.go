// Package report emits the comparison output: one structured record per
// model or ensemble, and an optional RMSE chart.
package report

import (
	"encoding/json"
	"io"
	"math"

	"github.com/agrolab/soyield/pkg/errors"
)

// Record is the scored summary of one model or ensemble.
type Record struct {
	Name        string  `json:"name"`
	HoldoutRMSE float64 `json:"holdout_rmse"`
	CVMeanRMSE  float64 `json:"cv_mean_rmse,omitempty"`
	CVStdRMSE   float64 `json:"cv_std_rmse,omitempty"`
	CVMeanMAE   float64 `json:"cv_mean_mae,omitempty"`
	CVStdMAE    float64 `json:"cv_std_mae,omitempty"`
	TestRows    int     `json:"test_rows"`
}

// Write emits one JSON record per line.
func Write(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if math.IsNaN(rec.HoldoutRMSE) {
			return errors.NewValueError("report.Write", "NaN holdout RMSE is not a valid score")
		}
		if err := enc.Encode(rec); err != nil {
			return errors.Wrap(err, "report.Write")
		}
	}
	return nil
}

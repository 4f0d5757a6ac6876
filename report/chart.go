package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/agrolab/soyield/pkg/errors"
)

// SaveRMSEChart renders a bar chart of holdout RMSE per model to path
// (format chosen by extension, e.g. .png or .svg).
func SaveRMSEChart(records []Record, path string) error {
	if len(records) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "report.SaveRMSEChart")
	}

	p := plot.New()
	p.Title.Text = "Holdout RMSE by model"
	p.Y.Label.Text = "RMSE (kg/ha)"

	values := make(plotter.Values, len(records))
	names := make([]string, len(records))
	for i, rec := range records {
		values[i] = rec.HoldoutRMSE
		names[i] = rec.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return errors.Wrap(err, "report.SaveRMSEChart")
	}
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "report.SaveRMSEChart")
	}
	return nil
}

package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/agrolab/soyield/pkg/errors"
)

// SoybeanRow is one observation of the cultivar trial before any view
// derivation: the categorical identifiers plus the continuous agronomic
// measurements and the grain-yield target.
type SoybeanRow struct {
	Cultivar   string
	Season     int
	Repetition int

	PlantHeight     float64 // PH
	FirstPodHeight  float64 // IFP
	LegumesPerPlant float64 // NLP
	GrainsPerPlant  float64 // NGP
	GrainsPerLegume float64 // NGL
	Stems           float64 // NS
	HundredGrainWt  float64 // MHG

	GrainYield float64 // GY, target
}

// soybeanColumns maps the header names of the trial file to row fields.
// Missing continuous cells ("", "NA") parse as NaN and are handled by the
// cleaning step, not here.
var soybeanColumns = []string{"Season", "Cultivar", "Repetition", "PH", "IFP", "NLP", "NGP", "NGL", "NS", "MHG", "GY"}

// ReadSoybean parses the trial CSV from r.
func ReadSoybean(r io.Reader) ([]SoybeanRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "dataset.ReadSoybean: header")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, want := range soybeanColumns {
		if _, ok := col[want]; !ok {
			return nil, errors.Newf("dataset.ReadSoybean: missing column %q", want)
		}
	}

	var rows []SoybeanRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "dataset.ReadSoybean: line %d", line)
		}

		season, err := strconv.Atoi(strings.TrimSpace(rec[col["Season"]]))
		if err != nil {
			return nil, errors.Wrapf(err, "dataset.ReadSoybean: line %d: Season", line)
		}
		rep, err := strconv.Atoi(strings.TrimSpace(rec[col["Repetition"]]))
		if err != nil {
			return nil, errors.Wrapf(err, "dataset.ReadSoybean: line %d: Repetition", line)
		}

		row := SoybeanRow{
			Cultivar:   strings.TrimSpace(rec[col["Cultivar"]]),
			Season:     season,
			Repetition: rep,
		}
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"PH", &row.PlantHeight},
			{"IFP", &row.FirstPodHeight},
			{"NLP", &row.LegumesPerPlant},
			{"NGP", &row.GrainsPerPlant},
			{"NGL", &row.GrainsPerLegume},
			{"NS", &row.Stems},
			{"MHG", &row.HundredGrainWt},
			{"GY", &row.GrainYield},
		} {
			*f.dst = parseCell(rec[col[f.name]])
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.ReadSoybean")
	}
	return rows, nil
}

// LoadSoybean reads the trial CSV from a file path.
func LoadSoybean(path string) ([]SoybeanRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "dataset.LoadSoybean")
	}
	defer f.Close()
	return ReadSoybean(f)
}

func parseCell(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "na") || strings.EqualFold(s, "nan") {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

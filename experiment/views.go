package experiment

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/agrolab/soyield/dataset"
	"github.com/agrolab/soyield/pkg/errors"
	"github.com/agrolab/soyield/preprocessing"
)

// Views are the three schema-divergent tables the model families
// consume. All three describe the same physical rows in the same order
// and share row identifiers; they are derived once and never sync
// afterward.
type Views struct {
	// Tree keeps the untransformed measurements plus integer-coded
	// categoricals; trees are split-point invariant to monotone
	// transforms.
	Tree *dataset.Table
	// Regression holds the standardized features projected onto the
	// leading principal components.
	Regression *dataset.Table
	// SVM holds standardized features with the cultivar target-encoded.
	SVM *dataset.Table
}

var continuousNames = []string{"ph", "ifp", "nlp", "ngp", "ngl", "ns", "mhg"}

// BuildViews cleans the raw rows and derives the three views.
//
// Cleaning drops rows with a missing target and mean-imputes missing
// continuous measurements. Encodings and projections are computed once
// over the cleaned base so the views stay valid for any later split;
// this mirrors the original analysis and trades a mild target-encoding
// leak for split-independent views.
func BuildViews(rows []dataset.SoybeanRow, pcaComponents int) (*Views, error) {
	rows = dropMissingTarget(rows)
	if len(rows) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "experiment.BuildViews")
	}

	n := len(rows)
	cont := continuousMatrix(rows)
	imputeColumnMeans(cont)

	y := mat.NewVecDense(n, nil)
	cultivars := make([]string, n)
	for i, row := range rows {
		y.SetVec(i, row.GrainYield)
		cultivars[i] = row.Cultivar
	}

	// tree view: cultivar code + season + repetition + raw measurements
	cultivarCodes := codeLevels(cultivars)
	treeX := mat.NewDense(n, 3+len(continuousNames), nil)
	for i, row := range rows {
		treeX.Set(i, 0, float64(cultivarCodes[i]))
		treeX.Set(i, 1, float64(row.Season))
		treeX.Set(i, 2, float64(row.Repetition))
		for j := 0; j < len(continuousNames); j++ {
			treeX.Set(i, 3+j, cont.At(i, j))
		}
	}
	treeSchema := dataset.Schema{
		Features: append([]string{"cultivar", "season", "repetition"}, continuousNames...),
		Target:   "gy",
	}
	treeTab, err := dataset.New(treeSchema, nil, treeX, y)
	if err != nil {
		return nil, err
	}

	// shared standardization of season + measurements
	scaled, err := scaleWithSeason(rows, cont)
	if err != nil {
		return nil, err
	}

	// regression view: PCA over the standardized features
	pca := preprocessing.NewPCA(pcaComponents)
	scores, err := pca.FitTransform(scaled)
	if err != nil {
		return nil, err
	}
	_, k := scores.Dims()
	pcNames := make([]string, k)
	for j := range pcNames {
		pcNames[j] = fmt.Sprintf("pc%d", j+1)
	}
	regTab, err := treeTab.WithFeatures(dataset.Schema{Features: pcNames, Target: "gy"}, scores)
	if err != nil {
		return nil, err
	}

	// SVM view: target-encoded cultivar + standardized features
	encoder := preprocessing.NewTargetEncoder()
	if err := encoder.Fit(cultivars, vecSlice(y)); err != nil {
		return nil, err
	}
	encoded, err := encoder.Transform(cultivars)
	if err != nil {
		return nil, err
	}
	_, sc := scaled.Dims()
	svmX := mat.NewDense(n, 1+sc, nil)
	for i := 0; i < n; i++ {
		svmX.Set(i, 0, encoded[i])
		for j := 0; j < sc; j++ {
			svmX.Set(i, 1+j, scaled.At(i, j))
		}
	}
	svmSchema := dataset.Schema{
		Features: append([]string{"cultivar_te", "season_std"}, suffixed(continuousNames, "_std")...),
		Target:   "gy",
	}
	svmTab, err := treeTab.WithFeatures(svmSchema, svmX)
	if err != nil {
		return nil, err
	}

	return &Views{Tree: treeTab, Regression: regTab, SVM: svmTab}, nil
}

func dropMissingTarget(rows []dataset.SoybeanRow) []dataset.SoybeanRow {
	out := rows[:0:0]
	for _, row := range rows {
		if !math.IsNaN(row.GrainYield) {
			out = append(out, row)
		}
	}
	return out
}

func continuousMatrix(rows []dataset.SoybeanRow) *mat.Dense {
	m := mat.NewDense(len(rows), len(continuousNames), nil)
	for i, row := range rows {
		m.Set(i, 0, row.PlantHeight)
		m.Set(i, 1, row.FirstPodHeight)
		m.Set(i, 2, row.LegumesPerPlant)
		m.Set(i, 3, row.GrainsPerPlant)
		m.Set(i, 4, row.GrainsPerLegume)
		m.Set(i, 5, row.Stems)
		m.Set(i, 6, row.HundredGrainWt)
	}
	return m
}

// imputeColumnMeans replaces NaN cells with their column mean in place.
func imputeColumnMeans(m *mat.Dense) {
	r, c := m.Dims()
	for j := 0; j < c; j++ {
		var sum float64
		valid := 0
		for i := 0; i < r; i++ {
			if v := m.At(i, j); !math.IsNaN(v) {
				sum += v
				valid++
			}
		}
		if valid == 0 || valid == r {
			continue
		}
		mean := sum / float64(valid)
		for i := 0; i < r; i++ {
			if math.IsNaN(m.At(i, j)) {
				m.Set(i, j, mean)
			}
		}
	}
}

func scaleWithSeason(rows []dataset.SoybeanRow, cont *mat.Dense) (*mat.Dense, error) {
	n, c := cont.Dims()
	raw := mat.NewDense(n, c+1, nil)
	for i := 0; i < n; i++ {
		raw.Set(i, 0, float64(rows[i].Season))
		for j := 0; j < c; j++ {
			raw.Set(i, 1+j, cont.At(i, j))
		}
	}
	return preprocessing.NewStandardScaler().FitTransform(raw)
}

func codeLevels(levels []string) []int {
	uniq := make(map[string]struct{}, len(levels))
	for _, l := range levels {
		uniq[l] = struct{}{}
	}
	sorted := make([]string, 0, len(uniq))
	for l := range uniq {
		sorted = append(sorted, l)
	}
	sort.Strings(sorted)
	code := make(map[string]int, len(sorted))
	for i, l := range sorted {
		code[l] = i
	}
	out := make([]int, len(levels))
	for i, l := range levels {
		out[i] = code[l]
	}
	return out
}

func vecSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

func suffixed(names []string, suffix string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n + suffix
	}
	return out
}

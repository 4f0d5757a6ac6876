package preprocessing

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/agrolab/soyield/core/model"
	"github.com/agrolab/soyield/pkg/errors"
)

// PCA projects features onto their leading principal components.
type PCA struct {
	model.BaseEstimator

	// NComponents is the number of components kept; <= 0 keeps all.
	NComponents int

	mean       []float64
	projection *mat.Dense
	variances  []float64
	nFeatures  int
}

// NewPCA creates an unfitted projection keeping nComponents components.
func NewPCA(nComponents int) *PCA {
	return &PCA{NComponents: nComponents}
}

// Fit computes the principal components of X.
func (p *PCA) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "PCA.Fit")
	}

	k := p.NComponents
	if k <= 0 || k > c {
		k = c
	}
	if r < 2 {
		return errors.NewValueError("PCA.Fit", "need at least two rows")
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(X, nil); !ok {
		return errors.NewValueError("PCA.Fit", "principal component decomposition failed")
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)
	p.variances = pc.VarsTo(nil)

	p.projection = mat.NewDense(c, k, nil)
	for i := 0; i < c; i++ {
		for j := 0; j < k; j++ {
			p.projection.Set(i, j, vectors.At(i, j))
		}
	}

	p.mean = make([]float64, c)
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		p.mean[j] = sum / float64(r)
	}

	p.nFeatures = c
	p.SetFitted()
	return nil
}

// Transform projects X onto the fitted components.
func (p *PCA) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "Transform")
	}

	r, c := X.Dims()
	if c != p.nFeatures {
		return nil, errors.NewDimensionError("PCA.Transform", p.nFeatures, c, 1)
	}

	centered := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			centered.Set(i, j, X.At(i, j)-p.mean[j])
		}
	}

	_, k := p.projection.Dims()
	out := mat.NewDense(r, k, nil)
	out.Mul(centered, p.projection)
	return out, nil
}

// FitTransform fits on X and projects it.
func (p *PCA) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// ExplainedVariances returns the variance carried by each component.
func (p *PCA) ExplainedVariances() []float64 {
	return append([]float64(nil), p.variances...)
}

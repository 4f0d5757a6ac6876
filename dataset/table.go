// Package dataset provides the tabular carrier exchanged between the
// pipeline stages: a schema-typed feature matrix with the target column
// and a stable row identifier per observation.
//
// Row identifiers survive subsetting, splitting and view derivation, so
// two differently-shaped views of the same physical rows can be checked
// for alignment instead of trusting row order.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/agrolab/soyield/pkg/errors"
)

// Schema names the feature columns and the target of a Table.
type Schema struct {
	Features []string
	Target   string
}

// Equal reports whether two schemas name the same columns in the same
// order.
func (s Schema) Equal(other Schema) bool {
	if s.Target != other.Target || len(s.Features) != len(other.Features) {
		return false
	}
	for i, f := range s.Features {
		if other.Features[i] != f {
			return false
		}
	}
	return true
}

// Table is an immutable ordered collection of observations sharing one
// schema. All derivations (Subset, WithFeatures) return new Tables.
type Table struct {
	schema Schema
	ids    []int
	x      *mat.Dense
	y      *mat.VecDense
}

// New builds a Table from a feature matrix and target vector. ids may be
// nil, in which case rows are identified by their initial position.
func New(schema Schema, ids []int, x *mat.Dense, y *mat.VecDense) (*Table, error) {
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.New")
	}
	if c != len(schema.Features) {
		return nil, errors.NewDimensionError("dataset.New", len(schema.Features), c, 1)
	}
	if y.Len() != r {
		return nil, errors.NewDimensionError("dataset.New", r, y.Len(), 0)
	}
	if ids == nil {
		ids = make([]int, r)
		for i := range ids {
			ids[i] = i
		}
	} else {
		if len(ids) != r {
			return nil, errors.NewDimensionError("dataset.New", r, len(ids), 0)
		}
		ids = append([]int(nil), ids...)
	}
	return &Table{schema: schema, ids: ids, x: x, y: y}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	r, _ := t.x.Dims()
	return r
}

// NumFeatures returns the number of feature columns.
func (t *Table) NumFeatures() int {
	_, c := t.x.Dims()
	return c
}

// Schema returns the table's schema.
func (t *Table) Schema() Schema { return t.schema }

// X returns the feature matrix. Callers must not mutate it.
func (t *Table) X() mat.Matrix { return t.x }

// Y returns the target vector. Callers must not mutate it.
func (t *Table) Y() *mat.VecDense { return t.y }

// YSlice returns a copy of the target column.
func (t *Table) YSlice() []float64 {
	out := make([]float64, t.y.Len())
	for i := range out {
		out[i] = t.y.AtVec(i)
	}
	return out
}

// RowIDs returns a copy of the row identifiers in row order.
func (t *Table) RowIDs() []int {
	return append([]int(nil), t.ids...)
}

// RowID returns the identifier of row i.
func (t *Table) RowID(i int) int { return t.ids[i] }

// Subset returns a new Table containing the given rows, in the given
// order. Indices may repeat (bootstrap resamples do); row identifiers
// follow the selected rows.
func (t *Table) Subset(indices []int) (*Table, error) {
	if len(indices) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.Subset")
	}
	n := t.Len()
	_, c := t.x.Dims()

	x := mat.NewDense(len(indices), c, nil)
	y := mat.NewVecDense(len(indices), nil)
	ids := make([]int, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, errors.NewValueError("dataset.Subset", "row index out of range")
		}
		x.SetRow(i, mat.Row(nil, idx, t.x))
		y.SetVec(i, t.y.AtVec(idx))
		ids[i] = t.ids[idx]
	}
	return &Table{schema: t.schema, ids: ids, x: x, y: y}, nil
}

// WithFeatures returns a new Table over the same rows and target but with
// a different feature matrix, e.g. after scaling, encoding or projection.
// The derived view keeps the original row identifiers.
func (t *Table) WithFeatures(schema Schema, x *mat.Dense) (*Table, error) {
	r, c := x.Dims()
	if r != t.Len() {
		return nil, errors.NewDimensionError("dataset.WithFeatures", t.Len(), r, 0)
	}
	if c != len(schema.Features) {
		return nil, errors.NewDimensionError("dataset.WithFeatures", len(schema.Features), c, 1)
	}
	return &Table{schema: schema, ids: append([]int(nil), t.ids...), x: x, y: t.y}, nil
}

// SameRows reports the first position at which the row identifiers of the
// two tables diverge, or -1 when they describe the same rows in the same
// order. The second return is false when the lengths differ.
func (t *Table) SameRows(other *Table) (int, bool) {
	if t.Len() != other.Len() {
		return -1, false
	}
	for i, id := range t.ids {
		if other.ids[i] != id {
			return i, true
		}
	}
	return -1, true
}

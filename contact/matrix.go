package contact

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is one chromosome's contact map plus its bin resolution.
// The underlying storage is a dense gonum matrix; callers treat it as
// read-only for the duration of a search.
type Matrix struct {
	data       *mat.Dense
	resolution int
}

// NewMatrix wraps d as a contact matrix with the given resolution
// (base pairs per bin). Returns ErrEmptyMatrix, ErrNotSquare or
// ErrBadResolution on invalid input. The matrix is NOT copied; use Clone
// when an owned copy is needed.
func NewMatrix(d *mat.Dense, resolution int) (*Matrix, error) {
	if d == nil {
		return nil, ErrEmptyMatrix
	}
	r, c := d.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}
	if r != c {
		return nil, ErrNotSquare
	}
	if resolution <= 0 {
		return nil, ErrBadResolution
	}
	return &Matrix{data: d, resolution: resolution}, nil
}

// Bins returns the number of genomic bins (matrix dimension).
func (m *Matrix) Bins() int {
	r, _ := m.data.Dims()
	return r
}

// Resolution returns the bin width in base pairs.
func (m *Matrix) Resolution() int { return m.resolution }

// At returns the contact frequency between bins i and j.
func (m *Matrix) At(i, j int) float64 { return m.data.At(i, j) }

// Dense exposes the underlying storage. Callers must not mutate it.
func (m *Matrix) Dense() *mat.Dense { return m.data }

// Clone returns a deep copy sharing no storage with m.
func (m *Matrix) Clone() *Matrix {
	var d mat.Dense
	d.CloneFrom(m.data)
	return &Matrix{data: &d, resolution: m.resolution}
}

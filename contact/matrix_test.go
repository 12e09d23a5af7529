package contact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/aence/hichew/contact"
)

// TestNewMatrix_Validation covers constructor sentinels.
func TestNewMatrix_Validation(t *testing.T) {
	_, err := contact.NewMatrix(nil, 1000)
	assert.ErrorIs(t, err, contact.ErrEmptyMatrix)

	_, err = contact.NewMatrix(mat.NewDense(2, 3, nil), 1000)
	assert.ErrorIs(t, err, contact.ErrNotSquare)

	_, err = contact.NewMatrix(mat.NewDense(2, 2, nil), 0)
	assert.ErrorIs(t, err, contact.ErrBadResolution)
}

// TestMatrix_Accessors exposes dimensions, resolution and entries.
func TestMatrix_Accessors(t *testing.T) {
	d := mat.NewDense(3, 3, []float64{0, 1, 2, 1, 0, 3, 2, 3, 0})
	m, err := contact.NewMatrix(d, 5000)
	require.NoError(t, err)

	assert.Equal(t, 3, m.Bins())
	assert.Equal(t, 5000, m.Resolution())
	assert.Equal(t, 3.0, m.At(1, 2))
	assert.Same(t, d, m.Dense())
}

// TestMatrix_CloneIsIndependent gives the clone its own storage.
func TestMatrix_CloneIsIndependent(t *testing.T) {
	d := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
	m, err := contact.NewMatrix(d, 1)
	require.NoError(t, err)

	c := m.Clone()
	c.Dense().Set(0, 1, 42)

	assert.Equal(t, 1.0, m.At(0, 1), "mutating the clone must not touch the original")
	assert.Equal(t, 42.0, c.At(0, 1))
	assert.Equal(t, m.Resolution(), c.Resolution())
}

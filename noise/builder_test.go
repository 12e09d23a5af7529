package noise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/aence/hichew/contact"
	"github.com/aence/hichew/hic"
	"github.com/aence/hichew/noise"
)

// syntheticMatrix builds an n-bin symmetric contact map with a distance
// decay profile and the listed bins fully zeroed (rows and columns).
func syntheticMatrix(t *testing.T, n, resolution int, deadBins ...int) *contact.Matrix {
	t.Helper()
	dead := make(map[int]bool, len(deadBins))
	for _, b := range deadBins {
		dead[b] = true
	}
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if dead[i] || dead[j] {
				continue
			}
			dist := i - j
			if dist < 0 {
				dist = -dist
			}
			d.Set(i, j, 1.0/float64(1+dist))
		}
	}
	m, err := contact.NewMatrix(d, resolution)
	require.NoError(t, err)
	return m
}

// TestBuildMask_SingleGap checks the canonical scenario: one run of
// zeroed bins becomes one bad interval, with the run's final bin left
// outside the interval, and the mask mirrors the interval exactly.
func TestBuildMask_SingleGap(t *testing.T) {
	m := syntheticMatrix(t, 60, 1, 20, 21, 22, 23, 24, 25)

	res, err := noise.BuildMask(m, hic.Armatus, 99.9)
	require.NoError(t, err)

	require.Len(t, res.Stripes, 1)
	assert.Equal(t, noise.Interval{Start: 20, End: 25}, res.Stripes[0])
	for i := 0; i < 60; i++ {
		want := i < 20 || i >= 25
		assert.Equal(t, want, res.Good[i], "mask at bin %d", i)
	}
}

// TestBuildMask_MaskIntervalRoundTrip verifies that the mask is false
// exactly on bins covered by some bad interval.
func TestBuildMask_MaskIntervalRoundTrip(t *testing.T) {
	m := syntheticMatrix(t, 50, 1, 10, 11, 12, 30, 31, 32, 33)

	res, err := noise.BuildMask(m, hic.Modularity, 99.9)
	require.NoError(t, err)

	covered := func(i int64) bool {
		for _, iv := range res.Stripes {
			if i >= iv.Start && i < iv.End {
				return true
			}
		}
		return false
	}
	for i := 0; i < 50; i++ {
		assert.Equal(t, !covered(int64(i)), res.Good[i], "round trip at bin %d", i)
	}
	// The globally last zero bin never extends its run.
	require.Len(t, res.Stripes, 2)
	assert.Equal(t, noise.Interval{Start: 10, End: 13}, res.Stripes[0])
	assert.Equal(t, noise.Interval{Start: 30, End: 33}, res.Stripes[1])
	assert.True(t, res.Good[33])
}

// TestBuildMask_InsulationUnits scales interval bounds to genomic
// coordinates for the insulation method.
func TestBuildMask_InsulationUnits(t *testing.T) {
	m := syntheticMatrix(t, 40, 5000, 8, 9, 10, 11)

	res, err := noise.BuildMask(m, hic.Insulation, 99.9)
	require.NoError(t, err)

	require.Len(t, res.Stripes, 1)
	assert.Equal(t, noise.Interval{Start: 8 * 5000, End: 11 * 5000}, res.Stripes[0])
	assert.False(t, res.Good[8])
	assert.False(t, res.Good[10])
	assert.True(t, res.Good[11], "run's final bin stays good")
}

// TestBuildMask_IsolatedBadBin keeps a length-one interval for a single
// zeroed bin away from the matrix edges.
func TestBuildMask_IsolatedBadBin(t *testing.T) {
	m := syntheticMatrix(t, 30, 1, 7, 20, 21)

	res, err := noise.BuildMask(m, hic.Armatus, 99.9)
	require.NoError(t, err)

	require.Len(t, res.Stripes, 2)
	assert.Equal(t, noise.Interval{Start: 7, End: 8}, res.Stripes[0])
	assert.False(t, res.Good[7])
}

// TestBuildMask_CleanMatrix yields no intervals and an all-true mask.
func TestBuildMask_CleanMatrix(t *testing.T) {
	m := syntheticMatrix(t, 20, 1)

	res, err := noise.BuildMask(m, hic.Armatus, 99.9)
	require.NoError(t, err)

	assert.Empty(t, res.Stripes)
	assert.Equal(t, 20, res.Good.GoodCount())
}

// TestBuildMask_DoesNotMutateInput verifies the input map is cloned and
// the working copy's diagonal is removed.
func TestBuildMask_DoesNotMutateInput(t *testing.T) {
	m := syntheticMatrix(t, 20, 1)
	before := m.At(3, 3)

	res, err := noise.BuildMask(m, hic.Armatus, 99.9)
	require.NoError(t, err)

	assert.Equal(t, before, m.At(3, 3), "input matrix must stay untouched")
	assert.Equal(t, 0.0, res.Matrix.At(3, 3), "working copy diagonal must be zero")
}

// TestBuildMask_Validation covers the argument sentinels.
func TestBuildMask_Validation(t *testing.T) {
	m := syntheticMatrix(t, 10, 1)

	_, err := noise.BuildMask(m, hic.Method("bogus"), 99.9)
	assert.ErrorIs(t, err, noise.ErrUnsupportedMethod)

	_, err = noise.BuildMask(m, hic.Armatus, 0)
	assert.ErrorIs(t, err, noise.ErrBadPercentile)

	_, err = noise.BuildMask(m, hic.Armatus, 101)
	assert.ErrorIs(t, err, noise.ErrBadPercentile)
}

package segment_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/aence/hichew/contact"
	"github.com/aence/hichew/hic"
	"github.com/aence/hichew/noise"
	"github.com/aence/hichew/segment"
)

// stubOracle returns canned output, optionally varying with the
// parameter value.
type stubOracle struct {
	segs func(param float64) []hic.Segment
	anns func(param float64) []segment.Annotation
}

func (s *stubOracle) Segment(_ context.Context, _ *contact.Matrix, param float64, _ noise.Mask) ([]hic.Segment, []segment.Annotation, error) {
	var anns []segment.Annotation
	if s.anns != nil {
		anns = s.anns(param)
	}
	return s.segs(param), anns, nil
}

// testMatrix builds a clean n-bin matrix: zero diagonal, non-zero
// off-diagonal contacts.
func testMatrix(t *testing.T, n, resolution int) *contact.Matrix {
	t.Helper()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				d.Set(i, j, 1)
			}
		}
	}
	m, err := contact.NewMatrix(d, resolution)
	require.NoError(t, err)
	return m
}

func allGood(n int) noise.Mask {
	mask := make(noise.Mask, n)
	for i := range mask {
		mask[i] = true
	}
	return mask
}

// TestAdapter_Errors covers method dispatch failures.
func TestAdapter_Errors(t *testing.T) {
	a := segment.NewAdapter()
	m := testMatrix(t, 4, 1)

	_, _, err := a.Segment(context.Background(), hic.Method("bogus"), m, 1, allGood(4))
	assert.ErrorIs(t, err, segment.ErrUnsupportedMethod)

	_, _, err = a.Segment(context.Background(), hic.Armatus, m, 1, allGood(4))
	assert.ErrorIs(t, err, segment.ErrNoOracle, "unregistered method must error")
}

// TestAdapter_DiscardsNaNStrength drops insulation boundaries the oracle
// could not grade, keeping annotations aligned.
func TestAdapter_DiscardsNaNStrength(t *testing.T) {
	a := segment.NewAdapter()
	a.Register(hic.Insulation, &stubOracle{
		segs: func(float64) []hic.Segment {
			return []hic.Segment{{Start: 0, End: 5}, {Start: 10, End: 15}, {Start: 20, End: 25}}
		},
		anns: func(float64) []segment.Annotation {
			return []segment.Annotation{
				{Strength: 0.9, Insulation: 0.1},
				{Strength: math.NaN(), Insulation: 0.2},
				{Strength: 0.7, Insulation: 0.3},
			}
		},
	})
	m := testMatrix(t, 30, 1)

	segs, anns, err := a.Segment(context.Background(), hic.Insulation, m, 5, allGood(30))
	require.NoError(t, err)
	require.Len(t, segs, 2)
	require.Len(t, anns, 2)
	assert.Equal(t, hic.Segment{Start: 20, End: 25}, segs[1])
	assert.Equal(t, 0.3, anns[1].Insulation, "annotations must stay aligned after the discard")
}

// TestAdapter_AnnotationMismatch rejects misaligned insulation output.
func TestAdapter_AnnotationMismatch(t *testing.T) {
	a := segment.NewAdapter()
	a.Register(hic.Insulation, &stubOracle{
		segs: func(float64) []hic.Segment { return []hic.Segment{{Start: 0, End: 5}} },
		anns: func(float64) []segment.Annotation { return nil },
	})
	m := testMatrix(t, 10, 1)

	_, _, err := a.Segment(context.Background(), hic.Insulation, m, 5, allGood(10))
	assert.ErrorIs(t, err, segment.ErrAnnotationMismatch)
}

// TestAdapter_DensityIgnoresAnnotations strips annotations from density
// oracles.
func TestAdapter_DensityIgnoresAnnotations(t *testing.T) {
	a := segment.NewAdapter()
	a.Register(hic.Armatus, &stubOracle{
		segs: func(float64) []hic.Segment { return []hic.Segment{{Start: 0, End: 10}} },
		anns: func(float64) []segment.Annotation { return []segment.Annotation{{Strength: 1}} },
	})
	m := testMatrix(t, 10, 1)

	segs, anns, err := a.Segment(context.Background(), hic.Armatus, m, 1, allGood(10))
	require.NoError(t, err)
	assert.Len(t, segs, 1)
	assert.Nil(t, anns)
}

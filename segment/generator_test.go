package segment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aence/hichew/hic"
	"github.com/aence/hichew/noise"
	"github.com/aence/hichew/segment"
)

func densityGenerator(t *testing.T, segs []hic.Segment, opts segment.Options) *segment.Generator {
	t.Helper()
	a := segment.NewAdapter()
	a.Register(opts.Method, &stubOracle{segs: func(float64) []hic.Segment { return segs }})
	gen, err := segment.NewGenerator(a, opts)
	require.NoError(t, err)
	return gen
}

// TestNewGenerator_Validation covers constructor sentinels.
func TestNewGenerator_Validation(t *testing.T) {
	a := segment.NewAdapter()

	_, err := segment.NewGenerator(nil, segment.DefaultOptions(hic.Armatus))
	assert.ErrorIs(t, err, segment.ErrNilAdapter)

	_, err = segment.NewGenerator(a, segment.DefaultOptions(hic.Method("bogus")))
	assert.ErrorIs(t, err, segment.ErrUnsupportedMethod)

	opts := segment.DefaultOptions(hic.Armatus)
	opts.MaxInterTADSize = 1000
	opts.MaxTADSize = 3
	_, err = segment.NewGenerator(a, opts)
	assert.ErrorIs(t, err, segment.ErrBadSizeBounds)
}

// TestGenerate_SizeBoundsStrict keeps only segments whose length lies
// strictly between the two bounds.
func TestGenerate_SizeBoundsStrict(t *testing.T) {
	raw := []hic.Segment{
		{Start: 0, End: 3},       // length 3: not above the lower bound
		{Start: 10, End: 14},     // length 4: kept
		{Start: 20, End: 70},     // length 50: kept
		{Start: 100, End: 1099},  // length 999: kept
		{Start: 2000, End: 3000}, // length 1000: not below the upper bound
	}
	gen := densityGenerator(t, raw, segment.DefaultOptions(hic.Armatus))
	m := testMatrix(t, 10, 1)

	segs, st, err := gen.Generate(context.Background(), m, 1.0, nil, allGood(10), false)
	require.NoError(t, err)

	require.Len(t, segs, 3)
	for _, s := range segs {
		assert.Greater(t, float64(s.Length()), segment.DefaultMaxInterTADSize)
		assert.Less(t, float64(s.Length()), segment.DefaultMaxTADSize)
	}
	assert.InDelta(t, (4.0+50+999)/3, st.MeanSize, 1e-9)
	assert.Equal(t, 4.0+50+999, st.Coverage)
	assert.Equal(t, 3, st.Count)
}

// TestGenerate_DropsNoisySegments removes hard-noisy candidates and
// those scoring at the default zero threshold.
func TestGenerate_DropsNoisySegments(t *testing.T) {
	stripes := noise.Stripes{{Start: 20, End: 25}}
	raw := []hic.Segment{
		{Start: 5, End: 15},  // clean, right gap 5
		{Start: 15, End: 20}, // end touches the stripe: fully noisy
		{Start: 25, End: 30}, // adjacent, metric 0: below threshold
		{Start: 31, End: 47}, // clean, left gap 7
	}
	gen := densityGenerator(t, raw, segment.DefaultOptions(hic.Armatus))
	m := testMatrix(t, 100, 1)

	segs, st, err := gen.Generate(context.Background(), m, 1.0, stripes, allGood(100), false)
	require.NoError(t, err)

	require.Len(t, segs, 2)
	assert.Equal(t, hic.Segment{Start: 5, End: 15}, segs[0])
	assert.Equal(t, hic.Segment{Start: 31, End: 47}, segs[1])
	assert.InDelta(t, 13.0, st.MeanSize, 1e-9)
	assert.Equal(t, 26.0, st.Coverage)
}

// TestGenerate_EmptyOracle treats an empty oracle result as a valid
// minimal segmentation with zeroed statistics.
func TestGenerate_EmptyOracle(t *testing.T) {
	gen := densityGenerator(t, nil, segment.DefaultOptions(hic.Armatus))
	m := testMatrix(t, 10, 1)

	segs, st, err := gen.Generate(context.Background(), m, 1.0, nil, allGood(10), false)
	require.NoError(t, err)
	assert.Empty(t, segs)
	assert.Zero(t, st.MeanSize)
	assert.Zero(t, st.Coverage)
	assert.Zero(t, st.Count)
}

// TestGenerate_AdaptiveFallback keeps the unfiltered candidate set when
// the noise-frequency threshold cannot be derived.
func TestGenerate_AdaptiveFallback(t *testing.T) {
	stripes := noise.Stripes{{Start: 20, End: 25}}
	raw := []hic.Segment{
		{Start: 5, End: 15},
		{Start: 15, End: 20},
		{Start: 25, End: 30},
		{Start: 31, End: 47},
	}
	opts := segment.DefaultOptions(hic.Armatus)
	opts.AdaptiveThreshold = true
	gen := densityGenerator(t, raw, opts)
	// 5/100 noise frequency over two positive metrics floors to index
	// zero, so no threshold exists and nothing is filtered.
	m := testMatrix(t, 100, 1)

	segs, _, err := gen.Generate(context.Background(), m, 1.0, stripes, allGood(100), false)
	require.NoError(t, err)
	assert.Len(t, segs, 4, "underivable threshold keeps all size-passing candidates")
}

// TestGenerate_InsulationStats derives domain statistics from
// consecutive boundary pairs, pooling insulation values with the last
// right value appended once.
func TestGenerate_InsulationStats(t *testing.T) {
	bounds := []hic.Segment{
		{Start: 1000, End: 2000},
		{Start: 10000, End: 11000},
		{Start: 50000, End: 51000},
	}
	anns := []segment.Annotation{
		{Strength: 1, Insulation: 0.5},
		{Strength: 1, Insulation: 0.7},
		{Strength: 1, Insulation: 0.9},
	}
	a := segment.NewAdapter()
	a.Register(hic.Insulation, &stubOracle{
		segs: func(float64) []hic.Segment { return bounds },
		anns: func(float64) []segment.Annotation { return anns },
	})
	gen, err := segment.NewGenerator(a, segment.DefaultOptions(hic.Insulation))
	require.NoError(t, err)
	m := testMatrix(t, 60, 1000)

	segs, st, err := gen.Generate(context.Background(), m, 5, nil, allGood(60), false)
	require.NoError(t, err)

	assert.Len(t, segs, 3)
	assert.Equal(t, 3, st.Count, "count follows boundaries, not domains")
	assert.InDelta(t, (8.0+39.0)/2, st.MeanSize, 1e-9)
	assert.InDelta(t, 47.0, st.Coverage, 1e-9)
	assert.InDelta(t, (0.5+0.7+0.9)/3, st.MeanInsulation, 1e-9)
}

// TestGenerate_InsulationStatsSizeFilter excludes out-of-bounds domains
// from the aggregates while keeping all boundary calls.
func TestGenerate_InsulationStatsSizeFilter(t *testing.T) {
	bounds := []hic.Segment{
		{Start: 0, End: 1000},
		{Start: 3000, End: 4000},   // domain of 2 bins: below the bound
		{Start: 20000, End: 21000}, // domain of 16 bins: kept
	}
	anns := []segment.Annotation{
		{Strength: 1, Insulation: 0.2},
		{Strength: 1, Insulation: 0.4},
		{Strength: 1, Insulation: 0.6},
	}
	a := segment.NewAdapter()
	a.Register(hic.Insulation, &stubOracle{
		segs: func(float64) []hic.Segment { return bounds },
		anns: func(float64) []segment.Annotation { return anns },
	})
	gen, err := segment.NewGenerator(a, segment.DefaultOptions(hic.Insulation))
	require.NoError(t, err)
	m := testMatrix(t, 30, 1000)

	segs, st, err := gen.Generate(context.Background(), m, 5, nil, allGood(30), false)
	require.NoError(t, err)

	assert.Len(t, segs, 3)
	assert.Equal(t, 3, st.Count)
	assert.InDelta(t, 16.0, st.MeanSize, 1e-9)
	assert.InDelta(t, (0.4+0.6)/2, st.MeanInsulation, 1e-9)
}

// TestGenerate_InsulationStripeDomainExcluded drops domains spanning a
// bad interval from the statistics.
func TestGenerate_InsulationStripeDomainExcluded(t *testing.T) {
	bounds := []hic.Segment{
		{Start: 0, End: 1000},
		{Start: 30000, End: 31000},
	}
	anns := []segment.Annotation{
		{Strength: 1, Insulation: 0.2},
		{Strength: 1, Insulation: 0.4},
	}
	stripes := noise.Stripes{{Start: 10000, End: 12000}}
	a := segment.NewAdapter()
	a.Register(hic.Insulation, &stubOracle{
		segs: func(float64) []hic.Segment { return bounds },
		anns: func(float64) []segment.Annotation { return anns },
	})
	opts := segment.DefaultOptions(hic.Insulation)
	opts.BadBinDistance = 0
	gen, err := segment.NewGenerator(a, opts)
	require.NoError(t, err)
	m := testMatrix(t, 40, 1000)

	_, st, err := gen.Generate(context.Background(), m, 5, stripes, allGood(40), false)
	require.NoError(t, err)

	assert.Equal(t, 2, st.Count)
	assert.Zero(t, st.MeanSize, "the only domain contains a stripe, aggregates zero out")
	assert.Zero(t, st.Coverage)
	assert.Zero(t, st.MeanInsulation)
}

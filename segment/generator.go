package segment

import (
	"context"
	"io"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aence/hichew/contact"
	"github.com/aence/hichew/hic"
	"github.com/aence/hichew/noise"
)

// Default Generator parameters.
const (
	// DefaultMaxInterTADSize is the exclusive lower size bound, in
	// resolution units.
	DefaultMaxInterTADSize = 3.0
	// DefaultMaxTADSize is the exclusive upper size bound, in resolution
	// units.
	DefaultMaxTADSize = 1000.0
	// DefaultBadBinDistance is how many bins an insulation boundary must
	// clear a bad interval by.
	DefaultBadBinDistance = 3
)

// Options configures a Generator.
type Options struct {
	// Method selects the oracle and the coordinate convention.
	Method hic.Method
	// MaxInterTADSize and MaxTADSize bound accepted segment sizes, both
	// exclusive, in resolution units.
	MaxInterTADSize float64
	MaxTADSize      float64
	// BadBinDistance expands bad intervals by this many bins when
	// classifying insulation boundaries.
	BadBinDistance int64
	// AdaptiveThreshold derives a noise-frequency-based metric threshold
	// from the candidate distribution instead of the fixed zero cutoff.
	// Off by default; when the derivation fails the candidate set is kept
	// unfiltered.
	AdaptiveThreshold bool
	// Log receives diagnostic messages; nil discards them.
	Log *logrus.Entry
}

// DefaultOptions returns the standard configuration for method.
func DefaultOptions(method hic.Method) Options {
	return Options{
		Method:          method,
		MaxInterTADSize: DefaultMaxInterTADSize,
		MaxTADSize:      DefaultMaxTADSize,
		BadBinDistance:  DefaultBadBinDistance,
	}
}

// Stats summarizes one cleaned segmentation. All aggregates that would be
// NaN (no surviving segments) are normalized to 0 so downstream
// arithmetic stays well-defined.
type Stats struct {
	// MeanSize is the mean segment length in resolution units.
	MeanSize float64
	// Coverage is the total length spanned, in resolution units.
	Coverage float64
	// Count is the number of surviving segments (boundary calls for the
	// insulation method).
	Count int
	// MeanInsulation is the mean pooled insulation value; meaningful only
	// for the insulation method, 0 otherwise.
	MeanInsulation float64
}

// Generator produces one cleaned segmentation per (matrix, parameter)
// pair: oracle call, size bounds, noise filtering, statistics.
type Generator struct {
	adapter *Adapter
	opts    Options
}

// NewGenerator validates opts and returns a ready Generator.
func NewGenerator(adapter *Adapter, opts Options) (*Generator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	if !opts.Method.Valid() {
		return nil, ErrUnsupportedMethod
	}
	if opts.MaxInterTADSize >= opts.MaxTADSize {
		return nil, ErrBadSizeBounds
	}
	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = logrus.NewEntry(l)
	}
	return &Generator{adapter: adapter, opts: opts}, nil
}

// Generate runs the oracle for one parameter value and returns the
// cleaned segmentation with its statistics. stripes and good come from
// noise.BuildMask for the same matrix and method; a nil mask is derived
// from non-empty matrix columns. final only enables drop-count
// diagnostics, it never changes results.
func (g *Generator) Generate(ctx context.Context, m *contact.Matrix, param float64, stripes noise.Stripes, good noise.Mask, final bool) ([]hic.Segment, Stats, error) {
	if good == nil {
		good = defaultMask(m)
	}
	if g.opts.Method == hic.Insulation {
		return g.generateBoundaries(ctx, m, param, stripes, good, final)
	}
	return g.generateDomains(ctx, m, param, stripes, good, final)
}

// generateDomains is the density-score path: segments are bin-index
// domains and the noise metric is continuous.
func (g *Generator) generateDomains(ctx context.Context, m *contact.Matrix, param float64, stripes noise.Stripes, good noise.Mask, final bool) ([]hic.Segment, Stats, error) {
	g.warnDirtyMatrix(m)

	raw, _, err := g.adapter.Segment(ctx, g.opts.Method, m, param, good)
	if err != nil {
		return nil, Stats{}, err
	}

	sized := make([]hic.Segment, 0, len(raw))
	for _, s := range raw {
		v := float64(s.Length())
		if v > g.opts.MaxInterTADSize && v < g.opts.MaxTADSize {
			sized = append(sized, s)
		}
	}

	metrics := make([]float64, len(sized))
	for i, s := range sized {
		metrics[i] = noise.Metric(s, stripes, g.opts.Method, 0, 0)
	}

	thresh := 0.0
	if g.opts.AdaptiveThreshold {
		freq := noiseFrequency(stripes, int64(m.Bins()))
		if final {
			g.opts.Log.WithField("noise_freq", freq).Info("noise frequency in contact matrix")
		}
		t, ok := adaptiveThreshold(metrics, freq)
		if !ok {
			// Threshold underivable; keep the candidate set as-is.
			return sized, domainStats(sized), nil
		}
		thresh = t
	}

	kept := make([]hic.Segment, 0, len(sized))
	for i, s := range sized {
		if metrics[i] > thresh {
			kept = append(kept, s)
		}
	}
	if final {
		g.opts.Log.WithFields(logrus.Fields{
			"param":   param,
			"dropped": len(sized) - len(kept),
			"total":   len(sized),
		}).Info("deleted noisy domains from final segmentation")
	}
	return kept, domainStats(kept), nil
}

// generateBoundaries is the insulation path: segments are genomic
// boundary calls and statistics come from the domains between
// consecutive surviving boundaries.
func (g *Generator) generateBoundaries(ctx context.Context, m *contact.Matrix, param float64, stripes noise.Stripes, good noise.Mask, final bool) ([]hic.Segment, Stats, error) {
	raw, anns, err := g.adapter.Segment(ctx, g.opts.Method, m, param, good)
	if err != nil {
		return nil, Stats{}, err
	}
	res := int64(m.Resolution())

	metrics := make([]float64, len(raw))
	for i, b := range raw {
		metrics[i] = noise.Metric(b, stripes, g.opts.Method, res, g.opts.BadBinDistance)
	}

	thresh := 0.0
	if g.opts.AdaptiveThreshold {
		freq := noiseFrequency(stripes, int64(m.Bins())*res)
		if final {
			g.opts.Log.WithField("noise_freq", freq).Info("noise frequency in contact matrix")
		}
		t, ok := adaptiveThreshold(metrics, freq)
		if !ok {
			return raw, g.boundaryStats(raw, anns, stripes, res), nil
		}
		thresh = t
	}

	kept := make([]hic.Segment, 0, len(raw))
	keptAnns := make([]Annotation, 0, len(anns))
	for i, b := range raw {
		if metrics[i] > thresh {
			kept = append(kept, b)
			keptAnns = append(keptAnns, anns[i])
		}
	}
	if final {
		g.opts.Log.WithFields(logrus.Fields{
			"window":  param,
			"dropped": len(raw) - len(kept),
			"total":   len(raw),
		}).Info("deleted noisy boundaries from final segmentation")
	}
	return kept, g.boundaryStats(kept, keptAnns, stripes, res), nil
}

// boundaryStats derives domain statistics from consecutive boundary
// pairs: domain length is the gap between one boundary's end and the
// next one's start, in resolution units; domains violating the size
// bounds or containing a bad interval are excluded from the aggregates.
// Count stays the number of boundaries. The pooled insulation series is
// every domain's left value plus the last domain's right value once.
func (g *Generator) boundaryStats(bounds []hic.Segment, anns []Annotation, stripes noise.Stripes, res int64) Stats {
	st := Stats{Count: len(bounds)}
	if len(bounds) < 2 {
		return st
	}
	var (
		lengths []float64
		ins     []float64
		lastIns float64
	)
	for i := 0; i+1 < len(bounds); i++ {
		length := float64(bounds[i+1].Start-bounds[i].End) / float64(res)
		if length <= g.opts.MaxInterTADSize || length >= g.opts.MaxTADSize {
			continue
		}
		if containsStripe(stripes, bounds[i].End, bounds[i+1].Start) {
			continue
		}
		lengths = append(lengths, length)
		ins = append(ins, anns[i].Insulation)
		lastIns = anns[i+1].Insulation
	}
	if len(lengths) == 0 {
		return st
	}
	st.MeanSize = nanToZero(stat.Mean(lengths, nil))
	st.Coverage = floats.Sum(lengths)
	ins = append(ins, lastIns)
	st.MeanInsulation = nanToZero(stat.Mean(ins, nil))
	return st
}

// warnDirtyMatrix flags inputs that destabilize density scoring.
func (g *Generator) warnDirtyMatrix(m *contact.Matrix) {
	n := m.Bins()
	diag := 0.0
	hasNaN := false
	for i := 0; i < n; i++ {
		diag += m.At(i, i)
		for j := 0; j < n && !hasNaN; j++ {
			hasNaN = math.IsNaN(m.At(i, j))
		}
	}
	if hasNaN {
		g.opts.Log.Warn("NaNs in contact matrix, remove them first")
	}
	if diag > 0 {
		g.opts.Log.Warn("diagonal is not removed, results may be unstable")
	}
}

// defaultMask marks bins with any non-zero contact as good.
func defaultMask(m *contact.Matrix) noise.Mask {
	n := m.Bins()
	mask := make(noise.Mask, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if m.At(i, j) != 0 {
				mask[j] = true
				break
			}
		}
	}
	return mask
}

// noiseFrequency is the fraction of the chromosome covered by bad
// intervals, with total in the same units as the interval bounds.
func noiseFrequency(stripes noise.Stripes, total int64) float64 {
	if total == 0 {
		return 0
	}
	var covered int64
	for _, iv := range stripes {
		covered += iv.Width()
	}
	return float64(covered) / float64(total)
}

// adaptiveThreshold splits the sorted positive metric distribution at the
// observed noise frequency and returns the midpoint between the two
// flanking values. Reports false when the split is out of range.
func adaptiveThreshold(metrics []float64, freq float64) (float64, bool) {
	hist := make([]float64, 0, len(metrics))
	for _, v := range metrics {
		if v > 0 {
			hist = append(hist, v)
		}
	}
	sort.Float64s(hist)
	idx := int(float64(len(hist)) * freq)
	if idx < 1 || idx >= len(hist) {
		return 0, false
	}
	return (hist[idx-1] + hist[idx]) / 2, true
}

func domainStats(segs []hic.Segment) Stats {
	st := Stats{Count: len(segs)}
	if len(segs) == 0 {
		return st
	}
	lengths := make([]float64, len(segs))
	for i, s := range segs {
		lengths[i] = float64(s.Length())
	}
	st.Coverage = floats.Sum(lengths)
	st.MeanSize = nanToZero(stat.Mean(lengths, nil))
	return st
}

func containsStripe(stripes noise.Stripes, lo, hi int64) bool {
	for _, iv := range stripes {
		if iv.Start >= lo && iv.End <= hi {
			return true
		}
	}
	return false
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

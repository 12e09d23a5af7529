package noise

// Interval is one half-open [Start, End) run of technically invalid
// territory. Units depend on the segmentation method that produced it:
// bin indices for density-score methods, genomic coordinates for
// insulation. A chromosome's intervals are disjoint and ordered; they
// are built once and never mutated afterwards.
type Interval struct {
	Start int64
	End   int64
}

// Width returns End - Start in the interval's own units.
func (iv Interval) Width() int64 { return iv.End - iv.Start }

// Stripes is the ordered set of bad intervals of one chromosome.
type Stripes []Interval

// Mask is a per-bin validity vector: true means the bin is usable.
type Mask []bool

// GoodCount returns the number of usable bins.
func (m Mask) GoodCount() int {
	n := 0
	for _, ok := range m {
		if ok {
			n++
		}
	}
	return n
}

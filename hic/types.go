package hic

// Method selects the segmentation backend driving a search.
//
//   - Armatus and Modularity are density-score methods: the search
//     parameter is "gamma" (a resolution weight) and all coordinates are
//     bin indices.
//   - Insulation is a boundary-calling method: the search parameter is
//     "window" (a smoothing width) and all coordinates are genomic.
type Method string

const (
	// Armatus scores domains with the armatus density objective.
	Armatus Method = "armatus"
	// Modularity scores domains with the modularity objective.
	Modularity Method = "modularity"
	// Insulation calls domain boundaries from a rolling insulation profile.
	Insulation Method = "insulation"
)

// Valid reports whether m names a supported segmentation method.
func (m Method) Valid() bool {
	switch m {
	case Armatus, Modularity, Insulation:
		return true
	}
	return false
}

// CoordinateBased reports whether m expresses segments in genomic
// coordinates rather than bin indices.
func (m Method) CoordinateBased() bool { return m == Insulation }

// ParamName returns the column name of the search parameter for m:
// "window" for Insulation, "gamma" otherwise.
func (m Method) ParamName() string {
	if m == Insulation {
		return "window"
	}
	return "gamma"
}

// Segment is one called domain (or, for the Insulation method, one called
// boundary), half-open [Start, End). Units follow the producing method.
// Segments emitted by one oracle call are non-overlapping and ordered by
// coordinate; they are never mutated after creation.
type Segment struct {
	Start int64
	End   int64
}

// Length returns End - Start in the segment's own units.
func (s Segment) Length() int64 { return s.End - s.Start }

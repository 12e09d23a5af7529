package segment

import (
	"context"
	"math"

	"github.com/aence/hichew/contact"
	"github.com/aence/hichew/hic"
	"github.com/aence/hichew/noise"
)

// Annotation carries the per-boundary measurements an insulation oracle
// attaches to its calls. Density oracles return no annotations.
type Annotation struct {
	// Strength is the boundary-strength confidence; NaN marks a call the
	// oracle could not grade, which the adapter discards.
	Strength float64
	// Insulation is the log2 insulation value at the boundary for the
	// requested window.
	Insulation float64
}

// Oracle is the external segmentation backend contract.
//
// Segment returns the ordered, non-overlapping half-open regions called
// for one parameter value, restricted to the good bins. Density oracles
// interpret param as a gamma weight and return bin-index segments with a
// nil annotation slice; insulation oracles interpret param as a window
// width and return genomic-coordinate boundary calls with one Annotation
// per call. A parameter that yields no valid calls returns an empty
// result, not an error.
type Oracle interface {
	Segment(ctx context.Context, m *contact.Matrix, param float64, good noise.Mask) ([]hic.Segment, []Annotation, error)
}

// Adapter dispatches segmentation requests to the oracle registered for
// each method and normalizes their output. Register all oracles before
// the first Segment call; the adapter is then safe for concurrent use.
type Adapter struct {
	oracles map[hic.Method]Oracle
}

// NewAdapter returns an empty adapter.
func NewAdapter() *Adapter {
	return &Adapter{oracles: make(map[hic.Method]Oracle)}
}

// Register binds o as the backend for method m, replacing any previous
// binding.
func (a *Adapter) Register(m hic.Method, o Oracle) {
	a.oracles[m] = o
}

// Segment invokes the oracle for method with one parameter value.
// For the insulation method, boundary calls with a NaN (undefined)
// strength are discarded before returning. Returns ErrUnsupportedMethod
// for unknown tags and ErrNoOracle when no backend is registered.
func (a *Adapter) Segment(ctx context.Context, method hic.Method, m *contact.Matrix, param float64, good noise.Mask) ([]hic.Segment, []Annotation, error) {
	if !method.Valid() {
		return nil, nil, ErrUnsupportedMethod
	}
	o, ok := a.oracles[method]
	if !ok {
		return nil, nil, ErrNoOracle
	}
	segs, anns, err := o.Segment(ctx, m, param, good)
	if err != nil {
		return nil, nil, err
	}
	if method != hic.Insulation {
		return segs, nil, nil
	}
	if len(anns) != len(segs) {
		return nil, nil, ErrAnnotationMismatch
	}
	keptSegs := make([]hic.Segment, 0, len(segs))
	keptAnns := make([]Annotation, 0, len(anns))
	for i, s := range segs {
		if math.IsNaN(anns[i].Strength) {
			continue
		}
		keptSegs = append(keptSegs, s)
		keptAnns = append(keptAnns, anns[i])
	}
	return keptSegs, keptAnns, nil
}

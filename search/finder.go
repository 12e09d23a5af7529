package search

import (
	"context"
	"math"

	"github.com/aence/hichew/hic"
	"github.com/aence/hichew/segment"
)

// Evaluation records one scanned parameter value together with the
// segmentation it produced, for the combined result table.
type Evaluation struct {
	Param    float64
	Segments []hic.Segment
	Stats    segment.Stats
}

// ScanResult is the outcome of one full grid scan.
type ScanResult struct {
	// OptParam is the selected coarse optimum.
	OptParam float64
	// Evaluations holds every scanned value in grid order.
	Evaluations []Evaluation
}

// candidateSet keeps local-optimum candidates in insertion order with
// overwrite-in-place semantics: re-adding a parameter refreshes its
// coverage but keeps its original position, so the first-encountered
// maximum wins ties deterministically.
type candidateSet struct {
	order []float64
	cov   map[float64]float64
}

func newCandidateSet() *candidateSet {
	return &candidateSet{cov: make(map[float64]float64)}
}

func (c *candidateSet) add(param, cov float64) {
	if _, ok := c.cov[param]; !ok {
		c.order = append(c.order, param)
	}
	c.cov[param] = cov
}

// best returns the candidate with the strictly greatest coverage;
// earlier insertions win ties.
func (c *candidateSet) best() float64 {
	bestParam, bestCov := c.order[0], c.cov[c.order[0]]
	for _, p := range c.order[1:] {
		if c.cov[p] > bestCov {
			bestParam, bestCov = p, c.cov[p]
		}
	}
	return bestParam
}

// Scanner accumulates a left-to-right scan of parameter evaluations and
// brackets every crossing of the target mean size. It carries no oracle
// coupling, so pipelines with bespoke scan loops (early stopping, extra
// bookkeeping) can feed it one observation at a time and still share the
// candidate selection policy of FindGlobalOptimum.
type Scanner struct {
	target  float64
	cands   *candidateSet
	params  []float64
	means   []float64
	covs    []float64
	crossed bool
}

// NewScanner returns a scanner for the given target mean size, expressed
// in resolution units.
func NewScanner(target float64) *Scanner {
	return &Scanner{target: target, cands: newCandidateSet()}
}

// Observe registers the statistics for the next parameter in scan order.
// A sign change of (mean size - target) against the previous observation
// brackets a crossing; of the two bracketing parameters the one whose
// mean size lies closer to the target is recorded as a local-optimum
// candidate, paired with its coverage.
func (s *Scanner) Observe(param float64, st segment.Stats) {
	if n := len(s.means); n > 0 {
		dev := st.MeanSize - s.target
		devPrev := s.means[n-1] - s.target
		if dev*devPrev <= 0 {
			s.crossed = true
			if math.Abs(dev) <= math.Abs(devPrev) {
				s.cands.add(param, st.Coverage)
			} else {
				s.cands.add(s.params[n-1], s.covs[n-1])
			}
		}
	}
	s.params = append(s.params, param)
	s.means = append(s.means, st.MeanSize)
	s.covs = append(s.covs, st.Coverage)
}

// Crossed reports whether any target crossing has been bracketed so far.
func (s *Scanner) Crossed() bool { return s.crossed }

// Best closes the scan and returns the optimum: the grid point whose
// mean size is globally closest to the target joins the candidate set as
// a guaranteed fallback, then the candidate with maximal coverage wins,
// first-encountered on ties. Returns ErrNoEvaluations for an empty scan.
func (s *Scanner) Best() (float64, error) {
	if len(s.params) == 0 {
		return 0, ErrNoEvaluations
	}
	closest := 0
	for i, m := range s.means {
		if math.Abs(m-s.target) < math.Abs(s.means[closest]-s.target) {
			closest = i
		}
	}
	s.cands.add(s.params[closest], s.covs[closest])
	return s.cands.best(), nil
}

// FindGlobalOptimum scans the grid left to right, evaluating every
// value, and returns the bracketing-selected coarse optimum along with
// all evaluations for the result table.
func FindGlobalOptimum(ctx context.Context, eval Evaluator, g Grid, target float64) (ScanResult, error) {
	if eval == nil {
		return ScanResult{}, ErrNilEvaluator
	}
	if g.Len() == 0 {
		return ScanResult{}, ErrEmptyGrid
	}

	sc := NewScanner(target)
	res := ScanResult{Evaluations: make([]Evaluation, 0, g.Len())}
	for i := 0; i < g.Len(); i++ {
		param := g.At(i)
		segs, st, err := eval.Evaluate(ctx, param, false)
		if err != nil {
			return ScanResult{}, err
		}
		sc.Observe(param, st)
		res.Evaluations = append(res.Evaluations, Evaluation{Param: param, Segments: segs, Stats: st})
	}
	opt, err := sc.Best()
	if err != nil {
		return ScanResult{}, err
	}
	res.OptParam = opt
	return res, nil
}

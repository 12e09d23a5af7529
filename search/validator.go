package search

import "context"

// Advisory findings reported by ValidateRange.
const (
	// WarnUpperNegative: the extension beyond the upper edge reaches
	// negative parameter values.
	WarnUpperNegative = "grid upper bound is probably negative, select a positive upper bound"
	// WarnLowerNegative: the extension below the lower edge is entirely
	// negative while the edge itself is not zero.
	WarnLowerNegative = "grid lower bound is probably negative, select a non-negative lower bound"
	// WarnUpperExpandable: segment counts still change beyond the upper
	// edge, so the optimum may lie outside the grid.
	WarnUpperExpandable = "upper bound could be expanded, parameter optimum would be missed"
	// WarnLowerExpandable: segment counts still change below the lower
	// edge.
	WarnLowerExpandable = "lower bound could be expanded, parameter optimum would be missed"
)

// RangeReport is the advisory outcome of ValidateRange. It never blocks
// the search; callers decide whether to surface the warnings and rerun
// with a wider grid.
type RangeReport struct {
	// UpperCounts and LowerCounts hold the segment counts observed across
	// each ten-step extension range; nil when the side was skipped.
	UpperCounts []int
	LowerCounts []int
	// Warnings lists the findings, empty when the grid edges look sane.
	Warnings []string
}

// OK reports whether validation passed without findings.
func (r RangeReport) OK() bool { return len(r.Warnings) == 0 }

// ValidateRange checks that the grid's edges are wide enough that the
// segment count has saturated beyond them. It probes ten extension steps
// past each edge with eval and compares counts; a non-constant count
// series means the informative parameter range extends past the grid.
// Purely diagnostic: the grid itself is never adjusted. A zero lower
// edge skips the lower extension since negative parameters are not
// probed. Returns an error only when an evaluation itself fails.
func ValidateRange(ctx context.Context, eval Evaluator, g Grid) (RangeReport, error) {
	var rep RangeReport
	if eval == nil {
		return rep, ErrNilEvaluator
	}
	if g.Len() == 0 {
		return rep, ErrEmptyGrid
	}
	step := g.Step()

	upper, err := NewGrid(g.Last()+step, g.Last()+step*11, step)
	if err != nil {
		return rep, err
	}
	if upper.First() < 0 {
		rep.Warnings = append(rep.Warnings, WarnUpperNegative)
		return rep, nil
	}
	rep.UpperCounts, err = extensionCounts(ctx, eval, upper, 0)
	if err != nil {
		return rep, err
	}

	lower, err := NewGrid(g.First()-step*10, g.First(), step)
	if err != nil {
		return rep, err
	}
	switch {
	case lower.First() >= 0:
		rep.LowerCounts, err = extensionCounts(ctx, eval, lower, 0)
	case g.First() == 0:
		// Nothing below zero to probe.
	case lower.Last() < 0:
		rep.Warnings = append(rep.Warnings, WarnLowerNegative)
		return rep, nil
	default:
		rep.LowerCounts, err = extensionCounts(ctx, eval, lower, firstNonNegative(lower))
	}
	if err != nil {
		return rep, err
	}

	if !constant(rep.UpperCounts) {
		rep.Warnings = append(rep.Warnings, WarnUpperExpandable)
		return rep, nil
	}
	if !constant(rep.LowerCounts) {
		rep.Warnings = append(rep.Warnings, WarnLowerExpandable)
	}
	return rep, nil
}

// extensionCounts evaluates grid values from index lo onward and
// collects the resulting segment counts.
func extensionCounts(ctx context.Context, eval Evaluator, g Grid, lo int) ([]int, error) {
	counts := make([]int, 0, g.Len()-lo)
	for i := lo; i < g.Len(); i++ {
		_, st, err := eval.Evaluate(ctx, g.At(i), false)
		if err != nil {
			return nil, err
		}
		counts = append(counts, st.Count)
	}
	return counts, nil
}

func firstNonNegative(g Grid) int {
	for i := 0; i < g.Len(); i++ {
		if g.At(i) >= 0 {
			return i
		}
	}
	return g.Len()
}

func constant(counts []int) bool {
	if len(counts) < 2 {
		return true
	}
	for _, c := range counts[1:] {
		if c != counts[0] {
			return false
		}
	}
	return true
}

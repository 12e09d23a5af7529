package search

import "context"

// Side selects which grid edge Narrow fixes.
type Side int

const (
	// Upper narrows from the grid's last value downward, trimming the
	// range where larger parameters no longer change the segment count.
	Upper Side = iota
	// Lower narrows from the grid's first value upward.
	Lower
)

func (s Side) String() string {
	if s == Upper {
		return "upper"
	}
	return "lower"
}

// Narrow finds, by bisection over grid indices, the boundary beyond
// which the segment count stops changing on the chosen side, and returns
// the grid trimmed to that boundary. The count at the side's edge is the
// stable baseline; the bisection maintains one index known to match it
// and one known to differ, probing the midpoint until the pair is
// adjacent. The bracket's index distance strictly shrinks every round,
// so termination is guaranteed in O(log n) evaluations. Narrowing an
// already-narrowed grid is a no-op.
//
// A Lower narrowing that collapses to a width of at most one step plus
// eps returns ErrRegionCollapsed: the supplied grid most likely misses
// the parameter region of interest entirely, and the caller should rerun
// with a different grid.
func Narrow(ctx context.Context, eval Evaluator, g Grid, side Side, eps float64) (Grid, error) {
	if eval == nil {
		return Grid{}, ErrNilEvaluator
	}
	if g.Len() == 0 {
		return Grid{}, ErrEmptyGrid
	}

	count := func(i int) (int, error) {
		_, st, err := eval.Evaluate(ctx, g.At(i), false)
		return st.Count, err
	}

	edge := g.Len() - 1
	if side == Lower {
		edge = 0
	}
	base, err := count(edge)
	if err != nil {
		return Grid{}, err
	}

	// stable tracks the index closest to the far edge still matching the
	// baseline; moving holds the nearest known mismatch.
	stable, moving := edge, g.Len()-1-edge
	for abs(stable-moving) > 1 {
		mid := (stable + moving) / 2
		c, err := count(mid)
		if err != nil {
			return Grid{}, err
		}
		if c == base {
			stable = mid
		} else {
			moving = mid
		}
	}
	fixed := stable
	if stable != moving {
		// moving may still hold the far edge unprobed; a grid stable
		// across its whole range narrows all the way to that edge.
		c, err := count(moving)
		if err != nil {
			return Grid{}, err
		}
		if c == base {
			fixed = moving
		}
	}

	var narrowed Grid
	if side == Upper {
		narrowed = g.Slice(0, fixed)
	} else {
		narrowed = g.Slice(fixed, g.Len()-1)
		if narrowed.Last()-narrowed.First()-narrowed.Step() <= eps {
			return Grid{}, ErrRegionCollapsed
		}
	}
	return narrowed, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

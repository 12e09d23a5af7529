package search

import (
	"math"
	"strconv"
	"strings"
)

// Grid is an ordered, strictly increasing sequence of candidate
// parameter values with a fixed step. Values are materialized on demand
// by index and rounded to the step's decimal places, so index arithmetic
// never suffers from float accumulation. Grids are values: narrowing and
// zooming build fresh grids, never mutate.
type Grid struct {
	start    float64
	step     float64
	n        int
	decimals int
}

// NewGrid returns the grid covering [start, stop) at the given step,
// like a half-open range. Returns ErrBadStep for a non-positive step and
// ErrEmptyGrid when the range holds no values.
func NewGrid(start, stop, step float64) (Grid, error) {
	if step <= 0 {
		return Grid{}, ErrBadStep
	}
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return Grid{}, ErrEmptyGrid
	}
	return Grid{start: start, step: step, n: n, decimals: stepDecimals(step)}, nil
}

// Len returns the number of grid values.
func (g Grid) Len() int { return g.n }

// Step returns the grid step.
func (g Grid) Step() float64 { return g.step }

// At returns the i-th grid value, rounded to the step's decimals.
func (g Grid) At(i int) float64 {
	return roundTo(g.start+float64(i)*g.step, g.decimals)
}

// First returns the smallest grid value.
func (g Grid) First() float64 { return g.At(0) }

// Last returns the largest grid value.
func (g Grid) Last() float64 { return g.At(g.n - 1) }

// Slice returns the subgrid spanning indices i through j inclusive.
func (g Grid) Slice(i, j int) Grid {
	return Grid{start: g.At(i), step: g.step, n: j - i + 1, decimals: g.decimals}
}

// Values materializes every grid value.
func (g Grid) Values() []float64 {
	vs := make([]float64, g.n)
	for i := range vs {
		vs[i] = g.At(i)
	}
	return vs
}

// stepDecimals counts the significant decimal places of step, the
// precision grid values are rounded to.
func stepDecimals(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return len(s) - i - 1
}

// roundTo rounds v to the given decimal places. Steps whose decimal
// expansion is not short (artifacts of float division during zooming)
// are left untouched.
func roundTo(v float64, decimals int) float64 {
	if decimals > 10 {
		return v
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

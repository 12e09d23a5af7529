package noise

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/aence/hichew/contact"
	"github.com/aence/hichew/hic"
)

// Result carries the three outputs of BuildMask for one chromosome:
// the bad intervals (in method units), the normalized matrix the search
// operates on, and the per-bin validity mask.
type Result struct {
	Stripes Stripes
	Matrix  *contact.Matrix
	Good    Mask
}

// BuildMask normalizes m and derives its technical-noise description.
//
// Normalization: NaNs and the diagonal are zeroed; values are clamped to
// the (100-p)-th and p-th percentiles of the strictly positive entries;
// the natural log is taken and shifted so the global minimum is zero.
// Bins whose row sum is then exactly zero are grouped into maximal runs
// of consecutive indices; each run becomes one half-open Interval. For
// coordinate-based methods interval bounds are scaled by the resolution.
//
// The input matrix is not mutated; Result.Matrix is an owned copy.
// Complexity: O(n²) time, O(n²) memory for the copy.
func BuildMask(m *contact.Matrix, method hic.Method, percentile float64) (*Result, error) {
	if !method.Valid() {
		return nil, ErrUnsupportedMethod
	}
	if percentile <= 0 || percentile > 100 {
		return nil, ErrBadPercentile
	}

	work := m.Clone()
	d := work.Dense()
	n := work.Bins()

	// Self-contacts and NaNs carry no signal.
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.IsNaN(d.At(i, j)) {
				d.Set(i, j, 0)
			}
		}
		d.Set(i, i, 0)
	}

	pos := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := d.At(i, j); v > 0 {
				pos = append(pos, v)
			}
		}
	}
	if len(pos) > 0 {
		sort.Float64s(pos)
		lo := stat.Quantile((100-percentile)/100, stat.LinInterp, pos, nil)
		hi := stat.Quantile(percentile/100, stat.LinInterp, pos, nil)

		minLog := math.Inf(1)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v := d.At(i, j)
				if v <= lo {
					v = lo
				} else if v >= hi {
					v = hi
				}
				v = math.Log(v)
				d.Set(i, j, v)
				if v < minLog {
					minLog = v
				}
			}
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				d.Set(i, j, d.At(i, j)-minLog)
			}
		}
	}

	var zero []int64
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += d.At(i, j)
		}
		if sum == 0 {
			zero = append(zero, int64(i))
		}
	}

	res := int64(work.Resolution())
	good := make(Mask, n)
	for i := range good {
		good[i] = true
	}
	var stripes Stripes
	for _, run := range groupRuns(zero) {
		if run[1]-run[0] < 0 {
			continue
		}
		for b := run[0]; b <= run[1]; b++ {
			good[b] = false
		}
		iv := Interval{Start: run[0], End: run[1] + 1}
		if method.CoordinateBased() {
			iv = Interval{Start: run[0] * res, End: (run[1] + 1) * res}
		}
		stripes = append(stripes, iv)
	}

	return &Result{Stripes: stripes, Matrix: work, Good: good}, nil
}

// groupRuns groups ascending indices into inclusive [first, last] runs of
// consecutive values. The final index never extends or opens a run; the
// last run closes at its predecessor. A single index yields a [v, v] run.
func groupRuns(v []int64) [][2]int64 {
	if len(v) == 0 {
		return nil
	}
	prev := v[0]
	runs := [][2]int64{{v[0], prev}}
	for i := 1; i < len(v)-1; i++ {
		if v[i]-prev == 1 {
			prev = v[i]
			continue
		}
		runs[len(runs)-1][1] = prev
		runs = append(runs, [2]int64{v[i], v[i]})
		prev = v[i]
	}
	runs[len(runs)-1][1] = prev
	return runs
}

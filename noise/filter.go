package noise

import (
	"math"

	"github.com/aence/hichew/hic"
)

const (
	// FullyNoisyMetric is the hard-reject sentinel returned by Metric.
	FullyNoisyMetric = -1.0

	// farSideMetric stands in for a side with no bad interval at all, so
	// that side never becomes the controlling minimum.
	farSideMetric = 1e10
)

// FullyNoisy reports whether seg is wholly compromised by a bad interval.
// Each interval is expanded outward by k*resolution for the insulation
// method (density methods use the interval as-is); seg is fully noisy if
// either endpoint touches the expanded territory, up to and including
// its last covered unit, or the expanded territory lies wholly inside
// seg. The containment rule is exempt for degenerate territory, which
// for density methods means a single-bin interval.
func FullyNoisy(seg hic.Segment, stripes Stripes, method hic.Method, resolution, k int64) bool {
	for _, iv := range stripes {
		// lo..hi are the inclusive bounds of the compromised territory.
		lo, hi := iv.Start, iv.End-1
		if method == hic.Insulation {
			lo = iv.Start - resolution*k
			hi = iv.End + resolution*k
		}
		if seg.Start >= lo && seg.Start <= hi {
			return true
		}
		if seg.End >= lo && seg.End <= hi {
			return true
		}
		if seg.Start <= lo && seg.End >= hi && hi != lo {
			return true
		}
	}
	return false
}

// Metric scores how suspect seg is relative to the bad intervals.
//
// Fully noisy segments score FullyNoisyMetric (-1). The insulation method
// has no continuous grading and scores a constant 1. Density methods
// score min over both sides of log(gap)²·log(length), where gap is the
// distance from the segment to the nearest bad interval on that side
// (to the interval's last covered unit on the left, to its first on the
// right); a side with no interval contributes 1e10. Segments hugging a
// stripe, or very short ones, score low and can be thresholded out.
func Metric(seg hic.Segment, stripes Stripes, method hic.Method, resolution, k int64) float64 {
	if FullyNoisy(seg, stripes, method, resolution, k) {
		return FullyNoisyMetric
	}
	if method == hic.Insulation {
		return 1
	}

	left, right := farSideMetric, farSideMetric
	length := math.Log(float64(seg.Length()))
	for _, iv := range stripes {
		if iv.End <= seg.Start {
			gap := float64(seg.Start - iv.End + 1)
			m := math.Log(gap) * math.Log(gap) * length
			// Stripes are ordered, so the last match is the nearest.
			left = m
		}
		if iv.Start >= seg.End && right == farSideMetric {
			gap := float64(iv.Start - seg.End)
			right = math.Log(gap) * math.Log(gap) * length
		}
	}
	return math.Min(left, right)
}

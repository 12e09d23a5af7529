package search

import (
	"context"
	"math"
)

// Refine zooms around the coarse optimum until the objective
// |mean size - target| stabilizes. Each round rebuilds a local grid
// [g0-step, g0+step) sampled at step/10, moves g0 to the sample
// minimizing the objective, and divides the step by ten; rounds stop
// once the objective improves by at most eps. The final segmentation is
// then regenerated at the refined parameter with diagnostic logging
// enabled.
func Refine(ctx context.Context, eval Evaluator, g0, step, target, eps float64) (Evaluation, int, error) {
	if eval == nil {
		return Evaluation{}, 0, ErrNilEvaluator
	}
	if step <= 0 {
		return Evaluation{}, 0, ErrBadStep
	}

	_, st, err := eval.Evaluate(ctx, g0, false)
	if err != nil {
		return Evaluation{}, 0, err
	}
	objPrev := math.Abs(target - st.MeanSize)

	rounds := 0
	for {
		zoom, err := NewGrid(g0-step, g0+step, step/10)
		if err != nil {
			return Evaluation{}, rounds, err
		}
		bestIdx, bestObj := 0, math.Inf(1)
		for i := 0; i < zoom.Len(); i++ {
			_, st, err := eval.Evaluate(ctx, zoom.At(i), false)
			if err != nil {
				return Evaluation{}, rounds, err
			}
			if obj := math.Abs(st.MeanSize - target); obj < bestObj {
				bestIdx, bestObj = i, obj
			}
		}
		g0 = zoom.At(bestIdx)
		step /= 10
		rounds++
		if math.Abs(bestObj-objPrev) <= eps {
			break
		}
		objPrev = bestObj
	}

	segs, st, err := eval.Evaluate(ctx, g0, true)
	if err != nil {
		return Evaluation{}, rounds, err
	}
	return Evaluation{Param: g0, Segments: segs, Stats: st}, rounds, nil
}

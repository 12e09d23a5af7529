package search

import (
	"context"

	"github.com/aence/hichew/hic"
	"github.com/aence/hichew/segment"
)

// Evaluator produces one cleaned segmentation per parameter value. It is
// the sole gateway between the search stages and the segmentation
// machinery; implementations bind a matrix, its noise artifacts and an
// oracle. final requests diagnostic logging for the concluding call of a
// chromosome's search and must not change results.
type Evaluator interface {
	Evaluate(ctx context.Context, param float64, final bool) ([]hic.Segment, segment.Stats, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, param float64, final bool) ([]hic.Segment, segment.Stats, error)

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(ctx context.Context, param float64, final bool) ([]hic.Segment, segment.Stats, error) {
	return f(ctx, param, final)
}

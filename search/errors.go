package search

import "errors"

var (
	// ErrEmptyGrid indicates a grid with no values.
	ErrEmptyGrid = errors.New("search: grid must not be empty")
	// ErrBadStep indicates a non-positive grid step.
	ErrBadStep = errors.New("search: grid step must be positive")
	// ErrNilEvaluator indicates a stage was invoked without an evaluator.
	ErrNilEvaluator = errors.New("search: evaluator must not be nil")
	// ErrRegionCollapsed indicates lower-side narrowing shrank the grid to
	// nothing, meaning the supplied grid likely misses the region of
	// interest entirely. Recoverable: rerun with a different grid.
	ErrRegionCollapsed = errors.New("search: narrowed grid collapsed, parameter region of interest not covered")
	// ErrNoEvaluations indicates an optimum was requested before any grid
	// value was scanned.
	ErrNoEvaluations = errors.New("search: no evaluations recorded")
)

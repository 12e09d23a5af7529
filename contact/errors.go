package contact

import "errors"

var (
	// ErrEmptyMatrix indicates a matrix with zero rows or columns.
	ErrEmptyMatrix = errors.New("contact: matrix must have at least one bin")
	// ErrNotSquare indicates a non-square input matrix.
	ErrNotSquare = errors.New("contact: matrix must be square")
	// ErrBadResolution indicates a non-positive bin resolution.
	ErrBadResolution = errors.New("contact: resolution must be positive")
	// ErrRaggedInput indicates rows of differing lengths in a text matrix.
	ErrRaggedInput = errors.New("contact: all rows must have the same length")
	// ErrNoMatrix indicates that no matrix file exists for the requested
	// stage and chromosome.
	ErrNoMatrix = errors.New("contact: no matrix file for stage/chromosome")
)

package segment

import "errors"

var (
	// ErrUnsupportedMethod indicates a method tag outside the known set.
	ErrUnsupportedMethod = errors.New("segment: unsupported segmentation method")
	// ErrNoOracle indicates no oracle is registered for the requested method.
	ErrNoOracle = errors.New("segment: no oracle registered for method")
	// ErrAnnotationMismatch indicates an insulation oracle returned
	// annotations not aligned one-to-one with its boundaries.
	ErrAnnotationMismatch = errors.New("segment: annotations must align with boundaries")
	// ErrNilAdapter indicates a Generator was built without an adapter.
	ErrNilAdapter = errors.New("segment: adapter must not be nil")
	// ErrBadSizeBounds indicates MaxInterTADSize is not below MaxTADSize.
	ErrBadSizeBounds = errors.New("segment: max intertad size must be below max tad size")
)

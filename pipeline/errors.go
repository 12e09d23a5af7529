package pipeline

import "errors"

var (
	// ErrNilProvider indicates the orchestrator was built without a matrix
	// provider.
	ErrNilProvider = errors.New("pipeline: matrix provider must not be nil")
	// ErrNilAdapter indicates the orchestrator was built without an oracle
	// adapter.
	ErrNilAdapter = errors.New("pipeline: oracle adapter must not be nil")
	// ErrNoChromosomes indicates an empty chromosome list.
	ErrNoChromosomes = errors.New("pipeline: at least one chromosome required")
	// ErrBadExpected indicates a non-positive expected segment size.
	ErrBadExpected = errors.New("pipeline: expected segment size must be positive")
	// ErrBadResolution indicates a non-positive resolution.
	ErrBadResolution = errors.New("pipeline: resolution must be positive")
)

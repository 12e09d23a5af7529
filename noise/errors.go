package noise

import "errors"

var (
	// ErrBadPercentile indicates a clamp percentile outside (0, 100].
	ErrBadPercentile = errors.New("noise: percentile must be in (0, 100]")
	// ErrUnsupportedMethod indicates a method tag this package cannot handle.
	ErrUnsupportedMethod = errors.New("noise: unsupported segmentation method")
)

package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/aence/hichew/contact"
	"github.com/aence/hichew/hic"
	"github.com/aence/hichew/search"
	"github.com/aence/hichew/segment"
)

// Default search parameters.
const (
	// DefaultExpected is the target segment size in base pairs.
	DefaultExpected = 120000.0
	// DefaultPercentile is the normalization clamp percentile.
	DefaultPercentile = 99.9
	// DefaultDensityEps is the stop tolerance for the density search.
	DefaultDensityEps = 1e-2
	// DefaultInsulationEps is the stop tolerance for the insulation scan.
	DefaultInsulationEps = 0.05
	// DefaultWindowEps is how many trailing boundary counts the
	// insulation early-stop rule averages over.
	DefaultWindowEps = 5
)

// MatrixProvider supplies one contact matrix per (stage, chromosome)
// pair. The pipeline consumes matrices read-only.
// contact.DirProvider is the standard implementation.
type MatrixProvider interface {
	Matrix(ctx context.Context, stage, chrom string) (*contact.Matrix, error)
}

var _ MatrixProvider = (*contact.DirProvider)(nil)

// Config parameterizes one orchestrator run.
type Config struct {
	// Method selects the pipeline variant and the oracle.
	Method hic.Method
	// Stage names the developmental stage whose matrices are searched.
	Stage string
	// Chromosomes lists the chromosomes to process; table rows are merged
	// in this order.
	Chromosomes []string
	// Grid is the initial parameter grid.
	Grid search.Grid
	// Resolution is the bin width in base pairs.
	Resolution int
	// Expected is the target segment size in base pairs.
	Expected float64
	// Percentile is the normalization clamp passed to the noise mask.
	Percentile float64
	// Eps is the stop tolerance: objective improvement for the density
	// refiner, relative count deviation for the insulation early stop.
	Eps float64
	// WindowEps sizes the trailing count window of the insulation
	// early-stop rule.
	WindowEps int
	// MaxInterTADSize and MaxTADSize are the exclusive segment size
	// bounds, in resolution units.
	MaxInterTADSize float64
	MaxTADSize      float64
	// BadBinDistance expands bad intervals when classifying insulation
	// boundaries.
	BadBinDistance int64
	// AdaptiveThreshold enables the noise-frequency-derived metric
	// threshold in the generator.
	AdaptiveThreshold bool
	// Workers bounds the chromosome worker pool; values below one mean
	// one chromosome at a time.
	Workers int
	// OutDir, when set, receives the combined and optimal-only result
	// tables as tab-delimited files.
	OutDir string
	// Log receives progress and diagnostics; nil discards them.
	Log *logrus.Entry
}

// DefaultConfig returns the standard configuration for method. Stage,
// Chromosomes, Grid and Resolution remain for the caller to fill in.
func DefaultConfig(method hic.Method) Config {
	eps := DefaultDensityEps
	if method == hic.Insulation {
		eps = DefaultInsulationEps
	}
	return Config{
		Method:          method,
		Expected:        DefaultExpected,
		Percentile:      DefaultPercentile,
		Eps:             eps,
		WindowEps:       DefaultWindowEps,
		MaxInterTADSize: segment.DefaultMaxInterTADSize,
		MaxTADSize:      segment.DefaultMaxTADSize,
		BadBinDistance:  segment.DefaultBadBinDistance,
		Workers:         1,
	}
}

func (c Config) validate() error {
	if !c.Method.Valid() {
		return segment.ErrUnsupportedMethod
	}
	if len(c.Chromosomes) == 0 {
		return ErrNoChromosomes
	}
	if c.Grid.Len() == 0 {
		return search.ErrEmptyGrid
	}
	if c.Resolution <= 0 {
		return ErrBadResolution
	}
	if c.Expected <= 0 {
		return ErrBadExpected
	}
	return nil
}

// Package segment binds the external segmentation oracles behind one
// call signature and turns raw oracle output into cleaned segmentations
// with summary statistics.
//
// The oracles themselves are black boxes. A density-score oracle
// (armatus, modularity) receives a gamma weight and returns a
// boundary-optimal partition of the good bins; an insulation oracle
// receives a window width and returns boundary calls annotated with a
// strength and an insulation value. Neither optimizer is implemented
// here; Oracle implementations are registered on an Adapter, and
// ExecOracle bridges to an external program over JSON on stdin/stdout.
//
// Generator is the per-parameter workhorse of the search: one call runs
// the oracle, applies the size bounds, scores every candidate with the
// noise metric, drops the suspects, and reports Stats (mean size,
// coverage, count, mean insulation) for the survivors.
package segment

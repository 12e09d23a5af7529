// Package pipeline sequences the per-chromosome parameter search and
// merges the outcomes into cross-chromosome result tables.
//
// Two pipelines exist, selected by the segmentation method. The
// density pipeline (armatus, modularity) runs the full adaptive search:
// noise mask, advisory range validation, upper and lower bisection
// narrowing, the bracketing grid scan, and the decimal zoom refinement.
// The insulation pipeline scans its window grid directly, tracking the
// expected-size and expected-count crossings, and stops early once both
// crossings are reached and the trailing boundary-count series has
// settled; the window space is small and discrete, so bisection buys
// nothing there.
//
// Chromosomes are independent and run on a bounded worker pool; each
// task accumulates its own result rows and the orchestrator merges them
// in chromosome input order once all tasks complete. A collapsed
// narrowing range is recoverable: the chromosome is skipped with an
// error log and the remaining chromosomes still finish.
package pipeline

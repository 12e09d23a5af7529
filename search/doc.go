// Package search implements the adaptive parameter search that locates
// the segmentation parameter whose mean domain size best matches a
// caller-supplied target.
//
// The search composes four stages over a Grid of candidate values:
//
//  1. ValidateRange probes ten extension steps beyond each grid edge and
//     reports, advisory only, whether the edges under-cover the
//     informative parameter range.
//  2. Narrow bisects one side of the grid by index until the segment
//     count stabilizes, shrinking the scan range.
//  3. FindGlobalOptimum scans the narrowed grid left to right, brackets
//     every crossing of the target mean size, and picks the candidate
//     with maximal coverage.
//  4. Refine zooms around the coarse optimum with a tenfold finer grid
//     per round until the objective stabilizes within eps.
//
// Every stage consumes an Evaluator, the per-parameter segmentation
// callback, so the package stays independent of matrix handling and
// oracle wiring. Each oracle call dominates cost; stage complexity is
// counted in Evaluate calls: Narrow needs O(log n) of them, a scan O(n),
// Refine 20 per zoom round.
package search

// Package hichew searches for the optimal parameter of a Hi-C TAD
// segmentation: the gamma of a density-score method or the window of an
// insulation-score method.
//
// A contact matrix is first normalized and scanned for technical-noise
// stripes (noise). A black-box oracle turns one (matrix, parameter) pair
// into a raw segmentation, which is cleaned by size bounds and a noise
// metric (segment). The adaptive search itself (search) validates the
// candidate grid, narrows it by bisection from both sides, brackets the
// parameter where the mean segment size crosses its expected value, and
// zooms in decimally until the objective stabilizes. The pipeline
// package runs the whole procedure per chromosome on a worker pool and
// assembles the result tables; cmd/hichew is the CLI around it.
//
// Packages:
//
//	contact/  - contact matrices and dense-TSV loading
//	hic/      - shared segmentation vocabulary (methods, segments)
//	noise/    - normalization, bad intervals, good-bin masks, noise metric
//	segment/  - oracle contract, external-oracle bridge, cleaned segmentations
//	search/   - grid, range validation, narrowing, bracketing, refinement
//	pipeline/ - per-chromosome orchestration and result tables
package hichew

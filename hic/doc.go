// Package hic holds the shared vocabulary of the Hi-C domain-search
// pipeline: the segmentation method tags and the half-open Segment type
// that all other packages exchange.
//
// Coordinate conventions:
//
//   - Every interval in this module is half-open: [Start, End).
//   - Density-score methods (Armatus, Modularity) work in bin indices.
//   - The Insulation method works in genomic coordinates (bin * resolution).
//
// The package is a dependency leaf: it imports nothing and is imported by
// contact, noise, segment, search and pipeline.
package hic

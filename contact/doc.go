// Package contact provides the ContactMatrix value type and loading of
// dense per-chromosome matrices from disk.
//
// A contact matrix is a square, symmetric, non-negative matrix of pairwise
// interaction frequencies between genomic bins; one bin spans Resolution
// base pairs. Matrices may contain zero rows/columns for unmeasured
// regions and NaN entries from balancing; downstream normalization deals
// with both.
//
// Loading accepts whitespace-delimited dense text, optionally
// gzip-compressed (".gz" suffix). DirProvider maps a (stage, chromosome)
// pair onto "<root>/<stage>/<chrom>.tsv[.gz]" and is the canonical
// matrix/metadata provider for the pipeline.
package contact

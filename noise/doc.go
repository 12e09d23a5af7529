// Package noise locates technically corrupted regions of a contact
// matrix and scores candidate segments against them.
//
// Two concerns live here:
//
//   - BuildMask normalizes one chromosome's contact matrix (percentile
//     clamp, natural log, minimum shift), finds maximal runs of zero-sum
//     bins and reports them as disjoint half-open bad intervals plus a
//     per-bin validity mask.
//
//   - FullyNoisy / Metric classify one candidate segment against the bad
//     intervals: a segment touching or swallowing a bad interval is a
//     hard reject (metric -1); otherwise density-score methods get a
//     continuous isolation metric, log(gap)²·log(length), that grows with
//     distance from the nearest bad stripe and with segment length.
//
// Interval units follow the segmentation method: bin indices for
// density-score methods, genomic coordinates for insulation. The bin
// mask is always in bin indices.
package noise

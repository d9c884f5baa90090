// Package stats computes descriptive statistics over genomic region sets:
// region widths, gaps between neighboring regions, per-region GC content,
// dinucleotide composition and distance to the nearest transcription start
// site.
//
// The functions only read the region set, assembly and index they are given,
// so one genome.Assembly can be shared by any number of concurrent calls.
// Per-region outputs follow Set.Chromosomes() order, then the per-chromosome
// region order.
//
// Error policy differs by function.  GCContent may skip unusable regions
// (GCOpts.IgnoreUnknownChroms) while CountDinucleotides never does.
// TSSDistances skips chromosomes missing from the index but fails on a region
// with no overlapping TSS.
package stats

// Package tss indexes transcription start site (TSS) annotations for
// overlap queries.  Each chromosome gets its own interval tree, built once;
// queries take O(log n + k) time for k hits.
package tss

import (
	"sort"

	"github.com/biogo/store/interval"
	gbinterval "github.com/grailbio/regionstats/interval"
)

// tssInterval adapts a TSS region to biogo's interval.IntInterface.  Ranges
// are half-open, matching BED.
type tssInterval struct {
	start, end int
	uid        uintptr
	region     gbinterval.Region
}

func (i tssInterval) Overlap(b interval.IntRange) bool {
	return i.end > b.Start && i.start < b.End
}

func (i tssInterval) ID() uintptr { return i.uid }

func (i tssInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.start, End: i.end}
}

// query is the IntOverlapper passed to IntTree.Get.
type query struct{ start, end int }

func (q query) Overlap(b interval.IntRange) bool {
	return q.end > b.Start && q.start < b.End
}

// Index maps chromosome names to interval trees of TSS regions.  It is
// read-only after construction and safe for concurrent queries.
type Index struct {
	trees map[string]*interval.IntTree
	n     int
}

// NewIndex builds an index over every region in set.  Zero-width regions
// (e.g. a TSS recorded as [pos, pos)) are stored as [pos, pos+1) so that they
// can still be hit by overlap queries.
func NewIndex(set gbinterval.Set) (*Index, error) {
	idx := &Index{trees: make(map[string]*interval.IntTree, len(set.Chromosomes()))}
	var uid uintptr
	for _, chrom := range set.Chromosomes() {
		tree := &interval.IntTree{}
		for _, r := range set.Regions(chrom) {
			start, end := int(r.Start), int(r.End)
			if end <= start {
				end = start + 1
			}
			uid++
			if err := tree.Insert(tssInterval{start: start, end: end, uid: uid, region: r}, true); err != nil {
				return nil, err
			}
			idx.n++
		}
		tree.AdjustRanges()
		idx.trees[chrom] = tree
	}
	return idx, nil
}

// NewIndexFromPath loads TSS regions from a BED file and indexes them.
func NewIndexFromPath(path string, opts gbinterval.ParseOpts) (*Index, error) {
	set, err := gbinterval.NewRegionSetFromPath(path, opts)
	if err != nil {
		return nil, err
	}
	return NewIndex(set)
}

// Query returns the TSS regions overlapping r, ordered by start and then end.
// ok is false iff the index has no tree for r.Chrom.  A query region with
// zero width is treated as covering the single position r.Start.
func (idx *Index) Query(r gbinterval.Region) (hits []gbinterval.Region, ok bool) {
	tree, ok := idx.trees[r.Chrom]
	if !ok {
		return nil, false
	}
	q := query{start: int(r.Start), end: int(r.End)}
	if q.end <= q.start {
		q.end = q.start + 1
	}
	for _, e := range tree.Get(q) {
		hits = append(hits, e.(tssInterval).region)
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Start != hits[j].Start {
			return hits[i].Start < hits[j].Start
		}
		return hits[i].End < hits[j].End
	})
	return hits, true
}

// HasChromosome checks whether any TSS was indexed on chrom.
func (idx *Index) HasChromosome(chrom string) bool {
	_, ok := idx.trees[chrom]
	return ok
}

// Len returns the number of indexed TSS regions.
func (idx *Index) Len() int { return idx.n }

package interval

import (
	"fmt"
	"sort"
)

// Set is the read-only view shared by RegionSet and SortedRegionSet.
type Set interface {
	// Chromosomes returns a copy of the chromosome names, in order of first
	// appearance.  Callers must not depend on this order for correctness.
	Chromosomes() []string
	// Regions returns the regions on chrom.  The returned slice must not be
	// modified.
	//
	// REQUIRES: chrom was obtained from Chromosomes() of the same set.  Regions
	// panics otherwise.
	Regions(chrom string) []Region
	// HasChromosome checks whether at least one region lies on chrom.
	HasChromosome(chrom string) bool
	// Len returns the total number of regions.
	Len() int
	// IsEmpty is equivalent to Len() == 0.
	IsEmpty() bool
	// IsSorted is true iff every per-chromosome region list is in
	// nondecreasing start order.
	IsSorted() bool
}

// regionMap is a chromosome-keyed map with region-list values.  Chromosome
// names are unique keys; chromNames records first-appearance order so that
// iteration is reproducible.
type regionMap struct {
	byChrom    map[string][]Region
	chromNames []string
	n          int
}

func newRegionMap() regionMap {
	return regionMap{byChrom: make(map[string][]Region)}
}

func (m *regionMap) add(r Region) {
	regions, ok := m.byChrom[r.Chrom]
	if !ok {
		m.chromNames = append(m.chromNames, r.Chrom)
	}
	m.byChrom[r.Chrom] = append(regions, r)
	m.n++
}

// Chromosomes implements Set.Chromosomes.
func (m *regionMap) Chromosomes() []string {
	return append([]string(nil), m.chromNames...)
}

// Regions implements Set.Regions.
func (m *regionMap) Regions(chrom string) []Region {
	regions, ok := m.byChrom[chrom]
	if !ok {
		panic(fmt.Sprintf("interval: chromosome %q not in region set", chrom))
	}
	return regions
}

// HasChromosome implements Set.HasChromosome.
func (m *regionMap) HasChromosome(chrom string) bool {
	_, ok := m.byChrom[chrom]
	return ok
}

// Len implements Set.Len.
func (m *regionMap) Len() int { return m.n }

// IsEmpty implements Set.IsEmpty.
func (m *regionMap) IsEmpty() bool { return m.n == 0 }

// RegionSet is a collection of regions grouped by chromosome, in input order.
// Thread compatible; it is never mutated after construction.
type RegionSet struct {
	regionMap
}

// SortedRegionSet is a RegionSet whose per-chromosome lists are in
// nondecreasing start order.  It can only be created by RegionSet.Sort.
type SortedRegionSet struct {
	regionMap
}

var (
	_ Set = (*RegionSet)(nil)
	_ Set = (*SortedRegionSet)(nil)
)

// NewRegionSetFromRegions creates an unsorted RegionSet holding the given
// regions in order.
func NewRegionSetFromRegions(regions []Region) *RegionSet {
	s := &RegionSet{regionMap: newRegionMap()}
	for _, r := range regions {
		s.add(r)
	}
	return s
}

// IsSorted implements Set.IsSorted.  A RegionSet is never flagged as sorted,
// even if its input happened to be in order.
func (s *RegionSet) IsSorted() bool { return false }

// Sort returns a sorted copy of s.  The sort is stable: regions with equal
// starts keep their original file order.  s itself is not modified.
func (s *RegionSet) Sort() *SortedRegionSet {
	sorted := &SortedRegionSet{regionMap: regionMap{
		byChrom:    make(map[string][]Region, len(s.byChrom)),
		chromNames: append([]string(nil), s.chromNames...),
		n:          s.n,
	}}
	for chrom, regions := range s.byChrom {
		dup := append([]Region(nil), regions...)
		sort.SliceStable(dup, func(i, j int) bool { return dup[i].Start < dup[j].Start })
		sorted.byChrom[chrom] = dup
	}
	return sorted
}

// IsSorted implements Set.IsSorted.
func (s *SortedRegionSet) IsSorted() bool { return true }

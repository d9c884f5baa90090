package stats

import "github.com/grailbio/regionstats/interval"

// NeighborDistances returns, for each pair of consecutive regions on the
// same chromosome, next.Start - prev.End.  Chromosomes with fewer than two
// regions contribute nothing.  Overlapping neighbors yield negative
// distances.
func NeighborDistances(set *interval.SortedRegionSet) []int64 {
	return neighborDistances(set)
}

// CalcNeighborDistances is NeighborDistances for callers that hold a generic
// interval.Set.  It returns ErrUnsorted unless set.IsSorted().
func CalcNeighborDistances(set interval.Set) ([]int64, error) {
	if !set.IsSorted() {
		return nil, ErrUnsorted
	}
	return neighborDistances(set), nil
}

func neighborDistances(set interval.Set) []int64 {
	var distances []int64
	for _, chrom := range set.Chromosomes() {
		regions := set.Regions(chrom)
		for i := 1; i < len(regions); i++ {
			distances = append(distances, int64(regions[i].Start)-int64(regions[i-1].End))
		}
	}
	return distances
}

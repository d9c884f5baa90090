package stats

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/regionstats/interval"
	"github.com/grailbio/regionstats/tss"
)

func midpoint(r interval.Region) uint32 {
	return r.Start + (r.End-r.Start)/2
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// TSSDistances returns, for each region, the smallest distance between the
// region's midpoint and the midpoint of a TSS overlapping it.  Regions on
// chromosomes that the index has no entry for are skipped.  A region on an
// indexed chromosome that overlaps no TSS yields a *NoTSSFoundError.
func TSSDistances(set interval.Set, idx *tss.Index) ([]uint32, error) {
	distances := make([]uint32, 0, set.Len())
	for _, chrom := range set.Chromosomes() {
		if !idx.HasChromosome(chrom) {
			log.Debug.Printf("stats: no TSS index for %s, skipping %d region(s)", chrom, len(set.Regions(chrom)))
			continue
		}
		for _, r := range set.Regions(chrom) {
			hits, _ := idx.Query(r)
			if len(hits) == 0 {
				return nil, &NoTSSFoundError{Region: r}
			}
			mid := midpoint(r)
			best := absDiff(mid, midpoint(hits[0]))
			for _, h := range hits[1:] {
				if d := absDiff(mid, midpoint(h)); d < best {
					best = d
				}
			}
			distances = append(distances, best)
		}
	}
	return distances, nil
}

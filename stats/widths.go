package stats

import "github.com/grailbio/regionstats/interval"

// Widths returns End - Start for every region in set.
func Widths(set interval.Set) []uint32 {
	widths := make([]uint32, 0, set.Len())
	for _, chrom := range set.Chromosomes() {
		for _, r := range set.Regions(chrom) {
			widths = append(widths, r.Width())
		}
	}
	return widths
}

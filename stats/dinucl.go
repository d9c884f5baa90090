package stats

import (
	"github.com/grailbio/regionstats/bases"
	"github.com/grailbio/regionstats/genome"
	"github.com/grailbio/regionstats/interval"
)

// DinucleotideCounts maps each dinucleotide to its number of occurrences.
// Despite the name of the statistic, values are raw counts; see Frequencies.
type DinucleotideCounts map[bases.Dinucleotide]uint64

// Total returns the sum of all counts.
func (c DinucleotideCounts) Total() uint64 {
	var total uint64
	for _, n := range c {
		total += n
	}
	return total
}

// Frequencies returns each count divided by Total.  All 16 dinucleotides are
// present in the result.  If Total is zero every frequency is zero.
func (c DinucleotideCounts) Frequencies() map[bases.Dinucleotide]float64 {
	total := c.Total()
	freqs := make(map[bases.Dinucleotide]float64, bases.NDinucleotide)
	for _, d := range bases.AllDinucleotides() {
		if total > 0 {
			freqs[d] = float64(c[d]) / float64(total)
		} else {
			freqs[d] = 0
		}
	}
	return freqs
}

// CountDinucleotides counts every overlapping window of two bases across all
// regions, case-insensitively.  Windows containing a base other than
// A/C/G/T are not counted.  Windows never span two regions.  Any sequence
// lookup failure aborts the computation.
func CountDinucleotides(set interval.Set, g *genome.Assembly) (DinucleotideCounts, error) {
	counts := make(DinucleotideCounts, bases.NDinucleotide)
	for _, chrom := range set.Chromosomes() {
		for _, r := range set.Regions(chrom) {
			seq, err := g.SequenceFor(r)
			if err != nil {
				return nil, &RegionError{Region: r, Err: err}
			}
			for i := 1; i < len(seq); i++ {
				if d, ok := bases.DinucleotideFromBytes(seq[i-1], seq[i]); ok {
					counts[d]++
				}
			}
		}
	}
	return counts, nil
}

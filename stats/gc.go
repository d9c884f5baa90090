package stats

import (
	"errors"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/regionstats/bases"
	"github.com/grailbio/regionstats/genome"
	"github.com/grailbio/regionstats/interval"
)

// GCOpts configures GCContent.
type GCOpts struct {
	// IgnoreUnknownChroms skips regions whose sequence can't be fetched
	// (unknown chromosome, out of bounds) or which have no bases.  Otherwise
	// the first such region aborts the computation.
	IgnoreUnknownChroms bool
	// Parallelism is the number of chromosome groups processed concurrently.
	// Values below 2 run sequentially.  Output order doesn't depend on it.
	Parallelism int
}

// DefaultGCOpts fails on the first unusable region, sequentially.
var DefaultGCOpts = GCOpts{Parallelism: 1}

// GCContent returns the fraction of G/C bases (case-insensitive) in each
// region.  Bases other than G and C, including N, count toward the
// denominator only.
func GCContent(set interval.Set, g *genome.Assembly, opts GCOpts) ([]float64, error) {
	chroms := set.Chromosomes()
	perChrom := make([][]float64, len(chroms))
	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	if parallelism > len(chroms) {
		parallelism = len(chroms)
	}
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(chroms)) / parallelism
		endIdx := ((jobIdx + 1) * len(chroms)) / parallelism
		for i := startIdx; i < endIdx; i++ {
			fracs, err := chromGCContent(set.Regions(chroms[i]), g, opts)
			if err != nil {
				return err
			}
			perChrom[i] = fracs
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fracs := make([]float64, 0, set.Len())
	for _, f := range perChrom {
		fracs = append(fracs, f...)
	}
	return fracs, nil
}

func chromGCContent(regions []interval.Region, g *genome.Assembly, opts GCOpts) ([]float64, error) {
	fracs := make([]float64, 0, len(regions))
	for _, r := range regions {
		seq, err := g.SequenceFor(r)
		if err == nil && len(seq) == 0 {
			err = &EmptyRegionError{Region: r}
		}
		if err != nil {
			if opts.IgnoreUnknownChroms {
				log.Debug.Printf("stats: skipping region %v: %v", r, err)
				continue
			}
			var empty *EmptyRegionError
			if errors.As(err, &empty) {
				return nil, err
			}
			return nil, &RegionError{Region: r, Err: err}
		}
		fracs = append(fracs, float64(bases.CountGC(seq))/float64(len(seq)))
	}
	return fracs, nil
}

// MeanGCContent returns the unweighted mean of GCContent over all regions
// that produced a value.
func MeanGCContent(set interval.Set, g *genome.Assembly, opts GCOpts) (float64, error) {
	fracs, err := GCContent(set, g, opts)
	if err != nil {
		return 0, err
	}
	if len(fracs) == 0 {
		return 0, errors.New("stats: no regions with GC content")
	}
	var sum float64
	for _, f := range fracs {
		sum += f
	}
	return sum / float64(len(fracs)), nil
}

package cmd

import (
	"fmt"
	"io"

	"github.com/grailbio/regionstats/bases"
	"github.com/grailbio/regionstats/genome"
	"github.com/grailbio/regionstats/interval"
	"github.com/grailbio/regionstats/stats"
	"github.com/grailbio/regionstats/tss"
)

// outputOpts are shared by every per-region statistic.
type outputOpts struct {
	summary bool
}

func writeValues(w io.Writer, values []float64, format string, opts outputOpts) error {
	if opts.summary {
		_, err := fmt.Fprintln(w, stats.Summarize(values))
		return err
	}
	for _, v := range values {
		if _, err := fmt.Fprintf(w, format+"\n", v); err != nil {
			return err
		}
	}
	return nil
}

func loadRegions(path string) (*interval.RegionSet, error) {
	return interval.NewRegionSetFromPath(path, interval.ParseOpts{SkipHeaders: true})
}

func widths(path string, w io.Writer, opts outputOpts) error {
	set, err := loadRegions(path)
	if err != nil {
		return err
	}
	raw := stats.Widths(set)
	values := make([]float64, len(raw))
	for i, v := range raw {
		values[i] = float64(v)
	}
	return writeValues(w, values, "%.0f", opts)
}

func neighborDistances(path string, w io.Writer, opts outputOpts) error {
	set, err := loadRegions(path)
	if err != nil {
		return err
	}
	raw := stats.NeighborDistances(set.Sort())
	values := make([]float64, len(raw))
	for i, v := range raw {
		values[i] = float64(v)
	}
	return writeValues(w, values, "%.0f", opts)
}

type gcOpts struct {
	outputOpts
	stats.GCOpts
	mean bool
}

func gcContent(path string, g *genome.Assembly, w io.Writer, opts gcOpts) error {
	set, err := loadRegions(path)
	if err != nil {
		return err
	}
	if opts.mean {
		mean, err := stats.MeanGCContent(set, g, opts.GCOpts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%g\n", mean)
		return err
	}
	fracs, err := stats.GCContent(set, g, opts.GCOpts)
	if err != nil {
		return err
	}
	return writeValues(w, fracs, "%g", opts.outputOpts)
}

func dinucleotides(path string, g *genome.Assembly, w io.Writer, freq bool) error {
	set, err := loadRegions(path)
	if err != nil {
		return err
	}
	counts, err := stats.CountDinucleotides(set, g)
	if err != nil {
		return err
	}
	freqs := counts.Frequencies()
	for _, d := range bases.AllDinucleotides() {
		if freq {
			_, err = fmt.Fprintf(w, "%v\t%g\n", d, freqs[d])
		} else {
			_, err = fmt.Fprintf(w, "%v\t%d\n", d, counts[d])
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func tssDistances(path string, idx *tss.Index, w io.Writer, opts outputOpts) error {
	set, err := loadRegions(path)
	if err != nil {
		return err
	}
	raw, err := stats.TSSDistances(set, idx)
	if err != nil {
		return err
	}
	values := make([]float64, len(raw))
	for i, v := range raw {
		values[i] = float64(v)
	}
	return writeValues(w, values, "%.0f", opts)
}

package stats_test

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/grailbio/regionstats/bases"
	"github.com/grailbio/regionstats/genome"
	"github.com/grailbio/regionstats/interval"
	"github.com/grailbio/regionstats/stats"
	"github.com/grailbio/regionstats/tss"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

// chr1: GCGC ATAT NNac gtGG CC
var testGenomeFASTA = ">chr1\nGCGCATATNNac\ngtGGCC\n>chr2 second\nAAAAACCCCC\n"

func newTestGenome(t *testing.T) *genome.Assembly {
	g, err := genome.New(strings.NewReader(testGenomeFASTA), genome.DefaultOpts)
	require.NoError(t, err)
	return g
}

func regionSet(regions ...interval.Region) *interval.RegionSet {
	return interval.NewRegionSetFromRegions(regions)
}

func TestWidths(t *testing.T) {
	set := regionSet(
		interval.Region{Chrom: "chr1", Start: 100, End: 200},
		interval.Region{Chrom: "chr2", Start: 5, End: 5},
		interval.Region{Chrom: "chr1", Start: 0, End: 1},
	)
	widths := stats.Widths(set)
	expect.EQ(t, len(widths), set.Len())
	expect.EQ(t, widths, []uint32{100, 1, 0})
	expect.EQ(t, len(stats.Widths(regionSet())), 0)
}

func TestNeighborDistances(t *testing.T) {
	bed := "chr1\t700\t900\n" +
		"chr1\t100\t200\n" +
		"chr1\t500\t650\n" +
		"chr2\t15\t30\n" +
		"chr2\t10\t20\n" +
		"chr3\t0\t10\n"
	set, err := interval.NewRegionSet(strings.NewReader(bed), interval.DefaultParseOpts)
	assert.NoError(t, err)

	_, err = stats.CalcNeighborDistances(set)
	expect.True(t, err == stats.ErrUnsorted, err)

	sorted := set.Sort()
	want := []int64{300, 50, -5}
	expect.EQ(t, stats.NeighborDistances(sorted), want)
	got, err := stats.CalcNeighborDistances(sorted)
	assert.NoError(t, err)
	expect.EQ(t, got, want)

	// A single region per chromosome has no neighbors.
	got, err = stats.CalcNeighborDistances(regionSet(interval.Region{Chrom: "chr1", Start: 0, End: 10}).Sort())
	assert.NoError(t, err)
	expect.EQ(t, len(got), 0)
}

func TestGCContent(t *testing.T) {
	g := newTestGenome(t)
	set := regionSet(
		interval.Region{Chrom: "chr1", Start: 0, End: 4},   // GCGC
		interval.Region{Chrom: "chr1", Start: 4, End: 8},   // ATAT
		interval.Region{Chrom: "chr1", Start: 8, End: 12},  // NNac
		interval.Region{Chrom: "chr1", Start: 10, End: 14}, // acgt
		interval.Region{Chrom: "chr2", Start: 0, End: 10},  // AAAAACCCCC
	)
	fracs, err := stats.GCContent(set, g, stats.DefaultGCOpts)
	assert.NoError(t, err)
	expect.EQ(t, fracs, []float64{1, 0, 0.25, 0.5, 0.5})
	for _, f := range fracs {
		expect.True(t, f >= 0 && f <= 1, f)
	}

	mean, err := stats.MeanGCContent(set, g, stats.DefaultGCOpts)
	assert.NoError(t, err)
	expect.EQ(t, mean, 0.45)
}

func TestGCContentErrors(t *testing.T) {
	g := newTestGenome(t)
	good := interval.Region{Chrom: "chr1", Start: 0, End: 4}
	tests := []struct {
		bad   interval.Region
		check func(error) bool
	}{
		{interval.Region{Chrom: "chr99", Start: 0, End: 4}, func(err error) bool {
			var target *genome.UnknownChromosomeError
			return errors.As(err, &target) && target.Chrom == "chr99"
		}},
		{interval.Region{Chrom: "chr2", Start: 5, End: 20}, func(err error) bool {
			var target *genome.OutOfBoundsError
			return errors.As(err, &target) && target.Len == 10
		}},
		{interval.Region{Chrom: "chr2", Start: 5, End: 5}, func(err error) bool {
			var target *stats.EmptyRegionError
			return errors.As(err, &target)
		}},
	}
	for _, tt := range tests {
		set := regionSet(good, tt.bad)
		_, err := stats.GCContent(set, g, stats.DefaultGCOpts)
		require.Error(t, err)
		expect.True(t, tt.check(err), tt.bad, err)

		fracs, err := stats.GCContent(set, g, stats.GCOpts{IgnoreUnknownChroms: true})
		assert.NoError(t, err)
		expect.EQ(t, fracs, []float64{1}, tt.bad)
	}

	_, err := stats.MeanGCContent(regionSet(interval.Region{Chrom: "chr99", Start: 0, End: 4}), g, stats.GCOpts{IgnoreUnknownChroms: true})
	expect.NotNil(t, err)
}

func TestGCContentParallel(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	const nChrom = 17
	var fasta strings.Builder
	for i := 0; i < nChrom; i++ {
		fmt.Fprintf(&fasta, ">chr%d\n", i)
		for j := 0; j < 1000; j++ {
			fasta.WriteByte("ACGTNacgt"[r.Intn(9)])
		}
		fasta.WriteByte('\n')
	}
	g, err := genome.New(strings.NewReader(fasta.String()), genome.DefaultOpts)
	assert.NoError(t, err)

	var regions []interval.Region
	for i := 0; i < 2000; i++ {
		start := uint32(r.Intn(990))
		regions = append(regions, interval.Region{
			Chrom: fmt.Sprintf("chr%d", r.Intn(nChrom)),
			Start: start,
			End:   start + 1 + uint32(r.Intn(10)),
		})
	}
	set := regionSet(regions...)
	want, err := stats.GCContent(set, g, stats.DefaultGCOpts)
	assert.NoError(t, err)
	expect.EQ(t, len(want), len(regions))
	for _, parallelism := range []int{0, 2, 5, nChrom, 100} {
		got, err := stats.GCContent(set, g, stats.GCOpts{Parallelism: parallelism})
		assert.NoError(t, err)
		expect.EQ(t, got, want, parallelism)
	}
}

func TestCountDinucleotides(t *testing.T) {
	g := newTestGenome(t)
	set := regionSet(
		interval.Region{Chrom: "chr1", Start: 0, End: 4},   // GCGC
		interval.Region{Chrom: "chr1", Start: 10, End: 14}, // acgt
	)
	counts, err := stats.CountDinucleotides(set, g)
	assert.NoError(t, err)
	expect.EQ(t, counts[bases.GC], uint64(2))
	expect.EQ(t, counts[bases.CG], uint64(2))
	expect.EQ(t, counts[bases.AC], uint64(1))
	expect.EQ(t, counts[bases.GT], uint64(1))
	expect.EQ(t, counts[bases.AA], uint64(0))
	// Every window is counted once: bases scanned minus number of regions.
	expect.EQ(t, counts.Total(), uint64(8-2))

	freqs := counts.Frequencies()
	expect.EQ(t, len(freqs), bases.NDinucleotide)
	var sum float64
	for _, f := range freqs {
		sum += f
	}
	expect.True(t, sum > 0.999999 && sum < 1.000001, sum)
	expect.EQ(t, freqs[bases.GC], 2.0/6)

	// Windows touching N are not counted.
	counts, err = stats.CountDinucleotides(regionSet(interval.Region{Chrom: "chr1", Start: 8, End: 12}), g)
	assert.NoError(t, err)
	expect.EQ(t, counts.Total(), uint64(1))
	expect.EQ(t, counts[bases.AC], uint64(1))

	// Zero-length and single-base regions have no windows.
	counts, err = stats.CountDinucleotides(regionSet(interval.Region{Chrom: "chr1", Start: 3, End: 3}, interval.Region{Chrom: "chr1", Start: 3, End: 4}), g)
	assert.NoError(t, err)
	expect.EQ(t, counts.Total(), uint64(0))
	for _, f := range counts.Frequencies() {
		expect.EQ(t, f, 0.0)
	}

	_, err = stats.CountDinucleotides(regionSet(interval.Region{Chrom: "chr1", Start: 0, End: 4}, interval.Region{Chrom: "chr99", Start: 0, End: 4}), g)
	var unknown *genome.UnknownChromosomeError
	expect.True(t, errors.As(err, &unknown), err)
}

func TestTSSDistances(t *testing.T) {
	idx, err := tss.NewIndex(regionSet(
		interval.Region{Chrom: "chr1", Start: 100, End: 101},
		interval.Region{Chrom: "chr1", Start: 140, End: 141},
		interval.Region{Chrom: "chr1", Start: 1000, End: 1010},
		interval.Region{Chrom: "chr2", Start: 0, End: 1},
	))
	assert.NoError(t, err)

	set := regionSet(
		interval.Region{Chrom: "chr1", Start: 90, End: 170},   // mid 130; TSS mids 100 and 140
		interval.Region{Chrom: "chr1", Start: 950, End: 1050}, // mid 1000; TSS mid 1005
		interval.Region{Chrom: "chrX", Start: 0, End: 10},     // not indexed
		interval.Region{Chrom: "chr2", Start: 0, End: 100},    // mid 50; TSS mid 0
	)
	dists, err := stats.TSSDistances(set, idx)
	assert.NoError(t, err)
	expect.EQ(t, dists, []uint32{10, 5, 50})

	_, err = stats.TSSDistances(regionSet(interval.Region{Chrom: "chr1", Start: 200, End: 300}), idx)
	var notFound *stats.NoTSSFoundError
	require.True(t, errors.As(err, &notFound), err)
	expect.EQ(t, notFound.Region, interval.Region{Chrom: "chr1", Start: 200, End: 300})
}

func TestSummarize(t *testing.T) {
	expect.EQ(t, stats.Summarize(nil), stats.Summary{})
	values := []float64{5, 1, 3, 2}
	s := stats.Summarize(values)
	expect.EQ(t, s, stats.Summary{N: 4, Min: 1, Max: 5, Mean: 2.75, Median: 2.5})
	expect.EQ(t, values, []float64{5, 1, 3, 2})
	expect.EQ(t, stats.Summarize([]float64{4, 1, 9}).Median, 4.0)
	expect.True(t, strings.HasPrefix(s.String(), "n\t4\n"), s.String())
}

package genome_test

import (
	"bytes"
	stderrors "errors"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/regionstats/genome"
	"github.com/grailbio/regionstats/interval"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

var fastaData = ">seq1\n" + "ACGTA\nCGTAC\nGT\n" + ">seq2 A viral sequence\n" + "ACGT\n" + "ACGT\n"

func TestSequenceFor(t *testing.T) {
	tests := []struct {
		r       interval.Region
		want    string
		unknown bool
		oob     bool
	}{
		{interval.Region{Chrom: "seq1", Start: 1, End: 2}, "C", false, false},
		{interval.Region{Chrom: "seq1", Start: 1, End: 6}, "CGTAC", false, false},
		{interval.Region{Chrom: "seq1", Start: 0, End: 12}, "ACGTACGTACGT", false, false},
		{interval.Region{Chrom: "seq1", Start: 10, End: 12}, "GT", false, false},
		{interval.Region{Chrom: "seq1", Start: 12, End: 12}, "", false, false},
		{interval.Region{Chrom: "seq2", Start: 0, End: 8}, "ACGTACGT", false, false},
		{interval.Region{Chrom: "seq2", Start: 2, End: 5}, "GTA", false, false},
		{interval.Region{Chrom: "seq0", Start: 0, End: 1}, "", true, false},
		{interval.Region{Chrom: "seq1", Start: 10, End: 13}, "", false, true},
		{interval.Region{Chrom: "seq1", Start: 4, End: 3}, "", false, true},
		{interval.Region{Chrom: "seq1", Start: 13, End: 13}, "", false, true},
	}
	a, err := genome.New(strings.NewReader(fastaData), genome.DefaultOpts)
	assert.NoError(t, err)
	for _, tt := range tests {
		got, err := a.SequenceFor(tt.r)
		var unknownErr *genome.UnknownChromosomeError
		var oobErr *genome.OutOfBoundsError
		expect.EQ(t, stderrors.As(err, &unknownErr), tt.unknown, tt.r)
		expect.EQ(t, stderrors.As(err, &oobErr), tt.oob, tt.r)
		expect.EQ(t, string(got), tt.want, tt.r)
	}
}

func TestAssemblyAccessors(t *testing.T) {
	a, err := genome.New(strings.NewReader(fastaData), genome.DefaultOpts)
	assert.NoError(t, err)
	expect.EQ(t, a.ChromNames(), []string{"seq1", "seq2"})
	expect.True(t, a.HasChromosome("seq2"))
	expect.False(t, a.HasChromosome("seq2 A viral sequence"))
	n, err := a.Len("seq1")
	assert.NoError(t, err)
	expect.EQ(t, n, uint64(12))
	_, err = a.Len("seq3")
	require.Error(t, err)
	expect.EQ(t, a.TotalLen(), uint64(20))
}

func TestDuplicateNames(t *testing.T) {
	data := ">chr1\nAAAA\n>chr2\nCC\n>chr1\nGGGGGG\n"
	a, err := genome.New(strings.NewReader(data), genome.DefaultOpts)
	assert.NoError(t, err)
	seq, err := a.SequenceFor(interval.Region{Chrom: "chr1", Start: 0, End: 6})
	assert.NoError(t, err)
	expect.EQ(t, string(seq), "GGGGGG")
	expect.EQ(t, a.ChromNames(), []string{"chr1", "chr2"})
	expect.EQ(t, a.TotalLen(), uint64(8))

	_, err = genome.New(strings.NewReader(data), genome.Opts{RejectDuplicates: true})
	var dupErr *genome.DuplicateError
	require.True(t, stderrors.As(err, &dupErr))
	expect.EQ(t, dupErr.Name, "chr1")
}

func TestMalformedFASTA(t *testing.T) {
	for _, data := range []string{"ACGT\n>chr1\nACGT\n", ">\nACGT\n", ">chr1\nAC\n> x\nGT\n"} {
		_, err := genome.New(strings.NewReader(data), genome.DefaultOpts)
		var fmtErr *genome.FormatError
		expect.True(t, stderrors.As(err, &fmtErr), data)
	}
}

func TestEmptySequenceRecord(t *testing.T) {
	a, err := genome.New(strings.NewReader(">empty\n>chr1\r\nAC\r\nGT\r\n"), genome.DefaultOpts)
	assert.NoError(t, err)
	n, err := a.Len("empty")
	assert.NoError(t, err)
	expect.EQ(t, n, uint64(0))
	seq, err := a.SequenceFor(interval.Region{Chrom: "chr1", Start: 0, End: 4})
	assert.NoError(t, err)
	expect.EQ(t, string(seq), "ACGT")
}

func TestNewFromPath(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	plainPath := filepath.Join(tmpdir, "ref.fa")
	assert.NoError(t, ioutil.WriteFile(plainPath, []byte(fastaData), 0600))

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(fastaData))
	assert.NoError(t, err)
	assert.NoError(t, gz.Close())
	gzPath := filepath.Join(tmpdir, "ref.fa.gz")
	assert.NoError(t, ioutil.WriteFile(gzPath, buf.Bytes(), 0600))

	for _, path := range []string{plainPath, gzPath} {
		a, err := genome.NewFromPath(path, genome.DefaultOpts)
		assert.NoError(t, err)
		seq, err := a.SequenceFor(interval.Region{Chrom: "seq1", Start: 3, End: 9})
		assert.NoError(t, err)
		expect.EQ(t, string(seq), "TACGTA")
	}

	_, err = genome.NewFromPath(filepath.Join(tmpdir, "missing.fa"), genome.DefaultOpts)
	require.Error(t, err)
	assert.HasSubstr(t, err.Error(), "missing.fa")
}

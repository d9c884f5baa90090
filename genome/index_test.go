package genome_test

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/regionstats/genome"
	"github.com/grailbio/regionstats/interval"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

const fastaIndex = "seq1\t12\t6\t5\t6\n" + "seq2\t8\t44\t4\t5\n"

func TestGenerateIndex(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, genome.GenerateIndex(&out, strings.NewReader(fastaData)))
	expect.EQ(t, out.String(), fastaIndex)
}

func TestGenerateIndexErrors(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, genome.GenerateIndex(&out, strings.NewReader("")))
	out.Reset()
	require.Error(t, genome.GenerateIndex(&out, strings.NewReader("ACGT\n>chr1\nACGT\n")))
}

func TestNewFromPathIndexed(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	path := filepath.Join(tmpdir, "ref.fa")
	assert.NoError(t, ioutil.WriteFile(path, []byte(fastaData), 0600))
	assert.NoError(t, ioutil.WriteFile(genome.IndexPath(path), []byte(fastaIndex), 0600))

	indexed, err := genome.NewFromPath(path, genome.DefaultOpts)
	assert.NoError(t, err)
	scanned, err := genome.NewFromPath(path, genome.Opts{IgnoreIndex: true})
	assert.NoError(t, err)
	expect.EQ(t, indexed.ChromNames(), scanned.ChromNames())
	for _, name := range scanned.ChromNames() {
		n, err := scanned.Len(name)
		assert.NoError(t, err)
		r := interval.Region{Chrom: name, Start: 0, End: uint32(n)}
		want, err := scanned.SequenceFor(r)
		assert.NoError(t, err)
		got, err := indexed.SequenceFor(r)
		assert.NoError(t, err)
		expect.EQ(t, string(got), string(want))
	}
}

func TestNewFromPathBadIndex(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	path := filepath.Join(tmpdir, "ref.fa")
	assert.NoError(t, ioutil.WriteFile(path, []byte(fastaData), 0600))
	// An unparseable index is ignored, and the FASTA is scanned instead.
	assert.NoError(t, ioutil.WriteFile(genome.IndexPath(path), []byte("not an index\n"), 0600))
	a, err := genome.NewFromPath(path, genome.DefaultOpts)
	assert.NoError(t, err)
	expect.EQ(t, a.TotalLen(), uint64(20))
}

func TestNewFromPathStaleIndex(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	path := filepath.Join(tmpdir, "ref.fa")
	// The index describes 10 bases per line, but the file was rewrapped to 5.
	assert.NoError(t, ioutil.WriteFile(path, []byte(">chr1\nGGGGG\nGGGGG\nGGGGG\nGGGGG\n"), 0600))
	assert.NoError(t, ioutil.WriteFile(genome.IndexPath(path), []byte("chr1\t20\t6\t10\t11\n"), 0600))
	a, err := genome.NewFromPath(path, genome.DefaultOpts)
	assert.NoError(t, err)
	seq, err := a.SequenceFor(interval.Region{Chrom: "chr1", Start: 0, End: 20})
	assert.NoError(t, err)
	expect.EQ(t, string(seq), strings.Repeat("G", 20))
}

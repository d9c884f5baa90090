// Package genome holds reference sequences in memory and answers
// region-slice queries against them.  Sequences are loaded from FASTA files;
// see http://www.htslib.org/doc/faidx.html.  Briefly, FASTA files consist of
// a number of named sequences that may be interrupted by newlines.  For
// example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Sequence names are the stretch of characters immediately after '>' up to
// the first whitespace.  For example, '>chr1 A viral sequence' becomes 'chr1'.
package genome

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/grailbio/base/log"
	"github.com/grailbio/regionstats/interval"
	"github.com/pkg/errors"
)

const (
	bufferInitSize = 1024 * 1024 * 300 // 300 MB
)

// UnknownChromosomeError is returned when a region's chromosome has no
// sequence in the assembly.
type UnknownChromosomeError struct {
	Chrom string
}

func (e *UnknownChromosomeError) Error() string {
	return fmt.Sprintf("genome: unknown chromosome %s", e.Chrom)
}

// OutOfBoundsError is returned when a region doesn't lie within [0, Len) of
// its chromosome.
type OutOfBoundsError struct {
	Region interval.Region
	Len    uint64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("genome: region %v out of bounds for %s with length %d", e.Region, e.Region.Chrom, e.Len)
}

// FormatError reports a malformed FASTA record.
type FormatError struct {
	// Path is empty when parsing from an io.Reader.
	Path string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("genome: malformed FASTA at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("genome: malformed FASTA at %s:%d: %s", e.Path, e.Line, e.Msg)
}

// DuplicateError is returned by New when Opts.RejectDuplicates is set and a
// sequence name appears twice.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("genome: duplicate sequence name %s", e.Name)
}

// Opts controls assembly loading.
type Opts struct {
	// RejectDuplicates turns a repeated sequence name into a *DuplicateError.
	// By default the last record with a given name wins.
	RejectDuplicates bool
	// IgnoreIndex disables use of a "<path>.fai" index in NewFromPath.
	IgnoreIndex bool
}

// DefaultOpts is the default loading behavior.
var DefaultOpts = Opts{}

// Assembly maps chromosome names to their full sequences.  It is read-only
// after construction and safe for concurrent use.
type Assembly struct {
	seqs      map[string][]byte
	seqNames  []string
	totalBase uint64
}

// addSeq stores seq under name, applying the duplicate-name policy.
func (a *Assembly) addSeq(name string, seq []byte, opts Opts) error {
	if prev, ok := a.seqs[name]; ok {
		if opts.RejectDuplicates {
			return &DuplicateError{Name: name}
		}
		log.Error.Printf("genome: duplicate sequence name %s, keeping the last one", name)
		a.totalBase -= uint64(len(prev))
	} else {
		a.seqNames = append(a.seqNames, name)
	}
	a.seqs[name] = seq
	a.totalBase += uint64(len(seq))
	return nil
}

func seqNameFromHeader(line []byte) string {
	if i := bytes.IndexAny(line, " \t"); i >= 0 {
		line = line[:i]
	}
	return string(line)
}

// New creates an Assembly holding all FASTA data from the given reader.
func New(r io.Reader, opts Opts) (*Assembly, error) {
	return scanFASTA(r, "", opts)
}

func scanFASTA(r io.Reader, path string, opts Opts) (*Assembly, error) {
	a := &Assembly{seqs: make(map[string][]byte)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)
	var (
		seqName string
		seq     []byte
		inSeq   bool
		lineIdx int
	)
	for scanner.Scan() {
		lineIdx++
		line := bytes.TrimRight(scanner.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			if inSeq { // We need to store the previous sequence first.
				if err := a.addSeq(seqName, seq, opts); err != nil {
					return nil, err
				}
			}
			seqName = seqNameFromHeader(line[1:])
			if seqName == "" {
				return nil, &FormatError{Path: path, Line: lineIdx, Msg: "empty sequence name"}
			}
			seq = nil
			inSeq = true
			continue
		}
		if !inSeq {
			return nil, &FormatError{Path: path, Line: lineIdx, Msg: "sequence data before the first '>' header"}
		}
		seq = append(seq, line...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "couldn't read FASTA data %s", path)
	}
	if inSeq {
		if err := a.addSeq(seqName, seq, opts); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// SequenceFor returns the bases of r, i.e. seq[r.Start:r.End] for r.Chrom.
// The result aliases the assembly's storage and must not be modified.  An
// empty region within bounds yields an empty slice.
func (a *Assembly) SequenceFor(r interval.Region) ([]byte, error) {
	s, ok := a.seqs[r.Chrom]
	if !ok {
		return nil, &UnknownChromosomeError{Chrom: r.Chrom}
	}
	if r.Start > r.End || uint64(r.End) > uint64(len(s)) {
		return nil, &OutOfBoundsError{Region: r, Len: uint64(len(s))}
	}
	return s[r.Start:r.End:r.End], nil
}

// HasChromosome checks whether the assembly holds a sequence named chrom.
func (a *Assembly) HasChromosome(chrom string) bool {
	_, ok := a.seqs[chrom]
	return ok
}

// Len returns the length of the given sequence.
func (a *Assembly) Len(chrom string) (uint64, error) {
	s, ok := a.seqs[chrom]
	if !ok {
		return 0, &UnknownChromosomeError{Chrom: chrom}
	}
	return uint64(len(s)), nil
}

// ChromNames returns the names of all sequences, in order of first appearance
// in the FASTA file.
func (a *Assembly) ChromNames() []string {
	return a.seqNames
}

// TotalLen returns the total number of bases across all sequences.
func (a *Assembly) TotalLen() uint64 {
	return a.totalBase
}

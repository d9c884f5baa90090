package genome

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
)

// Index files consist of one tab-separated line per sequence in the associated
// FASTA file.  The format is: "<sequence name>\t<length>\t<byte
// offset>\t<bases per line>\t<bytes per line>".
// For example: "chr3\t12345\t9000\t80\t81".
var indexRegExp = regexp.MustCompile(`^(\S+)\t(\d+)\t(\d+)\t(\d+)\t(\d+)`)

type indexEntry struct {
	name      string
	length    uint64
	offset    uint64
	lineBase  uint64
	lineWidth uint64
}

// readIndex parses a .fai file.  Entries are returned in increasing offset
// order.
func readIndex(index io.Reader) ([]indexEntry, error) {
	var entries []indexEntry
	scanner := bufio.NewScanner(index)
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		matches := indexRegExp.FindStringSubmatch(scanner.Text())
		if len(matches) != 6 {
			return nil, fmt.Errorf("genome: invalid index line %d: %s", lineIdx, scanner.Text())
		}
		ent := indexEntry{name: matches[1]}
		ent.length, _ = strconv.ParseUint(matches[2], 10, 64)
		ent.offset, _ = strconv.ParseUint(matches[3], 10, 64)
		ent.lineBase, _ = strconv.ParseUint(matches[4], 10, 64)
		ent.lineWidth, _ = strconv.ParseUint(matches[5], 10, 64)
		if ent.length > 0 && (ent.lineBase == 0 || ent.lineWidth < ent.lineBase) {
			return nil, fmt.Errorf("genome: invalid line geometry on index line %d: %s", lineIdx, scanner.Text())
		}
		entries = append(entries, ent)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].offset < entries[j].offset
	})
	return entries, nil
}

func isLineTerminator(b byte) bool { return b == '\n' || b == '\r' }

// newEagerIndexed reads every sequence listed in index from fastaR into
// memory, using the index's line geometry to skip headers and line
// terminators without scanning them.  It fails if the bytes found don't
// match that geometry, e.g. when the FASTA was rewrapped after indexing.
func newEagerIndexed(fastaR io.Reader, index []indexEntry, opts Opts) (*Assembly, error) {
	a := &Assembly{seqs: make(map[string][]byte, len(index))}
	var fileOffset uint64
	bufR := bufio.NewReaderSize(fastaR, 1<<20)
	for _, entry := range index {
		if entry.offset < fileOffset {
			return nil, fmt.Errorf("genome: index entry %s overlaps the previous sequence", entry.name)
		}
		n, err := bufR.Discard(int(entry.offset - fileOffset))
		fileOffset += uint64(n)
		if err != nil {
			return nil, fmt.Errorf("genome: seeking to %s: %v", entry.name, err)
		}
		seq := make([]byte, entry.length)
		var basesRead uint64
		var term []byte
		if entry.length > 0 {
			term = make([]byte, entry.lineWidth-entry.lineBase)
		}
		for basesRead < entry.length {
			// Compute length of the next line (may be partial if it's the last).
			nextBasesRead := basesRead + entry.lineBase
			if nextBasesRead > entry.length {
				nextBasesRead = entry.length
			}
			line := seq[basesRead:nextBasesRead]
			n, err := io.ReadFull(bufR, line)
			fileOffset += uint64(n)
			if err != nil {
				return nil, fmt.Errorf("genome: reading %s: %v", entry.name, err)
			}
			if i := bytes.IndexAny(line, "\r\n>"); i >= 0 {
				return nil, fmt.Errorf("genome: index doesn't match FASTA layout: %s has %q at byte %d", entry.name, line[i], fileOffset-uint64(n)+uint64(i))
			}
			basesRead = nextBasesRead

			// Skip line terminator(s) unless we're at the end of the sequence.
			if basesRead < entry.length {
				n, err := io.ReadFull(bufR, term)
				fileOffset += uint64(n)
				if err != nil {
					return nil, fmt.Errorf("genome: seeking line in %s: %v", entry.name, err)
				}
				for _, b := range term {
					if !isLineTerminator(b) {
						return nil, fmt.Errorf("genome: index doesn't match FASTA layout: %s line is longer than %d bases", entry.name, entry.lineBase)
					}
				}
			}
		}
		// The sequence must end where the index says it does.  An empty one may
		// be followed directly by the next header.
		if next, err := bufR.Peek(1); err == nil && !isLineTerminator(next[0]) && !(entry.length == 0 && next[0] == '>') {
			return nil, fmt.Errorf("genome: index doesn't match FASTA layout: %s is longer than %d bases", entry.name, entry.length)
		}
		if err := a.addSeq(entry.name, seq, opts); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// GenerateIndex generates an index (*.fai) from FASTA.  The index lets
// NewFromPath load the FASTA file without scanning it line by line.
//
// The index format is defined by "samtool faidx"
// (http://www.htslib.org/doc/faidx.html).
func GenerateIndex(out io.Writer, in io.Reader) (err error) {
	var (
		tsvOut      = tsv.NewWriter(out)
		r           = bufio.NewReader(in)
		seqName     string
		seqStartOff int64
		totalBases  int
		lineBases   int
		lineWidth   int
		cumByte     int64
		eof         bool
	)

	setErr := func(e error) {
		if e != nil && err == nil {
			err = e
		}
	}
	flush := func() {
		tsvOut.WriteString(seqName)
		tsvOut.WriteInt64(int64(totalBases))
		tsvOut.WriteInt64(seqStartOff)
		tsvOut.WriteInt64(int64(lineBases))
		tsvOut.WriteInt64(int64(lineWidth))
		setErr(tsvOut.EndLine())
	}
	for !eof && err == nil {
		fullLine, e := r.ReadBytes('\n')
		if e == io.EOF { // Process fullLine, then exit the loop
			eof = true
		} else if e != nil {
			setErr(e)
		}
		cumByte += int64(len(fullLine))
		line := bytes.TrimRight(fullLine, "\r\n")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			if seqName != "" {
				flush()
			}
			if seqName = seqNameFromHeader(line[1:]); seqName == "" {
				setErr(errors.E(errors.Invalid, "malformed FASTA file: empty sequence name"))
				break
			}
			seqStartOff = cumByte
			lineWidth = 0
			lineBases = 0
			totalBases = 0
			continue
		}
		if seqName == "" {
			setErr(errors.E(errors.Invalid, "malformed FASTA file: sequence data before the first header"))
			break
		}
		if lineWidth == 0 {
			lineWidth = len(fullLine)
			lineBases = len(line)
		}
		totalBases += len(line)
	}
	if cumByte == 0 {
		setErr(errors.E(errors.Invalid, "empty FASTA file"))
	}
	if err == nil && seqName != "" {
		flush()
	}
	setErr(tsvOut.Flush())
	return
}

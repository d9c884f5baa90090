package interval

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

// FormatError reports a malformed BED record.
type FormatError struct {
	// Path is empty when parsing from an io.Reader.
	Path string
	// Line is 1-based.
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("interval: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("interval: %s:%d: %s", e.Path, e.Line, e.Msg)
}

// ParseError reports a start or end column which isn't an unsigned 32-bit
// integer.
type ParseError struct {
	Path  string
	Line  int
	Field string // "start" or "end"
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return fmt.Sprintf("interval: %s: invalid %s coordinate %q: %v", loc, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseOpts defines behavior of this package's BED-loading functions.
type ParseOpts struct {
	// SkipHeaders causes lines starting with '#', "track" or "browser" to be
	// ignored.  By default they are parsed like any other record, and
	// (usually) rejected.
	SkipHeaders bool
	// Strict rejects records with start > end.
	Strict bool
}

// DefaultParseOpts accepts exactly what the three-column BED contract allows.
var DefaultParseOpts = ParseOpts{}

const bedTokens = 3

// getTokens saves up to the first len(tokens) tab-separated fields of curLine
// to tokens, returning the number of fields saved.  Unlike whitespace
// tokenization, empty fields are preserved, so "chr1\t\t5" yields three
// tokens with an empty second one.
func getTokens(tokens [][]byte, curLine []byte) int {
	pos := 0
	for tokenIdx := range tokens {
		tabPos := bytes.IndexByte(curLine[pos:], '\t')
		if tabPos == -1 {
			tokens[tokenIdx] = curLine[pos:]
			return tokenIdx + 1
		}
		tokens[tokenIdx] = curLine[pos : pos+tabPos]
		pos += tabPos + 1
	}
	return len(tokens)
}

func isHeaderLine(line []byte) bool {
	return line[0] == '#' || bytes.HasPrefix(line, []byte("track")) || bytes.HasPrefix(line, []byte("browser"))
}

func parseCoord(path string, lineIdx int, field string, token []byte) (uint32, error) {
	v, err := strconv.ParseUint(gunsafe.BytesToString(token), 10, 32)
	if err != nil {
		return 0, &ParseError{Path: path, Line: lineIdx, Field: field, Value: string(token), Err: err}
	}
	return uint32(v), nil
}

func scanRegionSet(scanner *bufio.Scanner, path string, opts ParseOpts) (*RegionSet, error) {
	set := &RegionSet{regionMap: newRegionMap()}
	var tokens [bedTokens][]byte
	// Chromosome names repeat on consecutive lines, so the previous name's
	// string is reused instead of allocating a copy per line.
	var prevChr string
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		curLine := bytes.TrimRight(scanner.Bytes(), "\r")
		if len(curLine) == 0 {
			continue
		}
		if opts.SkipHeaders && isHeaderLine(curLine) {
			continue
		}
		if nToken := getTokens(tokens[:], curLine); nToken < bedTokens {
			return nil, &FormatError{Path: path, Line: lineIdx,
				Msg: fmt.Sprintf("found %d field(s), need at least chrom, start and end", nToken)}
		}
		start, err := parseCoord(path, lineIdx, "start", tokens[1])
		if err != nil {
			return nil, err
		}
		end, err := parseCoord(path, lineIdx, "end", tokens[2])
		if err != nil {
			return nil, err
		}
		if opts.Strict && start > end {
			return nil, &FormatError{Path: path, Line: lineIdx,
				Msg: fmt.Sprintf("start %d is past end %d", start, end)}
		}
		// The scanner overwrites its buffer on the next Scan, so the name has to
		// be copied before it's retained.
		if gunsafe.BytesToString(tokens[0]) != prevChr {
			prevChr = string(tokens[0])
		}
		set.add(Region{Chrom: prevChr, Start: start, End: end})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, fmt.Sprintf("interval: reading %s after line %d", path, lineIdx))
	}
	return set, nil
}

// NewRegionSet loads an unsorted RegionSet from BED-formatted data.  Only the
// first three columns are read.
func NewRegionSet(reader io.Reader, opts ParseOpts) (*RegionSet, error) {
	return scanRegionSet(bufio.NewScanner(reader), "", opts)
}

// NewRegionSetFromPath is a wrapper for NewRegionSet that takes a path
// instead of an io.Reader.  Gzip-compressed input is detected by file
// extension.
func NewRegionSetFromPath(path string, opts ParseOpts) (set *RegionSet, err error) {
	ctx := vcontext.Background()
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return nil, errors.E(err, path)
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(reader); err != nil {
			return nil, errors.E(err, path)
		}
		defer gz.Close()
		reader = gz
	}
	if set, err = scanRegionSet(bufio.NewScanner(reader), path, opts); err != nil {
		return nil, err
	}
	log.Debug.Printf("%s: loaded %d region(s) on %d chromosome(s)", path, set.Len(), len(set.chromNames))
	return set, nil
}

package genome

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"v.io/x/lib/vlog"
)

// IndexPath returns the conventional location of the .fai index for a FASTA
// file.
func IndexPath(fastaPath string) string { return fastaPath + ".fai" }

func openIndex(ctx context.Context, fastaPath string) ([]indexEntry, error) {
	f, err := file.Open(ctx, IndexPath(fastaPath))
	if err != nil {
		return nil, err
	}
	defer f.Close(ctx)
	return readIndex(f.Reader(ctx))
}

func loadIndexed(ctx context.Context, path string, index []indexEntry, opts Opts) (a *Assembly, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return newEagerIndexed(in.Reader(ctx), index, opts)
}

// NewFromPath is a wrapper for New that takes a path instead of an
// io.Reader.  Gzip-compressed FASTA is detected by file extension.  For
// uncompressed FASTA with a "<path>.fai" index next to it, sequences are
// loaded through the index unless opts.IgnoreIndex is set.  An index that
// can't be parsed or doesn't match the FASTA layout is ignored, and the file
// is scanned instead.
func NewFromPath(path string, opts Opts) (a *Assembly, err error) {
	ctx := vcontext.Background()
	compressed := fileio.DetermineType(path) == fileio.Gzip
	if !compressed && !opts.IgnoreIndex {
		if index, ierr := openIndex(ctx, path); ierr == nil {
			vlog.VI(1).Infof("%s: loading %d sequence(s) through %s", path, len(index), IndexPath(path))
			if a, ierr = loadIndexed(ctx, path, index, opts); ierr == nil {
				return a, nil
			}
			var dup *DuplicateError
			if stderrors.As(ierr, &dup) {
				return nil, ierr
			}
			log.Error.Printf("%s: ignoring %s: %v", path, IndexPath(path), ierr)
		} else if !errors.Is(errors.NotExist, ierr) {
			log.Error.Printf("%s: ignoring unreadable index: %v", path, ierr)
		}
	}
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, errors.E(err, path)
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(in.Reader(ctx))
	if compressed {
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(reader); err != nil {
			return nil, errors.E(err, path)
		}
		defer gz.Close()
		reader = gz
	}
	if a, err = scanFASTA(reader, path, opts); err != nil {
		return nil, err
	}
	vlog.VI(1).Infof("%s: loaded %d sequence(s), %d bases", path, len(a.seqNames), a.totalBase)
	return a, nil
}

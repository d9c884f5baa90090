package cmd

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/regionstats/genome"
)

// faidx writes the .fai index of the FASTA file at fastaPath next to it.
func faidx(fastaPath string) (err error) {
	if fileio.DetermineType(fastaPath) == fileio.Gzip {
		return fmt.Errorf("%s: can't index a gzip-compressed FASTA file", fastaPath)
	}
	ctx := vcontext.Background()
	in, err := file.Open(ctx, fastaPath)
	if err != nil {
		return errors.E(err, fastaPath)
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	indexPath := genome.IndexPath(fastaPath)
	out, err := file.Create(ctx, indexPath)
	if err != nil {
		return errors.E(err, indexPath)
	}
	if err = genome.GenerateIndex(out.Writer(ctx), in.Reader(ctx)); err != nil {
		_ = out.Close(ctx)
		return errors.E(err, fastaPath)
	}
	log.Printf("%s: wrote %s", fastaPath, indexPath)
	return out.Close(ctx)
}

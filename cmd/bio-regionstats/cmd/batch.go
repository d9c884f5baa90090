package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// bedGlob selects the inputs of a directory run: plain and compressed BED.
const bedGlob = "*.bed*"

// listInputs expands path into the BED files to process.  A regular file
// stands for itself.  A directory expands to its *.bed* entries in sorted
// order; dir is true in that case.
func listInputs(path string) (paths []string, dir bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, err
	}
	if !info.IsDir() {
		return []string{path}, false, nil
	}
	matches, err := filepath.Glob(filepath.Join(path, bedGlob))
	if err != nil {
		return nil, true, err
	}
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, true, nil
}

// fileFunc computes one statistic for the BED file at path and writes it to
// w.
type fileFunc func(path string, w io.Writer) error

// batchOpts controls runBatch.
type batchOpts struct {
	// parallelism is the number of files processed at once in directory
	// mode.  Values below 2 run sequentially.
	parallelism int
	// label precedes each file's output with a "# <path>" line in directory
	// mode.  Off by default so that output is one value per line.
	label bool
}

// runBatch applies fn to every input named by path and copies the results
// to out in input order.  With a single file, fn's error is returned.  In
// directory mode a failing file is logged and skipped, and a directory where
// nothing succeeds is only a warning.
func runBatch(path string, opts batchOpts, out io.Writer, fn fileFunc) error {
	paths, dir, err := listInputs(path)
	if err != nil {
		return err
	}
	if !dir {
		return fn(paths[0], out)
	}
	if len(paths) == 0 {
		log.Error.Printf("%s: no %s files found", path, bedGlob)
		return nil
	}
	parallelism := opts.parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	if parallelism > len(paths) {
		parallelism = len(paths)
	}
	results := make([]bytes.Buffer, len(paths))
	errs := make([]error, len(paths))
	log.Debug.Printf("%s: processing %d file(s), parallelism %d", path, len(paths), parallelism)
	err = traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(paths)) / parallelism
		endIdx := ((jobIdx + 1) * len(paths)) / parallelism
		for i := startIdx; i < endIdx; i++ {
			errs[i] = fn(paths[i], &results[i])
		}
		return nil
	})
	if err != nil {
		return err
	}
	nOK := 0
	for i, p := range paths {
		if errs[i] != nil {
			log.Error.Printf("%s: %v, skipping", p, errs[i])
			continue
		}
		nOK++
		if opts.label {
			if _, err := fmt.Fprintf(out, "# %s\n", p); err != nil {
				return err
			}
		}
		if _, err := results[i].WriteTo(out); err != nil {
			return err
		}
	}
	if nOK == 0 {
		log.Error.Printf("%s: all %d file(s) failed", path, len(paths))
	}
	return nil
}

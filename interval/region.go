package interval

import "fmt"

// Region is a half-open interval [Start, End) on chromosome Chrom, with
// 0-based coordinates as in BED.  Start <= End is expected but not enforced
// unless ParseOpts.Strict is set.
type Region struct {
	Chrom string
	Start uint32
	End   uint32
}

// Width returns End - Start.
func (r Region) Width() uint32 { return r.End - r.Start }

// Overlaps checks whether r and o share at least one position.
func (r Region) Overlaps(o Region) bool {
	return r.Chrom == o.Chrom && r.Start < o.End && o.Start < r.End
}

// String formats the region as "chrom:start-end", with the BED coordinates
// unchanged.
func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

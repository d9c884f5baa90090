package stats

import (
	"errors"
	"fmt"

	"github.com/grailbio/regionstats/interval"
)

// ErrUnsorted is returned when a computation that needs start-sorted
// regions is given an unsorted set.  Sort the set with RegionSet.Sort first.
var ErrUnsorted = errors.New("stats: region set must be sorted")

// EmptyRegionError is returned for a zero-length region where a per-base
// fraction would be 0/0.
type EmptyRegionError struct {
	Region interval.Region
}

func (e *EmptyRegionError) Error() string {
	return fmt.Sprintf("stats: region %v has no bases", e.Region)
}

// RegionError attaches the offending region to a sequence-lookup failure.
type RegionError struct {
	Region interval.Region
	Err    error
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("stats: getting sequence for region %v: %v", e.Region, e.Err)
}

func (e *RegionError) Unwrap() error { return e.Err }

// NoTSSFoundError is returned when a region on an indexed chromosome
// overlaps no TSS.
type NoTSSFoundError struct {
	Region interval.Region
}

func (e *NoTSSFoundError) Error() string {
	return fmt.Sprintf("stats: no TSS found for region %v, check your index", e.Region)
}

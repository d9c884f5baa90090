package stats

import (
	"fmt"
	"sort"
)

// Summary describes the distribution of a list of values.  All fields are
// zero when N is zero.
type Summary struct {
	N                      int
	Min, Max, Mean, Median float64
}

// String renders s as tab-separated name/value pairs.
func (s Summary) String() string {
	return fmt.Sprintf("n\t%d\nmin\t%g\nmax\t%g\nmean\t%g\nmedian\t%g", s.N, s.Min, s.Max, s.Mean, s.Median)
}

// Summarize computes a Summary of values.  values is not modified.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	n := len(sorted)
	s := Summary{
		N:    n,
		Min:  sorted[0],
		Max:  sorted[n-1],
		Mean: sum / float64(n),
	}
	if n%2 == 1 {
		s.Median = sorted[n/2]
	} else {
		s.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return s
}

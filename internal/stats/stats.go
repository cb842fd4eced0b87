// Package stats provides the mean, median, and mode reductions used by reports.
package stats

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownStat is returned by ParseStat for an unrecognized name.
var ErrUnknownStat = errors.New("unknown statistic")

// Mean returns the arithmetic mean of xs, or 0 when xs is empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Median returns the median of xs, or 0 when xs is empty. For an even number
// of values it is the mean of the two middle values.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	m := n / 2
	if n%2 == 1 {
		return sorted[m]
	}
	return (sorted[m-1] + sorted[m]) / 2
}

// Mode returns every value that occurs with the highest frequency, in
// ascending order. It returns nil when xs is empty.
func Mode(xs []float64) []float64 {
	if len(xs) == 0 {
		return nil
	}
	freq := make(map[float64]int, len(xs))
	best := 0
	for _, x := range xs {
		freq[x]++
		if freq[x] > best {
			best = freq[x]
		}
	}
	var modes []float64
	for x, n := range freq {
		if n == best {
			modes = append(modes, x)
		}
	}
	slices.Sort(modes)
	return modes
}

// Stat selects one of the three reductions.
type Stat int

const (
	StatMean Stat = iota
	StatMedian
	StatMode
)

// Stats lists every statistic.
var Stats = []Stat{StatMean, StatMedian, StatMode}

func (s Stat) String() string {
	switch s {
	case StatMean:
		return "Mean"
	case StatMedian:
		return "Median"
	case StatMode:
		return "Mode"
	}
	return fmt.Sprintf("Stat(%d)", int(s))
}

// ParseStat parses "mean", "median", or "mode" (case-insensitive).
func ParseStat(s string) (Stat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mean", "average", "":
		return StatMean, nil
	case "median":
		return StatMedian, nil
	case "mode":
		return StatMode, nil
	}
	return StatMean, fmt.Errorf("%w: %q", ErrUnknownStat, s)
}

// Apply reduces xs. Mean and Median yield a float64; Mode yields a []float64
// that is never nil, so it serializes as an empty list.
func (s Stat) Apply(xs []float64) any {
	switch s {
	case StatMedian:
		return Median(xs)
	case StatMode:
		if m := Mode(xs); m != nil {
			return m
		}
		return []float64{}
	default:
		return Mean(xs)
	}
}

// Floats converts integer counts to float64 values.
func Floats(counts []int) []float64 {
	xs := make([]float64, len(counts))
	for i, c := range counts {
		xs[i] = float64(c)
	}
	return xs
}

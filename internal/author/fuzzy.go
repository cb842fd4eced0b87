package author

import (
	"math"
	"strings"

	"github.com/matsen/bibstat/internal/reference"
)

// PartialRatio scores how well the shorter string aligns with the best window
// of the longer one, from 0 to 100. The score is 100 exactly when the shorter
// string occurs in the longer one. Comparison is by rune and case-sensitive.
func PartialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	if strings.Contains(string(long), string(short)) {
		return 100
	}

	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		if r := ratio(short, long[i:i+len(short)]); r > best {
			best = r
		}
	}
	return min(99, int(math.Round(100*best)))
}

// ratio is the share of runes in a longest common subsequence of a and b.
func ratio(a, b []rune) float64 {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := range a {
		for j := range b {
			switch {
			case a[i] == b[j]:
				cur[j+1] = prev[j] + 1
			case prev[j+1] >= cur[j]:
				cur[j+1] = prev[j+1]
			default:
				cur[j+1] = cur[j]
			}
		}
		prev, cur = cur, prev
	}
	return 2 * float64(prev[len(b)]) / float64(len(a)+len(b))
}

// PartialMatch returns the names that contain query, both compared in lower
// case. Names are returned as given, in input order.
func PartialMatch(query string, names []string) []string {
	q := reference.Lower(query)
	var matched []string
	for _, n := range names {
		if PartialRatio(q, reference.Lower(n)) == 100 {
			matched = append(matched, n)
		}
	}
	return matched
}

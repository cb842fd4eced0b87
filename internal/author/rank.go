package author

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matsen/bibstat/internal/reference"
)

type candidate struct {
	name  string
	parts parts
}

// tier classifies a candidate against the lowercased query. Lower tiers rank
// first.
//
//	0: the last token starts with the query
//	1: the first token starts with the query
//	2: a three-token name whose middle token starts with the query
//	3: the last token contains the query
//	4: everything else
//
// Tiers 1 and 4 sort by (first, last), tier 2 by (middle, last, first) and
// the rest by (last, first).
func tier(c candidate, q string) int {
	switch {
	case strings.HasPrefix(reference.Lower(c.parts.last()), q):
		return 0
	case strings.HasPrefix(reference.Lower(c.parts.first()), q):
		return 1
	}
	if m, ok := c.parts.middle(); ok && strings.HasPrefix(reference.Lower(m), q) {
		return 2
	}
	if strings.Contains(reference.Lower(c.parts.last()), q) {
		return 3
	}
	return 4
}

// order compares two candidates of the same tier. Keys compare the tokens as
// written, so case matters within a tier.
func order(t int, a, b candidate) int {
	switch t {
	case 1, 4:
		return cmp.Or(
			strings.Compare(a.parts.first(), b.parts.first()),
			strings.Compare(a.parts.last(), b.parts.last()),
		)
	case 2:
		am, _ := a.parts.middle()
		bm, _ := b.parts.middle()
		return cmp.Or(
			strings.Compare(am, bm),
			strings.Compare(a.parts.last(), b.parts.last()),
			strings.Compare(a.parts.first(), b.parts.first()),
		)
	default:
		return cmp.Or(
			strings.Compare(a.parts.last(), b.parts.last()),
			strings.Compare(a.parts.first(), b.parts.first()),
		)
	}
}

// Rank orders search results for query. Names fall into the first tier they
// qualify for; within a tier, ties keep their input order.
func Rank(query string, names []string) []string {
	q := reference.Lower(query)
	var tiers [5][]candidate
	for _, n := range names {
		c := candidate{name: n, parts: parseName(n)}
		t := tier(c, q)
		tiers[t] = append(tiers[t], c)
	}

	out := make([]string, 0, len(names))
	for t, cs := range tiers {
		slices.SortStableFunc(cs, func(a, b candidate) int { return order(t, a, b) })
		for _, c := range cs {
			out = append(out, c.name)
		}
	}
	return out
}

// Package report computes the aggregate statistics tables over a dataset.
//
// Every report returns a Table: a fixed header of column labels and a list
// of rows. The first cell of a row is usually a label (author name or year);
// the remaining cells are counts (int), statistics (float64), or modes
// ([]float64).
package report

import (
	"slices"

	"github.com/matsen/bibstat/internal/reference"
	"github.com/matsen/bibstat/internal/stats"
)

// Row is one table row. Cells are heterogeneous.
type Row []any

// Table is the result of a report.
type Table struct {
	Header []string `json:"header"`
	Rows   []Row    `json:"rows"`
}

// Window restricts a report to publications in an inclusive year range and of
// a given type. A nil bound is unbounded.
type Window struct {
	Start *int
	End   *int
	Type  reference.TypeFilter
}

// Contains reports whether p falls inside the window.
func (w Window) Contains(p *reference.Publication) bool {
	if w.Start != nil && p.Year < *w.Start {
		return false
	}
	if w.End != nil && p.Year > *w.End {
		return false
	}
	return w.Type.Matches(p.Type)
}

// typeHeader labels the four per-type columns followed by the combined column.
func typeHeader(all string) []string {
	h := make([]string, 0, reference.NumTypes+1)
	for _, t := range reference.PubTypes {
		h = append(h, t.String())
	}
	return append(h, all)
}

// perType holds one list of observations per publication type.
type perType [reference.NumTypes][]float64

func (pt *perType) add(t reference.PubType, x float64) {
	pt[t] = append(pt[t], x)
}

// all concatenates the four lists. Statistics for the combined column are
// always computed from this list, never from the per-type results.
func (pt *perType) all() []float64 {
	var n int
	for _, l := range pt {
		n += len(l)
	}
	out := make([]float64, 0, n)
	for _, l := range pt {
		out = append(out, l...)
	}
	return out
}

// reduce applies stat to each type and then to the concatenation.
func (pt *perType) reduce(stat stats.Stat) Row {
	row := make(Row, 0, reference.NumTypes+1)
	for _, l := range pt {
		row = append(row, stat.Apply(l))
	}
	return append(row, stat.Apply(pt.all()))
}

// countMatrix holds per-type counts for a set of keys (authors or years).
type countMatrix [][reference.NumTypes]int

// reduceColumns applies stat down each type column and down the row totals.
func (m countMatrix) reduceColumns(stat stats.Stat) Row {
	row := make(Row, 0, reference.NumTypes+1)
	col := make([]float64, len(m))
	for t := range reference.NumTypes {
		for i := range m {
			col[i] = float64(m[i][t])
		}
		row = append(row, stat.Apply(col))
	}
	totals := make([]float64, len(m))
	for i := range m {
		totals[i] = float64(sum(m[i]))
	}
	return append(row, stat.Apply(totals))
}

func sum(counts [reference.NumTypes]int) int {
	var n int
	for _, c := range counts {
		n += c
	}
	return n
}

// countCells renders per-type counts followed by their total.
func countCells(counts [reference.NumTypes]int) Row {
	row := make(Row, 0, reference.NumTypes+1)
	for _, c := range counts {
		row = append(row, c)
	}
	return append(row, sum(counts))
}

// idSet is a set of author ids.
type idSet map[int]struct{}

func (s idSet) add(id int) {
	s[id] = struct{}{}
}

func (s idSet) sorted() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func union(sets ...idSet) idSet {
	u := make(idSet)
	for _, s := range sets {
		for id := range s {
			u.add(id)
		}
	}
	return u
}

// yearOrder assigns each distinct year a slot in order of first appearance.
type yearOrder struct {
	years []int
	slots map[int]int
}

func newYearOrder() *yearOrder {
	return &yearOrder{slots: make(map[int]int)}
}

// slot returns the index for year and whether it was newly allocated.
func (y *yearOrder) slot(year int) (int, bool) {
	if i, ok := y.slots[year]; ok {
		return i, false
	}
	i := len(y.years)
	y.slots[year] = i
	y.years = append(y.years, year)
	return i, true
}

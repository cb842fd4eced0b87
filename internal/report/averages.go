package report

import (
	"errors"
	"fmt"

	"github.com/matsen/bibstat/internal/reference"
	"github.com/matsen/bibstat/internal/stats"
	"github.com/matsen/bibstat/internal/storage"
)

// AuthorsPerPublication reduces the author count of every publication, per
// type and overall. The result has a single row.
func AuthorsPerPublication(v *storage.Snapshot, stat stats.Stat) Table {
	var counts perType
	for i := range v.Publications {
		p := &v.Publications[i]
		counts.add(p.Type, float64(len(p.AuthorIDs)))
	}
	return Table{
		Header: typeHeader("All Publications"),
		Rows:   []Row{counts.reduce(stat)},
	}
}

// PublicationsPerAuthor reduces the number of publications of each author.
// Every known author contributes to every column, zero counts included.
func PublicationsPerAuthor(v *storage.Snapshot, stat stats.Stat) Table {
	m := authorCounts(v, func(*reference.Publication) bool { return true })
	return Table{
		Header: typeHeader("All Publications"),
		Rows:   []Row{m.reduceColumns(stat)},
	}
}

// MaxYearSpan caps the number of calendar years the per-year averages fill in.
const MaxYearSpan = 10000

// ErrYearSpan is returned when the earliest and latest publication years are
// more than MaxYearSpan years apart.
var ErrYearSpan = errors.New("year range too wide")

// yearSpan returns the number of calendar years from v.MinYear to v.MaxYear
// inclusive, or 0 when no publication has a year.
func yearSpan(v *storage.Snapshot) (int, error) {
	if !v.HasYears {
		return 0, nil
	}
	// Unsigned subtraction stays exact for any MinYear <= MaxYear.
	if d := uint64(v.MaxYear) - uint64(v.MinYear); d >= MaxYearSpan {
		return 0, fmt.Errorf("%w: %d to %d exceeds %d years", ErrYearSpan, v.MinYear, v.MaxYear, MaxYearSpan)
	}
	return v.MaxYear - v.MinYear + 1, nil
}

// PublicationsPerYear reduces the number of publications in each year from the
// earliest to the latest year, years without publications included.
func PublicationsPerYear(v *storage.Snapshot, stat stats.Stat) (Table, error) {
	span, err := yearSpan(v)
	if err != nil {
		return Table{}, err
	}
	var m countMatrix
	if span > 0 {
		m = make(countMatrix, span)
		for i := range v.Publications {
			p := &v.Publications[i]
			m[p.Year-v.MinYear][p.Type]++
		}
	}
	return Table{
		Header: typeHeader("All Publications"),
		Rows:   []Row{m.reduceColumns(stat)},
	}, nil
}

// AuthorsPerYear reduces the number of distinct authors active in each year
// from the earliest to the latest year, years without publications included.
// The combined column counts each author once per year whatever the type.
func AuthorsPerYear(v *storage.Snapshot, stat stats.Stat) (Table, error) {
	span, err := yearSpan(v)
	if err != nil {
		return Table{}, err
	}
	var years [][reference.NumTypes]idSet
	if span > 0 {
		years = make([][reference.NumTypes]idSet, span)
		for i := range years {
			for t := range years[i] {
				years[i][t] = make(idSet)
			}
		}
		for i := range v.Publications {
			p := &v.Publications[i]
			for _, a := range p.AuthorIDs {
				years[p.Year-v.MinYear][p.Type].add(a)
			}
		}
	}

	var counts perType
	all := make([]float64, 0, len(years))
	for _, sets := range years {
		for t, s := range sets {
			counts.add(reference.PubType(t), float64(len(s)))
		}
		all = append(all, float64(len(union(sets[:]...))))
	}

	row := make(Row, 0, reference.NumTypes+1)
	for _, l := range counts {
		row = append(row, stat.Apply(l))
	}
	row = append(row, stat.Apply(all))
	return Table{
		Header: typeHeader("All Publications"),
		Rows:   []Row{row},
	}, nil
}

// SummaryAverage combines AuthorsPerPublication and PublicationsPerAuthor into
// one labelled table.
func SummaryAverage(v *storage.Snapshot, stat stats.Stat) Table {
	perPub := AuthorsPerPublication(v, stat).Rows[0]
	perAuthor := PublicationsPerAuthor(v, stat).Rows[0]
	name := stat.String()
	return Table{
		Header: append([]string{"Details"}, typeHeader("All Publications")...),
		Rows: []Row{
			append(Row{name + " authors per publication"}, perPub...),
			append(Row{name + " publications per author"}, perAuthor...),
		},
	}
}

// AuthorsPerPublicationByAuthor reduces, for each author, the author counts of
// the publications they appear on. Authors appear in id order.
func AuthorsPerPublicationByAuthor(v *storage.Snapshot, stat stats.Stat) Table {
	lists := make([]perType, len(v.Authors))
	for i := range v.Publications {
		p := &v.Publications[i]
		n := float64(len(p.AuthorIDs))
		for _, a := range p.AuthorIDs {
			lists[a].add(p.Type, n)
		}
	}

	rows := make([]Row, 0, len(v.Authors))
	for id := range lists {
		rows = append(rows, append(Row{v.AuthorName(id)}, lists[id].reduce(stat)...))
	}
	return Table{
		Header: []string{
			"Author",
			"Number of conference papers",
			"Number of journals",
			"Number of books",
			"Number of book chapters",
			"All publications",
		},
		Rows: rows,
	}
}

// AuthorsPerPublicationByYear reduces the author counts of publications
// grouped by year.
func AuthorsPerPublicationByYear(v *storage.Snapshot, stat stats.Stat) Table {
	order := newYearOrder()
	var lists []perType
	for i := range v.Publications {
		p := &v.Publications[i]
		slot, added := order.slot(p.Year)
		if added {
			lists = append(lists, perType{})
		}
		lists[slot].add(p.Type, float64(len(p.AuthorIDs)))
	}

	rows := make([]Row, 0, len(order.years))
	for i, y := range order.years {
		rows = append(rows, append(Row{y}, lists[i].reduce(stat)...))
	}
	return Table{
		Header: []string{
			"Year",
			"Conference papers",
			"Journals",
			"Books",
			"Book chapters",
			"All publications",
		},
		Rows: rows,
	}
}

// PublicationsPerAuthorByYear reduces, for each year, the per-author
// publication counts over every known author.
func PublicationsPerAuthorByYear(v *storage.Snapshot, stat stats.Stat) Table {
	order := newYearOrder()
	var matrices []countMatrix
	for i := range v.Publications {
		p := &v.Publications[i]
		slot, added := order.slot(p.Year)
		if added {
			matrices = append(matrices, make(countMatrix, len(v.Authors)))
		}
		for _, a := range p.AuthorIDs {
			matrices[slot][a][p.Type]++
		}
	}

	rows := make([]Row, 0, len(order.years))
	for i, y := range order.years {
		rows = append(rows, append(Row{y}, matrices[i].reduceColumns(stat)...))
	}
	return Table{
		Header: []string{
			"Year",
			"Conference papers",
			"Journals",
			"Books",
			"Book chapters",
			"All publications",
		},
		Rows: rows,
	}
}

// authorCounts tallies, per author id, the publications accepted by keep.
// An author listed twice on a publication is counted twice.
func authorCounts(v *storage.Snapshot, keep func(*reference.Publication) bool) countMatrix {
	m := make(countMatrix, len(v.Authors))
	for i := range v.Publications {
		p := &v.Publications[i]
		if !keep(p) {
			continue
		}
		for _, a := range p.AuthorIDs {
			m[a][p.Type]++
		}
	}
	return m
}

type yearAuthors struct {
	year int
	sets [reference.NumTypes]idSet
}

// distinctAuthorsByYear collects the author ids of each (year, type) in
// first-seen year order.
func distinctAuthorsByYear(v *storage.Snapshot) []yearAuthors {
	order := newYearOrder()
	var out []yearAuthors
	for i := range v.Publications {
		p := &v.Publications[i]
		slot, added := order.slot(p.Year)
		if added {
			ya := yearAuthors{year: p.Year}
			for t := range ya.sets {
				ya.sets[t] = make(idSet)
			}
			out = append(out, ya)
		}
		for _, a := range p.AuthorIDs {
			out[slot].sets[p.Type].add(a)
		}
	}
	return out
}

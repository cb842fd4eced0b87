package report

import (
	"github.com/matsen/bibstat/internal/reference"
	"github.com/matsen/bibstat/internal/storage"
)

// Summary counts publications and distinct authors per type. The Total of the
// author row is the size of the union, not the sum.
func Summary(v *storage.Snapshot) Table {
	var pubs [reference.NumTypes]int
	var authors [reference.NumTypes]idSet
	for t := range authors {
		authors[t] = make(idSet)
	}
	for i := range v.Publications {
		p := &v.Publications[i]
		pubs[p.Type]++
		for _, a := range p.AuthorIDs {
			authors[p.Type].add(a)
		}
	}

	authorRow := Row{"Number of authors"}
	for _, s := range authors {
		authorRow = append(authorRow, len(s))
	}
	authorRow = append(authorRow, len(union(authors[:]...)))

	return Table{
		Header: append([]string{"Details"}, typeHeader("Total")...),
		Rows: []Row{
			append(Row{"Number of publications"}, countCells(pubs)...),
			authorRow,
		},
	}
}

// PublicationsByAuthor counts each author's publications per type.
func PublicationsByAuthor(v *storage.Snapshot) Table {
	m := authorCounts(v, func(*reference.Publication) bool { return true })
	rows := make([]Row, 0, len(m))
	for id, counts := range m {
		rows = append(rows, append(Row{v.AuthorName(id)}, countCells(counts)...))
	}
	return Table{
		Header: []string{
			"Author",
			"Number of conference papers",
			"Number of journals",
			"Number of books",
			"Number of book chapters",
			"Total",
		},
		Rows: rows,
	}
}

// AuthorsStatForYear counts each author's publications in one year. Every
// author has a row, with zeros when they published nothing that year.
func AuthorsStatForYear(v *storage.Snapshot, year int) Table {
	m := authorCounts(v, func(p *reference.Publication) bool { return p.Year == year })
	rows := make([]Row, 0, len(m))
	for id, c := range m {
		rows = append(rows, Row{
			v.AuthorName(id),
			sum(c),
			c[reference.ConferencePaper],
			c[reference.Journal],
			c[reference.BookChapter],
			c[reference.Book],
		})
	}
	return Table{
		Header: []string{
			"Author",
			"Number of all publications",
			"Number of conference papers",
			"Number of journals",
			"Number of book chapters",
			"Number of books",
		},
		Rows: rows,
	}
}

// PublicationsByYear counts publications per type for each year present.
func PublicationsByYear(v *storage.Snapshot) Table {
	order := newYearOrder()
	var m countMatrix
	for i := range v.Publications {
		p := &v.Publications[i]
		slot, added := order.slot(p.Year)
		if added {
			m = append(m, [reference.NumTypes]int{})
		}
		m[slot][p.Type]++
	}

	rows := make([]Row, 0, len(order.years))
	for i, y := range order.years {
		rows = append(rows, append(Row{y}, countCells(m[i])...))
	}
	return Table{
		Header: []string{
			"Year",
			"Number of conference papers",
			"Number of journals",
			"Number of books",
			"Number of book chapters",
			"Total",
		},
		Rows: rows,
	}
}

// PublicationsForYear counts the publications of a single year. The row is
// all zeros when no publication has that year.
func PublicationsForYear(v *storage.Snapshot, year int) Table {
	var c [reference.NumTypes]int
	for i := range v.Publications {
		p := &v.Publications[i]
		if p.Year == year {
			c[p.Type]++
		}
	}
	return Table{
		Header: []string{
			"Number of all publications",
			"Number of conference papers",
			"Number of journals",
			"Number of book chapters",
			"Number of books",
		},
		Rows: []Row{{
			sum(c),
			c[reference.ConferencePaper],
			c[reference.Journal],
			c[reference.BookChapter],
			c[reference.Book],
		}},
	}
}

// AuthorTotalsByYear counts distinct authors per type for each year present.
// Total is the number of distinct authors in the year across all types.
func AuthorTotalsByYear(v *storage.Snapshot) Table {
	years := distinctAuthorsByYear(v)
	rows := make([]Row, 0, len(years))
	for _, y := range years {
		row := Row{y.year}
		for _, s := range y.sets {
			row = append(row, len(s))
		}
		rows = append(rows, append(row, len(union(y.sets[:]...))))
	}
	return Table{
		Header: []string{
			"Year",
			"Number of conference papers",
			"Number of journals",
			"Number of books",
			"Number of book chapters",
			"Total",
		},
		Rows: rows,
	}
}

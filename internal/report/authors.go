package report

import (
	"fmt"
	"strings"

	"github.com/matsen/bibstat/internal/coauthor"
	"github.com/matsen/bibstat/internal/reference"
	"github.com/matsen/bibstat/internal/storage"
)

// roleCounts is first, last, and sole authorship for one author.
type roleCounts struct {
	first, last, sole int
}

func authorRoles(v *storage.Snapshot, w Window) []roleCounts {
	roles := make([]roleCounts, len(v.Authors))
	for i := range v.Publications {
		p := &v.Publications[i]
		if !w.Contains(p) {
			continue
		}
		if p.SoleAuthor() {
			roles[p.FirstAuthor()].sole++
			continue
		}
		roles[p.FirstAuthor()].first++
		roles[p.LastAuthor()].last++
	}
	return roles
}

// AuthorDetails counts, for each author, the publications inside w on which
// they are first, last, or sole author. A publication with exactly one author
// only counts as sole.
func AuthorDetails(v *storage.Snapshot, w Window) Table {
	roles := authorRoles(v, w)
	rows := make([]Row, 0, len(roles))
	for id, r := range roles {
		rows = append(rows, Row{v.AuthorName(id), r.first, r.last, r.sole})
	}
	return Table{
		Header: []string{"Author", "First author", "Last author", "Sole author"},
		Rows:   rows,
	}
}

// FirstLastSole is AuthorDetails over every year and type.
func FirstLastSole(v *storage.Snapshot) Table {
	return AuthorDetails(v, Window{})
}

// AuthorStat summarizes one author, matched case-insensitively. Publication
// counts cover every author whose lowercased name matches; the co-author count
// and display name come from the matching author with the smallest id.
func AuthorStat(v *storage.Snapshot, name string) (Table, error) {
	lower := reference.Lower(name)
	ids := v.LookupFold(lower)
	if len(ids) == 0 {
		return Table{}, fmt.Errorf("%w: %q", storage.ErrAuthorNotFound, name)
	}
	match := make(map[int]bool, len(ids))
	for _, id := range ids {
		match[id] = true
	}

	var c [reference.NumTypes]int
	for i := range v.Publications {
		p := &v.Publications[i]
		for _, a := range p.AuthorIDs {
			if match[a] {
				c[p.Type]++
			}
		}
	}

	// Role counts are taken from the last matching author.
	roles := authorRoles(v, Window{})
	r := roles[ids[len(ids)-1]]

	return Table{
		Header: []string{
			"Author",
			"Number of all publications",
			"Number of conference papers",
			"Number of journals",
			"Number of book chapters",
			"Number of books",
			"Number of co-authors",
			"First on a paper",
			"Last on a paper",
		},
		Rows: []Row{{
			v.AuthorName(ids[0]),
			sum(c),
			c[reference.ConferencePaper],
			c[reference.Journal],
			c[reference.BookChapter],
			c[reference.Book],
			coauthor.Degree(v, ids[0]),
			r.first,
			r.last,
		}},
	}, nil
}

// CoauthorData lists, for each author with at least one co-author inside w,
// their distinct co-authors. Each name is followed by that author's own
// co-author count. Authors appear in order of first co-authorship, co-authors
// in id order.
func CoauthorData(v *storage.Snapshot, w Window) Table {
	var order []int
	coauthors := make(map[int]idSet)
	for i := range v.Publications {
		p := &v.Publications[i]
		if !w.Contains(p) {
			continue
		}
		for _, a := range p.AuthorIDs {
			for _, b := range p.AuthorIDs {
				if a == b {
					continue
				}
				s, ok := coauthors[a]
				if !ok {
					s = make(idSet)
					coauthors[a] = s
					order = append(order, a)
				}
				s.add(b)
			}
		}
	}

	display := func(id int) string {
		return fmt.Sprintf("%s %d", v.AuthorName(id), len(coauthors[id]))
	}
	rows := make([]Row, 0, len(order))
	for _, a := range order {
		ids := coauthors[a].sorted()
		names := make([]string, len(ids))
		for i, b := range ids {
			names[i] = display(b)
		}
		rows = append(rows, Row{display(a), strings.Join(names, ", ")})
	}
	return Table{
		Header: []string{"Author", "Co-Authors"},
		Rows:   rows,
	}
}

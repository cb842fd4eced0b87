package report

import (
	"fmt"
	"strings"

	"github.com/matsen/bibstat/internal/reference"
	"github.com/matsen/bibstat/internal/storage"
)

// Directory reports whether an author belongs to the internal staff.
type Directory interface {
	Contains(name string) bool
}

// RoleCounts holds a total followed by one count per publication type, in
// reference.PubTypes order.
type RoleCounts [reference.NumTypes + 1]int

func (c *RoleCounts) add(t reference.PubType) {
	c[0]++
	c[t+1]++
}

// Profile is the detail view of a single author.
type Profile struct {
	Name              string     `json:"name"`
	Publications      RoleCounts `json:"publications"`
	First             RoleCounts `json:"first"`
	Last              RoleCounts `json:"last"`
	Sole              RoleCounts `json:"sole"`
	Coauthors         int        `json:"coauthors"`
	Internal          bool       `json:"internal"`
	ExternalCoauthors []string   `json:"external_coauthors"`
}

// Affiliation returns "Internal" or "External".
func (p *Profile) Affiliation() string {
	if p.Internal {
		return "Internal"
	}
	return "External"
}

// AuthorProfile builds the profile of the author with exactly this name.
//
// An author is internal when staff contains the name; staff may be nil. For
// internal authors ExternalCoauthors lists, in order of first appearance, every
// author on their publications who is not on the staff list.
func AuthorProfile(v *storage.Snapshot, name string, staff Directory) (*Profile, error) {
	id, err := v.AuthorID(name)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Name:              name,
		Internal:          staff != nil && staff.Contains(name),
		ExternalCoauthors: []string{},
	}
	coauthors := make(idSet)
	external := make(map[string]bool)

	for i := range v.Publications {
		pub := &v.Publications[i]
		for _, a := range pub.AuthorIDs {
			if a != id {
				continue
			}
			p.Publications.add(pub.Type)
			for _, b := range pub.AuthorIDs {
				if b != id {
					coauthors.add(b)
				}
			}
			switch {
			case pub.SoleAuthor():
				p.Sole.add(pub.Type)
			default:
				if pub.FirstAuthor() == id {
					p.First.add(pub.Type)
				}
				if pub.LastAuthor() == id {
					p.Last.add(pub.Type)
				}
			}
			if !p.Internal {
				continue
			}
			for _, b := range pub.AuthorIDs {
				bname := v.AuthorName(b)
				if !staff.Contains(bname) && !external[bname] {
					external[bname] = true
					p.ExternalCoauthors = append(p.ExternalCoauthors, bname)
				}
			}
		}
	}
	p.Coauthors = len(coauthors)
	return p, nil
}

// Table renders the profile as a two-column table of labelled values.
func (p *Profile) Table() Table {
	rows := []Row{{"Author", p.Name}, {"Affiliation", p.Affiliation()}}
	for _, rc := range []struct {
		label  string
		counts RoleCounts
	}{
		{"publications", p.Publications},
		{"first author", p.First},
		{"last author", p.Last},
		{"sole author", p.Sole},
	} {
		rows = append(rows, Row{"Number of " + rc.label, rc.counts[0]})
		for i, t := range reference.PubTypes {
			rows = append(rows, Row{fmt.Sprintf("Number of %s (%s)", rc.label, t), rc.counts[i+1]})
		}
	}
	rows = append(rows,
		Row{"Number of co-authors", p.Coauthors},
		Row{"External co-authors", strings.Join(p.ExternalCoauthors, ", ")},
		Row{"Number of external co-authors", len(p.ExternalCoauthors)},
	)
	return Table{Header: []string{"Details", "Value"}, Rows: rows}
}

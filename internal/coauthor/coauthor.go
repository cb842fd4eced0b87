// Package coauthor derives co-authorship relations from a dataset.
package coauthor

import (
	"slices"

	"github.com/matsen/bibstat/internal/storage"
)

// Count is a co-author and the number of shared publications.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Node is an author in the co-authorship network. Degree is the number of
// distinct co-authors.
type Node struct {
	Name   string `json:"name"`
	Degree int    `json:"degree"`
}

// Link joins two author ids that share at least one publication.
// Source is always less than Target.
type Link struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Graph is the undirected co-authorship network. Node i is author id i.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// collaborations counts, for every publication listing id, each author on it.
// Ids are returned in order of first encounter. An author listed twice on a
// publication is counted twice, which includes id itself.
func collaborations(v *storage.Snapshot, id int, includeSelf bool) ([]int, map[int]int) {
	var order []int
	counts := make(map[int]int)
	for i := range v.Publications {
		p := &v.Publications[i]
		if !p.HasAuthor(id) {
			continue
		}
		for _, a := range p.AuthorIDs {
			if a == id && !includeSelf {
				continue
			}
			if _, seen := counts[a]; !seen {
				order = append(order, a)
			}
			counts[a]++
		}
	}
	return order, counts
}

// Collaborations maps each co-author of id to the number of publications they
// share. When includeSelf is set id maps to its own publication count.
func Collaborations(v *storage.Snapshot, id int, includeSelf bool) map[int]int {
	_, counts := collaborations(v, id, includeSelf)
	return counts
}

// Details lists the collaborators of the author with exactly this name,
// including the author, in order of first encounter.
func Details(v *storage.Snapshot, name string) ([]Count, error) {
	id, err := v.AuthorID(name)
	if err != nil {
		return nil, err
	}
	return details(v, id), nil
}

// DetailsFold is Details with a case-insensitive name. When several authors
// share the lowercased name the one with the smallest id is used.
func DetailsFold(v *storage.Snapshot, lower string) ([]Count, error) {
	ids := v.LookupFold(lower)
	if len(ids) == 0 {
		return nil, storage.ErrAuthorNotFound
	}
	return details(v, ids[0]), nil
}

func details(v *storage.Snapshot, id int) []Count {
	order, counts := collaborations(v, id, true)
	out := make([]Count, 0, len(order))
	for _, a := range order {
		out = append(out, Count{Name: v.AuthorName(a), Count: counts[a]})
	}
	return out
}

// Network builds the co-authorship graph over every author.
func Network(v *storage.Snapshot) *Graph {
	neighbours := make([]map[int]struct{}, len(v.Authors))
	for i := range neighbours {
		neighbours[i] = make(map[int]struct{})
	}
	for i := range v.Publications {
		ids := v.Publications[i].AuthorIDs
		for _, a := range ids {
			for _, b := range ids {
				if a != b {
					neighbours[a][b] = struct{}{}
				}
			}
		}
	}

	g := &Graph{Nodes: make([]Node, len(v.Authors))}
	for a := range neighbours {
		g.Nodes[a] = Node{Name: v.AuthorName(a), Degree: len(neighbours[a])}
		for b := range neighbours[a] {
			if a < b {
				g.Links = append(g.Links, Link{Source: a, Target: b})
			}
		}
	}
	slices.SortFunc(g.Links, func(x, y Link) int {
		if x.Source != y.Source {
			return x.Source - y.Source
		}
		return x.Target - y.Target
	})
	return g
}

// Degree returns the number of distinct co-authors of id.
func Degree(v *storage.Snapshot, id int) int {
	return len(Collaborations(v, id, false))
}

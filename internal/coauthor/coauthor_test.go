package coauthor

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/matsen/bibstat/internal/storage"
)

const mixedDoc = `<dblp>
<inproceedings><author>AUTHOR1</author><author>AUTHOR3</author><author>AUTHOR4</author><title>P1</title><year>9999</year></inproceedings>
<inproceedings><author>AUTHOR1</author><author>AUTHOR4</author><title>P2</title><year>9999</year></inproceedings>
<inproceedings><author>AUTHOR1</author><title>P3</title><year>9999</year></inproceedings>
<book><author>AUTHOR2</author><title>B1</title><year>9999</year></book>
</dblp>`

func load(t *testing.T, doc string) *storage.Snapshot {
	t.Helper()
	s := storage.New()
	if err := s.Ingest(strings.NewReader(doc)); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	return s.Snapshot()
}

func TestCollaborations(t *testing.T) {
	v := load(t, mixedDoc)

	tests := []struct {
		name        string
		id          int
		includeSelf bool
		want        map[int]int
	}{
		{"with self", 0, true, map[int]int{0: 3, 1: 1, 2: 2}},
		{"without self", 0, false, map[int]int{1: 1, 2: 2}},
		{"sole author", 3, false, map[int]int{}},
		{"sole author with self", 3, true, map[int]int{3: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Collaborations(v, tt.id, tt.includeSelf)
			if !maps.Equal(got, tt.want) {
				t.Errorf("Collaborations(%d, %v) = %v, want %v", tt.id, tt.includeSelf, got, tt.want)
			}
		})
	}
}

func TestCollaborations_Symmetric(t *testing.T) {
	v := load(t, mixedDoc)
	for a := range v.Authors {
		for b, n := range Collaborations(v, a, false) {
			if back := Collaborations(v, b, false)[a]; back != n {
				t.Errorf("collab(%d)[%d] = %d but collab(%d)[%d] = %d", a, b, n, b, a, back)
			}
		}
	}
}

func TestDetails(t *testing.T) {
	v := load(t, mixedDoc)
	got, err := Details(v, "AUTHOR4")
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	want := []Count{{"AUTHOR1", 2}, {"AUTHOR3", 1}, {"AUTHOR4", 2}}
	if !slices.Equal(got, want) {
		t.Errorf("Details(AUTHOR4) = %v, want %v", got, want)
	}

	if _, err := Details(v, "author4"); !errors.Is(err, storage.ErrAuthorNotFound) {
		t.Errorf("Details(author4) error = %v, want ErrAuthorNotFound", err)
	}
}

func TestDetailsFold(t *testing.T) {
	v := load(t, mixedDoc)
	got, err := DetailsFold(v, "author2")
	if err != nil {
		t.Fatalf("DetailsFold() error = %v", err)
	}
	if want := []Count{{"AUTHOR2", 1}}; !slices.Equal(got, want) {
		t.Errorf("DetailsFold(author2) = %v, want %v", got, want)
	}
	if _, err := DetailsFold(v, "author9"); !errors.Is(err, storage.ErrAuthorNotFound) {
		t.Errorf("DetailsFold(author9) error = %v, want ErrAuthorNotFound", err)
	}
}

func TestNetwork(t *testing.T) {
	g := Network(load(t, mixedDoc))

	wantNodes := []Node{{"AUTHOR1", 2}, {"AUTHOR3", 2}, {"AUTHOR4", 2}, {"AUTHOR2", 0}}
	if !slices.Equal(g.Nodes, wantNodes) {
		t.Errorf("Nodes = %v, want %v", g.Nodes, wantNodes)
	}
	wantLinks := []Link{{0, 1}, {0, 2}, {1, 2}}
	if !slices.Equal(g.Links, wantLinks) {
		t.Errorf("Links = %v, want %v", g.Links, wantLinks)
	}
}

func TestNetwork_DegreeMatchesLinks(t *testing.T) {
	g := Network(load(t, `<dblp>
<article><author>A</author><author>B</author><author>C</author><year>2000</year></article>
<article><author>C</author><author>D</author><year>2001</year></article>
<article><author>D</author><author>D</author><year>2002</year></article>
</dblp>`))

	degree := make([]int, len(g.Nodes))
	for _, l := range g.Links {
		if l.Source >= l.Target {
			t.Errorf("link %v is not ordered", l)
		}
		degree[l.Source]++
		degree[l.Target]++
	}
	for i, n := range g.Nodes {
		if n.Degree != degree[i] {
			t.Errorf("node %s degree = %d, links give %d", n.Name, n.Degree, degree[i])
		}
	}
}

func TestDegree(t *testing.T) {
	v := load(t, mixedDoc)
	if got := Degree(v, 0); got != 2 {
		t.Errorf("Degree(0) = %d, want 2", got)
	}
	if got := Degree(v, 3); got != 0 {
		t.Errorf("Degree(3) = %d, want 0", got)
	}
}

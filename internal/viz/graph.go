package viz

import (
	"strconv"

	"github.com/matsen/bibstat/internal/coauthor"
)

// FromNetwork converts a co-authorship network into GraphData. Authors with
// fewer than minDegree co-authors are dropped along with their links.
func FromNetwork(g *coauthor.Graph, minDegree int) *GraphData {
	keep := make([]bool, len(g.Nodes))
	data := &GraphData{Nodes: make([]Node, 0, len(g.Nodes))}
	for i, n := range g.Nodes {
		if n.Degree < minDegree {
			continue
		}
		keep[i] = true
		data.Nodes = append(data.Nodes, Node{
			ID:     nodeID(i),
			Label:  n.Name,
			Degree: n.Degree,
		})
	}

	data.Edges = make([]Edge, 0, len(g.Links))
	for _, l := range g.Links {
		if keep[l.Source] && keep[l.Target] {
			data.Edges = append(data.Edges, Edge{Source: nodeID(l.Source), Target: nodeID(l.Target)})
		}
	}
	return data
}

// nodeID derives a Cytoscape element id from an author id.
func nodeID(id int) string {
	return "a" + strconv.Itoa(id)
}

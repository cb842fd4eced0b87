// Package viz renders the co-authorship network as an interactive HTML page.
package viz

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is an author in the graph.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Sizing
	Degree int `json:"degree"`
}

// Edge joins two co-authors.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}

package main

import (
	"fmt"
	"os"

	"github.com/matsen/bibstat/internal/coauthor"
	"github.com/matsen/bibstat/internal/viz"
	"github.com/spf13/cobra"
)

var (
	networkHTML      bool
	networkOutput    string
	networkLayout    string
	networkMinDegree int
)

func init() {
	networkCmd.Flags().BoolVar(&networkHTML, "html", false, "Generate an interactive HTML page instead of JSON")
	networkCmd.Flags().StringVarP(&networkOutput, "output", "o", "", "Output file path (default: stdout)")
	networkCmd.Flags().StringVar(&networkLayout, "layout", "force", "Layout algorithm: force, circle, or grid")
	networkCmd.Flags().IntVar(&networkMinDegree, "min-degree", 0, "Drop authors with fewer co-authors")
	rootCmd.AddCommand(networkCmd)
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Export the co-authorship network",
	Long: `Export the co-authorship network: one node per author, one link per pair
of authors who share a publication.

By default the graph is written as Cytoscape.js JSON elements. With --html an
interactive page is generated where node size follows the number of
co-authors.

Examples:
  bibstat network > network.json
  bibstat network --html --min-degree 3 -o network.html
  bibstat network --html --layout circle -o network.html`,
	Args: cobra.NoArgs,
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	if err := viz.ValidateLayout(networkLayout); err != nil {
		return err
	}

	store := mustLoadStore()
	graph := viz.FromNetwork(coauthor.Network(store.Snapshot()), networkMinDegree)

	if !networkHTML {
		if networkOutput == "" {
			return outputJSON(graph.ToCytoscape())
		}
		js, err := graph.ToCytoscapeJSON()
		if err != nil {
			return err
		}
		return writeOutput(networkOutput, js)
	}

	html, err := viz.GenerateHTML(graph, viz.HTMLOptions{Layout: networkLayout})
	if err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}
	if networkOutput == "" {
		fmt.Print(html)
		return nil
	}
	return writeOutput(networkOutput, html)
}

func writeOutput(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if !humanOutput {
		return outputJSON(StatusResponse{Status: "written", Paths: []string{path}})
	}
	fmt.Printf("Network written to %s\n", path)
	return nil
}

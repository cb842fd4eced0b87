package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/matsen/bibstat/internal/reference"
	"github.com/spf13/cobra"
)

func init() {
	snapshotCmd.AddCommand(snapshotPublicationsCmd)
}

var snapshotPublicationsCmd = &cobra.Command{
	Use:   "publications <author>",
	Short: "List an author's publications from a snapshot",
	Long: `List the publications of an author, matched by exact name, in the order
they appeared in the source document.

Example:
  bibstat snapshot publications --db dblp.db "Stefano Ceri" --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshotPublications,
}

// PublicationSummary is one publication in snapshot output.
type PublicationSummary struct {
	Type  reference.PubType `json:"type"`
	Year  int               `json:"year"`
	Title *string           `json:"title,omitempty"`
}

func runSnapshotPublications(cmd *cobra.Command, args []string) error {
	db, dataset, err := openSnapshot()
	if err != nil {
		return err
	}
	defer db.Close()

	pubs, err := db.PublicationsOf(dataset, args[0])
	if err != nil {
		return err
	}
	out := make([]PublicationSummary, len(pubs))
	for i, p := range pubs {
		out[i] = PublicationSummary{Type: p.Type, Year: p.Year, Title: p.Title}
	}

	if !humanOutput {
		return outputJSON(out)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tTYPE\tTITLE")
	for _, p := range out {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.Year, p.Type, reference.Optional(p.Title, "-"))
	}
	return tw.Flush()
}

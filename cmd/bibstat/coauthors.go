package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/matsen/bibstat/internal/coauthor"
	"github.com/matsen/bibstat/internal/reference"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(coauthorsCmd)
}

var coauthorsCmd = &cobra.Command{
	Use:   "coauthors <name>",
	Short: "List an author's collaborators",
	Long: `List everyone who shares a publication with the author, with the number
of shared publications, in order of first collaboration. The author is listed
with their own publication count. The name is matched ignoring case.

Examples:
  bibstat coauthors "stefano ceri"
  bibstat coauthors "Stefano Ceri" --human`,
	Args: cobra.ExactArgs(1),
	RunE: runCoauthors,
}

func runCoauthors(cmd *cobra.Command, args []string) error {
	store := mustLoadStore()
	counts, err := coauthor.DetailsFold(store.Snapshot(), reference.Lower(args[0]))
	if err != nil {
		return fmt.Errorf("%w: %q", err, args[0])
	}

	if !humanOutput {
		return outputJSON(counts)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AUTHOR\tPUBLICATIONS")
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.Count)
	}
	return tw.Flush()
}

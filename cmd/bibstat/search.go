package main

import (
	"fmt"
	"os"

	"github.com/matsen/bibstat/internal/author"
	"github.com/matsen/bibstat/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search authors by partial name",
	Long: `Find every author whose name contains the query, ignoring case, and rank
the matches:

  1. surname starts with the query
  2. first name starts with the query
  3. middle name starts with the query
  4. surname contains the query
  5. everything else

When the query names exactly one author, that author's statistics are
included.

Examples:
  bibstat search sam
  bibstat search "stefano ceri" --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

// SearchResponse is the response for the search command.
type SearchResponse struct {
	author.Result
	Stat *report.Table `json:"stat,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	store := mustLoadStore()
	v := store.Snapshot()

	resp := SearchResponse{Result: author.Search(v, args[0])}
	if name, ok := resp.Resolved(); ok {
		table, err := report.AuthorStat(v, name)
		if err != nil {
			return err
		}
		resp.Stat = &table
	}

	if !humanOutput {
		return outputJSON(resp)
	}
	if len(resp.Matches) == 0 {
		fmt.Printf("No authors match %q\n", args[0])
		return nil
	}
	for i, name := range resp.Matches {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	if resp.Stat != nil {
		fmt.Println()
		return printTable(os.Stdout, *resp.Stat)
	}
	return nil
}

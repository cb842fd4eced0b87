package main

import (
	"fmt"
	"os"

	"github.com/matsen/bibstat/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(summaryCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show dataset size and per-type counts",
	Long: `Show the dataset id, year range, and the number of publications and
distinct authors of each publication type.

Examples:
  bibstat summary --data dblp.xml
  bibstat summary --human`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

// SummaryResponse is the response for the summary command.
type SummaryResponse struct {
	DatasetID    string       `json:"dataset_id"`
	Publications int          `json:"publications"`
	Authors      int          `json:"authors"`
	FirstYear    *int         `json:"first_year,omitempty"`
	LastYear     *int         `json:"last_year,omitempty"`
	Counts       report.Table `json:"counts"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	store := mustLoadStore()
	v := store.Snapshot()

	resp := SummaryResponse{
		DatasetID:    v.DatasetID,
		Publications: len(v.Publications),
		Authors:      len(v.Authors),
		Counts:       report.Summary(v),
	}
	if v.HasYears {
		resp.FirstYear, resp.LastYear = &v.MinYear, &v.MaxYear
	}

	if !humanOutput {
		return outputJSON(resp)
	}

	fmt.Printf("Dataset:      %s\n", resp.DatasetID)
	fmt.Printf("Publications: %d\n", resp.Publications)
	fmt.Printf("Authors:      %d\n", resp.Authors)
	if v.HasYears {
		fmt.Printf("Years:        %d-%d\n", v.MinYear, v.MaxYear)
	}
	fmt.Println()
	return printTable(os.Stdout, resp.Counts)
}

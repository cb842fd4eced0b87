package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	snapshotCmd.AddCommand(snapshotDatasetsCmd)
}

var snapshotDatasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the datasets in a snapshot database",
	Long: `List every dataset stored in the database with its author and
publication counts.

Example:
  bibstat snapshot datasets --db dblp.db`,
	Args: cobra.NoArgs,
	RunE: runSnapshotDatasets,
}

// DatasetInfo describes one dataset in a snapshot database.
type DatasetInfo struct {
	ID           string `json:"id"`
	Authors      int    `json:"authors"`
	Publications int    `json:"publications"`
}

func runSnapshotDatasets(cmd *cobra.Command, args []string) error {
	db, err := openSnapshotDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ids, err := db.Datasets()
	if err != nil {
		return err
	}
	infos := make([]DatasetInfo, 0, len(ids))
	for _, id := range ids {
		authors, pubs, err := db.Counts(id)
		if err != nil {
			return err
		}
		infos = append(infos, DatasetInfo{ID: id, Authors: authors, Publications: pubs})
	}

	if !humanOutput {
		return outputJSON(infos)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATASET\tAUTHORS\tPUBLICATIONS")
	for _, d := range infos {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", d.ID, d.Authors, d.Publications)
	}
	return tw.Flush()
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var snapshotSearchLimit int

func init() {
	snapshotSearchCmd.Flags().IntVar(&snapshotSearchLimit, "limit", 50, "Maximum results to return")
	snapshotCmd.AddCommand(snapshotSearchCmd)
}

var snapshotSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over author names",
	Long: `Search author names in a snapshot database. Every word of the query must
prefix a word of the name, so "ste ce" matches "Stefano Ceri".

Example:
  bibstat snapshot search --db dblp.db "ste ce"`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshotSearch,
}

func runSnapshotSearch(cmd *cobra.Command, args []string) error {
	db, dataset, err := openSnapshot()
	if err != nil {
		return err
	}
	defer db.Close()

	names, err := db.SearchAuthors(dataset, args[0], snapshotSearchLimit)
	if err != nil {
		return err
	}
	if names == nil {
		names = []string{}
	}

	if !humanOutput {
		return outputJSON(names)
	}
	if len(names) == 0 {
		fmt.Printf("No authors match %q\n", args[0])
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

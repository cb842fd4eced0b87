package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/matsen/bibstat/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportsCmd)
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List the available reports",
	Args:  cobra.NoArgs,
	// Listing reports needs no dataset.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := report.Definitions()
		if !humanOutput {
			return outputJSON(defs)
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tPARAMS\tDESCRIPTION")
		for _, d := range defs {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.Kind, d.Description)
		}
		return tw.Flush()
	},
}
